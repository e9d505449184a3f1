package utilities

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/ovaphlow/carelink/service-core/pkg/database"
)

var validate = newValidator()

// newValidator reports fields by their json names.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// FieldError describes one rejected request field.
type FieldError struct {
	Field string `json:"field"`
	Error string `json:"error"`
}

// ErrorBody is the JSON shape of every failed response.
type ErrorBody struct {
	Error  string       `json:"error"`
	Kind   string       `json:"kind,omitempty"`
	Fields []FieldError `json:"fields,omitempty"`
}

// ValidationError is returned by DecodeJSON when a body fails its struct tags.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+" "+f.Error)
	}
	return "invalid request: " + strings.Join(parts, ", ")
}

// CreatedResponse is the body of a successful create.
type CreatedResponse struct {
	ID      int64  `json:"id"`
	Message string `json:"message"`
}

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// DecodeJSON reads r's body into v and validates it.
func DecodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return &ValidationError{Fields: []FieldError{{Field: "body", Error: err.Error()}}}
	}
	if err := validate.Struct(v); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make([]FieldError, 0, len(verrs))
			for _, fe := range verrs {
				fields = append(fields, FieldError{Field: fe.Field(), Error: describe(fe)})
			}
			return &ValidationError{Fields: fields}
		}
		return err
	}
	return nil
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email"
	case "max":
		return "must be at most " + fe.Param() + " characters"
	case "gt":
		return "must be greater than " + fe.Param()
	case "gte":
		return "must be at least " + fe.Param()
	case "oneof":
		return "must be one of " + fe.Param()
	case "datetime":
		return "must match layout " + fe.Param()
	default:
		return "failed " + fe.Tag()
	}
}

// PathID parses the named path value as a positive int64.
func PathID(r *http.Request, name string) (int64, error) {
	raw := r.PathValue(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, &ValidationError{Fields: []FieldError{{Field: name, Error: fmt.Sprintf("invalid id %q", raw)}}}
	}
	return id, nil
}

// StatusFor maps an error kind to the HTTP status the API answers with.
func StatusFor(err error) int {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return http.StatusBadRequest
	}
	switch {
	case errors.Is(err, database.ErrInvalidArgument):
		return http.StatusBadRequest
	case errors.Is(err, database.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, database.ErrDuplicateKey):
		return http.StatusConflict
	case errors.Is(err, database.ErrForeignKeyViolation):
		return http.StatusUnprocessableEntity
	case errors.Is(err, database.ErrStoreUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func kindName(err error) string {
	var e *database.Error
	if !errors.As(err, &e) {
		return ""
	}
	switch e.Kind {
	case database.ErrInvalidArgument:
		return "invalid_argument"
	case database.ErrNotFound:
		return "not_found"
	case database.ErrDuplicateKey:
		return "duplicate_key"
	case database.ErrForeignKeyViolation:
		return "foreign_key_violation"
	default:
		return "store_unavailable"
	}
}

// WriteError answers with the status and body for err and logs server-side
// failures.
func WriteError(w http.ResponseWriter, logger *zap.SugaredLogger, err error) {
	status := StatusFor(err)
	var verr *ValidationError
	if errors.As(err, &verr) {
		WriteJSON(w, status, ErrorBody{Error: "invalid request", Kind: "invalid_argument", Fields: verr.Fields})
		return
	}
	if status >= http.StatusInternalServerError {
		logger.Warnw("request failed", "err", err)
		WriteJSON(w, status, ErrorBody{Error: http.StatusText(status), Kind: kindName(err)})
		return
	}
	logger.Debugw("request rejected", "err", err)
	WriteJSON(w, status, ErrorBody{Error: err.Error(), Kind: kindName(err)})
}

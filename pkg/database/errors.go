package database

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/lib/pq"
)

// Error kinds surfaced by every persistence operation. Test with errors.Is.
var (
	ErrDuplicateKey        = errors.New("duplicate key")
	ErrForeignKeyViolation = errors.New("foreign key violation")
	ErrNotFound            = errors.New("not found")
	ErrInvalidArgument     = errors.New("invalid argument")
	ErrStoreUnavailable    = errors.New("store unavailable")
)

// Error carries the failed operation, its kind and whatever the store told us
// about it. The driver error itself is not reachable through Unwrap.
type Error struct {
	Op         string
	Kind       error
	Constraint string
	Detail     string
}

func (e *Error) Error() string {
	var b strings.Builder
	if e.Op != "" {
		b.WriteString(e.Op)
		b.WriteString(": ")
	}
	b.WriteString(e.Kind.Error())
	if e.Constraint != "" {
		b.WriteString(" (")
		b.WriteString(e.Constraint)
		b.WriteString(")")
	}
	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.Kind }

// Invalid builds an InvalidArgument failure for op.
func Invalid(op, format string, args ...any) error {
	return &Error{Op: op, Kind: ErrInvalidArgument, Detail: fmt.Sprintf(format, args...)}
}

// NotFound builds a NotFound failure for op.
func NotFound(op, what string) error {
	return &Error{Op: op, Kind: ErrNotFound, Detail: what}
}

// KindOf returns the kind sentinel of err, or nil when err is nil.
// Untyped errors report ErrStoreUnavailable.
func KindOf(err error) error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ErrStoreUnavailable
}

// postgres SQLSTATE values and classes, see
// https://www.postgresql.org/docs/current/errcodes-appendix.html
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeNotNullViolation    = "23502"
	codeCheckViolation      = "23514"
	classDataException      = "22"
)

// Translate converts err into a *Error tagged with op. Errors that already
// carry a kind are returned unchanged.
func Translate(op string, err error) error {
	if err == nil {
		return nil
	}
	var typed *Error
	if errors.As(err, &typed) {
		return err
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return fromPQ(op, pqErr)
	}

	switch {
	case errors.Is(err, sql.ErrNoRows):
		return &Error{Op: op, Kind: ErrNotFound}
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return &Error{Op: op, Kind: ErrStoreUnavailable, Detail: err.Error()}
	case errors.Is(err, driver.ErrBadConn), errors.Is(err, sql.ErrConnDone), errors.Is(err, sql.ErrTxDone):
		return &Error{Op: op, Kind: ErrStoreUnavailable, Detail: err.Error()}
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return &Error{Op: op, Kind: ErrStoreUnavailable, Detail: netErr.Error()}
	}
	return &Error{Op: op, Kind: ErrStoreUnavailable, Detail: err.Error()}
}

func fromPQ(op string, src *pq.Error) *Error {
	e := &Error{Op: op, Constraint: src.Constraint, Detail: src.Message}
	code := string(src.Code)
	switch {
	case code == codeUniqueViolation:
		e.Kind = ErrDuplicateKey
	case code == codeForeignKeyViolation:
		e.Kind = ErrForeignKeyViolation
	case code == codeNotNullViolation, code == codeCheckViolation:
		e.Kind = ErrInvalidArgument
	case strings.HasPrefix(code, classDataException):
		e.Kind = ErrInvalidArgument
	default:
		// connection (08), resources (53), operator intervention (57) and
		// anything unrecognised
		e.Kind = ErrStoreUnavailable
	}
	if src.Detail != "" {
		e.Detail = src.Message + ": " + src.Detail
	}
	return e
}

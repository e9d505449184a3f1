package account

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ovaphlow/carelink/service-core/pkg/utilities"
)

func TestHandlerCreate_Created(t *testing.T) {
	mock, sessions := setupMockAccountDB(t)
	h := NewHandler(sessions, zap.NewNop().Sugar())

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO accounts`).
		WillReturnRows(sqlmock.NewRows([]string{"account_id"}).AddRow(int64(5)))
	mock.ExpectCommit()

	body := `{"email":"a@x.com","given_name":"Ana","surname":"Li","password":"s3cret"}`
	req := httptest.NewRequest(http.MethodPost, "/api/accounts", strings.NewReader(body))
	w := httptest.NewRecorder()
	h.Create(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	var resp utilities.CreatedResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(5), resp.ID)
	assert.Equal(t, "Account Ana created.", resp.Message)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestHandlerCreate_RejectsInvalidBody(t *testing.T) {
	mock, sessions := setupMockAccountDB(t)
	h := NewHandler(sessions, zap.NewNop().Sugar())

	body := `{"email":"not-an-email","given_name":"Ana","password":"s3cret"}`
	req := httptest.NewRequest(http.MethodPost, "/api/accounts", strings.NewReader(body))
	w := httptest.NewRecorder()
	h.Create(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	var resp utilities.ErrorBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	fields := map[string]string{}
	for _, f := range resp.Fields {
		fields[f.Field] = f.Error
	}
	assert.Contains(t, fields, "email")
	assert.Contains(t, fields, "surname")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestHandlerCreate_DuplicateEmailConflict(t *testing.T) {
	mock, sessions := setupMockAccountDB(t)
	h := NewHandler(sessions, zap.NewNop().Sugar())

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO accounts`).WillReturnError(&pq.Error{Code: "23505", Constraint: "accounts_email_key"})
	mock.ExpectRollback()

	body := `{"email":"a@x.com","given_name":"Ana","surname":"Li","password":"s3cret"}`
	req := httptest.NewRequest(http.MethodPost, "/api/accounts", strings.NewReader(body))
	w := httptest.NewRecorder()
	h.Create(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "duplicate_key")
}

func TestHandlerGet_OmitsCredentialSecret(t *testing.T) {
	mock, sessions := setupMockAccountDB(t)
	h := NewHandler(sessions, zap.NewNop().Sugar())

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT (.+) FROM accounts`).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows(accountColumns).
			AddRow(int64(1), "a@x.com", "Ana", "Li", nil, nil, nil, "s3cret"))
	mock.ExpectCommit()

	req := httptest.NewRequest(http.MethodGet, "/api/accounts/1", nil)
	req.SetPathValue("id", "1")
	w := httptest.NewRecorder()
	h.Get(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"given_name":"Ana"`)
	assert.NotContains(t, w.Body.String(), "s3cret")
}

func TestHandlerGet_BadID(t *testing.T) {
	_, sessions := setupMockAccountDB(t)
	h := NewHandler(sessions, zap.NewNop().Sugar())

	req := httptest.NewRequest(http.MethodGet, "/api/accounts/abc", nil)
	req.SetPathValue("id", "abc")
	w := httptest.NewRecorder()
	h.Get(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandlerDelete_NotFound(t *testing.T) {
	mock, sessions := setupMockAccountDB(t)
	h := NewHandler(sessions, zap.NewNop().Sugar())

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM accounts`).WithArgs(int64(3)).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	req := httptest.NewRequest(http.MethodDelete, "/api/accounts/3", nil)
	req.SetPathValue("id", "3")
	w := httptest.NewRecorder()
	h.Delete(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

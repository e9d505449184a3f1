package job

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ovaphlow/carelink/service-core/internal/job/entity"
	"github.com/ovaphlow/carelink/service-core/pkg/database"
)

func setupMockJobDB(t *testing.T) (sqlmock.Sqlmock, *database.Sessions) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	sessions, err := database.NewSessions(sqlx.NewDb(db, database.DriverName), zap.NewNop().Sugar(), 1)
	require.NoError(t, err)
	return mock, sessions
}

func TestCreateJob_Success(t *testing.T) {
	mock, sessions := setupMockJobDB(t)
	svc := NewService(sessions)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO jobs`).
		WithArgs(int64(3), "Elder care", nil).
		WillReturnRows(sqlmock.NewRows([]string{"job_id"}).AddRow(int64(11)))
	mock.ExpectCommit()

	id, err := svc.CreateJob(context.Background(), entity.JobParams{RecipientID: 3, RequiredCaregivingType: "Elder care"})

	require.NoError(t, err)
	assert.Equal(t, int64(11), id)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateJob_UnknownRecipient(t *testing.T) {
	mock, sessions := setupMockJobDB(t)
	svc := NewService(sessions)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO jobs`).
		WithArgs(int64(7), "Babysitter", nil).
		WillReturnError(&pq.Error{Code: "23503", Constraint: "jobs_recipient_id_fkey"})
	mock.ExpectRollback()

	_, err := svc.CreateJob(context.Background(), entity.JobParams{RecipientID: 7, RequiredCaregivingType: "Babysitter"})

	assert.ErrorIs(t, err, database.ErrForeignKeyViolation)
	var dbErr *database.Error
	require.ErrorAs(t, err, &dbErr)
	assert.Equal(t, "jobs_recipient_id_fkey", dbErr.Constraint)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateJob_InvalidParams(t *testing.T) {
	tests := []struct {
		name string
		p    entity.JobParams
	}{
		{"no type", entity.JobParams{RecipientID: 3}},
		{"blank type", entity.JobParams{RecipientID: 3, RequiredCaregivingType: "  "}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, sessions := setupMockJobDB(t)

			_, err := NewService(sessions).CreateJob(context.Background(), tt.p)

			assert.ErrorIs(t, err, database.ErrInvalidArgument)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestGetJob(t *testing.T) {
	mock, sessions := setupMockJobDB(t)
	posted := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT (.+) FROM jobs WHERE job_id=\$1`).
		WithArgs(int64(11)).
		WillReturnRows(sqlmock.NewRows([]string{"job_id", "recipient_id", "required_caregiving_type", "other_requirements", "date_posted"}).
			AddRow(int64(11), int64(3), "Elder care", nil, posted))
	mock.ExpectCommit()

	j, err := NewService(sessions).GetJob(context.Background(), 11)

	require.NoError(t, err)
	assert.Equal(t, int64(3), j.RecipientID)
	assert.Nil(t, j.OtherRequirements)
	assert.Equal(t, "2024-03-01", j.DatePosted.String())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestApply_Success(t *testing.T) {
	mock, sessions := setupMockJobDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO job_applications`).
		WithArgs(int64(2), int64(11)).
		WillReturnRows(sqlmock.NewRows([]string{"provider_id", "job_id"}).AddRow(int64(2), int64(11)))
	mock.ExpectCommit()

	key, err := NewService(sessions).Apply(context.Background(), entity.ApplicationKey{ProviderID: 2, JobID: 11})

	require.NoError(t, err)
	assert.Equal(t, entity.ApplicationKey{ProviderID: 2, JobID: 11}, key)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestApply_Failures(t *testing.T) {
	tests := []struct {
		name    string
		pqErr   *pq.Error
		wantErr error
	}{
		{"repeated pair", &pq.Error{Code: "23505", Constraint: "job_applications_pkey"}, database.ErrDuplicateKey},
		{"unknown job", &pq.Error{Code: "23503", Constraint: "job_applications_job_id_fkey"}, database.ErrForeignKeyViolation},
		{"unknown provider", &pq.Error{Code: "23503", Constraint: "job_applications_provider_id_fkey"}, database.ErrForeignKeyViolation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, sessions := setupMockJobDB(t)

			mock.ExpectBegin()
			mock.ExpectQuery(`INSERT INTO job_applications`).WillReturnError(tt.pqErr)
			mock.ExpectRollback()

			_, err := NewService(sessions).Apply(context.Background(), entity.ApplicationKey{ProviderID: 2, JobID: 11})

			assert.ErrorIs(t, err, tt.wantErr)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestApply_ZeroJobIsForeignKey(t *testing.T) {
	mock, sessions := setupMockJobDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO job_applications`).
		WithArgs(int64(2), int64(0)).
		WillReturnError(&pq.Error{Code: "23503", Constraint: "job_applications_job_id_fkey"})
	mock.ExpectRollback()

	_, err := NewService(sessions).Apply(context.Background(), entity.ApplicationKey{ProviderID: 2})

	assert.ErrorIs(t, err, database.ErrForeignKeyViolation)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateJob_NegativeRecipientIsForeignKey(t *testing.T) {
	mock, sessions := setupMockJobDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO jobs`).
		WithArgs(int64(-5), "elderly", nil).
		WillReturnError(&pq.Error{Code: "23503", Constraint: "jobs_recipient_id_fkey"})
	mock.ExpectRollback()

	_, err := NewService(sessions).CreateJob(context.Background(), entity.JobParams{RecipientID: -5, RequiredCaregivingType: "elderly"})

	assert.ErrorIs(t, err, database.ErrForeignKeyViolation)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetApplication_NotFound(t *testing.T) {
	mock, sessions := setupMockJobDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT (.+) FROM job_applications`).
		WithArgs(int64(2), int64(11)).
		WillReturnRows(sqlmock.NewRows([]string{"provider_id", "job_id", "date_applied"}))
	mock.ExpectRollback()

	a, err := NewService(sessions).GetApplication(context.Background(), entity.ApplicationKey{ProviderID: 2, JobID: 11})

	assert.Nil(t, a)
	assert.ErrorIs(t, err, database.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestHandlerApply(t *testing.T) {
	mock, sessions := setupMockJobDB(t)
	h := NewHandler(sessions, zap.NewNop().Sugar())

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO job_applications`).
		WithArgs(int64(2), int64(11)).
		WillReturnRows(sqlmock.NewRows([]string{"provider_id", "job_id"}).AddRow(int64(2), int64(11)))
	mock.ExpectCommit()

	req := httptest.NewRequest(http.MethodPost, "/api/applications", strings.NewReader(`{"provider_id":2,"job_id":11}`))
	w := httptest.NewRecorder()
	h.Apply(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.EqualValues(t, 2, body["provider_id"])
	assert.EqualValues(t, 11, body["job_id"])
	assert.Equal(t, "Application created.", body["message"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestHandlerGetApplication(t *testing.T) {
	mock, sessions := setupMockJobDB(t)
	h := NewHandler(sessions, zap.NewNop().Sugar())
	applied := time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT (.+) FROM job_applications`).
		WithArgs(int64(2), int64(11)).
		WillReturnRows(sqlmock.NewRows([]string{"provider_id", "job_id", "date_applied"}).
			AddRow(int64(2), int64(11), applied))
	mock.ExpectCommit()

	req := httptest.NewRequest(http.MethodGet, "/api/applications/2/11", nil)
	req.SetPathValue("provider_id", "2")
	req.SetPathValue("job_id", "11")
	w := httptest.NewRecorder()
	h.GetApplication(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"date_applied":"2024-03-02"`)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestHandlerCreateJob_UnknownRecipient(t *testing.T) {
	mock, sessions := setupMockJobDB(t)
	h := NewHandler(sessions, zap.NewNop().Sugar())

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO jobs`).
		WillReturnError(&pq.Error{Code: "23503", Constraint: "jobs_recipient_id_fkey"})
	mock.ExpectRollback()

	req := httptest.NewRequest(http.MethodPost, "/api/jobs",
		strings.NewReader(`{"recipient_id":7,"required_caregiving_type":"Babysitter"}`))
	w := httptest.NewRecorder()
	h.CreateJob(w, req)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), `"kind":"foreign_key_violation"`)
	require.NoError(t, mock.ExpectationsWereMet())
}

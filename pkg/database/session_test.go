package database

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func setupMockSessions(t *testing.T) (sqlmock.Sqlmock, *Sessions) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	s, err := NewSessions(sqlx.NewDb(db, DriverName), zap.NewNop().Sugar(), 1)
	require.NoError(t, err)
	return mock, s
}

func TestNewSessions_RejectsNode(t *testing.T) {
	_, err := NewSessions(nil, nil, 1<<20)
	assert.Error(t, err)
}

func TestRun_Commits(t *testing.T) {
	mock, s := setupMockSessions(t)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO accounts`).WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(`INSERT INTO providers`).WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	err := s.Run(context.Background(), "test.commit", func(tx *sqlx.Tx) error {
		if _, err := tx.Exec(`INSERT INTO accounts DEFAULT VALUES`); err != nil {
			return err
		}
		_, err := tx.Exec(`INSERT INTO providers DEFAULT VALUES`)
		return err
	})

	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRun_RollsBackOnStatementFailure(t *testing.T) {
	mock, s := setupMockSessions(t)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO accounts`).WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(`INSERT INTO providers`).WillReturnError(&pq.Error{Code: "23503", Constraint: "providers_account_id_fkey"})
	mock.ExpectRollback()

	err := s.Run(context.Background(), "test.rollback", func(tx *sqlx.Tx) error {
		if _, err := tx.Exec(`INSERT INTO accounts DEFAULT VALUES`); err != nil {
			return err
		}
		_, err := tx.Exec(`INSERT INTO providers DEFAULT VALUES`)
		return err
	})

	assert.ErrorIs(t, err, ErrForeignKeyViolation)
	var dbErr *Error
	require.ErrorAs(t, err, &dbErr)
	assert.Equal(t, "test.rollback", dbErr.Op)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRun_PassesTypedErrorsThrough(t *testing.T) {
	mock, s := setupMockSessions(t)
	want := NotFound("test.typed", "row 9")

	mock.ExpectBegin()
	mock.ExpectRollback()

	err := s.Run(context.Background(), "test.outer", func(*sqlx.Tx) error { return want })

	assert.Same(t, want, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRun_RollsBackOnPanic(t *testing.T) {
	mock, s := setupMockSessions(t)

	mock.ExpectBegin()
	mock.ExpectRollback()

	assert.PanicsWithValue(t, "boom", func() {
		_ = s.Run(context.Background(), "test.panic", func(*sqlx.Tx) error { panic("boom") })
	})
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRun_BeginFailure(t *testing.T) {
	mock, s := setupMockSessions(t)

	mock.ExpectBegin().WillReturnError(errors.New("dial tcp 127.0.0.1:5432: connect: connection refused"))

	called := false
	err := s.Run(context.Background(), "test.begin", func(*sqlx.Tx) error {
		called = true
		return nil
	})

	assert.False(t, called)
	assert.ErrorIs(t, err, ErrStoreUnavailable)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRun_CommitFailure(t *testing.T) {
	mock, s := setupMockSessions(t)

	mock.ExpectBegin()
	mock.ExpectCommit().WillReturnError(&pq.Error{Code: "57P01", Message: "terminating connection due to administrator command"})

	err := s.Run(context.Background(), "test.commit", func(*sqlx.Tx) error { return nil })

	assert.ErrorIs(t, err, ErrStoreUnavailable)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRun_LogsSessionID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	core, logs := observer.New(zapcore.DebugLevel)
	s, err := NewSessions(sqlx.NewDb(db, DriverName), zap.New(core).Sugar(), 3)
	require.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectCommit()
	require.NoError(t, s.Run(context.Background(), "test.log", func(*sqlx.Tx) error { return nil }))

	entries := logs.FilterMessage("session committed").All()
	require.Len(t, entries, 1)
	ctx := entries[0].ContextMap()
	assert.Equal(t, "test.log", ctx["op"])
	assert.NotEmpty(t, ctx["session"])
}

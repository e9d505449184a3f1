package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/bwmarrin/snowflake"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

// Sessions opens one transaction per logical operation on a shared pool.
// It is safe for concurrent use; the transactions it hands out are not.
type Sessions struct {
	db     *sqlx.DB
	logger *zap.SugaredLogger
	node   *snowflake.Node
}

// NewSessions wraps db. nodeID seeds the snowflake generator used to tag
// each session in the logs.
func NewSessions(db *sqlx.DB, logger *zap.SugaredLogger, nodeID int64) (*Sessions, error) {
	node, err := snowflake.NewNode(nodeID)
	if err != nil {
		return nil, fmt.Errorf("snowflake node %d: %w", nodeID, err)
	}
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Sessions{db: db, logger: logger, node: node}, nil
}

// Run executes fn inside a single transaction. The transaction commits when fn
// returns nil and rolls back on error or panic, so either every statement fn
// issued becomes visible or none does. Any failure comes back as a *Error.
func (s *Sessions) Run(ctx context.Context, op string, fn func(tx *sqlx.Tx) error) error {
	sid := s.node.Generate()
	log := s.logger.With("session", sid.String(), "op", op)

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		log.Warnw("begin session failed", "err", err)
		return Translate(op, err)
	}
	log.Debug("session begin")

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			log.Errorw("session aborted by panic", "panic", p)
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			log.Warnw("rollback failed", "err", rbErr)
		}
		translated := Translate(op, err)
		log.Debugw("session rolled back", "err", translated)
		return translated
	}
	if err := tx.Commit(); err != nil {
		log.Warnw("commit failed", "err", err)
		return Translate(op, err)
	}
	log.Debug("session committed")
	return nil
}

// DB exposes the underlying pool for health checks.
func (s *Sessions) DB() *sqlx.DB { return s.db }

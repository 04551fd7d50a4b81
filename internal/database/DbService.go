package database

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/The127/ioc"
)

// DbService hands out one transaction per scope. Close commits it.
type DbService interface {
	GetTx() (*sql.Tx, error)
	AfterCommit(fn func())
	Close() error
}

type dbService struct {
	tx          *sql.Tx
	dp          *ioc.DependencyProvider
	afterCommit []func()
}

func NewDbService(dp *ioc.DependencyProvider) DbService {
	return &dbService{
		dp: dp,
	}
}

func (s *dbService) GetTx() (*sql.Tx, error) {
	if s.tx != nil {
		return s.tx, nil
	}

	db := ioc.GetDependency[*sql.DB](s.dp)
	tx, err := db.Begin()
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}

	s.tx = tx
	return tx, nil
}

// AfterCommit queues fn until the scope's transaction has committed. A scope
// that never opened a transaction runs the queue on Close.
func (s *dbService) AfterCommit(fn func()) {
	s.afterCommit = append(s.afterCommit, fn)
}

func (s *dbService) runAfterCommit() {
	hooks := s.afterCommit
	s.afterCommit = nil
	for _, fn := range hooks {
		fn()
	}
}

func (s *dbService) Close() error {
	if s.tx == nil {
		s.runAfterCommit()
		return nil
	}

	err := s.tx.Commit()
	if err == nil {
		s.runAfterCommit()
		return nil
	}
	if errors.Is(err, sql.ErrTxDone) {
		return nil
	}

	rollbackErr := s.tx.Rollback()
	if rollbackErr != nil && !errors.Is(rollbackErr, sql.ErrTxDone) {
		return fmt.Errorf("closing db transaction: %w", errors.Join(err, rollbackErr))
	}

	return fmt.Errorf("committing db transaction: %w", err)
}

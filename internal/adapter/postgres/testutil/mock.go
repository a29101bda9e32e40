// Package testutil provides pgxmock helpers for repository unit tests.
package testutil

import (
	"testing"

	"github.com/pashagolub/pgxmock/v2"

	"github.com/heartmarshall/serenity-backend/internal/adapter/postgres"
)

// NewMockQuerier returns a pgxmock pool usable as a postgres.Querier.
// The pool is closed via t.Cleanup.
func NewMockQuerier(t *testing.T) (postgres.Querier, pgxmock.PgxPoolIface) {
	t.Helper()

	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("testutil: create pgxmock pool: %v", err)
	}
	t.Cleanup(mock.Close)

	return mock, mock
}

// ExpectationsWereMet fails the test if any registered expectation was not met.
func ExpectationsWereMet(t *testing.T, mock pgxmock.PgxPoolIface) {
	t.Helper()

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled pgxmock expectations: %v", err)
	}
}

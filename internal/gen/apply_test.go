package gen_test

import (
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mickamy/ormmeta/internal/gen"
)

func TestApply(t *testing.T) {
	t.Parallel()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	stmts := []string{
		`CREATE TABLE "a" ("id" INTEGER NOT NULL)`,
		`CREATE INDEX "a_id_index" ON "a" ("id")`,
	}
	for _, stmt := range stmts {
		mock.ExpectExec(stmt).WillReturnResult(sqlmock.NewResult(0, 0))
	}

	require.NoError(t, gen.Apply(t.Context(), db, stmts))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApply_StopsAtFirstError(t *testing.T) {
	t.Parallel()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	boom := errors.New("boom")
	mock.ExpectExec("CREATE TABLE a").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("CREATE TABLE b").WillReturnError(boom)

	err = gen.Apply(t.Context(), db, []string{"CREATE TABLE a", "CREATE TABLE b", "CREATE TABLE c"})
	require.ErrorIs(t, err, boom)
	assert.ErrorContains(t, err, "statement 2")
	assert.NoError(t, mock.ExpectationsWereMet())
}

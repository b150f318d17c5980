package catalogue

import (
	"context"
	"regexp"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCatalogueMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func TestRepositoryListAll(t *testing.T) {
	db, mock, cleanup := newCatalogueMock(t)
	defer cleanup()
	repo := NewRepository(db, "module_catalogue")

	rows := sqlmock.NewRows([]string{"code", "semester", "intake_year", "alternating", "prerequisites", "antirequisites", "timetable"}).
		AddRow("MT3501", "S1", "2023/2024", false, "MT2501", "", "9am Mon").
		AddRow("MT4512", "S2", "2023/2024", true, "", "", "")
	mock.ExpectQuery(regexp.QuoteMeta("SELECT code, semester, intake_year, alternating")).
		WillReturnRows(rows)

	list, err := repo.ListAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, list, 2)
	assert.Equal(t, "MT3501", list[0].Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoadDB(t *testing.T) {
	db, mock, cleanup := newCatalogueMock(t)
	defer cleanup()

	rows := sqlmock.NewRows([]string{"code", "semester", "intake_year", "alternating", "prerequisites", "antirequisites", "timetable"}).
		AddRow("MT3501", "S1", "2023/2024", false, "", "", "")
	mock.ExpectQuery(regexp.QuoteMeta("SELECT code, semester, intake_year, alternating")).
		WillReturnRows(rows)

	cat, err := LoadDB(context.Background(), db, "", nil)
	require.NoError(t, err)
	assert.True(t, cat.Has("MT3501"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

package identity

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/courtshot/courtshot/internal/model"
)

// passthroughConverter lets sqlmock accept []string arguments, which
// the pgx driver sends as arrays
type passthroughConverter struct{}

func (passthroughConverter) ConvertValue(v any) (driver.Value, error) {
	return driver.Value(v), nil
}

func newStoreWithMock(t *testing.T) (*PostgresStore, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(
		sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp),
		sqlmock.ValueConverterOption(passthroughConverter{}))
	require.NoError(t, err)
	return NewPostgresStore(db), mock, db
}

var userRowColumns = []string{"id", "email", "name", "role", "last_login", "created_at"}

func TestGetByID(t *testing.T) {
	store, mock, db := newStoreWithMock(t)
	defer db.Close()

	created := time.Date(2025, 1, 10, 9, 0, 0, 0, time.UTC)
	lastLogin := time.Date(2025, 5, 1, 8, 30, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT id, email, name, role, last_login, created_at FROM users WHERE id = \$1`).
		WithArgs("u1").
		WillReturnRows(sqlmock.NewRows(userRowColumns).
			AddRow("u1", "dana@example.com", "Dana Ortiz", "player", lastLogin, created))

	u, err := store.GetByID(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, "Dana Ortiz", u.Name)
	assert.Equal(t, "player", u.Role)
	require.NotNil(t, u.LastLogin)
	assert.Equal(t, lastLogin, *u.LastLogin)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByIDNullLastLogin(t *testing.T) {
	store, mock, db := newStoreWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT .* FROM users WHERE id = \$1`).
		WithArgs("u1").
		WillReturnRows(sqlmock.NewRows(userRowColumns).
			AddRow("u1", "dana@example.com", "Dana Ortiz", "player", nil, time.Now()))

	u, err := store.GetByID(context.Background(), "u1")
	require.NoError(t, err)
	assert.Nil(t, u.LastLogin)
}

func TestGetByIDNotFound(t *testing.T) {
	store, mock, db := newStoreWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT .* FROM users WHERE id = \$1`).
		WithArgs("ghost").
		WillReturnError(sql.ErrNoRows)

	_, err := store.GetByID(context.Background(), "ghost")
	assert.ErrorIs(t, err, model.ErrUserNotFound)
}

func TestGetByIDDBError(t *testing.T) {
	store, mock, db := newStoreWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT .* FROM users WHERE id = \$1`).
		WithArgs("u1").
		WillReturnError(errors.New("db down"))

	_, err := store.GetByID(context.Background(), "u1")
	require.Error(t, err)
	assert.NotErrorIs(t, err, model.ErrUserNotFound)
	assert.Contains(t, err.Error(), "db down")
}

func TestGetByIDsBatch(t *testing.T) {
	store, mock, db := newStoreWithMock(t)
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery(`SELECT .* FROM users WHERE id = ANY\(\$1\)`).
		WithArgs([]string{"u1", "u2", "ghost"}).
		WillReturnRows(sqlmock.NewRows(userRowColumns).
			AddRow("u1", "dana@example.com", "Dana Ortiz", "player", nil, now).
			AddRow("u2", "sam@example.com", "Sam Lee", "player", nil, now))

	// One query regardless of how many IDs are asked for; absent IDs
	// are simply missing from the result
	users, err := store.GetByIDs(context.Background(), []string{"u1", "u2", "ghost"})
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "u1", users[0].ID)
	assert.Equal(t, "u2", users[1].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByIDsEmptySkipsQuery(t *testing.T) {
	store, mock, db := newStoreWithMock(t)
	defer db.Close()

	users, err := store.GetByIDs(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, users)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByEmail(t *testing.T) {
	store, mock, db := newStoreWithMock(t)
	defer db.Close()

	created := time.Date(2025, 1, 10, 9, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`SELECT id, email, name, role, password_hash, last_login, created_at\s+FROM users WHERE email = \$1`).
		WithArgs("dana@example.com").
		WillReturnRows(sqlmock.NewRows(
			[]string{"id", "email", "name", "role", "password_hash", "last_login", "created_at"}).
			AddRow("u1", "dana@example.com", "Dana Ortiz", "player", "$2a$10$hash", nil, created))

	u, err := store.GetByEmail(context.Background(), "dana@example.com")
	require.NoError(t, err)
	assert.Equal(t, "$2a$10$hash", u.PasswordHash)
}

func TestGetByEmailNotFound(t *testing.T) {
	store, mock, db := newStoreWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT .* FROM users WHERE email = \$1`).
		WithArgs("ghost@example.com").
		WillReturnError(sql.ErrNoRows)

	_, err := store.GetByEmail(context.Background(), "ghost@example.com")
	assert.ErrorIs(t, err, model.ErrUserNotFound)
}

func TestSetRole(t *testing.T) {
	store, mock, db := newStoreWithMock(t)
	defer db.Close()

	mock.ExpectExec(`UPDATE users SET role = \$2, updated_at = now\(\) WHERE id = \$1`).
		WithArgs("u1", "admin").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, store.SetRole(context.Background(), "u1", "admin"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSetRoleUnknownUser(t *testing.T) {
	store, mock, db := newStoreWithMock(t)
	defer db.Close()

	mock.ExpectExec(`UPDATE users SET role = \$2, updated_at = now\(\) WHERE id = \$1`).
		WithArgs("ghost", "admin").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := store.SetRole(context.Background(), "ghost", "admin")
	assert.ErrorIs(t, err, model.ErrUserNotFound)
}

func TestTouchLastLogin(t *testing.T) {
	store, mock, db := newStoreWithMock(t)
	defer db.Close()

	at := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	mock.ExpectExec(`UPDATE users SET last_login = \$2 WHERE id = \$1`).
		WithArgs("u1", at).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, store.TouchLastLogin(context.Background(), "u1", at))
}

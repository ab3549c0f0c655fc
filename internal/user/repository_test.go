package user

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
)

func setupUserMock(t *testing.T) (Repository, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	repo := NewRepository(sqlxDB)

	closer := func() { sqlxDB.Close() }
	return repo, mock, closer
}

func userColumnNames() []string {
	return []string{"id", "name", "email", "password_hash", "role", "created_at"}
}

func TestCreateUser(t *testing.T) {
	repo, mock, close := setupUserMock(t)
	defer close()

	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO users`)).
		WithArgs("Ana", "ana@unbroken.gym", "hashed", "staff").
		WillReturnRows(sqlmock.NewRows(userColumnNames()).
			AddRow(1, "Ana", "ana@unbroken.gym", "hashed", "staff", now))

	user, err := repo.Create(context.Background(), "Ana", "ana@unbroken.gym", "hashed", "staff")
	require.NoError(t, err)
	require.Equal(t, 1, user.ID)
	require.Equal(t, "staff", user.Role)
}

func TestFindByEmail(t *testing.T) {
	repo, mock, close := setupUserMock(t)
	defer close()

	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta(`WHERE email = $1`)).
		WithArgs("ana@unbroken.gym").
		WillReturnRows(sqlmock.NewRows(userColumnNames()).
			AddRow(1, "Ana", "ana@unbroken.gym", "hashed", "staff", now))

	user, err := repo.FindByEmail(context.Background(), "ana@unbroken.gym")
	require.NoError(t, err)
	require.Equal(t, "Ana", user.Name)
}

func TestEmailExists(t *testing.T) {
	repo, mock, close := setupUserMock(t)
	defer close()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT EXISTS`)).
		WithArgs("ana@unbroken.gym").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := repo.EmailExists(context.Background(), "ana@unbroken.gym")
	require.NoError(t, err)
	require.True(t, exists)
}

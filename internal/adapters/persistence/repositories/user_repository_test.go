package repositories

import (
	"context"
	"testing"
	"time"

	"caribe-tours/internal/adapters/persistence/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupMockDB(t *testing.T) (sqlmock.Sqlmock, UserRepository) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	return mock, NewUserRepository(db)
}

func TestUserRepository_GetByEmail(t *testing.T) {
	mock, repo := setupMockDB(t)

	now := time.Now()
	rows := sqlmock.NewRows([]string{
		"id", "email", "password", "name", "phone", "role", "is_active", "created_at", "updated_at", "deleted_at",
	}).AddRow(
		1, "ana@example.com", "$2a$12$hash", "Ana", "8095551234", "USER", true, now, now, nil,
	)

	mock.ExpectQuery("SELECT \\* FROM `users`").
		WithArgs("ana@example.com").
		WillReturnRows(rows)

	user, err := repo.GetByEmail(context.Background(), "ana@example.com")
	require.NoError(t, err)
	assert.Equal(t, uint(1), user.ID)
	assert.Equal(t, "ana@example.com", user.Email)
	assert.Equal(t, "USER", user.Role)
	assert.True(t, user.IsActive)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_GetByEmail_NotFound(t *testing.T) {
	mock, repo := setupMockDB(t)

	mock.ExpectQuery("SELECT \\* FROM `users`").
		WithArgs("missing@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email"}))

	user, err := repo.GetByEmail(context.Background(), "missing@example.com")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	assert.Nil(t, user)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_Create(t *testing.T) {
	mock, repo := setupMockDB(t)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `users`").
		WillReturnResult(sqlmock.NewResult(42, 1))
	mock.ExpectCommit()

	user := &models.User{
		Email:    "ana@example.com",
		Password: "$2a$12$hash",
		Name:     "Ana",
		Role:     "USER",
		IsActive: true,
	}
	require.NoError(t, repo.Create(context.Background(), user))
	assert.Equal(t, uint(42), user.ID)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_ExistsByEmail(t *testing.T) {
	mock, repo := setupMockDB(t)

	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `users`").
		WithArgs("ana@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"count(*)"}).AddRow(1))

	exists, err := repo.ExistsByEmail(context.Background(), "ana@example.com")
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_List(t *testing.T) {
	mock, repo := setupMockDB(t)

	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `users`").
		WillReturnRows(sqlmock.NewRows([]string{"count(*)"}).AddRow(2))

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "email", "name", "role", "is_active", "created_at", "updated_at"}).
		AddRow(2, "b@example.com", "B", "AGENCY", true, now, now).
		AddRow(1, "a@example.com", "A", "USER", true, now, now)

	mock.ExpectQuery("SELECT \\* FROM `users`").
		WillReturnRows(rows)

	users, total, err := repo.List(context.Background(), 0, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, users, 2)
	assert.Equal(t, uint(2), users[0].ID)

	require.NoError(t, mock.ExpectationsWereMet())
}

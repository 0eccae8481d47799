package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/wisnuaw/tasklist-api/internal/models"
	"github.com/wisnuaw/tasklist-api/internal/repository"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// stubUserRepository lets tests script repository outcomes that cannot
// be produced sequentially, like losing a register race.
type stubUserRepository struct {
	findByEmailErr error
	createErr      error
}

func (r *stubUserRepository) Create(*models.User) error { return r.createErr }

func (r *stubUserRepository) FindByID(string) (*models.User, error) {
	return nil, gorm.ErrRecordNotFound
}

func (r *stubUserRepository) FindByEmail(string) (*models.User, error) {
	return nil, r.findByEmailErr
}

func (r *stubUserRepository) Update(*models.User) error { return nil }

func TestRegister_DuplicateEmailRaceMapsToEmailTaken(t *testing.T) {
	// Two concurrent registers can both pass the FindByEmail check;
	// the loser then hits the unique index inside Create and must
	// still surface as a conflict, not an internal error
	service := NewAuthService(&stubUserRepository{
		findByEmailErr: gorm.ErrRecordNotFound,
		createErr:      gorm.ErrDuplicatedKey,
	})

	_, err := service.Register(RegisterInput{
		Email:    "racer@example.com",
		Password: "supersecret",
	})
	require.ErrorIs(t, err, ErrEmailTaken)
}

func TestUserRepository_UniqueEmailTranslatesToDuplicatedKey(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}))

	repo := repository.NewUserRepository(db)
	require.NoError(t, repo.Create(&models.User{
		ID:           "user_one",
		Email:        "dup@example.com",
		PasswordHash: "hashedpassword",
	}))

	err = repo.Create(&models.User{
		ID:           "user_two",
		Email:        "dup@example.com",
		PasswordHash: "hashedpassword",
	})
	require.True(t, errors.Is(err, gorm.ErrDuplicatedKey),
		"the unique index violation must translate to gorm.ErrDuplicatedKey")
}

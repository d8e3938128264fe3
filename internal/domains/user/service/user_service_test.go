package service

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"bookcatalog-backend/internal/domains/user/model"
	"bookcatalog-backend/internal/domains/user/repository"
	"bookcatalog-backend/pkg/jwt"
)

type fakeUserRepo struct {
	users  map[int64]*model.User
	nextID int64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[int64]*model.User{}}
}

func (f *fakeUserRepo) Create(_ context.Context, u *model.User) (*model.User, error) {
	for _, existing := range f.users {
		if existing.Username == u.Username {
			return nil, model.ErrDuplicateUsername
		}
		if existing.Email == u.Email {
			return nil, model.ErrDuplicateEmail
		}
	}
	f.nextID++
	created := *u
	created.ID = f.nextID
	f.users[created.ID] = &created
	return &created, nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id int64) (*model.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	copied := *u
	return &copied, nil
}

func (f *fakeUserRepo) FindActiveByUsername(_ context.Context, username string) (*model.User, error) {
	for _, u := range f.users {
		if u.Username == username && u.IsActive() {
			copied := *u
			return &copied, nil
		}
	}
	return nil, model.ErrUserNotFound
}

func (f *fakeUserRepo) WithTx(_ pgx.Tx) repository.RepositoryInterface { return f }

func seedUser(t *testing.T, repo *fakeUserRepo, username, password string, status int) *model.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	u, err := repo.Create(context.Background(), &model.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: string(hash),
		AuthKey:      "0123456789abcdef0123456789abcdef",
		Status:       status,
	})
	require.NoError(t, err)
	return u
}

func newLoginService(repo *fakeUserRepo) *UserService {
	return NewUserService(nil, repo, nil, jwt.NewManager("test-secret", 60))
}

func TestLogin_Success(t *testing.T) {
	repo := newFakeUserRepo()
	seeded := seedUser(t, repo, "reader", "correct-horse", model.StatusActive)
	svc := newLoginService(repo)

	resp, err := svc.Login(context.Background(), &model.LoginRequest{Username: "reader", Password: "correct-horse"})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)
	assert.Equal(t, seeded.ID, resp.User.ID)

	claims, err := jwt.NewManager("test-secret", 60).Validate(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, seeded.ID, claims.UserID)
	assert.Equal(t, "reader", claims.Username)
}

func TestLogin_WrongPassword(t *testing.T) {
	repo := newFakeUserRepo()
	seedUser(t, repo, "reader", "correct-horse", model.StatusActive)
	svc := newLoginService(repo)

	_, err := svc.Login(context.Background(), &model.LoginRequest{Username: "reader", Password: "battery-staple"})
	assert.ErrorIs(t, err, model.ErrInvalidCredentials)
}

func TestLogin_UnknownUser(t *testing.T) {
	svc := newLoginService(newFakeUserRepo())

	_, err := svc.Login(context.Background(), &model.LoginRequest{Username: "nobody", Password: "whatever"})
	assert.ErrorIs(t, err, model.ErrInvalidCredentials)
}

func TestLogin_DeletedUserCannotLogIn(t *testing.T) {
	repo := newFakeUserRepo()
	seedUser(t, repo, "gone", "correct-horse", model.StatusDeleted)
	svc := newLoginService(repo)

	_, err := svc.Login(context.Background(), &model.LoginRequest{Username: "gone", Password: "correct-horse"})
	assert.ErrorIs(t, err, model.ErrInvalidCredentials)
}

func TestLogin_MissingFields(t *testing.T) {
	svc := newLoginService(newFakeUserRepo())

	_, err := svc.Login(context.Background(), &model.LoginRequest{})
	assert.Error(t, err)
}

func TestRegisterRequestValidate(t *testing.T) {
	valid := model.RegisterRequest{Username: "reader", Email: "reader@example.com", Password: "secret1"}
	assert.NoError(t, valid.Validate())

	missingEmail := model.RegisterRequest{Username: "reader", Password: "secret1"}
	assert.Error(t, missingEmail.Validate())

	badEmail := model.RegisterRequest{Username: "reader", Email: "not-an-email", Password: "secret1"}
	assert.Error(t, badEmail.Validate())

	shortPassword := model.RegisterRequest{Username: "reader", Email: "reader@example.com", Password: "abc"}
	assert.Error(t, shortPassword.Validate())
}

func TestGenerateAuthKey(t *testing.T) {
	a, err := generateAuthKey()
	require.NoError(t, err)
	b, err := generateAuthKey()
	require.NoError(t, err)

	assert.Len(t, a, 32)
	assert.NotEqual(t, a, b)
}

package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"bookcatalog-backend/internal/domains/rbac"
	"bookcatalog-backend/internal/domains/user/model"
	"bookcatalog-backend/internal/domains/user/repository"
	"bookcatalog-backend/pkg/database"
	"bookcatalog-backend/pkg/jwt"
)

type UserService struct {
	db        *pgxpool.Pool
	repo      repository.RepositoryInterface
	roleStore *rbac.PostgresStore
	jwt       *jwt.Manager
}

func NewUserService(db *pgxpool.Pool, repo repository.RepositoryInterface, roleStore *rbac.PostgresStore, jwtManager *jwt.Manager) *UserService {
	return &UserService{
		db:        db,
		repo:      repo,
		roleStore: roleStore,
		jwt:       jwtManager,
	}
}

// Register creates the account and grants the default role in a single
// transaction: either the user exists with their role, or nothing happened.
func (s *UserService) Register(ctx context.Context, req *model.RegisterRequest) (*model.User, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	authKey, err := generateAuthKey()
	if err != nil {
		return nil, err
	}

	u := &model.User{
		Username:     strings.TrimSpace(req.Username),
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: string(hash),
		AuthKey:      authKey,
		Status:       model.StatusActive,
	}

	created, err := database.WithTransactionResult(ctx, s.db, func(tx pgx.Tx) (*model.User, error) {
		created, err := s.repo.WithTx(tx).Create(ctx, u)
		if err != nil {
			return nil, err
		}

		gate := rbac.NewGate(s.roleStore.WithTx(tx))
		granted, err := gate.AssignDefaultRole(ctx, created.ID)
		if err != nil {
			return nil, err
		}
		if !granted {
			log.Warn().Int64("user_id", created.ID).Msg("user registered without default role")
		}

		return created, nil
	})
	if err != nil {
		return nil, err
	}

	log.Info().Int64("user_id", created.ID).Str("username", created.Username).Msg("user registered")
	return created, nil
}

// Login verifies credentials against active accounts and issues a token. A
// missing user and a wrong password are indistinguishable to the caller.
func (s *UserService) Login(ctx context.Context, req *model.LoginRequest) (*model.LoginResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	u, err := s.repo.FindActiveByUsername(ctx, strings.TrimSpace(req.Username))
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return nil, model.ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)) != nil {
		return nil, model.ErrInvalidCredentials
	}

	token, err := s.jwt.Generate(u.ID, u.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	return &model.LoginResponse{Token: token, User: u}, nil
}

func (s *UserService) GetByID(ctx context.Context, id int64) (*model.User, error) {
	return s.repo.GetByID(ctx, id)
}

func generateAuthKey() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate auth key: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

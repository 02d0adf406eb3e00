// Package service contains the business rules: input validation, username
// case folding, membership checks and response ordering. Services accept
// repository interfaces so tests can substitute in-memory mocks, and return
// apperror values that the HTTP layer translates to status codes.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/LucaLemos/GestaoInformacaoBackend/internal/apperror"
	"github.com/LucaLemos/GestaoInformacaoBackend/internal/model"
	"github.com/LucaLemos/GestaoInformacaoBackend/internal/repository"
)

// AuthService handles registration and login. No session or token is issued;
// each call re-authenticates independently.
type AuthService struct {
	users  repository.UserRepository
	logger *slog.Logger
}

func NewAuthService(users repository.UserRepository, logger *slog.Logger) *AuthService {
	return &AuthService{users: users, logger: logger}
}

// Register creates an account. The username is folded to lowercase before
// the repository ever sees it, which makes uniqueness case-insensitive.
func (s *AuthService) Register(ctx context.Context, username, password string) (*model.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, apperror.ValidationFailed("username", "username is required")
	}
	if password == "" {
		return nil, apperror.ValidationFailed("password", "password is required")
	}

	username = strings.ToLower(username)

	user, err := s.users.Register(ctx, username, password)
	if err != nil {
		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			return nil, err
		}
		s.logger.Error("registration failed",
			slog.String("username", username),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("registering user: %w", err)
	}

	s.logger.Info("user registered",
		slog.Int64("id", user.ID),
		slog.String("username", user.Username),
	)
	return user, nil
}

// Login checks the supplied credentials against the stored account. The
// stored password is compared by exact string equality, preserving the
// contract of the system this backend replaces.
func (s *AuthService) Login(ctx context.Context, username, password string) (*model.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, apperror.ValidationFailed("username", "username is required")
	}
	if password == "" {
		return nil, apperror.ValidationFailed("password", "password is required")
	}

	user, err := s.users.GetByUsername(ctx, strings.ToLower(username))
	if err != nil {
		return nil, err
	}

	if user.Password != password {
		return nil, apperror.Unauthorized("incorrect password")
	}

	s.logger.Info("user logged in", slog.Int64("id", user.ID))
	return user, nil
}

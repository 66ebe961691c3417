package service

import (
	"context"
	"errors"
	"fmt"

	"people_api/internal/models"
	"people_api/internal/repository"
)

// AuthService handles user auth logic
type AuthService struct {
	authRepo repository.Authorization
	hasher   PasswordHasher
	tokens   *TokenManager
}

func NewAuthService(repo repository.Authorization, hasher PasswordHasher, tokens *TokenManager) *AuthService {
	return &AuthService{authRepo: repo, hasher: hasher, tokens: tokens}
}

// SignUp hashes password and creates a new user. The returned user never carries the hash.
func (s *AuthService) SignUp(ctx context.Context, username, password string) (models.User, error) {
	existing, err := s.authRepo.GetByUsername(ctx, username)
	if err != nil {
		return models.User{}, storeFailure(err)
	}
	if existing != nil {
		return models.User{}, ErrDuplicateUser
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return models.User{}, err
	}

	u, err := s.authRepo.Create(ctx, username, hash)
	if err != nil {
		// lost a race with a concurrent signup for the same name
		if errors.Is(err, repository.ErrDuplicate) {
			return models.User{}, ErrDuplicateUser
		}
		return models.User{}, storeFailure(err)
	}
	u.PasswordHash = ""
	return u, nil
}

// Login verifies credentials and returns the user together with a signed session token.
func (s *AuthService) Login(ctx context.Context, username, password string) (models.User, string, error) {
	u, err := s.authRepo.GetByUsername(ctx, username)
	if err != nil {
		return models.User{}, "", storeFailure(err)
	}
	if u == nil {
		return models.User{}, "", ErrUserNotFound
	}
	if !s.hasher.Check(password, u.PasswordHash) {
		return models.User{}, "", ErrPasswordMismatch
	}

	token, err := s.tokens.Issue(u.Username)
	if err != nil {
		return models.User{}, "", err
	}
	u.PasswordHash = ""
	return *u, token, nil
}

// ParseToken verifies a session token and returns its username.
func (s *AuthService) ParseToken(token string) (string, error) {
	return s.tokens.Parse(token)
}

func storeFailure(err error) error {
	return fmt.Errorf("%w: %w", ErrStoreFailure, err)
}

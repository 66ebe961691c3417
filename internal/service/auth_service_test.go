package service

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"errors"
	"testing"
	"time"

	"people_api/internal/models"
	"people_api/internal/repository"

	"github.com/golang-jwt/jwt/v5"
)

const testSecret = "test-secret"

// mockAuthRepo is a lightweight in-test mock for repository.Authorization.
type mockAuthRepo struct {
	CreateFn        func(username, hash string) (models.User, error)
	GetByUsernameFn func(username string) (*models.User, error)

	createCalls []struct {
		username string
		hash     string
	}
	getCalls []string
}

func (m *mockAuthRepo) Create(_ context.Context, username, hash string) (models.User, error) {
	m.createCalls = append(m.createCalls, struct {
		username string
		hash     string
	}{username: username, hash: hash})
	return m.CreateFn(username, hash)
}

func (m *mockAuthRepo) GetByUsername(_ context.Context, username string) (*models.User, error) {
	m.getCalls = append(m.getCalls, username)
	if m.GetByUsernameFn == nil {
		return nil, nil
	}
	return m.GetByUsernameFn(username)
}

func newTestAuthService(repo repository.Authorization) *AuthService {
	return NewAuthService(repo, NewBcryptHasher(), NewTokenManager(testSecret))
}

// --- SignUp tests ---

func TestAuthService_SignUp_SuccessHashesPasswordAndCallsRepo(t *testing.T) {
	mock := &mockAuthRepo{
		CreateFn: func(username, hash string) (models.User, error) {
			return models.User{ID: "u-42", Username: username, PasswordHash: hash}, nil
		},
	}
	svc := newTestAuthService(mock)

	u, err := svc.SignUp(context.Background(), "alice", "s3cr3t")
	if err != nil {
		t.Fatalf("SignUp returned error: %v", err)
	}
	if u.ID != "u-42" || u.Username != "alice" {
		t.Fatalf("unexpected user: %+v", u)
	}
	if u.PasswordHash != "" {
		t.Fatalf("returned user must not carry the hash")
	}

	// Ensure Create called exactly once with hashed password (not equal to raw) and valid bcrypt.
	if len(mock.createCalls) != 1 {
		t.Fatalf("expected 1 Create call, got %d", len(mock.createCalls))
	}
	call := mock.createCalls[0]
	if call.username != "alice" {
		t.Errorf("expected username 'alice', got %q", call.username)
	}
	if call.hash == "s3cr3t" {
		t.Errorf("expected hashed password not equal to raw password")
	}
	if !NewBcryptHasher().Check("s3cr3t", call.hash) {
		t.Errorf("stored hash does not verify with original password")
	}
}

func TestAuthService_SignUp_DuplicateUser(t *testing.T) {
	mock := &mockAuthRepo{
		GetByUsernameFn: func(username string) (*models.User, error) {
			return &models.User{ID: "u-1", Username: username, PasswordHash: "h"}, nil
		},
		CreateFn: func(username, hash string) (models.User, error) {
			t.Fatal("Create should not be called for an existing username")
			return models.User{}, nil
		},
	}
	svc := newTestAuthService(mock)

	_, err := svc.SignUp(context.Background(), "alice", "pw")
	if !errors.Is(err, ErrDuplicateUser) {
		t.Fatalf("expected ErrDuplicateUser, got %v", err)
	}
}

func TestAuthService_SignUp_UniqueViolationIsDuplicate(t *testing.T) {
	mock := &mockAuthRepo{
		CreateFn: func(username, hash string) (models.User, error) {
			return models.User{}, repository.ErrDuplicate
		},
	}
	svc := newTestAuthService(mock)

	_, err := svc.SignUp(context.Background(), "alice", "pw")
	if !errors.Is(err, ErrDuplicateUser) {
		t.Fatalf("expected ErrDuplicateUser, got %v", err)
	}
}

func TestAuthService_SignUp_EmptyPassword(t *testing.T) {
	mock := &mockAuthRepo{
		CreateFn: func(username, hash string) (models.User, error) {
			t.Fatal("Create should not be called for empty password")
			return models.User{}, nil
		},
	}
	svc := newTestAuthService(mock)

	_, err := svc.SignUp(context.Background(), "bob", "   ")
	if !errors.Is(err, ErrEmptyPassword) {
		t.Fatalf("expected ErrEmptyPassword, got %v", err)
	}
	if len(mock.createCalls) != 0 {
		t.Fatalf("expected no Create calls, got %d", len(mock.createCalls))
	}
}

func TestAuthService_SignUp_RepoError(t *testing.T) {
	mock := &mockAuthRepo{
		CreateFn: func(username, hash string) (models.User, error) {
			return models.User{}, errors.New("db down")
		},
	}
	svc := newTestAuthService(mock)

	_, err := svc.SignUp(context.Background(), "carl", "pass123")
	if !errors.Is(err, ErrStoreFailure) {
		t.Fatalf("expected ErrStoreFailure, got %v", err)
	}
}

// --- Login tests ---

func TestAuthService_Login_Success(t *testing.T) {
	// Prepare a user with a valid bcrypt hash for the provided password.
	hash, err := NewBcryptHasher().Hash("letmein")
	if err != nil {
		t.Fatalf("Hash failed: %v", err)
	}
	user := &models.User{ID: "u-7", Username: "diana", PasswordHash: hash}

	mock := &mockAuthRepo{
		GetByUsernameFn: func(username string) (*models.User, error) {
			if username != "diana" {
				t.Fatalf("expected username 'diana', got %q", username)
			}
			return user, nil
		},
	}
	svc := newTestAuthService(mock)

	u, token, err := svc.Login(context.Background(), "diana", "letmein")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if token == "" {
		t.Fatalf("expected non-empty token")
	}
	if u.Username != "diana" || u.PasswordHash != "" {
		t.Fatalf("unexpected user: %+v", u)
	}

	// Validate the token parses and returns the submitted username.
	name, err := svc.ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken failed: %v", err)
	}
	if name != "diana" {
		t.Fatalf("expected username diana from token, got %q", name)
	}

	if len(mock.getCalls) != 1 {
		t.Fatalf("expected 1 GetByUsername call, got %d", len(mock.getCalls))
	}
}

func TestAuthService_Login_UserNotFound(t *testing.T) {
	svc := newTestAuthService(&mockAuthRepo{})

	_, _, err := svc.Login(context.Background(), "ghost", "pw")
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got: %v", err)
	}
}

func TestAuthService_Login_PasswordMismatch(t *testing.T) {
	// Stored hash for different password.
	correctHash, err := NewBcryptHasher().Hash("correct")
	if err != nil {
		t.Fatalf("Hash failed: %v", err)
	}
	mock := &mockAuthRepo{
		GetByUsernameFn: func(username string) (*models.User, error) {
			return &models.User{ID: "u-1", Username: "eve", PasswordHash: correctHash}, nil
		},
	}
	svc := newTestAuthService(mock)

	_, token, err := svc.Login(context.Background(), "eve", "wrong")
	if !errors.Is(err, ErrPasswordMismatch) {
		t.Fatalf("expected ErrPasswordMismatch, got: %v", err)
	}
	if token != "" {
		t.Fatalf("no token may be issued on a failed login")
	}
}

func TestAuthService_Login_RepoError(t *testing.T) {
	mock := &mockAuthRepo{
		GetByUsernameFn: func(username string) (*models.User, error) {
			return nil, errors.New("query failed")
		},
	}
	svc := newTestAuthService(mock)

	_, _, err := svc.Login(context.Background(), "john", "pw")
	if !errors.Is(err, ErrStoreFailure) {
		t.Fatalf("expected ErrStoreFailure, got %v", err)
	}
}

// --- ParseToken tests ---

func TestAuthService_ParseToken_Malformed(t *testing.T) {
	svc := newTestAuthService(&mockAuthRepo{})
	_, err := svc.ParseToken("not-a-jwt")
	if !errors.Is(err, ErrInvalidSignature) {
		t.Fatalf("expected ErrInvalidSignature, got %v", err)
	}
}

func TestAuthService_ParseToken_InvalidSignature(t *testing.T) {
	svc := newTestAuthService(&mockAuthRepo{})

	// Create a token signed with a different key.
	badToken, err := NewTokenManager("different-key").Issue("mallory")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	_, err = svc.ParseToken(badToken)
	if !errors.Is(err, ErrInvalidSignature) {
		t.Fatalf("expected ErrInvalidSignature, got %v", err)
	}
}

func TestAuthService_ParseToken_EmptyUsername(t *testing.T) {
	svc := newTestAuthService(&mockAuthRepo{})

	tk := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{IssuedAt: jwt.NewNumericDate(time.Now())},
	})
	tokenStr, err := tk.SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("SignedString failed: %v", err)
	}

	if _, err := svc.ParseToken(tokenStr); !errors.Is(err, ErrInvalidSignature) {
		t.Fatalf("expected ErrInvalidSignature, got %v", err)
	}
}

func TestAuthService_ParseToken_UnexpectedAlg(t *testing.T) {
	svc := newTestAuthService(&mockAuthRepo{})

	// Generate RSA key for RS256 signing
	privateKey, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("rsa.GenerateKey failed: %v", err)
	}

	tk := jwt.NewWithClaims(jwt.SigningMethodRS256, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{IssuedAt: jwt.NewNumericDate(time.Now())},
		Username:         "alice",
	})

	// Sanity check: ensure the algorithm is RS256 (non-HMAC)
	if tk.Method.Alg() != jwt.SigningMethodRS256.Alg() {
		t.Fatalf("expected RS256 alg, got %s", tk.Method.Alg())
	}

	tokenStr, err := tk.SignedString(privateKey)
	if err != nil {
		t.Fatalf("SignedString failed: %v", err)
	}

	_, err = svc.ParseToken(tokenStr)
	if err == nil {
		t.Fatalf("expected error due to unexpected signing method")
	}
}

package repository

import (
	"context"
	"database/sql"
	"errors"

	"people_api/internal/models"
)

// ErrNotFound is returned when a lookup by id matches no row.
var ErrNotFound = errors.New("record not found")

// ErrDuplicate is returned when an insert violates a unique constraint.
var ErrDuplicate = errors.New("duplicate record")

type Authorization interface {
	Create(ctx context.Context, username, passwordHash string) (models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
}

// PeopleRepo persists Person records. An empty owner disables owner filtering.
type PeopleRepo interface {
	List(ctx context.Context, owner string) ([]models.Person, error)
	Create(ctx context.Context, p models.Person) (models.Person, error)
	Get(ctx context.Context, id, owner string) (models.Person, error)
	Update(ctx context.Context, id, owner string, patch models.PersonPatch) (models.Person, error)
	Delete(ctx context.Context, id, owner string) (models.Person, error)
}

type Pinger interface {
	PingContext(ctx context.Context) error
}

type Repository struct {
	Auth   Authorization
	People PeopleRepo
	DB     Pinger
}

func NewRepository(db *sql.DB, dialect Dialect) *Repository {
	return &Repository{
		Auth:   NewUserRepository(db, dialect),
		People: NewPersonRepository(db, dialect),
		DB:     db,
	}
}

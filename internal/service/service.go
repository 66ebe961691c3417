package service

import (
	"context"

	"people_api/internal/models"
	"people_api/internal/repository"
)

type Authorization interface {
	SignUp(ctx context.Context, username, password string) (models.User, error)
	Login(ctx context.Context, username, password string) (models.User, string, error)
	ParseToken(token string) (string, error)
}

// People exposes person CRUD scoped by owner.
type People interface {
	List(ctx context.Context, owner string) ([]models.Person, error)
	Create(ctx context.Context, owner string, p models.Person) (models.Person, error)
	Get(ctx context.Context, id, owner string) (*models.Person, error)
	Update(ctx context.Context, id, owner string, patch models.PersonPatch) (*models.Person, error)
	Delete(ctx context.Context, id, owner string) (*models.Person, error)
}

// Health reports whether the backing store answers.
type Health interface {
	Ping(ctx context.Context) error
}

// Service aggregates all sub-services.
type Service struct {
	Authorization Authorization
	People        People
	Health        Health
}

func NewService(repos *repository.Repository, secret string) *Service {
	return &Service{
		Authorization: NewAuthService(repos.Auth, NewBcryptHasher(), NewTokenManager(secret)),
		People:        NewPeopleService(repos.People),
		Health:        NewHealthService(repos.DB),
	}
}

package service

import (
	"context"
	"errors"

	"people_api/internal/models"
	"people_api/internal/repository"
)

// PeopleService implements CRUD over people. owner is the caller's username when
// auth is enabled and empty otherwise; an empty owner sees and stamps nothing.
type PeopleService struct {
	repo repository.PeopleRepo
}

func NewPeopleService(repo repository.PeopleRepo) *PeopleService {
	return &PeopleService{repo: repo}
}

func (s *PeopleService) List(ctx context.Context, owner string) ([]models.Person, error) {
	people, err := s.repo.List(ctx, owner)
	if err != nil {
		return nil, storeFailure(err)
	}
	return people, nil
}

// Create stamps owner onto p and inserts it.
func (s *PeopleService) Create(ctx context.Context, owner string, p models.Person) (models.Person, error) {
	p.Username = owner
	created, err := s.repo.Create(ctx, p)
	if err != nil {
		return models.Person{}, storeFailure(err)
	}
	return created, nil
}

// Get returns (nil, nil) when the id is unknown or owned by someone else.
func (s *PeopleService) Get(ctx context.Context, id, owner string) (*models.Person, error) {
	return found(s.repo.Get(ctx, id, owner))
}

func (s *PeopleService) Update(ctx context.Context, id, owner string, patch models.PersonPatch) (*models.Person, error) {
	return found(s.repo.Update(ctx, id, owner, patch))
}

func (s *PeopleService) Delete(ctx context.Context, id, owner string) (*models.Person, error) {
	return found(s.repo.Delete(ctx, id, owner))
}

// found turns ErrNotFound into a nil record.
func found(p models.Person, err error) (*models.Person, error) {
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil
		}
		return nil, storeFailure(err)
	}
	return &p, nil
}

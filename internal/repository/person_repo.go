package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"people_api/internal/models"
)

type PersonRepository struct {
	db      *sql.DB
	dialect Dialect
}

func NewPersonRepository(db *sql.DB, dialect Dialect) *PersonRepository {
	return &PersonRepository{db: db, dialect: dialect}
}

var _ PeopleRepo = (*PersonRepository)(nil)

const (
	personColumns = `id, name, image, title, username`

	insertPersonSQL = `INSERT INTO people (id, name, image, title, username, created_at) VALUES (?, ?, ?, ?, ?, ?)`
	selectPeopleSQL = `SELECT ` + personColumns + ` FROM people`
	orderPeopleSQL  = ` ORDER BY created_at ASC, id ASC`
	deletePersonSQL = `DELETE FROM people WHERE id = ?`
	updatePersonSQL = `UPDATE people SET `
	returningSQL    = ` RETURNING ` + personColumns
	ownerFilterSQL  = ` AND username = ?`
)

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanPerson(s rowScanner) (models.Person, error) {
	var (
		p     models.Person
		owner sql.NullString
	)
	if err := s.Scan(&p.ID, &p.Name, &p.Image, &p.Title, &owner); err != nil {
		return models.Person{}, err
	}
	p.Username = owner.String
	return p, nil
}

// nullIfEmpty stores unowned records with a NULL owner.
func nullIfEmpty(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// List returns people in insertion order, restricted to owner when it is set.
func (r *PersonRepository) List(ctx context.Context, owner string) ([]models.Person, error) {
	q := selectPeopleSQL
	var args []any
	if owner != "" {
		q += ` WHERE username = ?`
		args = append(args, owner)
	}
	q += orderPeopleSQL

	rows, err := r.db.QueryContext(ctx, r.dialect.Rebind(q), args...)
	if err != nil {
		return nil, fmt.Errorf("select people: %w", err)
	}
	defer rows.Close()

	out := make([]models.Person, 0, 16)
	for rows.Next() {
		p, err := scanPerson(rows)
		if err != nil {
			return nil, fmt.Errorf("scan person: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate people: %w", err)
	}
	return out, nil
}

// Create inserts p with a fresh id and returns the stored record.
func (r *PersonRepository) Create(ctx context.Context, p models.Person) (models.Person, error) {
	p.ID = newID()
	_, err := r.db.ExecContext(ctx, r.dialect.Rebind(insertPersonSQL),
		p.ID,
		p.Name,
		p.Image,
		p.Title,
		nullIfEmpty(p.Username),
		time.Now().UTC(),
	)
	if err != nil {
		return models.Person{}, fmt.Errorf("insert person: %w", err)
	}
	return p, nil
}

// Get fetches a person by id. Returns ErrNotFound when no row matches.
func (r *PersonRepository) Get(ctx context.Context, id, owner string) (models.Person, error) {
	q, args := withOwner(selectPeopleSQL+` WHERE id = ?`, id, owner)
	p, err := scanPerson(r.db.QueryRowContext(ctx, r.dialect.Rebind(q), args...))
	return p, notFoundOr(err, "select person %q", id)
}

// Update applies the non-nil fields of patch and returns the updated record.
func (r *PersonRepository) Update(ctx context.Context, id, owner string, patch models.PersonPatch) (models.Person, error) {
	if patch.Empty() {
		return r.Get(ctx, id, owner)
	}

	var (
		sets []string
		args []any
	)
	if patch.Name != nil {
		sets = append(sets, "name = ?")
		args = append(args, *patch.Name)
	}
	if patch.Image != nil {
		sets = append(sets, "image = ?")
		args = append(args, *patch.Image)
	}
	if patch.Title != nil {
		sets = append(sets, "title = ?")
		args = append(args, *patch.Title)
	}

	q, whereArgs := withOwner(updatePersonSQL+strings.Join(sets, ", ")+` WHERE id = ?`, id, owner)
	q += returningSQL
	args = append(args, whereArgs...)

	p, err := scanPerson(r.db.QueryRowContext(ctx, r.dialect.Rebind(q), args...))
	return p, notFoundOr(err, "update person %q", id)
}

// Delete removes a person and returns the removed record.
func (r *PersonRepository) Delete(ctx context.Context, id, owner string) (models.Person, error) {
	q, args := withOwner(deletePersonSQL, id, owner)
	q += returningSQL

	p, err := scanPerson(r.db.QueryRowContext(ctx, r.dialect.Rebind(q), args...))
	return p, notFoundOr(err, "delete person %q", id)
}

// withOwner appends the owner predicate when owner is set.
func withOwner(q, id, owner string) (string, []any) {
	args := []any{id}
	if owner != "" {
		q += ownerFilterSQL
		args = append(args, owner)
	}
	return q, args
}

func notFoundOr(err error, format, id string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, sql.ErrNoRows):
		return ErrNotFound
	default:
		return fmt.Errorf(format+": %w", id, err)
	}
}

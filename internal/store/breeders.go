package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/erazemk/breeders/internal/db"
	"github.com/erazemk/breeders/internal/model"
)

// ErrNotFound is returned when no breeder has the requested id.
var ErrNotFound = errors.New("breeder not found")

const breederColumns = `id, name, location, email, phone, website, experience_years, description,
	photo IS NOT NULL, created_at`

// Store owns all access to the breeders table. One Store is created at
// startup and shared by every request.
type Store struct {
	db *db.DB
}

// New wraps an open database.
func New(database *db.DB) *Store {
	return &Store{db: database}
}

// Ping checks that the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// List returns every breeder ordered by name.
func (s *Store) List(ctx context.Context) ([]model.Breeder, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+breederColumns+` FROM breeders ORDER BY name`,
	)
	if err != nil {
		return nil, fmt.Errorf("listing breeders: %w", err)
	}
	defer rows.Close()

	return scanBreeders(rows)
}

// Get returns the breeder with the given id, or ErrNotFound.
func (s *Store) Get(ctx context.Context, id int64) (*model.Breeder, error) {
	row := s.db.QueryRowContext(ctx,
		s.db.Rebind(`SELECT `+breederColumns+` FROM breeders WHERE id = ?`), id,
	)
	b, err := scanBreeder(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting breeder: %w", err)
	}
	return b, nil
}

// Create inserts a breeder and returns its new id. The store does not
// validate the name; a missing one fails on the table constraints.
func (s *Store) Create(ctx context.Context, in model.BreederInput) (int64, error) {
	var id int64
	err := s.db.QueryRowContext(ctx,
		s.db.Rebind(`INSERT INTO breeders (name, location, email, phone, website, experience_years, description)
		 VALUES (?, ?, ?, ?, ?, ?, ?) RETURNING id`),
		inputArgs(in)...,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("creating breeder: %w", err)
	}
	return id, nil
}

// Update replaces every editable field of a breeder. Fields that are nil in
// the input become NULL. It returns the number of rows affected.
func (s *Store) Update(ctx context.Context, id int64, in model.BreederInput) (int64, error) {
	result, err := s.db.ExecContext(ctx,
		s.db.Rebind(`UPDATE breeders
		 SET name = ?, location = ?, email = ?, phone = ?, website = ?, experience_years = ?, description = ?
		 WHERE id = ?`),
		append(inputArgs(in), id)...,
	)
	if err != nil {
		return 0, fmt.Errorf("updating breeder: %w", err)
	}
	return result.RowsAffected()
}

// Patch changes only the fields set in p and returns the number of rows
// affected.
func (s *Store) Patch(ctx context.Context, id int64, p model.BreederPatch) (int64, error) {
	if p.Empty() {
		if _, err := s.Get(ctx, id); err != nil {
			if errors.Is(err, ErrNotFound) {
				return 0, nil
			}
			return 0, err
		}
		return 1, nil
	}

	var sets []string
	var args []any
	add := func(set bool, column string, value any) {
		if set {
			sets = append(sets, column+" = ?")
			args = append(args, value)
		}
	}
	add(p.Name.Set, "name", nullable(p.Name.Value))
	add(p.Location.Set, "location", nullable(p.Location.Value))
	add(p.Email.Set, "email", nullable(p.Email.Value))
	add(p.Phone.Set, "phone", nullable(p.Phone.Value))
	add(p.Website.Set, "website", nullable(p.Website.Value))
	add(p.ExperienceYears.Set, "experience_years", nullable(p.ExperienceYears.Value))
	add(p.Description.Set, "description", nullable(p.Description.Value))
	args = append(args, id)

	result, err := s.db.ExecContext(ctx,
		s.db.Rebind(`UPDATE breeders SET `+strings.Join(sets, ", ")+` WHERE id = ?`),
		args...,
	)
	if err != nil {
		return 0, fmt.Errorf("patching breeder: %w", err)
	}
	return result.RowsAffected()
}

// Delete removes a breeder and returns the number of rows affected.
func (s *Store) Delete(ctx context.Context, id int64) (int64, error) {
	result, err := s.db.ExecContext(ctx,
		s.db.Rebind(`DELETE FROM breeders WHERE id = ?`), id,
	)
	if err != nil {
		return 0, fmt.Errorf("deleting breeder: %w", err)
	}
	return result.RowsAffected()
}

// DeleteAll removes every breeder.
func (s *Store) DeleteAll(ctx context.Context) (int64, error) {
	result, err := s.db.ExecContext(ctx, `DELETE FROM breeders`)
	if err != nil {
		return 0, fmt.Errorf("clearing breeders: %w", err)
	}
	return result.RowsAffected()
}

// Count returns the number of stored breeders.
func (s *Store) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM breeders`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting breeders: %w", err)
	}
	return n, nil
}

// Search returns breeders whose name, location or description contains q,
// ignoring case, ordered by name. Wildcard characters in q match literally.
func (s *Store) Search(ctx context.Context, q string) ([]model.Breeder, error) {
	pattern := "%" + escapeLike(q) + "%"

	like := "LIKE"
	if s.db.Dialect == db.DialectPostgres {
		like = "ILIKE"
	}
	cond := func(column string) string {
		return column + " " + like + ` ? ESCAPE '\'`
	}

	rows, err := s.db.QueryContext(ctx,
		s.db.Rebind(`SELECT `+breederColumns+` FROM breeders
		 WHERE `+cond("name")+` OR `+cond("location")+` OR `+cond("description")+`
		 ORDER BY name`),
		pattern, pattern, pattern,
	)
	if err != nil {
		return nil, fmt.Errorf("searching breeders: %w", err)
	}
	defer rows.Close()

	return scanBreeders(rows)
}

// escapeLike escapes the LIKE metacharacters with a backslash.
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

func inputArgs(in model.BreederInput) []any {
	return []any{
		nullable(in.Name),
		nullable(in.Location),
		nullable(in.Email),
		nullable(in.Phone),
		nullable(in.Website),
		nullable(in.ExperienceYears),
		nullable(in.Description),
	}
}

// nullable turns a nil pointer into an untyped nil query argument.
func nullable[T any](p *T) any {
	if p == nil {
		return nil
	}
	return *p
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBreeder(row rowScanner) (*model.Breeder, error) {
	b := &model.Breeder{}
	var location, email, phone, website, description sql.NullString
	var experience sql.NullInt64
	err := row.Scan(&b.ID, &b.Name, &location, &email, &phone, &website, &experience, &description,
		&b.HasPhoto, &b.CreatedAt)
	if err != nil {
		return nil, err
	}
	b.Location = nullString(location)
	b.Email = nullString(email)
	b.Phone = nullString(phone)
	b.Website = nullString(website)
	b.Description = nullString(description)
	if experience.Valid {
		b.ExperienceYears = &experience.Int64
	}
	return b, nil
}

func scanBreeders(rows *sql.Rows) ([]model.Breeder, error) {
	breeders := []model.Breeder{}
	for rows.Next() {
		b, err := scanBreeder(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning breeder: %w", err)
		}
		breeders = append(breeders, *b)
	}
	return breeders, rows.Err()
}

func nullString(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	return &ns.String
}

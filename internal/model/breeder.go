package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrNameRequired is returned when a breeder has no usable name.
var ErrNameRequired = errors.New("name is required")

// Breeder is a dog-breeding business listed in the directory. Optional
// columns are pointers so that NULL round-trips as JSON null.
type Breeder struct {
	ID              int64     `json:"id"`
	Name            string    `json:"name"`
	Location        *string   `json:"location"`
	Email           *string   `json:"email"`
	Phone           *string   `json:"phone"`
	Website         *string   `json:"website"`
	ExperienceYears *int64    `json:"experience_years"`
	Description     *string   `json:"description"`
	HasPhoto        bool      `json:"has_photo"`
	CreatedAt       time.Time `json:"created_at"`
}

// BreederInput holds the editable fields of a breeder as sent by clients.
type BreederInput struct {
	Name            *string `json:"name"`
	Location        *string `json:"location"`
	Email           *string `json:"email"`
	Phone           *string `json:"phone"`
	Website         *string `json:"website"`
	ExperienceYears *int64  `json:"experience_years"`
	Description     *string `json:"description"`
}

// Normalize turns empty optional values into nil so they are stored as NULL.
// The name is left alone.
func (in BreederInput) Normalize() BreederInput {
	in.Location = nullIfEmpty(in.Location)
	in.Email = nullIfEmpty(in.Email)
	in.Phone = nullIfEmpty(in.Phone)
	in.Website = nullIfEmpty(in.Website)
	in.Description = nullIfEmpty(in.Description)
	if in.ExperienceYears != nil && *in.ExperienceYears == 0 {
		in.ExperienceYears = nil
	}
	return in
}

// Validate checks that the input can create a new breeder.
func (in BreederInput) Validate() error {
	if in.Name == nil || strings.TrimSpace(*in.Name) == "" {
		return ErrNameRequired
	}
	return nil
}

// Field is a patch value: Set reports whether the key was present in the
// request, Value is nil when the client sent null.
type Field[T any] struct {
	Set   bool
	Value *T
}

// BreederPatch is a partial update. Only fields with Set change.
type BreederPatch struct {
	Name            Field[string]
	Location        Field[string]
	Email           Field[string]
	Phone           Field[string]
	Website         Field[string]
	ExperienceYears Field[int64]
	Description     Field[string]
}

// Empty reports whether the patch changes nothing.
func (p BreederPatch) Empty() bool {
	return !p.Name.Set && !p.Location.Set && !p.Email.Set && !p.Phone.Set &&
		!p.Website.Set && !p.ExperienceYears.Set && !p.Description.Set
}

// ParsePatch builds a patch from a decoded JSON object, keeping track of
// which keys were present. Unknown keys are ignored. A present name must be
// non-blank.
func ParsePatch(raw map[string]json.RawMessage) (BreederPatch, error) {
	var p BreederPatch
	var err error

	if p.Name, err = parseField[string](raw, "name"); err != nil {
		return p, err
	}
	if p.Name.Set && (p.Name.Value == nil || strings.TrimSpace(*p.Name.Value) == "") {
		return p, ErrNameRequired
	}

	strFields := []struct {
		key string
		dst *Field[string]
	}{
		{"location", &p.Location},
		{"email", &p.Email},
		{"phone", &p.Phone},
		{"website", &p.Website},
		{"description", &p.Description},
	}
	for _, f := range strFields {
		v, err := parseField[string](raw, f.key)
		if err != nil {
			return p, err
		}
		v.Value = nullIfEmpty(v.Value)
		*f.dst = v
	}

	if p.ExperienceYears, err = parseField[int64](raw, "experience_years"); err != nil {
		return p, err
	}
	if v := p.ExperienceYears.Value; v != nil && *v == 0 {
		p.ExperienceYears.Value = nil
	}

	return p, nil
}

func parseField[T any](raw map[string]json.RawMessage, key string) (Field[T], error) {
	msg, ok := raw[key]
	if !ok {
		return Field[T]{}, nil
	}
	f := Field[T]{Set: true}
	if string(msg) == "null" {
		return f, nil
	}
	var v T
	if err := json.Unmarshal(msg, &v); err != nil {
		return f, fmt.Errorf("invalid %s: %w", key, err)
	}
	f.Value = &v
	return f, nil
}

func nullIfEmpty(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}

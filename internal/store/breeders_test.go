package store

import (
	"context"
	"errors"
	"testing"

	"github.com/erazemk/breeders/internal/db"
	"github.com/erazemk/breeders/internal/model"
)

func ptr[T any](v T) *T { return &v }

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return New(db.NewTestDB(t))
}

func TestCreateNameOnly(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	id1, err := st.Create(ctx, model.BreederInput{Name: ptr("Test Pugs")})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	id2, err := st.Create(ctx, model.BreederInput{Name: ptr("More Pugs")})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if id2 <= id1 {
		t.Errorf("expected increasing ids, got %d then %d", id1, id2)
	}

	b, err := st.Get(ctx, id1)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if b.Name != "Test Pugs" {
		t.Errorf("expected name 'Test Pugs', got %q", b.Name)
	}
	if b.Location != nil || b.Email != nil || b.Phone != nil || b.Website != nil ||
		b.ExperienceYears != nil || b.Description != nil {
		t.Errorf("expected all optional fields nil, got %+v", b)
	}
	if b.HasPhoto {
		t.Error("expected no photo")
	}
	if b.CreatedAt.IsZero() {
		t.Error("expected created_at to be set")
	}
}

func TestCreateAndGetAllFields(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	in := model.BreederInput{
		Name:            ptr("Pug Paradise"),
		Location:        ptr("Los Angeles, CA"),
		Email:           ptr("info@pugparadise.com"),
		Phone:           ptr("(555) 123-4567"),
		Website:         ptr("https://www.pugparadise.com"),
		ExperienceYears: ptr(int64(15)),
		Description:     ptr("Family-owned"),
	}
	id, err := st.Create(ctx, in)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	b, err := st.Get(ctx, id)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if *b.Location != "Los Angeles, CA" || *b.Email != "info@pugparadise.com" ||
		*b.Phone != "(555) 123-4567" || *b.Website != "https://www.pugparadise.com" ||
		*b.ExperienceYears != 15 || *b.Description != "Family-owned" {
		t.Errorf("unexpected breeder: %+v", b)
	}
}

func TestCreateWithoutNameFails(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	if _, err := st.Create(ctx, model.BreederInput{}); err == nil {
		t.Error("expected constraint violation for missing name")
	}
	if _, err := st.Create(ctx, model.BreederInput{Name: ptr("")}); err == nil {
		t.Error("expected constraint violation for empty name")
	}

	n, _ := st.Count(ctx)
	if n != 0 {
		t.Errorf("expected 0 breeders, got %d", n)
	}
}

func TestGetNotFound(t *testing.T) {
	st := newTestStore(t)

	_, err := st.Get(context.Background(), 42)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestListOrderedByName(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	empty, err := st.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if empty == nil || len(empty) != 0 {
		t.Errorf("expected empty non-nil slice, got %v", empty)
	}

	for _, name := range []string{"Royal Pugs", "Elite Pug Breeders", "Pug Palace"} {
		if _, err := st.Create(ctx, model.BreederInput{Name: ptr(name)}); err != nil {
			t.Fatalf("Create %s: %v", name, err)
		}
	}

	all, err := st.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	want := []string{"Elite Pug Breeders", "Pug Palace", "Royal Pugs"}
	if len(all) != len(want) {
		t.Fatalf("expected %d breeders, got %d", len(want), len(all))
	}
	for i, b := range all {
		if b.Name != want[i] {
			t.Errorf("position %d: expected %q, got %q", i, want[i], b.Name)
		}
	}
}

func TestUpdateReplacesAllFields(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	id, _ := st.Create(ctx, model.BreederInput{
		Name:            ptr("Test Pugs"),
		Email:           ptr("a@b.c"),
		ExperienceYears: ptr(int64(5)),
	})
	before, _ := st.Get(ctx, id)

	n, err := st.Update(ctx, id, model.BreederInput{
		Name:     ptr("Test Pugs"),
		Location: ptr("Denver, CO"),
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if n != 1 {
		t.Errorf("expected 1 row affected, got %d", n)
	}

	got, _ := st.Get(ctx, id)
	if got.Location == nil || *got.Location != "Denver, CO" {
		t.Errorf("expected location 'Denver, CO', got %v", got.Location)
	}
	if got.Email != nil || got.ExperienceYears != nil {
		t.Errorf("expected omitted fields cleared, got %+v", got)
	}
	if got.ID != before.ID || !got.CreatedAt.Equal(before.CreatedAt) {
		t.Error("id and created_at must not change")
	}
}

func TestUpdateMissing(t *testing.T) {
	st := newTestStore(t)

	n, err := st.Update(context.Background(), 99, model.BreederInput{Name: ptr("Ghost")})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if n != 0 {
		t.Errorf("expected 0 rows affected, got %d", n)
	}
	count, _ := st.Count(context.Background())
	if count != 0 {
		t.Errorf("update must not create rows, got %d", count)
	}
}

func TestPatchKeepsAbsentFields(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	id, _ := st.Create(ctx, model.BreederInput{
		Name:  ptr("Happy Pug Home"),
		Email: ptr("hello@happypughome.com"),
		Phone: ptr("(555) 345-6789"),
	})

	n, err := st.Patch(ctx, id, model.BreederPatch{
		Location: model.Field[string]{Set: true, Value: ptr("Austin, TX")},
		Phone:    model.Field[string]{Set: true},
	})
	if err != nil {
		t.Fatalf("Patch: %v", err)
	}
	if n != 1 {
		t.Errorf("expected 1 row affected, got %d", n)
	}

	got, _ := st.Get(ctx, id)
	if got.Name != "Happy Pug Home" {
		t.Errorf("name changed: %q", got.Name)
	}
	if got.Email == nil || *got.Email != "hello@happypughome.com" {
		t.Errorf("email should be kept, got %v", got.Email)
	}
	if got.Location == nil || *got.Location != "Austin, TX" {
		t.Errorf("expected location set, got %v", got.Location)
	}
	if got.Phone != nil {
		t.Errorf("expected phone cleared, got %v", *got.Phone)
	}
}

func TestPatchEmptyAndMissing(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	id, _ := st.Create(ctx, model.BreederInput{Name: ptr("Pug Palace")})

	if n, err := st.Patch(ctx, id, model.BreederPatch{}); err != nil || n != 1 {
		t.Errorf("empty patch on existing breeder: n=%d err=%v", n, err)
	}
	if n, err := st.Patch(ctx, id+1, model.BreederPatch{}); err != nil || n != 0 {
		t.Errorf("empty patch on missing breeder: n=%d err=%v", n, err)
	}
	if n, err := st.Patch(ctx, id+1, model.BreederPatch{
		Location: model.Field[string]{Set: true, Value: ptr("Seattle, WA")},
	}); err != nil || n != 0 {
		t.Errorf("patch on missing breeder: n=%d err=%v", n, err)
	}
}

func TestDelete(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	id, _ := st.Create(ctx, model.BreederInput{Name: ptr("Delete Me")})

	n, err := st.Delete(ctx, id)
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if n != 1 {
		t.Errorf("expected 1 row affected, got %d", n)
	}
	if _, err := st.Get(ctx, id); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}

	n, _ = st.Delete(ctx, id)
	if n != 0 {
		t.Errorf("expected 0 rows affected on second delete, got %d", n)
	}
}

func TestIDsNotReused(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	id1, _ := st.Create(ctx, model.BreederInput{Name: ptr("First")})
	st.Delete(ctx, id1)
	id2, _ := st.Create(ctx, model.BreederInput{Name: ptr("Second")})

	if id2 <= id1 {
		t.Errorf("expected id after delete to grow past %d, got %d", id1, id2)
	}
}

func TestSearch(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	st.Create(ctx, model.BreederInput{Name: ptr("Royal Pugs"), Location: ptr("New York, NY")})
	st.Create(ctx, model.BreederInput{Name: ptr("Bulldog Barn"), Location: ptr("Austin, TX")})
	st.Create(ctx, model.BreederInput{Name: ptr("Happy Home"), Description: ptr("We love PUGS")})
	st.Create(ctx, model.BreederInput{Name: ptr("Austin Pug Co"), Location: ptr("Texas")})

	got, err := st.Search(ctx, "pug")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	want := []string{"Austin Pug Co", "Happy Home", "Royal Pugs"}
	if len(got) != len(want) {
		t.Fatalf("expected %d results, got %d: %+v", len(want), len(got), got)
	}
	for i, b := range got {
		if b.Name != want[i] {
			t.Errorf("position %d: expected %q, got %q", i, want[i], b.Name)
		}
	}

	byLocation, _ := st.Search(ctx, "AUSTIN")
	if len(byLocation) != 2 {
		t.Errorf("expected 2 results for 'AUSTIN', got %d", len(byLocation))
	}

	none, err := st.Search(ctx, "poodle")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if none == nil || len(none) != 0 {
		t.Errorf("expected empty non-nil result, got %v", none)
	}
}

func TestSearchWildcardsAreLiteral(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	st.Create(ctx, model.BreederInput{Name: ptr("100% Pug")})
	st.Create(ctx, model.BreederInput{Name: ptr("Pug_Town")})
	st.Create(ctx, model.BreederInput{Name: ptr("Pugs Galore")})

	got, _ := st.Search(ctx, "%")
	if len(got) != 1 || got[0].Name != "100% Pug" {
		t.Errorf("expected only '100%% Pug', got %+v", got)
	}

	got, _ = st.Search(ctx, "_")
	if len(got) != 1 || got[0].Name != "Pug_Town" {
		t.Errorf("expected only 'Pug_Town', got %+v", got)
	}
}

func TestDeleteAllAndCount(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	st.Create(ctx, model.BreederInput{Name: ptr("A")})
	st.Create(ctx, model.BreederInput{Name: ptr("B")})

	n, _ := st.Count(ctx)
	if n != 2 {
		t.Errorf("expected 2, got %d", n)
	}

	removed, err := st.DeleteAll(ctx)
	if err != nil {
		t.Fatalf("DeleteAll: %v", err)
	}
	if removed != 2 {
		t.Errorf("expected 2 removed, got %d", removed)
	}

	n, _ = st.Count(ctx)
	if n != 0 {
		t.Errorf("expected 0 after DeleteAll, got %d", n)
	}
}

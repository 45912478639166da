// Package seed replaces the breeder table contents with a fixed set of
// sample breeders.
package seed

import (
	"context"
	"log/slog"

	"github.com/erazemk/breeders/internal/model"
	"github.com/erazemk/breeders/internal/store"
)

func str(s string) *string { return &s }
func years(n int64) *int64 { return &n }

// SampleBreeders is the data written by Load, in insertion order.
var SampleBreeders = []model.BreederInput{
	{
		Name:            str("Pug Paradise"),
		Location:        str("Los Angeles, CA"),
		Email:           str("info@pugparadise.com"),
		Phone:           str("(555) 123-4567"),
		Website:         str("https://www.pugparadise.com"),
		ExperienceYears: years(15),
		Description:     str("Family-owned pug breeding facility with over 15 years of experience. We specialize in healthy, well-socialized pugs with excellent temperaments. All our pugs are health tested and come with health guarantees."),
	},
	{
		Name:            str("Royal Pugs"),
		Location:        str("New York, NY"),
		Email:           str("contact@royalpugs.com"),
		Phone:           str("(555) 234-5678"),
		Website:         str("https://www.royalpugs.com"),
		ExperienceYears: years(20),
		Description:     str("Premier pug breeder in the Northeast. We focus on breeding pugs with excellent health, conformation, and personality. Our pugs are raised in a loving home environment."),
	},
	{
		Name:            str("Happy Pug Home"),
		Location:        str("Austin, TX"),
		Email:           str("hello@happypughome.com"),
		Phone:           str("(555) 345-6789"),
		Website:         str("https://www.happypughome.com"),
		ExperienceYears: years(10),
		Description:     str("Small-scale breeder dedicated to producing healthy, happy pugs. We prioritize the well-being of our dogs and provide lifetime support to our puppy families."),
	},
	{
		Name:            str("Pug Palace"),
		Location:        str("Seattle, WA"),
		Email:           str("info@pugpalace.com"),
		Phone:           str("(555) 456-7890"),
		ExperienceYears: years(8),
		Description:     str("Passionate about pugs! We breed for health, temperament, and adherence to breed standards. Our pugs are part of our family and receive the best care."),
	},
	{
		Name:            str("Elite Pug Breeders"),
		Location:        str("Miami, FL"),
		Email:           str("contact@elitepugs.com"),
		Phone:           str("(555) 567-8901"),
		Website:         str("https://www.elitepugs.com"),
		ExperienceYears: years(12),
		Description:     str("Professional breeding program with focus on genetic health testing and responsible breeding practices. We produce show-quality and companion pugs."),
	},
}

// Load deletes every stored breeder and inserts SampleBreeders. Failures are
// logged and do not stop the remaining steps; the result is the number of
// breeders inserted.
func Load(ctx context.Context, st *store.Store) int {
	if n, err := st.DeleteAll(ctx); err != nil {
		slog.Error("failed to clear breeders", "error", err)
	} else {
		slog.Info("cleared existing breeders", "count", n)
	}

	inserted := 0
	for _, b := range SampleBreeders {
		id, err := st.Create(ctx, b)
		if err != nil {
			slog.Error("failed to insert sample breeder", "name", *b.Name, "error", err)
			continue
		}
		slog.Debug("inserted sample breeder", "id", id, "name", *b.Name)
		inserted++
	}

	slog.Info("sample breeders added", "inserted", inserted, "total", len(SampleBreeders))
	return inserted
}

package domain

import (
	"time"
)

// Categories accepted for a perfume listing.
var Categories = []string{
	"niche", "designer", "natural", "oriental", "fresh",
	"woody", "floral", "citrus", "gourmand", "other",
}

// Genders accepted for a perfume listing.
var Genders = []string{"male", "female", "unisex"}

// Perfume represents a catalog listing as persisted in the perfumes table.
// IsAvailable doubles as the soft-delete flag: rows with IsAvailable = false
// are logically deleted and never surfaced by active reads.
type Perfume struct {
	ID            int64     `json:"id" db:"id"`
	Name          string    `json:"name" db:"name"`
	Brand         string    `json:"brand" db:"brand"`
	Description   string    `json:"description" db:"description"`
	Price         *float64  `json:"price" db:"price"`
	Volume        *int      `json:"volume" db:"volume"`
	Category      string    `json:"category" db:"category"`
	NotesTop      string    `json:"notes_top" db:"notes_top"`
	NotesMiddle   string    `json:"notes_middle" db:"notes_middle"`
	NotesBase     string    `json:"notes_base" db:"notes_base"`
	Gender        string    `json:"gender" db:"gender"`
	ImageURL      string    `json:"image_url" db:"image_url"`
	StockQuantity int       `json:"stock_quantity" db:"stock_quantity"`
	IsAvailable   bool      `json:"is_available" db:"is_available"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`
}

// PerfumeInput is the validated shape of a create/update request body.
// Optional enum, numeric and boolean fields are pointers so an omitted field
// can be told apart from an explicit zero value: omitted optionals fall back
// to the schema defaults in ToPerfume, while an explicit "" for category or
// gender fails the enum check instead of slipping through as omitted.
type PerfumeInput struct {
	Name          string   `json:"name" validate:"required,min=1,max=255"`
	Brand         string   `json:"brand" validate:"required,min=1,max=255"`
	Description   string   `json:"description" validate:"omitempty,max=1000"`
	Price         *float64 `json:"price" validate:"omitempty,gt=0,decimal2"`
	Volume        *int     `json:"volume" validate:"omitempty,gt=0"`
	Category      *string  `json:"category" validate:"omitempty,oneof=niche designer natural oriental fresh woody floral citrus gourmand other"`
	NotesTop      string   `json:"notes_top" validate:"omitempty,max=500"`
	NotesMiddle   string   `json:"notes_middle" validate:"omitempty,max=500"`
	NotesBase     string   `json:"notes_base" validate:"omitempty,max=500"`
	Gender        *string  `json:"gender" validate:"omitempty,oneof=male female unisex"`
	ImageURL      string   `json:"image_url" validate:"omitempty,uri"`
	StockQuantity *int     `json:"stock_quantity" validate:"omitempty,gte=0"`
	IsAvailable   *bool    `json:"is_available"`
}

// ToPerfume maps the input onto a Perfume, applying the schema defaults for
// omitted optionals: gender "unisex", stock_quantity 0, is_available true.
// ID and timestamps are left zero; the store assigns them.
func (in PerfumeInput) ToPerfume() *Perfume {
	p := &Perfume{
		Name:          in.Name,
		Brand:         in.Brand,
		Description:   in.Description,
		Price:         in.Price,
		Volume:        in.Volume,
		NotesTop:      in.NotesTop,
		NotesMiddle:   in.NotesMiddle,
		NotesBase:     in.NotesBase,
		Gender:        "unisex",
		ImageURL:      in.ImageURL,
		StockQuantity: 0,
		IsAvailable:   true,
	}

	if in.Category != nil {
		p.Category = *in.Category
	}
	if in.Gender != nil {
		p.Gender = *in.Gender
	}
	if in.StockQuantity != nil {
		p.StockQuantity = *in.StockQuantity
	}
	if in.IsAvailable != nil {
		p.IsAvailable = *in.IsAvailable
	}

	return p
}

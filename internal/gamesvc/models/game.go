package models

import (
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

const (
	MaxTitleLength = 200
	MinReleaseYear = 1950
	MaxReleaseYear = 2100
	maxLabelLength = 100
)

// MaxPrice is the largest value a NUMERIC(10,2) column holds.
var MaxPrice = decimal.RequireFromString("99999999.99")

type Game struct {
	ID          int64           `json:"id"`           // Primary key, assigned by the database
	Title       string          `json:"title"`        // Required
	Genre       string          `json:"genre"`        // e.g. strategy, puzzle
	Platform    string          `json:"platform"`     // e.g. pc, switch
	ReleaseYear *int32          `json:"release_year"` // Nullable
	Price       decimal.Decimal `json:"price"`
	CreatedAt   time.Time       `json:"created_at"` // Timestamp
	UpdatedAt   time.Time       `json:"updated_at"` // Timestamp
}

// GameInput is the payload accepted by create and update.
type GameInput struct {
	Title       string           `json:"title"`
	Genre       string           `json:"genre"`
	Platform    string           `json:"platform"`
	ReleaseYear *int32           `json:"release_year"`
	Price       *decimal.Decimal `json:"price"`
}

// Normalize trims text fields and defaults the price to zero.
func (in GameInput) Normalize() GameInput {
	in.Title = strings.TrimSpace(in.Title)
	in.Genre = strings.TrimSpace(in.Genre)
	in.Platform = strings.TrimSpace(in.Platform)
	if in.Price == nil {
		zero := decimal.Zero
		in.Price = &zero
	}
	return in
}

// Validate reports every invalid field at once.
func (in GameInput) Validate() error {
	fields := map[string]string{}

	title := strings.TrimSpace(in.Title)
	switch {
	case title == "":
		fields["title"] = "is required"
	case utf8.RuneCountInString(title) > MaxTitleLength:
		fields["title"] = "must be at most 200 characters"
	}

	if utf8.RuneCountInString(strings.TrimSpace(in.Genre)) > maxLabelLength {
		fields["genre"] = "must be at most 100 characters"
	}
	if utf8.RuneCountInString(strings.TrimSpace(in.Platform)) > maxLabelLength {
		fields["platform"] = "must be at most 100 characters"
	}

	if in.ReleaseYear != nil && (*in.ReleaseYear < MinReleaseYear || *in.ReleaseYear > MaxReleaseYear) {
		fields["release_year"] = "must be between 1950 and 2100"
	}

	if in.Price != nil {
		switch {
		case in.Price.IsNegative():
			fields["price"] = "must not be negative"
		case in.Price.GreaterThan(MaxPrice):
			fields["price"] = "must be at most 99999999.99"
		case !in.Price.Equal(in.Price.Round(2)):
			fields["price"] = "must have at most 2 decimal places"
		}
	}

	// postgres TEXT cannot store NUL bytes
	for field, value := range map[string]string{"title": in.Title, "genre": in.Genre, "platform": in.Platform} {
		if _, set := fields[field]; !set && strings.ContainsRune(value, 0) {
			fields[field] = "must not contain NUL characters"
		}
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// ValidationError is returned for malformed or incomplete input before any SQL runs.
type ValidationError struct {
	Message string
	Fields  map[string]string
}

func NewValidationError(msg string) *ValidationError {
	return &ValidationError{Message: msg}
}

func (e *ValidationError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if len(e.Fields) == 0 {
		return "invalid input"
	}

	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+" "+e.Fields[k])
	}
	return "invalid input: " + strings.Join(parts, "; ")
}

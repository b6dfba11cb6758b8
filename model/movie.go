package model

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// Optional fields a weight policy may require in addition to the base record.
const (
	FieldDirector    = "Director"
	FieldReleaseDate = "ReleaseDate"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Movie is a single catalog record, keyed by its unique title
type Movie struct {
	ID          int64     `json:"id"`
	RID         uuid.UUID `json:"rid"`
	Title       string    `json:"title" validate:"required"`
	Rating      float64   `json:"rating" validate:"gte=0"`
	Genre       string    `json:"genre" validate:"required"`
	Year        int       `json:"year" validate:"gt=0"`
	Director    string    `json:"director,omitempty"`
	ReleaseDate time.Time `json:"release_date"`
	ImagePath   string    `json:"image_path,omitempty"`
	Overview    string    `json:"overview,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// Validate checks the base record fields and any additional fields listed in
// required (FieldDirector, FieldReleaseDate). The first violation is returned
// as a *MalformedRecordError.
func (m *Movie) Validate(required ...string) error {
	if m == nil {
		return &MalformedRecordError{Field: "Movie", Err: errors.New("record is nil")}
	}

	if err := validate.Struct(m); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) && len(validationErrors) > 0 {
			return &MalformedRecordError{Title: m.Title, Field: validationErrors[0].Field(), Err: validationErrors[0]}
		}
		return &MalformedRecordError{Title: m.Title, Field: "Movie", Err: err}
	}

	for _, field := range required {
		switch field {
		case FieldDirector:
			if err := validate.Var(m.Director, "required"); err != nil {
				return &MalformedRecordError{Title: m.Title, Field: FieldDirector, Err: err}
			}
		case FieldReleaseDate:
			if m.ReleaseDate.IsZero() {
				return &MalformedRecordError{Title: m.Title, Field: FieldReleaseDate, Err: errors.New("release date is not set")}
			}
		}
	}

	return nil
}

// Node returns the display attributes copied onto a graph node
func (m *Movie) Node() Node {
	return Node{
		Title:  m.Title,
		Rating: m.Rating,
		Genre:  m.Genre,
		Year:   m.Year,
	}
}

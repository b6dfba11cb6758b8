// Package weight defines the dissimilarity formulas used to weight the edges
// of the movie similarity graph.
//
// A Policy is the sum of independent terms. Every term must be symmetric in
// its two arguments and non-negative, so a Policy is too. Two families of
// formulas exist and are exposed as named policies:
//
//   - "director" (default): genre mismatch + |rating| + |year| + director mismatch
//   - "recency": genre mismatch + |rating| + |year| + release recency
package weight

import (
	"fmt"
	"math"
	"time"

	"github.com/siherrmann/moviegraph/model"
)

const (
	// PolicyDirector names the default formula with a director mismatch penalty.
	PolicyDirector = "director"
	// PolicyRecency names the formula with a recency term.
	PolicyRecency = "recency"
)

// Term is one independent, symmetric, non-negative component of a weight
type Term interface {
	Weight(a, b *model.Movie) float64
}

// Policy is a named weight formula
type Policy struct {
	Name string
	// Required lists the optional record fields the terms read.
	Required []string
	Terms    []Term
}

// Weight returns the dissimilarity of a and b
func (p *Policy) Weight(a, b *model.Movie) float64 {
	w := 0.0
	for _, term := range p.Terms {
		w += term.Weight(a, b)
	}
	return w
}

// GenreMismatch adds Penalty when the genres differ
type GenreMismatch struct {
	Penalty float64
}

func (g GenreMismatch) Weight(a, b *model.Movie) float64 {
	if a.Genre != b.Genre {
		return g.Penalty
	}
	return 0
}

// GenreMatch adds Penalty when the genres are equal.
// It is the inverse reading of the genre term and is not used by the named policies.
type GenreMatch struct {
	Penalty float64
}

func (g GenreMatch) Weight(a, b *model.Movie) float64 {
	if a.Genre == b.Genre {
		return g.Penalty
	}
	return 0
}

// RatingDifference is the absolute rating difference
type RatingDifference struct{}

func (RatingDifference) Weight(a, b *model.Movie) float64 {
	return math.Abs(a.Rating - b.Rating)
}

// YearDifference is the absolute difference of the release years
type YearDifference struct{}

func (YearDifference) Weight(a, b *model.Movie) float64 {
	return math.Abs(float64(a.Year - b.Year))
}

// DirectorMismatch adds Penalty when the directors differ
type DirectorMismatch struct {
	Penalty float64
}

func (d DirectorMismatch) Weight(a, b *model.Movie) float64 {
	if a.Director != b.Director {
		return d.Penalty
	}
	return 0
}

// Recency scales the mean age in years of both releases at Now.
// Releases after Now count as age zero.
type Recency struct {
	Now   time.Time
	Scale float64
}

func (r Recency) Weight(a, b *model.Movie) float64 {
	return r.Scale * (r.age(a.ReleaseDate) + r.age(b.ReleaseDate)) / 2
}

func (r Recency) age(release time.Time) float64 {
	if release.IsZero() || release.After(r.Now) {
		return 0
	}
	return r.Now.Sub(release).Hours() / (24 * 365.25)
}

// Default returns the "director" policy
func Default() *Policy {
	return &Policy{
		Name:     PolicyDirector,
		Required: []string{model.FieldDirector},
		Terms: []Term{
			GenreMismatch{Penalty: 1},
			RatingDifference{},
			YearDifference{},
			DirectorMismatch{Penalty: 1},
		},
	}
}

// NewRecency returns the "recency" policy evaluated at now
func NewRecency(now time.Time) *Policy {
	return &Policy{
		Name:     PolicyRecency,
		Required: []string{model.FieldReleaseDate},
		Terms: []Term{
			GenreMismatch{Penalty: 1},
			RatingDifference{},
			YearDifference{},
			Recency{Now: now, Scale: 0.1},
		},
	}
}

// ByName resolves a named policy, now is only used by "recency"
func ByName(name string, now time.Time) (*Policy, error) {
	switch name {
	case "", PolicyDirector:
		return Default(), nil
	case PolicyRecency:
		return NewRecency(now), nil
	default:
		return nil, fmt.Errorf("unknown weight policy %q (use %q or %q)", name, PolicyDirector, PolicyRecency)
	}
}

// NewPolicy assembles a custom named policy from terms
func NewPolicy(name string, required []string, terms ...Term) *Policy {
	return &Policy{
		Name:     name,
		Required: required,
		Terms:    terms,
	}
}

package types

import "iter"

// Fields is the writable part of a recipe. An update replaces all four
// values; partial updates are not supported.
type Fields struct {
	Name         string `json:"name" yaml:"name"`
	Category     string `json:"category" yaml:"category"`
	Ingredients  string `json:"ingredients" yaml:"ingredients"`
	Instructions string `json:"instructions" yaml:"instructions"`
}

// Recipe is one stored row.
type Recipe struct {
	ID     int64 `json:"id" yaml:"id"`
	Fields `yaml:",inline"`
}

// Address returns the single-record address of r.
func (r Recipe) Address() Address {
	return Record{ID: r.ID}
}

// Recipes is a lazy sequence of rows. Nothing is read until the sequence is
// ranged over, and every range re-reads the current state of the store.
// A non-nil error ends the sequence.
type Recipes iter.Seq2[Recipe, error]

// Collect drains seq into a slice. It returns an empty, non-nil slice when
// the sequence yields no rows.
func Collect(seq Recipes) ([]Recipe, error) {
	out := []Recipe{}
	for r, err := range seq {
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}

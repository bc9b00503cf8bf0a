package types

import (
	"fmt"
	"strconv"
	"strings"
)

// Authority is the host part of the content:// form of an address.
const Authority = "recipebox.data"

// contentPrefix is the optional scheme+authority prefix accepted by ParseAddress.
const contentPrefix = "content://" + Authority + "/"

// Address names either the whole recipe collection or one recipe. The only
// implementations are Collection and Record; callers switch on the concrete
// type.
type Address interface {
	// String renders the address as "recipes" or "recipes/{id}".
	String() string
	isAddress()
}

// Collection addresses every recipe.
type Collection struct{}

// Record addresses the recipe with the given id. Only ids > 0 are legal.
type Record struct {
	ID int64
}

func (Collection) isAddress() {}
func (Record) isAddress()     {}

func (Collection) String() string { return TableRecipes }

func (r Record) String() string {
	return TableRecipes + "/" + strconv.FormatInt(r.ID, 10)
}

// Valid reports whether r names a record that could exist.
func (r Record) Valid() bool {
	return r.ID > 0
}

// ParseAddress parses "recipes" or "recipes/{id}", optionally prefixed with
// "content://recipebox.data/". Any other shape, including a non-positive id,
// returns an error wrapping ErrUnsupportedAddress.
func ParseAddress(s string) (Address, error) {
	path := strings.TrimPrefix(s, contentPrefix)
	path = strings.TrimSuffix(path, "/")

	table, rest, hasID := strings.Cut(path, "/")
	if table != TableRecipes {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedAddress, s)
	}
	if !hasID {
		return Collection{}, nil
	}
	id, err := strconv.ParseInt(rest, 10, 64)
	if err != nil || id <= 0 {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedAddress, s)
	}
	return Record{ID: id}, nil
}

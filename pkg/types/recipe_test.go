package types

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"gopkg.in/yaml.v3"
)

func seqOf(rows []Recipe, err error) Recipes {
	return func(yield func(Recipe, error) bool) {
		for _, r := range rows {
			if !yield(r, nil) {
				return
			}
		}
		if err != nil {
			yield(Recipe{}, err)
		}
	}
}

func TestCollect(t *testing.T) {
	rows := []Recipe{
		{ID: 1, Fields: Fields{Name: "Apple pie"}},
		{ID: 2, Fields: Fields{Name: "Borscht"}},
	}
	got, err := Collect(seqOf(rows, nil))
	assert.NoError(t, err)
	assert.Equal(t, rows, got)
}

func TestCollectEmpty(t *testing.T) {
	got, err := Collect(seqOf(nil, nil))
	assert.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestCollectError(t *testing.T) {
	boom := errors.New("boom")
	got, err := Collect(seqOf([]Recipe{{ID: 1}}, boom))
	assert.ErrorIs(t, err, boom)
	assert.Nil(t, got)
}

func TestRecipeAddress(t *testing.T) {
	r := Recipe{ID: 5}
	assert.Equal(t, Record{ID: 5}, r.Address())
}

func TestRecipeEncodingIsFlat(t *testing.T) {
	r := Recipe{ID: 3, Fields: Fields{Name: "Soup", Category: "Lunch"}}

	j, err := json.Marshal(r)
	assert.NoError(t, err)
	assert.JSONEq(t, `{"id":3,"name":"Soup","category":"Lunch","ingredients":"","instructions":""}`, string(j))

	y, err := yaml.Marshal(r)
	assert.NoError(t, err)
	assert.Equal(t, "id: 3\nname: Soup\ncategory: Lunch\ningredients: \"\"\ninstructions: \"\"\n", string(y))
}

func TestSortOrderValid(t *testing.T) {
	assert.True(t, SortUnordered.Valid())
	assert.True(t, SortByName.Valid())
	assert.False(t, SortOrder("name; DROP TABLE recipes").Valid())
}

// Package archive moves recipes between the store and JSONL files, one
// recipe object per line. Both directions go through the gateway, so
// imports publish change events like any other insert.
package archive

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mesh-intelligence/recipebox/pkg/types"
)

// Export writes every recipe, in list order, to path and returns how many
// were written. An existing file is replaced atomically.
func Export(ctx context.Context, gw types.Gateway, path string) (int, error) {
	seq, err := gw.List(ctx)
	if err != nil {
		return 0, err
	}
	recipes, err := types.Collect(seq)
	if err != nil {
		return 0, err
	}

	records := make([]json.RawMessage, 0, len(recipes))
	for _, r := range recipes {
		b, err := json.Marshal(r)
		if err != nil {
			return 0, fmt.Errorf("encoding %s: %w", r.Address(), err)
		}
		records = append(records, b)
	}
	if err := writeJSONL(path, records); err != nil {
		return 0, fmt.Errorf("exporting to %s: %w", path, err)
	}
	return len(records), nil
}

// Import inserts every recipe in path and returns how many were inserted.
// Blank and malformed lines are skipped, and so are records without a
// name, since a recipe is never saved unnamed. Source ids are ignored; the store
// assigns new ones. Import stops at the first failed insert and returns the
// count so far together with the error.
func Import(ctx context.Context, gw types.Gateway, path string) (int, error) {
	records, err := readJSONL(path)
	if err != nil {
		return 0, err
	}

	n := 0
	for _, raw := range records {
		var r types.Recipe
		if err := json.Unmarshal(raw, &r); err != nil {
			continue
		}
		if strings.TrimSpace(r.Name) == "" {
			continue
		}
		if _, err := gw.Insert(ctx, types.Collection{}, r.Fields); err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}

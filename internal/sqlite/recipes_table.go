package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mesh-intelligence/recipebox/pkg/types"
)

// ErrUnknownSortOrder is returned by ExecuteQuery for a sort order that is
// not one of the types.SortOrder constants.
var ErrUnknownSortOrder = errors.New("unknown sort order")

// ExecuteInsert inserts one row and returns the id SQLite assigned.
// Any rejection by the store wraps types.ErrInsertFailed; a closed backend
// returns types.ErrStorageUnavailable.
func (b *Backend) ExecuteInsert(ctx context.Context, f types.Fields) (int64, error) {
	_, w, err := b.handles()
	if err != nil {
		return 0, err
	}

	res, err := w.ExecContext(ctx, insertRecipe, f.Name, f.Category, f.Ingredients, f.Instructions)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", types.ErrInsertFailed, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("%w: reading row id: %w", types.ErrInsertFailed, err)
	}
	if id <= 0 {
		return 0, fmt.Errorf("%w: store assigned row id %d", types.ErrInsertFailed, id)
	}
	return id, nil
}

// ExecuteUpdate replaces the four text fields of row id and returns the
// number of rows affected (0 or 1).
func (b *Backend) ExecuteUpdate(ctx context.Context, id int64, f types.Fields) (int64, error) {
	_, w, err := b.handles()
	if err != nil {
		return 0, err
	}

	res, err := w.ExecContext(ctx, updateRecipe, f.Name, f.Category, f.Ingredients, f.Instructions, id)
	if err != nil {
		return 0, unavailable(fmt.Sprintf("updating recipe %d", id), err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, unavailable(fmt.Sprintf("updating recipe %d", id), err)
	}
	return n, nil
}

// ExecuteDelete removes row id and returns the number of rows affected
// (0 or 1).
func (b *Backend) ExecuteDelete(ctx context.Context, id int64) (int64, error) {
	_, w, err := b.handles()
	if err != nil {
		return 0, err
	}

	res, err := w.ExecContext(ctx, deleteRecipe, id)
	if err != nil {
		return 0, unavailable(fmt.Sprintf("deleting recipe %d", id), err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, unavailable(fmt.Sprintf("deleting recipe %d", id), err)
	}
	return n, nil
}

// ExecuteQuery returns the rows matching id, or every row when id <= 0,
// in the given order. The query runs each time the sequence is ranged over.
func (b *Backend) ExecuteQuery(ctx context.Context, id int64, order types.SortOrder) types.Recipes {
	return func(yield func(types.Recipe, error) bool) {
		if !order.Valid() {
			yield(types.Recipe{}, fmt.Errorf("%w: %q", ErrUnknownSortOrder, order))
			return
		}
		r, _, err := b.handles()
		if err != nil {
			yield(types.Recipe{}, err)
			return
		}

		query := selectRecipe
		var args []any
		if id > 0 {
			query += " WHERE " + types.ColumnID + " = ?"
			args = append(args, id)
		}
		if order != types.SortUnordered {
			query += " ORDER BY " + string(order)
		}

		rows, err := r.QueryContext(ctx, query, args...)
		if err != nil {
			yield(types.Recipe{}, unavailable("querying recipes", err))
			return
		}
		defer rows.Close()

		for rows.Next() {
			rec, err := scanRecipe(rows)
			if err != nil {
				yield(types.Recipe{}, err)
				return
			}
			if !yield(rec, nil) {
				return
			}
		}
		if err := rows.Err(); err != nil {
			yield(types.Recipe{}, unavailable("reading recipes", err))
		}
	}
}

// scanRecipe hydrates one row. NULL text columns read back as "".
func scanRecipe(rows *sql.Rows) (types.Recipe, error) {
	var (
		rec                                types.Recipe
		name, category, ingredients, steps sql.NullString
	)
	if err := rows.Scan(&rec.ID, &name, &category, &ingredients, &steps); err != nil {
		return types.Recipe{}, unavailable("scanning recipe", err)
	}
	rec.Name = name.String
	rec.Category = category.String
	rec.Ingredients = ingredients.String
	rec.Instructions = steps.String
	return rec, nil
}

// Package sqlite implements the SQLite storage engine for recipebox.
package sqlite

import "github.com/mesh-intelligence/recipebox/pkg/types"

// createRecipes is the DDL for the one table the store owns.
const createRecipes = `CREATE TABLE IF NOT EXISTS ` + types.TableRecipes + ` (
    ` + types.ColumnID + ` INTEGER PRIMARY KEY,
    ` + types.ColumnName + ` TEXT,
    ` + types.ColumnCategory + ` TEXT,
    ` + types.ColumnIngredients + ` TEXT,
    ` + types.ColumnInstructions + ` TEXT
);`

// schemaDDL lists all CREATE statements executed on a new store.
var schemaDDL = []string{
	createRecipes,
}

// Statements used by the recipe accessors.
const (
	insertRecipe = `INSERT INTO recipes (name, category, ingredients, instructions) VALUES (?, ?, ?, ?)`
	updateRecipe = `UPDATE recipes SET name = ?, category = ?, ingredients = ?, instructions = ? WHERE id = ?`
	deleteRecipe = `DELETE FROM recipes WHERE id = ?`
	selectRecipe = `SELECT id, name, category, ingredients, instructions FROM recipes`
)

// pragmas applied to every connection through the DSN.
var pragmas = []string{
	"busy_timeout(5000)",
	"journal_mode(WAL)",
	"synchronous(NORMAL)",
}

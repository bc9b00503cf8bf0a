package types

// Table and column names of the recipes store.
const (
	TableRecipes = "recipes"

	ColumnID           = "id"
	ColumnName         = "name"
	ColumnCategory     = "category"
	ColumnIngredients  = "ingredients"
	ColumnInstructions = "instructions"
)

// Columns lists the writable columns in storage order. The primary key is
// implicit and not part of the list.
var Columns = []string{
	ColumnName,
	ColumnCategory,
	ColumnIngredients,
	ColumnInstructions,
}

// SchemaVersion is the schema version a freshly created store is stamped with.
const SchemaVersion = 1

// SortOrder is an ORDER BY clause accepted by the storage engine. Only the
// constants below are valid; the engine rejects anything else.
type SortOrder string

const (
	// SortUnordered leaves the row order to the database.
	SortUnordered SortOrder = ""
	// SortByName orders by name ascending, case-insensitive. Equal names
	// fall back to insertion order.
	SortByName SortOrder = ColumnName + " COLLATE NOCASE ASC, " + ColumnID + " ASC"
)

// Valid reports whether o is one of the known sort orders.
func (o SortOrder) Valid() bool {
	return o == SortUnordered || o == SortByName
}

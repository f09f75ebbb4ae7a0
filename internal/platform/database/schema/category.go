package schema

// CategoryTable represents the 'category' table
type CategoryTable struct {
	Table string
	Seq   string
	ID    string
	Name  string
}

// Category is the schema definition for category
var Category = CategoryTable{
	Table: "category",
	Seq:   "seq",
	ID:    "id",
	Name:  "name",
}

func (t CategoryTable) Columns() []string {
	return []string{t.ID, t.Name}
}

package schema

// CollectionTable represents one document collection table in the 'catalog' schema.
//
// Every collection shares the same layout: the identifier, the canonical sort
// key (nombre or titulo), the JSONB document and bookkeeping timestamps.
type CollectionTable struct {
	Name      string
	Table     string
	ID        string
	SortKey   string
	Doc       string
	CreatedAt string
	UpdatedAt string
}

func collection(name string) CollectionTable {
	return CollectionTable{
		Name:      name,
		Table:     "catalog." + name,
		ID:        "id",
		SortKey:   "sortkey",
		Doc:       "doc",
		CreatedAt: "createdat",
		UpdatedAt: "updatedat",
	}
}

// Reference collections
var (
	Temas        = collection("temas")
	Valoraciones = collection("valoraciones")
	Idiomas      = collection("idiomas")
	Editoriales  = collection("editoriales")
	Fabricantes  = collection("fabricantes")
)

// Composite collections
var (
	Libros     = collection("libros")
	Tutoriales = collection("tutoriales")
	Enlaces    = collection("enlaces")
)

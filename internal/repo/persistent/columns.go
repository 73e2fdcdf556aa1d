package persistent

// Columns shared by the projects and journey tables.
const (
	idColumn              = "id"
	titleColumn           = "title"
	descriptionColumn     = "description"
	markdownFileColumn    = "markdown_file"
	markdownContentColumn = "markdown_content"
	createdAtColumn       = "created_at"
	updatedAtColumn       = "updated_at"
)

type scanner interface {
	Scan(dest ...any) error
}

func prefixed(alias string, columns []string) []string {
	res := make([]string, 0, len(columns))
	for _, c := range columns {
		res = append(res, alias+"."+c)
	}

	return res
}

func desc(column string) string {
	return column + " DESC"
}

func asc(column string) string {
	return column + " ASC"
}

package gen

import (
	"strings"
	"unicode"

	"github.com/go-openapi/inflect"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var title = cases.Title(language.English, cases.NoLower)

// initialisms are name fragments spelled in full caps in generated
// identifiers, the way hand-written Go does.
var initialisms = map[string]string{
	"id":   "ID",
	"uid":  "UID",
	"uuid": "UUID",
	"url":  "URL",
	"uri":  "URI",
	"api":  "API",
	"sql":  "SQL",
	"json": "JSON",
	"html": "HTML",
	"http": "HTTP",
	"ip":   "IP",
}

// exportedName converts a lower-snake column name to an exported Go
// identifier, upgrading known initialisms: "author_id" becomes
// "AuthorID".
func exportedName(column string) string {
	parts := strings.Split(column, "_")
	for i, p := range parts {
		if up, ok := initialisms[p]; ok {
			parts[i] = up
			continue
		}
		parts[i] = title.String(p)
	}
	return strings.Join(parts, "")
}

// columnVar names the generated package-level column variable for a
// table's column: the type name down-cased plus the exported column
// name, as in "userAuthorID".
func columnVar(typeName, column string) string {
	return inflect.CamelizeDownFirst(snake(typeName)) + exportedName(column)
}

// fieldName names the generated struct field for a column.
func fieldName(column string) string {
	return exportedName(column)
}

// defaultTableName derives the conventional table name from a type
// name, "table_" plus the snake-cased form. It must agree with
// quill.DefaultTableName, which applies the same convention at runtime.
func defaultTableName(typeName string) string {
	return "table_" + snake(typeName)
}

// fileName names the generated file for a table type,
// "user_profile.go" for UserProfile.
func fileName(typeName string) string {
	return snake(typeName) + ".go"
}

// snake converts a type name to its lower-snake form, keeping acronym
// runs together: "APIKey" becomes "api_key" and "UserIDs" "user_ids".
// inflect.Underscore is not usable here; it splits acronym runs letter
// by letter.
func snake(s string) string {
	var (
		j int
		b strings.Builder
	)
	for i := 0; i < len(s); i++ {
		r := rune(s[i])
		// Split before an upper-case letter that follows a lower-case one,
		// or that starts a new word at the end of an acronym run.
		if i > 0 && i < len(s)-1 && unicode.IsUpper(r) {
			if unicode.IsLower(rune(s[i-1])) ||
				j != i-1 && unicode.IsLower(rune(s[i+1])) && unicode.IsLetter(rune(s[i-1])) {
				j = i
				b.WriteByte('_')
			}
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}

package quill

import (
	"reflect"
	"strings"
	"unicode"
)

// DefaultTableName derives the conventional table name for v's type:
// "table_" followed by the snake-cased type name, so a UserProfile value
// maps to "table_user_profile". Pointers are dereferenced first. Entities
// wanting another name implement TableName directly instead.
func DefaultTableName(v any) string {
	t := reflect.TypeOf(v)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil {
		panic("quill: DefaultTableName of untyped nil")
	}
	name := t.Name()
	if name == "" {
		name = t.String()
	}
	return "table_" + snake(name)
}

// snake converts a type name to its lower-snake form, keeping acronym
// runs together: "APIKey" becomes "api_key" and "UserIDs" "user_ids".
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

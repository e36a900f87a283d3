package quill

import "github.com/syssam/quill/dialect/sql"

// Single is the result of a single-row lookup, distinguishing a found
// row from an absent one. It aliases the statement layer's type so the
// two packages exchange values freely.
type Single[E any] = sql.Single[E]

// Package mixin provides conventional column declarations shared by many
// table layouts.
//
// The mixins are optional starting points. Each returns a freshly built
// typed column (or set of columns) that an entity lists in its
// TableLayout next to its own declarations:
//
//	var (
//		articleID    = mixin.UUID("id")
//		articleTitle = quill.Text("title")
//		articleTimes = mixin.Timestamps()
//	)
//
//	func (Article) TableLayout() []schema.Column {
//		return append([]schema.Column{articleID.Column, articleTitle.Column}, articleTimes...)
//	}
//
// Columns are immutable value objects, so sharing one mixin column across
// several layouts is safe; each layout still owns its declaration order.
package mixin

import (
	"github.com/google/uuid"

	"github.com/syssam/quill"
	"github.com/syssam/quill/schema"
)

// CreateTime returns the conventional created_at timestamp column. The
// caller sets it once on insert and never updates it.
func CreateTime() quill.TimeColumn {
	return quill.Time("created_at")
}

// UpdateTime returns the conventional updated_at timestamp column,
// refreshed by the caller on every update.
func UpdateTime() quill.TimeColumn {
	return quill.Time("updated_at")
}

// Timestamps returns the created_at and updated_at columns together, the
// most common pairing for tracking entity lifecycles.
func Timestamps() []schema.Column {
	return []schema.Column{CreateTime().Column, UpdateTime().Column}
}

// SoftDelete returns the conventional deleted_at timestamp column.
// Entities are not removed but marked with a deletion time; readers
// filter with deleted_at.IsNull() and use NullableTime to decode it.
func SoftDelete() quill.TimeColumn {
	return quill.Time("deleted_at")
}

// TenantID returns the conventional tenant_id text column for row-level
// multi-tenancy. Scope every statement with an EQ filter on it.
func TenantID() quill.TextColumn {
	return quill.Text("tenant_id")
}

// UUID returns a text key column holding string-form UUIDs, typically
// declared as the primary key:
//
//	var userID = mixin.UUID("id", schema.PrimaryKey())
//
// The database does not generate these ids; assign NewUUID before
// inserting.
func UUID(name string, opts ...schema.Option) quill.TextColumn {
	return quill.Text(name, opts...)
}

// NewUUID returns a fresh random UUID in string form for keys in UUID
// columns.
func NewUUID() string {
	return uuid.NewString()
}

package sql

import (
	"strconv"
	"strings"
)

// Builder accumulates SQL text and the bind values behind its
// placeholders in one pass. Rendering and value collection share the
// same walk, so placeholder positions and value order cannot diverge.
type Builder struct {
	sb   strings.Builder
	args []Value
}

// WriteString appends raw SQL text.
func (b *Builder) WriteString(s string) {
	b.sb.WriteString(s)
}

// WriteInt appends the decimal form of n.
func (b *Builder) WriteInt(n int) {
	b.sb.WriteString(strconv.Itoa(n))
}

// Arg appends a "?" placeholder and records the value bound to it.
func (b *Builder) Arg(v Value) {
	b.sb.WriteByte('?')
	b.args = append(b.args, v)
}

// String returns the accumulated SQL text.
func (b *Builder) String() string {
	return b.sb.String()
}

// Args returns the recorded bind values in placeholder order.
func (b *Builder) Args() []Value {
	return b.args
}

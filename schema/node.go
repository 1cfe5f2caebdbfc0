// Package schema describes the shape of a typed table's records as a
// tree of nodes over the encoding package's wire codec: primitives,
// strings, fixed-arity tuples, and inline arrays.
package schema

import "github.com/blockkv/blockkv/cursor"

// Node is a schema node producing values of type V. A node's Read always
// advances the cursor by exactly DynamicSize(the value just read) bytes,
// and likewise for Write.
type Node[V any] interface {
	IsFixedSize() bool
	DynamicSize(v V) int
	Read(r cursor.Reader) (V, error)
	Write(w cursor.Writer, v V) error
}

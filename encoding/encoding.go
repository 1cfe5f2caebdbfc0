// Package encoding implements blockkv's human-readable ASCII wire codec:
// every field is a sequence of 16-bit code units (one character per two
// little-endian bytes), so integers are fixed-width space-padded decimal
// text and records remain debuggable as a raw hex or text dump.
package encoding

// SizeChar is the width in bytes of a single encoded character.
const SizeChar = 2

// Character widths (in characters, not bytes) of the fixed-width integer
// encodings, sized to the longest possible signed decimal representation
// of each type, including sign.
const (
	byteWidthChars = 3  // len("255")
	intWidthChars  = 11 // len("-2147483648")
	longWidthChars = 20 // len("-9223372036854775808")
)

// Field sizes in bytes, per spec: two bytes per character.
const (
	SizeByte      = SizeChar * byteWidthChars
	SizeInt       = SizeChar * intWidthChars
	SizeLong      = SizeChar * longWidthChars
	SizeOffset    = SizeChar + SizeInt
	SizeReference = SizeChar + SizeLong
	SizePropSep   = SizeChar
	SizeArrayEdge = SizeChar
)

// SizeForString returns the byte size of a string's own character
// payload, excluding its length prefix and quote markers.
func SizeForString(n int) int { return n * SizeChar }

// Marker bytes for structural indicators. These are decoration: their
// sizes are accounted for in dynamic_size, but no parsing decision
// depends on their value beyond read-and-verify.
const (
	MarkerArrayStart = '['
	MarkerArrayEnd   = ']'
	MarkerTupleOpen  = '('
	MarkerTupleClose = ')'
	MarkerQuote      = '"'
	MarkerPropSep    = ','
	MarkerReference  = '*'
	MarkerOffset     = '@'
)

package schema

import (
	"github.com/blockkv/blockkv/cursor"
	"github.com/blockkv/blockkv/encoding"
)

// Byte is a fixed-size Node over a single unsigned byte.
type Byte struct{}

func (Byte) IsFixedSize() bool    { return true }
func (Byte) DynamicSize(byte) int { return encoding.SizeByte }

func (Byte) Read(r cursor.Reader) (byte, error) {
	return encoding.ReadByteValue(r)
}

func (Byte) Write(w cursor.Writer, v byte) error {
	return encoding.WriteByteValue(w, v)
}

// Int32 is a fixed-size Node over a signed 32-bit integer.
type Int32 struct{}

func (Int32) IsFixedSize() bool     { return true }
func (Int32) DynamicSize(int32) int { return encoding.SizeInt }

func (Int32) Read(r cursor.Reader) (int32, error) {
	return encoding.ReadInt32(r)
}

func (Int32) Write(w cursor.Writer, v int32) error {
	return encoding.WriteInt32(w, v)
}

// Int64 is a fixed-size Node over a signed 64-bit integer.
type Int64 struct{}

func (Int64) IsFixedSize() bool     { return true }
func (Int64) DynamicSize(int64) int { return encoding.SizeLong }

func (Int64) Read(r cursor.Reader) (int64, error) {
	return encoding.ReadInt64(r)
}

func (Int64) Write(w cursor.Writer, v int64) error {
	return encoding.WriteInt64(w, v)
}

// String is a variable-size Node over a string whose runes each fit in
// one 16-bit code unit; Write rejects runes above U+FFFF.
type String struct{}

func (String) IsFixedSize() bool        { return false }
func (String) DynamicSize(v string) int { return encoding.SizeForStringValue(v) }

func (String) Read(r cursor.Reader) (string, error) {
	return encoding.ReadString(r)
}

func (String) Write(w cursor.Writer, v string) error {
	return encoding.WriteString(w, v)
}

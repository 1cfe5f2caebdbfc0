package encoding

import (
	"github.com/blockkv/blockkv/berr"
	"github.com/blockkv/blockkv/cursor"
)

// writeChar16 writes one 16-bit code unit, low byte first.
func writeChar16(w cursor.Writer, unit uint16) error {
	if err := w.WriteByte(byte(unit)); err != nil {
		return err
	}
	return w.WriteByte(byte(unit >> 8))
}

// readChar16 reads one 16-bit code unit, low byte first.
func readChar16(r cursor.Reader) (uint16, error) {
	lo, err := r.ReadByte()
	if err != nil {
		return 0, err
	}
	hi, err := r.ReadByte()
	if err != nil {
		return 0, err
	}
	return uint16(lo) | uint16(hi)<<8, nil
}

// writeChar writes an ASCII character (digits, sign, spaces, markers).
func writeChar(w cursor.Writer, ch byte) error {
	return writeChar16(w, uint16(ch))
}

// readChar reads an ASCII character, failing Decode if the code unit's
// high byte is set (every character this package decodes outside of
// string payloads is produced as plain ASCII).
func readChar(r cursor.Reader) (byte, error) {
	unit, err := readChar16(r)
	if err != nil {
		return 0, err
	}
	if unit > 0xFF {
		return 0, berr.Wrap(berr.ErrDecode, "encoding: non-ascii code unit %#04x where ascii expected", unit)
	}
	return byte(unit), nil
}

// WriteMarker writes a single-character structural indicator.
func WriteMarker(w cursor.Writer, ch byte) error {
	return writeChar(w, ch)
}

// ReadMarker reads and verifies a single-character structural indicator,
// failing Decode on mismatch.
func ReadMarker(r cursor.Reader, want byte) error {
	got, err := readChar(r)
	if err != nil {
		return err
	}
	if got != want {
		return berr.Wrap(berr.ErrDecode, "encoding: expected marker %q, got %q", want, got)
	}
	return nil
}

// WriteObjectSeparator writes the two-character "\r\n" object separator.
func WriteObjectSeparator(w cursor.Writer) error {
	if err := writeChar(w, '\r'); err != nil {
		return err
	}
	return writeChar(w, '\n')
}

// ReadObjectSeparator reads and verifies the "\r\n" object separator.
func ReadObjectSeparator(r cursor.Reader) error {
	if err := ReadMarker(r, '\r'); err != nil {
		return err
	}
	return ReadMarker(r, '\n')
}

// encodeDecimal writes value right-justified, space-padded to widthChars
// characters. Digits are produced by repeatedly extracting value % 10
// without ever negating the whole value, so math.MinInt64 never
// overflows on the way through.
func encodeDecimal(w cursor.Writer, value int64, widthChars int) error {
	buf := make([]byte, widthChars)
	for i := range buf {
		buf[i] = ' '
	}

	i := widthChars - 1
	neg := value < 0
	v := value
	if v == 0 {
		buf[i] = '0'
		i--
	}
	for v != 0 {
		d := v % 10
		if d < 0 {
			d = -d
		}
		buf[i] = '0' + byte(d)
		i--
		v /= 10
	}
	if neg {
		if i < 0 {
			return berr.Wrap(berr.ErrInvalidArgument, "encoding: value %d does not fit in %d characters", value, widthChars)
		}
		buf[i] = '-'
	}

	for _, ch := range buf {
		if err := writeChar(w, ch); err != nil {
			return err
		}
	}
	return nil
}

// decodeDecimal reads a widthChars-wide right-justified signed decimal,
// accumulating against a negative running total so -2^63 is representable.
func decodeDecimal(r cursor.Reader, widthChars int) (int64, error) {
	chars := make([]byte, widthChars)
	for i := range chars {
		c, err := readChar(r)
		if err != nil {
			return 0, err
		}
		chars[i] = c
	}

	i := 0
	for i < widthChars && chars[i] == ' ' {
		i++
	}
	if i >= widthChars {
		return 0, berr.Wrap(berr.ErrDecode, "encoding: blank integer field")
	}

	neg := false
	if chars[i] == '-' {
		neg = true
		i++
	}
	if i >= widthChars {
		return 0, berr.Wrap(berr.ErrDecode, "encoding: integer field has sign but no digits")
	}

	var acc int64
	for ; i < widthChars; i++ {
		c := chars[i]
		if c < '0' || c > '9' {
			return 0, berr.Wrap(berr.ErrDecode, "encoding: non-digit byte %q in integer field", c)
		}
		acc = acc*10 - int64(c-'0')
	}
	if !neg {
		acc = -acc
	}
	return acc, nil
}

// WriteByteValue encodes an unsigned byte as fixed-width decimal text.
func WriteByteValue(w cursor.Writer, v byte) error {
	return encodeDecimal(w, int64(v), byteWidthChars)
}

// ReadByteValue decodes a byte previously written by WriteByteValue.
func ReadByteValue(r cursor.Reader) (byte, error) {
	v, err := decodeDecimal(r, byteWidthChars)
	if err != nil {
		return 0, err
	}
	if v < 0 || v > 255 {
		return 0, berr.Wrap(berr.ErrDecode, "encoding: byte value %d out of range", v)
	}
	return byte(v), nil
}

// WriteInt32 encodes a signed 32-bit integer as fixed-width decimal text.
func WriteInt32(w cursor.Writer, v int32) error {
	return encodeDecimal(w, int64(v), intWidthChars)
}

// ReadInt32 decodes an int32 previously written by WriteInt32.
func ReadInt32(r cursor.Reader) (int32, error) {
	v, err := decodeDecimal(r, intWidthChars)
	if err != nil {
		return 0, err
	}
	if v < -(1<<31) || v > (1<<31)-1 {
		return 0, berr.Wrap(berr.ErrDecode, "encoding: int32 value %d out of range", v)
	}
	return int32(v), nil
}

// WriteInt64 encodes a signed 64-bit integer as fixed-width decimal text.
func WriteInt64(w cursor.Writer, v int64) error {
	return encodeDecimal(w, v, longWidthChars)
}

// ReadInt64 decodes an int64 previously written by WriteInt64.
func ReadInt64(r cursor.Reader) (int64, error) {
	return decodeDecimal(r, longWidthChars)
}

// WriteOffset writes the '@' marker followed by an Int32.
func WriteOffset(w cursor.Writer, v int32) error {
	if err := WriteMarker(w, MarkerOffset); err != nil {
		return err
	}
	return WriteInt32(w, v)
}

// ReadOffset reads and verifies the '@' marker, then an Int32.
func ReadOffset(r cursor.Reader) (int32, error) {
	if err := ReadMarker(r, MarkerOffset); err != nil {
		return 0, err
	}
	return ReadInt32(r)
}

// WriteReference writes the '*' marker followed by an Int64.
func WriteReference(w cursor.Writer, v int64) error {
	if err := WriteMarker(w, MarkerReference); err != nil {
		return err
	}
	return WriteInt64(w, v)
}

// ReadReference reads and verifies the '*' marker, then an Int64.
func ReadReference(r cursor.Reader) (int64, error) {
	if err := ReadMarker(r, MarkerReference); err != nil {
		return 0, err
	}
	return ReadInt64(r)
}

package encoding

import (
	"github.com/blockkv/blockkv/berr"
	"github.com/blockkv/blockkv/cursor"
)

// SizeForStringValue returns the total encoded byte size of s: its Int32
// length prefix, open and close quote markers, and one code unit per rune.
func SizeForStringValue(s string) int {
	return SizeInt + SizeChar + SizeForString(len([]rune(s))) + SizeChar
}

// WriteString encodes s as: an Int32 rune count, an opening quote, one
// 16-bit code unit per rune, and a closing quote.
func WriteString(w cursor.Writer, s string) error {
	runes := []rune(s)
	if len(runes) > (1<<31)-1 {
		return berr.Wrap(berr.ErrInvalidArgument, "encoding: string too long to encode (%d runes)", len(runes))
	}
	if err := WriteInt32(w, int32(len(runes))); err != nil {
		return err
	}
	if err := WriteMarker(w, MarkerQuote); err != nil {
		return err
	}
	for _, r := range runes {
		if r < 0 || r > 0xFFFF {
			return berr.Wrap(berr.ErrInvalidArgument, "encoding: rune %U outside the 16-bit code unit range", r)
		}
		if err := writeChar16(w, uint16(r)); err != nil {
			return err
		}
	}
	return WriteMarker(w, MarkerQuote)
}

// ReadString decodes a string previously written by WriteString.
func ReadString(r cursor.Reader) (string, error) {
	n, err := ReadInt32(r)
	if err != nil {
		return "", err
	}
	if n < 0 {
		return "", berr.Wrap(berr.ErrDecode, "encoding: negative string length %d", n)
	}
	if err := ReadMarker(r, MarkerQuote); err != nil {
		return "", err
	}
	runes := make([]rune, n)
	for i := range runes {
		unit, err := readChar16(r)
		if err != nil {
			return "", err
		}
		runes[i] = rune(unit)
	}
	if err := ReadMarker(r, MarkerQuote); err != nil {
		return "", err
	}
	return string(runes), nil
}

package record

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"strings"
)

// Field widths of the on-disk record. Text fields hold at most width-1 bytes
// so that a NUL terminator always fits inside the buffer.
const (
	NameSize     = 100
	IDNumberSize = 12
	AgeSize      = 4
	EmailSize    = 100

	nameOffset     = 0
	idNumberOffset = nameOffset + NameSize
	ageOffset      = idNumberOffset + IDNumberSize
	emailOffset    = ageOffset + AgeSize

	// Size is the total size of one encoded record in bytes (216)
	Size = emailOffset + EmailSize
)

// Record is the fixed-width representation of a person as it is laid out in the
// store file.
//
// Name and Email are NUL terminated and zero filled. IDNumber holds the 11 digit
// key followed by a NUL byte. Age is a signed 32 bit little endian integer.
type Record struct {
	Name     string
	IDNumber string
	Age      int32
	Email    string
}

// Encode writes the record into dst, which must be at least Size bytes long. Every byte of
// dst[:Size] is overwritten, so dst can be reused between calls
func Encode(dst []byte, r *Record) error {
	if len(dst) < Size {
		return fmt.Errorf("encode: buffer too small, need %d bytes, got %d", Size, len(dst))
	}
	buf := dst[:Size]
	clear(buf)
	if err := putText(buf[nameOffset:idNumberOffset], r.Name, "name"); err != nil {
		return err
	}
	if err := putText(buf[idNumberOffset:ageOffset], r.IDNumber, "id number"); err != nil {
		return err
	}
	binary.LittleEndian.PutUint32(buf[ageOffset:], uint32(r.Age))
	return putText(buf[emailOffset:Size], r.Email, "email")
}

// Decode parses a record from the first Size bytes of src
func Decode(src []byte) (Record, error) {
	if len(src) < Size {
		return Record{}, ErrTruncatedRecord
	}
	var r Record
	var err error
	if r.Name, err = getText(src[nameOffset:idNumberOffset], "name"); err != nil {
		return Record{}, err
	}
	if r.IDNumber, err = getText(src[idNumberOffset:ageOffset], "id number"); err != nil {
		return Record{}, err
	}
	r.Age = int32(binary.LittleEndian.Uint32(src[ageOffset:]))
	if r.Email, err = getText(src[emailOffset:Size], "email"); err != nil {
		return Record{}, err
	}
	return r, nil
}

// CheckText returns an error if s cannot be stored in a text field of the given width. The encoding
// of the text is not checked, bytes are stored as they are
func CheckText(s string, width int) error {
	if len(s) > width-1 {
		return fmt.Errorf("%w - %d bytes, at most %d allowed", ErrFieldTooLarge, len(s), width-1)
	}
	if strings.IndexByte(s, 0) >= 0 {
		return fmt.Errorf("%w - contains a NUL byte", ErrInvalidText)
	}
	return nil
}

func putText(field []byte, s string, name string) error {
	if err := CheckText(s, len(field)); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	copy(field, s)
	return nil
}

// getText returns the bytes up to the first NUL. A field without a terminator is rejected
// instead of running into the next field
func getText(field []byte, name string) (string, error) {
	end := bytes.IndexByte(field, 0)
	if end < 0 {
		return "", fmt.Errorf("%s: %w", name, ErrUnterminatedField)
	}
	return string(field[:end]), nil
}

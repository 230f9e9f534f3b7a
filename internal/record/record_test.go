package record

import (
	"bytes"
	"encoding/binary"
	"errors"
	"strings"
	"testing"
)

func TestEncodeDecode(t *testing.T) {
	original := &Record{
		Name:     "Maria da Silva",
		IDNumber: "12345678901",
		Age:      34,
		Email:    "maria@example.com",
	}
	buf := make([]byte, Size)
	if err := Encode(buf, original); err != nil {
		t.Fatalf("unexpected encode error: %v", err)
	}

	decoded, err := Decode(buf)
	if err != nil {
		t.Fatalf("unexpected decode error: %v", err)
	}
	if decoded != *original {
		t.Errorf("expected %+v, got %+v", *original, decoded)
	}
}

func TestEncodedByteLayout(t *testing.T) {
	r := &Record{Name: "ab", IDNumber: "00000000001", Age: 258, Email: "e"}
	buf := make([]byte, Size)
	if err := Encode(buf, r); err != nil {
		t.Fatalf("unexpected encode error: %v", err)
	}

	if Size != 216 {
		t.Fatalf("expected record size 216, got %d", Size)
	}
	if !bytes.Equal(buf[0:3], []byte{'a', 'b', 0}) {
		t.Errorf("unexpected name bytes %v", buf[0:3])
	}
	for i := 3; i < NameSize; i++ {
		if buf[i] != 0 {
			t.Fatalf("expected name padding to be zero at %d, got %d", i, buf[i])
		}
	}
	if string(buf[100:111]) != "00000000001" || buf[111] != 0 {
		t.Errorf("unexpected id number bytes %v", buf[100:112])
	}
	if got := binary.LittleEndian.Uint32(buf[112:116]); got != 258 {
		t.Errorf("expected age 258, got %d", got)
	}
	if buf[116] != 'e' || buf[117] != 0 {
		t.Errorf("unexpected email bytes %v", buf[116:118])
	}
}

func TestEncodeReusesBuffer(t *testing.T) {
	buf := make([]byte, Size)
	long := &Record{Name: strings.Repeat("x", 50), IDNumber: "11111111111", Age: 1, Email: strings.Repeat("y", 50)}
	short := &Record{Name: "a", IDNumber: "22222222222", Age: 2, Email: "b"}
	if err := Encode(buf, long); err != nil {
		t.Fatalf("unexpected encode error: %v", err)
	}
	if err := Encode(buf, short); err != nil {
		t.Fatalf("unexpected encode error: %v", err)
	}
	decoded, err := Decode(buf)
	if err != nil {
		t.Fatalf("unexpected decode error: %v", err)
	}
	if decoded != *short {
		t.Errorf("expected %+v, got %+v", *short, decoded)
	}
}

func TestEncodeMaxWidthText(t *testing.T) {
	buf := make([]byte, Size)
	r := &Record{Name: strings.Repeat("n", NameSize-1), IDNumber: "12345678901", Age: 99, Email: strings.Repeat("e", EmailSize-1)}
	if err := Encode(buf, r); err != nil {
		t.Fatalf("expected 99 byte fields to fit, got %v", err)
	}
	if buf[NameSize-1] != 0 {
		t.Errorf("expected terminator at the end of the name field")
	}
	decoded, err := Decode(buf)
	if err != nil {
		t.Fatalf("unexpected decode error: %v", err)
	}
	if decoded != *r {
		t.Errorf("round trip mismatch for max width fields")
	}
}

func TestEncodeRejectsInvalidText(t *testing.T) {
	tests := []struct {
		name    string
		rec     Record
		wantErr error
	}{
		{"name too large", Record{Name: strings.Repeat("n", NameSize), IDNumber: "12345678901"}, ErrFieldTooLarge},
		{"email too large", Record{Email: strings.Repeat("e", EmailSize), IDNumber: "12345678901"}, ErrFieldTooLarge},
		{"id too large", Record{IDNumber: "123456789012"}, ErrFieldTooLarge},
		{"nul in name", Record{Name: "a\x00b", IDNumber: "12345678901"}, ErrInvalidText},
	}
	buf := make([]byte, Size)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := Encode(buf, &tt.rec); !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestEncodeKeepsRawBytes(t *testing.T) {
	// Latin-1 text written by older tools is carried through unchanged
	r := &Record{Name: "Jo\xe3o", IDNumber: "12345678901", Age: 5}
	buf := make([]byte, Size)
	if err := Encode(buf, r); err != nil {
		t.Fatalf("unexpected encode error: %v", err)
	}
	decoded, err := Decode(buf)
	if err != nil {
		t.Fatalf("unexpected decode error: %v", err)
	}
	if decoded.Name != r.Name {
		t.Errorf("expected %q, got %q", r.Name, decoded.Name)
	}
}

func TestEncodeSmallBuffer(t *testing.T) {
	if err := Encode(make([]byte, Size-1), &Record{}); err == nil {
		t.Errorf("expected error for small buffer, got nil")
	}
}

func TestDecodeUnterminatedField(t *testing.T) {
	buf := make([]byte, Size)
	for i := 0; i < NameSize; i++ {
		buf[i] = 'x'
	}
	if _, err := Decode(buf); !errors.Is(err, ErrUnterminatedField) {
		t.Errorf("expected ErrUnterminatedField, got %v", err)
	}
}

func TestDecodeTruncated(t *testing.T) {
	if _, err := Decode(make([]byte, Size-1)); !errors.Is(err, ErrTruncatedRecord) {
		t.Errorf("expected ErrTruncatedRecord, got %v", err)
	}
}

func TestDecodeNegativeAge(t *testing.T) {
	buf := make([]byte, Size)
	binary.LittleEndian.PutUint32(buf[112:], uint32(0xFFFFFFFF))
	r, err := Decode(buf)
	if err != nil {
		t.Fatalf("unexpected decode error: %v", err)
	}
	if r.Age != -1 {
		t.Errorf("expected age -1, got %d", r.Age)
	}
}

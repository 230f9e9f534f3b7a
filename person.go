package peopledb

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/ananthvk/peopledb/internal/record"
	"golang.org/x/text/unicode/norm"
)

// IDNumberLength is the number of digits of a national id number
const IDNumberLength = 11

// Person is a single entry of the store. IDNumber is the key, it is unique across the store and can't
// be changed once the person is created
type Person struct {
	Name     string
	IDNumber string
	Age      int
	Email    string
}

// Entry is a person as returned by List. Ordinal is the 1-based position of the record in the file, it
// is only meant for display and changes when records before it are deleted
type Entry struct {
	Ordinal int
	Person  Person
}

// Patch holds raw user input for Update. An empty field keeps the current value
type Patch struct {
	Name  string
	Age   string
	Email string
}

// UpdateResult describes a successful update. Warnings lists the patch fields that were rejected,
// the previous value was kept for each of them
type UpdateResult struct {
	Before   Person
	After    Person
	Warnings []error
}

// ValidateIDNumber returns true if s is exactly 11 characters long and every character is an ASCII digit
func ValidateIDNumber(s string) bool {
	if len(s) != IDNumberLength {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// ParseAge parses a positive base 10 age, leading and trailing spaces are ignored
func ParseAge(s string) (int, error) {
	age, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || age <= 0 || age > math.MaxInt32 {
		return 0, fmt.Errorf("%w - %q", ErrInvalidAge, s)
	}
	return age, nil
}

// NormalizeText returns s in Unicode normalization form C, which is the form stored on disk
func NormalizeText(s string) string {
	return norm.NFC.String(s)
}

// ValidateName returns an error if the name cannot be stored
func ValidateName(name string) error {
	return checkText("name", name, record.NameSize)
}

// ValidateEmail returns an error if the email cannot be stored
func ValidateEmail(email string) error {
	return checkText("email", email, record.EmailSize)
}

func checkText(field, s string, width int) error {
	if !utf8.ValidString(s) {
		return fmt.Errorf("%w: %s: not valid UTF-8", ErrInvalidText, field)
	}
	if err := record.CheckText(NormalizeText(s), width); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrInvalidText, field, err)
	}
	return nil
}

// Validate checks every field of p
func (p Person) Validate() error {
	if !ValidateIDNumber(p.IDNumber) {
		return fmt.Errorf("%w - %q", ErrInvalidIDNumber, p.IDNumber)
	}
	if p.Age <= 0 || p.Age > math.MaxInt32 {
		return fmt.Errorf("%w - %d", ErrInvalidAge, p.Age)
	}
	if err := ValidateName(p.Name); err != nil {
		return err
	}
	return ValidateEmail(p.Email)
}

// apply returns a copy of p with the non-empty fields of the patch applied. Invalid fields are
// skipped and reported
func (p Person) apply(patch Patch) (Person, []error) {
	var warnings []error
	if patch.Name != "" {
		if err := ValidateName(patch.Name); err != nil {
			warnings = append(warnings, err)
		} else {
			p.Name = NormalizeText(patch.Name)
		}
	}
	if patch.Age != "" {
		if age, err := ParseAge(patch.Age); err != nil {
			warnings = append(warnings, err)
		} else {
			p.Age = age
		}
	}
	if patch.Email != "" {
		if err := ValidateEmail(patch.Email); err != nil {
			warnings = append(warnings, err)
		} else {
			p.Email = NormalizeText(patch.Email)
		}
	}
	return p, warnings
}

// normalized returns a copy of p with its text fields in the form they are stored
func (p Person) normalized() Person {
	p.Name = NormalizeText(p.Name)
	p.Email = NormalizeText(p.Email)
	return p
}

func (p Person) toRecord() *record.Record {
	return &record.Record{
		Name:     p.Name,
		IDNumber: p.IDNumber,
		Age:      int32(p.Age),
		Email:    p.Email,
	}
}

func fromRecord(r record.Record) Person {
	return Person{
		Name:     r.Name,
		IDNumber: r.IDNumber,
		Age:      int(r.Age),
		Email:    r.Email,
	}
}

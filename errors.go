package peopledb

import "errors"

var (
	ErrInvalidIDNumber = errors.New("invalid id number, must be exactly 11 digits")
	ErrInvalidAge      = errors.New("invalid age, must be a positive integer")
	ErrInvalidText     = errors.New("invalid text field")
	ErrDuplicateKey    = errors.New("id number already registered")
	ErrNotFound        = errors.New("person not found")

	// ErrStorage wraps every failure of the underlying file system, the OS error is wrapped alongside it
	ErrStorage      = errors.New("storage error")
	ErrShortWrite   = errors.New("record was not written completely")
	ErrCorruptStore = errors.New("store file is corrupted")
)

package record

import "errors"

var ErrFieldTooLarge = errors.New("field too large")

var ErrInvalidText = errors.New("invalid text")

var ErrUnterminatedField = errors.New("text field is not terminated")

var ErrTruncatedRecord = errors.New("truncated record")

var ErrShortWrite = errors.New("record was not written completely")

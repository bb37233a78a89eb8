package parser

import (
	"errors"
	"fmt"
)

var (
	// A back-reference token was cut off by the end of the stream.
	IncompleteStreamError = errors.New("IncompleteStreamError")

	OutputTooLargeError = errors.New("OutputTooLargeError")
)

// FormatError means the data is not a NET+OS boot image at all, or its
// header contradicts itself. It is never recovered from.
type FormatError struct {
	Field   string
	Message string
}

func (self *FormatError) Error() string {
	return fmt.Sprintf("FormatError: %s: %s", self.Field, self.Message)
}

// TruncationError means the data looks right but is shorter than it
// claims to be - usually a partial download or a bad carve.
type TruncationError struct {
	// Where the missing data should have been.
	Offset int64
	Need   int64
	Have   int64

	Err error
}

func (self *TruncationError) Error() string {
	msg := fmt.Sprintf("TruncationError: need %d bytes at %#x, have %d",
		self.Need, self.Offset, self.Have)
	if self.Err != nil {
		msg += ": " + self.Err.Error()
	}
	return msg
}

func (self *TruncationError) Unwrap() error {
	return self.Err
}

func IsFormatError(err error) bool {
	var format_err *FormatError
	return errors.As(err, &format_err)
}

func IsTruncationError(err error) bool {
	var trunc_err *TruncationError
	return errors.As(err, &trunc_err)
}

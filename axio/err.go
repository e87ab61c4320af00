package axio

import (
	"errors"

	"github.com/ezrec/ax16/translate"
)

var f = translate.From

var (
	ErrImageSize   = errors.New(f("image larger than memory"))
	ErrWordInvalid = errors.New(f("word invalid"))
)

// ErrImage indicates the location of an image file error.
type ErrImage struct {
	LineNo int
	Line   string
	Err    error
}

func (err ErrImage) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err ErrImage) Unwrap() error {
	return err.Err
}

package domain

import "errors"

var (
	// ErrParse reports input that is not valid JSON.
	ErrParse = errors.New("invalid JSON")
	// ErrInvalidInput reports JSON that is empty or not an object.
	ErrInvalidInput = errors.New("no coverage data found")
)

// Describe returns the message shown to a user who pasted or uploaded a
// report. Errors other than ErrParse and ErrInvalidInput keep their text.
func Describe(err error) string {
	switch {
	case errors.Is(err, ErrParse):
		return "Invalid JSON! Please paste valid coverage report content."
	case errors.Is(err, ErrInvalidInput):
		return "No data found in JSON. Please check your content."
	default:
		return err.Error()
	}
}

// IsInputError reports whether err was caused by the report content rather
// than by reading it.
func IsInputError(err error) bool {
	return errors.Is(err, ErrParse) || errors.Is(err, ErrInvalidInput)
}

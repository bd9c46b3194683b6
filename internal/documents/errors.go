package documents

import "errors"

var (
	// ErrInvalidUpload covers missing files, empty filenames, and disallowed
	// extensions.
	ErrInvalidUpload = errors.New("invalid upload")

	// ErrEmptyExtraction means no text could be extracted from the file.
	ErrEmptyExtraction = errors.New("no text could be extracted from the file")

	// ErrModelJSON means the structured-extraction model reply was not
	// parseable as JSON.
	ErrModelJSON = errors.New("invalid JSON response from AI model")

	// ErrUnknownType is returned for listing requests with an unrecognized
	// document type.
	ErrUnknownType = errors.New("invalid document type")
)

package components

import "errors"

var (
	// ErrManifestNotFound indicates the manifest file does not exist
	ErrManifestNotFound = errors.New("component manifest not found")

	// ErrInvalidManifest indicates the manifest could not be parsed
	ErrInvalidManifest = errors.New("invalid component manifest")

	// ErrMissingID indicates a manifest entry without an id
	ErrMissingID = errors.New("component entry missing id")
)

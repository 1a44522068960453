package export

import "errors"

// Error classes surfaced by Export. Callers test them with errors.Is.
var (
	// ErrConfiguration means the export could not start: the output
	// directory could not be created, or the requested mode is unavailable.
	ErrConfiguration = errors.New("export configuration error")
	// ErrIO means the document or the manifest could not be written.
	ErrIO = errors.New("export write error")
)

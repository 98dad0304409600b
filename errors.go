package deliverance

import "errors"

// Sentinel errors for library operations.
var (
	ErrEmptySource      = errors.New("source cannot be empty")
	ErrSourceRead       = errors.New("failed to read source")
	ErrArtifactNotFound = errors.New("artifact not found")
	ErrArtifactDecode   = errors.New("failed to decode artifact metadata")
	ErrArtifactWrite    = errors.New("failed to write artifact")
)

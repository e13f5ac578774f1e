package site

import "errors"

// ErrUnsupportedContentType is the cause of a render failure for a page whose
// extension has no registered renderer.
var ErrUnsupportedContentType = errors.New("unsupported content type")

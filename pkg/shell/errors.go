package shell

import "errors"

var (
	ErrInvalidMetadata  = errors.New("shell: metadata title and description must be non-empty")
	ErrEmptyFontFamily  = errors.New("shell: font family is empty")
	ErrUnknownFont      = errors.New("shell: unknown font family")
	ErrUnknownSubset    = errors.New("shell: unsupported font subset")
	ErrInvalidFontClass = errors.New("shell: font class is not a valid CSS identifier")
	ErrStylesheet       = errors.New("shell: stylesheet registration failed")
)

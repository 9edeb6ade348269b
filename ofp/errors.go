package ofp

import "errors"

var (
	ErrShortHeader    = errors.New("ofp: short header")
	ErrLengthMismatch = errors.New("ofp: declared length does not match data")
	ErrTooLarge       = errors.New("ofp: message exceeds length field range")
	ErrUnknownVersion = errors.New("ofp: unknown version")
)

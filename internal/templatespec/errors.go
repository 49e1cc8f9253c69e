package templatespec

import "errors"

// Error kinds returned (wrapped in *ParseError) by Parse, New and Validate.
var (
	ErrBlankPair         = errors.New("blank key-value pair")
	ErrMultipleEquals    = errors.New("more than one equals sign")
	ErrUnknownKey        = errors.New("unknown key")
	ErrOmittedValue      = errors.New("value omitted")
	ErrInvalidValue      = errors.New("invalid value")
	ErrDuplicateKey      = errors.New("duplicate key")
	ErrConflictingKeys   = errors.New("conflicting keys")
	ErrMissingDependency = errors.New("missing dependency")
)

// ParseError describes why a specification was rejected.
type ParseError struct {
	// Kind is one of the Err* sentinels above.
	Kind error

	// Key is the offending key name as written, if known.
	Key string

	// Value is the offending raw value, if any.
	Value string

	msg string
}

func (e *ParseError) Error() string {
	return e.msg
}

func (e *ParseError) Unwrap() error {
	return e.Kind
}

func newParseError(kind error, key, value, msg string) *ParseError {
	return &ParseError{Kind: kind, Key: key, Value: value, msg: msg}
}

package sfv

import "fmt"

// ErrorKind is the closed taxonomy of ways a structured field value can fail
// to parse, construct, or serialize.
type ErrorKind uint8

const (
	// UnexpectedCharacter means the byte at the reported offset does not
	// match the grammar production being recognized.
	UnexpectedCharacter ErrorKind = iota
	// UnexpectedEndOfInput means the input ended in the middle of a
	// production that required more bytes.
	UnexpectedEndOfInput
	// TrailingCharacters means non-whitespace bytes remained after a
	// complete, valid top-level parse.
	TrailingCharacters
	// InvalidCharacter means a byte fell outside the allowed class for the
	// token type currently being scanned.
	InvalidCharacter
	// InvalidFormat means the input was syntactically ill-formed in a way
	// not covered by a character class violation (e.g. "." with no digits).
	InvalidFormat
	// OutOfRange means an Integer or Decimal magnitude exceeded the RFC
	// limits.
	OutOfRange
	// InvalidUTF8 means Display String octets did not decode as valid
	// UTF-8.
	InvalidUTF8
	// InvalidBase64 means a Byte Sequence body was not valid padded
	// base64.
	InvalidBase64
)

// String returns a stable, human-readable label for the error kind.
func (k ErrorKind) String() string {
	switch k {
	case UnexpectedCharacter:
		return "unexpected character"
	case UnexpectedEndOfInput:
		return "unexpected end of input"
	case TrailingCharacters:
		return "trailing characters"
	case InvalidCharacter:
		return "invalid character"
	case InvalidFormat:
		return "invalid format"
	case OutOfRange:
		return "out of range"
	case InvalidUTF8:
		return "invalid UTF-8"
	case InvalidBase64:
		return "invalid base64"
	default:
		return "unknown error"
	}
}

// ParseError is returned by the parser when input fails to conform to the
// structured-field-value grammar. Offset is the byte position at which the
// violation was detected, 0 <= Offset <= len(input).
type ParseError struct {
	Kind   ErrorKind
	Offset int
	reason string // optional extra detail, not part of the taxonomy
}

func (e *ParseError) Error() string {
	if e.reason != "" {
		return fmt.Sprintf("%s at offset %d: %s", e.Kind, e.Offset, e.reason)
	}
	return fmt.Sprintf("%s at offset %d", e.Kind, e.Offset)
}

func newParseError(kind ErrorKind, offset int) *ParseError {
	return &ParseError{Kind: kind, Offset: offset}
}

func newParseErrorf(kind ErrorKind, offset int, reason string) *ParseError {
	return &ParseError{Kind: kind, Offset: offset, reason: reason}
}

// ConstructError is returned by a typed bare-item constructor when the
// supplied value violates that type's invariants.
type ConstructError struct {
	Kind   ErrorKind
	reason string
}

func (e *ConstructError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.reason)
}

func newConstructError(kind ErrorKind, reason string) *ConstructError {
	return &ConstructError{Kind: kind, reason: reason}
}

// SerializeError is returned by the serializer. The ListSerializer and
// DictSerializer builders return it when their methods are called out of
// order, when an inner list is left open at Finish, or when Finish is
// called with nothing appended; values built through the typed
// constructors and the Ref constructors serialize without one.
type SerializeError struct {
	Kind   ErrorKind
	reason string
}

func (e *SerializeError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.reason)
}

func newSerializeError(kind ErrorKind, reason string) *SerializeError {
	return &SerializeError{Kind: kind, reason: reason}
}

// errEmptySerialization is returned by a ref-layer builder's Finish method
// when nothing was ever appended to it; this is distinct from a legitimately
// empty List or Dictionary value, which serializes to "" without error.
var errEmptySerialization = newSerializeError(InvalidFormat, "no members were appended before Finish")

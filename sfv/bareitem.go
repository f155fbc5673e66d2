package sfv

import "unicode/utf8"

// BareKind tags the closed set of atomic value kinds a BareItem can hold.
type BareKind uint8

const (
	KindInteger BareKind = iota
	KindDecimal
	KindString
	KindToken
	KindByteSequence
	KindBoolean
	KindDate
	KindDisplayString
)

func (k BareKind) String() string {
	switch k {
	case KindInteger:
		return "integer"
	case KindDecimal:
		return "decimal"
	case KindString:
		return "string"
	case KindToken:
		return "token"
	case KindByteSequence:
		return "byte sequence"
	case KindBoolean:
		return "boolean"
	case KindDate:
		return "date"
	case KindDisplayString:
		return "display string"
	default:
		return "unknown"
	}
}

// BareItem is the closed tagged union over the eight atomic structured
// field value types (RFC 8941 §3.3, extended by RFC 9651 §3 with Date and
// Display String). Consumers dispatch on Kind(); there is deliberately no
// interface-per-variant hierarchy, since the set of variants is closed by
// the RFC and will not grow except by a future RFC revision.
type BareItem struct {
	kind    BareKind
	integer int64  // Integer, Date (POSIX seconds)
	decimal Decimal
	str     string // String, Token, Display String (decoded)
	bytes   []byte // Byte Sequence (decoded)
	boolean bool
}

// Kind reports which variant the BareItem holds.
func (b BareItem) Kind() BareKind { return b.kind }

// NewInteger constructs an Integer bare item, rejecting magnitudes outside
// [-(10^15-1), 10^15-1].
func NewInteger(v int64) (BareItem, error) {
	if v > IntegerMax || v < IntegerMin {
		return BareItem{}, newConstructError(OutOfRange, "integer magnitude exceeds 10^15-1")
	}
	return BareItem{kind: KindInteger, integer: v}, nil
}

// AsInteger returns the Integer value and true if the BareItem holds one.
func (b BareItem) AsInteger() (int64, bool) {
	if b.kind != KindInteger {
		return 0, false
	}
	return b.integer, true
}

// NewDecimalItem constructs a Decimal bare item.
func NewDecimalItem(d Decimal) (BareItem, error) {
	return BareItem{kind: KindDecimal, decimal: d}, nil
}

// AsDecimal returns the Decimal value and true if the BareItem holds one.
func (b BareItem) AsDecimal() (Decimal, bool) {
	if b.kind != KindDecimal {
		return Decimal{}, false
	}
	return b.decimal, true
}

// NewString constructs a String bare item. Every byte must be in the
// printable-ASCII range 0x20-0x7E.
func NewString(s string) (BareItem, error) {
	for i := 0; i < len(s); i++ {
		if s[i] < 0x20 || s[i] > 0x7e {
			return BareItem{}, newConstructError(InvalidCharacter, "string contains a byte outside 0x20-0x7E")
		}
	}
	return BareItem{kind: KindString, str: s}, nil
}

// AsString returns the String value and true if the BareItem holds one.
func (b BareItem) AsString() (string, bool) {
	if b.kind != KindString {
		return "", false
	}
	return b.str, true
}

// NewToken constructs a Token bare item. The first byte must be ALPHA or
// "*"; subsequent bytes must be in the token-char set.
func NewToken(s string) (BareItem, error) {
	if len(s) == 0 {
		return BareItem{}, newConstructError(InvalidFormat, "token must not be empty")
	}
	if !isTokenLeadByte(s[0]) {
		return BareItem{}, newConstructError(InvalidCharacter, "token must start with ALPHA or '*'")
	}
	for i := 1; i < len(s); i++ {
		if !isTokenByte(s[i]) {
			return BareItem{}, newConstructError(InvalidCharacter, "token contains a character outside the tchar set")
		}
	}
	return BareItem{kind: KindToken, str: s}, nil
}

// AsToken returns the Token value and true if the BareItem holds one.
func (b BareItem) AsToken() (string, bool) {
	if b.kind != KindToken {
		return "", false
	}
	return b.str, true
}

// NewByteSequence constructs a Byte Sequence bare item from already-decoded
// bytes. There is no constraint on the contents; the RFC constrains only
// the wire (base64) form.
func NewByteSequence(b []byte) (BareItem, error) {
	cp := make([]byte, len(b))
	copy(cp, b)
	return BareItem{kind: KindByteSequence, bytes: cp}, nil
}

// AsByteSequence returns the decoded bytes and true if the BareItem holds a
// Byte Sequence.
func (b BareItem) AsByteSequence() ([]byte, bool) {
	if b.kind != KindByteSequence {
		return nil, false
	}
	return b.bytes, true
}

// NewBoolean constructs a Boolean bare item. This constructor is infallible
// because every bool value is already valid.
func NewBoolean(v bool) BareItem {
	return BareItem{kind: KindBoolean, boolean: v}
}

// AsBoolean returns the Boolean value and true if the BareItem holds one.
func (b BareItem) AsBoolean() (bool, bool) {
	if b.kind != KindBoolean {
		return false, false
	}
	return b.boolean, true
}

// NewDate constructs a Date bare item (RFC 9651 §3.3.7): a signed integer
// of POSIX seconds, sharing Integer's magnitude bounds.
func NewDate(seconds int64) (BareItem, error) {
	if seconds > IntegerMax || seconds < IntegerMin {
		return BareItem{}, newConstructError(OutOfRange, "date magnitude exceeds 10^15-1 seconds")
	}
	return BareItem{kind: KindDate, integer: seconds}, nil
}

// AsDate returns the Date's POSIX seconds value and true if the BareItem
// holds one.
func (b BareItem) AsDate() (int64, bool) {
	if b.kind != KindDate {
		return 0, false
	}
	return b.integer, true
}

// NewDisplayString constructs a Display String bare item (RFC 9651 §3.3.8).
// The argument must be valid UTF-8; this is the only bare-item kind whose
// wire form carries non-ASCII text, encoded with percent-escaping at
// serialization time.
func NewDisplayString(s string) (BareItem, error) {
	if !utf8.ValidString(s) {
		return BareItem{}, newConstructError(InvalidUTF8, "display string is not valid UTF-8")
	}
	return BareItem{kind: KindDisplayString, str: s}, nil
}

// AsDisplayString returns the decoded text and true if the BareItem holds a
// Display String.
func (b BareItem) AsDisplayString() (string, bool) {
	if b.kind != KindDisplayString {
		return "", false
	}
	return b.str, true
}

func isTokenLeadByte(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '*'
}

// isTokenSpecial reports whether c is in the RFC 8941 tchar special-character
// set, not counting ALPHA/DIGIT: "!#$%&'*+-.^_`|~:/"
func isTokenSpecial(c byte) bool {
	switch c {
	case '!', '#', '$', '%', '&', '\'', '*', '+', '-', '.', '^', '_', '`', '|', '~', ':', '/':
		return true
	default:
		return false
	}
}

func isTokenByte(c byte) bool {
	return isTokenLeadByte(c) || (c >= '0' && c <= '9') || isTokenSpecial(c)
}

package sfv

// Key is the identifier used for Dictionary entries and Parameters.
//
// Per RFC 8941 §3.1.2, a key's first byte must be lowercase-ALPHA or "*",
// and subsequent bytes must be lowercase-ALPHA, DIGIT, "_", "-", ".", or
// "*". Unlike Token, Key is never case-sensitive in the upper-case
// direction: there is no upper-case form to normalize from, so a Key that
// fails validation is rejected outright rather than folded.
type Key string

// NewKey validates s against the key grammar and returns it as a Key.
func NewKey(s string) (Key, error) {
	if err := validateKey(s); err != nil {
		return "", err
	}
	return Key(s), nil
}

// String returns the key's textual form.
func (k Key) String() string {
	return string(k)
}

func validateKey(s string) error {
	if len(s) == 0 {
		return newConstructError(InvalidFormat, "key must not be empty")
	}
	if !isKeyLeadByte(s[0]) {
		return newConstructError(InvalidCharacter, "key must start with lowercase letter or '*'")
	}
	for i := 1; i < len(s); i++ {
		if !isKeyByte(s[i]) {
			return newConstructError(InvalidCharacter, "key contains a character outside the key charset")
		}
	}
	return nil
}

func isKeyLeadByte(c byte) bool {
	return (c >= 'a' && c <= 'z') || c == '*'
}

func isKeyByte(c byte) bool {
	return isKeyLeadByte(c) || (c >= '0' && c <= '9') || c == '_' || c == '-' || c == '.'
}

// scanKey reads a key starting at p.pos and advances past it. It requires
// at least one valid key byte.
func (p *parser) scanKey() (Key, error) {
	start := p.pos
	if p.atEnd() || !isKeyLeadByte(p.data[p.pos]) {
		return "", newParseError(UnexpectedCharacter, p.pos)
	}
	p.pos++
	for !p.atEnd() && isKeyByte(p.data[p.pos]) {
		p.pos++
	}
	return Key(p.data[start:p.pos]), nil
}

package sfv

import (
	"encoding/base64"
	"strconv"
	"unicode/utf8"
)

// parseList recognizes a List: a comma-separated sequence of list members,
// each either an Item or an Inner List. Empty input yields an empty List.
func (p *parser) parseList(sink Sink) error {
	if err := p.sinkCall(sink.BeginList()); err != nil {
		return err
	}
	for !p.atEnd() {
		if err := p.parseListMember(sink); err != nil {
			return err
		}
		p.skipOWS()
		if p.atEnd() {
			return p.sinkCall(sink.EndList())
		}
		if p.peek() != ',' {
			return newParseError(TrailingCharacters, p.pos)
		}
		p.advance()
		p.skipOWS()
		if p.atEnd() {
			return newParseError(UnexpectedEndOfInput, p.pos)
		}
	}
	return p.sinkCall(sink.EndList())
}

func (p *parser) parseListMember(sink Sink) error {
	if err := p.sinkCall(sink.ListItemBegin()); err != nil {
		return err
	}
	if !p.atEnd() && p.peek() == '(' {
		if err := p.parseInnerList(sink); err != nil {
			return err
		}
	} else if err := p.parseItem(sink); err != nil {
		return err
	}
	return p.sinkCall(sink.ListItemEnd())
}

// parseDictionary recognizes a Dictionary: comma-separated key[=value]
// entries. Bare keys (no "=") stand for a Boolean-true Item. Duplicate
// keys have their value replaced while the position stays at the first
// occurrence, which orderedMap.set already guarantees.
func (p *parser) parseDictionary(sink Sink) error {
	if err := p.sinkCall(sink.BeginDictionary()); err != nil {
		return err
	}
	for !p.atEnd() {
		key, err := p.scanKey()
		if err != nil {
			return err
		}
		if err := p.sinkCall(sink.DictEntryBegin(key)); err != nil {
			return err
		}
		if !p.atEnd() && p.peek() == '=' {
			p.advance()
			if !p.atEnd() && p.peek() == '(' {
				if err := p.parseInnerList(sink); err != nil {
					return err
				}
			} else if err := p.parseItem(sink); err != nil {
				return err
			}
		} else {
			if err := p.sinkCall(sink.BareItem(NewBoolean(true))); err != nil {
				return err
			}
			if err := p.parseParameters(sink); err != nil {
				return err
			}
		}
		if err := p.sinkCall(sink.DictEntryEnd()); err != nil {
			return err
		}
		p.skipOWS()
		if p.atEnd() {
			return p.sinkCall(sink.EndDictionary())
		}
		if p.peek() != ',' {
			return newParseError(TrailingCharacters, p.pos)
		}
		p.advance()
		p.skipOWS()
		if p.atEnd() {
			return newParseError(UnexpectedEndOfInput, p.pos)
		}
	}
	return p.sinkCall(sink.EndDictionary())
}

// parseItem recognizes a bare item followed by its parameters. It backs
// both the top-level Item entrypoint and non-inner-list list/dictionary
// members.
func (p *parser) parseItem(sink Sink) error {
	item, err := p.scanBareItem()
	if err != nil {
		return err
	}
	if err := p.sinkCall(sink.BareItem(item)); err != nil {
		return err
	}
	return p.parseParameters(sink)
}

func (p *parser) parseItemAndParams(sink Sink) error {
	return p.parseItem(sink)
}

// parseInnerList recognizes "(" *SP [ item *(1*SP item) *SP ] ")" followed
// by the inner list's own parameters. Inner lists cannot nest: their items
// are always bare items with parameters, never "(" again. Leading SP is
// discarded on every loop pass before checking for the closing ")", which
// naturally folds the empty-list case "( )" and the 1*SP-between-items
// requirement into one loop instead of special-casing the first item.
func (p *parser) parseInnerList(sink Sink) error {
	p.advance() // consume '('
	if err := p.sinkCall(sink.InnerListBegin()); err != nil {
		return err
	}
	for {
		for !p.atEnd() && p.peek() == ' ' {
			p.advance()
		}
		if p.atEnd() {
			return newParseError(UnexpectedEndOfInput, p.pos)
		}
		if p.peek() == ')' {
			p.advance()
			break
		}
		if err := p.parseItem(sink); err != nil {
			return err
		}
		if p.atEnd() {
			return newParseError(UnexpectedEndOfInput, p.pos)
		}
		c := p.peek()
		if c != ' ' && c != ')' {
			return newParseError(UnexpectedCharacter, p.pos)
		}
	}
	if err := p.sinkCall(sink.InnerListEnd()); err != nil {
		return err
	}
	return p.parseParameters(sink)
}

// parseParameters recognizes zero or more "; OWS Key (= bare-item)?"
// occurrences. A key with no "=" stands for Boolean true. Duplicate keys
// replace the value at the key's first position.
func (p *parser) parseParameters(sink Sink) error {
	for !p.atEnd() && p.peek() == ';' {
		p.advance()
		p.skipOWS()
		key, err := p.scanKey()
		if err != nil {
			return err
		}
		var value BareItem
		if !p.atEnd() && p.peek() == '=' {
			p.advance()
			value, err = p.scanBareItem()
			if err != nil {
				return err
			}
		} else {
			value = NewBoolean(true)
		}
		if err := p.sinkCall(sink.Parameter(key, value)); err != nil {
			return err
		}
	}
	return nil
}

// scanBareItem dispatches on the current byte to the appropriate bare-item
// scanner, per RFC 8941 §4.2.3 / RFC 9651 §3.
func (p *parser) scanBareItem() (BareItem, error) {
	if p.atEnd() {
		return BareItem{}, newParseError(UnexpectedEndOfInput, p.pos)
	}
	c := p.peek()
	switch {
	case c == '"':
		return p.scanString()
	case c == '?':
		return p.scanBoolean()
	case c == ':':
		return p.scanByteSequence()
	case c == '*' || isAlpha(c):
		return p.scanToken()
	case c == '-' || isDigitByte(c):
		return p.scanNumeric()
	case c == '@':
		return p.scanDate()
	case c == '%':
		return p.scanDisplayString()
	default:
		return BareItem{}, newParseError(UnexpectedCharacter, p.pos)
	}
}

func (p *parser) scanString() (BareItem, error) {
	p.advance() // consume opening '"'
	var buf []byte
	for {
		if p.atEnd() {
			return BareItem{}, newParseError(UnexpectedEndOfInput, p.pos)
		}
		c := p.peek()
		if c == '"' {
			p.advance()
			return NewString(string(buf))
		}
		if c == '\\' {
			p.advance()
			if p.atEnd() {
				return BareItem{}, newParseError(UnexpectedEndOfInput, p.pos)
			}
			esc := p.peek()
			if esc != '"' && esc != '\\' {
				return BareItem{}, newParseError(InvalidCharacter, p.pos)
			}
			buf = append(buf, esc)
			p.advance()
			continue
		}
		if c < 0x20 || c > 0x7e {
			return BareItem{}, newParseError(InvalidCharacter, p.pos)
		}
		buf = append(buf, c)
		p.advance()
	}
}

func (p *parser) scanBoolean() (BareItem, error) {
	p.advance() // consume '?'
	if p.atEnd() {
		return BareItem{}, newParseError(UnexpectedEndOfInput, p.pos)
	}
	c := p.peek()
	if c != '0' && c != '1' {
		return BareItem{}, newParseError(InvalidCharacter, p.pos)
	}
	p.advance()
	return NewBoolean(c == '1'), nil
}

func (p *parser) scanToken() (BareItem, error) {
	start := p.pos
	p.advance() // lead byte already validated by the caller's dispatch
	for !p.atEnd() && isTokenByte(p.peek()) {
		p.advance()
	}
	return NewToken(string(p.data[start:p.pos]))
}

func (p *parser) scanByteSequence() (BareItem, error) {
	p.advance() // consume ':'
	start := p.pos
	for !p.atEnd() && p.peek() != ':' {
		c := p.peek()
		if !isBase64Char(c) && c != '=' {
			return BareItem{}, newParseError(InvalidCharacter, p.pos)
		}
		p.advance()
	}
	if p.atEnd() {
		return BareItem{}, newParseError(UnexpectedEndOfInput, p.pos)
	}
	encoded := string(p.data[start:p.pos])
	p.advance() // consume closing ':'
	decoded, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		off := start
		if ce, ok := err.(base64.CorruptInputError); ok {
			off += int(ce)
		}
		return BareItem{}, newParseErrorf(InvalidBase64, off, err.Error())
	}
	return NewByteSequence(decoded)
}

// scanNumeric recognizes an Integer or Decimal, per RFC 8941 §4.2.4: a
// sign, up to 15 digits, and an optional "." followed by 1-3 fractional
// digits (which caps the integer part at 12 digits instead of 15 once a
// fraction is present).
func (p *parser) scanNumeric() (BareItem, error) {
	neg := false
	if p.peek() == '-' {
		neg = true
		p.advance()
	}
	if p.atEnd() || !isDigitByte(p.peek()) {
		return BareItem{}, newParseError(InvalidFormat, p.pos)
	}
	digitsStart := p.pos
	for !p.atEnd() && isDigitByte(p.peek()) {
		p.advance()
		if p.pos-digitsStart > 15 {
			return BareItem{}, newParseError(OutOfRange, p.pos)
		}
	}
	intDigits := p.pos - digitsStart

	if p.atEnd() || p.peek() != '.' {
		v, err := strconv.ParseInt(string(p.data[digitsStart:p.pos]), 10, 64)
		if err != nil {
			return BareItem{}, newParseError(OutOfRange, digitsStart)
		}
		if neg {
			v = -v
		}
		return NewInteger(v)
	}

	if intDigits > 12 {
		return BareItem{}, newParseError(OutOfRange, p.pos)
	}
	p.advance() // consume '.'
	fracStart := p.pos
	for !p.atEnd() && isDigitByte(p.peek()) {
		p.advance()
		if p.pos-fracStart > 3 {
			return BareItem{}, newParseError(OutOfRange, p.pos)
		}
	}
	fracDigits := p.pos - fracStart
	if fracDigits == 0 {
		return BareItem{}, newParseError(InvalidFormat, p.pos)
	}

	intVal, _ := strconv.ParseInt(string(p.data[digitsStart:digitsStart+intDigits]), 10, 64)
	fracVal, _ := strconv.ParseInt(string(p.data[fracStart:p.pos]), 10, 64)
	for i := fracDigits; i < 3; i++ {
		fracVal *= 10
	}
	scaled := intVal*1000 + fracVal
	if neg {
		scaled = -scaled
	}
	d, err := DecimalFromScaled(scaled)
	if err != nil {
		return BareItem{}, newParseError(OutOfRange, digitsStart)
	}
	return NewDecimalItem(d)
}

// scanDate recognizes "@" followed by the integer grammar (RFC 9651 §3.3.7).
// Dates never carry a fractional part.
func (p *parser) scanDate() (BareItem, error) {
	p.advance() // consume '@'
	if p.atEnd() {
		return BareItem{}, newParseError(UnexpectedEndOfInput, p.pos)
	}
	c := p.peek()
	if c != '-' && !isDigitByte(c) {
		return BareItem{}, newParseError(InvalidCharacter, p.pos)
	}
	neg := false
	if p.peek() == '-' {
		neg = true
		p.advance()
	}
	if p.atEnd() || !isDigitByte(p.peek()) {
		return BareItem{}, newParseError(InvalidFormat, p.pos)
	}
	digitsStart := p.pos
	for !p.atEnd() && isDigitByte(p.peek()) {
		p.advance()
		if p.pos-digitsStart > 15 {
			return BareItem{}, newParseError(OutOfRange, p.pos)
		}
	}
	if !p.atEnd() && p.peek() == '.' {
		return BareItem{}, newParseError(InvalidFormat, p.pos)
	}
	v, err := strconv.ParseInt(string(p.data[digitsStart:p.pos]), 10, 64)
	if err != nil {
		return BareItem{}, newParseError(OutOfRange, digitsStart)
	}
	if neg {
		v = -v
	}
	return NewDate(v)
}

// scanDisplayString recognizes `%"` percent-escaped-UTF-8 `"` (RFC 9651
// §3.3.8). Percent-escapes are decoded eagerly so the assembled octet
// stream can be validated as UTF-8 once, at the closing quote.
func (p *parser) scanDisplayString() (BareItem, error) {
	p.advance() // consume '%'
	if p.atEnd() || p.peek() != '"' {
		return BareItem{}, newParseError(InvalidFormat, p.pos)
	}
	p.advance() // consume opening '"'
	var buf []byte
	for {
		if p.atEnd() {
			return BareItem{}, newParseError(UnexpectedEndOfInput, p.pos)
		}
		c := p.peek()
		if c == '"' {
			p.advance()
			if !utf8.Valid(buf) {
				return BareItem{}, newParseError(InvalidUTF8, p.pos)
			}
			return NewDisplayString(string(buf))
		}
		if c == '%' {
			p.advance()
			if len(p.data)-p.pos < 2 {
				return BareItem{}, newParseError(UnexpectedEndOfInput, p.pos)
			}
			hi, ok1 := hexVal(p.data[p.pos])
			lo, ok2 := hexVal(p.data[p.pos+1])
			if !ok1 || !ok2 {
				return BareItem{}, newParseError(InvalidFormat, p.pos)
			}
			buf = append(buf, byte(hi<<4|lo))
			p.pos += 2
			continue
		}
		if c == '\\' || c < 0x20 || c > 0x7e {
			return BareItem{}, newParseError(InvalidCharacter, p.pos)
		}
		buf = append(buf, c)
		p.advance()
	}
}

// sinkCall wraps a Sink method's error return into a *SinkHalt carrying the
// current offset, or passes nil through unchanged.
func (p *parser) sinkCall(err error) error {
	if err != nil {
		return p.halt(err)
	}
	return nil
}

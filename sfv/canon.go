package sfv

import (
	"encoding/base64"
	"strconv"
)

// appendCanonical appends the canonical wire form of the bare item to buf
// and returns the extended slice, per RFC 8941 §4.1.3 / RFC 9651 §4.
func (b BareItem) appendCanonical(buf []byte) ([]byte, error) {
	switch b.kind {
	case KindInteger:
		return strconv.AppendInt(buf, b.integer, 10), nil
	case KindDecimal:
		return append(buf, b.decimal.canonicalString()...), nil
	case KindString:
		return appendQuotedString(buf, b.str), nil
	case KindToken:
		return append(buf, b.str...), nil
	case KindByteSequence:
		buf = append(buf, ':')
		buf = append(buf, base64.StdEncoding.EncodeToString(b.bytes)...)
		buf = append(buf, ':')
		return buf, nil
	case KindBoolean:
		if b.boolean {
			return append(buf, '?', '1'), nil
		}
		return append(buf, '?', '0'), nil
	case KindDate:
		buf = append(buf, '@')
		return strconv.AppendInt(buf, b.integer, 10), nil
	case KindDisplayString:
		return appendDisplayString(buf, b.str), nil
	default:
		return buf, newSerializeError(InvalidFormat, "bare item has no recognized kind")
	}
}

// appendQuotedString appends a String bare item, escaping only '"' and '\'.
func appendQuotedString(buf []byte, s string) []byte {
	buf = append(buf, '"')
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '"' || c == '\\' {
			buf = append(buf, '\\')
		}
		buf = append(buf, c)
	}
	return append(buf, '"')
}

// appendDisplayString appends a Display String bare item as `%"` followed
// by percent-escaped UTF-8 and a closing `"`, per RFC 9651 §4.1.11. Every
// byte outside 0x21-0x7E except ' ' is escaped, along with '%' and '"'
// themselves; hex digits are lowercase.
func appendDisplayString(buf []byte, s string) []byte {
	buf = append(buf, '%', '"')
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '%' || c == '"' || c < 0x20 || c == 0x7f || c >= 0x80 {
			buf = append(buf, '%', lowerHex(c>>4), lowerHex(c&0x0f))
			continue
		}
		buf = append(buf, c)
	}
	return append(buf, '"')
}

func lowerHex(n byte) byte {
	if n < 10 {
		return '0' + n
	}
	return 'a' + (n - 10)
}

// appendParameters appends a Parameters list in ";key" / ";key=value"
// form, in insertion order. A Boolean-true value is elided to bare ";key".
func appendParameters(buf []byte, p Parameters) ([]byte, error) {
	var err error
	p.Each(func(key Key, value BareItem) bool {
		buf = append(buf, ';')
		buf = append(buf, key.String()...)
		if b, ok := value.AsBoolean(); ok && b {
			return true
		}
		buf = append(buf, '=')
		buf, err = value.appendCanonical(buf)
		return err == nil
	})
	return buf, err
}

// appendItem appends an Item: its bare item followed by its parameters.
func appendItem(buf []byte, it Item) ([]byte, error) {
	buf, err := it.Bare.appendCanonical(buf)
	if err != nil {
		return buf, err
	}
	return appendParameters(buf, it.Params)
}

// appendInnerList appends an Inner List: "(" items separated by a single
// SP ")" followed by the inner list's own parameters.
func appendInnerList(buf []byte, il InnerList) ([]byte, error) {
	buf = append(buf, '(')
	for i, it := range il.Items {
		if i > 0 {
			buf = append(buf, ' ')
		}
		var err error
		buf, err = appendItem(buf, it)
		if err != nil {
			return buf, err
		}
	}
	buf = append(buf, ')')
	return appendParameters(buf, il.Params)
}

func appendMember(buf []byte, m Member) ([]byte, error) {
	if il, ok := m.AsInnerList(); ok {
		return appendInnerList(buf, il)
	}
	it, _ := m.AsItem()
	return appendItem(buf, it)
}

// Marshal serializes the List to its canonical wire form. An empty List
// serializes to "", which is a valid field value.
func (l List) Marshal() ([]byte, error) {
	var buf []byte
	for i, m := range l.Members {
		if i > 0 {
			buf = append(buf, ',', ' ')
		}
		var err error
		buf, err = appendMember(buf, m)
		if err != nil {
			return nil, err
		}
	}
	return buf, nil
}

// Marshal serializes the Dictionary to its canonical wire form. An entry
// whose value is a bare Boolean true serializes as a bare key with no
// "=?1". An empty Dictionary serializes to "".
func (d Dictionary) Marshal() ([]byte, error) {
	var buf []byte
	first := true
	var outerErr error
	d.Each(func(key Key, m Member) bool {
		if !first {
			buf = append(buf, ',', ' ')
		}
		first = false
		buf = append(buf, key.String()...)
		if it, ok := m.AsItem(); ok {
			if b, ok := it.Bare.AsBoolean(); ok && b {
				var err error
				buf, err = appendParameters(buf, it.Params)
				if err != nil {
					outerErr = err
					return false
				}
				return true
			}
		}
		buf = append(buf, '=')
		var err error
		buf, err = appendMember(buf, m)
		if err != nil {
			outerErr = err
			return false
		}
		return true
	})
	if outerErr != nil {
		return nil, outerErr
	}
	return buf, nil
}

// Marshal serializes the Item to its canonical wire form.
func (it Item) Marshal() ([]byte, error) {
	return appendItem(nil, it)
}

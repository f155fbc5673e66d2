package sfv

import (
	"encoding/base64"
	"unicode/utf8"
)

// Encodable is implemented by anything that can append its canonical wire
// form to a buffer: BareItem itself, and the zero-copy Ref variants below.
// It lets the serializer be written once and shared by the owned value
// tree and the non-owning ref layer, instead of duplicating the canonical
// encoding rules per representation.
type Encodable interface {
	appendCanonical(buf []byte) ([]byte, error)
}

// StringRef is a non-owning view of a String bare item backed by a caller-
// supplied byte slice, for callers building output without first
// constructing an owned BareItem tree. Validation happens at construction;
// the one copy this package cannot avoid happens when appendCanonical
// writes the bytes into the destination buffer.
type StringRef struct {
	b []byte
}

// NewStringRef validates b against the String charset (0x20-0x7E) and
// wraps it without copying.
func NewStringRef(b []byte) (StringRef, error) {
	for _, c := range b {
		if c < 0x20 || c > 0x7e {
			return StringRef{}, newConstructError(InvalidCharacter, "string contains a byte outside 0x20-0x7E")
		}
	}
	return StringRef{b: b}, nil
}

func (r StringRef) appendCanonical(buf []byte) ([]byte, error) {
	return appendQuotedString(buf, string(r.b)), nil
}

// TokenRef is a non-owning view of a Token bare item.
type TokenRef struct {
	b []byte
}

// NewTokenRef validates b against the token grammar and wraps it without
// copying.
func NewTokenRef(b []byte) (TokenRef, error) {
	if len(b) == 0 {
		return TokenRef{}, newConstructError(InvalidFormat, "token must not be empty")
	}
	if !isTokenLeadByte(b[0]) {
		return TokenRef{}, newConstructError(InvalidCharacter, "token must start with ALPHA or '*'")
	}
	for i := 1; i < len(b); i++ {
		if !isTokenByte(b[i]) {
			return TokenRef{}, newConstructError(InvalidCharacter, "token contains a character outside the tchar set")
		}
	}
	return TokenRef{b: b}, nil
}

func (r TokenRef) appendCanonical(buf []byte) ([]byte, error) {
	return append(buf, r.b...), nil
}

// ByteSequenceRef is a non-owning view of already-decoded Byte Sequence
// content; encoding to base64 happens only once, at appendCanonical time.
type ByteSequenceRef struct {
	b []byte
}

// NewByteSequenceRef wraps b, which holds already-decoded bytes, without
// copying.
func NewByteSequenceRef(b []byte) ByteSequenceRef {
	return ByteSequenceRef{b: b}
}

func (r ByteSequenceRef) appendCanonical(buf []byte) ([]byte, error) {
	buf = append(buf, ':')
	buf = append(buf, base64.StdEncoding.EncodeToString(r.b)...)
	buf = append(buf, ':')
	return buf, nil
}

// DisplayStringRef is a non-owning view of a Display String bare item
// backed by already-decoded UTF-8 bytes.
type DisplayStringRef struct {
	b []byte
}

// NewDisplayStringRef validates that b is valid UTF-8 and wraps it without
// copying.
func NewDisplayStringRef(b []byte) (DisplayStringRef, error) {
	if !utf8.Valid(b) {
		return DisplayStringRef{}, newConstructError(InvalidUTF8, "display string is not valid UTF-8")
	}
	return DisplayStringRef{b: b}, nil
}

func (r DisplayStringRef) appendCanonical(buf []byte) ([]byte, error) {
	return appendDisplayString(buf, string(r.b)), nil
}

// ParamRef is one key/value pair in an ItemRef's parameter list.
type ParamRef struct {
	Key   Key
	Value Encodable
}

// ItemRef is a zero-copy Item: a bare Encodable plus an ordered parameter
// list, for assembling output without allocating a Parameters ordered map.
type ItemRef struct {
	Bare   Encodable
	Params []ParamRef
}

// Marshal serializes the ItemRef to its canonical wire form.
func (ir ItemRef) Marshal() ([]byte, error) {
	buf, err := ir.Bare.appendCanonical(nil)
	if err != nil {
		return nil, err
	}
	for _, pr := range ir.Params {
		buf = append(buf, ';')
		buf = append(buf, pr.Key.String()...)
		if isBooleanTrue(pr.Value) {
			continue
		}
		buf = append(buf, '=')
		buf, err = pr.Value.appendCanonical(buf)
		if err != nil {
			return nil, err
		}
	}
	return buf, nil
}

// isBooleanTrue reports whether an Encodable is the owned Boolean-true
// BareItem. There is no Ref variant for Boolean: a bool is already as
// cheap to hold as a reference to one would be.
func isBooleanTrue(e Encodable) bool {
	b, ok := e.(BareItem)
	if !ok {
		return false
	}
	v, ok := b.AsBoolean()
	return ok && v
}

// ListSerializer builds a List's canonical wire form incrementally,
// without ever materializing a List value. Calls must be made in a legal
// order: OpenInnerList/CloseInnerList must bracket any InnerListBareItem
// or InnerListParameter call, and Parameter must follow a BareItem or a
// closed inner list. Finish reports an error if nothing was ever appended,
// since that is ambiguous with "the caller forgot to append anything"
// rather than the legitimately empty List (which Marshal on a zero-value
// List produces without complaint).
type ListSerializer struct {
	buf        []byte
	any        bool
	innerOpen  bool
	innerFirst bool
}

// NewListSerializer returns an empty ListSerializer.
func NewListSerializer() *ListSerializer {
	return &ListSerializer{}
}

func (s *ListSerializer) separator() {
	if s.any {
		s.buf = append(s.buf, ',', ' ')
	}
}

// BareItem appends a top-level list member's bare item.
func (s *ListSerializer) BareItem(v Encodable) error {
	if s.innerOpen {
		return newSerializeError(InvalidFormat, "an inner list is open; close it first")
	}
	s.separator()
	buf, err := v.appendCanonical(s.buf)
	if err != nil {
		return err
	}
	s.buf = buf
	s.any = true
	return nil
}

// Parameter appends a parameter to the most recently appended top-level
// item or closed inner list.
func (s *ListSerializer) Parameter(key Key, value Encodable) error {
	if !s.any || s.innerOpen {
		return newSerializeError(InvalidFormat, "parameter must follow a bare item or a closed inner list")
	}
	return s.appendParam(key, value)
}

// OpenInnerList begins a new inner list as the next top-level member.
func (s *ListSerializer) OpenInnerList() error {
	if s.innerOpen {
		return newSerializeError(InvalidFormat, "an inner list is already open")
	}
	s.separator()
	s.buf = append(s.buf, '(')
	s.any = true
	s.innerOpen = true
	s.innerFirst = true
	return nil
}

// InnerListBareItem appends an item inside the currently open inner list.
func (s *ListSerializer) InnerListBareItem(v Encodable) error {
	if !s.innerOpen {
		return newSerializeError(InvalidFormat, "no inner list is open")
	}
	if !s.innerFirst {
		s.buf = append(s.buf, ' ')
	}
	buf, err := v.appendCanonical(s.buf)
	if err != nil {
		return err
	}
	s.buf = buf
	s.innerFirst = false
	return nil
}

// InnerListParameter appends a parameter to the most recently appended
// item inside the currently open inner list.
func (s *ListSerializer) InnerListParameter(key Key, value Encodable) error {
	if !s.innerOpen || s.innerFirst {
		return newSerializeError(InvalidFormat, "parameter must follow a bare item inside the open inner list")
	}
	return s.appendParam(key, value)
}

// CloseInnerList closes the currently open inner list, after which
// Parameter appends to the inner list's own parameters.
func (s *ListSerializer) CloseInnerList() error {
	if !s.innerOpen {
		return newSerializeError(InvalidFormat, "no inner list is open")
	}
	s.buf = append(s.buf, ')')
	s.innerOpen = false
	return nil
}

func (s *ListSerializer) appendParam(key Key, value Encodable) error {
	s.buf = append(s.buf, ';')
	s.buf = append(s.buf, key.String()...)
	if isBooleanTrue(value) {
		return nil
	}
	s.buf = append(s.buf, '=')
	buf, err := value.appendCanonical(s.buf)
	if err != nil {
		return err
	}
	s.buf = buf
	return nil
}

// Finish returns the assembled wire form, or an error if an inner list was
// left open or nothing was ever appended.
func (s *ListSerializer) Finish() ([]byte, error) {
	if s.innerOpen {
		return nil, newSerializeError(InvalidFormat, "an inner list was never closed")
	}
	if !s.any {
		return nil, errEmptySerialization
	}
	return s.buf, nil
}

// DictSerializer builds a Dictionary's canonical wire form incrementally,
// the keyed counterpart of ListSerializer.
type DictSerializer struct {
	buf        []byte
	any        bool
	innerOpen  bool
	innerFirst bool
}

// NewDictSerializer returns an empty DictSerializer.
func NewDictSerializer() *DictSerializer {
	return &DictSerializer{}
}

func (s *DictSerializer) separator() {
	if s.any {
		s.buf = append(s.buf, ',', ' ')
	}
}

// BareItem appends a dictionary entry whose value is a bare item. A
// Boolean-true value is elided to a bare key, per canonical form.
func (s *DictSerializer) BareItem(key Key, v Encodable) error {
	if s.innerOpen {
		return newSerializeError(InvalidFormat, "an inner list is open; close it first")
	}
	s.separator()
	s.buf = append(s.buf, key.String()...)
	s.any = true
	if isBooleanTrue(v) {
		return nil
	}
	s.buf = append(s.buf, '=')
	buf, err := v.appendCanonical(s.buf)
	if err != nil {
		return err
	}
	s.buf = buf
	return nil
}

// Parameter appends a parameter to the most recently appended entry or
// closed inner list.
func (s *DictSerializer) Parameter(key Key, value Encodable) error {
	if !s.any || s.innerOpen {
		return newSerializeError(InvalidFormat, "parameter must follow a dictionary entry")
	}
	return s.appendParam(key, value)
}

// OpenInnerList begins a new inner list as the value for key.
func (s *DictSerializer) OpenInnerList(key Key) error {
	if s.innerOpen {
		return newSerializeError(InvalidFormat, "an inner list is already open")
	}
	s.separator()
	s.buf = append(s.buf, key.String()...)
	s.buf = append(s.buf, '=', '(')
	s.any = true
	s.innerOpen = true
	s.innerFirst = true
	return nil
}

// InnerListBareItem appends an item inside the currently open inner list.
func (s *DictSerializer) InnerListBareItem(v Encodable) error {
	if !s.innerOpen {
		return newSerializeError(InvalidFormat, "no inner list is open")
	}
	if !s.innerFirst {
		s.buf = append(s.buf, ' ')
	}
	buf, err := v.appendCanonical(s.buf)
	if err != nil {
		return err
	}
	s.buf = buf
	s.innerFirst = false
	return nil
}

// InnerListParameter appends a parameter to the most recently appended
// item inside the currently open inner list.
func (s *DictSerializer) InnerListParameter(key Key, value Encodable) error {
	if !s.innerOpen || s.innerFirst {
		return newSerializeError(InvalidFormat, "parameter must follow a bare item inside the open inner list")
	}
	return s.appendParam(key, value)
}

// CloseInnerList closes the currently open inner list.
func (s *DictSerializer) CloseInnerList() error {
	if !s.innerOpen {
		return newSerializeError(InvalidFormat, "no inner list is open")
	}
	s.buf = append(s.buf, ')')
	s.innerOpen = false
	return nil
}

func (s *DictSerializer) appendParam(key Key, value Encodable) error {
	s.buf = append(s.buf, ';')
	s.buf = append(s.buf, key.String()...)
	if isBooleanTrue(value) {
		return nil
	}
	s.buf = append(s.buf, '=')
	buf, err := value.appendCanonical(s.buf)
	if err != nil {
		return err
	}
	s.buf = buf
	return nil
}

// Finish returns the assembled wire form, or an error if an inner list was
// left open or nothing was ever appended.
func (s *DictSerializer) Finish() ([]byte, error) {
	if s.innerOpen {
		return nil, newSerializeError(InvalidFormat, "an inner list was never closed")
	}
	if !s.any {
		return nil, errEmptySerialization
	}
	return s.buf, nil
}

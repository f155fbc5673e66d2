package sfv

import "fmt"

// Sink receives semantic events during a visitor-mode parse, instead of
// the parser building an owned List/Dictionary/Item tree. It exists for
// callers that project a field value into a domain struct without paying
// for the generic tree — the tree-building parser (ParseList,
// ParseDictionary, ParseItem) is itself implemented as a Sink, per the
// principle that the tree builder is trivially expressible as a visitor.
//
// Returning a non-nil error from any method halts parsing immediately;
// the parser stops at the next event boundary and the top-level
// ParseXWithSink call returns a *SinkHalt wrapping that error and the byte
// offset reached.
type Sink interface {
	BeginList() error
	EndList() error
	ListItemBegin() error
	ListItemEnd() error

	BeginDictionary() error
	EndDictionary() error
	DictEntryBegin(key Key) error
	DictEntryEnd() error

	InnerListBegin() error
	InnerListEnd() error

	BareItem(item BareItem) error
	Parameter(key Key, value BareItem) error
}

// SinkHalt is returned by ParseListWithSink, ParseDictionaryWithSink, and
// ParseItemWithSink when a Sink method requested early termination by
// returning a non-nil error.
type SinkHalt struct {
	Cause  error
	Offset int
}

func (h *SinkHalt) Error() string {
	return fmt.Sprintf("sink halted parse at offset %d: %v", h.Offset, h.Cause)
}

func (h *SinkHalt) Unwrap() error {
	return h.Cause
}

// ParseListWithSink parses b as a List, emitting events to sink instead of
// constructing an owned List.
func ParseListWithSink(b []byte, sink Sink) error {
	return runTopLevel(b, func(p *parser, s Sink) error {
		return p.parseList(s)
	}, sink)
}

// ParseDictionaryWithSink parses b as a Dictionary, emitting events to
// sink instead of constructing an owned Dictionary.
func ParseDictionaryWithSink(b []byte, sink Sink) error {
	return runTopLevel(b, func(p *parser, s Sink) error {
		return p.parseDictionary(s)
	}, sink)
}

// ParseItemWithSink parses b as an Item, emitting events to sink instead
// of constructing an owned Item.
func ParseItemWithSink(b []byte, sink Sink) error {
	return runTopLevel(b, func(p *parser, s Sink) error {
		return p.parseItemAndParams(s)
	}, sink)
}

func runTopLevel(data []byte, recognize func(p *parser, sink Sink) error, sink Sink) error {
	p := &parser{data: data}
	p.skipSP()
	if err := recognize(p, sink); err != nil {
		if h, ok := err.(*SinkHalt); ok {
			return h
		}
		return err
	}
	p.skipSP()
	if !p.atEnd() {
		return newParseError(TrailingCharacters, p.pos)
	}
	return nil
}

// halt wraps a sink-returned error into a *SinkHalt carrying the current
// parse offset, so callers can distinguish "the sink asked to stop" from a
// genuine grammar violation via errors.As.
func (p *parser) halt(err error) error {
	return &SinkHalt{Cause: err, Offset: p.pos}
}

// ParseList parses b as a List field value.
func ParseList(b []byte) (List, error) {
	t := newTreeSink()
	if err := ParseListWithSink(b, t); err != nil {
		return List{}, err
	}
	return t.list, nil
}

// ParseDictionary parses b as a Dictionary field value.
func ParseDictionary(b []byte) (Dictionary, error) {
	t := newTreeSink()
	if err := ParseDictionaryWithSink(b, t); err != nil {
		return Dictionary{}, err
	}
	return t.dict, nil
}

// ParseItem parses b as an Item field value.
func ParseItem(b []byte) (Item, error) {
	t := newTreeSink()
	if err := ParseItemWithSink(b, t); err != nil {
		return Item{}, err
	}
	return t.topItem, nil
}

// treeSink is the default Sink implementation that materializes an owned
// value tree. Because inner lists cannot nest (the grammar forbids it),
// the amount of in-progress state it must track is fixed and small: at
// most one list-or-dict-member frame and, within that, at most one
// in-progress inner-list item.
type treeSink struct {
	list    List
	dict    Dictionary
	topItem Item

	// inMember is true while parsing a list element or dictionary value;
	// false while parsing a bare top-level Item.
	inMember      bool
	memberIsInner bool
	pendingItem   Item      // used when inMember && !memberIsInner
	pendingInner  InnerList // used when inMember && memberIsInner
	curInnerItem  *Item     // in-progress item inside an inner list
	curDictKey    Key

	// paramsTarget points at whichever Parameters is currently receiving
	// Parameter() calls: the top-level item's, a list/dict item's, an
	// inner list's own, or an item nested inside an inner list's.
	paramsTarget *Parameters
}

func newTreeSink() *treeSink {
	t := &treeSink{
		list: List{},
		dict: NewDictionary(),
	}
	t.paramsTarget = &t.topItem.Params
	return t
}

func (t *treeSink) BeginList() error {
	t.list = List{}
	return nil
}

func (t *treeSink) EndList() error {
	return nil
}

func (t *treeSink) ListItemBegin() error {
	t.resetMember()
	return nil
}

func (t *treeSink) ListItemEnd() error {
	t.list.Members = append(t.list.Members, t.finishMember())
	return nil
}

func (t *treeSink) BeginDictionary() error {
	t.dict = NewDictionary()
	return nil
}

func (t *treeSink) EndDictionary() error {
	return nil
}

func (t *treeSink) DictEntryBegin(key Key) error {
	t.curDictKey = key
	t.resetMember()
	return nil
}

func (t *treeSink) DictEntryEnd() error {
	t.dict.Set(t.curDictKey, t.finishMember())
	return nil
}

func (t *treeSink) InnerListBegin() error {
	t.memberIsInner = true
	t.pendingInner = InnerList{}
	t.curInnerItem = nil
	return nil
}

func (t *treeSink) InnerListEnd() error {
	t.flushInnerItem()
	t.paramsTarget = &t.pendingInner.Params
	return nil
}

func (t *treeSink) BareItem(item BareItem) error {
	if t.memberIsInner {
		t.flushInnerItem()
		t.curInnerItem = &Item{Bare: item}
		t.paramsTarget = &t.curInnerItem.Params
		return nil
	}
	if t.inMember {
		t.pendingItem.Bare = item
		t.paramsTarget = &t.pendingItem.Params
		return nil
	}
	t.topItem.Bare = item
	t.paramsTarget = &t.topItem.Params
	return nil
}

func (t *treeSink) Parameter(key Key, value BareItem) error {
	if t.paramsTarget == nil {
		return fmt.Errorf("parameter event with no active target")
	}
	t.paramsTarget.Set(key, value)
	return nil
}

func (t *treeSink) resetMember() {
	t.inMember = true
	t.memberIsInner = false
	t.pendingItem = Item{}
	t.pendingInner = InnerList{}
	t.curInnerItem = nil
	t.paramsTarget = &t.pendingItem.Params
}

func (t *treeSink) flushInnerItem() {
	if t.curInnerItem != nil {
		t.pendingInner.Items = append(t.pendingInner.Items, *t.curInnerItem)
		t.curInnerItem = nil
	}
}

func (t *treeSink) finishMember() Member {
	if t.memberIsInner {
		t.flushInnerItem()
		return InnerListMember(t.pendingInner)
	}
	return ItemMember(t.pendingItem)
}

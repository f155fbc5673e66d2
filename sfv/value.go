package sfv

// Parameters is an ordered mapping from Key to bare item, attached to an
// Item or an Inner List. Keys are unique; insertion order is significant.
// A key missing from Parameters is distinguishable from a key present with
// a Boolean-true value: Get reports both the value and presence.
type Parameters struct {
	m orderedMap[BareItem]
}

// NewParameters returns an empty Parameters.
func NewParameters() Parameters {
	return Parameters{m: newOrderedMap[BareItem]()}
}

// Set inserts or updates the value for key, preserving key's original
// position on update.
func (p *Parameters) Set(key Key, value BareItem) {
	p.m.set(key, value)
}

// Get returns the bare item for key and whether key is present.
func (p Parameters) Get(key Key) (BareItem, bool) {
	return p.m.get(key)
}

// Has reports whether key is present.
func (p Parameters) Has(key Key) bool {
	return p.m.has(key)
}

// Len returns the number of parameters.
func (p Parameters) Len() int {
	return p.m.len()
}

// Keys returns the parameter keys in insertion order.
func (p Parameters) Keys() []Key {
	return p.m.keys()
}

// Each calls fn for every parameter in insertion order, stopping early if
// fn returns false.
func (p Parameters) Each(fn func(key Key, value BareItem) bool) {
	p.m.each(fn)
}

// Item is a bare item plus its parameters.
type Item struct {
	Bare   BareItem
	Params Parameters
}

// NewItem builds an Item from a bare item and parameters.
func NewItem(bare BareItem, params Parameters) Item {
	return Item{Bare: bare, Params: params}
}

// InnerList is an ordered, parameterized sequence of Items, itself carrying
// its own Parameters. Inner lists cannot contain inner lists: the grammar
// forbids nesting, which is what keeps the parser's recursion depth O(1).
type InnerList struct {
	Items  []Item
	Params Parameters
}

// NewInnerList builds an InnerList from items and parameters.
func NewInnerList(items []Item, params Parameters) InnerList {
	return InnerList{Items: items, Params: params}
}

// MemberKind tags whether a List or Dictionary entry holds an Item or an
// InnerList.
type MemberKind uint8

const (
	MemberItem MemberKind = iota
	MemberInnerList
)

// Member is a List element or Dictionary value: either an Item or an
// InnerList, modeled as a closed tagged union rather than an interface
// hierarchy, matching BareItem's approach.
type Member struct {
	kind  MemberKind
	item  Item
	inner InnerList
}

// Kind reports whether the Member holds an Item or an InnerList.
func (m Member) Kind() MemberKind { return m.kind }

// ItemMember wraps an Item as a Member.
func ItemMember(it Item) Member {
	return Member{kind: MemberItem, item: it}
}

// InnerListMember wraps an InnerList as a Member.
func InnerListMember(il InnerList) Member {
	return Member{kind: MemberInnerList, inner: il}
}

// AsItem returns the Item and true if the Member holds one.
func (m Member) AsItem() (Item, bool) {
	if m.kind != MemberItem {
		return Item{}, false
	}
	return m.item, true
}

// AsInnerList returns the InnerList and true if the Member holds one.
func (m Member) AsInnerList() (InnerList, bool) {
	if m.kind != MemberInnerList {
		return InnerList{}, false
	}
	return m.inner, true
}

// List is the top-level List field value: an ordered sequence of members,
// each either an Item or an InnerList. An empty List is valid.
type List struct {
	Members []Member
}

// Dictionary is the top-level Dictionary field value: an ordered mapping
// from Key to Member. Keys are unique; insertion order is preserved, and
// on a duplicate key the value is replaced while the position stays at the
// key's first occurrence. An empty Dictionary is valid.
type Dictionary struct {
	m orderedMap[Member]
}

// NewDictionary returns an empty Dictionary.
func NewDictionary() Dictionary {
	return Dictionary{m: newOrderedMap[Member]()}
}

// Set inserts or updates the member for key.
func (d *Dictionary) Set(key Key, value Member) {
	d.m.set(key, value)
}

// Get returns the member for key and whether key is present.
func (d Dictionary) Get(key Key) (Member, bool) {
	return d.m.get(key)
}

// Has reports whether key is present.
func (d Dictionary) Has(key Key) bool {
	return d.m.has(key)
}

// Len returns the number of entries.
func (d Dictionary) Len() int {
	return d.m.len()
}

// Keys returns the dictionary's keys in insertion order.
func (d Dictionary) Keys() []Key {
	return d.m.keys()
}

// Each calls fn for every entry in insertion order, stopping early if fn
// returns false.
func (d Dictionary) Each(fn func(key Key, value Member) bool) {
	d.m.each(fn)
}

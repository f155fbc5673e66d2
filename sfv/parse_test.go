package sfv

import "testing"

func TestParseDictionaryBasic(t *testing.T) {
	d, err := ParseDictionary([]byte("a=1, b;x=?0, c=(1 2);y"))
	if err != nil {
		t.Fatalf("ParseDictionary: %v", err)
	}
	if got := d.Len(); got != 3 {
		t.Fatalf("Len() = %d, want 3", got)
	}

	a, ok := d.Get("a")
	if !ok {
		t.Fatal(`missing key "a"`)
	}
	aItem, _ := a.AsItem()
	if v, _ := aItem.Bare.AsInteger(); v != 1 {
		t.Errorf(`a = %d, want 1`, v)
	}

	b, ok := d.Get("b")
	if !ok {
		t.Fatal(`missing key "b"`)
	}
	bItem, _ := b.AsItem()
	if v, ok := bItem.Bare.AsBoolean(); !ok || v != true {
		t.Errorf("b bare = (%v, %v), want (true, true)", v, ok)
	}
	x, ok := bItem.Params.Get("x")
	if !ok {
		t.Fatal(`b missing parameter "x"`)
	}
	if v, _ := x.AsBoolean(); v != false {
		t.Errorf("b;x = %v, want false", v)
	}

	c, ok := d.Get("c")
	if !ok {
		t.Fatal(`missing key "c"`)
	}
	cInner, ok := c.AsInnerList()
	if !ok {
		t.Fatal(`c is not an inner list`)
	}
	if len(cInner.Items) != 2 {
		t.Fatalf("c has %d items, want 2", len(cInner.Items))
	}
	if v, _ := cInner.Items[0].Bare.AsInteger(); v != 1 {
		t.Errorf("c[0] = %d, want 1", v)
	}
	if v, _ := cInner.Items[1].Bare.AsInteger(); v != 2 {
		t.Errorf("c[1] = %d, want 2", v)
	}
	y, ok := cInner.Params.Get("y")
	if !ok {
		t.Fatal(`c missing parameter "y"`)
	}
	if v, _ := y.AsBoolean(); v != true {
		t.Errorf("c;y = %v, want true", v)
	}
}

func TestParseListOfInnerLists(t *testing.T) {
	l, err := ParseList([]byte("(1 2), (3)"))
	if err != nil {
		t.Fatalf("ParseList: %v", err)
	}
	if len(l.Members) != 2 {
		t.Fatalf("len(Members) = %d, want 2", len(l.Members))
	}
	first, ok := l.Members[0].AsInnerList()
	if !ok || len(first.Items) != 2 {
		t.Fatalf("Members[0]: ok=%v items=%d, want ok=true items=2", ok, len(first.Items))
	}
	second, ok := l.Members[1].AsInnerList()
	if !ok || len(second.Items) != 1 {
		t.Fatalf("Members[1]: ok=%v items=%d, want ok=true items=1", ok, len(second.Items))
	}
}

func TestParseItemByteSequence(t *testing.T) {
	it, err := ParseItem([]byte(":cHJldGVuZA==:"))
	if err != nil {
		t.Fatalf("ParseItem: %v", err)
	}
	b, ok := it.Bare.AsByteSequence()
	if !ok {
		t.Fatal("not a byte sequence")
	}
	if string(b) != "pretend" {
		t.Errorf("decoded = %q, want %q", b, "pretend")
	}
}

func TestParseItemDecimalTrimsTrailingZeros(t *testing.T) {
	it, err := ParseItem([]byte("4.56"))
	if err != nil {
		t.Fatalf("ParseItem: %v", err)
	}
	d, ok := it.Bare.AsDecimal()
	if !ok {
		t.Fatal("not a decimal")
	}
	if got, want := d.canonicalString(), "4.56"; got != want {
		t.Errorf("canonicalString() = %q, want %q", got, want)
	}

	it2, err := ParseItem([]byte("4.50"))
	if err != nil {
		t.Fatalf("ParseItem: %v", err)
	}
	out, err := it2.Marshal()
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if got, want := string(out), "4.5"; got != want {
		t.Errorf("Marshal() = %q, want %q", got, want)
	}
}

func TestParseItemIntegerOutOfRange(t *testing.T) {
	_, err := ParseItem([]byte("123456789012345678"))
	if err == nil {
		t.Fatal("expected OutOfRange error")
	}
	pe, ok := err.(*ParseError)
	if !ok {
		t.Fatalf("error is %T, want *ParseError", err)
	}
	if pe.Kind != OutOfRange {
		t.Errorf("Kind = %v, want OutOfRange", pe.Kind)
	}
	if pe.Offset != 16 {
		t.Errorf("Offset = %d, want 16", pe.Offset)
	}
}

func TestParseDictionaryDuplicateKeyKeepsFirstPosition(t *testing.T) {
	d, err := ParseDictionary([]byte("a=1, a=2"))
	if err != nil {
		t.Fatalf("ParseDictionary: %v", err)
	}
	if got := d.Len(); got != 1 {
		t.Fatalf("Len() = %d, want 1", got)
	}
	m, _ := d.Get("a")
	it, _ := m.AsItem()
	if v, _ := it.Bare.AsInteger(); v != 2 {
		t.Errorf("a = %d, want 2", v)
	}
	if got, want := d.Keys(), []Key{"a"}; len(got) != 1 || got[0] != want[0] {
		t.Errorf("Keys() = %v, want %v", got, want)
	}
}

func TestParseItemDate(t *testing.T) {
	it, err := ParseItem([]byte("@1659578233"))
	if err != nil {
		t.Fatalf("ParseItem: %v", err)
	}
	v, ok := it.Bare.AsDate()
	if !ok || v != 1659578233 {
		t.Fatalf("AsDate() = (%d, %v), want (1659578233, true)", v, ok)
	}
	out, err := it.Marshal()
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if got, want := string(out), "@1659578233"; got != want {
		t.Errorf("Marshal() = %q, want %q", got, want)
	}
}

func TestParseEmptyListAndDictionary(t *testing.T) {
	l, err := ParseList([]byte(""))
	if err != nil {
		t.Fatalf("ParseList(\"\"): %v", err)
	}
	if len(l.Members) != 0 {
		t.Errorf("len(Members) = %d, want 0", len(l.Members))
	}

	d, err := ParseDictionary([]byte(""))
	if err != nil {
		t.Fatalf("ParseDictionary(\"\"): %v", err)
	}
	if d.Len() != 0 {
		t.Errorf("Len() = %d, want 0", d.Len())
	}
}

func TestParseInnerListEmptyAndLeadingSP(t *testing.T) {
	// An inner list can only appear as a list/dictionary member, never as a
	// top-level Item, so the empty-inner-list case is exercised through a List.
	l, err := ParseList([]byte("( )"))
	if err != nil {
		t.Fatalf("ParseList(\"( )\"): %v", err)
	}
	inner, ok := l.Members[0].AsInnerList()
	if !ok || len(inner.Items) != 0 {
		t.Fatalf("Members[0]: ok=%v items=%d, want ok=true items=0", ok, len(inner.Items))
	}
}

func TestParseTrailingCharactersError(t *testing.T) {
	_, err := ParseItem([]byte("1 garbage"))
	if err == nil {
		t.Fatal("expected error for trailing characters")
	}
	pe, ok := err.(*ParseError)
	if !ok {
		t.Fatalf("error is %T, want *ParseError", err)
	}
	if pe.Kind != TrailingCharacters {
		t.Errorf("Kind = %v, want TrailingCharacters", pe.Kind)
	}
}

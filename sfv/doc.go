// Package sfv implements Structured Field Values for HTTP (RFC 8941),
// extended with the Date and Display String types from RFC 9651.
//
// Structured field values give HTTP header and trailer fields a small,
// shared grammar of Lists, Dictionaries, and Items, so that fields across
// unrelated specifications can be parsed and serialized with one piece of
// code instead of a bespoke ABNF per header.
//
// # Data Model
//
// Bare items: Integer, Decimal, String, Token, Byte Sequence, Boolean,
// Date, Display String.
//
// Every Item and every member of an Inner List may carry Parameters, an
// ordered key/bare-item mapping. A List is an ordered sequence of members,
// each an Item or an Inner List; Inner Lists cannot nest. A Dictionary is
// an ordered key/member mapping with the same duplicate-key rule as
// Parameters: the value is replaced, the position stays at the first
// occurrence.
//
// # Parsing
//
// ParseList, ParseDictionary, and ParseItem build an owned value tree.
// ParseListWithSink, ParseDictionaryWithSink, and ParseItemWithSink drive
// a caller-supplied Sink instead, for projecting a field value directly
// into a domain type without paying for the generic tree.
//
// # Serialization
//
// List.Marshal, Dictionary.Marshal, and Item.Marshal render the owned
// value types to their canonical wire form. ListSerializer and
// DictSerializer build the same wire form incrementally from Encodable
// values (BareItem or one of the Ref types) without requiring an owned
// tree to exist first.
//
// # Example
//
//	d, err := sfv.ParseDictionary([]byte(`a=1, b;foo=bar, c=(1 2 3)`))
//	if err != nil {
//	    // err is a *sfv.ParseError with Kind and Offset
//	}
//	out, _ := d.Marshal()
package sfv

// Package schema describes the wire shape of every on-chain record and
// decodes flat scalar sequences against those descriptions.
package schema

// Kind identifies a primitive wire type.
type Kind uint8

const (
	KindShortString Kind = iota + 1 // packed ASCII in one element
	KindInteger                     // unsigned machine integer
	KindFlag                        // nonzero = true
	KindWide                        // full-precision field element
	KindLocation                    // 9-way impact location enum
	KindDiscovery                   // 3-way discovery enum
)

var kindNames = map[Kind]string{
	KindShortString: "short_string",
	KindInteger:     "integer",
	KindFlag:        "flag",
	KindWide:        "wide",
	KindLocation:    "location",
	KindDiscovery:   "discovery",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Descriptor is a closed set: Primitive, Array or Component.
type Descriptor interface {
	descriptor()
	String() string
}

// Primitive consumes exactly one wire value.
type Primitive struct {
	Kind Kind
}

// Array is a length-prefixed sequence of Elem.
type Array struct {
	Elem Descriptor
}

// Component references an ordered field list in a Registry.
type Component struct {
	Name string
}

func (Primitive) descriptor() {}
func (Array) descriptor()     {}
func (Component) descriptor() {}

func (p Primitive) String() string { return p.Kind.String() }
func (a Array) String() string     { return "[]" + a.Elem.String() }
func (c Component) String() string { return c.Name }

// Shorthand constructors used by registry tables.
var (
	ShortString = Primitive{Kind: KindShortString}
	Integer     = Primitive{Kind: KindInteger}
	Flag        = Primitive{Kind: KindFlag}
	Wide        = Primitive{Kind: KindWide}
	Location    = Primitive{Kind: KindLocation}
	Discovery   = Primitive{Kind: KindDiscovery}
)

// ArrayOf builds an Array descriptor.
func ArrayOf(elem Descriptor) Array { return Array{Elem: elem} }

// Ref builds a Component descriptor.
func Ref(name string) Component { return Component{Name: name} }

// Field is one named, ordered member of a component.
type Field struct {
	Name string
	Type Descriptor
}

// Variant is one tagged alternative of the envelope's payload. Its index in
// Registry.Variants is the wire type tag.
type Variant struct {
	Name    string
	Payload Descriptor
}

// Record is a decoded component: field values in declared order.
type Record struct {
	Name   string
	Fields []FieldValue
}

// FieldValue is one decoded field.
type FieldValue struct {
	Name  string
	Value any
}

// Get returns the value of the named field.
func (r Record) Get(name string) (any, bool) {
	for _, f := range r.Fields {
		if f.Name == name {
			return f.Value, true
		}
	}
	return nil, false
}

package schema

import (
	"fmt"
	"strconv"

	"github.com/frontboat/death-mountain-sub001/internal/apperr"
	"github.com/frontboat/death-mountain-sub001/internal/wire"
)

// Decoder walks a Registry to turn wire values into typed values:
//
//	short_string -> string
//	integer      -> uint64
//	flag         -> bool
//	wide         -> wire.Felt
//	location     -> ImpactLocation
//	discovery    -> DiscoveryType
//	array        -> []any
//	component    -> Record
type Decoder struct {
	reg *Registry
}

// NewDecoder creates a decoder bound to one schema version.
func NewDecoder(reg *Registry) *Decoder {
	return &Decoder{reg: reg}
}

// Registry returns the schema this decoder walks.
func (d *Decoder) Registry() *Registry {
	return d.reg
}

// Decode consumes exactly the values described by t from the cursor.
func (d *Decoder) Decode(c *wire.Cursor, t Descriptor) (any, error) {
	switch typ := t.(type) {
	case Primitive:
		return d.decodePrimitive(c, typ.Kind)
	case Array:
		return d.decodeArray(c, typ)
	case Component:
		return d.DecodeComponent(c, typ.Name)
	default:
		return nil, fmt.Errorf("unsupported descriptor %T", t)
	}
}

// DecodeComponent decodes every declared field of a component in order.
func (d *Decoder) DecodeComponent(c *wire.Cursor, name string) (Record, error) {
	fields, ok := d.reg.Fields(name)
	if !ok {
		return Record{}, apperr.New(apperr.CodeUnknownComponent, "component "+name+" not defined")
	}

	rec := Record{Name: name, Fields: make([]FieldValue, 0, len(fields))}
	for _, f := range fields {
		v, err := d.Decode(c, f.Type)
		if err != nil {
			return Record{}, fmt.Errorf("%s.%s: %w", name, f.Name, err)
		}
		rec.Fields = append(rec.Fields, FieldValue{Name: f.Name, Value: v})
	}
	return rec, nil
}

func (d *Decoder) decodeArray(c *wire.Cursor, a Array) ([]any, error) {
	n, err := takeUint(c)
	if err != nil {
		return nil, fmt.Errorf("array length: %w", err)
	}
	// Every element consumes at least one value.
	if n > uint64(c.Remaining()) {
		return nil, apperr.WithMetadata(apperr.CodeCursorUnderflow,
			fmt.Sprintf("array declares %d elements but only %d values remain", n, c.Remaining()),
			map[string]string{"length": strconv.FormatUint(n, 10)})
	}

	out := make([]any, 0, n)
	for i := uint64(0); i < n; i++ {
		v, err := d.Decode(c, a.Elem)
		if err != nil {
			return nil, fmt.Errorf("[%d]: %w", i, err)
		}
		out = append(out, v)
	}
	return out, nil
}

func (d *Decoder) decodePrimitive(c *wire.Cursor, k Kind) (any, error) {
	switch k {
	case KindInteger:
		return takeUint(c)
	case KindWide:
		return takeFelt(c)
	case KindFlag:
		f, err := takeFelt(c)
		if err != nil {
			return nil, err
		}
		return !f.IsZero(), nil
	case KindShortString:
		f, err := takeFelt(c)
		if err != nil {
			return nil, err
		}
		return f.ShortString(), nil
	case KindLocation:
		i, err := takeUint(c)
		if err != nil {
			return nil, err
		}
		return LocationFromIndex(i)
	case KindDiscovery:
		i, err := takeUint(c)
		if err != nil {
			return nil, err
		}
		return DiscoveryFromIndex(i)
	default:
		return nil, fmt.Errorf("unknown primitive kind %d", k)
	}
}

func takeFelt(c *wire.Cursor) (wire.Felt, error) {
	s, err := c.Take()
	if err != nil {
		return wire.Felt{}, err
	}
	return wire.ParseFelt(s)
}

func takeUint(c *wire.Cursor) (uint64, error) {
	f, err := takeFelt(c)
	if err != nil {
		return 0, err
	}
	v, ok := f.Uint64()
	if !ok {
		return 0, apperr.WithMetadata(apperr.CodeInvalidScalar, "integer does not fit in 64 bits",
			map[string]string{"scalar": f.String()})
	}
	return v, nil
}

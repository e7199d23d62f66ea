package types

// BasicKind describes the kind of basic type.
type BasicKind int

const (
	Invalid BasicKind = iota // invalid type

	Bool
	I8
	I16
	I32
	I64
	U8
	U16
	U32
	U64
	MM // pointer-sized integer
	F32
	F64
	Void
)

// BasicInfo describes properties of a basic type.
type BasicInfo int

const (
	InfoBoolean BasicInfo = 1 << iota
	InfoInteger
	InfoUnsigned
	InfoFloat
	InfoVoid
	InfoNumeric = InfoInteger | InfoFloat
)

// Basic represents a predeclared scalar type.
type Basic struct {
	typ
	kind BasicKind
	info BasicInfo
	bits int
	name string
}

// Kind returns the kind of the basic type.
func (b *Basic) Kind() BasicKind {
	return b.kind
}

// Info returns information about the basic type.
func (b *Basic) Info() BasicInfo {
	return b.info
}

// Bits returns the width of the type in bits, 0 for void.
func (b *Basic) Bits() int {
	return b.bits
}

// Name returns the name of the basic type.
func (b *Basic) Name() string {
	return b.name
}

// Underlying implements Type.
func (b *Basic) Underlying() Type {
	return b
}

// String implements Type.
func (b *Basic) String() string {
	return b.name
}

// Typ holds the predeclared basic types, indexed by BasicKind.
// Typ[Invalid] is nil, representing an invalid type.
var Typ = []*Basic{
	Invalid: nil,
	Bool:    {kind: Bool, info: InfoBoolean, bits: 1, name: "bool"},
	I8:      {kind: I8, info: InfoInteger, bits: 8, name: "i8"},
	I16:     {kind: I16, info: InfoInteger, bits: 16, name: "i16"},
	I32:     {kind: I32, info: InfoInteger, bits: 32, name: "i32"},
	I64:     {kind: I64, info: InfoInteger, bits: 64, name: "i64"},
	U8:      {kind: U8, info: InfoInteger | InfoUnsigned, bits: 8, name: "u8"},
	U16:     {kind: U16, info: InfoInteger | InfoUnsigned, bits: 16, name: "u16"},
	U32:     {kind: U32, info: InfoInteger | InfoUnsigned, bits: 32, name: "u32"},
	U64:     {kind: U64, info: InfoInteger | InfoUnsigned, bits: 64, name: "u64"},
	MM:      {kind: MM, info: InfoInteger | InfoUnsigned, bits: 64, name: "mm"},
	F32:     {kind: F32, info: InfoFloat, bits: 32, name: "f32"},
	F64:     {kind: F64, info: InfoFloat, bits: 64, name: "f64"},
	Void:    {kind: Void, info: InfoVoid, name: "void"},
}

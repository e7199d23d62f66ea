package rtabi

// Array layout. Every language-level array, string included, is the struct
// { i32 length, T* data }.
const (
	ArrayLengthField = 0
	ArrayDataField   = 1

	// Field names usable with '.' on an array value.
	ArrayLengthName = "length"
	ArrayDataName   = "data"
)

// String literal globals
const (
	StringGlobalPrefix = "str"     // interned character data
	StringBufferPrefix = "str_arr" // module-level string buffers
	ArrayBufferPrefix  = "arr"     // module-level array buffers
)

// Package rtabi defines the names and layouts shared between generated
// modules and the code that loads them.
package rtabi

// Synthesized and well-known functions
const (
	// InitFunc is the module initialization function. It evaluates
	// top-level code and calls the entry function.
	InitFunc = "__init"

	// DefaultEntry is the user entry function called from InitFunc.
	DefaultEntry = "main"
)

// Shared-library entry point. In library mode InitFunc has the shape of a
// DLL load entry: (module handle, reason, reserved) -> status.
const (
	// DLLSuccess is returned by InitFunc in library mode.
	DLLSuccess = 1

	DLLParamHandle   = "instance"
	DLLParamReason   = "reason"
	DLLParamReserved = "reserved"
)

// Source attributes with an effect on code generation
const (
	// AttrDLLExport marks a function for export from a shared library.
	AttrDLLExport = "DLL.EXPORT"
)

// LLVM intrinsics
const (
	// Memcpy copies string literal bytes into their backing buffer.
	// Signature: void (i8* dst, i8* src, i32 len, i1 isvolatile).
	Memcpy = "llvm.memcpy.p0i8.p0i8.i32"
)

// Basic block names every function starts with
const (
	BlockVars  = "vars"  // all allocas; branches to BlockEntry
	BlockEntry = "entry" // first block of control flow
)

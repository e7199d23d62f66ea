package types

// Identical reports whether x and y are identical types.
func Identical(x, y Type) bool {
	if x == y {
		return true
	}
	if x == nil || y == nil {
		return false
	}
	return identical(x, y)
}

func identical(x, y Type) bool {
	xn, xNamed := x.(*Named)
	yn, yNamed := y.(*Named)
	if xNamed && yNamed {
		// Two named types are identical only if they are the same named type
		return xn.obj == yn.obj
	}
	if xNamed != yNamed {
		return false
	}

	switch x := x.(type) {
	case *Basic:
		if y, ok := y.(*Basic); ok {
			return x.kind == y.kind
		}
	case *Array:
		if y, ok := y.(*Array); ok {
			return Identical(x.elem, y.elem)
		}
	case *Struct:
		if y, ok := y.(*Struct); ok {
			return identicalStructs(x, y)
		}
	case *Pointer:
		if y, ok := y.(*Pointer); ok {
			return Identical(x.base, y.base)
		}
	case *Func:
		if y, ok := y.(*Func); ok {
			return identicalFuncs(x, y)
		}
	}
	return false
}

func identicalStructs(x, y *Struct) bool {
	if len(x.fields) != len(y.fields) {
		return false
	}
	for i := range x.fields {
		if x.fields[i].Name() != y.fields[i].Name() {
			return false
		}
		if !Identical(x.fields[i].Type(), y.fields[i].Type()) {
			return false
		}
	}
	return true
}

func identicalFuncs(x, y *Func) bool {
	if len(x.params) != len(y.params) {
		return false
	}
	for i := range x.params {
		if !Identical(x.params[i].Type(), y.params[i].Type()) {
			return false
		}
	}
	return Identical(x.result, y.result)
}

func basicInfo(T Type) BasicInfo {
	if T == nil {
		return 0
	}
	if b, ok := T.Underlying().(*Basic); ok {
		return b.info
	}
	return 0
}

// IsBoolean reports whether T is bool.
func IsBoolean(T Type) bool { return basicInfo(T)&InfoBoolean != 0 }

// IsInteger reports whether T is a signed or unsigned integer type.
func IsInteger(T Type) bool { return basicInfo(T)&InfoInteger != 0 }

// IsUnsigned reports whether T is an unsigned integer type.
func IsUnsigned(T Type) bool { return basicInfo(T)&InfoUnsigned != 0 }

// IsFloat reports whether T is a floating-point type.
func IsFloat(T Type) bool { return basicInfo(T)&InfoFloat != 0 }

// IsNumeric reports whether T is an integer or floating-point type.
func IsNumeric(T Type) bool { return basicInfo(T)&InfoNumeric != 0 }

// IsVoid reports whether T is void.
func IsVoid(T Type) bool { return basicInfo(T)&InfoVoid != 0 }

// IsPointer reports whether T is a pointer type.
func IsPointer(T Type) bool {
	if T == nil {
		return false
	}
	_, ok := T.Underlying().(*Pointer)
	return ok
}

// IsArray reports whether T is an array type, including string.
func IsArray(T Type) bool {
	if T == nil {
		return false
	}
	_, ok := T.Underlying().(*Array)
	return ok
}

// IsString reports whether T is the predeclared string type or an
// identical array of i8.
func IsString(T Type) bool {
	return Identical(T, stringType)
}

// Comparable reports whether values of type T can be compared with == or !=.
func Comparable(T Type) bool {
	switch t := T.Underlying().(type) {
	case *Basic:
		return t.kind != Invalid && t.kind != Void
	case *Pointer:
		return true
	}
	return false
}

// Ordered reports whether values of type T can be ordered with <, <=, >, >=.
func Ordered(T Type) bool {
	return IsNumeric(T) || IsPointer(T)
}

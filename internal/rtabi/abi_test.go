package rtabi

import "testing"

func TestArrayFields(t *testing.T) {
	if ArrayLengthField == ArrayDataField {
		t.Fatal("length and data share a field index")
	}
	if ArrayLengthField != 0 || ArrayDataField != 1 {
		t.Errorf("array layout = {%d: length, %d: data}, want {0, 1}", ArrayLengthField, ArrayDataField)
	}
}

func TestBlockNames(t *testing.T) {
	if BlockVars == BlockEntry {
		t.Fatal("vars and entry blocks share a name")
	}
}

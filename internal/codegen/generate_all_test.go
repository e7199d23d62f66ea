package codegen

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/you-not-fish/pragma/internal/syntax"
)

func program(decls ...syntax.Node) *syntax.Program {
	return &syntax.Program{Files: []*syntax.File{{Decls: decls}}}
}

// unit returns a unit defining one function named name.
func unit(t *testing.T, name string) Unit {
	f := newFixture(t)
	d, s := f.fn(name, voidT)
	body(d, s)
	return Unit{Name: name + ".pr", Program: program(d), Oracle: f.info}
}

func TestGenerateAllOrder(t *testing.T) {
	var units []Unit
	for i := range 8 {
		units = append(units, unit(t, fmt.Sprintf("f%d", i)))
	}
	mods, err := GenerateAll(context.Background(), units, &Config{Verify: true})
	if err != nil {
		t.Fatalf("GenerateAll: %v", err)
	}
	if len(mods) != len(units) {
		t.Fatalf("%d modules, want %d", len(mods), len(units))
	}
	for i, m := range mods {
		if want := fmt.Sprintf("f%d", i); !hasFunc(m, want) {
			t.Errorf("module %d does not define %s", i, want)
		}
	}
}

func TestGenerateAllError(t *testing.T) {
	f := newFixture(t)
	d, s := f.fn("bad", voidT)
	body(d, s, &syntax.BranchStmt{Tok: syntax.Break})
	units := []Unit{
		unit(t, "good"),
		{Name: "bad.pr", Program: program(d), Oracle: f.info},
	}

	mods, err := GenerateAll(context.Background(), units, nil)
	if mods != nil {
		t.Error("modules returned alongside an error")
	}
	if err == nil || !strings.HasPrefix(err.Error(), "bad.pr: ") {
		t.Fatalf("err = %v, want it prefixed with the unit name", err)
	}
	var e *Error
	if !errors.As(err, &e) {
		t.Errorf("err = %T, want it to wrap *Error", err)
	}
}

func TestGenerateAllCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := GenerateAll(ctx, []Unit{unit(t, "f")}, nil)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestGenerateAllEmpty(t *testing.T) {
	mods, err := GenerateAll(context.Background(), nil, nil)
	if err != nil || len(mods) != 0 {
		t.Errorf("GenerateAll(nil) = %v, %v", mods, err)
	}
}

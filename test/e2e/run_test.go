package e2e

import (
	"bytes"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/llir/llvm/ir"

	"github.com/you-not-fish/pragma/internal/codegen"
	"github.com/you-not-fish/pragma/internal/syntax"
	"github.com/you-not-fish/pragma/internal/types"
)

var (
	i8   = types.Typ[types.I8]
	i32  = types.Typ[types.I32]
	void = types.Typ[types.Void]
)

// program is one end-to-end case: a unit built by build and the lines its
// IR must contain.
type program struct {
	name  string
	build func(u *unit)
	want  []string
}

var programs = []program{
	{
		name: "factorial",
		build: func(u *unit) {
			n := types.NewParam(syntax.NoPos, "n", i32)
			u.fn("fact", i32, []*types.Var{n}, func(*types.Scope) []syntax.Node {
				return []syntax.Node{
					&syntax.IfStmt{Cond: bin(syntax.OpLeq, ref("n"), num(1)), Then: block(ret(num(1)))},
					ret(bin(syntax.OpMul, ref("n"), call("fact", bin(syntax.OpSub, ref("n"), num(1))))),
				}
			})
			u.fn("main", i32, nil, func(*types.Scope) []syntax.Node {
				return []syntax.Node{ret(call("fact", num(5)))}
			})
		},
		want: []string{
			"define i32 @fact(i32 %n)",
			"call i32 @fact(",
			"call i32 @main()",
		},
	},
	{
		name: "hello",
		build: func(u *unit) {
			u.extern("puts", i32, types.NewParam(syntax.NoPos, "s", types.NewPointer(i8)))
			u.global("greeting", types.StringType(), &syntax.StringLit{Value: "hello, world"})
			u.fn("main", i32, nil, func(*types.Scope) []syntax.Node {
				return []syntax.Node{
					call("puts", sel(ref("greeting"), "data")),
					ret(num(0)),
				}
			})
		},
		want: []string{
			"declare i32 @puts(",
			`c"hello, world"`,
			"@llvm.memcpy.p0i8.p0i8.i32",
		},
	},
	{
		name: "loops",
		build: func(u *unit) {
			xs := &syntax.ArrayLit{Elems: []syntax.Expr{num(1), num(2), num(3)}}
			u.info.RecordType(xs, types.NewArray(i32))
			u.fn("sum", i32, nil, func(s *types.Scope) []syntax.Node {
				local(s, "xs", types.NewArray(i32))
				local(s, "total", i32)
				local(s, "i", i32)
				return []syntax.Node{
					varDecl("xs", xs),
					varDecl("total", num(0)),
					&syntax.ForStmt{
						Init: []syntax.Node{varDecl("i", num(0))},
						Cond: bin(syntax.OpLss, ref("i"), sel(ref("xs"), "length")),
						Iter: []syntax.Node{&syntax.VarRef{Name: "i", IncDec: syntax.PostInc}},
						Body: block(assign(ref("total"), bin(syntax.OpAdd, ref("total"), &syntax.IndexExpr{X: ref("xs"), Index: ref("i")}))),
					},
					&syntax.WhileStmt{
						Cond: bin(syntax.OpGtr, ref("total"), num(100)),
						Body: block(&syntax.BranchStmt{Tok: syntax.Break}),
					},
					ret(ref("total")),
				}
			})
			u.fn("main", void, nil, func(*types.Scope) []syntax.Node {
				return []syntax.Node{call("sum")}
			})
		},
		want: []string{
			"define i32 @sum()",
			"alloca i32, i32 3",
			"extractvalue",
			"call void @main()",
		},
	},
	{
		name: "structs",
		build: func(u *unit) {
			vec := u.structType("Vec",
				types.NewField(syntax.NoPos, "x", i32),
				types.NewField(syntax.NoPos, "y", i32))
			v := types.NewParam(syntax.NoPos, "v", vec)
			u.fn("norm2", i32, []*types.Var{v}, func(*types.Scope) []syntax.Node {
				x, y := sel(ref("v"), "x"), sel(ref("v"), "y")
				return []syntax.Node{ret(bin(syntax.OpAdd,
					bin(syntax.OpMul, x, x),
					bin(syntax.OpMul, y, y)))}
			})
			lit := &syntax.StructLit{Name: "Vec", Args: []syntax.Expr{num(3), num(4)}}
			u.info.RecordType(lit, vec)
			u.fn("main", i32, nil, func(s *types.Scope) []syntax.Node {
				local(s, "p", vec)
				return []syntax.Node{
					varDecl("p", lit),
					ret(call("norm2", ref("p"))),
				}
			})
		},
		want: []string{
			"%Vec = type { i32, i32 }",
			"define i32 @norm2(%Vec %v)",
		},
	},
}

// TestE2E lowers each program, writes its IR to a .ll file and, if clang
// is installed, compiles the file to an object.
func TestE2E(t *testing.T) {
	clang, err := exec.LookPath("clang")
	if err != nil {
		t.Log("clang not found, only checking the generated IR")
	}

	for _, p := range programs {
		t.Run(p.name, func(t *testing.T) {
			u := newUnit(t)
			p.build(u)
			m := lower(t, u)

			text := m.String()
			for _, w := range p.want {
				if !strings.Contains(text, w) {
					t.Errorf("IR does not contain %q:\n%s", w, text)
				}
			}
			if clang == "" {
				return
			}

			dir := t.TempDir()
			llFile := filepath.Join(dir, p.name+".ll")
			if err := os.WriteFile(llFile, []byte(text), 0o644); err != nil {
				t.Fatal(err)
			}
			cmd := exec.Command(clang, "-c", "-Wno-override-module", llFile, "-o", filepath.Join(dir, p.name+".o"))
			if out, err := cmd.CombinedOutput(); err != nil {
				t.Fatalf("clang failed:\n%s\n%v\n%s", out, err, text)
			}
		})
	}
}

// lower runs the back end over u with verification on. Debug records go
// to the test log on failure.
func lower(t *testing.T, u *unit) *ir.Module {
	t.Helper()
	var logBuf bytes.Buffer
	cfg := &codegen.Config{
		Verify: true,
		Warn: func(pos syntax.Pos, msg string) {
			t.Errorf("%s: unexpected warning: %s", pos, msg)
		},
		Logger: slog.New(slog.NewTextHandler(&logBuf, &slog.HandlerOptions{Level: slog.LevelDebug})),
	}
	m, err := codegen.Generate(u.program(), u.info, cfg)
	if err != nil {
		t.Fatalf("codegen: %v\n%s", err, logBuf.String())
	}
	return m
}

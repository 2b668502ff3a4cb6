package osexitmain

import (
	"go/ast"
	"go/token"
	"go/types"
	"testing"

	"golang.org/x/tools/go/analysis"
)

func selCall(pkg, fn string) (*ast.CallExpr, *ast.Ident) {
	sel := &ast.Ident{Name: fn}
	return &ast.CallExpr{Fun: &ast.SelectorExpr{X: &ast.Ident{Name: pkg}, Sel: sel}}, sel
}

func funcObj(pkgPath, name string) *types.Func {
	return types.NewFunc(token.NoPos, types.NewPackage(pkgPath, pkgPath), name, types.NewSignatureType(nil, nil, nil, nil, nil, false))
}

func newPass(uses map[*ast.Ident]types.Object, diags *[]analysis.Diagnostic) *analysis.Pass {
	return &analysis.Pass{
		Pkg:       types.NewPackage("main", "main"),
		TypesInfo: &types.Info{Uses: uses},
		Report:    func(d analysis.Diagnostic) { *diags = append(*diags, d) },
	}
}

func mainDecl(name string, stmts ...ast.Stmt) *ast.FuncDecl {
	return &ast.FuncDecl{Name: &ast.Ident{Name: name}, Body: &ast.BlockStmt{List: stmts}}
}

func TestCheckMain(t *testing.T) {
	tests := []struct {
		name    string
		pkg     string
		fn      string
		decl    string
		inLit   bool
		reports int
	}{
		{name: "os.Exit in main", pkg: "os", fn: "Exit", decl: "main", reports: 1},
		{name: "log.Fatalf in main", pkg: "log", fn: "Fatalf", decl: "main", reports: 1},
		{name: "log.Fatalln in main", pkg: "log", fn: "Fatalln", decl: "main", reports: 1},
		{name: "log.Printf in main", pkg: "log", fn: "Printf", decl: "main", reports: 0},
		{name: "os.Exit in helper", pkg: "os", fn: "Exit", decl: "exit", reports: 0},
		{name: "os.Exit inside func literal", pkg: "os", fn: "Exit", decl: "main", inLit: true, reports: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			call, sel := selCall(tt.pkg, tt.fn)
			var diags []analysis.Diagnostic
			pass := newPass(map[*ast.Ident]types.Object{sel: funcObj(tt.pkg, tt.fn)}, &diags)

			var stmt ast.Stmt = &ast.ExprStmt{X: call}
			if tt.inLit {
				stmt = &ast.ExprStmt{X: &ast.FuncLit{
					Type: &ast.FuncType{},
					Body: &ast.BlockStmt{List: []ast.Stmt{stmt}},
				}}
			}
			checkMain(pass, mainDecl(tt.decl, stmt))

			if len(diags) != tt.reports {
				t.Fatalf("got %d diagnostics, want %d", len(diags), tt.reports)
			}
		})
	}
}

func TestCheckMain_IgnoresMethods(t *testing.T) {
	call, sel := selCall("os", "Exit")
	var diags []analysis.Diagnostic
	pass := newPass(map[*ast.Ident]types.Object{sel: funcObj("os", "Exit")}, &diags)

	fd := mainDecl("main", &ast.ExprStmt{X: call})
	fd.Recv = &ast.FieldList{}
	checkMain(pass, fd)
	if len(diags) != 0 {
		t.Fatalf("method named main must be ignored, got %d diagnostics", len(diags))
	}
}

func TestRun_SkipsNonMainPackages(t *testing.T) {
	pass := &analysis.Pass{Pkg: types.NewPackage("example.com/lib", "lib")}
	if _, err := run(pass); err != nil {
		t.Fatalf("run() returned unexpected error: %v", err)
	}
}

func TestRun_RequiresInspector(t *testing.T) {
	pass := &analysis.Pass{
		Pkg:      types.NewPackage("main", "main"),
		ResultOf: map[*analysis.Analyzer]any{},
	}
	if _, err := run(pass); err == nil {
		t.Fatal("expected error without inspector result")
	}
}

func TestTerminatorName(t *testing.T) {
	call, sel := selCall("os", "Exit")
	pass := &analysis.Pass{TypesInfo: &types.Info{Uses: map[*ast.Ident]types.Object{sel: funcObj("os", "Exit")}}}
	if got, ok := terminatorName(pass, call); !ok || got != "os.Exit" {
		t.Fatalf("got %q, %v", got, ok)
	}

	pass.TypesInfo.Uses[sel] = funcObj("fmt", "Println")
	if _, ok := terminatorName(pass, call); ok {
		t.Fatal("fmt.Println is not a terminator")
	}

	if _, ok := terminatorName(&analysis.Pass{}, call); ok {
		t.Fatal("no type info must not match")
	}
}

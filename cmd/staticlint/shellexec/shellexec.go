// Package shellexec defines an analyzer that reports os/exec calls which hand
// a command string to a shell instead of an argument vector.
package shellexec

import (
	"fmt"
	"go/ast"
	"go/constant"
	"go/token"
	"go/types"
	"path"
	"strconv"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/inspect"
	"golang.org/x/tools/go/ast/inspector"
)

// Analyzer is the shellexec analyzer.
var Analyzer = &analysis.Analyzer{
	Name:     "shellexec",
	Doc:      "reports exec.Command and exec.CommandContext calls that run a shell with -c",
	Requires: []*analysis.Analyzer{inspect.Analyzer},
	Run:      run,
}

var shells = map[string]bool{
	"sh":   true,
	"bash": true,
	"dash": true,
	"ksh":  true,
	"zsh":  true,
}

func run(pass *analysis.Pass) (any, error) {
	insp, ok := pass.ResultOf[inspect.Analyzer].(*inspector.Inspector)
	if !ok {
		return nil, fmt.Errorf("failed to assert type: expected *inspector.Inspector")
	}

	insp.Preorder([]ast.Node{(*ast.CallExpr)(nil)}, func(n ast.Node) {
		if call, ok := n.(*ast.CallExpr); ok {
			checkCall(pass, call)
		}
	})
	return nil, nil
}

func checkCall(pass *analysis.Pass, call *ast.CallExpr) {
	name, progIdx := execFunc(pass, call)
	if progIdx < 0 || len(call.Args) <= progIdx+1 {
		return
	}

	prog, ok := stringValue(pass, call.Args[progIdx])
	if !ok || !shells[path.Base(prog)] {
		return
	}
	for _, arg := range call.Args[progIdx+1:] {
		if v, ok := stringValue(pass, arg); ok && v == "-c" {
			pass.Reportf(call.Pos(), "%s runs a command string through %s -c; pass the program and its arguments directly", name, prog)
			return
		}
	}
}

// execFunc returns the qualified name of an os/exec constructor and the index
// of its program argument, or -1 when call is something else.
func execFunc(pass *analysis.Pass, call *ast.CallExpr) (string, int) {
	sel, ok := call.Fun.(*ast.SelectorExpr)
	if !ok || sel.Sel == nil || pass.TypesInfo == nil {
		return "", -1
	}
	fn, ok := pass.TypesInfo.Uses[sel.Sel].(*types.Func)
	if !ok || fn.Pkg() == nil || fn.Pkg().Path() != "os/exec" {
		return "", -1
	}
	switch fn.Name() {
	case "Command":
		return "exec.Command", 0
	case "CommandContext":
		return "exec.CommandContext", 1
	}
	return "", -1
}

// stringValue resolves string constants and literals.
func stringValue(pass *analysis.Pass, e ast.Expr) (string, bool) {
	if pass.TypesInfo != nil {
		if tv, ok := pass.TypesInfo.Types[e]; ok && tv.Value != nil && tv.Value.Kind() == constant.String {
			return constant.StringVal(tv.Value), true
		}
	}
	lit, ok := e.(*ast.BasicLit)
	if !ok || lit.Kind != token.STRING {
		return "", false
	}
	s, err := strconv.Unquote(lit.Value)
	if err != nil {
		return "", false
	}
	return s, true
}

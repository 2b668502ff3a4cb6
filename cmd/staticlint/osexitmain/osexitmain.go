// Package osexitmain defines an analyzer that reports calls in main.main which
// end the process without running deferred functions.
package osexitmain

import (
	"fmt"
	"go/ast"
	"go/types"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/inspect"
	"golang.org/x/tools/go/ast/inspector"
)

// Analyzer is the osexitmain analyzer.
var Analyzer = &analysis.Analyzer{
	Name:     "osexitmain",
	Doc:      "reports direct os.Exit and log.Fatal calls in main.main",
	Requires: []*analysis.Analyzer{inspect.Analyzer},
	Run:      run,
}

// terminators lists, per package path, the functions that never return.
var terminators = map[string]map[string]bool{
	"os":  {"Exit": true},
	"log": {"Fatal": true, "Fatalf": true, "Fatalln": true},
}

func run(pass *analysis.Pass) (any, error) {
	if pass.Pkg == nil || pass.Pkg.Name() != "main" {
		return nil, nil
	}

	insp, ok := pass.ResultOf[inspect.Analyzer].(*inspector.Inspector)
	if !ok {
		return nil, fmt.Errorf("failed to assert type: expected *inspector.Inspector")
	}

	insp.Preorder([]ast.Node{(*ast.FuncDecl)(nil)}, func(n ast.Node) {
		if fd, ok := n.(*ast.FuncDecl); ok {
			checkMain(pass, fd)
		}
	})

	return nil, nil
}

// checkMain reports terminating calls in the body of fd when fd is main.main.
// Function literals are skipped: they run later, if at all.
func checkMain(pass *analysis.Pass, fd *ast.FuncDecl) {
	if fd == nil || fd.Recv != nil || fd.Name == nil || fd.Name.Name != "main" || fd.Body == nil {
		return
	}

	ast.Inspect(fd.Body, func(nn ast.Node) bool {
		switch x := nn.(type) {
		case *ast.FuncLit:
			return false
		case *ast.CallExpr:
			if name, ok := terminatorName(pass, x); ok {
				pass.Reportf(x.Pos(), "%s in main skips deferred calls; return an exit code from run instead", name)
			}
		}
		return true
	})
}

// terminatorName returns "pkg.Func" when call resolves to one of the terminators.
func terminatorName(pass *analysis.Pass, call *ast.CallExpr) (string, bool) {
	if call == nil || call.Fun == nil {
		return "", false
	}

	sel, ok := call.Fun.(*ast.SelectorExpr)
	if !ok || sel.Sel == nil || sel.X == nil {
		return "", false
	}

	if pass.TypesInfo == nil || pass.TypesInfo.Uses == nil {
		return "", false
	}

	fn, ok := pass.TypesInfo.Uses[sel.Sel].(*types.Func)
	if !ok || fn.Pkg() == nil {
		return "", false
	}

	if !terminators[fn.Pkg().Path()][fn.Name()] {
		return "", false
	}
	return fn.Pkg().Path() + "." + fn.Name(), true
}

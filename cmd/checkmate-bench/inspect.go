package main

import (
	"fmt"
	"go/ast"

	"golang.org/x/tools/go/packages"

	"github.com/funvibe/checkmate/internal/sig"
)

// inspectSignature loads the Go package at dir and extracts a sig.Signature
// for the named top-level function by walking its *ast.FuncType -- param
// names survive here (unlike sig.FromFunc's reflect-based placeholders),
// since the AST still carries the identifiers reflect erases.
//
// Grounded on the deleted cmd/lsp's style of walking ast.Node to answer
// structural questions about source text rather than the running binary.
func inspectSignature(dir, funcName string) (sig.Signature, error) {
	cfg := &packages.Config{Mode: packages.NeedSyntax | packages.NeedTypes | packages.NeedTypesInfo}
	pkgs, err := packages.Load(cfg, dir)
	if err != nil {
		return sig.Signature{}, fmt.Errorf("loading package at %s: %w", dir, err)
	}
	for _, pkg := range pkgs {
		for _, file := range pkg.Syntax {
			for _, decl := range file.Decls {
				fd, ok := decl.(*ast.FuncDecl)
				if !ok || fd.Name.Name != funcName {
					continue
				}
				return signatureFromFuncType(fd.Type), nil
			}
		}
	}
	return sig.Signature{}, fmt.Errorf("function %q not found under %s", funcName, dir)
}

func signatureFromFuncType(t *ast.FuncType) sig.Signature {
	var params []sig.Param
	if t.Params != nil {
		for _, field := range t.Params.List {
			kind := sig.PositionalOrKeyword
			if _, variadic := field.Type.(*ast.Ellipsis); variadic {
				kind = sig.VarPositional
			}
			names := field.Names
			if len(names) == 0 {
				params = append(params, sig.Param{Name: "_", Kind: kind})
				continue
			}
			for _, n := range names {
				params = append(params, sig.Param{Name: n.Name, Kind: kind})
			}
		}
	}
	return sig.Signature{Params: params}
}

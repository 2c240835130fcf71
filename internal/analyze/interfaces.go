package analyze

import (
	"go/ast"
	"go/types"
)

// analyzeInterface records the embedded interfaces and explicit methods of
// an interface. With its declaration at hand both keep source order;
// otherwise go/types order is used, which sorts methods by name.
func (a *Analyzer) analyzeInterface(it *types.Interface, decl *typeDecl, info *TypeInfo) {
	if decl != nil {
		if syntax, ok := decl.spec.Type.(*ast.InterfaceType); ok {
			a.analyzeInterfaceSyntax(syntax, decl, info)

			return
		}
	}

	for i := range it.NumEmbeddeds() {
		if embedded := types.Unalias(it.EmbeddedType(i)); types.IsInterface(embedded) {
			info.Embeds = append(info.Embeds, a.analyzeType(embedded))
		}
	}

	for i := range it.NumExplicitMethods() {
		info.Methods = append(info.Methods, methodInfo(it.ExplicitMethod(i)))
	}
}

func (a *Analyzer) analyzeInterfaceSyntax(syntax *ast.InterfaceType, decl *typeDecl, info *TypeInfo) {
	typesInfo := decl.pkg.TypesInfo

	for _, field := range syntax.Methods.List {
		if len(field.Names) == 0 {
			// Embedded element; union and ~T terms are not interfaces.
			if embedded := typesInfo.TypeOf(field.Type); embedded != nil && types.IsInterface(embedded) {
				info.Embeds = append(info.Embeds, a.analyzeType(embedded))
			}

			continue
		}

		for _, name := range field.Names {
			if fn, ok := typesInfo.Defs[name].(*types.Func); ok {
				info.Methods = append(info.Methods, methodInfo(fn))
			}
		}
	}
}

// methodInfo classifies a method; getters look like `Name() T`.
func methodInfo(fn *types.Func) MethodInfo {
	m := MethodInfo{Name: fn.Name()}

	sig, ok := fn.Type().(*types.Signature)
	if !ok || !fn.Exported() {
		return m
	}

	if sig.Params().Len() == 0 && sig.Results().Len() == 1 && !sig.Variadic() {
		m.Getter = true
		m.Result = sig.Results().At(0).Type()
	}

	return m
}

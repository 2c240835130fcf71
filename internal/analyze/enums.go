package analyze

import (
	"go/ast"
	"go/constant"
	"go/token"
	"go/types"
	"strings"

	"golang.org/x/tools/go/packages"

	"typemeta/meta"
	"typemeta/primitive"
)

// FlagsDirective marks an enum type as a bitmask type when it appears on its
// own line in the type's doc comment.
const FlagsDirective = "//typemeta:flags"

// collectEnums finds the exported constants of every named integer type
// declared in pkg, in source order.
func (a *Analyzer) collectEnums(pkg *packages.Package) map[*types.TypeName]*EnumInfo {
	enums := make(map[*types.TypeName]*EnumInfo)

	for _, file := range pkg.Syntax {
		for _, decl := range file.Decls {
			gd, ok := decl.(*ast.GenDecl)
			if !ok || gd.Tok != token.CONST {
				continue
			}

			for _, spec := range gd.Specs {
				vs, ok := spec.(*ast.ValueSpec)
				if !ok {
					continue
				}

				for _, name := range vs.Names {
					a.addEnumMember(pkg, enums, name, vs)
				}
			}
		}
	}

	return enums
}

func (a *Analyzer) addEnumMember(pkg *packages.Package, enums map[*types.TypeName]*EnumInfo, name *ast.Ident, vs *ast.ValueSpec) {
	c, ok := pkg.TypesInfo.Defs[name].(*types.Const)
	if !ok || !c.Exported() {
		return
	}

	named, ok := types.Unalias(c.Type()).(*types.Named)
	if !ok || named.Obj().Pkg() != pkg.Types {
		return
	}

	basic, ok := named.Underlying().(*types.Basic)
	if !ok {
		return
	}

	kind := primitive.FromBasicKind(basic.Kind())
	if !kind.IsInteger() {
		return
	}

	bits, ok := constBits(c.Val(), kind)
	if !ok {
		return
	}

	enum, ok := enums[named.Obj()]
	if !ok {
		enum = &EnumInfo{Basic: kind, Flags: hasFlagsDirective(a.specs[named.Obj()])}
		enums[named.Obj()] = enum
	}

	enum.Members = append(enum.Members, meta.EnumMember{
		Name:        name.Name,
		Value:       primitive.FromBits(kind, bits),
		Description: strings.TrimSpace(vs.Comment.Text()),
	})
}

// constBits normalizes an integer constant of the given kind.
func constBits(v constant.Value, kind primitive.KindEnum) (uint64, bool) {
	v = constant.ToInt(v)

	if kind.IsSigned() {
		n, exact := constant.Int64Val(v)
		return uint64(n), exact
	}

	return constant.Uint64Val(v)
}

func hasFlagsDirective(d *typeDecl) bool {
	if d == nil {
		return false
	}

	groups := []*ast.CommentGroup{d.spec.Doc}
	if !d.decl.Lparen.IsValid() {
		groups = append(groups, d.decl.Doc)
	}

	for _, g := range groups {
		if g == nil {
			continue
		}

		for _, c := range g.List {
			if strings.TrimSpace(c.Text) == FlagsDirective {
				return true
			}
		}
	}

	return false
}

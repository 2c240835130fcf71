package analyze

import (
	"errors"
	"fmt"
	"go/types"
	"reflect"
	"sort"
	"strings"

	"typemeta/internal/common"
	"typemeta/meta"
	"typemeta/primitive"
)

// TypeID uniquely identifies a type by its package path and name.
type TypeID = meta.TypeID

// TypeKind represents the kind of a type.
type TypeKind int

const (
	TypeKindUnknown   TypeKind = iota
	TypeKindBasic              // int, string, bool, etc.
	TypeKindStruct             // struct type
	TypeKindPointer            // pointer to another type
	TypeKindSlice              // slice of another type
	TypeKindAlias              // named type wrapping another
	TypeKindExternal           // opaque type from a package outside the graph (e.g., time.Time)
	TypeKindInterface          // interface type
	TypeKindEnum               // named integer type with declared constants
)

// String returns a human-readable representation of the TypeKind.
func (k TypeKind) String() string {
	switch k {
	case TypeKindBasic:
		return "basic"
	case TypeKindStruct:
		return "struct"
	case TypeKindPointer:
		return "pointer"
	case TypeKindSlice:
		return "slice"
	case TypeKindAlias:
		return "alias"
	case TypeKindExternal:
		return "external"
	case TypeKindInterface:
		return "interface"
	case TypeKindEnum:
		return "enum"
	default:
		return common.UnknownStr
	}
}

// TypeInfo describes a Go type in the type graph.
type TypeInfo struct {
	ID         TypeID       // Unique identifier (empty for unnamed types like *T or []T)
	Kind       TypeKind     // Kind of type
	Underlying *TypeInfo    // For named types, the underlying type
	ElemType   *TypeInfo    // For pointers and slices, the element type
	Fields     []FieldInfo  // For structs, the directly declared fields
	Embeds     []*TypeInfo  // For interfaces, the embedded interfaces in declaration order
	Methods    []MethodInfo // For interfaces, the explicitly declared methods
	Enum       *EnumInfo    // For enums, the members
	GoType     types.Type   // The original go/types.Type
}

// IsNamed returns true if this type has a name (TypeID is set).
func (t *TypeInfo) IsNamed() bool {
	return t.ID.Name != ""
}

// FieldInfo describes a struct field.
type FieldInfo struct {
	Name     string            // Go field name
	Exported bool              // Whether the field is exported
	Type     *TypeInfo         // Field type
	Tag      reflect.StructTag // Raw struct tag
	Embedded bool              // Whether the field is embedded (anonymous)
	Index    int               // Field index in the struct
}

// MethodInfo describes an interface method.
type MethodInfo struct {
	Name   string
	Result types.Type // Single result of a getter, nil otherwise
	Getter bool       // No parameters and exactly one result
}

// EnumInfo describes the members of an enum type.
type EnumInfo struct {
	Basic   primitive.KindEnum
	Flags   bool
	Members []meta.EnumMember
}

// TypeGraph holds all analyzed types from loaded packages.
type TypeGraph struct {
	// Types maps TypeID to TypeInfo for all named types.
	Types map[TypeID]*TypeInfo
	// Packages maps package paths to their package info.
	Packages map[string]*PackageInfo
}

// NewTypeGraph creates a new empty TypeGraph.
func NewTypeGraph() *TypeGraph {
	return &TypeGraph{
		Types:    make(map[TypeID]*TypeInfo),
		Packages: make(map[string]*PackageInfo),
	}
}

// GetType returns the TypeInfo for a given TypeID, or nil if not found.
func (g *TypeGraph) GetType(id TypeID) *TypeInfo {
	return g.Types[id]
}

// Lookup describes a named type of a loaded package, or returns nil.
func (g *TypeGraph) Lookup(pkgPath, name string) meta.Type {
	info := g.GetType(TypeID{PkgPath: pkgPath, Name: name})
	if info == nil {
		return nil
	}

	return g.Describe(info)
}

// ErrTypeNotFound is returned by FindType when no loaded package declares the name.
var ErrTypeNotFound = errors.New("type not found")

// FindType returns the named type called name in the loaded packages. The
// name may be qualified with a package name ("store.Color") to choose
// between packages declaring the same name.
func (g *TypeGraph) FindType(name string) (*TypeInfo, error) {
	pkgName, typeName := "", name
	if i := strings.LastIndex(name, "."); i >= 0 {
		pkgName, typeName = name[:i], name[i+1:]
	}

	var found []TypeID

	for _, id := range g.TypeIDs() {
		if id.Name != typeName {
			continue
		}

		if pkgName != "" && g.packageName(id.PkgPath) != pkgName {
			continue
		}

		found = append(found, id)
	}

	switch len(found) {
	case 0:
		return nil, fmt.Errorf("%w: %s", ErrTypeNotFound, name)
	case 1:
		return g.Types[found[0]], nil
	default:
		return nil, fmt.Errorf("ambiguous type %s: declared in %v", name, found)
	}
}

// packageName returns the declared name of a loaded package, or the last
// element of its path for packages outside the graph.
func (g *TypeGraph) packageName(pkgPath string) string {
	if pkg := g.Packages[pkgPath]; pkg != nil {
		return pkg.Name
	}

	return common.PkgAlias(pkgPath)
}

// TypeIDs returns the IDs of all named types, sorted by package and name.
func (g *TypeGraph) TypeIDs() []TypeID {
	ids := make([]TypeID, 0, len(g.Types))
	for id := range g.Types {
		ids = append(ids, id)
	}

	sort.Slice(ids, func(i, j int) bool {
		if ids[i].PkgPath != ids[j].PkgPath {
			return ids[i].PkgPath < ids[j].PkgPath
		}

		return ids[i].Name < ids[j].Name
	})

	return ids
}

// PackageInfo holds information about a loaded package.
type PackageInfo struct {
	Path  string   // Import path
	Name  string   // Package name
	Types []TypeID // Named types defined in this package
}

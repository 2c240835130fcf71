// Package rows projects objects and maps into simple in-memory tables whose
// columns follow a type's shape.
package rows

import (
	"errors"
	"fmt"
	"maps"
	"reflect"
	"slices"
	"strings"

	"typemeta/meta"
	"typemeta/shape"
	"typemeta/typecache"
)

var (
	// ErrUnknownColumn is returned when a row is read or written under a
	// name the table has no column for.
	ErrUnknownColumn = errors.New("unknown column")
	// ErrForeignRow is returned when adding a row created by another table.
	ErrForeignRow = errors.New("row belongs to another table")
)

// Column is a named, typed table column. Type is the Go type rendered as a
// string.
type Column struct {
	Name string `json:"name" yaml:"name"`
	Type string `json:"type" yaml:"type"`
}

// Table is an ordered set of columns and the rows added to it.
type Table struct {
	Name    string
	Columns []Column
	Rows    []*Row

	index     map[string]int
	projector *Projector
	source    reflect.Type
}

func newTable(name string, projector *Projector, source reflect.Type) *Table {
	return &Table{
		Name:      name,
		index:     make(map[string]int),
		projector: projector,
		source:    source,
	}
}

// addColumn appends a column unless one with the same name exists.
func (t *Table) addColumn(name, typ string) {
	if _, ok := t.index[name]; ok {
		return
	}

	t.index[name] = len(t.Columns)
	t.Columns = append(t.Columns, Column{Name: name, Type: typ})
}

// Column returns the named column.
func (t *Table) Column(name string) (Column, bool) {
	i, ok := t.index[name]
	if !ok {
		return Column{}, false
	}

	return t.Columns[i], true
}

// ColumnNames returns the column names in order.
func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.Name
	}

	return names
}

// NewRow creates an empty row shaped like t. The row is not added.
func (t *Table) NewRow() *Row {
	return &Row{table: t, values: make([]any, len(t.Columns))}
}

// AddRow appends r, which must have been created by t.NewRow.
func (t *Table) AddRow(r *Row) error {
	if r == nil || r.table != t {
		return fmt.Errorf("table %q: %w", t.Name, ErrForeignRow)
	}

	t.Rows = append(t.Rows, r)

	return nil
}

// Row holds one value per column of its table.
type Row struct {
	table  *Table
	values []any
}

// Get returns the value stored under column.
func (r *Row) Get(column string) (any, error) {
	i, ok := r.table.index[column]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownColumn, column)
	}

	return r.values[i], nil
}

// Set stores value under column.
func (r *Row) Set(column string, value any) error {
	i, ok := r.table.index[column]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownColumn, column)
	}

	r.values[i] = value

	return nil
}

// Values returns the row's values in column order.
func (r *Row) Values() []any {
	return slices.Clone(r.values)
}

// Map returns the row's values keyed by column name.
func (r *Row) Map() map[string]any {
	m := make(map[string]any, len(r.values))
	for i, c := range r.table.Columns {
		m[c.Name] = r.values[i]
	}

	return m
}

// FillFromObject copies every attribute of obj's shape into the column of
// the same name. When the table was built from an interface that obj
// implements, the interface's shape is used instead. Struct fields are read
// through their index path and contract attributes through their getter; a
// field behind a nil embedded pointer reads as nil.
func (r *Row) FillFromObject(obj any) error {
	projector := r.table.projector
	if projector == nil {
		projector = Default
	}

	return projector.fill(r, obj)
}

// FillFromMap copies each entry of m into the column named by the key
// formatted with fmt.Sprint. m must be a map.
func (r *Row) FillFromMap(m any) error {
	v := reflect.ValueOf(m)
	if v.Kind() != reflect.Map {
		return fmt.Errorf("%w: %T is not a map", meta.ErrInvalidArgument, m)
	}

	iter := v.MapRange()
	for iter.Next() {
		if err := r.Set(fmt.Sprint(iter.Key().Interface()), iter.Value().Interface()); err != nil {
			return err
		}
	}

	return nil
}

// Projector builds tables from type shapes.
type Projector struct {
	resolver *shape.Resolver
}

// NewProjector creates a Projector resolving shapes with resolver.
func NewProjector(resolver *shape.Resolver) *Projector {
	return &Projector{resolver: resolver}
}

// Default is a Projector with its own cache over meta.Default.
var Default = NewProjector(shape.NewResolver(typecache.New()))

// TableFromType builds an empty table with the Default projector.
func TableFromType(rt reflect.Type, name string) *Table {
	return Default.TableFromType(rt, name)
}

// CreateTableFrom builds a table from obj with the Default projector.
func CreateTableFrom(obj any, name string, includeRow bool) (*Table, error) {
	return Default.CreateTableFrom(obj, name, includeRow)
}

// TableFromType returns an empty table with one column per attribute of
// rt's shape. Of several attributes with the same name the first wins. An
// empty name defaults to the lower-cased type name.
func (p *Projector) TableFromType(rt reflect.Type, name string) *Table {
	if rt == nil {
		return nil
	}

	if name == "" {
		name = strings.ToLower(indirect(rt).Name())
	}

	t := newTable(name, p, rt)
	for _, a := range p.resolver.ResolveType(rt) {
		t.addColumn(a.Name, a.Type)
	}

	return t
}

// CreateTableFrom builds a table from obj's type and, when includeRow is
// set, adds a row filled from obj. A nil obj yields a nil table.
func (p *Projector) CreateTableFrom(obj any, name string, includeRow bool) (*Table, error) {
	if obj == nil {
		return nil, nil
	}

	t := p.TableFromType(reflect.TypeOf(obj), name)
	if !includeRow {
		return t, nil
	}

	row := t.NewRow()
	if err := p.fill(row, obj); err != nil {
		return nil, err
	}

	return t, t.AddRow(row)
}

func (p *Projector) fill(r *Row, obj any) error {
	if obj == nil {
		return fmt.Errorf("%w: nil object", meta.ErrInvalidArgument)
	}

	v := reflect.ValueOf(obj)

	rt := v.Type()
	if src := r.table.source; src != nil && src.Kind() == reflect.Interface && rt.Implements(src) {
		rt = src
	}

	for _, a := range p.resolver.ResolveType(rt) {
		value, err := read(v, a)
		if err != nil {
			return err
		}

		if err := r.Set(a.Name, value); err != nil {
			return err
		}
	}

	return nil
}

// read fetches one attribute from v.
func read(v reflect.Value, a meta.Attribute) (any, error) {
	if a.Getter {
		m := v.MethodByName(a.Name)
		if !m.IsValid() {
			return nil, fmt.Errorf("%w: %s has no method %s", meta.ErrInvalidArgument, v.Type(), a.Name)
		}

		return m.Call(nil)[0].Interface(), nil
	}

	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return nil, nil
		}

		v = v.Elem()
	}

	f, err := v.FieldByIndexErr(a.Index)
	if err != nil || !f.CanInterface() {
		return nil, nil
	}

	return f.Interface(), nil
}

func indirect(rt reflect.Type) reflect.Type {
	for rt.Kind() == reflect.Pointer {
		rt = rt.Elem()
	}

	return rt
}

// TableFromMap returns an empty table with one column per key of m, named
// with fmt.Sprint and sorted by name. Every column has V's type.
func TableFromMap[K comparable, V any](m map[K]V, name string) *Table {
	if m == nil {
		return nil
	}

	typ := reflect.TypeFor[V]().String()

	t := newTable(name, nil, nil)
	for _, key := range slices.Sorted(maps.Keys(keyNames(m))) {
		t.addColumn(key, typ)
	}

	return t
}

// CreateTableFromMap builds a table from m's keys and adds one row holding
// m's values. A nil m yields a nil table.
func CreateTableFromMap[K comparable, V any](m map[K]V, name string) (*Table, error) {
	t := TableFromMap(m, name)
	if t == nil {
		return nil, nil
	}

	row := t.NewRow()
	if err := row.FillFromMap(m); err != nil {
		return nil, err
	}

	return t, t.AddRow(row)
}

func keyNames[K comparable, V any](m map[K]V) map[string]struct{} {
	names := make(map[string]struct{}, len(m))
	for k := range m {
		names[fmt.Sprint(k)] = struct{}{}
	}

	return names
}

package enummeta

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"typemeta/internal/diagnostic"
)

func TestParseDelimited_DropsUnknownTokens(t *testing.T) {
	f := newFixture(t)
	perm := f.typ(reflect.TypeFor[Perm]())

	v, err := f.engine.ParseDelimited(perm, "A, Z", DefaultDelimiter)
	require.NoError(t, err)
	assert.Equal(t, A, v)
}

func TestParseDelimited_EmptyInputIsZero(t *testing.T) {
	f := newFixture(t)

	v, err := f.engine.ParseDelimited(f.typ(reflect.TypeFor[Perm]()), "", DefaultDelimiter)
	require.NoError(t, err)
	assert.Equal(t, Perm(0), v)

	v, err = f.engine.ParseDelimited(f.typ(reflect.TypeFor[Status]()), "", DefaultDelimiter, Strict())
	require.NoError(t, err)
	assert.Equal(t, Status(0), v)

	v, err = f.engine.ParseDelimited(f.typ(reflect.TypeFor[Status]()), "   ", DefaultDelimiter, Strict())
	require.NoError(t, err)
	assert.Equal(t, Status(0), v)
}

func TestParseDelimited_Flags(t *testing.T) {
	f := newFixture(t)
	color := f.typ(reflect.TypeFor[Color]())

	tests := []struct {
		input     string
		delimiter string
		want      Color
	}{
		{"Red", "", Red},
		{" Red , Blue ", ",", Red | Blue},
		{"Red,,Blue,", ",", Red | Blue},
		{"Red|Green", "|", Red | Green},
		{"Red color, Green color", ",", Red | Green},
		{"1,4", ",", Red | Blue},
		{"Red,8", ",", Red},
		{"red", ",", 0},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			v, err := f.engine.ParseDelimited(color, tt.input, tt.delimiter)
			require.NoError(t, err)
			assert.Equal(t, tt.want, v)
		})
	}
}

func TestParseDelimited_RoundTripsDescribe(t *testing.T) {
	f := newFixture(t)
	color := f.typ(reflect.TypeFor[Color]())

	desc, err := f.engine.Describe(color, Red|Green|Blue, DefaultSeparator)
	require.NoError(t, err)

	v, err := f.engine.ParseDelimited(color, desc, DefaultDelimiter)
	require.NoError(t, err)
	assert.Equal(t, Red|Green|Blue, v)
}

func TestParseDelimited_NonFlags(t *testing.T) {
	f := newFixture(t)
	status := f.typ(reflect.TypeFor[Status]())

	tests := []struct {
		input string
		want  Status
	}{
		{"Active", Active},
		{" Closed ", Closed},
		{"Active order", Active},
		{"1", Active},
		{"-1", Closed},
		{"0x01", Active},
		{"7", Unknown},
		{"Bogus", Unknown},
		{"Active,Closed", Unknown},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			v, err := f.engine.ParseDelimited(status, tt.input, DefaultDelimiter)
			require.NoError(t, err)
			assert.Equal(t, tt.want, v)
		})
	}
}

func TestParseDelimited_Strict(t *testing.T) {
	f := newFixture(t)

	_, err := f.engine.ParseDelimited(f.typ(reflect.TypeFor[Color]()), "Red, Gren", DefaultDelimiter, Strict())
	require.ErrorIs(t, err, ErrUnknownMember)
	assert.Contains(t, err.Error(), `"Gren"`)
	assert.Contains(t, err.Error(), "did you mean Green")

	_, err = f.engine.ParseDelimited(f.typ(reflect.TypeFor[Status]()), "7", DefaultDelimiter, Strict())
	require.ErrorIs(t, err, ErrUnknownMember)
	assert.Contains(t, err.Error(), "undefined-value")

	v, err := f.engine.ParseDelimited(f.typ(reflect.TypeFor[Color]()), "Red,Blue", DefaultDelimiter, Strict())
	require.NoError(t, err)
	assert.Equal(t, Red|Blue, v)
}

func TestParseDelimited_StrictReportsEveryToken(t *testing.T) {
	f := newFixture(t)

	_, err := f.engine.ParseDelimited(f.typ(reflect.TypeFor[Color]()), "Pink,Red,Teal", DefaultDelimiter, Strict())
	require.ErrorIs(t, err, ErrUnknownMember)
	assert.Contains(t, err.Error(), `"Pink"`)
	assert.Contains(t, err.Error(), `"Teal"`)
}

func TestParseDelimited_FoldNames(t *testing.T) {
	f := newFixture(t)
	access := f.typ(reflect.TypeFor[Access]())

	v, err := f.engine.ParseDelimited(access, "read_write", DefaultDelimiter)
	require.NoError(t, err)
	assert.Equal(t, None, v)

	v, err = f.engine.ParseDelimited(access, "read_write", DefaultDelimiter, FoldNames())
	require.NoError(t, err)
	assert.Equal(t, ReadWrite, v)

	v, err = f.engine.ParseDelimited(access, "READ, write", DefaultDelimiter, FoldNames(), Strict())
	require.NoError(t, err)
	assert.Equal(t, ReadWrite, v)
}

func TestParseFlags(t *testing.T) {
	f := newFixture(t)

	v, err := f.engine.ParseFlags(f.typ(reflect.TypeFor[Perm]()), []string{"A", "C", "Z"})
	require.NoError(t, err)
	assert.Equal(t, Perm(5), v)

	v, err = f.engine.ParseFlags(f.typ(reflect.TypeFor[Perm]()), nil)
	require.NoError(t, err)
	assert.Equal(t, Perm(0), v)

	// Aggregates contribute all their bits.
	v, err = f.engine.ParseFlags(f.typ(reflect.TypeFor[Perm]()), []string{"AB", "C"})
	require.NoError(t, err)
	assert.Equal(t, Perm(7), v)
}

func TestParseDelimited_CollectsDiagnostics(t *testing.T) {
	f := newFixture(t)
	color := f.typ(reflect.TypeFor[Color]())

	var diags diagnostic.Diagnostics
	v, err := f.engine.ParseDelimited(color, "Red,,Gren,Blue,", DefaultDelimiter, WithDiagnostics(&diags))
	require.NoError(t, err)
	assert.Equal(t, Red|Blue, v)

	assert.False(t, diags.HasErrors())
	require.Len(t, diags.Warnings, 3)
	assert.Equal(t, diagnostic.CodeEmptyToken, diags.Warnings[0].Code)
	assert.Equal(t, diagnostic.CodeEmptyToken, diags.Warnings[1].Code)
	assert.Equal(t, diagnostic.CodeUnknownMember, diags.Warnings[2].Code)
	assert.Equal(t, "Gren", diags.Warnings[2].Token)
	assert.Contains(t, diags.Warnings[2].Suggestions, "Green")
}

func TestParseDelimited_StrictCollectsErrors(t *testing.T) {
	f := newFixture(t)

	var diags diagnostic.Diagnostics
	_, err := f.engine.ParseDelimited(f.typ(reflect.TypeFor[Status]()), "7", DefaultDelimiter, Strict(), WithDiagnostics(&diags))
	require.ErrorIs(t, err, ErrUnknownMember)

	require.Len(t, diags.Errors, 1)
	assert.Equal(t, diagnostic.CodeUndefinedValue, diags.Errors[0].Code)
	assert.Empty(t, diags.Warnings)
}

func TestParseFlags_ReportsFoldedMatches(t *testing.T) {
	f := newFixture(t)

	var diags diagnostic.Diagnostics
	v, err := f.engine.ParseFlags(f.typ(reflect.TypeFor[Access]()), []string{"read_write"}, FoldNames(), WithDiagnostics(&diags))
	require.NoError(t, err)
	assert.Equal(t, ReadWrite, v)

	require.Len(t, diags.Infos, 1)
	assert.Equal(t, diagnostic.CodeFoldedName, diags.Infos[0].Code)
	assert.Equal(t, "read_write", diags.Infos[0].Token)
}

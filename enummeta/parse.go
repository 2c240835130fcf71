package enummeta

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"typemeta/internal/diagnostic"
	"typemeta/internal/match"
	"typemeta/meta"
	"typemeta/primitive"
	"typemeta/typecache"
)

// maxSuggestions bounds the "did you mean" list of a strict parse error.
const maxSuggestions = 3

// ParseOption adjusts how member tokens are resolved.
type ParseOption func(*parseOptions)

type parseOptions struct {
	strict bool
	fold   bool
	sink   *diagnostic.Diagnostics
}

// Strict makes tokens that resolve to no member an error wrapping
// ErrUnknownMember instead of being dropped.
func Strict() ParseOption {
	return func(o *parseOptions) { o.strict = true }
}

// FoldNames lets a token match a member name that differs only in case or
// word separators, e.g. "read_write" for ReadWrite.
func FoldNames() ParseOption {
	return func(o *parseOptions) { o.fold = true }
}

// WithDiagnostics collects the problems found while parsing into d: dropped
// unknown tokens and skipped empty tokens as warnings, folded matches as
// infos, and with Strict the tokens that failed the parse as errors.
func WithDiagnostics(d *diagnostic.Diagnostics) ParseOption {
	return func(o *parseOptions) { o.sink = d }
}

func applyParseOptions(opts []ParseOption) parseOptions {
	var o parseOptions
	for _, opt := range opts {
		opt(&o)
	}

	return o
}

// lookup indexes the members of one enum by every spelling a token may take.
// When spellings collide the later member wins, as in ValueNames.
type lookup struct {
	byName        map[string]uint64
	byDescription map[string]uint64
	byFolded      map[string]uint64
	spellings     []string
}

func (e *Engine) lookup(enum meta.Enum) *lookup {
	key := typecache.Key{View: ViewLookup, Type: enum.ID()}

	return typecache.Get(e.cache, key, func() *lookup {
		members := e.members(enum)
		lk := &lookup{
			byName:        make(map[string]uint64, len(members)),
			byDescription: make(map[string]uint64),
			byFolded:      make(map[string]uint64, len(members)),
		}

		for _, m := range members {
			lk.byName[m.Name] = m.bits
			lk.byFolded[match.NormalizeIdent(m.Name)] = m.bits
			lk.spellings = append(lk.spellings, m.Name)

			if m.HasDescription() {
				lk.byDescription[m.Description] = m.bits
				lk.spellings = append(lk.spellings, m.Description)
			}
		}

		return lk
	})
}

// resolveToken finds the member a token denotes: an exact name, then an
// exact description, then a numeric literal equal to a member's value, then
// (with FoldNames) a folded name.
func (e *Engine) resolveToken(enum meta.Enum, diags *diagnostic.Diagnostics, token string, o parseOptions) (uint64, bool) {
	lk := e.lookup(enum)

	if bits, ok := lk.byName[token]; ok {
		return bits, true
	}

	if bits, ok := lk.byDescription[token]; ok {
		return bits, true
	}

	if raw, err := primitive.ParseUnderlying(enum.Underlying(), token); err == nil {
		bits, err := primitive.NormalizeAs(enum.Underlying(), raw)
		if err == nil {
			if _, defined := e.valueNames(enum)[bits]; defined {
				return bits, true
			}
		}
	}

	if o.fold {
		if bits, ok := lk.byFolded[match.NormalizeIdent(token)]; ok {
			diags.AddInfo(diagnostic.CodeFoldedName, "matched by folded name", enum.ID().Name, token)

			return bits, true
		}
	}

	return 0, false
}

// unresolved records a token that named no member.
// Strict parses fail on it; others drop it with a warning.
func (e *Engine) unresolved(enum meta.Enum, diags *diagnostic.Diagnostics, token string, o parseOptions) {
	code, message := diagnostic.CodeUnknownMember, "unknown member"
	if _, err := primitive.ParseUnderlying(enum.Underlying(), token); err == nil {
		code, message = diagnostic.CodeUndefinedValue, "value is not defined"
	}

	var d *diagnostic.Diagnostic
	if o.strict {
		d = diags.AddError(code, message, enum.ID().Name, token)
	} else {
		e.logger.Debug("dropping unknown enum token",
			zap.Stringer("type", enum.ID()),
			zap.String("token", token))

		d = diags.AddWarning(code, message+", dropped", enum.ID().Name, token)
	}

	d.Suggestions = match.Suggest(token, e.lookup(enum).spellings, maxSuggestions)
}

// finish hands diags to the caller's collector, if any, and turns error
// diagnostics into a failed parse.
func (o parseOptions) finish(diags *diagnostic.Diagnostics) error {
	if o.sink != nil {
		o.sink.Merge(*diags)
	}

	if err := diags.Error(); err != nil {
		return fmt.Errorf("%w: %w", ErrUnknownMember, err)
	}

	return nil
}

// ParseFlags resolves every token to a member and returns the bitwise OR of
// their values as a value of the enum's type. Tokens naming no member are
// dropped unless Strict is given.
func (e *Engine) ParseFlags(t meta.Type, tokens []string, opts ...ParseOption) (any, error) {
	enum, err := meta.AsEnum(t)
	if err != nil {
		return nil, err
	}

	var diags diagnostic.Diagnostics

	return e.parseFlags(enum, &diags, tokens, applyParseOptions(opts))
}

func (e *Engine) parseFlags(enum meta.Enum, diags *diagnostic.Diagnostics, tokens []string, o parseOptions) (any, error) {
	var acc uint64

	for _, token := range tokens {
		bits, ok := e.resolveToken(enum, diags, token, o)
		if !ok {
			e.unresolved(enum, diags, token, o)

			continue
		}

		acc |= bits
	}

	if err := o.finish(diags); err != nil {
		return nil, err
	}

	return enum.FromBits(acc), nil
}

// ParseDelimited parses s into a value of enum t. Empty input yields the zero
// value. Flags enums split s on delimiter (DefaultDelimiter when empty), trim
// each token, skip empty ones and combine the rest as ParseFlags does. Other
// enums resolve the whole trimmed input as one token and fall back to the
// zero value when it names no member.
func (e *Engine) ParseDelimited(t meta.Type, s, delimiter string, opts ...ParseOption) (any, error) {
	enum, err := meta.AsEnum(t)
	if err != nil {
		return nil, err
	}

	if s == "" {
		return enum.FromBits(0), nil
	}

	o := applyParseOptions(opts)

	var diags diagnostic.Diagnostics

	if enum.IsFlags() {
		if delimiter == "" {
			delimiter = DefaultDelimiter
		}

		var tokens []string

		for token := range strings.SplitSeq(s, delimiter) {
			if token = strings.TrimSpace(token); token == "" {
				diags.AddWarning(diagnostic.CodeEmptyToken, "empty token skipped", enum.ID().Name, "")

				continue
			}

			tokens = append(tokens, token)
		}

		return e.parseFlags(enum, &diags, tokens, o)
	}

	token := strings.TrimSpace(s)
	if token == "" {
		return enum.FromBits(0), nil
	}

	bits, ok := e.resolveToken(enum, &diags, token, o)
	if !ok {
		e.unresolved(enum, &diags, token, o)
	}

	if err := o.finish(&diags); err != nil {
		return nil, err
	}

	return enum.FromBits(bits), nil
}

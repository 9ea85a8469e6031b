package trans

import (
	"github.com/hashicorp/go-set/v3"

	"erasec/internal/diag"
	"erasec/internal/symbols"
	"erasec/internal/trace"
	"erasec/internal/tree"
	"erasec/internal/types"
)

// Options are the language-level switches of the pass.
type Options struct {
	// AddBridges enables bridge synthesis.
	AddBridges bool
	// AllowEnums drops the name and ordinal parameters of the root enum
	// constructor from argument coercion.
	AllowEnums bool
	// VisibilityBridges forwards public methods inherited from a
	// non-public class into a public subclass.
	VisibilityBridges bool
}

// DefaultOptions enables everything.
func DefaultOptions() Options {
	return Options{AddBridges: true, AllowEnums: true, VisibilityBridges: true}
}

// Env is the context of one class declaration awaiting translation.
type Env struct {
	Class    symbols.SymbolID
	Tree     *tree.Node // the class declaration
	TopLevel *tree.Node // the enclosing unit, may be nil
	Package  string
}

// AccessChecker decides whether an inserted cast may name a type.
type AccessChecker interface {
	IsAccessible(from symbols.SymbolID, typ types.TypeID) bool
}

type classState uint8

const (
	statePending classState = iota
	stateInProgress
	stateDone
)

// Stats counts what the pass produced.
type Stats struct {
	Classes int
	Casts   int
	Bridges int
	Clashes int
}

// Translator erases one program. It owns the class state table and the
// bridge association table, so a Translator must not be shared between
// goroutines.
type Translator struct {
	syms     *symbols.Table
	types    *types.Interner
	maker    *tree.Maker
	reporter diag.Reporter
	access   AccessChecker
	opts     Options

	envs       map[symbols.SymbolID]*Env
	state      map[symbols.SymbolID]classState
	overridden map[symbols.SymbolID]symbols.SymbolID
	clashes    *set.Set[clashKey]

	env    *Env
	tracer trace.Tracer
	span   uint64 // parent trace span of the class being translated
	stats  Stats
}

// New creates a translator. A nil reporter discards diagnostics.
func New(syms *symbols.Table, reporter diag.Reporter, opts Options) *Translator {
	if reporter == nil {
		reporter = diag.NopReporter{}
	}
	return &Translator{
		syms:       syms,
		types:      syms.Types,
		maker:      tree.NewMaker(syms),
		reporter:   reporter,
		access:     syms,
		opts:       opts,
		envs:       make(map[symbols.SymbolID]*Env),
		state:      make(map[symbols.SymbolID]classState),
		overridden: make(map[symbols.SymbolID]symbols.SymbolID),
		clashes:    set.New[clashKey](8),
		tracer:     trace.Nop,
	}
}

// SetAccessChecker replaces the accessibility oracle used by casts.
func (t *Translator) SetAccessChecker(a AccessChecker) {
	if a != nil {
		t.access = a
	}
}

// AddEnv registers a class awaiting translation.
func (t *Translator) AddEnv(env *Env) {
	if env == nil || !env.Class.IsValid() {
		return
	}
	t.envs[env.Class] = env
	if _, ok := t.state[env.Class]; !ok {
		t.state[env.Class] = statePending
	}
}

// AddUnit registers every class declared at the top of unit.
func (t *Translator) AddUnit(unit *tree.Node) {
	d, ok := unit.Data.(*tree.TopLevelData)
	if !ok {
		return
	}
	for _, def := range d.Defs {
		if def.Kind == tree.KindClassDef {
			t.AddEnv(&Env{Class: def.Sym, Tree: def, TopLevel: unit, Package: d.Package})
		}
	}
}

// Overridden returns the method a bridge stands in for.
func (t *Translator) Overridden(bridge symbols.SymbolID) (symbols.SymbolID, bool) {
	m, ok := t.overridden[bridge]
	return m, ok
}

// Translated reports whether class has been translated.
func (t *Translator) Translated(class symbols.SymbolID) bool {
	return t.state[class] == stateDone
}

func (t *Translator) Stats() Stats { return t.stats }

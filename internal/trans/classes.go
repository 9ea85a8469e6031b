package trans

import (
	"context"
	"fmt"
	"strconv"

	"erasec/internal/annot"
	"erasec/internal/symbols"
	"erasec/internal/trace"
	"erasec/internal/tree"
	"erasec/internal/types"
)

// TranslateUnit erases every class declared in unit, superclasses first.
// Classes of the unit that are not registered yet are registered here.
// Cancellation is checked between classes. An *InvariantError aborts the
// unit; diagnostics go to the reporter and do not abort.
func (t *Translator) TranslateUnit(ctx context.Context, unit *tree.Node) (err error) {
	d, ok := unit.Data.(*tree.TopLevelData)
	if !ok {
		return fmt.Errorf("trans: expected a compilation unit, got %s", unit.Kind)
	}
	for _, def := range d.Defs {
		if def.Kind == tree.KindClassDef {
			if _, known := t.envs[def.Sym]; !known && t.state[def.Sym] == statePending {
				t.AddEnv(&Env{Class: def.Sym, Tree: def, TopLevel: unit, Package: d.Package})
			}
		}
	}
	for _, def := range d.Defs {
		if def.Kind != tree.KindClassDef {
			continue
		}
		if err := t.TranslateClass(ctx, def.Sym); err != nil {
			return fmt.Errorf("%s: %w", d.File, err)
		}
	}
	return nil
}

// TranslateClass erases one registered class (and its pending
// superclasses).
func (t *Translator) TranslateClass(ctx context.Context, class symbols.SymbolID) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}
	t.tracer = trace.FromContext(ctx)
	t.span = trace.Parent(ctx)
	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(*InvariantError); ok {
				err = e
				return
			}
			panic(r)
		}
	}()
	t.translateClass(class)
	return nil
}

// translateClass translates class after its superclass chain. Classes
// without an env (library classes) and classes already started are
// skipped.
func (t *Translator) translateClass(class symbols.SymbolID) {
	if t.state[class] != statePending {
		return
	}
	if super := t.syms.Superclass(class); super.IsValid() {
		t.translateClass(super)
	}
	env := t.envs[class]
	if env == nil || t.state[class] != statePending {
		return
	}
	delete(t.envs, class)
	t.state[class] = stateInProgress

	prevEnv, prevSpan := t.env, t.span
	t.env = env
	sp := trace.Begin(t.tracer, trace.ScopeClass, "class:"+t.syms.Name(class), t.span)
	t.span = sp.ID()
	casts, bridges := t.stats.Casts, t.stats.Bridges
	defer func() {
		sp.WithExtra("casts", strconv.Itoa(t.stats.Casts-casts)).
			WithExtra("bridges", strconv.Itoa(t.stats.Bridges-bridges)).
			End("")
		t.env, t.span = prevEnv, prevSpan
	}()

	cls := env.Tree
	if err := annot.Positions(cls, t.syms); err != nil {
		panic(&InvariantError{Kind: InvariantAnnotation, Node: cls.Kind, Span: cls.Span, Err: err})
	}
	if err := annot.Lift(cls, t.syms); err != nil {
		panic(&InvariantError{Kind: InvariantAnnotation, Node: cls.Kind, Span: cls.Span, Err: err})
	}

	d := cls.Data.(*tree.ClassDefData)
	none := rewriteCtx{}
	d.TypeParams = nil
	d.Annotations = t.translateList(d.Annotations, none)
	d.Extends = t.translate(d.Extends, none)
	d.Implements = t.translateList(d.Implements, none)
	d.Defs = t.translateList(d.Defs, none)

	sym := t.syms.Get(class)
	if t.opts.AddBridges && !sym.IsInterface() {
		d.Defs = append(d.Defs, t.addBridges(cls.Span, class)...)
	}
	cls.Type = t.types.Erasure(cls.Type)
	t.state[class] = stateDone
	t.stats.Classes++
}

// nestedClass translates a class declaration met inside another class:
// member, local and anonymous classes.
func (t *Translator) nestedClass(n *tree.Node) *tree.Node {
	if !n.Sym.IsValid() {
		invariant(InvariantMissingSymbol, n, "class declaration")
	}
	if _, ok := t.envs[n.Sym]; !ok && t.state[n.Sym] == statePending {
		env := &Env{Class: n.Sym, Tree: n}
		if t.env != nil {
			env.TopLevel, env.Package = t.env.TopLevel, t.env.Package
		}
		t.AddEnv(env)
	}
	t.translateClass(n.Sym)
	return n
}

// erasure is a shorthand used throughout the rewriter.
func (t *Translator) erasure(id types.TypeID) types.TypeID {
	return t.types.Erasure(id)
}

// erasedSignature is the erasure of a method symbol's type.
func (t *Translator) erasedSignature(method symbols.SymbolID) types.TypeID {
	return t.syms.Erasure(method)
}

package trans_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"erasec/internal/diag"
	"erasec/internal/symbols"
	"erasec/internal/testkit"
	"erasec/internal/trace"
	"erasec/internal/trans"
	"erasec/internal/tree"
	"erasec/internal/types"
)

// generic builds A<T> { T get() { return null; } } and exposes its pieces.
type generic struct {
	b   *testkit.Builder
	a   *testkit.Class
	get *testkit.Method
	tv  types.TypeID
	str types.TypeID
}

func newGeneric() *generic {
	b := testkit.NewBuilder()
	a := b.Class("A", symbols.FlagPublic)
	tv := a.TypeParam("T")
	get := a.Method("get", symbols.FlagPublic, tv)
	get.Body(b.Return(b.Null()))
	return &generic{b: b, a: a, get: get, tv: tv, str: b.Lib("String")}
}

func translate(t *testing.T, b *testkit.Builder, classes ...*testkit.Class) (*tree.Node, *trans.Translator, *diag.Bag) {
	t.Helper()
	bag := diag.NewBag(32)
	tr := trans.New(b.Syms, diag.BagReporter{Bag: bag}, trans.DefaultOptions())
	unit := b.Unit("Test.java", classes...)
	require.NoError(t, tr.TranslateUnit(context.Background(), unit))
	return unit, tr, bag
}

func bridgesOf(b *testkit.Builder, c *testkit.Class) []*tree.Node {
	var out []*tree.Node
	for _, def := range c.Data.Defs {
		if def.Kind == tree.KindMethodDef && b.Syms.Get(def.Sym).Flags.Has(symbols.FlagBridge) {
			out = append(out, def)
		}
	}
	return out
}

func TestCovariantOverrideGetsBridge(t *testing.T) {
	g := newGeneric()
	sub := g.b.Class("B", symbols.FlagPublic).Extends(g.a.Of(g.str))
	impl := sub.Method("get", symbols.FlagPublic, g.str)
	impl.Body(g.b.Return(g.b.Literal(g.str, `"x"`)))

	unit, tr, bag := translate(t, g.b, g.a, sub)
	require.Zero(t, bag.Len())
	require.NoError(t, trans.CheckErased(unit, g.b.Syms))

	bridges := bridgesOf(g.b, sub)
	require.Len(t, bridges, 1)
	bridge := bridges[0]
	assert.Same(t, bridge, sub.Data.Defs[len(sub.Data.Defs)-1], "bridges go after the declared members")

	bs := g.b.Syms.Get(bridge.Sym)
	assert.True(t, bs.Flags.Has(symbols.FlagSynthetic|symbols.FlagBridge|symbols.FlagPublic))
	assert.False(t, bs.Flags.Has(symbols.FlagHypothetical))
	assert.Equal(t, g.b.Builtins().Object, g.b.Types.Result(bs.Type))
	overridden, ok := tr.Overridden(bridge.Sym)
	require.True(t, ok)
	assert.Equal(t, g.get.Sym, overridden)

	// return this.get(); without a cast
	body := bridge.Data.(*tree.MethodDefData).Body.Data.(*tree.BlockData)
	require.Len(t, body.Stats, 1)
	ret := body.Stats[0].Data.(*tree.ReturnData)
	require.Equal(t, tree.KindApply, ret.Expr.Kind)
	call := ret.Expr.Data.(*tree.ApplyData)
	assert.Equal(t, impl.Sym, call.Meth.Sym)
	recv := call.Meth.Data.(*tree.SelectData).Selected
	assert.Equal(t, "this", recv.Data.(*tree.IdentData).Name)
	assert.Equal(t, 1, tr.Stats().Bridges)
	assert.Zero(t, tr.Stats().Casts)
}

func TestGenericClassErasesToBound(t *testing.T) {
	g := newGeneric()
	unit, _, _ := translate(t, g.b, g.a)
	require.NoError(t, trans.CheckErased(unit, g.b.Syms))
	assert.Empty(t, g.a.Data.TypeParams)
	res := g.get.Data.ResType
	assert.Equal(t, tree.KindIdent, res.Kind)
	assert.Equal(t, g.b.Builtins().Object, res.Type)
	assert.Equal(t, g.b.Builtins().Object, g.b.Types.Result(g.get.Node.Type))
}

func TestInheritedMethodGetsOnlyHypotheticalBridge(t *testing.T) {
	g := newGeneric()
	sub := g.b.Class("C", symbols.FlagPublic).Extends(g.a.Of(g.str))

	_, tr, bag := translate(t, g.b, g.a, sub)
	require.Zero(t, bag.Len())
	assert.Empty(t, bridgesOf(g.b, sub))

	var hypothetical []symbols.SymbolID
	for _, m := range g.b.Syms.Get(sub.Sym).Members {
		if g.b.Syms.Get(m).Flags.Has(symbols.FlagHypothetical) {
			hypothetical = append(hypothetical, m)
		}
	}
	require.Len(t, hypothetical, 1)
	overridden, _ := tr.Overridden(hypothetical[0])
	assert.Equal(t, g.get.Sym, overridden)
	assert.Zero(t, tr.Stats().Bridges)
}

func TestSameErasureNeedsNoBridge(t *testing.T) {
	g := newGeneric()
	sub := g.b.Class("D", symbols.FlagPublic)
	u := sub.TypeParam("U")
	sub.Extends(g.a.Of(u))
	sub.Method("get", symbols.FlagPublic, u).Body(g.b.Return(g.b.Null()))

	unit, _, bag := translate(t, g.b, g.a, sub)
	require.Zero(t, bag.Len())
	require.NoError(t, trans.CheckErased(unit, g.b.Syms))
	assert.Empty(t, bridgesOf(g.b, sub))
	for _, m := range g.b.Syms.Get(sub.Sym).Members {
		assert.False(t, g.b.Syms.Get(m).IsSynthetic())
	}
}

func TestCallResultIsCastBack(t *testing.T) {
	g := newGeneric()
	user := g.b.Class("User", symbols.FlagPublic)
	use := user.Method("use", symbols.FlagPublic, g.str, g.a.Of(g.str))
	ret := g.b.Return(g.b.Call(use.Param(0), g.get.Sym, g.str))
	use.Body(ret)

	unit, tr, _ := translate(t, g.b, g.a, user)
	require.NoError(t, trans.CheckErased(unit, g.b.Syms))
	expr := ret.Data.(*tree.ReturnData).Expr
	require.Equal(t, tree.KindTypeCast, expr.Kind)
	assert.Equal(t, g.str, expr.Type)
	inner := expr.Data.(*tree.TypeCastData).Expr
	assert.Equal(t, tree.KindApply, inner.Kind)
	assert.Equal(t, g.b.Builtins().Object, inner.Type)
	assert.Equal(t, 1, tr.Stats().Casts)
}

func TestUnconstrainedCallIsNotCast(t *testing.T) {
	g := newGeneric()
	user := g.b.Class("User", symbols.FlagPublic)
	use := user.Method("use", symbols.FlagPublic, g.b.Builtins().Void, g.a.Of(g.str))
	exec := g.b.Exec(g.b.Call(use.Param(0), g.get.Sym, g.str))
	use.Body(exec)

	translate(t, g.b, g.a, user)
	expr := exec.Data.(*tree.ExecData).Expr
	assert.Equal(t, tree.KindApply, expr.Kind)
	assert.Equal(t, g.b.Builtins().Object, expr.Type)
}

func TestFieldReadThroughTypeVariable(t *testing.T) {
	b := testkit.NewBuilder()
	str := b.Lib("String")
	cell := b.Class("Cell", symbols.FlagPublic)
	tv := cell.TypeParam("A")
	value := cell.Field("value", symbols.FlagPublic, tv, nil)

	user := b.Class("User", symbols.FlagPublic)
	m := user.Method("read", symbols.FlagPublic, b.Builtins().Void, cell.Of(str))
	local := m.Local("x", str, nil, b.Select(m.Param(0), value, str))
	m.Body(local)

	unit, _, _ := translate(t, b, cell, user)
	require.NoError(t, trans.CheckErased(unit, b.Syms))
	init := local.Data.(*tree.VarDefData).Init
	require.Equal(t, tree.KindTypeCast, init.Kind)
	assert.Equal(t, str, init.Type)
	assert.Equal(t, b.Builtins().Object, init.Data.(*tree.TypeCastData).Expr.Type)
}

func TestLocalTypeVariableTreeIsReplaced(t *testing.T) {
	b := testkit.NewBuilder()
	c := b.Class("Util", symbols.FlagPublic)
	var local *tree.Node
	m := c.GenericMethod("id", symbols.FlagPublic|symbols.FlagStatic, []string{"T"}, func(tvs []types.TypeID) (types.TypeID, []types.TypeID) {
		return tvs[0], []types.TypeID{tvs[0]}
	})
	tv := b.Syms.Get(m.Params[0]).Type
	local = m.Local("y", tv, nil, m.Param(0))
	m.Body(local)

	unit, _, _ := translate(t, b, c)
	require.NoError(t, trans.CheckErased(unit, b.Syms))
	vt := local.Data.(*tree.VarDefData).VarType
	assert.Equal(t, b.Builtins().Object, vt.Type)
	assert.Empty(t, m.Data.TypeParams)
}

func TestIntersectionReceiverIsCastToOwner(t *testing.T) {
	b := testkit.NewBuilder()
	number := b.Lib("Number")
	cmp := b.Class("Comparable", symbols.FlagPublic|symbols.FlagInterface)
	ct := cmp.TypeParam("C")
	compareTo := cmp.Method("compareTo", 0, b.Builtins().Int, ct)

	c := b.Class("Sorter", symbols.FlagPublic)
	tv := c.TypeParam("T", number, cmp.Raw())
	m := c.Method("compare", symbols.FlagPublic, b.Builtins().Int, tv, tv)
	call := b.Call(m.Param(0), compareTo.Sym, b.Builtins().Int, m.Param(1))
	m.Body(b.Return(call))

	unit, _, _ := translate(t, b, cmp, c)
	require.NoError(t, trans.CheckErased(unit, b.Syms))
	sel := call.Data.(*tree.ApplyData).Meth.Data.(*tree.SelectData)
	require.Equal(t, tree.KindTypeCast, sel.Selected.Kind)
	assert.Equal(t, cmp.Raw(), sel.Selected.Type)
}

func TestEnumSwitchKeepsSelector(t *testing.T) {
	b := testkit.NewBuilder()
	color := b.Class("Color", symbols.FlagPublic|symbols.FlagFinal|symbols.FlagEnum)
	enumDecl := b.Syms.Get(b.Syms.Enum()).Class
	color.Extends(b.Types.ClassType(enumDecl, color.Type()))

	c := b.Class("Paint", symbols.FlagPublic)
	m := c.Method("mix", symbols.FlagPublic, b.Builtins().Void, color.Type())
	sw := b.Switch(m.Param(0))
	m.Body(sw)

	translate(t, b, color, c)
	sel := sw.Data.(*tree.SwitchData).Selector
	assert.Equal(t, tree.KindIdent, sel.Kind)
	assert.Equal(t, color.Type(), sel.Type)
}

func TestSameErasureClashReportedOnce(t *testing.T) {
	b := testkit.NewBuilder()
	str, integer := b.Lib("String"), b.Lib("Integer")
	list := b.Class("List", symbols.FlagPublic|symbols.FlagInterface)
	list.TypeParam("E")
	k := b.Class("K", symbols.FlagPublic)
	m1 := k.Method("m", symbols.FlagPublic, b.Builtins().Void, list.Of(str))
	m2 := k.Method("m", symbols.FlagPublic, b.Builtins().Void, list.Of(integer))

	_, tr, bag := translate(t, b, list, k)
	require.Equal(t, 1, bag.Len())
	d := bag.Items()[0]
	assert.Equal(t, diag.TransNameClashSameErasure, d.Code)
	assert.Equal(t, diag.SevError, d.Severity)
	assert.Contains(t, d.Message, "m(List<String>)")
	assert.Equal(t, 1, tr.Stats().Clashes)

	members := b.Syms.Get(k.Sym).Members
	assert.Contains(t, members, m1.Sym)
	assert.Contains(t, members, m2.Sym)
}

func TestAccidentalBinaryOverrideIsReported(t *testing.T) {
	g := newGeneric()
	obj := g.b.Builtins().Object
	g.a.Method("set", symbols.FlagPublic, g.b.Builtins().Void, g.tv)
	sub := g.b.Class("B", symbols.FlagPublic).Extends(g.a.Of(g.str))
	sub.Method("set", symbols.FlagPublic, g.b.Builtins().Void, obj)

	_, _, bag := translate(t, g.b, g.a, sub)
	var clashes []diag.Diagnostic
	for _, d := range bag.Items() {
		if d.Code == diag.TransNameClashNoOverride {
			clashes = append(clashes, d)
		}
	}
	require.Len(t, clashes, 1)
	assert.Contains(t, clashes[0].Message, "set(Object) in B")
	assert.Contains(t, clashes[0].Message, "set(T) in A<String>")
}

func TestSuperclassTranslatedFirst(t *testing.T) {
	g := newGeneric()
	sub := g.b.Class("B", symbols.FlagPublic).Extends(g.a.Of(g.str))
	sub.Method("get", symbols.FlagPublic, g.str).Body(g.b.Return(g.b.Literal(g.str, `"x"`)))

	tr := trans.New(g.b.Syms, nil, trans.DefaultOptions())
	first := g.b.Unit("B.java", sub)
	second := g.b.Unit("A.java", g.a)
	tr.AddUnit(first)
	tr.AddUnit(second)
	require.NoError(t, tr.TranslateUnit(context.Background(), first))
	assert.True(t, tr.Translated(g.a.Sym))
	assert.True(t, tr.Translated(sub.Sym))
	require.NoError(t, tr.TranslateUnit(context.Background(), second))
	assert.Equal(t, 2, tr.Stats().Classes)
}

func TestNoBridgesWhenDisabled(t *testing.T) {
	g := newGeneric()
	sub := g.b.Class("B", symbols.FlagPublic).Extends(g.a.Of(g.str))
	sub.Method("get", symbols.FlagPublic, g.str).Body(g.b.Return(g.b.Literal(g.str, `"x"`)))

	opts := trans.DefaultOptions()
	opts.AddBridges = false
	tr := trans.New(g.b.Syms, nil, opts)
	require.NoError(t, tr.TranslateUnit(context.Background(), g.b.Unit("T.java", g.a, sub)))
	assert.Empty(t, bridgesOf(g.b, sub))
}

func TestVisibilityBridge(t *testing.T) {
	b := testkit.NewBuilder()
	base := b.Class("Base", 0)
	run := base.Method("run", symbols.FlagPublic, b.Builtins().Void)
	pub := b.Class("Pub", symbols.FlagPublic)
	pub.Extends(base.Type())

	_, _, _ = translate(t, b, base, pub)
	bridges := bridgesOf(b, pub)
	require.Len(t, bridges, 1)
	body := bridges[0].Data.(*tree.MethodDefData).Body.Data.(*tree.BlockData)
	exec := body.Stats[0].Data.(*tree.ExecData)
	sel := exec.Expr.Data.(*tree.ApplyData).Meth.Data.(*tree.SelectData)
	assert.Equal(t, "super", sel.Selected.Data.(*tree.IdentData).Name)
	assert.Equal(t, run.Sym, exec.Expr.Data.(*tree.ApplyData).Meth.Sym)
}

func TestInaccessibleCastIsReported(t *testing.T) {
	b := testkit.NewBuilder()
	g := b.Class("G", symbols.FlagPublic)
	tv := g.TypeParam("T")
	get := g.Method("get", symbols.FlagPublic, tv)
	get.Body(b.Return(b.Null()))
	hidden := b.Nested(g, "Hidden", symbols.FlagPrivate)

	b.Pkg = "q"
	user := b.Class("User", symbols.FlagPublic)
	use := user.Method("use", symbols.FlagPublic, b.Builtins().Void, g.Of(hidden.Type()))
	use.Body(use.Local("h", hidden.Type(), nil, b.Call(use.Param(0), get.Sym, hidden.Type())))

	_, _, bag := translate(t, b, g, user)
	var codes []diag.Code
	for _, d := range bag.Items() {
		codes = append(codes, d.Code)
	}
	assert.Contains(t, codes, diag.TransCastNotAccessible)
}

func TestInvariantErrorAbortsUnit(t *testing.T) {
	b := testkit.NewBuilder()
	c := b.Class("Bad", symbols.FlagPublic)
	m := c.Method("run", symbols.FlagPublic, b.Builtins().Void)
	// a call whose method was never attributed
	m.Body(b.Exec(b.Call(nil, symbols.NoSymbolID, b.Builtins().Void)))

	tr := trans.New(b.Syms, nil, trans.DefaultOptions())
	err := tr.TranslateUnit(context.Background(), b.Unit("Bad.java", c))
	var ie *trans.InvariantError
	require.ErrorAs(t, err, &ie)
	assert.Equal(t, trans.InvariantMissingSymbol, ie.Kind)
	assert.False(t, tr.Translated(c.Sym))
}

func TestCancelledContextStopsBeforeClasses(t *testing.T) {
	g := newGeneric()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	tr := trans.New(g.b.Syms, nil, trans.DefaultOptions())
	err := tr.TranslateUnit(ctx, g.b.Unit("A.java", g.a))
	assert.True(t, errors.Is(err, context.Canceled))
	assert.False(t, tr.Translated(g.a.Sym))
}

func TestTraceRecordsClassesAndBridges(t *testing.T) {
	g := newGeneric()
	sub := g.b.Class("B", symbols.FlagPublic).Extends(g.a.Of(g.str))
	sub.Method("get", symbols.FlagPublic, g.str).Body(g.b.Return(g.b.Literal(g.str, `"x"`)))

	rec := trace.NewRecorder(64, trace.LevelDebug)
	ctx := trace.WithTracer(context.Background(), rec)
	tr := trans.New(g.b.Syms, nil, trans.DefaultOptions())
	require.NoError(t, tr.TranslateUnit(ctx, g.b.Unit("T.java", g.a, sub)))

	var names []string
	for _, ev := range rec.Events() {
		if ev.Kind == trace.KindSpanEnd || ev.Kind == trace.KindBridge {
			names = append(names, ev.Name)
		}
		if ev.Kind == trace.KindSpanEnd && ev.Name == "class:B" {
			assert.Equal(t, "1", ev.Extra["bridges"])
		}
	}
	assert.Equal(t, []string{"class:A", "bridge:get", "class:B"}, names)

	bridges := rec.Of(trace.KindBridge)
	require.Len(t, bridges, 1)
	assert.Equal(t, "B", bridges[0].Class)
	assert.Equal(t, "get()", bridges[0].Method)
	assert.Equal(t, "A.get", bridges[0].Target)
	assert.False(t, bridges[0].Hypothetical)
}

func TestVarargsArgumentsCoercedToElement(t *testing.T) {
	g := newGeneric()
	user := g.b.Class("User", symbols.FlagPublic)
	join := user.Method("join", symbols.FlagPublic|symbols.FlagStatic|symbols.FlagVarargs, g.b.Builtins().Void, g.b.Array(g.str))
	use := user.Method("use", symbols.FlagPublic, g.b.Builtins().Void, g.a.Of(g.str))
	call := g.b.Call(nil, join.Sym, g.b.Builtins().Void,
		g.b.Call(use.Param(0), g.get.Sym, g.str),
		g.b.Literal(g.str, `"x"`))
	call.Data.(*tree.ApplyData).VarargsElement = g.str
	use.Body(g.b.Exec(call))

	unit, tr, _ := translate(t, g.b, g.a, user)
	require.NoError(t, trans.CheckErased(unit, g.b.Syms))
	d := call.Data.(*tree.ApplyData)
	assert.Equal(t, g.str, d.VarargsElement)
	require.Len(t, d.Args, 2)
	require.Equal(t, tree.KindTypeCast, d.Args[0].Kind)
	assert.Equal(t, g.str, d.Args[0].Type)
	assert.Equal(t, tree.KindLiteral, d.Args[1].Kind)
	assert.Equal(t, 1, tr.Stats().Casts)
}

func TestForeachKeepsIterableTypeWithoutElement(t *testing.T) {
	b := testkit.NewBuilder()
	str := b.Lib("String")
	bag := b.Class("Bag", symbols.FlagPublic|symbols.FlagInterface)
	bag.TypeParam("E")
	walker := b.Class("Walker", symbols.FlagPublic)
	tv := walker.TypeParam("T")
	m := walker.Method("walk", symbols.FlagPublic, b.Builtins().Void, bag.Of(str), b.Array(tv))
	overBag := b.Foreach(m.Local("s", str, nil, nil), m.Param(0), b.Block())
	overArray := b.Foreach(m.Local("x", tv, nil, nil), m.Param(1), b.Block())
	m.Body(overBag, overArray)

	unit, _, _ := translate(t, b, bag, walker)
	require.NoError(t, trans.CheckErased(unit, b.Syms))
	// Bag has no element type after erasure
	assert.Equal(t, bag.Of(str), overBag.Data.(*tree.ForeachLoopData).Expr.Type)
	assert.Equal(t, b.Array(b.Builtins().Object), overArray.Data.(*tree.ForeachLoopData).Expr.Type)
}

func TestEnumSuperCallSkipsNameAndOrdinal(t *testing.T) {
	build := func() (*testkit.Builder, *testkit.Class) {
		b := testkit.NewBuilder()
		enum := b.Syms.Get(b.Syms.Enum())
		ctorType := b.Types.MethodType([]types.TypeID{b.Lib("String"), b.Builtins().Int}, b.Builtins().Void, nil, nil)
		ctor := b.Syms.NewMethod("<init>", symbols.FlagConstructor, b.Syms.Enum(), ctorType, b.Span())
		color := b.Class("Color", symbols.FlagPublic|symbols.FlagFinal|symbols.FlagEnum)
		color.Extends(b.Types.ClassType(enum.Class, color.Type()))
		color.Constructor(symbols.FlagPrivate).Body(b.Exec(b.Call(nil, ctor, b.Builtins().Void)))
		return b, color
	}

	b, color := build()
	tr := trans.New(b.Syms, nil, trans.DefaultOptions())
	require.NoError(t, tr.TranslateUnit(context.Background(), b.Unit("Color.java", color)))

	b, color = build()
	opts := trans.DefaultOptions()
	opts.AllowEnums = false
	tr = trans.New(b.Syms, nil, opts)
	err := tr.TranslateUnit(context.Background(), b.Unit("Color.java", color))
	var ie *trans.InvariantError
	require.ErrorAs(t, err, &ie)
	assert.Equal(t, trans.InvariantArity, ie.Kind)
}

func TestBridgeArgumentIsCastToImplementationParam(t *testing.T) {
	b := testkit.NewBuilder()
	str, integer := b.Lib("String"), b.Builtins().Int
	cmp := b.Class("Cmp", symbols.FlagPublic|symbols.FlagInterface)
	ct := cmp.TypeParam("T")
	cmp.Method("compareTo", 0, integer, ct)
	s := b.Class("S", symbols.FlagPublic).Extends(types.NoTypeID, cmp.Of(str))
	impl := s.Method("compareTo", symbols.FlagPublic, integer, str)
	impl.Body(b.Return(b.Literal(integer, "0")))

	unit, _, bag := translate(t, b, cmp, s)
	require.Zero(t, bag.Len())
	require.NoError(t, trans.CheckErased(unit, b.Syms))

	bridges := bridgesOf(b, s)
	require.Len(t, bridges, 1)
	bs := b.Syms.Get(bridges[0].Sym)
	assert.Equal(t, []types.TypeID{b.Builtins().Object}, b.Types.Params(bs.Type))

	// return this.compareTo((String) p0);
	body := bridges[0].Data.(*tree.MethodDefData).Body.Data.(*tree.BlockData)
	require.Len(t, body.Stats, 1)
	call := body.Stats[0].Data.(*tree.ReturnData).Expr.Data.(*tree.ApplyData)
	assert.Equal(t, impl.Sym, call.Meth.Sym)
	require.Len(t, call.Args, 1)
	arg := call.Args[0]
	require.Equal(t, tree.KindTypeCast, arg.Kind)
	assert.Equal(t, str, arg.Type)
	assert.Equal(t, b.Builtins().Object, arg.Data.(*tree.TypeCastData).Expr.Type)
}

func TestSecondMethodOnSyntheticBridgeClashes(t *testing.T) {
	b := testkit.NewBuilder()
	str, integer := b.Lib("String"), b.Lib("Integer")
	void := b.Builtins().Void
	i := b.Class("I", symbols.FlagPublic|symbols.FlagInterface)
	i.Method("m", 0, void, i.TypeParam("T"))
	k := b.Class("K", symbols.FlagPublic|symbols.FlagInterface)
	k.Method("m", 0, void, k.TypeParam("U"))
	s := b.Class("S", symbols.FlagPublic).Extends(types.NoTypeID, i.Of(str), k.Of(integer))
	s.Method("m", symbols.FlagPublic, void, str)
	s.Method("m", symbols.FlagPublic, void, integer)

	rec := trace.NewRecorder(64, trace.LevelDebug)
	bag := diag.NewBag(32)
	tr := trans.New(b.Syms, diag.BagReporter{Bag: bag}, trans.DefaultOptions())
	ctx := trace.WithTracer(context.Background(), rec)
	require.NoError(t, tr.TranslateUnit(ctx, b.Unit("S.java", i, k, s)))

	// m(Object) bridges to m(String); K.m lands on the same bridge
	require.Len(t, bridgesOf(b, s), 1)
	require.Equal(t, 1, bag.Len())
	d := bag.Items()[0]
	assert.Equal(t, diag.TransNameClashNoOverride, d.Code)
	assert.Contains(t, d.Message, "m(T) in I<String>")
	assert.Contains(t, d.Message, "m(U) in K<Integer>")

	clashes := rec.Of(trace.KindClash)
	require.Len(t, clashes, 1)
	assert.Equal(t, diag.TransNameClashNoOverride.ID(), clashes[0].Code)
	assert.Equal(t, "S", clashes[0].Class)
	assert.Equal(t, "m(T)", clashes[0].Method)
	assert.Equal(t, "m(U)", clashes[0].Target)
}

func TestCheckErasedRejectsUntranslatedTree(t *testing.T) {
	g := newGeneric()
	err := trans.CheckErased(g.b.Unit("A.java", g.a), g.b.Syms)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "class A keeps type parameters")
	assert.Error(t, trans.CheckErased(nil, g.b.Syms))
}

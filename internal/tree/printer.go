package tree

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"

	"erasec/internal/symbols"
	"erasec/internal/types"
)

// PrintOptions configures tree dumping.
type PrintOptions struct {
	// ShowTypes appends the recorded type of declarations as an aligned
	// trailing comment.
	ShowTypes bool
}

// Printer renders trees as source-like text.
type Printer struct {
	syms   *symbols.Table
	opts   PrintOptions
	indent int
	lines  []printedLine
}

type printedLine struct {
	text string
	note string
}

// Print writes n to w.
func Print(w io.Writer, n *Node, syms *symbols.Table, opts PrintOptions) error {
	p := &Printer{syms: syms, opts: opts}
	p.stat(n)
	return p.flush(w)
}

// String renders a single expression or type tree.
func String(n *Node, syms *symbols.Table) string {
	p := &Printer{syms: syms}
	return p.expr(n)
}

func (p *Printer) line(text, note string) {
	p.lines = append(p.lines, printedLine{text: strings.Repeat("    ", p.indent) + text, note: note})
}

func (p *Printer) flush(w io.Writer) error {
	width := 0
	for _, l := range p.lines {
		if l.note != "" {
			width = max(width, runewidth.StringWidth(l.text))
		}
	}
	for _, l := range p.lines {
		text := l.text
		if l.note != "" && p.opts.ShowTypes {
			text = runewidth.FillRight(text, width) + "  // " + l.note
		}
		if _, err := fmt.Fprintln(w, text); err != nil {
			return err
		}
	}
	return nil
}

func (p *Printer) typeNote(t types.TypeID) string {
	if t == types.NoTypeID {
		return ""
	}
	return types.Label(p.syms.Types, t)
}

func (p *Printer) modifiers(sym symbols.SymbolID) string {
	s := p.syms.Get(sym)
	if s == nil || s.Flags == 0 {
		return ""
	}
	var out []string
	for _, label := range s.Flags.Strings() {
		switch label {
		case "synthetic", "bridge", "hypothetical", "varargs", "constructor", "enum":
			out = append(out, "/*"+label+"*/")
		case "interface":
		default:
			out = append(out, label)
		}
	}
	if len(out) == 0 {
		return ""
	}
	return strings.Join(out, " ") + " "
}

func (p *Printer) block(n *Node) {
	if n == nil {
		return
	}
	d, ok := n.Data.(*BlockData)
	if !ok {
		p.indent++
		p.stat(n)
		p.indent--
		return
	}
	p.indent++
	for _, s := range d.Stats {
		p.stat(s)
	}
	p.indent--
}

func (p *Printer) stat(n *Node) {
	if n == nil {
		return
	}
	switch d := n.Data.(type) {
	case *TopLevelData:
		if d.Package != "" {
			p.line("package "+d.Package+";", "")
		}
		for _, def := range d.Defs {
			p.stat(def)
		}
	case *ClassDefData:
		head := p.annotations(d.Annotations) + p.modifiers(n.Sym)
		if s := p.syms.Get(n.Sym); s != nil && s.IsInterface() {
			head += "interface "
		} else {
			head += "class "
		}
		head += d.Name + p.typeParams(d.TypeParams)
		if d.Extends != nil {
			head += " extends " + p.expr(d.Extends)
		}
		if len(d.Implements) > 0 {
			head += " implements " + p.exprs(d.Implements)
		}
		p.line(head+" {", "")
		p.indent++
		for _, def := range d.Defs {
			p.stat(def)
		}
		p.indent--
		p.line("}", "")
	case *MethodDefData:
		head := p.annotations(d.Annotations) + p.modifiers(n.Sym) + p.typeParams(d.TypeParams)
		if len(d.TypeParams) > 0 {
			head += " "
		}
		if d.ResType != nil {
			head += p.expr(d.ResType) + " "
		}
		params := make([]string, 0, len(d.Params)+1)
		if d.Receiver != nil {
			params = append(params, p.varDecl(d.Receiver))
		}
		for _, prm := range d.Params {
			params = append(params, p.varDecl(prm))
		}
		head += d.Name + "(" + strings.Join(params, ", ") + ")"
		if len(d.Thrown) > 0 {
			head += " throws " + p.exprs(d.Thrown)
		}
		if d.Body == nil {
			p.line(head+";", p.typeNote(n.Type))
			return
		}
		p.line(head+" {", p.typeNote(n.Type))
		p.block(d.Body)
		p.line("}", "")
	case *VarDefData:
		p.line(p.varDecl(n)+";", p.typeNote(n.Type))
	case *BlockData:
		prefix := ""
		if d.Static {
			prefix = "static "
		}
		p.line(prefix+"{", "")
		p.block(n)
		p.line("}", "")
	case *DoLoopData:
		p.line("do {", "")
		p.block(d.Body)
		p.line("} while ("+p.expr(d.Cond)+");", "")
	case *WhileLoopData:
		p.line("while ("+p.expr(d.Cond)+") {", "")
		p.block(d.Body)
		p.line("}", "")
	case *ForLoopData:
		init := make([]string, len(d.Init))
		for i, s := range d.Init {
			init[i] = p.inlineStat(s)
		}
		step := make([]string, len(d.Step))
		for i, s := range d.Step {
			step[i] = p.inlineStat(s)
		}
		cond := ""
		if d.Cond != nil {
			cond = p.expr(d.Cond)
		}
		p.line("for ("+strings.Join(init, ", ")+"; "+cond+"; "+strings.Join(step, ", ")+") {", "")
		p.block(d.Body)
		p.line("}", "")
	case *ForeachLoopData:
		p.line("for ("+p.varDecl(d.Var)+" : "+p.expr(d.Expr)+") {", p.typeNote(d.Expr.Type))
		p.block(d.Body)
		p.line("}", "")
	case *LabelledData:
		p.line(d.Label+":", "")
		p.stat(d.Body)
	case *SwitchData:
		p.line("switch ("+p.expr(d.Selector)+") {", p.typeNote(d.Selector.Type))
		for _, c := range d.Cases {
			p.stat(c)
		}
		p.line("}", "")
	case *CaseData:
		if d.Pat == nil {
			p.line("default:", "")
		} else {
			p.line("case "+p.expr(d.Pat)+":", "")
		}
		p.indent++
		for _, s := range d.Stats {
			p.stat(s)
		}
		p.indent--
	case *SynchronizedData:
		p.line("synchronized ("+p.expr(d.Lock)+") {", "")
		p.block(d.Body)
		p.line("}", "")
	case *TryData:
		p.line("try {", "")
		p.block(d.Body)
		for _, c := range d.Catches {
			cd := c.Data.(*CatchData)
			p.line("} catch ("+p.varDecl(cd.Param)+") {", "")
			p.block(cd.Body)
		}
		if d.Finally != nil {
			p.line("} finally {", "")
			p.block(d.Finally)
		}
		p.line("}", "")
	case *IfData:
		p.line("if ("+p.expr(d.Cond)+") {", "")
		p.block(d.Then)
		if d.Else != nil {
			p.line("} else {", "")
			p.block(d.Else)
		}
		p.line("}", "")
	case *ExecData:
		p.line(p.expr(d.Expr)+";", "")
	case *JumpData:
		word := "break"
		if n.Kind == KindContinue {
			word = "continue"
		}
		if d.Label != "" {
			word += " " + d.Label
		}
		p.line(word+";", "")
	case *ReturnData:
		if d.Expr == nil {
			p.line("return;", "")
		} else {
			p.line("return "+p.expr(d.Expr)+";", p.typeNote(d.Expr.Type))
		}
	case *ThrowData:
		p.line("throw "+p.expr(d.Expr)+";", "")
	case *AssertData:
		text := "assert " + p.expr(d.Cond)
		if d.Detail != nil {
			text += " : " + p.expr(d.Detail)
		}
		p.line(text+";", "")
	default:
		if n.Kind == KindSkip {
			p.line(";", "")
			return
		}
		p.line(p.expr(n)+";", "")
	}
}

func (p *Printer) inlineStat(n *Node) string {
	switch d := n.Data.(type) {
	case *ExecData:
		return p.expr(d.Expr)
	case *VarDefData:
		return p.varDecl(n)
	default:
		return p.expr(n)
	}
}

func (p *Printer) varDecl(n *Node) string {
	d, ok := n.Data.(*VarDefData)
	if !ok {
		return p.expr(n)
	}
	text := p.annotations(d.Annotations)
	if d.VarType != nil {
		text += p.expr(d.VarType) + " "
	}
	text += d.Name
	if d.Init != nil {
		text += " = " + p.expr(d.Init)
	}
	return text
}

func (p *Printer) typeParams(params []*Node) string {
	if len(params) == 0 {
		return ""
	}
	return "<" + p.exprs(params) + ">"
}

func (p *Printer) annotations(anns []*Node) string {
	if len(anns) == 0 {
		return ""
	}
	parts := make([]string, len(anns))
	for i, a := range anns {
		parts[i] = p.expr(a)
	}
	return strings.Join(parts, " ") + " "
}

func (p *Printer) exprs(nodes []*Node) string {
	parts := make([]string, len(nodes))
	for i, n := range nodes {
		parts[i] = p.expr(n)
	}
	return strings.Join(parts, ", ")
}

func (p *Printer) expr(n *Node) string {
	if n == nil {
		return ""
	}
	switch d := n.Data.(type) {
	case *ConditionalData:
		return p.expr(d.Cond) + " ? " + p.expr(d.Then) + " : " + p.expr(d.Else)
	case *ApplyData:
		targs := ""
		if len(d.TypeArgs) > 0 {
			targs = "<" + p.exprs(d.TypeArgs) + ">"
		}
		return targs + p.expr(d.Meth) + "(" + p.exprs(d.Args) + ")"
	case *NewClassData:
		text := ""
		if d.Encl != nil {
			text = p.expr(d.Encl) + "."
		}
		text += "new " + p.expr(d.Clazz) + "(" + p.exprs(d.Args) + ")"
		if d.Def != nil {
			text += " { ... }"
		}
		return text
	case *NewArrayData:
		if d.ElemType == nil {
			return "{" + p.exprs(d.Elems) + "}"
		}
		text := "new " + p.annotations(d.Annotations) + p.expr(d.ElemType)
		for i, dim := range d.Dims {
			if i < len(d.DimAnnotations) && len(d.DimAnnotations[i]) > 0 {
				text += " " + strings.TrimSpace(p.annotations(d.DimAnnotations[i]))
			}
			text += "[" + p.expr(dim) + "]"
		}
		if len(d.Elems) > 0 || len(d.Dims) == 0 {
			text += "[]{" + p.exprs(d.Elems) + "}"
		}
		return text
	case *ParensData:
		return "(" + p.expr(d.Expr) + ")"
	case *AssignData:
		return p.expr(d.LHS) + " = " + p.expr(d.RHS)
	case *OperatorData:
		switch n.Kind {
		case KindUnary:
			if strings.HasPrefix(d.Op, "post") {
				return p.expr(d.LHS) + strings.TrimPrefix(d.Op, "post")
			}
			return d.Op + p.expr(d.LHS)
		case KindAssignOp:
			return p.expr(d.LHS) + " " + d.Op + "= " + p.expr(d.RHS)
		default:
			return p.expr(d.LHS) + " " + d.Op + " " + p.expr(d.RHS)
		}
	case *TypeCastData:
		return "(" + p.expr(d.Clazz) + ")" + p.expr(d.Expr)
	case *TypeTestData:
		return p.expr(d.Expr) + " instanceof " + p.expr(d.Clazz)
	case *IndexedData:
		return p.expr(d.Indexed) + "[" + p.expr(d.Index) + "]"
	case *SelectData:
		return p.expr(d.Selected) + "." + d.Name
	case *IdentData:
		return d.Name
	case *LiteralData:
		return d.Value
	case *PrimitiveTypeData:
		return p.syms.Types.KindOf(n.Type).String()
	case *TypeArrayData:
		return p.expr(d.Elem) + "[]"
	case *TypeApplyData:
		return p.expr(d.Clazz) + "<" + p.exprs(d.Args) + ">"
	case *WildcardData:
		switch d.Bound {
		case types.BoundExtends:
			return "? extends " + p.expr(d.Inner)
		case types.BoundSuper:
			return "? super " + p.expr(d.Inner)
		default:
			return "?"
		}
	case *AnnotatedTypeData:
		return p.annotations(d.Annotations) + p.expr(d.Underlying)
	case *AnnotationData:
		text := "@" + p.expr(d.AnnotationType)
		if len(d.Args) > 0 {
			text += "(" + p.exprs(d.Args) + ")"
		}
		return text
	case *TypeParameterData:
		text := p.annotations(d.Annotations) + d.Name
		if len(d.Bounds) > 0 {
			parts := make([]string, len(d.Bounds))
			for i, b := range d.Bounds {
				parts[i] = p.expr(b)
			}
			text += " extends " + strings.Join(parts, " & ")
		}
		return text
	case *VarDefData:
		return p.varDecl(n)
	default:
		return fmt.Sprintf("<%s>", n.Kind)
	}
}

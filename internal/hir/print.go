package hir

import (
	"fmt"
	"io"
	"strings"

	"sable/internal/ast"
	"sable/internal/source"
)

// Printer dumps a lowered unit to text for inspection and golden tests.
type Printer struct {
	w        io.Writer
	interner *source.Interner
	indent   int
	bol      bool
}

// NewPrinter creates a printer writing to w.
func NewPrinter(w io.Writer, interner *source.Interner) *Printer {
	return &Printer{w: w, interner: interner, bol: true}
}

// Dump writes the lowered unit to the writer.
func Dump(w io.Writer, u *Unit, interner *source.Interner) error {
	return NewPrinter(w, interner).PrintUnit(u)
}

// PrintUnit prints a complete unit.
func (p *Printer) PrintUnit(u *Unit) error {
	p.printf("unit %s\n", u.Name)
	for _, node := range u.ItemNodes {
		p.printItem(u, u.Items[node])
	}
	if len(u.BodyIDs) > 0 {
		p.printf("\nbodies:\n")
		for _, id := range u.BodyIDs {
			p.printBody(id, u.Bodies[id])
		}
	}
	return nil
}

func (p *Printer) printItem(u *Unit, it *Item) {
	if it == nil {
		return
	}
	p.printf("\n%s %s %s [%s]\n", strings.ToLower(it.Kind.String()), p.name(it.Name), it.ID, it.Node)
	p.indent++
	switch data := it.Data.(type) {
	case *FnData:
		p.printGenerics(&data.Generics)
		p.printDecl(data.Decl)
		p.printf("body %s\n", data.Body)
	case *ConstData:
		p.printf("ty %s\n", p.tyStr(data.Ty))
		p.printf("body %s\n", data.Body)
	case *StaticData:
		p.printf("ty %s mut=%v\n", p.tyStr(data.Ty), data.Mut)
		p.printf("body %s\n", data.Body)
	case *AliasData:
		p.printGenerics(&data.Generics)
		p.printf("ty %s\n", p.tyStr(data.Ty))
	case *StructData:
		p.printGenerics(&data.Generics)
		p.printVariantData(&data.Variant)
	case *EnumData:
		p.printGenerics(&data.Generics)
		for i := range data.Variants {
			v := &data.Variants[i]
			p.printf("variant %s\n", p.name(v.Name))
			p.indent++
			p.printVariantData(&v.Data)
			if v.Disr.IsValid() {
				p.printf("disr %s\n", v.Disr)
			}
			p.indent--
		}
	case *UnionData:
		p.printGenerics(&data.Generics)
		p.printVariantData(&data.Variant)
	case *TraitData:
		p.printGenerics(&data.Generics)
		for _, ref := range data.Refs {
			ti := u.TraitItems[ref.ID]
			if ti == nil {
				continue
			}
			p.printf("trait-item %s %s default=%v\n", p.name(ref.Name), ref.ID, ref.HasDefault)
		}
	case *ImplData:
		p.printGenerics(&data.Generics)
		if data.Trait != nil {
			p.printf("trait %s\n", p.pathStr(data.Trait.Path))
		}
		p.printf("self %s\n", p.tyStr(data.SelfTy))
		for _, ref := range data.Refs {
			p.printf("impl-item %s %s\n", p.name(ref.Name), ref.ID)
		}
	case *AutoImplData:
		p.printf("trait %s\n", p.pathStr(data.Trait.Path))
	case *ModData:
		for _, n := range data.Mod.ItemNodes {
			p.printItem(u, u.Items[n])
		}
	case *ImportData:
		p.printf("%s %s", strings.ToLower(data.Kind.String()), p.pathStr(data.Path))
		if data.Alias != 0 {
			p.printf(" as %s", p.name(data.Alias))
		}
		p.printf("\n")
	}
	p.indent--
}

func (p *Printer) printBody(id BodyID, b *Body) {
	if b == nil {
		return
	}
	p.printf("%s generator=%v\n", id, b.Generator)
	p.indent++
	for i := range b.Params {
		p.printf("param ")
		p.printPat(b.Params[i].Pat)
		p.printf("\n")
	}
	p.printf("value ")
	p.printExpr(b.Value)
	p.printf("\n")
	p.indent--
}

func (p *Printer) printGenerics(g *Generics) {
	for i := range g.Regions {
		rp := &g.Regions[i]
		p.printf("region '%s implicit=%v\n", p.name(rp.Region.Name), rp.Implicit)
	}
	for i := range g.Types {
		tp := &g.Types[i]
		p.printf("type-param %s synthetic=%v\n", p.name(tp.Name), tp.Synthetic)
	}
	for i := range g.Where.Preds {
		p.printf("where pred #%d\n", i)
	}
}

func (p *Printer) printDecl(d *FnDecl) {
	if d == nil {
		return
	}
	parts := make([]string, 0, len(d.Params))
	for _, t := range d.Params {
		parts = append(parts, p.tyStr(t))
	}
	ret := "()"
	if d.Ret != nil {
		ret = p.tyStr(d.Ret)
	}
	p.printf("decl (%s) -> %s\n", strings.Join(parts, ", "), ret)
}

func (p *Printer) printVariantData(v *VariantData) {
	for i := range v.Fields {
		f := &v.Fields[i]
		p.printf("field %s: %s\n", p.name(f.Name), p.tyStr(f.Ty))
	}
}

func (p *Printer) printExpr(e *Expr) {
	if e == nil {
		p.printf("<nil>")
		return
	}
	switch data := e.Data.(type) {
	case *LitData:
		switch data.Lit.Kind {
		case ast.LitInt:
			p.printf("%d", data.Lit.IntValue)
		case ast.LitBool:
			p.printf("%v", data.Lit.BoolValue)
		case ast.LitString:
			p.printf("%q", data.Lit.StringValue)
		case ast.LitUnit:
			p.printf("()")
		default:
			p.printf("lit(%s)", data.Lit.Text)
		}
	case *PathData:
		p.printf("%s", p.qpathStr(&data.QPath))
	case *UnaryData:
		p.printf("unary(")
		p.printExpr(data.Operand)
		p.printf(")")
	case *BinaryData:
		p.printf("(")
		p.printExpr(data.Left)
		p.printf(" bin#%d ", data.Op)
		p.printExpr(data.Right)
		p.printf(")")
	case *AssignData:
		p.printExpr(data.Target)
		p.printf(" = ")
		p.printExpr(data.Value)
	case *AssignOpData:
		p.printExpr(data.Target)
		p.printf(" op= ")
		p.printExpr(data.Value)
	case *CallData:
		p.printExpr(data.Callee)
		p.printf("(")
		for i, a := range data.Args {
			if i > 0 {
				p.printf(", ")
			}
			p.printExpr(a)
		}
		p.printf(")")
	case *FieldData:
		p.printExpr(data.Object)
		p.printf(".%s", p.name(data.Name))
	case *IndexData:
		p.printExpr(data.Object)
		p.printf("[")
		p.printExpr(data.Index)
		p.printf("]")
	case *AddrOfData:
		if data.Mut {
			p.printf("&mut ")
		} else {
			p.printf("&")
		}
		p.printExpr(data.Operand)
	case *CastData:
		p.printExpr(data.Operand)
		p.printf(" as %s", p.tyStr(data.Ty))
	case *IfData:
		p.printf("if ")
		p.printExpr(data.Cond)
		p.printf(" then ")
		p.printExpr(data.Then)
		if data.Else != nil {
			p.printf(" else ")
			p.printExpr(data.Else)
		}
	case *MatchData:
		p.printf("match[%s] ", data.Source)
		p.printExpr(data.Scrut)
		p.printf(" {\n")
		p.indent++
		for i := range data.Arms {
			arm := &data.Arms[i]
			p.printf("")
			for j, pat := range arm.Pats {
				if j > 0 {
					p.printf(" | ")
				}
				p.printPat(pat)
			}
			p.printf(" => ")
			p.printExpr(arm.Body)
			p.printf("\n")
		}
		p.indent--
		p.printf("}")
	case *WhileData:
		p.printf("while ")
		p.printExpr(data.Cond)
		p.printf(" ")
		p.printBlock(data.Body)
	case *LoopData:
		p.printf("loop[%s] ", data.Source)
		p.printBlock(data.Body)
	case *BlockData:
		p.printBlock(data.Block)
	case *BreakData:
		p.printf("break[%s->%s]", data.Dest.Kind, data.Dest.Target)
		if data.Value != nil {
			p.printf(" ")
			p.printExpr(data.Value)
		}
	case *ContinueData:
		p.printf("continue[%s->%s]", data.Dest.Kind, data.Dest.Target)
	case *ReturnData:
		p.printf("return")
		if data.Value != nil {
			p.printf(" ")
			p.printExpr(data.Value)
		}
	case *YieldData:
		p.printf("yield")
		if data.Value != nil {
			p.printf(" ")
			p.printExpr(data.Value)
		}
	case *ClosureData:
		p.printf("closure body=%s generator=%v", data.Body, data.Generator)
	case *StructLitData:
		p.printf("%s{", p.qpathStr(&data.QPath))
		for i := range data.Fields {
			if i > 0 {
				p.printf(", ")
			}
			p.printf("%s: ", p.name(data.Fields[i].Name))
			p.printExpr(data.Fields[i].Value)
		}
		p.printf("}")
	case *TupleData:
		p.printf("(")
		for i, el := range data.Elems {
			if i > 0 {
				p.printf(", ")
			}
			p.printExpr(el)
		}
		p.printf(")")
	case *ArrayData:
		p.printf("[")
		for i, el := range data.Elems {
			if i > 0 {
				p.printf(", ")
			}
			p.printExpr(el)
		}
		p.printf("]")
	case *BoxData:
		p.printf("box ")
		p.printExpr(data.Value)
	default:
		p.printf("<%s>", e.Kind)
	}
}

func (p *Printer) printBlock(b *Block) {
	if b == nil {
		p.printf("{}")
		return
	}
	p.printf("{")
	if b.TargetedByBreak {
		p.printf(" /*target*/")
	}
	p.printf("\n")
	p.indent++
	for _, s := range b.Stmts {
		p.printStmt(s)
	}
	if b.Expr != nil {
		p.printf("")
		p.printExpr(b.Expr)
		p.printf("\n")
	}
	p.indent--
	p.printf("}")
}

func (p *Printer) printStmt(s *Stmt) {
	switch data := s.Data.(type) {
	case *LetData:
		p.printf("let ")
		p.printPat(data.Pat)
		if data.Ty != nil {
			p.printf(": %s", p.tyStr(data.Ty))
		}
		if data.Init != nil {
			p.printf(" = ")
			p.printExpr(data.Init)
		}
		p.printf("\n")
	case *ExprStmtData:
		p.printf("")
		p.printExpr(data.Expr)
		if data.Semi {
			p.printf(";")
		}
		p.printf("\n")
	}
}

func (p *Printer) printPat(pat *Pat) {
	if pat == nil {
		p.printf("<nil>")
		return
	}
	switch data := pat.Data.(type) {
	case nil:
		p.printf("_")
	case *PatBindData:
		if data.Mode == BindByValueMut || data.Mode == BindByRefMut {
			p.printf("mut ")
		}
		p.printf("%s", p.name(data.Name))
		if data.Sub != nil {
			p.printf(" @ ")
			p.printPat(data.Sub)
		}
	case *PatLitData:
		p.printExpr(data.Value)
	case *PatTupleData:
		p.printf("(")
		for i, el := range data.Elems {
			if i > 0 {
				p.printf(", ")
			}
			p.printPat(el)
		}
		p.printf(")")
	case *PatEnumData:
		p.printf("%s(", p.qpathStr(&data.QPath))
		for i, el := range data.Elems {
			if i > 0 {
				p.printf(", ")
			}
			p.printPat(el)
		}
		p.printf(")")
	case *PatRefData:
		p.printf("&")
		p.printPat(data.Inner)
	case *PatPathData:
		p.printf("%s", p.qpathStr(&data.QPath))
	}
}

func (p *Printer) tyStr(t *Ty) string {
	if t == nil {
		return "<nil>"
	}
	switch data := t.Data.(type) {
	case nil:
		return strings.ToLower(t.Kind.String())
	case *TyRefData:
		mut := ""
		if data.Mut {
			mut = "mut "
		}
		return fmt.Sprintf("&'%s %s%s", p.name(data.Region.Name), mut, p.tyStr(data.Elem))
	case *TySliceData:
		return "[" + p.tyStr(data.Elem) + "]"
	case *TyArrayData:
		return fmt.Sprintf("[%s; %s]", p.tyStr(data.Elem), data.Len)
	case *TyTupleData:
		parts := make([]string, 0, len(data.Elems))
		for _, el := range data.Elems {
			parts = append(parts, p.tyStr(el))
		}
		return "(" + strings.Join(parts, ", ") + ")"
	case *TyFnPtrData:
		parts := make([]string, 0, len(data.Decl.Params))
		for _, el := range data.Decl.Params {
			parts = append(parts, p.tyStr(el))
		}
		ret := "()"
		if data.Decl.Ret != nil {
			ret = p.tyStr(data.Decl.Ret)
		}
		return "fn(" + strings.Join(parts, ", ") + ") -> " + ret
	case *TyPathData:
		return p.qpathStr(&data.QPath)
	case *TyOpaqueData:
		return fmt.Sprintf("opaque[%s, %d regions]", data.Def, len(data.Regions))
	default:
		return t.Kind.String()
	}
}

func (p *Printer) qpathStr(q *QPath) string {
	switch q.Kind {
	case QPathResolved:
		s := p.pathStr(q.Path)
		if q.SelfTy != nil {
			return "<" + p.tyStr(q.SelfTy) + ">::" + s
		}
		return s
	case QPathTypeRelative:
		return "<" + p.tyStr(q.Ty) + ">::" + p.name(q.Seg.Name)
	}
	return "?"
}

func (p *Printer) pathStr(path *Path) string {
	if path == nil {
		return "<nil>"
	}
	parts := make([]string, 0, len(path.Segments))
	for i := range path.Segments {
		parts = append(parts, p.name(path.Segments[i].Name))
	}
	return strings.Join(parts, "::")
}

func (p *Printer) name(id source.StringID) string {
	if p.interner == nil {
		return fmt.Sprintf("str#%d", id)
	}
	s, ok := p.interner.Lookup(id)
	if !ok {
		return fmt.Sprintf("str#%d", id)
	}
	return s
}

// printf writes formatted text, injecting the current indent at the
// start of every line.
func (p *Printer) printf(format string, args ...any) {
	s := fmt.Sprintf(format, args...)
	for len(s) > 0 {
		if p.bol && s[0] != '\n' {
			fmt.Fprint(p.w, strings.Repeat("  ", p.indent))
		}
		p.bol = false
		i := strings.IndexByte(s, '\n')
		if i < 0 {
			fmt.Fprint(p.w, s)
			return
		}
		fmt.Fprint(p.w, s[:i+1])
		p.bol = true
		s = s[i+1:]
	}
}

package ast

import (
	"fmt"
	"strings"
)

func (cf *ContractFile) String() string {
	var b strings.Builder

	for i, item := range cf.Items {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(item.String())
	}

	return b.String()
}

func (c *Comment) String() string {
	return c.Text
}

func (bci *BadContractItem) String() string {
	return fmt.Sprintf("BadContractItem: %s", bci.Bad.Message)
}

func (d *Directive) String() string {
	var b strings.Builder

	b.WriteString("%")
	b.WriteString(d.Name.Value)
	for _, arg := range d.Args {
		b.WriteString(" ")
		b.WriteString(arg.Value)
	}

	return b.String()
}

func (i *ImportStmt) String() string {
	var b strings.Builder

	b.WriteString("from ")
	for j, part := range i.Module {
		if j > 0 {
			b.WriteString(".")
		}
		b.WriteString(part.Value)
	}
	b.WriteString(" import ")
	for j, item := range i.Items {
		if j > 0 {
			b.WriteString(", ")
		}
		b.WriteString(item.String())
	}

	return b.String()
}

func (ii *ImportItem) String() string {
	if ii.Alias != nil {
		return fmt.Sprintf("%s as %s", ii.Name.Value, ii.Alias.Value)
	}
	return ii.Name.Value
}

func (c *ConstDecl) String() string {
	return fmt.Sprintf("const %s = %s;", c.Name.Value, c.Value)
}

func (d *Decorator) String() string {
	return "@" + d.Name.Value
}

func (i *Ident) String() string {
	return i.Value
}

func (n *NamedType) String() string {
	return n.Name.Value
}

func (p *PointerType) String() string {
	return p.Elem.String() + "*"
}

func (t *TupleType) String() string {
	var b strings.Builder

	b.WriteString("(")
	for i, m := range t.Members {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(m.String())
	}
	b.WriteString(")")

	return b.String()
}

func (tm *TupleMember) String() string {
	if tm.Name != nil {
		return fmt.Sprintf("%s: %s", tm.Name.Value, tm.Type.String())
	}
	return tm.Type.String()
}

func (ti *TypedIdent) String() string {
	if ti.Type == nil {
		return ti.Name.Value
	}
	return fmt.Sprintf("%s: %s", ti.Name.Value, ti.Type.String())
}

func (il *IdentifierList) String() string {
	var b strings.Builder

	b.WriteString("{")
	for i, arg := range il.Args {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(arg.String())
	}
	b.WriteString("}")

	return b.String()
}

func (bs *BodySpan) String() string {
	if bs.Empty {
		return "{\n}"
	}
	return "{\n    ...\n}"
}

func (f *FunctionDecl) String() string {
	var b strings.Builder

	for _, dec := range f.Decorators {
		b.WriteString(dec.String())
		b.WriteString("\n")
	}

	b.WriteString("func ")
	b.WriteString(f.Name.Value)

	if f.ImplicitArgs != nil {
		b.WriteString(f.ImplicitArgs.String())
	}

	b.WriteString("(")
	for i, arg := range f.Args {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(arg.String())
	}
	b.WriteString(")")

	if f.Returns != nil {
		b.WriteString(" -> ")
		b.WriteString(f.Returns.String())
	}

	b.WriteString(" ")
	b.WriteString(f.Body.String())

	return b.String()
}

func (s *StructDecl) String() string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("struct %s {\n", s.Name.Value))
	for _, member := range s.Members {
		b.WriteString("    ")
		b.WriteString(member.String())
		b.WriteString(",\n")
	}
	b.WriteString("}")

	return b.String()
}

func (ns *NamespaceDecl) String() string {
	var b strings.Builder

	for _, dec := range ns.Decorators {
		b.WriteString(dec.String())
		b.WriteString("\n")
	}

	b.WriteString(fmt.Sprintf("namespace %s {\n", ns.Name.Value))
	for _, fn := range ns.Functions {
		b.WriteString("    " + strings.ReplaceAll(fn.String(), "\n", "\n    ") + "\n")
	}
	b.WriteString("}")

	return b.String()
}

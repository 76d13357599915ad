package ast

type Node interface {
	NodePos() Position
	NodeEndPos() Position
	NodeType() NodeType
	String() string
}

func (bci *BadContractItem) NodePos() Position    { return bci.Bad.Pos }
func (bci *BadContractItem) NodeEndPos() Position { return bci.Bad.EndPos }
func (*BadContractItem) NodeType() NodeType       { return BAD_CONTRACT_ITEM }

func (c *Comment) NodePos() Position    { return c.Pos }
func (c *Comment) NodeEndPos() Position { return c.EndPos }
func (*Comment) NodeType() NodeType     { return COMMENT }

func (cf *ContractFile) NodePos() Position    { return cf.Pos }
func (cf *ContractFile) NodeEndPos() Position { return cf.EndPos }
func (*ContractFile) NodeType() NodeType      { return CONTRACT_FILE }

func (d *Directive) NodePos() Position    { return d.Pos }
func (d *Directive) NodeEndPos() Position { return d.EndPos }
func (*Directive) NodeType() NodeType     { return DIRECTIVE }

func (i *ImportStmt) NodePos() Position    { return i.Pos }
func (i *ImportStmt) NodeEndPos() Position { return i.EndPos }
func (*ImportStmt) NodeType() NodeType     { return IMPORT_STMT }

func (ii *ImportItem) NodePos() Position    { return ii.Pos }
func (ii *ImportItem) NodeEndPos() Position { return ii.EndPos }
func (*ImportItem) NodeType() NodeType      { return IMPORT_ITEM }

func (c *ConstDecl) NodePos() Position    { return c.Pos }
func (c *ConstDecl) NodeEndPos() Position { return c.EndPos }
func (*ConstDecl) NodeType() NodeType     { return CONST_DECL }

func (d *Decorator) NodePos() Position    { return d.Pos }
func (d *Decorator) NodeEndPos() Position { return d.EndPos }
func (*Decorator) NodeType() NodeType     { return DECORATOR }

func (s *StructDecl) NodePos() Position    { return s.Pos }
func (s *StructDecl) NodeEndPos() Position { return s.EndPos }
func (*StructDecl) NodeType() NodeType     { return STRUCT_DECL }

func (ns *NamespaceDecl) NodePos() Position    { return ns.Pos }
func (ns *NamespaceDecl) NodeEndPos() Position { return ns.EndPos }
func (*NamespaceDecl) NodeType() NodeType      { return NAMESPACE_DECL }

func (n *NamedType) NodePos() Position    { return n.Pos }
func (n *NamedType) NodeEndPos() Position { return n.EndPos }
func (*NamedType) NodeType() NodeType     { return NAMED_TYPE }

func (p *PointerType) NodePos() Position    { return p.Pos }
func (p *PointerType) NodeEndPos() Position { return p.EndPos }
func (*PointerType) NodeType() NodeType     { return POINTER_TYPE }

func (t *TupleType) NodePos() Position    { return t.Pos }
func (t *TupleType) NodeEndPos() Position { return t.EndPos }
func (*TupleType) NodeType() NodeType     { return TUPLE_TYPE }

func (tm *TupleMember) NodePos() Position    { return tm.Pos }
func (tm *TupleMember) NodeEndPos() Position { return tm.EndPos }
func (*TupleMember) NodeType() NodeType      { return TUPLE_MEMBER }

func (i *Ident) NodePos() Position    { return i.Pos }
func (i *Ident) NodeEndPos() Position { return i.EndPos }
func (*Ident) NodeType() NodeType     { return IDENT }

func (f *FunctionDecl) NodePos() Position    { return f.Pos }
func (f *FunctionDecl) NodeEndPos() Position { return f.EndPos }
func (*FunctionDecl) NodeType() NodeType     { return FUNCTION_DECL }

func (ti *TypedIdent) NodePos() Position    { return ti.Pos }
func (ti *TypedIdent) NodeEndPos() Position { return ti.EndPos }
func (*TypedIdent) NodeType() NodeType      { return TYPED_IDENT }

func (il *IdentifierList) NodePos() Position    { return il.Pos }
func (il *IdentifierList) NodeEndPos() Position { return il.EndPos }
func (*IdentifierList) NodeType() NodeType      { return IDENTIFIER_LIST }

func (bs *BodySpan) NodePos() Position    { return bs.Pos }
func (bs *BodySpan) NodeEndPos() Position { return bs.EndPos }
func (*BodySpan) NodeType() NodeType      { return BODY_SPAN }

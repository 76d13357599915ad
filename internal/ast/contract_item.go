package ast

type ContractItem interface {
	Node
	isContractItem()
}

func (*BadContractItem) isContractItem() {}

func (*Comment) isContractItem() {}

func (*Directive) isContractItem() {}

func (*ImportStmt) isContractItem() {}

func (*ConstDecl) isContractItem() {}

func (*StructDecl) isContractItem() {}

func (*NamespaceDecl) isContractItem() {}

func (*FunctionDecl) isContractItem() {}

package ast

// LangStarknet is the dialect tag StarkNet contracts must declare via
// the "%lang" directive.
const LangStarknet = "starknet"

// HasDecorator reports whether the function carries the named decorator
// and returns the location of its first occurrence.
func HasDecorator(fn *FunctionDecl, name string) (bool, Position) {
	for _, dec := range fn.Decorators {
		if dec.Name.Value == name {
			return true, dec.Pos
		}
	}
	return false, Position{}
}

// DecoratorNames returns the function's decorator names in source order.
func DecoratorNames(fn *FunctionDecl) []string {
	names := make([]string, 0, len(fn.Decorators))
	for _, dec := range fn.Decorators {
		names = append(names, dec.Name.Value)
	}
	return names
}

// Lang returns the value of the file's "%lang" directive, or "" when
// the directive is absent. The first declaration wins.
func (cf *ContractFile) Lang() string {
	for _, item := range cf.Items {
		if d, ok := item.(*Directive); ok && d.Name.Value == "lang" && len(d.Args) > 0 {
			return d.Args[0].Value
		}
	}
	return ""
}

// LangDirective returns the file's "%lang" directive node, or nil.
func (cf *ContractFile) LangDirective() *Directive {
	for _, item := range cf.Items {
		if d, ok := item.(*Directive); ok && d.Name.Value == "lang" {
			return d
		}
	}
	return nil
}

// Functions returns the file's top-level function declarations in
// source order.
func (cf *ContractFile) Functions() []*FunctionDecl {
	var fns []*FunctionDecl
	for _, item := range cf.Items {
		if fn, ok := item.(*FunctionDecl); ok {
			fns = append(fns, fn)
		}
	}
	return fns
}

// Structs returns the file's struct declarations in source order.
func (cf *ContractFile) Structs() []*StructDecl {
	var structs []*StructDecl
	for _, item := range cf.Items {
		if s, ok := item.(*StructDecl); ok {
			structs = append(structs, s)
		}
	}
	return structs
}

// Namespaces returns the file's namespace declarations in source order.
func (cf *ContractFile) Namespaces() []*NamespaceDecl {
	var namespaces []*NamespaceDecl
	for _, item := range cf.Items {
		if ns, ok := item.(*NamespaceDecl); ok {
			namespaces = append(namespaces, ns)
		}
	}
	return namespaces
}

// IsUnitTuple reports whether the type expression is the empty tuple
// "()", which return clauses treat the same as no return value.
func IsUnitTuple(t TypeExpr) bool {
	tup, ok := t.(*TupleType)
	return ok && len(tup.Members) == 0
}

package abi

import (
	"cairn/internal/ast"
	"cairn/internal/errors"
	"cairn/internal/types"
)

// Builder lowers checked declarations into the ABI document. It runs
// after type resolution, so every signature type is known to resolve;
// an unresolvable type this late is a caller bug, not user input.
type Builder struct {
	file     *ast.ContractFile
	resolver *types.Resolver

	seen    map[string]bool
	structs []Entry
}

func NewBuilder(file *ast.ContractFile, resolver *types.Resolver) *Builder {
	return &Builder{
		file:     file,
		resolver: resolver,
		seen:     make(map[string]bool),
	}
}

// entryKinds maps decorator names onto ABI entry types.
var entryKinds = map[string]EntryType{
	"external":    EntryTypeFunction,
	"view":        EntryTypeFunction,
	"constructor": EntryTypeConstructor,
	"l1_handler":  EntryTypeL1Handler,
}

// Build assembles the ABI: struct entries for every type reachable
// from an entry-point or event signature, dependencies first, then
// functions and events in declaration order.
func (b *Builder) Build() Contract {
	var members []Entry

	for _, fn := range b.file.Functions() {
		if entry := b.buildFunction(fn); entry != nil {
			members = append(members, entry)
			continue
		}
		if found, _ := ast.HasDecorator(fn, "event"); found {
			members = append(members, b.buildEvent(fn))
		}
	}

	contract := make(Contract, 0, len(b.structs)+len(members))
	contract = append(contract, b.structs...)
	contract = append(contract, members...)
	return contract
}

// buildFunction returns nil for functions that are not entry points:
// helpers, storage variables and interface members stay out of the ABI.
func (b *Builder) buildFunction(fn *ast.FunctionDecl) *FunctionEntry {
	var entryType EntryType
	var view, found bool

	for _, dec := range fn.Decorators {
		if kind, ok := entryKinds[dec.Name.Value]; ok {
			entryType = kind
			view = dec.Name.Value == "view"
			found = true
			break
		}
	}
	if !found {
		return nil
	}

	entry := &FunctionEntry{
		EntryCommon: EntryCommon{Type: entryType, Name: fn.Name.Value},
		Inputs:      b.buildVariables(fn.Args),
		Outputs:     b.buildOutputs(fn.Returns),
	}
	if view {
		entry.StateMutability = "view"
	}
	return entry
}

func (b *Builder) buildEvent(fn *ast.FunctionDecl) *EventEntry {
	return &EventEntry{
		EntryCommon: EntryCommon{Type: EntryTypeEvent, Name: fn.Name.Value},
		Keys:        make([]string, 0),
		Data:        b.buildVariables(fn.Args),
	}
}

func (b *Builder) buildVariables(args []ast.TypedIdent) []Variable {
	variables := make([]Variable, 0, len(args))
	for _, arg := range args {
		b.collectStructs(arg.Type)
		variables = append(variables, Variable{
			Name: arg.Name.Value,
			Type: arg.Type.String(),
		})
	}
	return variables
}

// buildOutputs flattens a tuple return clause into one output per
// member; any other return type becomes a single unnamed output.
func (b *Builder) buildOutputs(returns ast.TypeExpr) []Variable {
	outputs := make([]Variable, 0)
	if returns == nil {
		return outputs
	}
	b.collectStructs(returns)

	if tuple, ok := returns.(*ast.TupleType); ok {
		for _, m := range tuple.Members {
			name := ""
			if m.Name != nil {
				name = m.Name.Value
			}
			outputs = append(outputs, Variable{Name: name, Type: m.Type.String()})
		}
		return outputs
	}

	return append(outputs, Variable{Type: returns.String()})
}

// collectStructs records every struct type the expression mentions.
func (b *Builder) collectStructs(expr ast.TypeExpr) {
	switch t := expr.(type) {
	case *ast.NamedType:
		b.collectNamed(t.Name.Value)
	case *ast.PointerType:
		b.collectStructs(t.Elem)
	case *ast.TupleType:
		for _, m := range t.Members {
			b.collectStructs(m.Type)
		}
	}
}

func (b *Builder) collectNamed(name string) {
	registry := b.resolver.Registry()
	if registry.IsBuiltinType(name) || b.seen[name] {
		return
	}

	if decl := registry.GetUserDefinedType(name); decl != nil {
		b.seen[name] = true
		for _, member := range decl.Members {
			b.collectStructs(member.Type)
		}
		b.structs = append(b.structs, b.buildStructFromDecl(decl))
		return
	}

	if imported := registry.GetImportedType(name); imported != nil && imported.Layout != nil {
		if layout, ok := imported.Layout.(types.StructType); ok {
			b.collectLayout(layout)
		}
	}

	// Opaque imports have no known members; their names still appear
	// in the signature type strings.
}

// collectLayout walks an already-resolved layout, needed for types
// whose declarations live in the bundled common library rather than
// the source file.
func (b *Builder) collectLayout(layout types.CairoType) {
	switch t := layout.(type) {
	case types.PointerType:
		b.collectLayout(t.Elem)
	case types.TupleType:
		for _, m := range t.Members {
			b.collectLayout(m.Type)
		}
	case types.StructType:
		if b.seen[t.Name] {
			return
		}
		b.seen[t.Name] = true
		for _, m := range t.Members {
			b.collectLayout(m.Type)
		}
		b.structs = append(b.structs, buildStructFromLayout(t))
	}
}

func (b *Builder) buildStructFromDecl(decl *ast.StructDecl) *StructEntry {
	members := make([]StructMember, 0, len(decl.Members))
	offset := 0

	for _, m := range decl.Members {
		resolved, err := b.resolver.ResolveTypeExpr(m.Type)
		if err != nil {
			errors.Internalf("ABI builder reached unresolved member %s.%s",
				decl.Name.Value, m.Name.Value)
		}
		members = append(members, StructMember{
			Variable: Variable{Name: m.Name.Value, Type: m.Type.String()},
			Offset:   offset,
		})
		offset += resolved.SizeInFelts()
	}

	return &StructEntry{
		EntryCommon: EntryCommon{Type: EntryTypeStruct, Name: decl.Name.Value},
		Size:        offset,
		Members:     members,
	}
}

func buildStructFromLayout(layout types.StructType) *StructEntry {
	members := make([]StructMember, 0, len(layout.Members))
	offset := 0

	for _, m := range layout.Members {
		members = append(members, StructMember{
			Variable: Variable{Name: m.Name, Type: m.Type.String()},
			Offset:   offset,
		})
		offset += m.Type.SizeInFelts()
	}

	return &StructEntry{
		EntryCommon: EntryCommon{Type: EntryTypeStruct, Name: layout.Name},
		Size:        layout.SizeInFelts(),
		Members:     members,
	}
}

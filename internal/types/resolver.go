package types

import (
	"fmt"

	"cairn/internal/ast"
	"cairn/internal/errors"
)

// Resolver turns declared type expressions into resolved Cairo types
// using the names registered for the current file. Resolution is pure:
// the same expression against the same registry always yields the same
// result.
type Resolver struct {
	registry *TypeRegistry
}

// NewResolver creates a resolver over a populated registry.
func NewResolver(registry *TypeRegistry) *Resolver {
	return &Resolver{registry: registry}
}

// Registry returns the identifier table the resolver reads from.
func (r *Resolver) Registry() *TypeRegistry {
	return r.registry
}

// ResolveTypeExpr resolves a declared type expression to its layout.
// Unknown names and structs without finite size come back as compiler
// errors positioned on the offending expression.
func (r *Resolver) ResolveTypeExpr(expr ast.TypeExpr) (CairoType, *errors.CompilerError) {
	return r.resolveExpr(expr, nil)
}

// resolveExpr carries the stack of struct names currently being laid
// out, so self-containing structs are caught instead of looping.
func (r *Resolver) resolveExpr(expr ast.TypeExpr, stack []string) (CairoType, *errors.CompilerError) {
	switch t := expr.(type) {
	case *ast.NamedType:
		return r.resolveNamed(t.Name.Value, t.Name.Pos, stack)

	case *ast.PointerType:
		// A pointer to a struct still being laid out is legal: the
		// pointer occupies one felt regardless of the element layout,
		// so the element stays a shallow named reference.
		if named, ok := t.Elem.(*ast.NamedType); ok && contains(stack, named.Name.Value) {
			return PointerType{Elem: StructType{Name: named.Name.Value}}, nil
		}
		elem, err := r.resolveExpr(t.Elem, stack)
		if err != nil {
			return nil, err
		}
		return PointerType{Elem: elem}, nil

	case *ast.TupleType:
		members := make([]Member, 0, len(t.Members))
		for _, m := range t.Members {
			memberType, err := r.resolveExpr(m.Type, stack)
			if err != nil {
				return nil, err
			}
			name := ""
			if m.Name != nil {
				name = m.Name.Value
			}
			members = append(members, Member{Name: name, Type: memberType})
		}
		return TupleType{Members: members}, nil

	default:
		errors.Internalf("unhandled type expression %T", expr)
		return nil, nil
	}
}

func (r *Resolver) resolveNamed(name string, pos ast.Position, stack []string) (CairoType, *errors.CompilerError) {
	if r.registry.IsBuiltinType(name) {
		return FeltType{}, nil
	}

	if contains(stack, name) {
		err := errors.RecursiveStruct(name, pos)
		return nil, &err
	}

	if structDef := r.registry.GetUserDefinedType(name); structDef != nil {
		return r.resolveStruct(structDef, append(stack, name))
	}

	if imported := r.registry.GetImportedType(name); imported != nil {
		if imported.Layout != nil {
			return imported.Layout, nil
		}
		err := errors.UnknownType(name, pos, nil)
		err.Notes = append(err.Notes,
			fmt.Sprintf("'%s' is imported from '%s', whose layout is not known to this front end",
				name, imported.ModulePath))
		return nil, &err
	}

	err := errors.UnknownType(name, pos,
		errors.FindSimilarNames(name, r.registry.ResolvableTypeNames()))
	return nil, &err
}

func (r *Resolver) resolveStruct(decl *ast.StructDecl, stack []string) (CairoType, *errors.CompilerError) {
	members := make([]Member, 0, len(decl.Members))
	for _, m := range decl.Members {
		if m.Type == nil {
			errors.Internalf("struct member %s.%s has no type expression",
				decl.Name.Value, m.Name.Value)
		}
		memberType, err := r.resolveExpr(m.Type, stack)
		if err != nil {
			return nil, err
		}
		members = append(members, Member{Name: m.Name.Value, Type: memberType})
	}
	return StructType{Name: decl.Name.Value, Members: members}, nil
}

func contains(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}

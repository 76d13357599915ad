package types

import (
	"sort"

	"cairn/internal/ast"
)

// ImportedType represents a type imported via a from-import statement
type ImportedType struct {
	Name       string    // The type name (e.g., "HashBuiltin", "Uint256")
	ModulePath string    // The module it's imported from (e.g., "starkware.cairo.common.cairo_builtins")
	Layout     CairoType // Resolved layout when the module is part of the bundled catalog, nil otherwise
}

// TypeRegistry manages the type names visible in a single source file
type TypeRegistry struct {
	builtins    map[string]bool
	imports     map[string]*ImportedType
	userDefined map[string]*ast.StructDecl // Structs defined in the current file
}

// NewTypeRegistry creates a new type registry with built-in types
func NewTypeRegistry() *TypeRegistry {
	tr := &TypeRegistry{
		builtins:    make(map[string]bool),
		imports:     make(map[string]*ImportedType),
		userDefined: make(map[string]*ast.StructDecl),
	}
	for name := range BuiltinTypeNames {
		tr.builtins[name] = true
	}
	return tr
}

// AddImportedType adds an imported type to the registry. Imports from
// bundled common library modules carry their known layout; other imports
// are visible by name only, and the resolver reports them with a note
// pointing at the import.
func (tr *TypeRegistry) AddImportedType(name, modulePath string, layout CairoType) {
	tr.imports[name] = &ImportedType{
		Name:       name,
		ModulePath: modulePath,
		Layout:     layout,
	}
}

// AddUserDefinedType adds a user-defined struct to the registry. It
// returns false when the name is already taken by a builtin or an
// earlier declaration.
func (tr *TypeRegistry) AddUserDefinedType(name string, structDef *ast.StructDecl) bool {
	if tr.builtins[name] {
		return false
	}
	if tr.userDefined[name] != nil {
		return false
	}
	tr.userDefined[name] = structDef
	return true
}

// IsValidType checks if a type name is visible in this registry
func (tr *TypeRegistry) IsValidType(typeName string) bool {
	if tr.builtins[typeName] {
		return true
	}

	if tr.imports[typeName] != nil {
		return true
	}

	if tr.userDefined[typeName] != nil {
		return true
	}

	return false
}

// IsBuiltinType checks if a type is a built-in type
func (tr *TypeRegistry) IsBuiltinType(typeName string) bool {
	return tr.builtins[typeName]
}

// IsImportedType checks if a type is imported
func (tr *TypeRegistry) IsImportedType(typeName string) bool {
	return tr.imports[typeName] != nil
}

// IsUserDefinedType checks if a type is user-defined (struct)
func (tr *TypeRegistry) IsUserDefinedType(typeName string) bool {
	return tr.userDefined[typeName] != nil
}

// GetImportedType returns information about an imported type
func (tr *TypeRegistry) GetImportedType(typeName string) *ImportedType {
	return tr.imports[typeName]
}

// GetUserDefinedType returns the struct declaration for a user-defined type
func (tr *TypeRegistry) GetUserDefinedType(typeName string) *ast.StructDecl {
	return tr.userDefined[typeName]
}

// ResolvableTypeNames returns every name that can resolve to a layout,
// sorted. Used to build "did you mean" suggestions.
func (tr *TypeRegistry) ResolvableTypeNames() []string {
	names := make([]string, 0, len(tr.builtins)+len(tr.userDefined)+len(tr.imports))
	for name := range tr.builtins {
		names = append(names, name)
	}
	for name := range tr.userDefined {
		names = append(names, name)
	}
	for name, imp := range tr.imports {
		if imp.Layout != nil {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

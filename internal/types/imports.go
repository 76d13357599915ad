package types

import (
	"strings"

	"cairn/internal/ast"
	"cairn/internal/errors"
	"cairn/internal/stdlib"
)

// ImportParser processes from-import statements and records the imported
// type names in the registry. Imports from bundled common library modules
// are checked against the catalog and carry their known layouts; anything
// else is accepted by name only, since user module sources are not read.
type ImportParser struct {
	typeRegistry *TypeRegistry
}

// NewImportParser creates a new import parser
func NewImportParser(typeRegistry *TypeRegistry) *ImportParser {
	return &ImportParser{
		typeRegistry: typeRegistry,
	}
}

// ProcessImport records one from-import statement and returns any
// diagnostics it produced.
func (ip *ImportParser) ProcessImport(stmt *ast.ImportStmt) []errors.CompilerError {
	var errs []errors.CompilerError

	modulePath := joinModulePath(stmt.Module)
	moduleDef := stdlib.GetModuleDefinition(modulePath)

	for _, item := range stmt.Items {
		visible := item.Name.Value
		if item.Alias != nil {
			visible = item.Alias.Value
		}

		if moduleDef == nil {
			// Unknown module: the name is visible but has no layout.
			ip.typeRegistry.AddImportedType(visible, modulePath, nil)
			continue
		}

		if typeDef, ok := moduleDef.Types[item.Name.Value]; ok {
			ip.typeRegistry.AddImportedType(visible, modulePath, libraryLayout(typeDef))
			continue
		}

		if moduleDef.Exports(item.Name.Value) {
			// Functions and constants are not types; bodies are opaque
			// to this front end, so nothing tracks them.
			continue
		}

		errs = append(errs, errors.UnknownImport(item.Name.Value, modulePath,
			item.Name.Pos, errors.FindSimilarNames(item.Name.Value, moduleExports(moduleDef))))
	}

	return errs
}

// libraryLayout converts a catalog type definition into a resolved
// struct layout. Catalog members are felt or felt pointers, so the
// conversion never needs the registry.
func libraryLayout(def stdlib.TypeDefinition) CairoType {
	members := make([]Member, 0, len(def.Members))
	for _, m := range def.Members {
		members = append(members, Member{Name: m.Name, Type: libraryMemberType(m.Type)})
	}
	return StructType{Name: def.Name, Members: members}
}

func libraryMemberType(typeName string) CairoType {
	var t CairoType = FeltType{}
	for i := 0; i < strings.Count(typeName, "*"); i++ {
		t = PointerType{Elem: t}
	}
	return t
}

func joinModulePath(parts []ast.Ident) string {
	var b strings.Builder
	for i, part := range parts {
		if i > 0 {
			b.WriteString(".")
		}
		b.WriteString(part.Value)
	}
	return b.String()
}

func moduleExports(def *stdlib.ModuleDefinition) []string {
	names := make([]string, 0, len(def.Types)+len(def.Functions)+len(def.Constants))
	for name := range def.Types {
		names = append(names, name)
	}
	for name := range def.Functions {
		names = append(names, name)
	}
	names = append(names, def.Constants...)
	return names
}

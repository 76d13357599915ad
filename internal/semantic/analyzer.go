package semantic

import (
	"fmt"
	"strings"

	"cairn/internal/abi"
	"cairn/internal/ast"
	"cairn/internal/builtins"
	"cairn/internal/encoder"
	"cairn/internal/errors"
	"cairn/internal/types"
)

// entryPointSubjects maps each entry point decorator to the wording its
// diagnostics use. The key set doubles as the list of decorators that
// elaborate a function into an entry point.
var entryPointSubjects = map[string]string{
	"external":    "external functions",
	"view":        "view functions",
	"constructor": "constructors",
	"l1_handler":  "L1 handlers",
}

// functionDecorators is every decorator that may appear on some
// function. Undecorated helpers reach this check only when none of the
// classifying decorators matched, so in practice it rejects misspelled
// names with a suggestion.
var functionDecorators = []string{
	"external", "view", "constructor", "l1_handler",
	"event", "storage_var", "raw_input", "raw_output",
}

// Options configures a single analysis run.
type Options struct {
	// IsAccountContract switches the reserved entry point check between
	// "must declare all three" and "must declare none".
	IsAccountContract bool
}

// Analysis is what Analyze hands to later stages.
type Analysis struct {
	// ABI is the declaration surface in StarkNet ABI form. It is nil
	// when errors precluded building it; it is set even when the
	// account conformance check on top of it fails.
	ABI abi.Contract

	// InterfaceStubs maps "Namespace.member" to the calldata encoding
	// fragment for that contract interface member.
	InterfaceStubs map[string][]encoder.CodeElement
}

// Analyzer drives the declaration checks over a parsed contract file.
// It assumes a clean parse; bodies are never inspected beyond their
// recorded emptiness.
type Analyzer struct {
	options  Options
	file     *ast.ContractFile
	lang     string
	declared map[string]bool
	registry *types.TypeRegistry
	resolver *types.Resolver
	stubs    map[string][]encoder.CodeElement
	errors   []errors.CompilerError
}

func NewAnalyzer(options Options) *Analyzer {
	return &Analyzer{options: options}
}

// Analyze runs both passes over the file. Pass 1 collects directives,
// imports and type declarations; pass 2 checks every declaration
// against its decorator kind. The ABI is built and cross-checked only
// on an otherwise clean file, since its builder requires every
// reachable struct member to resolve.
func (a *Analyzer) Analyze(file *ast.ContractFile) *Analysis {
	a.file = file
	a.lang = file.Lang()
	a.declared = make(map[string]bool)
	a.registry = types.NewTypeRegistry()
	a.resolver = types.NewResolver(a.registry)
	a.stubs = make(map[string][]encoder.CodeElement)
	a.errors = nil

	a.collectDeclarations()
	a.checkDeclarations()

	analysis := &Analysis{InterfaceStubs: a.stubs}
	if len(a.errors) == 0 {
		analysis.ABI = abi.NewBuilder(file, a.resolver).Build()
		if err := VerifyAccountContract(analysis.ABI, a.options.IsAccountContract); err != nil {
			a.errors = append(a.errors, a.positionAccountError(*err))
		}
	}
	return analysis
}

// GetErrors returns the diagnostics collected by the last Analyze call.
func (a *Analyzer) GetErrors() []errors.CompilerError {
	return a.errors
}

// Pass 1: names, imports and types become visible before any
// declaration is checked, so order of declaration never matters.
func (a *Analyzer) collectDeclarations() {
	importParser := types.NewImportParser(a.registry)

	for _, item := range a.file.Items {
		switch node := item.(type) {
		case *ast.Directive:
			a.checkDirective(node)
		case *ast.ImportStmt:
			a.errors = append(a.errors, importParser.ProcessImport(node)...)
		case *ast.StructDecl:
			if !a.declareName(node.Name) {
				continue
			}
			if !a.registry.AddUserDefinedType(node.Name.Value, node) {
				a.addError(fmt.Sprintf("Type name '%s' is already defined.", node.Name.Value),
					node.Name.Pos, len(node.Name.Value))
			}
		case *ast.FunctionDecl:
			a.declareName(node.Name)
		case *ast.NamespaceDecl:
			a.declareName(node.Name)
		case *ast.ConstDecl:
			a.declareName(node.Name)
		}
	}
}

// Pass 2: classify each declaration by decorator and apply the checks
// for its kind.
func (a *Analyzer) checkDeclarations() {
	for _, item := range a.file.Items {
		switch node := item.(type) {
		case *ast.FunctionDecl:
			a.checkFunction(node)
		case *ast.NamespaceDecl:
			a.checkNamespace(node)
		}
	}
}

func (a *Analyzer) checkDirective(d *ast.Directive) {
	switch d.Name.Value {
	case "lang":
		// Recorded up front by Analyze; constructs that demand a
		// dialect check it themselves.
	case "builtins":
		a.checkBuiltinsDirective(d)
	default:
		a.addError(fmt.Sprintf("Unknown directive '%%%s'.", d.Name.Value),
			d.Name.Pos, len(d.Name.Value))
	}
}

func (a *Analyzer) checkBuiltinsDirective(d *ast.Directive) {
	names := make([]string, 0, len(d.Args))
	for _, arg := range d.Args {
		if !builtins.IsKnownBuiltin(arg.Value) {
			builder := errors.NewSemanticError(errors.ErrorGenericSemantic,
				fmt.Sprintf("Unknown builtin '%s'.", arg.Value), arg.Pos).
				WithLength(len(arg.Value))
			if similar := errors.FindSimilarNames(arg.Value, builtinNames()); len(similar) > 0 {
				builder = builder.WithSuggestion(fmt.Sprintf("did you mean '%s'?", similar[0]))
			}
			a.errors = append(a.errors, builder.Build())
			continue
		}
		names = append(names, arg.Value)
	}

	if !builtins.InCanonicalOrder(names) {
		a.errors = append(a.errors, errors.NewSemanticError(errors.ErrorGenericSemantic,
			"%builtins are not declared in canonical order.", d.Pos).
			WithLength(spanLength(d.Pos, d.EndPos)).
			WithNote(fmt.Sprintf("the order is: %s", strings.Join(builtinNames(), ", "))).
			Build())
	}
}

func (a *Analyzer) checkFunction(fn *ast.FunctionDecl) {
	entryDecs := entryPointDecorations(fn)
	if len(entryDecs) > 1 {
		second := entryDecs[1]
		a.addError(fmt.Sprintf("Function '%s' has more than one entry point decorator.", fn.Name.Value),
			second.Pos, spanLength(second.Pos, second.EndPos))
		return
	}
	if len(entryDecs) == 1 {
		a.checkEntryPoint(fn, entryDecs[0])
		return
	}
	if ok, pos := ast.HasDecorator(fn, "event"); ok {
		a.checkEvent(fn, pos)
		return
	}
	if ok, pos := ast.HasDecorator(fn, "storage_var"); ok {
		a.checkStorageVar(fn, pos)
		return
	}

	// Plain helper. Bodies are the full compiler's business; only the
	// decorator spelling is worth checking here.
	a.addIfError(VerifyDecorators(fn, functionDecorators, "functions"))
}

func (a *Analyzer) checkEntryPoint(fn *ast.FunctionDecl, dec ast.Decorator) {
	before := len(a.errors)
	kind := dec.Name.Value

	a.addIfError(VerifyDialect(a.lang, dec.Pos, "@"+kind))
	a.addIfError(VerifyDecorators(fn, entryPointDecorators, entryPointSubjects[kind]))
	if kind == "constructor" {
		a.addIfError(VerifyNoReturnValues(fn, "Constructors"))
	}
	a.checkSignature(fn)

	if len(a.errors) == before {
		fn.Attrs.EntryPoint = &ast.EntryPointAttr{Kind: kind, Decorator: dec.Pos}
	}
}

func (a *Analyzer) checkEvent(fn *ast.FunctionDecl, decPos ast.Position) {
	a.addIfError(VerifyDialect(a.lang, decPos, "@event"))
	a.addIfError(VerifyDecorators(fn, eventDecorators, "events"))
	a.addIfError(VerifyNoImplicitArguments(fn, "Events"))
	a.addIfError(VerifyNoReturnValues(fn, "Events"))
	a.requireEmptyBody(fn, "Events")
	for _, arg := range fn.Args {
		a.checkSignatureType(arg.Type)
	}
}

func (a *Analyzer) checkStorageVar(fn *ast.FunctionDecl, decPos ast.Position) {
	a.addIfError(VerifyDialect(a.lang, decPos, "@storage_var"))
	a.addIfError(VerifyDecorators(fn, storageVarDecorators, "storage variables"))
	a.addIfError(VerifyNoImplicitArguments(fn, "Storage variables"))
	a.requireEmptyBody(fn, "Storage variables")
	a.checkSignature(fn)
}

func (a *Analyzer) checkNamespace(ns *ast.NamespaceDecl) {
	a.addIfError(checkDecorators(ns.Decorators, namespaceDecorators, "namespaces"))

	isInterface := false
	for _, dec := range ns.Decorators {
		if dec.Name.Value == "contract_interface" {
			a.addIfError(VerifyDialect(a.lang, dec.Pos, "@contract_interface"))
			isInterface = true
			break
		}
	}
	if !isInterface {
		return
	}

	members := make(map[string]bool)
	for _, fn := range ns.Functions {
		if members[fn.Name.Value] {
			a.errors = append(a.errors, errors.DuplicateDeclaration(fn.Name.Value, fn.Name.Pos))
			continue
		}
		members[fn.Name.Value] = true
		a.checkInterfaceMember(ns, fn)
	}
}

func (a *Analyzer) checkInterfaceMember(ns *ast.NamespaceDecl, fn *ast.FunctionDecl) {
	a.addIfError(VerifyDecorators(fn, interfaceMemberDecorators, "contract interface members"))
	a.addIfError(VerifyNoImplicitArguments(fn, "Contract interface members"))
	a.requireEmptyBody(fn, "Contract interface members")
	a.checkSignatureType(fn.Returns)

	// The call stub flattens the member's arguments into calldata, so
	// unlike other signatures every argument type needs a known width.
	elements, err := encoder.EncodeCalldataArguments(fn.Args, a.resolver)
	if err != nil {
		a.errors = append(a.errors, *err)
		return
	}
	a.stubs[ns.Name.Value+"."+fn.Name.Value] = elements
}

// checkSignature resolves the declared argument and return types of a
// function. Implicit arguments are exempt: the OS supplies them and
// their types name VM builtins outside the type registry.
func (a *Analyzer) checkSignature(fn *ast.FunctionDecl) {
	for _, arg := range fn.Args {
		a.checkSignatureType(arg.Type)
	}
	a.checkSignatureType(fn.Returns)
}

// checkSignatureType reports unresolvable types in a declared
// signature. A name imported from outside the bundled catalog has no
// known layout; it stays acceptable here because the ABI carries it as
// a bare type string and no declaration check needs its width. It
// still fails where a width is required, such as interface call stubs
// and user struct members.
func (a *Analyzer) checkSignatureType(expr ast.TypeExpr) {
	switch t := expr.(type) {
	case *ast.NamedType:
		if imported := a.registry.GetImportedType(t.Name.Value); imported != nil && imported.Layout == nil {
			return
		}
		if _, err := a.resolver.ResolveTypeExpr(expr); err != nil {
			a.errors = append(a.errors, *err)
		}
	case *ast.PointerType:
		a.checkSignatureType(t.Elem)
	case *ast.TupleType:
		for _, member := range t.Members {
			a.checkSignatureType(member.Type)
		}
	}
}

func (a *Analyzer) requireEmptyBody(fn *ast.FunctionDecl, subject string) {
	if fn.Body.Empty {
		return
	}
	a.errors = append(a.errors, errors.NonEmptyBody(subject, fn.Body.Pos))
}

// declareName records a top-level name, reporting the second
// declaration of any name once.
func (a *Analyzer) declareName(name ast.Ident) bool {
	if a.declared[name.Value] {
		a.errors = append(a.errors, errors.DuplicateDeclaration(name.Value, name.Pos))
		return false
	}
	a.declared[name.Value] = true
	return true
}

// positionAccountError pins an ABI-level conformance error onto the
// declaration it talks about. The ABI carries no source positions, so
// VerifyAccountContract leaves them zero and this lookup restores them.
func (a *Analyzer) positionAccountError(err errors.CompilerError) errors.CompilerError {
	if err.Position != (ast.Position{}) {
		return err
	}

	target := a.file.Pos
	switch err.Code {
	case errors.ErrorSignatureMismatch:
		target = a.declPosition(abi.ExecuteEntryPointName, target)
	case errors.ErrorInvalidDeclareSignature:
		target = a.declPosition(abi.ValidateDeclareEntryPointName, target)
	case errors.ErrorUnexpectedAccountEntryPoints, errors.ErrorDuplicateEntryPoint:
		for _, fn := range a.file.Functions() {
			if abi.IsAccountEntryPointName(fn.Name.Value) {
				target = fn.Name.Pos
				break
			}
		}
	case errors.ErrorMissingAccountEntryPoints:
		// Nothing to point at; the top of the file is as good as any.
	}

	err.Position = target
	return err
}

func (a *Analyzer) declPosition(name string, fallback ast.Position) ast.Position {
	for _, fn := range a.file.Functions() {
		if fn.Name.Value == name {
			return fn.Name.Pos
		}
	}
	return fallback
}

func (a *Analyzer) addError(message string, pos ast.Position, length int) {
	a.errors = append(a.errors, errors.NewSemanticError(errors.ErrorGenericSemantic, message, pos).
		WithLength(length).
		Build())
}

func (a *Analyzer) addIfError(err *errors.CompilerError) {
	if err != nil {
		a.errors = append(a.errors, *err)
	}
}

func entryPointDecorations(fn *ast.FunctionDecl) []ast.Decorator {
	var found []ast.Decorator
	for _, dec := range fn.Decorators {
		if _, ok := entryPointSubjects[dec.Name.Value]; ok {
			found = append(found, dec)
		}
	}
	return found
}

func builtinNames() []string {
	known := builtins.KnownBuiltins()
	names := make([]string, len(known))
	for i, b := range known {
		names[i] = string(b)
	}
	return names
}

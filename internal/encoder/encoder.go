package encoder

import (
	"fmt"
	"strconv"

	"cairn/internal/ast"
	"cairn/internal/errors"
	"cairn/internal/types"
)

// EncodingType selects the buffer the emitted code writes into.
type EncodingType int

const (
	// EncodingCalldata flattens arguments for an outgoing call.
	EncodingCalldata EncodingType = iota
	// EncodingReturn flattens return values back to the caller.
	EncodingReturn
)

// PointerName is the conventional variable the emitted statements
// write through. The enclosing scope must declare it before they run.
func (t EncodingType) PointerName() string {
	if t == EncodingReturn {
		return "__return_value_ptr"
	}
	return "__calldata_ptr"
}

// ArgumentInfo is one argument to encode: its declared name, its
// resolved type and where it was declared.
type ArgumentInfo struct {
	Name      string
	CairoType types.CairoType
	Location  ast.Position
}

// NonOptionalLocation unwraps a position the caller must have. Encoded
// arguments always come from parsed declarations, so a missing position
// is a caller bug.
func NonOptionalLocation(pos *ast.Position) ast.Position {
	if pos == nil {
		errors.Internalf("encoder argument without a source location")
	}
	return *pos
}

// dataEncoder accumulates the emitted elements for one argument list.
type dataEncoder struct {
	pointer       string
	hasRangeCheck bool
	elements      []CodeElement
}

// EncodeData emits the statements that serialize the given arguments,
// in declaration order with no gaps, into the buffer selected by
// encType. Arrays are passed as a felt length named "<name>_len"
// immediately followed by the data pointer. Calldata encoding requires
// the range_check builtin because the emitted length checks use it.
func EncodeData(args []ArgumentInfo, encType EncodingType, hasRangeCheckBuiltin bool) ([]CodeElement, *errors.CompilerError) {
	if encType == EncodingCalldata && !hasRangeCheckBuiltin {
		errors.Internalf("calldata encoding requires the range_check builtin")
	}

	enc := &dataEncoder{
		pointer:       encType.PointerName(),
		hasRangeCheck: hasRangeCheckBuiltin,
	}

	for i := 0; i < len(args); i++ {
		arg := args[i]

		if isArrayLength(args, i) {
			if err := enc.encodeArray(arg, args[i+1]); err != nil {
				return nil, err
			}
			i++
			continue
		}

		if _, ok := arg.CairoType.(types.PointerType); ok {
			err := errors.MissingLengthArgument(arg.Name, arg.Name+"_len", arg.Location)
			return nil, &err
		}
		if containsPointer(arg.CairoType) {
			err := errors.UnsupportedCalldataType(arg.Name, arg.CairoType.String(), arg.Location)
			return nil, &err
		}

		enc.encodeValue(arg.Name, arg.CairoType)
	}

	return enc.elements, nil
}

// EncodeCalldataArguments resolves the declared types of a calldata
// argument list and emits the statements that flatten it under
// __calldata_ptr.
func EncodeCalldataArguments(args []ast.TypedIdent, resolver *types.Resolver) ([]CodeElement, *errors.CompilerError) {
	infos := make([]ArgumentInfo, 0, len(args))
	for _, arg := range args {
		resolved, err := resolver.ResolveTypeExpr(arg.Type)
		if err != nil {
			return nil, err
		}
		infos = append(infos, ArgumentInfo{
			Name:      arg.Name.Value,
			CairoType: resolved,
			Location:  NonOptionalLocation(&arg.Name.Pos),
		})
	}
	return EncodeData(infos, EncodingCalldata, true)
}

// isArrayLength reports whether args[i] opens an array pair: a felt
// named "<x>_len" immediately followed by a pointer named "<x>".
func isArrayLength(args []ArgumentInfo, i int) bool {
	if i+1 >= len(args) {
		return false
	}
	if _, ok := args[i].CairoType.(types.FeltType); !ok {
		return false
	}
	if _, ok := args[i+1].CairoType.(types.PointerType); !ok {
		return false
	}
	return args[i].Name == args[i+1].Name+"_len"
}

// encodeArray emits the length word followed by a block copy of the
// array body. The element type must flatten to a fixed felt count.
func (e *dataEncoder) encodeArray(length, body ArgumentInfo) *errors.CompilerError {
	elem := body.CairoType.(types.PointerType).Elem
	if containsPointer(elem) {
		err := errors.UnsupportedCalldataType(body.Name, body.CairoType.String(), body.Location)
		return &err
	}

	e.write(WriteWord{Pointer: e.pointer, Expr: length.Name})
	e.advance("1")
	if e.hasRangeCheck {
		e.write(AssertNonNegative{Expr: length.Name})
	}

	count := length.Name
	if size := elem.SizeInFelts(); size > 1 {
		count = fmt.Sprintf("%s * %d", length.Name, size)
	}
	e.write(CopyWords{Pointer: e.pointer, Src: body.Name, Len: count})
	e.advance(count)
	return nil
}

// encodeValue writes every felt of one argument at increasing offsets
// from the buffer pointer, then advances past them in a single step.
func (e *dataEncoder) encodeValue(expr string, t types.CairoType) {
	e.writeWords(expr, t, 0)
	e.advance(strconv.Itoa(t.SizeInFelts()))
}

// writeWords recurses through composite members, building the access
// path for each felt. It returns the next free offset.
func (e *dataEncoder) writeWords(expr string, t types.CairoType, offset int) int {
	switch t := t.(type) {
	case types.TupleType:
		for i, m := range t.Members {
			offset = e.writeWords(memberAccess(expr, m.Name, i), m.Type, offset)
		}
		return offset
	case types.StructType:
		for _, m := range t.Members {
			offset = e.writeWords(expr+"."+m.Name, m.Type, offset)
		}
		return offset
	default:
		e.write(WriteWord{Pointer: e.pointer, Offset: offset, Expr: expr})
		return offset + 1
	}
}

func (e *dataEncoder) write(element CodeElement) {
	e.elements = append(e.elements, element)
}

func (e *dataEncoder) advance(amount string) {
	e.write(AdvancePtr{Pointer: e.pointer, Amount: amount})
}

// memberAccess builds the Cairo expression for one member: dotted for
// named members, indexed for positional tuple slots.
func memberAccess(expr, name string, index int) string {
	if name != "" {
		return expr + "." + name
	}
	return fmt.Sprintf("%s[%d]", expr, index)
}

// containsPointer reports whether any felt of the flattened type would
// hold a memory address.
func containsPointer(t types.CairoType) bool {
	switch t := t.(type) {
	case types.PointerType:
		return true
	case types.TupleType:
		for _, m := range t.Members {
			if containsPointer(m.Type) {
				return true
			}
		}
	case types.StructType:
		for _, m := range t.Members {
			if containsPointer(m.Type) {
				return true
			}
		}
	}
	return false
}

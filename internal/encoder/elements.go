package encoder

import (
	"fmt"
	"strings"
)

// CodeElement is one emitted Cairo statement. Elements are pure data;
// Cairo renders the statement text without trailing newline.
type CodeElement interface {
	Cairo() string
}

// WriteWord stores one felt expression at a fixed offset from the
// buffer pointer. Offset zero renders without the arithmetic.
type WriteWord struct {
	Pointer string
	Offset  int
	Expr    string
}

// AdvancePtr rebinds the buffer pointer past the words written so far.
// Amount is an expression, not a count: array copies advance by
// "x_len * 3".
type AdvancePtr struct {
	Pointer string
	Amount  string
}

// AssertNonNegative guards an array length before it is used as a copy
// size. Only emitted when the surrounding code has the range_check
// builtin available.
type AssertNonNegative struct {
	Expr string
}

// CopyWords block-copies Len felts from Src to the buffer pointer.
type CopyWords struct {
	Pointer string
	Src     string
	Len     string
}

func (w WriteWord) Cairo() string {
	if w.Offset == 0 {
		return fmt.Sprintf("assert [%s] = %s;", w.Pointer, w.Expr)
	}
	return fmt.Sprintf("assert [%s + %d] = %s;", w.Pointer, w.Offset, w.Expr)
}

func (a AdvancePtr) Cairo() string {
	return fmt.Sprintf("let %s = %s + %s;", a.Pointer, a.Pointer, a.Amount)
}

func (a AssertNonNegative) Cairo() string {
	return fmt.Sprintf("assert_nn(%s);", a.Expr)
}

func (c CopyWords) Cairo() string {
	return fmt.Sprintf("memcpy(%s, %s, %s);", c.Pointer, c.Src, c.Len)
}

// Render joins elements into a code block, one statement per line.
func Render(elements []CodeElement) string {
	var b strings.Builder
	for _, element := range elements {
		b.WriteString(element.Cairo())
		b.WriteString("\n")
	}
	return b.String()
}

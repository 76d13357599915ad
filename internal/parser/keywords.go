package parser

var KEYWORDS = map[string]TokenType{
	"func":      FUNC,
	"struct":    STRUCT,
	"namespace": NAMESPACE,
	"from":      FROM,
	"import":    IMPORT,
	"as":        AS,
	"const":     CONST,
}

package parser

import (
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2/lexer"

	"cairn/grammar"
)

type Token struct {
	Type     TokenType
	Lexeme   string
	Position Position
}

// Scanner adapts the grammar package's stateful lexer to the token
// stream the declaration parser walks. Whitespace never reaches the
// parser; comments do, so they can be kept as contract items.
type Scanner struct {
	source string
	tokens []Token
	errors []ScanError
}

type ScanError struct {
	Message  string
	Position Position // line, column, offset
	Length   int      // optional: how many characters it covers
}

// Lexer rule symbols, resolved once.
var (
	cairoSymbols   = grammar.CairoLexer.Symbols()
	symComment     = cairoSymbols["Comment"]
	symDirective   = cairoSymbols["Directive"]
	symDecorator   = cairoSymbols["Decorator"]
	symIdent       = cairoSymbols["Ident"]
	symInteger     = cairoSymbols["Integer"]
	symShortString = cairoSymbols["ShortString"]
	symArrow       = cairoSymbols["Arrow"]
	symOperator    = cairoSymbols["Operator"]
	symPunct       = cairoSymbols["Punctuation"]
	symWhitespace  = cairoSymbols["Whitespace"]
)

var operatorTokens = map[string]TokenType{
	"+":  PLUS,
	"-":  MINUS,
	"*":  STAR,
	"**": STAR_STAR,
	"/":  SLASH,
	"=":  EQUAL,
	"==": EQUAL_EQUAL,
	"!=": BANG_EQUAL,
	"<":  LESS,
	">":  GREATER,
	"&":  AMPERSAND,
	"&&": AND,
}

var punctuationTokens = map[string]TokenType{
	",": COMMA,
	".": DOT,
	";": SEMICOLON,
	":": COLON,
	"(": LEFT_PAREN,
	")": RIGHT_PAREN,
	"{": LEFT_BRACE,
	"}": RIGHT_BRACE,
	"[": LEFT_BRACKET,
	"]": RIGHT_BRACKET,
}

func NewScanner(source string) *Scanner {
	return &Scanner{
		source: source,
	}
}

func (s *Scanner) ScanTokens() []Token {
	lex, err := grammar.CairoLexer.LexString("", s.source)
	if err != nil {
		s.reportLexError(err)
		s.tokens = append(s.tokens, Token{Type: EOF, Position: Position{Line: 1, Column: 1}})
		return s.tokens
	}

	for {
		tok, err := lex.Next()
		if err != nil {
			// The stateful lexer cannot skip past input no rule
			// matches, so scanning stops at the first bad character.
			s.reportLexError(err)
			s.tokens = append(s.tokens, Token{Type: EOF, Position: s.lastPosition()})
			return s.tokens
		}
		if tok.EOF() {
			s.tokens = append(s.tokens, Token{Type: EOF, Position: makePosition(tok.Pos)})
			return s.tokens
		}
		s.convert(tok)
	}
}

// convert maps one lexer token onto the parser's token set.
func (s *Scanner) convert(tok lexer.Token) {
	pos := makePosition(tok.Pos)

	switch tok.Type {
	case symWhitespace:
		return

	case symComment:
		s.addToken(COMMENT, tok.Value, pos)

	case symDirective:
		s.addToken(DIRECTIVE, tok.Value, pos)

	case symDecorator:
		s.addToken(DECORATOR, tok.Value, pos)

	case symIdent:
		s.addToken(lookupIdentifier(tok.Value), tok.Value, pos)

	case symInteger:
		if strings.HasPrefix(tok.Value, "0x") || strings.HasPrefix(tok.Value, "0X") {
			s.addToken(HEX_NUMBER, tok.Value, pos)
		} else {
			s.addToken(NUMBER, tok.Value, pos)
		}

	case symShortString:
		// Strip the quotes; the parser only sees the contents.
		s.addToken(STRING, tok.Value[1:len(tok.Value)-1], pos)

	case symArrow:
		s.addToken(ARROW, tok.Value, pos)

	case symOperator:
		if tt, ok := operatorTokens[tok.Value]; ok {
			s.addToken(tt, tok.Value, pos)
			return
		}
		s.reportError(fmt.Sprintf("Unexpected operator: %q", tok.Value), pos, len(tok.Value))

	case symPunct:
		if tt, ok := punctuationTokens[tok.Value]; ok {
			s.addToken(tt, tok.Value, pos)
			return
		}
		s.reportError(fmt.Sprintf("Unexpected punctuation: %q", tok.Value), pos, len(tok.Value))

	default:
		s.reportError(fmt.Sprintf("Unexpected character: %q", tok.Value), pos, len(tok.Value))
	}
}

func (s *Scanner) addToken(tokenType TokenType, lexeme string, pos Position) {
	s.tokens = append(s.tokens, Token{
		Type:     tokenType,
		Lexeme:   lexeme,
		Position: pos,
	})
}

func (s *Scanner) reportError(message string, pos Position, length int) {
	s.errors = append(s.errors, ScanError{
		Message:  message,
		Position: pos,
		Length:   length,
	})
}

func (s *Scanner) reportLexError(err error) {
	if lexErr, ok := err.(*lexer.Error); ok {
		s.reportError(lexErr.Msg, makePosition(lexErr.Pos), 1)
		return
	}
	s.reportError(err.Error(), s.lastPosition(), 1)
}

// lastPosition approximates where scanning stopped: just past the last
// converted token, or the start of input when nothing matched at all.
func (s *Scanner) lastPosition() Position {
	if len(s.tokens) == 0 {
		return Position{Line: 1, Column: 1}
	}
	last := s.tokens[len(s.tokens)-1]
	return Position{
		Line:   last.Position.Line,
		Column: last.Position.Column + len(last.Lexeme),
		Offset: last.Position.Offset + len(last.Lexeme),
	}
}

func makePosition(pos lexer.Position) Position {
	return Position{
		Line:   pos.Line,
		Column: pos.Column,
		Offset: pos.Offset,
	}
}

func lookupIdentifier(text string) TokenType {
	if t, ok := KEYWORDS[text]; ok {
		return t
	}
	return IDENTIFIER
}

// token.go — token kinds and the Token value itself (spec §3 "Token", §4.1).
//
// Grounded on the original implementation's lexer/enums.go symbol tables
// (mono/bi/tri-symbol groups, hard-keyword table) but flattened to a single
// keyword set matching spec §4.1's literal list — the original additionally
// splits some keywords into a context-sensitive "soft keyword" tier (else,
// switch, case, catch, as, in, spec, prop); this implementation treats all
// of spec §4.1's keywords as unconditional reserved words, which is simpler
// and still matches every construct spec.md describes (see DESIGN.md).
package safulate

import "fmt"

// TokenType identifies the lexical category of a Token.
type TokenType uint8

const (
	TokErr TokenType = iota
	TokEOF

	TokNum
	TokStr
	TokID

	// f-string fragments: START "text{", MIDDLE "}text{", END "}text"
	TokFstrStart
	TokFstrMiddle
	TokFstrEnd

	// punctuation / operators
	TokLParen
	TokRParen
	TokLBracket
	TokRBracket
	TokLBrace
	TokRBrace
	TokPlus
	TokMinus
	TokStar
	TokStarStar
	TokSlash
	TokEq
	TokEqEq
	TokEqEqEq
	TokNeq
	TokLess
	TokLessEq
	TokGrtr
	TokGrtrEq
	TokSemi
	TokComma
	TokDot
	TokDotDot
	TokEllipsis
	TokTilde
	TokNot
	TokAnd
	TokOr
	TokPipe
	TokAmp
	TokAt
	TokColon
	TokBoolCoerce // !!
	TokPlusEq
	TokMinusEq
	TokStarEq
	TokSlashEq
	TokStarStarEq
	TokBackslash // \ — priv access up the parent chain

	// keywords, per spec §4.1
	TokVar
	TokPub
	TokPriv
	TokLet
	TokDel
	TokReq
	TokFunc
	TokStruct
	TokSpec
	TokReturn
	TokIf
	TokElse
	TokWhile
	TokFor
	TokIn
	TokContains
	TokBreak
	TokContinue
	TokSwitch
	TokCase
	TokTry
	TokCatch
	TokRaise
	TokType
	TokProp
	TokProperty
	TokAs

	TokTrue
	TokFalse
	TokNull
)

var keywords = map[string]TokenType{
	"var":      TokVar,
	"pub":      TokPub,
	"priv":     TokPriv,
	"let":      TokLet,
	"del":      TokDel,
	"req":      TokReq,
	"func":     TokFunc,
	"struct":   TokStruct,
	"spec":     TokSpec,
	"return":   TokReturn,
	"if":       TokIf,
	"else":     TokElse,
	"while":    TokWhile,
	"for":      TokFor,
	"in":       TokIn,
	"contains": TokContains,
	"break":    TokBreak,
	"continue": TokContinue,
	"switch":   TokSwitch,
	"case":     TokCase,
	"try":      TokTry,
	"catch":    TokCatch,
	"raise":    TokRaise,
	"type":     TokType,
	"prop":     TokProp,
	"property": TokProperty,
	"as":       TokAs,
	"true":     TokTrue,
	"false":    TokFalse,
	"null":     TokNull,
}

// Token is one lexical unit: its kind, the exact source text it came from,
// and the span it occupies (used both for parse errors and for AST node
// spans built directly from their leading/trailing tokens).
type Token struct {
	Type   TokenType
	Lexeme string
	Span   Span
}

func (t Token) String() string {
	return fmt.Sprintf("Token(%v, %q)", t.Type, t.Lexeme)
}

// Is reports whether the token has the given type.
func (t Token) Is(tt TokenType) bool { return t.Type == tt }

package token

import "fmt"

// Kind represents the category of a source token.
type Kind uint8

const (
	Invalid Kind = iota
	EOF

	Ident
	Lifetime // 'a
	IntLit
	FloatLit
	StringLit    // "..." and b"..."
	RawStringLit // r#"..."# and br"..."
	CharLit      // 'c' and b'c'

	keywordBeg
	KwAs
	KwAsync
	KwAwait
	KwBreak
	KwConst
	KwContinue
	KwCrate
	KwDyn
	KwElse
	KwEnum
	KwExtern
	KwFalse
	KwFn
	KwFor
	KwIf
	KwImpl
	KwIn
	KwLet
	KwLoop
	KwMatch
	KwMod
	KwMove
	KwMut
	KwPub
	KwRef
	KwReturn
	KwSelfValue // self
	KwSelfType  // Self
	KwStatic
	KwStruct
	KwSuper
	KwTrait
	KwTrue
	KwType
	KwUnsafe
	KwUse
	KwWhere
	KwWhile
	keywordEnd

	Plus       // +
	Minus      // -
	Star       // *
	Slash      // /
	Percent    // %
	Caret      // ^
	Bang       // !
	Amp        // &
	Pipe       // |
	AndAnd     // &&
	OrOr       // ||
	Assign     // =
	EqEq       // ==
	BangEq     // !=
	Lt         // <
	Gt         // >
	At         // @
	Dot        // .
	DotDot     // ..
	DotDotDot  // ...
	DotDotEq   // ..=
	Comma      // ,
	Semicolon  // ;
	Colon      // :
	ColonColon // ::
	Arrow      // ->
	FatArrow   // =>
	Pound      // #
	Dollar     // $
	Question   // ?
	Tilde      // ~
	Underscore // _
	LParen     // (
	RParen     // )
	LBrace     // {
	RBrace     // }
	LBracket   // [
	RBracket   // ]
)

var kindText = [...]string{
	Invalid: "invalid", EOF: "EOF",
	Ident: "ident", Lifetime: "lifetime", IntLit: "int", FloatLit: "float",
	StringLit: "string", RawStringLit: "raw string", CharLit: "char",

	KwAs: "as", KwAsync: "async", KwAwait: "await", KwBreak: "break", KwConst: "const",
	KwContinue: "continue", KwCrate: "crate", KwDyn: "dyn", KwElse: "else", KwEnum: "enum",
	KwExtern: "extern", KwFalse: "false", KwFn: "fn", KwFor: "for", KwIf: "if", KwImpl: "impl",
	KwIn: "in", KwLet: "let", KwLoop: "loop", KwMatch: "match", KwMod: "mod", KwMove: "move",
	KwMut: "mut", KwPub: "pub", KwRef: "ref", KwReturn: "return", KwSelfValue: "self",
	KwSelfType: "Self", KwStatic: "static", KwStruct: "struct", KwSuper: "super",
	KwTrait: "trait", KwTrue: "true", KwType: "type", KwUnsafe: "unsafe", KwUse: "use",
	KwWhere: "where", KwWhile: "while",

	Plus: "+", Minus: "-", Star: "*", Slash: "/", Percent: "%", Caret: "^", Bang: "!",
	Amp: "&", Pipe: "|", AndAnd: "&&", OrOr: "||", Assign: "=", EqEq: "==", BangEq: "!=",
	Lt: "<", Gt: ">", At: "@", Dot: ".", DotDot: "..", DotDotDot: "...", DotDotEq: "..=",
	Comma: ",", Semicolon: ";", Colon: ":", ColonColon: "::", Arrow: "->", FatArrow: "=>",
	Pound: "#", Dollar: "$", Question: "?", Tilde: "~", Underscore: "_",
	LParen: "(", RParen: ")", LBrace: "{", RBrace: "}", LBracket: "[", RBracket: "]",
}

func (k Kind) String() string {
	if int(k) < len(kindText) && kindText[k] != "" {
		return kindText[k]
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// IsKeyword reports whether k is a reserved word.
func (k Kind) IsKeyword() bool {
	return k > keywordBeg && k < keywordEnd
}

// IsOpen reports whether k opens a delimited group.
func (k Kind) IsOpen() bool {
	return k == LParen || k == LBrace || k == LBracket
}

// IsClose reports whether k closes a delimited group.
func (k Kind) IsClose() bool {
	return k == RParen || k == RBrace || k == RBracket
}

// Closer returns the closing delimiter for an opening one, or Invalid.
func (k Kind) Closer() Kind {
	switch k {
	case LParen:
		return RParen
	case LBrace:
		return RBrace
	case LBracket:
		return RBracket
	default:
		return Invalid
	}
}

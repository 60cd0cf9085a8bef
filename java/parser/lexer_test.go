package parser

import (
	"testing"
)

func TestLexerNewLexer(t *testing.T) {
	lexer := NewLexer([]byte("class Foo {}"), "Test.java")
	pos := lexer.Position()

	if pos.File != "Test.java" {
		t.Errorf("File = %q, want %q", pos.File, "Test.java")
	}
	if pos.Line != 1 {
		t.Errorf("Line = %d, want %d", pos.Line, 1)
	}
	if pos.Column != 1 {
		t.Errorf("Column = %d, want %d", pos.Column, 1)
	}
	if pos.Offset != 0 {
		t.Errorf("Offset = %d, want %d", pos.Offset, 0)
	}
}

func TestLexerKeywords(t *testing.T) {
	tests := []struct {
		input string
		kind  TokenKind
	}{
		{"class", TokenClass},
		{"public", TokenPublic},
		{"private", TokenPrivate},
		{"protected", TokenProtected},
		{"static", TokenStatic},
		{"final", TokenFinal},
		{"abstract", TokenAbstract},
		{"interface", TokenInterface},
		{"extends", TokenExtends},
		{"implements", TokenImplements},
		{"void", TokenVoid},
		{"int", TokenInt},
		{"boolean", TokenBoolean},
		{"if", TokenIf},
		{"else", TokenElse},
		{"for", TokenFor},
		{"while", TokenWhile},
		{"return", TokenReturn},
		{"new", TokenNew},
		{"this", TokenThis},
		{"super", TokenSuper},
		{"true", TokenTrue},
		{"false", TokenFalse},
		{"null", TokenNull},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			lexer := NewLexer([]byte(tt.input), "test.java")
			tok := lexer.NextToken()
			if tok.Kind != tt.kind {
				t.Errorf("Kind = %v, want %v", tok.Kind, tt.kind)
			}
			if tok.Literal != tt.input {
				t.Errorf("Literal = %q, want %q", tok.Literal, tt.input)
			}
		})
	}
}

func TestLexerIdentifiers(t *testing.T) {
	tests := []string{
		"foo",
		"Bar",
		"_private",
		"$special",
		"camelCase",
		"SCREAMING_CASE",
		"with123Numbers",
	}

	for _, input := range tests {
		t.Run(input, func(t *testing.T) {
			lexer := NewLexer([]byte(input), "test.java")
			tok := lexer.NextToken()
			if tok.Kind != TokenIdent {
				t.Errorf("Kind = %v, want %v", tok.Kind, TokenIdent)
			}
			if tok.Literal != input {
				t.Errorf("Literal = %q, want %q", tok.Literal, input)
			}
		})
	}
}

func TestLexerOperators(t *testing.T) {
	tests := []struct {
		input string
		kind  TokenKind
	}{
		{"(", TokenLParen},
		{")", TokenRParen},
		{"{", TokenLBrace},
		{"}", TokenRBrace},
		{"[", TokenLBracket},
		{"]", TokenRBracket},
		{";", TokenSemicolon},
		{",", TokenComma},
		{".", TokenDot},
		{"...", TokenEllipsis},
		{"@", TokenAt},
		{"::", TokenColonColon},
		{":", TokenColon},
		{"=", TokenAssign},
		{"==", TokenEQ},
		{"!=", TokenNE},
		{"<", TokenLT},
		{"<=", TokenLE},
		{">", TokenGT},
		{">=", TokenGE},
		{"&&", TokenAnd},
		{"||", TokenOr},
		{"!", TokenNot},
		{"&", TokenBitAnd},
		{"|", TokenBitOr},
		{"^", TokenBitXor},
		{"~", TokenBitNot},
		{"<<", TokenShl},
		{">>", TokenShr},
		{">>>", TokenUShr},
		{"+", TokenPlus},
		{"-", TokenMinus},
		{"*", TokenStar},
		{"/", TokenSlash},
		{"%", TokenPercent},
		{"++", TokenIncrement},
		{"--", TokenDecrement},
		{"?", TokenQuestion},
		{"->", TokenArrow},
		{"+=", TokenPlusAssign},
		{"-=", TokenMinusAssign},
		{"*=", TokenStarAssign},
		{"/=", TokenSlashAssign},
		{"%=", TokenPercentAssign},
		{"&=", TokenAndAssign},
		{"|=", TokenOrAssign},
		{"^=", TokenXorAssign},
		{"<<=", TokenShlAssign},
		{">>=", TokenShrAssign},
		{">>>=", TokenUShrAssign},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			lexer := NewLexer([]byte(tt.input), "test.java")
			tok := lexer.NextToken()
			if tok.Kind != tt.kind {
				t.Errorf("Kind = %v, want %v", tok.Kind, tt.kind)
			}
			if tok.Literal != tt.input {
				t.Errorf("Literal = %q, want %q", tok.Literal, tt.input)
			}
		})
	}
}

func TestLexerNumbers(t *testing.T) {
	tests := []struct {
		input string
		kind  TokenKind
	}{
		{"0", TokenIntLiteral},
		{"123", TokenIntLiteral},
		{"1_000_000", TokenIntLiteral},
		{"123L", TokenIntLiteral},
		{"0x1F", TokenIntLiteral},
		{"0xDEAD_BEEF", TokenIntLiteral},
		{"0b1010", TokenIntLiteral},
		{"0b1010_1010", TokenIntLiteral},
		{"3.14", TokenFloatLiteral},
		{"3.14f", TokenFloatLiteral},
		{"3.14d", TokenFloatLiteral},
		{"1e10", TokenFloatLiteral},
		{"1.5e-10", TokenFloatLiteral},
		{"1.5E+10", TokenFloatLiteral},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			lexer := NewLexer([]byte(tt.input), "test.java")
			tok := lexer.NextToken()
			if tok.Kind != tt.kind {
				t.Errorf("Kind = %v, want %v", tok.Kind, tt.kind)
			}
			if tok.Literal != tt.input {
				t.Errorf("Literal = %q, want %q", tok.Literal, tt.input)
			}
		})
	}
}

func TestLexerStrings(t *testing.T) {
	tests := []struct {
		input string
		kind  TokenKind
	}{
		{`"hello"`, TokenStringLiteral},
		{`"hello world"`, TokenStringLiteral},
		{`"with \"escapes\""`, TokenStringLiteral},
		{`"with\nnewline"`, TokenStringLiteral},
		{`""`, TokenStringLiteral},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			lexer := NewLexer([]byte(tt.input), "test.java")
			tok := lexer.NextToken()
			if tok.Kind != tt.kind {
				t.Errorf("Kind = %v, want %v", tok.Kind, tt.kind)
			}
			if tok.Literal != tt.input {
				t.Errorf("Literal = %q, want %q", tok.Literal, tt.input)
			}
		})
	}
}

func TestLexerCharLiterals(t *testing.T) {
	tests := []string{
		`'a'`,
		`'\n'`,
		`'\''`,
		`'\\'`,
	}

	for _, input := range tests {
		t.Run(input, func(t *testing.T) {
			lexer := NewLexer([]byte(input), "test.java")
			tok := lexer.NextToken()
			if tok.Kind != TokenCharLiteral {
				t.Errorf("Kind = %v, want %v", tok.Kind, TokenCharLiteral)
			}
			if tok.Literal != input {
				t.Errorf("Literal = %q, want %q", tok.Literal, input)
			}
		})
	}
}

func TestLexerComments(t *testing.T) {
	t.Run("line comment", func(t *testing.T) {
		lexer := NewLexer([]byte("// this is a comment"), "test.java")
		tok := lexer.NextToken()
		if tok.Kind != TokenLineComment {
			t.Errorf("Kind = %v, want %v", tok.Kind, TokenLineComment)
		}
		if tok.Literal != "// this is a comment" {
			t.Errorf("Literal = %q", tok.Literal)
		}
	})

	t.Run("block comment", func(t *testing.T) {
		lexer := NewLexer([]byte("/* block comment */"), "test.java")
		tok := lexer.NextToken()
		if tok.Kind != TokenComment {
			t.Errorf("Kind = %v, want %v", tok.Kind, TokenComment)
		}
		if tok.Literal != "/* block comment */" {
			t.Errorf("Literal = %q", tok.Literal)
		}
	})

	t.Run("multiline block comment", func(t *testing.T) {
		input := "/* line1\n   line2 */"
		lexer := NewLexer([]byte(input), "test.java")
		tok := lexer.NextToken()
		if tok.Kind != TokenComment {
			t.Errorf("Kind = %v, want %v", tok.Kind, TokenComment)
		}
	})
}

func TestLexerTextBlock(t *testing.T) {
	input := `"""
    hello
    world
    """`
	lexer := NewLexer([]byte(input), "test.java")
	tok := lexer.NextToken()
	if tok.Kind != TokenTextBlock {
		t.Errorf("Kind = %v, want %v", tok.Kind, TokenTextBlock)
	}
}

func TestLexerWhitespace(t *testing.T) {
	lexer := NewLexer([]byte("   \t\n  "), "test.java")
	tok := lexer.NextToken()
	if tok.Kind != TokenWhitespace {
		t.Errorf("Kind = %v, want %v", tok.Kind, TokenWhitespace)
	}
}

func TestLexerEOF(t *testing.T) {
	lexer := NewLexer([]byte(""), "test.java")
	tok := lexer.NextToken()
	if tok.Kind != TokenEOF {
		t.Errorf("Kind = %v, want %v", tok.Kind, TokenEOF)
	}
}

func TestLexerPositionTracking(t *testing.T) {
	lexer := NewLexer([]byte("foo\nbar"), "test.java")

	tok1 := lexer.NextToken()
	if tok1.Span.Start.Line != 1 || tok1.Span.Start.Column != 1 {
		t.Errorf("First token at (%d, %d), want (1, 1)", tok1.Span.Start.Line, tok1.Span.Start.Column)
	}

	lexer.NextToken() // newline whitespace

	tok2 := lexer.NextToken()
	if tok2.Span.Start.Line != 2 || tok2.Span.Start.Column != 1 {
		t.Errorf("Second token at (%d, %d), want (2, 1)", tok2.Span.Start.Line, tok2.Span.Start.Column)
	}
}

func TestLexerSequence(t *testing.T) {
	input := "public class Foo { }"
	lexer := NewLexer([]byte(input), "test.java")

	expected := []TokenKind{
		TokenPublic,
		TokenWhitespace,
		TokenClass,
		TokenWhitespace,
		TokenIdent,
		TokenWhitespace,
		TokenLBrace,
		TokenWhitespace,
		TokenRBrace,
		TokenEOF,
	}

	for i, want := range expected {
		tok := lexer.NextToken()
		if tok.Kind != want {
			t.Errorf("Token %d: Kind = %v, want %v", i, tok.Kind, want)
		}
	}
}

func TestLexerUnknownCharacter(t *testing.T) {
	lexer := NewLexer([]byte("#"), "test.java")
	tok := lexer.NextToken()
	if tok.Kind != TokenError {
		t.Errorf("Kind = %v, want %v", tok.Kind, TokenError)
	}
}

func TestLexerUnicodeIdentifiers(t *testing.T) {
	tests := []string{
		"naïve",
		"größe",
		"名前",
		"x١",
	}

	for _, input := range tests {
		t.Run(input, func(t *testing.T) {
			lexer := NewLexer([]byte(input+" "), "test.java")
			tok := lexer.NextToken()
			if tok.Kind != TokenIdent {
				t.Errorf("Kind = %v, want %v", tok.Kind, TokenIdent)
			}
			if tok.Literal != input {
				t.Errorf("Literal = %q, want %q", tok.Literal, input)
			}
			if tok.Span.End.Offset != len(input) {
				t.Errorf("End.Offset = %d, want %d", tok.Span.End.Offset, len(input))
			}
		})
	}
}

func TestLexerNonSealed(t *testing.T) {
	tests := []struct {
		input string
		kinds []TokenKind
	}{
		{"non-sealed", []TokenKind{TokenNonSealed, TokenEOF}},
		{"non-sealed class", []TokenKind{TokenNonSealed, TokenWhitespace, TokenClass, TokenEOF}},
		{"non-sealedX", []TokenKind{TokenIdent, TokenMinus, TokenIdent, TokenEOF}},
		{"non - sealed", []TokenKind{TokenIdent, TokenWhitespace, TokenMinus, TokenWhitespace, TokenSealed, TokenEOF}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			lexer := NewLexer([]byte(tt.input), "test.java")
			for i, want := range tt.kinds {
				if tok := lexer.NextToken(); tok.Kind != want {
					t.Fatalf("token %d: Kind = %v, want %v", i, tok.Kind, want)
				}
			}
		})
	}
}

func TestLexerModuleWordsAreIdentifiers(t *testing.T) {
	for _, input := range []string{"module", "requires", "exports", "with", "to"} {
		lexer := NewLexer([]byte(input), "module-info.java")
		if tok := lexer.NextToken(); tok.Kind != TokenIdent {
			t.Errorf("%s: Kind = %v, want %v", input, tok.Kind, TokenIdent)
		}
	}
}

func TestLexerEscapedBraceInString(t *testing.T) {
	input := `"Hello \{name}" x`
	lexer := NewLexer([]byte(input), "test.java")
	tok := lexer.NextToken()
	if tok.Kind != TokenStringLiteral {
		t.Fatalf("Kind = %v, want %v", tok.Kind, TokenStringLiteral)
	}
	if tok.Literal != `"Hello \{name}"` {
		t.Errorf("Literal = %q", tok.Literal)
	}
}

func TestLexerInvalidRune(t *testing.T) {
	lexer := NewLexer([]byte("§;"), "test.java")
	tok := lexer.NextToken()
	if tok.Kind != TokenError {
		t.Errorf("Kind = %v, want %v", tok.Kind, TokenError)
	}
	if tok.Literal != "§" {
		t.Errorf("Literal = %q, want the whole rune", tok.Literal)
	}
	if next := lexer.NextToken(); next.Kind != TokenSemicolon {
		t.Errorf("next Kind = %v, want %v", next.Kind, TokenSemicolon)
	}
}

func TestLexerTokenSpans(t *testing.T) {
	lexer := NewLexer([]byte("int  x;\nfoo"), "test.java")
	tests := []struct {
		kind       TokenKind
		literal    string
		start, end int
		line, col  int
	}{
		{TokenInt, "int", 0, 3, 1, 1},
		{TokenIdent, "x", 5, 6, 1, 6},
		{TokenSemicolon, ";", 6, 7, 1, 7},
		{TokenIdent, "foo", 8, 11, 2, 1},
	}
	for i, tt := range tests {
		tok := lexer.NextToken()
		for tok.IsComment() || tok.Kind == TokenWhitespace {
			tok = lexer.NextToken()
		}
		if tok.Kind != tt.kind || tok.Literal != tt.literal {
			t.Fatalf("token %d = %v %q, want %v %q", i, tok.Kind, tok.Literal, tt.kind, tt.literal)
		}
		if tok.Span.Start.Offset != tt.start || tok.Span.End.Offset != tt.end {
			t.Errorf("token %d span = [%d,%d), want [%d,%d)", i, tok.Span.Start.Offset, tok.Span.End.Offset, tt.start, tt.end)
		}
		if tok.Span.Start.Line != tt.line || tok.Span.Start.Column != tt.col {
			t.Errorf("token %d start = %s, want %d:%d", i, tok.Span.Start, tt.line, tt.col)
		}
	}
	if tok := lexer.NextToken(); tok.Kind != TokenEOF {
		t.Errorf("last Kind = %v, want %v", tok.Kind, TokenEOF)
	}
}

func TestLexerOperatorLongestMatch(t *testing.T) {
	lexer := NewLexer([]byte(">>>=>>>..->-"), "test.java")
	want := []TokenKind{TokenUShrAssign, TokenUShr, TokenDot, TokenDot, TokenArrow, TokenMinus, TokenEOF}
	for i, kind := range want {
		if tok := lexer.NextToken(); tok.Kind != kind {
			t.Fatalf("token %d: Kind = %v, want %v", i, tok.Kind, kind)
		}
	}
}

package parser

import "io"

type Option func(*Parser)

func WithFile(path string) Option {
	return func(p *Parser) {
		p.file = path
	}
}

func WithComments() Option {
	return func(p *Parser) {
		p.includeComments = true
	}
}

func WithPositions() Option {
	return func(p *Parser) {
		p.includePositions = true
	}
}

// Parser builds a declaration tree for a Java compilation unit. Method
// bodies, initializers and annotation arguments are skipped by brace
// matching and only recorded as spans.
type Parser struct {
	file             string
	includeComments  bool
	includePositions bool
	reader           io.Reader
	input            []byte
	tokens           []Token
	comments         []Token
	pos              int
	incomplete       bool
}

func (p *Parser) IncludesPositions() bool {
	return p.includePositions
}

func (p *Parser) Comments() []Token {
	return p.comments
}

func ParseCompilationUnit(r io.Reader, opts ...Option) *Parser {
	p := &Parser{reader: r}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Finish parses the input. It returns nil when the input could not be read,
// is empty, or ends in the middle of a declaration.
func (p *Parser) Finish() *Node {
	if p.input == nil {
		data, err := io.ReadAll(p.reader)
		if err != nil {
			return nil
		}
		p.input = data
	}
	if len(p.input) == 0 {
		return nil
	}
	p.comments = nil
	p.pos = 0
	p.incomplete = false
	p.tokens = p.tokenize(NewLexer(p.input, p.file))
	result := p.parseCompilationUnit()
	if p.incomplete {
		return nil
	}
	return result
}

// Tokens returns the significant tokens of src, dropping whitespace and
// comments. The trailing EOF token is not included.
func Tokens(src []byte) []Token {
	p := &Parser{}
	toks := p.tokenize(NewLexer(src, ""))
	return toks[:len(toks)-1]
}

func (p *Parser) tokenize(lexer *Lexer) []Token {
	var tokens []Token
	for {
		tok := lexer.NextToken()
		if tok.Kind == TokenWhitespace {
			continue
		}
		if tok.IsComment() {
			if p.includeComments {
				p.comments = append(p.comments, tok)
			}
			continue
		}
		tokens = append(tokens, tok)
		if tok.Kind == TokenEOF {
			return tokens
		}
	}
}

func (p *Parser) peek() Token {
	if p.pos >= len(p.tokens) {
		return Token{Kind: TokenEOF}
	}
	return p.tokens[p.pos]
}

func (p *Parser) peekN(n int) Token {
	if p.pos+n >= len(p.tokens) {
		return Token{Kind: TokenEOF}
	}
	return p.tokens[p.pos+n]
}

func (p *Parser) advance() Token {
	tok := p.peek()
	if p.pos < len(p.tokens) {
		p.pos++
	}
	return tok
}

func (p *Parser) expect(kind TokenKind) *Token {
	tok := p.peek()
	if tok.Kind == kind {
		p.advance()
		return &tok
	}
	return nil
}

func (p *Parser) expectIdentifier() *Token {
	if p.isIdentifierLike() {
		tok := p.advance()
		return &tok
	}
	return nil
}

func (p *Parser) check(kind TokenKind) bool {
	return p.peek().Kind == kind
}

// mustProgress returns a function that checks if the parser has advanced.
// Call it at the start of a loop iteration, then call the returned function
// at the end to break if no progress was made.
func (p *Parser) mustProgress() func() bool {
	saved := p.pos
	return func() bool {
		if p.pos == saved {
			if !p.check(TokenEOF) {
				p.advance()
			}
			return false
		}
		return true
	}
}

func (p *Parser) isIdentifierLike() bool {
	return identifierLike(p.peek().Kind)
}

func identifierLike(kind TokenKind) bool {
	switch kind {
	case TokenIdent,
		TokenVar, TokenYield, TokenRecord, TokenSealed, TokenNonSealed, TokenPermits, TokenWhen:
		return true
	}
	return false
}

func (p *Parser) identifier() *Node {
	if tok := p.expectIdentifier(); tok != nil {
		return &Node{Kind: KindIdentifier, Token: tok, Span: tok.Span}
	}
	return nil
}

func (p *Parser) keyword() *Node {
	tok := p.advance()
	return &Node{Kind: KindIdentifier, Token: &tok, Span: tok.Span}
}

func (p *Parser) startNode(kind NodeKind) *Node {
	return &Node{
		Kind: kind,
		Span: Span{Start: p.peek().Span.Start},
	}
}

func (p *Parser) finishNode(n *Node) *Node {
	if p.pos > 0 && p.pos <= len(p.tokens) {
		n.Span.End = p.tokens[p.pos-1].Span.End
	} else if len(p.tokens) > 0 {
		n.Span.End = p.tokens[len(p.tokens)-1].Span.End
	}
	if isDeclaration(n.Kind) {
		widenStart(n)
	}
	return n
}

func isDeclaration(kind NodeKind) bool {
	switch kind {
	case KindClassDecl, KindInterfaceDecl, KindEnumDecl, KindRecordDecl,
		KindAnnotationDecl, KindMethodDecl, KindFieldDecl, KindConstructorDecl:
		return true
	}
	return false
}

// widenStart moves the start of a declaration back to its first non-empty
// child. Modifiers and return types are parsed before the declaration node
// is opened.
func widenStart(n *Node) {
	for _, child := range n.Children {
		if child.Span.Start.Line == 0 || (child.Kind == KindModifiers && len(child.Children) == 0) {
			continue
		}
		if child.Span.Start.Offset < n.Span.Start.Offset {
			n.Span.Start = child.Span.Start
		}
	}
}

func (p *Parser) errorNode(msg string, recoverTo []TokenKind, expected ...TokenKind) *Node {
	tok := p.peek()
	if tok.Kind == TokenEOF {
		p.incomplete = true
	}
	node := &Node{
		Kind: KindError,
		Span: Span{Start: tok.Span.Start, End: tok.Span.End},
		Error: &Error{
			Message:  msg,
			Expected: expected,
			Got:      &tok,
		},
	}
	p.recoverTo(recoverTo)
	return node
}

func (p *Parser) recoverTo(kinds []TokenKind) {
	if !p.check(TokenEOF) {
		p.advance()
	}
	if len(kinds) == 0 {
		return
	}
	for !p.check(TokenEOF) {
		for _, kind := range kinds {
			if p.check(kind) {
				return
			}
		}
		p.advance()
	}
}

// skipBalanced consumes a bracketed region starting at the current open
// token, including nested regions of the same kind.
func (p *Parser) skipBalanced(open, close TokenKind) {
	depth := 0
	for {
		switch p.peek().Kind {
		case TokenEOF:
			p.incomplete = true
			return
		case open:
			depth++
		case close:
			depth--
		}
		p.advance()
		if depth == 0 {
			return
		}
	}
}

// skipUntil consumes tokens up to, but not including, the first stop token
// that is not nested inside parentheses, braces or brackets.
func (p *Parser) skipUntil(stop TokenKind) {
	for !p.check(TokenEOF) {
		switch p.peek().Kind {
		case stop:
			return
		case TokenLParen:
			p.skipBalanced(TokenLParen, TokenRParen)
		case TokenLBrace:
			p.skipBalanced(TokenLBrace, TokenRBrace)
		case TokenLBracket:
			p.skipBalanced(TokenLBracket, TokenRBracket)
		default:
			p.advance()
		}
	}
}

var declarationStart = []TokenKind{
	TokenAt, TokenPublic, TokenPrivate, TokenProtected,
	TokenAbstract, TokenStatic, TokenFinal, TokenStrictfp,
	TokenClass, TokenInterface, TokenEnum, TokenRecord,
}

func (p *Parser) parseCompilationUnit() *Node {
	node := p.startNode(KindCompilationUnit)

	if p.check(TokenPackage) {
		node.AddChild(p.parsePackageDecl())
	}

	for p.check(TokenImport) {
		node.AddChild(p.parseImportDecl())
	}

	for !p.check(TokenEOF) {
		if p.check(TokenSemicolon) {
			p.advance()
			continue
		}
		progress := p.mustProgress()
		node.AddChild(p.parseTypeDecl())
		if !progress() {
			break
		}
	}

	return p.finishNode(node)
}

func (p *Parser) parsePackageDecl() *Node {
	node := p.startNode(KindPackageDecl)
	p.expect(TokenPackage)
	node.AddChild(p.parseQualifiedName())
	p.expect(TokenSemicolon)
	return p.finishNode(node)
}

func (p *Parser) parseImportDecl() *Node {
	node := p.startNode(KindImportDecl)
	p.expect(TokenImport)

	if p.check(TokenStatic) {
		node.AddChild(p.keyword())
	}

	node.AddChild(p.parseQualifiedName())

	if p.check(TokenDot) && p.peekN(1).Kind == TokenStar {
		p.advance()
		node.AddChild(p.keyword())
	}

	p.expect(TokenSemicolon)
	return p.finishNode(node)
}

func (p *Parser) parseQualifiedName() *Node {
	node := p.startNode(KindQualifiedName)
	node.AddChild(p.identifier())

	for p.check(TokenDot) && identifierLike(p.peekN(1).Kind) {
		p.advance()
		node.AddChild(p.identifier())
	}

	return p.finishNode(node)
}

func (p *Parser) parseTypeDecl() *Node {
	modifiers := p.parseModifiers()

	if decl := p.parseTypeDeclAfterModifiers(modifiers); decl != nil {
		return decl
	}

	if len(modifiers.Children) > 0 {
		return p.errorNode("expected class, interface, enum, record, or @interface", declarationStart)
	}
	return p.errorNode("expected type declaration", declarationStart)
}

// parseTypeDeclAfterModifiers returns nil if the next token does not start a
// type declaration.
func (p *Parser) parseTypeDeclAfterModifiers(modifiers *Node) *Node {
	switch p.peek().Kind {
	case TokenClass:
		return p.parseClassDecl(modifiers)
	case TokenInterface:
		return p.parseInterfaceDecl(modifiers)
	case TokenEnum:
		return p.parseEnumDecl(modifiers)
	case TokenRecord:
		if identifierLike(p.peekN(1).Kind) {
			return p.parseRecordDecl(modifiers)
		}
	case TokenAt:
		if p.peekN(1).Kind == TokenInterface {
			return p.parseAnnotationDecl(modifiers)
		}
	}
	return nil
}

func (p *Parser) parseModifiers() *Node {
	node := p.startNode(KindModifiers)

	for {
		switch p.peek().Kind {
		case TokenAt:
			if p.peekN(1).Kind == TokenInterface {
				return p.finishNode(node)
			}
			node.AddChild(p.parseAnnotation())
		case TokenPublic, TokenProtected, TokenPrivate,
			TokenAbstract, TokenStatic, TokenFinal,
			TokenStrictfp, TokenNative, TokenSynchronized,
			TokenTransient, TokenVolatile, TokenDefault,
			TokenSealed, TokenNonSealed:
			node.AddChild(p.keyword())
		default:
			return p.finishNode(node)
		}
	}
}

// parseAnnotation records the annotation name. Arguments are skipped.
func (p *Parser) parseAnnotation() *Node {
	node := p.startNode(KindAnnotation)
	p.expect(TokenAt)
	node.AddChild(p.parseQualifiedName())

	if p.check(TokenLParen) {
		p.skipBalanced(TokenLParen, TokenRParen)
	}

	return p.finishNode(node)
}

func (p *Parser) parseClassDecl(modifiers *Node) *Node {
	node := p.startNode(KindClassDecl)
	node.AddChild(modifiers)
	p.expect(TokenClass)
	node.AddChild(p.identifier())

	if p.check(TokenLT) {
		node.AddChild(p.parseTypeParameters())
	}
	if p.check(TokenExtends) {
		clause := p.startNode(KindExtendsClause)
		p.advance()
		clause.AddChild(p.parseType())
		node.AddChild(p.finishNode(clause))
	}
	if p.check(TokenImplements) {
		node.AddChild(p.parseTypeListClause(KindImplementsClause))
	}
	if p.check(TokenPermits) {
		node.AddChild(p.parseTypeListClause(KindPermitsClause))
	}

	node.AddChild(p.parseClassBody())
	return p.finishNode(node)
}

func (p *Parser) parseInterfaceDecl(modifiers *Node) *Node {
	node := p.startNode(KindInterfaceDecl)
	node.AddChild(modifiers)
	p.expect(TokenInterface)
	node.AddChild(p.identifier())

	if p.check(TokenLT) {
		node.AddChild(p.parseTypeParameters())
	}
	if p.check(TokenExtends) {
		node.AddChild(p.parseTypeListClause(KindExtendsClause))
	}
	if p.check(TokenPermits) {
		node.AddChild(p.parseTypeListClause(KindPermitsClause))
	}

	node.AddChild(p.parseClassBody())
	return p.finishNode(node)
}

func (p *Parser) parseEnumDecl(modifiers *Node) *Node {
	node := p.startNode(KindEnumDecl)
	node.AddChild(modifiers)
	p.expect(TokenEnum)
	node.AddChild(p.identifier())

	if p.check(TokenImplements) {
		node.AddChild(p.parseTypeListClause(KindImplementsClause))
	}

	node.AddChild(p.parseEnumBody())
	return p.finishNode(node)
}

// parseEnumBody parses the constants as field declarations followed by the
// regular class members.
func (p *Parser) parseEnumBody() *Node {
	node := p.startNode(KindBlock)
	if p.expect(TokenLBrace) == nil {
		return p.errorNode("expected {", declarationStart, TokenLBrace)
	}

	for p.isIdentifierLike() || p.check(TokenAt) {
		constant := p.startNode(KindFieldDecl)
		for p.check(TokenAt) {
			constant.AddChild(p.parseAnnotation())
		}
		constant.AddChild(p.identifier())
		if p.check(TokenLParen) {
			p.skipBalanced(TokenLParen, TokenRParen)
		}
		if p.check(TokenLBrace) {
			p.skipBalanced(TokenLBrace, TokenRBrace)
		}
		node.AddChild(p.finishNode(constant))
		if !p.check(TokenComma) {
			break
		}
		p.advance()
	}

	if p.check(TokenSemicolon) {
		p.advance()
		p.parseMembers(node)
	}

	p.closeBody(node)
	return p.finishNode(node)
}

func (p *Parser) parseRecordDecl(modifiers *Node) *Node {
	node := p.startNode(KindRecordDecl)
	node.AddChild(modifiers)
	p.expect(TokenRecord)
	node.AddChild(p.identifier())

	if p.check(TokenLT) {
		node.AddChild(p.parseTypeParameters())
	}

	node.AddChild(p.parseParameters())

	if p.check(TokenImplements) {
		node.AddChild(p.parseTypeListClause(KindImplementsClause))
	}

	node.AddChild(p.parseClassBody())
	return p.finishNode(node)
}

func (p *Parser) parseAnnotationDecl(modifiers *Node) *Node {
	node := p.startNode(KindAnnotationDecl)
	node.AddChild(modifiers)
	p.expect(TokenAt)
	p.expect(TokenInterface)
	node.AddChild(p.identifier())
	node.AddChild(p.parseClassBody())
	return p.finishNode(node)
}

// parseTypeListClause parses a keyword followed by a comma separated list of
// types (extends, implements, permits) into a clause node of the given kind.
func (p *Parser) parseTypeListClause(kind NodeKind) *Node {
	clause := p.startNode(kind)
	p.advance()

	for {
		progress := p.mustProgress()
		clause.AddChild(p.parseType())
		if !p.check(TokenComma) {
			break
		}
		p.advance()
		if !progress() {
			break
		}
	}

	return p.finishNode(clause)
}

func (p *Parser) parseTypeParameters() *Node {
	node := p.startNode(KindTypeParameters)
	p.expect(TokenLT)

	for {
		progress := p.mustProgress()
		node.AddChild(p.parseTypeParameter())
		if !p.check(TokenComma) {
			break
		}
		p.advance()
		if !progress() {
			break
		}
	}

	p.expectGT()
	return p.finishNode(node)
}

func (p *Parser) parseTypeParameter() *Node {
	node := p.startNode(KindTypeParameter)

	for p.check(TokenAt) {
		node.AddChild(p.parseAnnotation())
	}

	node.AddChild(p.identifier())

	if p.check(TokenExtends) {
		p.advance()
		for {
			node.AddChild(p.parseType())
			if !p.check(TokenBitAnd) {
				break
			}
			p.advance()
		}
	}

	return p.finishNode(node)
}

func (p *Parser) parseType() *Node {
	node := p.startNode(KindType)

	for p.check(TokenAt) {
		node.AddChild(p.parseAnnotation())
	}

	switch p.peek().Kind {
	case TokenBoolean, TokenByte, TokenChar, TokenShort,
		TokenInt, TokenLong, TokenFloat, TokenDouble, TokenVoid, TokenVar:
		node.AddChild(p.keyword())
	case TokenIdent:
		node.AddChild(p.parseQualifiedName())
		if p.check(TokenLT) {
			node.AddChild(p.parseTypeArguments())
		}
		// Outer<T>.Inner or Outer<T>.Inner<U>
		for p.check(TokenDot) && p.peekN(1).Kind == TokenIdent {
			p.advance()
			node.AddChild(p.parseQualifiedName())
			if p.check(TokenLT) {
				node.AddChild(p.parseTypeArguments())
			}
		}
	default:
		return p.errorNode("expected type", []TokenKind{TokenIdent, TokenSemicolon, TokenRParen, TokenComma, TokenRBrace})
	}

	node = p.finishNode(node)
	for p.check(TokenAt) || p.check(TokenLBracket) {
		progress := p.mustProgress()
		wrapper := p.startNode(KindArrayType)
		for p.check(TokenAt) {
			wrapper.AddChild(p.parseAnnotation())
		}
		if !p.check(TokenLBracket) {
			break
		}
		p.advance()
		p.expect(TokenRBracket)
		wrapper.AddChild(node)
		wrapper.Span.Start = node.Span.Start
		node = p.finishNode(wrapper)
		if !progress() {
			break
		}
	}

	return node
}

func (p *Parser) parseTypeArguments() *Node {
	node := p.startNode(KindTypeArguments)
	p.expect(TokenLT)

	if p.check(TokenGT) {
		p.advance()
		return p.finishNode(node)
	}

	for {
		progress := p.mustProgress()
		if p.check(TokenQuestion) {
			node.AddChild(p.parseWildcard())
		} else {
			node.AddChild(p.parseType())
		}
		if !p.check(TokenComma) {
			break
		}
		p.advance()
		if !progress() {
			break
		}
	}

	p.expectGT()
	return p.finishNode(node)
}

// expectGT consumes a closing angle bracket, splitting shift and compare
// operators the lexer produced for nested type arguments.
func (p *Parser) expectGT() bool {
	switch p.peek().Kind {
	case TokenGT:
		p.advance()
		return true
	case TokenShr:
		p.splitToken(TokenGT)
		return true
	case TokenUShr:
		p.splitToken(TokenShr)
		return true
	case TokenGE:
		p.splitToken(TokenAssign)
		return true
	case TokenShrAssign:
		p.splitToken(TokenGE)
		return true
	case TokenUShrAssign:
		p.splitToken(TokenShrAssign)
		return true
	}
	return false
}

// splitToken drops the leading '>' of the current token and leaves the
// remainder in place.
func (p *Parser) splitToken(remainder TokenKind) {
	tok := p.tokens[p.pos]
	p.tokens[p.pos] = Token{
		Kind:    remainder,
		Literal: tok.Literal[1:],
		Span: Span{
			Start: Position{
				File:   tok.Span.Start.File,
				Offset: tok.Span.Start.Offset + 1,
				Line:   tok.Span.Start.Line,
				Column: tok.Span.Start.Column + 1,
			},
			End: tok.Span.End,
		},
	}
}

func (p *Parser) parseWildcard() *Node {
	node := p.startNode(KindWildcard)
	p.expect(TokenQuestion)

	if p.check(TokenExtends) || p.check(TokenSuper) {
		node.AddChild(p.keyword())
		node.AddChild(p.parseType())
	}

	return p.finishNode(node)
}

func (p *Parser) parseClassBody() *Node {
	node := p.startNode(KindBlock)
	if p.expect(TokenLBrace) == nil {
		return p.errorNode("expected {", declarationStart, TokenLBrace)
	}
	p.parseMembers(node)
	p.closeBody(node)
	return p.finishNode(node)
}

func (p *Parser) parseMembers(body *Node) {
	for !p.check(TokenRBrace) && !p.check(TokenEOF) {
		progress := p.mustProgress()
		body.AddChild(p.parseClassMember())
		if !progress() {
			break
		}
	}
}

func (p *Parser) closeBody(body *Node) {
	if p.expect(TokenRBrace) == nil {
		body.AddChild(p.errorNode("expected }", nil, TokenRBrace))
	}
}

func (p *Parser) parseClassMember() *Node {
	switch {
	case p.check(TokenSemicolon):
		p.advance()
		return nil
	case p.check(TokenLBrace), p.check(TokenStatic) && p.peekN(1).Kind == TokenLBrace:
		node := p.startNode(KindInitializer)
		if p.check(TokenStatic) {
			node.AddChild(p.keyword())
		}
		node.AddChild(p.parseBody())
		return p.finishNode(node)
	}

	modifiers := p.parseModifiers()

	if decl := p.parseTypeDeclAfterModifiers(modifiers); decl != nil {
		return decl
	}

	var typeParams *Node
	if p.check(TokenLT) {
		typeParams = p.parseTypeParameters()
	}

	if p.isIdentifierLike() && p.peekN(1).Kind == TokenLParen {
		return p.parseConstructor(modifiers, typeParams)
	}

	// Compact record constructor: public Name { ... }
	if typeParams == nil && p.isIdentifierLike() && p.peekN(1).Kind == TokenLBrace {
		node := p.startNode(KindConstructorDecl)
		node.AddChild(modifiers)
		node.AddChild(p.identifier())
		node.AddChild(p.parseBody())
		return p.finishNode(node)
	}

	typ := p.parseType()
	if typ.IsError() {
		return typ
	}

	if p.isIdentifierLike() {
		if p.peekN(1).Kind == TokenLParen {
			return p.parseMethod(modifiers, typeParams, typ)
		}
		if typeParams == nil {
			return p.parseField(modifiers, typ)
		}
	}

	return p.errorNode("expected member declaration", append([]TokenKind{TokenRBrace, TokenSemicolon}, declarationStart...))
}

// parseBody records a brace delimited body as a childless block spanning
// the braces.
func (p *Parser) parseBody() *Node {
	node := p.startNode(KindBlock)
	p.skipBalanced(TokenLBrace, TokenRBrace)
	return p.finishNode(node)
}

func (p *Parser) parseConstructor(modifiers *Node, typeParams *Node) *Node {
	node := p.startNode(KindConstructorDecl)
	node.AddChild(modifiers)
	node.AddChild(typeParams)
	node.AddChild(p.identifier())
	node.AddChild(p.parseParameters())

	if p.check(TokenThrows) {
		node.AddChild(p.parseThrowsList())
	}

	if p.check(TokenLBrace) {
		node.AddChild(p.parseBody())
	} else {
		node.AddChild(p.errorNode("expected constructor body", []TokenKind{TokenRBrace, TokenSemicolon}, TokenLBrace))
	}
	return p.finishNode(node)
}

func (p *Parser) parseMethod(modifiers *Node, typeParams *Node, returnType *Node) *Node {
	node := p.startNode(KindMethodDecl)
	node.AddChild(modifiers)
	node.AddChild(typeParams)
	node.AddChild(returnType)
	node.AddChild(p.identifier())
	node.AddChild(p.parseParameters())

	for p.check(TokenLBracket) {
		p.advance()
		p.expect(TokenRBracket)
	}

	if p.check(TokenThrows) {
		node.AddChild(p.parseThrowsList())
	}

	switch {
	case p.check(TokenLBrace):
		node.AddChild(p.parseBody())
	case p.check(TokenDefault):
		p.advance()
		p.skipUntil(TokenSemicolon)
		p.expect(TokenSemicolon)
	default:
		if p.expect(TokenSemicolon) == nil {
			node.AddChild(p.errorNode("expected ; or method body", []TokenKind{TokenRBrace, TokenSemicolon}, TokenSemicolon, TokenLBrace))
		}
	}

	return p.finishNode(node)
}

// parseField records the declared variable names. An initializer ends the
// declaration.
func (p *Parser) parseField(modifiers *Node, typ *Node) *Node {
	node := p.startNode(KindFieldDecl)
	node.AddChild(modifiers)
	node.AddChild(typ)

	for {
		progress := p.mustProgress()
		node.AddChild(p.identifier())
		for p.check(TokenLBracket) {
			p.advance()
			p.expect(TokenRBracket)
		}
		if p.check(TokenAssign) {
			p.skipUntil(TokenSemicolon)
			break
		}
		if !p.check(TokenComma) {
			break
		}
		p.advance()
		if !progress() {
			break
		}
	}

	p.expect(TokenSemicolon)
	return p.finishNode(node)
}

func (p *Parser) parseParameters() *Node {
	node := p.startNode(KindParameters)
	p.expect(TokenLParen)

	for !p.check(TokenRParen) && !p.check(TokenEOF) {
		progress := p.mustProgress()
		node.AddChild(p.parseParameter())
		if !p.check(TokenComma) {
			break
		}
		p.advance()
		if !progress() {
			break
		}
	}

	if p.expect(TokenRParen) == nil {
		node.AddChild(p.errorNode("expected )", []TokenKind{TokenLBrace, TokenSemicolon, TokenRBrace}, TokenRParen))
	}
	return p.finishNode(node)
}

// parseParameter parses a formal parameter. Receiver parameters
// (Type this, Type Outer.this) get KindReceiverParameter.
func (p *Parser) parseParameter() *Node {
	node := p.startNode(KindParameter)
	node.AddChild(p.parseModifiers())
	node.AddChild(p.parseType())

	if p.check(TokenEllipsis) {
		node.AddChild(p.keyword())
	}

	switch {
	case p.check(TokenThis):
		p.advance()
		node.Kind = KindReceiverParameter
	case p.isIdentifierLike() && p.peekN(1).Kind == TokenDot && p.peekN(2).Kind == TokenThis:
		p.advance()
		p.advance()
		p.advance()
		node.Kind = KindReceiverParameter
	default:
		node.AddChild(p.identifier())
	}

	for p.check(TokenLBracket) {
		p.advance()
		p.expect(TokenRBracket)
	}

	return p.finishNode(node)
}

func (p *Parser) parseThrowsList() *Node {
	node := p.startNode(KindThrowsList)
	p.expect(TokenThrows)

	for {
		progress := p.mustProgress()
		node.AddChild(p.parseType())
		if !p.check(TokenComma) {
			break
		}
		p.advance()
		if !progress() {
			break
		}
	}

	return p.finishNode(node)
}

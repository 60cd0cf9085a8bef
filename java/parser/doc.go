// Package parser reads Java compilation units into a declaration tree.
//
// The lexer covers the full Java token set, including text blocks and
// contextual keywords. The parser only descends into the parts of the
// language that declare things: package and import declarations, type
// declarations, fields, methods, constructors, parameters, type parameters,
// type arguments and annotations. Method bodies, initializers, field
// initializers and annotation arguments are skipped by bracket matching;
// bodies are kept as childless KindBlock nodes whose span covers the braces.
//
// Every node carries a Span with byte offsets into the input, so callers can
// compute text edits directly from the tree. Declaration spans start at the
// first annotation or modifier.
//
// Malformed input produces KindError nodes and parsing continues at the next
// plausible declaration. Input that ends in the middle of a declaration makes
// Finish return nil.
//
//	p := parser.ParseCompilationUnit(r, parser.WithFile(path), parser.WithComments())
//	root := p.Finish()
//	comments := p.Comments()
package parser

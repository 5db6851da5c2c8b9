// Package binder turns a catalog routine declaration into a resolved
// managed callable: it parses the declaration source, reconciles an
// explicit parameter list against the catalog defaults, builds the
// matching signature and resolves the static method, falling back to a
// boxed return signature when the exact primitive one has no member.
package binder

import (
	"strings"
	"unicode"
)

// target is the parsed form of a routine declaration's source text:
// a dotted class name, a method name, and an optional explicit
// parameter declaration.
type target struct {
	class   string
	method  string
	decl    string
	hasDecl bool
}

// parseTarget splits "qualified.Class.method(decl)" into its parts. The
// parameter declaration is located by scanning backward from the end, so
// nothing in the class or method name is mistaken for one.
func parseTarget(src string) (target, error) {
	var tg target
	s := strings.TrimSpace(src)
	if s == "" {
		return tg, &SyntaxError{Source: src, Reason: "empty declaration"}
	}

	name := s
	if strings.HasSuffix(s, ")") {
		open := strings.LastIndexByte(s, '(')
		if open < 0 {
			return tg, &SyntaxError{Source: src, Reason: "unmatched ) in declaration"}
		}
		tg.decl = s[open+1 : len(s)-1]
		tg.hasDecl = true
		name = strings.TrimRightFunc(s[:open], unicode.IsSpace)
	}

	dot := strings.LastIndexByte(name, '.')
	if dot < 0 {
		return tg, &SyntaxError{Source: src, Reason: "declaration is missing a class name"}
	}
	tg.class = name[:dot]
	tg.method = name[dot+1:]

	if tg.method == "" {
		return tg, &SyntaxError{Source: src, Reason: "declaration is missing a method name"}
	}
	for _, r := range tg.method {
		if !isNameRune(r) {
			return tg, &SyntaxError{Source: src, Reason: "extraneous characters at end of method name"}
		}
	}
	if tg.class == "" {
		return tg, &SyntaxError{Source: src, Reason: "declaration is missing a class name"}
	}
	return tg, nil
}

// Method names admit letters and digits only; '_' and '$' are legal in
// managed identifiers but the declaration grammar does not accept them.
func isNameRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

// parseParamDecl splits an explicit parameter declaration into type name
// tokens. Tokens may not contain embedded whitespace; an empty
// declaration yields no tokens.
func parseParamDecl(decl string) ([]string, error) {
	if strings.TrimSpace(decl) == "" {
		return nil, nil
	}
	parts := strings.Split(decl, ",")
	tokens := make([]string, len(parts))
	for i, p := range parts {
		tok := strings.TrimSpace(p)
		if tok == "" {
			return nil, &SyntaxError{Source: decl, Reason: "empty parameter type in declaration"}
		}
		if strings.IndexFunc(tok, unicode.IsSpace) >= 0 {
			return nil, &SyntaxError{Source: decl, Reason: "whitespace inside parameter type name"}
		}
		tokens[i] = tok
	}
	return tokens, nil
}

// classPath converts a dotted class name to the slash form class loading
// expects.
func classPath(class string) string {
	return strings.ReplaceAll(class, ".", "/")
}

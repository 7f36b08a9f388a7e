// Copyright © 2024 The ELPS authors

// Package directive parses preprocessor directive lines.
//
//	directive := '#' <name> <arg>? <rest>?
//	name      := /[A-Za-z_]+/
//	arg       := /[A-Za-z_][A-Za-z0-9_]*/
//	rest      := /.+/
//
// Only single lines are parsed; continuation lines and the directive's
// expression grammar are out of reach on purpose.
package directive

import (
	"strings"

	parsec "github.com/prataprc/goparsec"
)

// Directive is one parsed preprocessor line.
type Directive struct {
	// Name is the directive keyword, e.g. "define" or "endif".
	Name string
	// Arg is the identifier following the keyword, if any.
	Arg string
	// Rest is the remaining text after Name and Arg, trimmed.
	Rest string
}

// HasComment reports whether a C comment follows the directive.
func (d Directive) HasComment() bool {
	return strings.Contains(d.Rest, "//") ||
		(strings.Contains(d.Rest, "/*") && strings.Contains(d.Rest, "*/"))
}

var parser = newParser()

func newParser() parsec.Parser {
	hash := parsec.Atom("#", "HASH")
	name := parsec.Token(`[A-Za-z_]+`, "NAME")
	arg := parsec.Token(`[A-Za-z_][A-Za-z0-9_]*`, "ARG")
	rest := parsec.Token(`.+`, "REST")
	return parsec.And(nil,
		hash,
		name,
		parsec.Maybe(nil, arg),
		parsec.Maybe(nil, rest),
	)
}

// Parse parses line as a preprocessor directive. It reports false when the
// line, after leading whitespace, is not a directive.
func Parse(line string) (Directive, bool) {
	trimmed := strings.TrimSpace(line)
	if !strings.HasPrefix(trimmed, "#") {
		return Directive{}, false
	}
	root, _ := parser(parsec.NewScanner([]byte(trimmed)))
	if root == nil {
		return Directive{}, false
	}
	var d Directive
	collect(root, &d)
	if d.Name == "" {
		return Directive{}, false
	}
	return d, true
}

func collect(node parsec.ParsecNode, d *Directive) {
	switch n := node.(type) {
	case *parsec.Terminal:
		switch n.Name {
		case "NAME":
			d.Name = n.Value
		case "ARG":
			d.Arg = n.Value
		case "REST":
			d.Rest = strings.TrimSpace(n.Value)
		}
	case []parsec.ParsecNode:
		for _, child := range n {
			collect(child, d)
		}
	}
}

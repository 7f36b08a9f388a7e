// Copyright © 2024 The ELPS authors

package lint

// regionKind selects how a run of lines computes its expected indentation
// and when it ends.
type regionKind int

const (
	// regionBasic is a brace-delimited block. It ends at its closing brace.
	regionBasic regionKind = iota
	// regionOneLine is the body of a braceless control keyword. It spans
	// exactly one line.
	regionOneLine
	// regionSwitchCase is the body of a case or default label. It ends at
	// a terminator, or just before the next label or closing brace.
	regionSwitchCase
)

// NewIndentationLevel returns the block-depth verifier. It infers block
// structure from brace lines, braceless control bodies and switch cases,
// and checks that every non-blank line is indented by unit spaces per
// nesting level.
func NewIndentationLevel(unit int) *Analyzer {
	return &Analyzer{
		Name:     "indentation-level",
		Doc:      "Check that every line is indented by a fixed number of spaces per block level.\n\nBlock structure is inferred from lines holding a lone brace, from braceless control bodies (an if, else, for, while or switch line not followed by \"{\", whose body is the next line) and from switch cases (a case or default label up to its break or return). Unbalanced braces are reported without stopping the scan.",
		Severity: SeverityError,
		Run: func(pass *Pass) {
			s := &blockScanner{pass: pass, lines: pass.Lines, unit: unit}
			s.region(regionBasic, 0)
			if s.open > 0 {
				pass.Reportf(len(s.lines)+1, "Expected %d more closing brace", s.open)
			}
		},
	}
}

// blockScanner is the cursor shared by every region of one verification.
// It lives for a single call to Run.
type blockScanner struct {
	pass  *Pass
	lines []string
	unit  int

	// pos is the index of the next line to consume.
	pos int
	// open counts brace blocks entered and not yet closed.
	open int
}

// region consumes lines belonging to a region of the given kind at the
// given depth and returns when the region ends or input runs out. It
// reports whether a basic region was ended by its closing brace.
func (s *blockScanner) region(kind regionKind, depth int) bool {
	for s.pos < len(s.lines) {
		line := s.lines[s.pos]

		// One-line bodies and switch cases never consume a structural
		// line: the enclosing block handles it.
		if kind != regionBasic && (IsClosingBraceLine(line) || IsSwitchLabel(line)) {
			return false
		}

		i := s.pos
		s.checkIndent(kind, depth, i)
		s.pos++

		if _, ok := OneLineControl(s.lines, i); ok {
			s.region(regionOneLine, depth+1)
		}

		switch kind {
		case regionOneLine:
			return false
		case regionBasic:
			switch {
			case IsOpeningBraceLine(line):
				s.block(depth)
			case IsClosingBraceLine(line):
				if depth == 0 {
					s.pass.Reportf(i+1, "Unexpected closing brace")
					continue
				}
				return true
			case IsSwitchLabel(line):
				s.region(regionSwitchCase, depth+1)
			}
		case regionSwitchCase:
			switch {
			case IsOpeningBraceLine(line):
				s.block(depth)
			case IsCaseTerminator(s.lines, i):
				return false
			}
		}
	}
	return false
}

// block enters the brace block opened on the previous line.
func (s *blockScanner) block(depth int) {
	s.open++
	if s.region(regionBasic, depth+1) {
		s.open--
	}
}

func (s *blockScanner) checkIndent(kind regionKind, depth, i int) {
	line := s.lines[i]
	if IsBlank(line) {
		return
	}
	level := depth
	if kind == regionBasic && IsClosingBraceLine(line) && level > 0 {
		level--
	}
	expected := level * s.unit
	if actual := LeadingWidth(line); actual != expected {
		s.pass.Reportf(i+1, "Wrong indentation level. Expected %d whitespaces got %d", expected, actual)
	}
}

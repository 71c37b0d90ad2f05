package pattern

import (
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"unbounded-life/pkg/cellstate"
	"unbounded-life/pkg/rule"
)

// Header is the signature written on the first line of serialized patterns.
const Header = "#Life 1.05"

type row struct {
	line  int
	width int
	alive []int
}

type block struct {
	origin   cellstate.Coord
	explicit bool
	rows     []row
}

type parser struct {
	res     Result
	blocks  []*block
	current *block
	blanks  []int
}

// ParseReader reads all of r and parses it. Only I/O failures are returned
// as errors.
func ParseReader(r io.Reader) (Result, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Result{}, fmt.Errorf("pattern: read: %w", err)
	}
	return Parse(string(data)), nil
}

// Parse decodes text. It never fails; problems are reported in
// Result.Diagnostics.
func Parse(text string) Result {
	p := &parser{res: Result{Rule: rule.Conway}}
	lines := strings.Split(text, "\n")
	if allBlank(lines) {
		p.res.State = cellstate.Empty()
		p.res.Diagnostics = []Diagnostic{{Kind: UnexpectedEmptyFile, Char: -1}}
		return p.res
	}
	p.current = &block{}
	p.blocks = []*block{p.current}

	for i, raw := range lines {
		if !p.line(i+1, strings.TrimRight(raw, " \t\r")) {
			break
		}
	}
	p.finish()
	return p.res
}

func allBlank(lines []string) bool {
	for _, l := range lines {
		if strings.TrimSpace(l) != "" {
			return false
		}
	}
	return true
}

func (p *parser) report(d Diagnostic) {
	p.res.Diagnostics = append(p.res.Diagnostics, d)
}

// line handles one line and reports whether parsing should continue.
func (p *parser) line(n int, text string) bool {
	switch {
	case text == "":
		if len(p.current.rows) > 0 {
			p.blanks = append(p.blanks, n)
		}
		return true
	case strings.HasPrefix(text, "#"):
		p.blanks = p.blanks[:0]
		return p.directive(n, text)
	case strings.HasPrefix(text, "!"):
		p.blanks = p.blanks[:0]
		p.comment(strings.TrimPrefix(text, "!"))
		return true
	}
	p.data(n, text)
	return true
}

func (p *parser) comment(text string) {
	text = strings.TrimSpace(text)
	if name, ok := strings.CutPrefix(text, "Name:"); ok {
		p.res.Name = strings.TrimSpace(name)
		return
	}
	p.res.Comments = append(p.res.Comments, text)
}

func (p *parser) directive(n int, text string) bool {
	if strings.HasPrefix(text, "#Life") {
		if text != Header {
			p.report(Diagnostic{Kind: UnexpectedHeader, Line: n, Char: -1, Input: text})
		}
		return true
	}
	if len(text) < 2 {
		p.report(Diagnostic{Kind: UnexpectedInput, Line: n, Char: 0, Input: text})
		return true
	}
	arg := strings.TrimSpace(text[2:])
	argAt := len(text) - len(strings.TrimLeft(text[2:], " \t"))
	switch text[:2] {
	case "#D", "#C":
		p.res.Comments = append(p.res.Comments, arg)
	case "#N":
		p.res.Rule = rule.Conway
	case "#R":
		r, err := rule.Parse(arg)
		if err != nil {
			p.report(Diagnostic{Kind: UnexpectedInput, Line: n, Char: argAt, Input: arg})
			return true
		}
		if !r.IsConway() {
			p.report(Diagnostic{Kind: RuleNotSupported, Line: n, Char: -1, Input: arg})
			return false
		}
		p.res.Rule = r
	case "#P":
		p.placement(n, text)
	default:
		token, _, _ := strings.Cut(text, " ")
		p.report(Diagnostic{Kind: UnexpectedInput, Line: n, Char: 0, Input: token})
	}
	return true
}

func (p *parser) placement(n int, text string) {
	var coords [2]int
	pos := 2
	for i := range coords {
		start, token := nextToken(text, pos)
		if token == "" {
			p.report(Diagnostic{Kind: UnexpectedInput, Line: n, Char: pos, Input: text[pos:]})
			return
		}
		v, err := strconv.Atoi(token)
		if err != nil {
			p.report(Diagnostic{Kind: UnexpectedInput, Line: n, Char: start, Input: token})
			return
		}
		coords[i] = v
		pos = start + len(token)
	}
	if start, token := nextToken(text, pos); token != "" {
		p.report(Diagnostic{Kind: UnexpectedInput, Line: n, Char: start, Input: text[start:]})
		return
	}

	origin := cellstate.Coord{X: coords[0], Y: coords[1]}
	next := &block{origin: origin, explicit: true}
	for i, b := range p.blocks {
		if b.origin == origin && (b.explicit || len(b.rows) > 0) {
			p.report(Diagnostic{Kind: DuplicateTopLeftCoordinate, Line: n, Char: -1, Offset: origin})
			p.blocks = slices.Delete(p.blocks, i, i+1)
			break
		}
	}
	p.blocks = append(p.blocks, next)
	p.current = next
}

// nextToken returns the next space-separated token at or after pos and its
// starting index.
func nextToken(text string, pos int) (int, string) {
	for pos < len(text) && (text[pos] == ' ' || text[pos] == '\t') {
		pos++
	}
	end := pos
	for end < len(text) && text[end] != ' ' && text[end] != '\t' {
		end++
	}
	return pos, text[pos:end]
}

func (p *parser) data(n int, text string) {
	b := p.current
	for _, blank := range p.blanks {
		p.report(Diagnostic{Kind: UnexpectedBlankLine, Line: blank, Char: -1})
		b.rows = append(b.rows, row{line: blank})
	}
	p.blanks = p.blanks[:0]

	r := row{line: n}
	for _, ch := range text {
		switch ch {
		case 'O', '*':
			r.alive = append(r.alive, r.width)
		case '.':
		default:
			p.report(Diagnostic{Kind: UnexpectedCharacter, Line: n, Char: r.width, Input: string(ch)})
			r.alive = append(r.alive, r.width)
		}
		r.width++
	}
	b.rows = append(b.rows, r)
}

func (p *parser) finish() {
	set := make(map[cellstate.Coord]struct{})
	for _, b := range p.blocks {
		width := 0
		for _, r := range b.rows {
			width = max(width, r.width)
		}
		for y, r := range b.rows {
			// Blank rows were already reported.
			if r.width > 0 && r.width < width {
				p.report(Diagnostic{Kind: UnexpectedShortLine, Line: r.line, Char: -1})
			}
			for _, x := range r.alive {
				set[cellstate.Coord{X: b.origin.X + x, Y: b.origin.Y + y}] = struct{}{}
			}
		}
	}
	slices.SortStableFunc(p.res.Diagnostics, func(a, b Diagnostic) int { return a.Line - b.Line })
	p.res.State = cellstate.FromSet(set)
}

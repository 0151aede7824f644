package application

import (
	"strconv"
	"strings"
	"unicode"
)

// StapleOperation names a staple set edit
type StapleOperation string

const (
	StapleOperationNone       StapleOperation = ""
	StapleOperationDelete     StapleOperation = "delete"
	StapleOperationMaximalSet StapleOperation = "maximal_set"
)

// StapleDirective is a parsed staple operation with the colors of the staples
// that survive it
type StapleDirective struct {
	Operation    StapleOperation
	RetainColors []int
}

// ParseStapleDirective parses "<operation>[,retain=<c1>:<c2>...]". Color
// lists may be separated by any non-word characters, so "retain=[1,2]" and
// "retain=1:2" are equivalent. An empty string yields the zero directive.
func ParseStapleDirective(raw string) (StapleDirective, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return StapleDirective{}, nil
	}

	op, rest, _ := strings.Cut(raw, ",")
	d := StapleDirective{Operation: StapleOperation(strings.TrimSpace(op))}
	switch d.Operation {
	case StapleOperationDelete, StapleOperationMaximalSet:
	default:
		return StapleDirective{}, &DirectiveError{Directive: raw, Reason: "unknown operation " + strconv.Quote(op)}
	}

	tokens := splitWords(rest)
	if len(tokens) == 0 {
		return d, nil
	}
	if tokens[0] != "retain" {
		return StapleDirective{}, &DirectiveError{Directive: raw, Reason: "expected retain=<colors>"}
	}
	for _, tok := range tokens[1:] {
		c, err := strconv.Atoi(tok)
		if err != nil {
			return StapleDirective{}, &DirectiveError{Directive: raw, Reason: "invalid color " + strconv.Quote(tok)}
		}
		d.RetainColors = append(d.RetainColors, c)
	}
	return d, nil
}

// String renders the directive in the form ParseStapleDirective accepts
func (d StapleDirective) String() string {
	if d.Operation == StapleOperationNone {
		return ""
	}
	if len(d.RetainColors) == 0 {
		return string(d.Operation)
	}
	colors := make([]string, len(d.RetainColors))
	for i, c := range d.RetainColors {
		colors[i] = strconv.Itoa(c)
	}
	return string(d.Operation) + ",retain=" + strings.Join(colors, ":")
}

// ParseColorList parses decimal colors separated by any non-word characters
func ParseColorList(raw string) ([]int, error) {
	var colors []int
	for _, tok := range splitWords(raw) {
		c, err := strconv.Atoi(tok)
		if err != nil {
			return nil, &ValidationError{Field: "colors", Message: "invalid color " + strconv.Quote(tok)}
		}
		colors = append(colors, c)
	}
	return colors, nil
}

func splitWords(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_'
	})
}

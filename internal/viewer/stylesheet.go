package viewer

import (
	"errors"
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

// Stylesheet maps selectors to their declarations, the shape the rendering
// engine accepts for theme registration.
type Stylesheet map[string]map[string]string

// Clone returns a deep copy.
func (s Stylesheet) Clone() Stylesheet {
	out := make(Stylesheet, len(s))
	for selector, decls := range s {
		out[selector] = maps.Clone(decls)
	}
	return out
}

// Merge returns a copy of s with the rules of other applied on top.
// Declarations of other win on conflict.
func (s Stylesheet) Merge(other Stylesheet) Stylesheet {
	out := s.Clone()
	for selector, decls := range other {
		if out[selector] == nil {
			out[selector] = make(map[string]string, len(decls))
		}
		maps.Copy(out[selector], decls)
	}
	return out
}

// CSS renders the stylesheet with selectors and properties sorted, so equal
// stylesheets always produce identical output.
func (s Stylesheet) CSS() string {
	var sb strings.Builder
	for _, selector := range slices.Sorted(maps.Keys(s)) {
		decls := s[selector]
		if len(decls) == 0 {
			continue
		}
		sb.WriteString(selector)
		sb.WriteString(" {\n")
		for _, prop := range slices.Sorted(maps.Keys(decls)) {
			fmt.Fprintf(&sb, "  %s: %s;\n", prop, decls[prop])
		}
		sb.WriteString("}\n")
	}
	return sb.String()
}

// ParseStylesheet parses CSS text into a Stylesheet. Grouped selectors are
// split into separate rules. At-rules are skipped together with their blocks,
// so rules nested in @media or @supports never apply unconditionally.
func ParseStylesheet(text string) (Stylesheet, error) {
	sheet := Stylesheet{}
	parser := css.NewParser(parse.NewInput(strings.NewReader(text)), false)

	for {
		gt, _, data := parser.Next()
		switch gt {
		case css.ErrorGrammar:
			if err := parser.Err(); err != nil && !errors.Is(err, io.EOF) {
				return nil, fmt.Errorf("failed to parse stylesheet: %w", err)
			}
			return sheet, nil

		case css.BeginRulesetGrammar:
			selectors := splitSelectors(data, parser.Values())
			decls, err := parseDeclarations(parser)
			if err != nil {
				return nil, err
			}
			for _, selector := range selectors {
				if sheet[selector] == nil {
					sheet[selector] = make(map[string]string, len(decls))
				}
				maps.Copy(sheet[selector], decls)
			}

		case css.BeginAtRuleGrammar:
			skipAtRuleBlock(parser)
		}
	}
}

// skipAtRuleBlock skips tokens until the end of the @-rule block just opened.
func skipAtRuleBlock(parser *css.Parser) {
	depth := 1
	for depth > 0 {
		gt, _, _ := parser.Next()
		switch gt {
		case css.ErrorGrammar:
			return
		case css.BeginAtRuleGrammar, css.BeginRulesetGrammar:
			depth++
		case css.EndAtRuleGrammar, css.EndRulesetGrammar:
			depth--
		}
	}
}

func splitSelectors(data []byte, values []css.Token) []string {
	var sb strings.Builder
	sb.Write(data)
	for _, v := range values {
		sb.Write(v.Data)
	}

	var selectors []string
	for _, s := range strings.Split(sb.String(), ",") {
		if s = strings.TrimSpace(s); s != "" {
			selectors = append(selectors, s)
		}
	}
	return selectors
}

func parseDeclarations(parser *css.Parser) (map[string]string, error) {
	decls := make(map[string]string)
	for {
		gt, _, data := parser.Next()
		switch gt {
		case css.EndRulesetGrammar:
			return decls, nil
		case css.ErrorGrammar:
			if err := parser.Err(); err != nil && !errors.Is(err, io.EOF) {
				return nil, fmt.Errorf("failed to parse declarations: %w", err)
			}
			return decls, nil
		case css.DeclarationGrammar:
			if value := joinValue(parser.Values()); value != "" {
				decls[strings.ToLower(string(data))] = value
			}
		}
	}
}

func joinValue(tokens []css.Token) string {
	var sb strings.Builder
	for _, t := range tokens {
		if t.TokenType == css.WhitespaceToken {
			if sb.Len() > 0 {
				sb.WriteByte(' ')
			}
			continue
		}
		sb.Write(t.Data)
	}
	return strings.TrimSpace(sb.String())
}

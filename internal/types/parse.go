package types

import (
	"fmt"
	"strings"
)

// ParseFormula parses the goal mini-language into a DNF formula.
//
// Grammar:
//
//	formula     = conjunction { "|" conjunction }
//	conjunction = literal { "&" literal }
//	literal     = [ "!" ] relation "(" id { "," id } ")"
//
// This is structured input with already-resolved object identifiers, not
// natural language: "ontop(a,b) & holding(c) | above(a,floor)".
func ParseFormula(input string) (Formula, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, fmt.Errorf("empty goal")
	}

	var formula Formula
	for _, part := range strings.Split(input, "|") {
		conj, err := parseConjunction(part)
		if err != nil {
			return nil, err
		}
		formula = append(formula, conj)
	}
	return formula, nil
}

func parseConjunction(input string) (Conjunction, error) {
	var conj Conjunction
	for _, part := range strings.Split(input, "&") {
		lit, err := parseLiteral(part)
		if err != nil {
			return nil, err
		}
		conj = append(conj, lit)
	}
	if len(conj) == 0 {
		return nil, fmt.Errorf("empty conjunction")
	}
	return conj, nil
}

func parseLiteral(input string) (Literal, error) {
	s := strings.TrimSpace(input)
	if s == "" {
		return Literal{}, fmt.Errorf("empty literal")
	}

	polarity := true
	if strings.HasPrefix(s, "!") {
		polarity = false
		s = strings.TrimSpace(s[1:])
	}

	open := strings.IndexByte(s, '(')
	if open < 0 || !strings.HasSuffix(s, ")") {
		return Literal{}, fmt.Errorf("literal %q: expected relation(args)", input)
	}

	rel, err := ParseRelation(s[:open])
	if err != nil {
		return Literal{}, fmt.Errorf("literal %q: %w", input, err)
	}

	var args []string
	for _, a := range strings.Split(s[open+1:len(s)-1], ",") {
		a = strings.TrimSpace(a)
		if a == "" {
			return Literal{}, fmt.Errorf("literal %q: empty argument", input)
		}
		args = append(args, a)
	}

	lit := Literal{Polarity: polarity, Relation: rel, Args: args}
	if !lit.WellFormed() {
		return Literal{}, fmt.Errorf("literal %q: %s takes %d argument(s), got %d",
			input, rel, rel.Arity(), len(args))
	}
	return lit, nil
}

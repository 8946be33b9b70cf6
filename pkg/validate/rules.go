package validate

import (
	"fmt"
	"strconv"
	"strings"
)

// Canonical rule kinds accepted in schema files.
const (
	RuleMin        = "min"
	RuleMax        = "max"
	RuleMinLength  = "minLength"
	RuleMaxLength  = "maxLength"
	RulePattern    = "pattern"
	RuleNumeric    = "numeric"
	RuleEmail      = "email"
	RuleURL        = "url"
	RuleIdentifier = "identifier"
	RuleOneOf      = "oneOf"
	RuleDate       = "date"
	RuleCEL        = "cel"
)

// Rule is a declarative validator. Bounds and lengths keep their threshold in
// Params["value"], patterns in Params["pattern"], choice lists in
// Params["values"] (comma separated) and CEL programs in Params["expr"].
type Rule struct {
	Kind    string            `json:"kind" yaml:"kind"`
	Params  map[string]string `json:"params,omitempty" yaml:"params,omitempty"`
	Message string            `json:"message,omitempty" yaml:"message,omitempty"`
}

// FromRule compiles a declarative rule into a validator.
func FromRule(rule Rule) (Validator, error) {
	param := func(key string) (string, error) {
		value := strings.TrimSpace(rule.Params[key])
		if value == "" {
			return "", fmt.Errorf("validate: rule %q requires param %q", rule.Kind, key)
		}
		return value, nil
	}
	intParam := func() (int, error) {
		raw, err := param("value")
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			return 0, fmt.Errorf("validate: rule %q: invalid value %q: %w", rule.Kind, raw, err)
		}
		return n, nil
	}
	floatParam := func() (float64, error) {
		raw, err := param("value")
		if err != nil {
			return 0, err
		}
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return 0, fmt.Errorf("validate: rule %q: invalid value %q: %w", rule.Kind, raw, err)
		}
		return f, nil
	}

	switch strings.TrimSpace(rule.Kind) {
	case RuleMinLength:
		n, err := intParam()
		if err != nil {
			return nil, err
		}
		return MinLength(n, rule.Message), nil
	case RuleMaxLength:
		n, err := intParam()
		if err != nil {
			return nil, err
		}
		return MaxLength(n, rule.Message), nil
	case RuleMin:
		f, err := floatParam()
		if err != nil {
			return nil, err
		}
		return Min(f, rule.Message), nil
	case RuleMax:
		f, err := floatParam()
		if err != nil {
			return nil, err
		}
		return Max(f, rule.Message), nil
	case RulePattern:
		expr, err := param("pattern")
		if err != nil {
			return nil, err
		}
		return Pattern(expr, rule.Message)
	case RuleNumeric:
		return Numeric(rule.Message), nil
	case RuleEmail:
		return Email(rule.Message), nil
	case RuleURL:
		return URL(rule.Message), nil
	case RuleIdentifier:
		return Identifier(rule.Message), nil
	case RuleDate:
		return Date(rule.Message), nil
	case RuleOneOf:
		raw, err := param("values")
		if err != nil {
			return nil, err
		}
		var values []string
		for _, value := range strings.Split(raw, ",") {
			if trimmed := strings.TrimSpace(value); trimmed != "" {
				values = append(values, trimmed)
			}
		}
		return OneOf(values, rule.Message), nil
	case RuleCEL:
		expr, err := param("expr")
		if err != nil {
			return nil, err
		}
		return Expr(expr, rule.Message)
	default:
		return nil, fmt.Errorf("validate: unknown rule kind %q", rule.Kind)
	}
}

// FromRules compiles rules in order.
func FromRules(rules []Rule) ([]Validator, error) {
	if len(rules) == 0 {
		return nil, nil
	}
	out := make([]Validator, 0, len(rules))
	for idx, rule := range rules {
		v, err := FromRule(rule)
		if err != nil {
			return nil, fmt.Errorf("validate: rule %d: %w", idx, err)
		}
		out = append(out, v)
	}
	return out, nil
}

package validate

import (
	"context"
	"testing"
)

func TestFromRule(t *testing.T) {
	cases := []struct {
		name  string
		rule  Rule
		field Target
		pass  bool
	}{
		{"min length", Rule{Kind: RuleMinLength, Params: map[string]string{"value": "2"}}, Target{Raw: "a", Value: "a"}, false},
		{"max length", Rule{Kind: RuleMaxLength, Params: map[string]string{"value": "2"}}, Target{Raw: "ab", Value: "ab"}, true},
		{"min", Rule{Kind: RuleMin, Params: map[string]string{"value": "1.5"}}, Target{Raw: "1", Value: float64(1)}, false},
		{"max", Rule{Kind: RuleMax, Params: map[string]string{"value": "10"}}, Target{Raw: "9", Value: float64(9)}, true},
		{"pattern", Rule{Kind: RulePattern, Params: map[string]string{"pattern": `\d{3}`}}, Target{Raw: "123", Value: "123"}, true},
		{"one of", Rule{Kind: RuleOneOf, Params: map[string]string{"values": "red, green"}}, Target{Raw: "green"}, true},
		{"email", Rule{Kind: RuleEmail}, Target{Raw: "x", Value: "x"}, false},
		{"cel", Rule{Kind: RuleCEL, Params: map[string]string{"expr": `size(raw) == 3`}}, Target{Raw: "abc", Value: "abc"}, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			v, err := FromRule(tc.rule)
			if err != nil {
				t.Fatalf("from rule: %v", err)
			}
			err = v.Validate(context.Background(), mapValues{}, tc.field)
			if (err == nil) != tc.pass {
				t.Fatalf("expected pass=%v, got %v", tc.pass, err)
			}
		})
	}
}

func TestFromRule_CustomMessage(t *testing.T) {
	v, err := FromRule(Rule{Kind: RuleMinLength, Params: map[string]string{"value": "5"}, Message: "Too short!"})
	if err != nil {
		t.Fatalf("from rule: %v", err)
	}
	msg, ok := Message(v.Validate(context.Background(), nil, Target{Raw: "abc", Value: "abc"}))
	if !ok || msg != "Too short!" {
		t.Fatalf("expected custom message, got %q", msg)
	}
}

func TestFromRule_Errors(t *testing.T) {
	cases := []Rule{
		{Kind: "levenshtein"},
		{Kind: RuleMinLength},
		{Kind: RuleMinLength, Params: map[string]string{"value": "many"}},
		{Kind: RulePattern, Params: map[string]string{"pattern": "("}},
		{Kind: RuleCEL, Params: map[string]string{"expr": "value +"}},
	}
	for _, rule := range cases {
		if _, err := FromRule(rule); err == nil {
			t.Errorf("expected error for rule %+v", rule)
		}
	}
}

func TestFromRules_PreservesOrder(t *testing.T) {
	validators, err := FromRules([]Rule{
		{Kind: RuleMinLength, Params: map[string]string{"value": "3"}, Message: "first"},
		{Kind: RuleMaxLength, Params: map[string]string{"value": "1"}, Message: "second"},
	})
	if err != nil {
		t.Fatalf("from rules: %v", err)
	}
	if len(validators) != 2 {
		t.Fatalf("expected 2 validators, got %d", len(validators))
	}
	msg, _ := Message(validators[0].Validate(context.Background(), nil, Target{Raw: "ab", Value: "ab"}))
	if msg != "first" {
		t.Fatalf("expected first rule first, got %q", msg)
	}
}

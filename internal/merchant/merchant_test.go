package merchant

import "testing"

func TestClean(t *testing.T) {
	tests := []struct {
		name        string
		description string
		want        string
	}{
		{
			"apple pay grocery store",
			"AplPay KROGER #339 000000339 INDIANAPOLIS IN 3175798309",
			"Kroger",
		},
		{
			"streaming service with phone and state",
			"NETFLIX.COM 1-866-579-7172 CA",
			"Netflix.Com",
		},
		{
			"apple pay gas station",
			"AplPay SPEEDWAY 1-800-643-1949 OH",
			"Speedway",
		},
		{
			"paren phone number",
			"TARGET (317)555-1234 INDIANAPOLIS IN",
			"Target Indianapolis",
		},
		{
			"plain name untouched",
			"Blue Bottle Coffee",
			"Blue Bottle Coffee",
		},
		{
			"corporate suffix",
			"WALMART INC",
			"Walmart",
		},
		{
			"empty input",
			"",
			"",
		},
		{
			"pure noise collapses to empty",
			"1-800-555-1212",
			"",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Clean(tt.description); got != tt.want {
				t.Errorf("Clean(%q) = %q, want %q", tt.description, got, tt.want)
			}
		})
	}
}

func TestCleanDeterministic(t *testing.T) {
	in := "AplPay KROGER #339 000000339 INDIANAPOLIS IN 3175798309"
	first := Clean(in)
	for i := 0; i < 10; i++ {
		if got := Clean(in); got != first {
			t.Fatalf("Clean is not deterministic: %q vs %q", got, first)
		}
	}
}

func TestCleanStripsAtMostOnePrefix(t *testing.T) {
	// "POS " matches before "POS PURCHASE "; only the first match is
	// removed, so "PURCHASE" survives as part of the name.
	got := Clean("POS PURCHASE STORE LLC")
	if got != "Purchase Store" {
		t.Errorf("Clean = %q, want %q", got, "Purchase Store")
	}
}

func TestRules(t *testing.T) {
	// Exercise each rule in isolation on already upper-cased input.
	tests := []struct {
		rule  string
		input string
		want  string
	}{
		{"card prefix", "CHECKCARD SHELL OIL", "SHELL OIL"},
		{"card prefix", "SHELL OIL", "SHELL OIL"},
		{"phone toll-free", "ACME 1-800-123-4567 STORE", "ACME STORE"},
		{"phone paren area", "ACME (317)555-1234", "ACME"},
		{"phone dashed", "ACME 317-555-1234", "ACME"},
		{"phone bare digits", "ACME 3175798309", "ACME"},
		{"phone bare digits", "ACME +13175798309", "ACME"},
		{"phone artifact", "ACME 1-", "ACME"},
		{"store number", "KROGER #339 ANYTHING AFTER", "KROGER"},
		{"long number tail", "ACME 0000339 INDIANAPOLIS", "ACME"},
		{"street number", "ACME ST 0042 REMAINDER", "ACME"},
		{"mob token", "ACME MOB", "ACME"},
		{"state code", "ACME IN", "ACME"},
		{"state code", "ACME IN 46220", "ACME"},
		{"state with city", "ACME IN INDIANAPOLIS", "ACME"},
		{"corporate suffix", "ACME LLC", "ACME"},
		{"tidy", "  ACME   FRESH  MARKET ", "Acme Fresh Market"},
		{"tidy", "NETFLIX.COM", "Netflix.Com"},
	}

	for _, tt := range tests {
		t.Run(tt.rule+"/"+tt.input, func(t *testing.T) {
			r, ok := findRule(tt.rule)
			if !ok {
				t.Fatalf("no rule named %q", tt.rule)
			}
			if got := r.apply(tt.input); got != tt.want {
				t.Errorf("rule %q on %q = %q, want %q", tt.rule, tt.input, got, tt.want)
			}
		})
	}
}

func findRule(name string) (rule, bool) {
	for _, r := range rules {
		if r.name == name {
			return r, true
		}
	}
	return rule{}, false
}

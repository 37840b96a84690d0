package templates

import (
	"reflect"
	"testing"
)

func TestExtractVariables(t *testing.T) {
	vars := ExtractVariables("Hi {name}", "Hi {name}, due {date}")
	if !reflect.DeepEqual(vars, []string{"name", "date"}) {
		t.Errorf("Expected [name date], got %v", vars)
	}
}

func TestExtractVariablesNoTokens(t *testing.T) {
	vars := ExtractVariables("Plain title", "Plain content")
	if len(vars) != 0 {
		t.Errorf("Expected no variables, got %v", vars)
	}
}

func TestExtractVariablesDeduplicates(t *testing.T) {
	vars := ExtractVariables("{a} {b} {a}", "{b} {c}")
	if !reflect.DeepEqual(vars, []string{"a", "b", "c"}) {
		t.Errorf("Expected [a b c], got %v", vars)
	}
}

func TestSubstitute(t *testing.T) {
	out := Substitute("Hi {name}, due {date}", map[string]string{
		"name": "Ann",
		"date": "2024-01-01",
	})
	if out != "Hi Ann, due 2024-01-01" {
		t.Errorf("Expected 'Hi Ann, due 2024-01-01', got %q", out)
	}
}

func TestSubstituteLeavesUnfilledTokensLiteral(t *testing.T) {
	out := Substitute("Hi {name}, due {date}", map[string]string{"name": "Ann"})
	if out != "Hi Ann, due {date}" {
		t.Errorf("Expected unfilled token left literal, got %q", out)
	}
}

func TestSubstituteReplacesEveryOccurrence(t *testing.T) {
	out := Substitute("{x} and {x} and {x}", map[string]string{"x": "y"})
	if out != "y and y and y" {
		t.Errorf("Expected every occurrence replaced, got %q", out)
	}
}

package templates

import (
	"regexp"
	"strings"
)

var variableRegex = regexp.MustCompile(`\{([^{}]+)\}`)

// ExtractVariables returns the distinct {variable} tokens appearing in the
// given texts, in order of first appearance
func ExtractVariables(texts ...string) []string {
	seen := make(map[string]struct{})
	var names []string
	for _, text := range texts {
		for _, match := range variableRegex.FindAllStringSubmatch(text, -1) {
			name := match[1]
			if _, ok := seen[name]; ok {
				continue
			}
			seen[name] = struct{}{}
			names = append(names, name)
		}
	}
	if names == nil {
		names = []string{}
	}
	return names
}

// Substitute replaces every {name} occurrence with its supplied value.
// Tokens with no value are left as literal text; missing values are not an
// error.
func Substitute(text string, values map[string]string) string {
	return variableRegex.ReplaceAllStringFunc(text, func(token string) string {
		name := strings.TrimSuffix(strings.TrimPrefix(token, "{"), "}")
		if value, ok := values[name]; ok {
			return value
		}
		return token
	})
}

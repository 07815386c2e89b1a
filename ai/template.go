package ai

import (
	"regexp"
	"strings"
)

// Alternative groups look like {ancient|modern|everyday}; one alternative is
// picked per expansion so repeated calls phrase the prompt differently.
var altPattern = regexp.MustCompile(`\{([^{}|]*(?:\|[^{}|]*)+)\}`)

// ExpandTemplate resolves every {a|b|c} group in a prompt template using
// pick, which must return a value in [0, n).
func ExpandTemplate(template string, pick func(n int) int) string {
	return altPattern.ReplaceAllStringFunc(template, func(group string) string {
		alternatives := strings.Split(group[1:len(group)-1], "|")
		return alternatives[pick(len(alternatives))]
	})
}

package support

import (
	"os"
	"regexp"
	"strings"

	"github.com/google/shlex"
)

var placeholderRe = regexp.MustCompile(`\$\{(\w+)\}`)

// Environ snapshots the process environment into a map. Interpolation
// works against an explicit snapshot so callers (and tests) control what
// the placeholders see.
func Environ() map[string]string {
	env := make(map[string]string)
	for _, kv := range os.Environ() {
		if k, v, ok := strings.Cut(kv, "="); ok {
			env[k] = v
		}
	}
	return env
}

// ExpandVariables replaces ${NAME} references with values from the
// snapshot. Unknown names collapse to the empty string.
func ExpandVariables(s string, env map[string]string) string {
	return placeholderRe.ReplaceAllStringFunc(s, func(ref string) string {
		name := ref[2 : len(ref)-1]
		return env[name]
	})
}

// SplitCommandLine tokenizes a raw command line with shell-like rules;
// quoted substrings stay single tokens.
func SplitCommandLine(raw string) ([]string, error) {
	return shlex.Split(raw)
}

// InterpolateArgs expands ${NAME} references and tokenizes the result.
func InterpolateArgs(raw string, env map[string]string) ([]string, error) {
	return SplitCommandLine(ExpandVariables(raw, env))
}

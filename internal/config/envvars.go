// ABOUTME: Environment variable expansion in path-like settings fields
// ABOUTME: Replaces ${VAR} patterns with os.Getenv values; unset vars become empty

package config

import (
	"os"
	"regexp"
)

var envVarPattern = regexp.MustCompile(`\$\{(\w+)\}`)

// ResolveEnvVars expands ${VAR} patterns in the words file path and the
// inline completion words.
func ResolveEnvVars(s *Settings) {
	s.Completion.WordsFile = expandEnv(s.Completion.WordsFile)
	for i, w := range s.Completion.Words {
		s.Completion.Words[i] = expandEnv(w)
	}
}

// expandEnv replaces ${VAR} with os.Getenv(VAR). Unset vars become "".
func expandEnv(s string) string {
	if s == "" {
		return s
	}
	return envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		varName := envVarPattern.FindStringSubmatch(match)[1]
		return os.Getenv(varName)
	})
}

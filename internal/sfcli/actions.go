package sfcli

import (
	"regexp"
	"strings"
)

// Suggested actions arrive as prose with the runnable command in double
// quotes, e.g. `Run "sf data bulk results --job-id 750..." to review ...`.
var quotedCommandRe = regexp.MustCompile(`"([^"]+)"`)

// ExtractCommand pulls the first quoted command out of an action string.
func ExtractCommand(action string) (string, bool) {
	m := quotedCommandRe.FindStringSubmatch(action)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// SplitCommand splits a command line into argv, honoring single and double
// quotes. Enough shellwords for CLI-suggested commands; no escapes or
// expansion.
func SplitCommand(s string) []string {
	var (
		args    []string
		current strings.Builder
		quote   rune
		inArg   bool
	)

	for _, r := range s {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
			} else {
				current.WriteRune(r)
			}
		case r == '\'' || r == '"':
			quote = r
			inArg = true
		case r == ' ' || r == '\t':
			if inArg {
				args = append(args, current.String())
				current.Reset()
				inArg = false
			}
		default:
			current.WriteRune(r)
			inArg = true
		}
	}
	if inArg {
		args = append(args, current.String())
	}
	return args
}

package main

import (
	"os"
	"strings"

	"scribe-cli/internal/cli"
)

// expandDocShortcut makes `scribe doc-xxxx` behave as `scribe docs show
// doc-xxxx`. Cobra would read the id as a subcommand name, so argv is
// rewritten before parsing. The scan only needs to know the two persistent
// flags: --dir takes a value, --pretty does not; anything else that looks
// like a flag is left for cobra to accept or reject.
func expandDocShortcut(argv []string) []string {
	for i := 1; i < len(argv); i++ {
		a := strings.TrimSpace(argv[i])
		switch {
		case a == "":
			// stray empty token, ignore

		case a == "--":
			if i+1 < len(argv) && looksLikeDocID(argv[i+1]) {
				return spliceShowArgs(argv, i+1)
			}
			return argv

		case a == "--dir":
			i++ // the flag's value is not a positional

		case strings.HasPrefix(a, "-"):
			// --pretty, --dir=..., or a flag cobra will complain about

		case looksLikeDocID(a):
			return spliceShowArgs(argv, i)

		default:
			// first positional is a real subcommand
			return argv
		}
	}
	return argv
}

func looksLikeDocID(s string) bool {
	s = strings.TrimSpace(s)
	return len(s) > len("doc-") && strings.HasPrefix(s, "doc-")
}

// spliceShowArgs inserts "docs show" in front of argv[i].
func spliceShowArgs(argv []string, i int) []string {
	out := make([]string, 0, len(argv)+2)
	out = append(out, argv[:i]...)
	out = append(out, "docs", "show")
	return append(out, argv[i:]...)
}

func main() {
	os.Args = expandDocShortcut(os.Args)

	if err := cli.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

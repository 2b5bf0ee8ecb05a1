package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"mandalart-cli/internal/cli"
)

func isGoalID(s string) bool {
	s = strings.TrimSpace(s)
	for _, p := range []string{"root-", "sub-"} {
		if strings.HasPrefix(s, p) && len(s) > len(p) {
			return true
		}
	}
	return false
}

// rewriteDirectGoalLookupArgs turns `mandalart <goal-id>` into
// `mandalart goals show <goal-id>`.
//
// Cobra treats the first non-flag token as a subcommand, so argv is rewritten
// before parsing. Persistent flags often come first (`mandalart --dir x
// sub-2025-0`), so the first positional token is searched for, not argv[1].
func rewriteDirectGoalLookupArgs(argv []string) []string {
	if len(argv) < 2 {
		return argv
	}

	// Unknown flags are skipped without consuming a value, so a goal id right
	// after them is still found.
	valueFlags := map[string]bool{
		"--dir":     true,
		"--backend": true,
		"--format":  true,
		"--year":    true,
		"--config":  true,
	}
	boolFlags := map[string]bool{
		"--pretty": true,
	}

	rewrite := func(i int) []string {
		out := make([]string, 0, len(argv)+2)
		out = append(out, argv[:i]...)
		out = append(out, "goals", "show")
		return append(out, argv[i:]...)
	}

	for i := 1; i < len(argv); i++ {
		a := strings.TrimSpace(argv[i])
		if a == "" {
			continue
		}
		if a == "--" {
			if i+1 < len(argv) && isGoalID(argv[i+1]) {
				return rewrite(i + 1)
			}
			return argv
		}
		if strings.HasPrefix(a, "-") {
			if strings.Contains(a, "=") || boolFlags[a] {
				continue
			}
			if valueFlags[a] {
				i++
			}
			continue
		}
		if isGoalID(a) {
			return rewrite(i)
		}
		return argv
	}
	return argv
}

func main() {
	os.Args = rewriteDirectGoalLookupArgs(os.Args)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd := cli.NewRootCmd()
	if err := cmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/xolan/tasktime/internal/cli"
	"github.com/xolan/tasktime/internal/secret"
)

// SetToken stores token, prompting for it without echo when empty.
func SetToken(ctx context.Context, deps *cli.Deps, token string, verify bool) {
	if token == "" {
		answer, ok := deps.PromptSecret("API token: ")
		if !ok {
			_, _ = fmt.Fprintln(deps.Stdout, "Cancelled")
			return
		}
		token = answer
	}
	token = strings.TrimSpace(token)
	if token == "" {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Token cannot be empty")
		deps.Exit(1)
		return
	}

	if err := deps.Services.Token.Set(token); err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: Failed to store token: %v\n", err)
		deps.Exit(1)
		return
	}
	_, _ = fmt.Fprintf(deps.Stdout, "Token saved (%s)\n", secret.Mask(token))

	if verify {
		ShowTokenStatus(ctx, deps, true)
	}
}

// ClearToken removes the stored token.
func ClearToken(deps *cli.Deps) {
	if err := deps.Services.Token.Clear(); err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: Failed to remove token: %v\n", err)
		deps.Exit(1)
		return
	}
	_, _ = fmt.Fprintln(deps.Stdout, "Token removed")
}

// ShowTokenStatus reports whether a token is set and, with verify, whether
// the tracker accepts it.
func ShowTokenStatus(ctx context.Context, deps *cli.Deps, verify bool) {
	status, err := deps.Services.Token.Status(ctx, verify)
	if err != nil {
		cli.ReportError(deps, err)
		return
	}

	if !status.Set {
		_, _ = fmt.Fprintln(deps.Stdout, "Token: not set")
		_, _ = fmt.Fprintln(deps.Stdout, "Set one with: tasktime token set")
		return
	}

	source := "credentials file"
	if status.FromEnv {
		source = "$" + secret.EnvToken
	}
	_, _ = fmt.Fprintf(deps.Stdout, "Token: %s (from %s)\n", status.Masked, source)
	if status.Tracker != "" {
		_, _ = fmt.Fprintf(deps.Stdout, "Tracker: %s\n", status.Tracker)
	}

	if !status.Checked {
		return
	}
	if status.Verified {
		_, _ = fmt.Fprintln(deps.Stdout, "Verified: ✓ accepted by the tracker")
		return
	}
	_, _ = fmt.Fprintf(deps.Stderr, "Verified: ✗ %v\n", status.CheckErr)
	if hint := cli.Hint(status.CheckErr); hint != "" {
		_, _ = fmt.Fprintf(deps.Stderr, "Hint: %s\n", hint)
	}
	deps.Exit(1)
}

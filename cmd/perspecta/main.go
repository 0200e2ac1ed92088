// Command perspecta resolves launch input the way the viewer does at
// startup and prints the resulting launch plan.
//
//	perspecta [--open] <path>...
//	perspecta 'perspecta://open?dicomweb=...&study=...'
//
// Settings come from PERSPECTA_LOG_LEVEL, PERSPECTA_LOG_FORMAT,
// PERSPECTA_STRICT_PARAMS and PERSPECTA_OUTPUT.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/caio-sobreiro/perspecta/config"
	"github.com/caio-sobreiro/perspecta/launch"
	"github.com/caio-sobreiro/perspecta/services"
	"github.com/caio-sobreiro/perspecta/types"
)

func main() {
	os.Exit(run(os.Args[1:], nil, os.Stdout, os.Stderr))
}

// run resolves args and prints the plan. environ replaces the process
// environment when non-nil. A rejected launch is not a failure: the plan
// falls back to an empty start and the exit code stays 0.
func run(args []string, environ map[string]string, stdout, stderr io.Writer) int {
	cfg, err := config.Load(environ)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	logger := config.NewLogger(cfg.LogLevel, cfg.LogFormat, stderr)
	slog.SetDefault(logger)
	ctx := context.Background()

	resolver := launch.New(launch.WithStrictParams(cfg.StrictParams))
	plan, resolveErr := resolve(ctx, resolver, args)

	dispatcher := services.NewDispatcher(services.NewPrintLauncher(stdout, cfg.Output))
	if err := dispatcher.Launch(ctx, plan, resolveErr); err != nil {
		slog.ErrorContext(ctx, "Failed to launch", "error", err)
		return 1
	}
	return 0
}

func resolve(ctx context.Context, r *launch.Resolver, args []string) (types.LaunchPlan, error) {
	if len(args) != 1 || !launch.IsLaunchURL(args[0]) {
		return r.ResolveArgs(args)
	}

	bag, err := launch.ParseURL(args[0])
	if err != nil {
		return nil, err
	}
	if unknown := bag.Unrecognized(); len(unknown) > 0 {
		slog.InfoContext(ctx, "Ignoring unrecognized launch parameters", "keys", unknown)
	}
	return r.ResolveParams(bag)
}

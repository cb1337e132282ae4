package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/bitrise-io/go-utils/v2/env"
	"github.com/bitrise-io/go-utils/v2/log"
	"github.com/bitrise-steplib/steps-helix-alm-report/envrepo"
	"github.com/bitrise-steplib/steps-helix-alm-report/format"
	"github.com/bitrise-steplib/steps-helix-alm-report/step"
	"github.com/bitrise-steplib/steps-helix-alm-report/version"
	"github.com/kballard/go-shellquote"
	"github.com/urfave/cli/v2"
)

type executeFunc func(ctx context.Context, envRepository env.Repository) int

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := log.NewLogger()
	app := newApp(env.NewRepository(), func(ctx context.Context, envRepository env.Repository) int {
		return step.Execute(ctx, envRepository, logger)
	})

	if err := app.RunContext(ctx, os.Args); err != nil {
		logger.Errorf("%s", err)
		os.Exit(1)
	}
}

func newApp(envRepository env.Repository, execute executeFunc) *cli.App {
	return &cli.App{
		Name:      version.ToolName,
		Usage:     fmt.Sprintf("Submit %v test reports to Helix ALM as an automation build", format.SupportedFormats()),
		UsageText: fmt.Sprintf("%s [options] <report file>...", version.ToolName),
		Version:   version.Semantic().String(),
		Flags:     flags,
		Action: func(c *cli.Context) error {
			if c.NArg() == 0 {
				return cli.Exit("at least one report file is required", 1)
			}

			values := inputValues(c)
			values["report_files"] = shellquote.Join(c.Args().Slice()...)

			if code := execute(c.Context, envrepo.NewOverlay(values, envRepository)); code != 0 {
				return cli.Exit("", code)
			}
			return nil
		},
	}
}

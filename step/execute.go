package step

import (
	"context"

	"github.com/bitrise-io/go-steputils/v2/export"
	"github.com/bitrise-io/go-steputils/v2/stepconf"
	"github.com/bitrise-io/go-utils/v2/command"
	"github.com/bitrise-io/go-utils/v2/env"
	"github.com/bitrise-io/go-utils/v2/fileutil"
	"github.com/bitrise-io/go-utils/v2/log"
	"github.com/bitrise-steplib/steps-helix-alm-report/envrepo"
	"github.com/bitrise-steplib/steps-helix-alm-report/halm"
	"github.com/bitrise-steplib/steps-helix-alm-report/output"
	"github.com/bitrise-steplib/steps-helix-alm-report/testaddon"
)

// Execute processes the config read from envRepository, runs the reporter and exports
// its outputs. It returns the process exit code.
func Execute(ctx context.Context, envRepository env.Repository, logger log.Logger) int {
	inputRepository := WithDefaultInputs(envRepository)
	configParser := NewConfigParser(stepconf.NewInputParser(inputRepository), inputRepository, NewDefaultsLoader(logger), logger)
	config, err := configParser.ProcessConfig()
	if err != nil {
		logger.Errorf("Process config: %s", err)
		return 1
	}

	reporter := createReporter(envRepository, logger)

	result, runErr := reporter.Run(ctx, config)
	if runErr != nil {
		logger.Errorf("Run: %s", runErr)
	}

	if err := reporter.Export(result, runErr != nil); err != nil {
		logger.Errorf("Export outputs: %s", err)
		return 1
	}

	if runErr != nil {
		return 1
	}
	return 0
}

// WithDefaultInputs returns a repository which falls back to DefaultInputs for the keys
// envRepository leaves empty.
func WithDefaultInputs(envRepository env.Repository) env.Repository {
	defaults := map[string]string{}
	for key, value := range DefaultInputs() {
		if envRepository.Get(key) == "" {
			defaults[key] = value
		}
	}
	return envrepo.NewOverlay(defaults, envRepository)
}

func createReporter(envRepository env.Repository, logger log.Logger) Reporter {
	commandFactory := command.NewFactory(envRepository)
	fileManager := fileutil.NewFileManager()

	testAddonExporter := testaddon.NewExporter(testaddon.NewTestAddon(commandFactory, fileManager, logger))
	outputExporter := output.NewExporter(envRepository, logger, fileManager, export.NewExporter(commandFactory, fileManager), testAddonExporter)

	return NewReporter(logger, fileManager, halm.NewClientFactory(logger), outputExporter)
}

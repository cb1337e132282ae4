package step

import (
	"context"
	"errors"
	"fmt"

	"github.com/bitrise-io/go-utils/v2/log"
	"github.com/bitrise-steplib/steps-helix-alm-report/automation"
	"github.com/bitrise-steplib/steps-helix-alm-report/format"
	"github.com/bitrise-steplib/steps-helix-alm-report/format/junit/parser"
	"github.com/bitrise-steplib/steps-helix-alm-report/halm"
	"github.com/bitrise-steplib/steps-helix-alm-report/output"
)

// ErrNoBuild is returned when the reports do not contain any test suite.
var ErrNoBuild = errors.New("unable to create an automation build object from the specified data")

// Result ...
type Result struct {
	BuildNumber string
	ReportFiles []string
	DeployDir   string

	Build          *automation.Build
	Submitted      bool
	SubmitResponse halm.SubmitResponse
}

// Reporter ...
type Reporter struct {
	logger         log.Logger
	fileOpener     parser.FileOpener
	clientFactory  halm.ClientFactory
	outputExporter output.Exporter
}

// NewReporter ...
func NewReporter(logger log.Logger, fileOpener parser.FileOpener, clientFactory halm.ClientFactory, outputExporter output.Exporter) Reporter {
	return Reporter{
		logger:         logger,
		fileOpener:     fileOpener,
		clientFactory:  clientFactory,
		outputExporter: outputExporter,
	}
}

// Run generates the automation build and submits it unless cfg.DryRun is set.
func (r Reporter) Run(ctx context.Context, cfg Config) (Result, error) {
	result := Result{
		BuildNumber: cfg.BuildNumber,
		ReportFiles: cfg.ReportFiles,
		DeployDir:   cfg.DeployDir,
	}

	generator, err := format.NewBuildGenerator(cfg.ReportFormat, r.fileOpener, r.logger)
	if err != nil {
		return result, err
	}

	r.logger.Println()
	r.logger.Infof("Generating automation build %s from %d %s report(s)", cfg.BuildNumber, len(cfg.ReportFiles), cfg.ReportFormat)

	build, ok, err := generator.GenerateBuild(cfg.BuildNumber, cfg.ReportFiles, &cfg.Metadata)
	if err != nil {
		return result, fmt.Errorf("failed to generate automation build: %w", err)
	}
	if !ok {
		return result, ErrNoBuild
	}
	result.Build = &build

	counts := build.StatusCounts()
	r.logger.Donef("Automation build generated: %d passed, %d failed, %d skipped", counts.Passed, counts.Failed, counts.Skipped)

	if cfg.DryRun {
		r.logger.Warnf("Dry run, the automation build is not submitted")
		return result, nil
	}

	response, err := r.submit(ctx, cfg, build)
	if err != nil {
		return result, err
	}
	result.Submitted = true
	result.SubmitResponse = response

	return result, nil
}

func (r Reporter) submit(ctx context.Context, cfg Config, build automation.Build) (halm.SubmitResponse, error) {
	r.logger.Println()
	r.logger.Infof("Submitting automation build to %s", cfg.Connection.BaseURL)

	client, err := r.clientFactory.NewClient(cfg.Connection)
	if err != nil {
		return halm.SubmitResponse{}, err
	}

	if err := r.ensureTrustedCertificate(ctx, client, cfg.SSLFingerprint); err != nil {
		return halm.SubmitResponse{}, err
	}

	token, err := client.AuthToken(ctx, cfg.ProjectID)
	if err != nil {
		return halm.SubmitResponse{}, err
	}

	response, err := client.SubmitBuild(ctx, token, cfg.ProjectID, cfg.SuiteID, build)
	if err != nil {
		return halm.SubmitResponse{}, err
	}

	r.logger.Donef("Automation build submitted (status: %d, build ID: %d)", response.StatusCode, response.BuildID)
	return response, nil
}

// ensureTrustedCertificate accepts a certificate the system does not trust only when
// its fingerprint was explicitly given.
func (r Reporter) ensureTrustedCertificate(ctx context.Context, client halm.Client, fingerprint string) error {
	info, err := client.CertificateStatus(ctx)
	if err != nil {
		return fmt.Errorf("failed to check server certificate: %w", err)
	}

	switch info.Status {
	case halm.CertificateNotHTTPS:
		r.logger.Warnf("The REST API is not served over HTTPS, credentials are sent unencrypted")
	case halm.CertificateValid:
		r.logger.Debugf("Server certificate is trusted")
	case halm.CertificateInvalid:
		if !info.MatchesFingerprint(fingerprint) {
			return fmt.Errorf("server certificate is not trusted (%v), to accept it set the SSL fingerprint to: %s", info.VerifyError, info.Fingerprint)
		}
		r.logger.Warnf("Accepting untrusted server certificate with fingerprint: %s", info.Fingerprint)
		if err := client.PinFingerprint(fingerprint); err != nil {
			return fmt.Errorf("failed to pin server certificate: %w", err)
		}
	}

	return nil
}

// Export ...
func (r Reporter) Export(result Result, runFailed bool) error {
	r.outputExporter.ExportSubmitResult(submitStatus(result, runFailed))

	if result.Build == nil {
		return nil
	}

	r.outputExporter.PrintSummary(*result.Build)

	if result.DeployDir != "" {
		if err := r.outputExporter.ExportAutomationBuild(result.DeployDir, *result.Build); err != nil {
			return err
		}

		if err := r.outputExporter.ExportReportFiles(result.DeployDir, result.ReportFiles); err != nil {
			r.logger.Warnf("%s", err)
		}

		printAutomationBuildHint(r.logger, result.Submitted)
	}

	r.outputExporter.ExportTestAddonResults(result.ReportFiles, fmt.Sprintf("build-%s", result.BuildNumber))

	return nil
}

func submitStatus(result Result, runFailed bool) output.SubmitStatus {
	switch {
	case runFailed:
		return output.SubmitFailed
	case result.Submitted:
		return output.SubmitSucceeded
	default:
		return output.SubmitSkipped
	}
}

package output

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/bitrise-io/bitrise/configs"
	"github.com/bitrise-io/go-steputils/v2/export"
	"github.com/bitrise-io/go-utils/v2/env"
	"github.com/bitrise-io/go-utils/v2/fileutil"
	"github.com/bitrise-io/go-utils/v2/log"
	"github.com/bitrise-steplib/steps-helix-alm-report/automation"
	"github.com/bitrise-steplib/steps-helix-alm-report/testaddon"
)

// Exported keys ...
const (
	SubmitResultKey        = "HALM_REPORT_SUBMIT_RESULT"
	AutomationBuildPathKey = "HALM_AUTOMATION_BUILD_PATH"
	ReportFilesZipPathKey  = "HALM_REPORT_FILES_ZIP_PATH"

	automationBuildFileName = "automation-build.json"
	reportFilesZipFileName  = "test-reports.zip"
)

// SubmitStatus ...
type SubmitStatus string

// Submit statuses ...
const (
	SubmitSucceeded SubmitStatus = "succeeded"
	SubmitFailed    SubmitStatus = "failed"
	SubmitSkipped   SubmitStatus = "skipped"
)

// Exporter ...
type Exporter interface {
	ExportSubmitResult(status SubmitStatus)
	ExportAutomationBuild(deployDir string, build automation.Build) error
	ExportReportFiles(deployDir string, reportFiles []string) error
	ExportTestAddonResults(reportFiles []string, bundleName string)
	PrintSummary(build automation.Build)
}

type exporter struct {
	envRepository     env.Repository
	logger            log.Logger
	fileManager       fileutil.FileManager
	outputExporter    export.Exporter
	testAddonExporter testaddon.Exporter
}

// NewExporter ...
func NewExporter(envRepository env.Repository, logger log.Logger, fileManager fileutil.FileManager, outputExporter export.Exporter, testAddonExporter testaddon.Exporter) Exporter {
	return &exporter{
		envRepository:     envRepository,
		logger:            logger,
		fileManager:       fileManager,
		outputExporter:    outputExporter,
		testAddonExporter: testAddonExporter,
	}
}

func (e exporter) ExportSubmitResult(status SubmitStatus) {
	if err := e.envRepository.Set(SubmitResultKey, string(status)); err != nil {
		e.logger.Warnf("Failed to export: %s: %s", SubmitResultKey, err)
	}
}

func (e exporter) ExportAutomationBuild(deployDir string, build automation.Build) error {
	data, err := json.MarshalIndent(build, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode automation build: %w", err)
	}

	pth := filepath.Join(deployDir, automationBuildFileName)
	if err := e.fileManager.Write(pth, string(data), 0644); err != nil {
		return fmt.Errorf("failed to write automation build to (%s): %w", pth, err)
	}

	if err := e.envRepository.Set(AutomationBuildPathKey, pth); err != nil {
		e.logger.Warnf("Failed to export: %s: %s", AutomationBuildPathKey, err)
	}

	return nil
}

func (e exporter) ExportReportFiles(deployDir string, reportFiles []string) error {
	zipPath := filepath.Join(deployDir, reportFilesZipFileName)
	if err := e.outputExporter.ExportOutputFilesZip(ReportFilesZipPathKey, reportFiles, zipPath); err != nil {
		return fmt.Errorf("failed to export %s: %w", ReportFilesZipPathKey, err)
	}
	return nil
}

func (e exporter) ExportTestAddonResults(reportFiles []string, bundleName string) {
	addonResultPath := e.envRepository.Get(configs.BitrisePerStepTestResultDirEnvKey)
	if len(addonResultPath) == 0 {
		return
	}

	e.logger.Println()
	e.logger.Infof("Exporting test results")

	if err := e.testAddonExporter.CopyAndSaveMetadata(testaddon.AddonCopy{
		SourceReportFiles:     reportFiles,
		TargetAddonPath:       addonResultPath,
		TargetAddonBundleName: bundleName,
	}); err != nil {
		e.logger.Warnf("Failed to export test results: %s", err)
	}
}

func (e exporter) PrintSummary(build automation.Build) {
	e.logger.Println()
	e.logger.Printf("%s", RenderSummary(build))
}

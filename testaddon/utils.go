package testaddon

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bitrise-io/go-utils/v2/command"
	"github.com/bitrise-io/go-utils/v2/fileutil"
	"github.com/bitrise-io/go-utils/v2/log"
)

// TestAddon ...
type TestAddon interface {
	ReplaceUnsupportedFilenameCharacters(s string) string
	CopyReportFiles(reportFiles []string, targetDir string) error
	SaveBundleMetadata(outputDir string, bundleName string) error
}

type testAddon struct {
	commandFactory command.Factory
	fileManager    fileutil.FileManager
	logger         log.Logger
}

// NewTestAddon ...
func NewTestAddon(commandFactory command.Factory, fileManager fileutil.FileManager, logger log.Logger) TestAddon {
	return &testAddon{
		commandFactory: commandFactory,
		fileManager:    fileManager,
		logger:         logger,
	}
}

// ReplaceUnsupportedFilenameCharacters Replaces characters '/' and ':', which are unsupported in filenames on macOS
func (t testAddon) ReplaceUnsupportedFilenameCharacters(s string) string {
	s = strings.Replace(s, "/", "-", -1)
	s = strings.Replace(s, ":", "-", -1)
	return s
}

// CopyReportFiles copies the report files next to each other, prefixing clashing file names with their
// position, or a higher number while that name is taken too.
func (t testAddon) CopyReportFiles(reportFiles []string, targetDir string) error {
	if err := os.MkdirAll(targetDir, 0700); err != nil {
		return fmt.Errorf("failed to create directory (%s): %w", targetDir, err)
	}

	used := map[string]bool{}
	for i, reportFile := range reportFiles {
		base := filepath.Base(reportFile)
		name := base
		for n := i; used[name]; n++ {
			name = fmt.Sprintf("%d-%s", n, base)
		}
		used[name] = true

		cmd := t.commandFactory.Create("cp", []string{"-a", reportFile, filepath.Join(targetDir, name)}, nil)
		t.logger.Donef("$ %s", cmd.PrintableCommandArgs())
		if out, err := cmd.RunAndReturnTrimmedCombinedOutput(); err != nil {
			return fmt.Errorf("copy failed: %w, output: %s", err, out)
		}
	}

	return nil
}

func (t testAddon) SaveBundleMetadata(outputDir string, bundleName string) error {
	type testBundle struct {
		BundleName string `json:"test-name"`
	}
	bytes, err := json.Marshal(testBundle{
		BundleName: bundleName,
	})
	if err != nil {
		return fmt.Errorf("could not encode metadata: %w", err)
	}
	if err = t.fileManager.Write(filepath.Join(outputDir, "test-info.json"), string(bytes), 0600); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}

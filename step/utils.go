package step

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/bitrise-io/go-utils/colorstring"
	"github.com/bitrise-io/go-utils/v2/log"
	"github.com/kballard/go-shellquote"
)

// ErrNoReportFiles ...
var ErrNoReportFiles = errors.New("no report files found")

// resolveReportFiles splits a shell quoted list of paths and expands glob patterns.
// Each file is listed once, in the order it was first matched.
func resolveReportFiles(value string) ([]string, error) {
	patterns, err := shellquote.Split(value)
	if err != nil {
		return nil, fmt.Errorf("failed to split report files (%s): %w", value, err)
	}

	var files []string
	seen := map[string]bool{}
	for _, pattern := range patterns {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid report file pattern (%s): %w", pattern, err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("%w matching: %s", ErrNoReportFiles, pattern)
		}

		for _, match := range matches {
			if seen[match] {
				continue
			}
			seen[match] = true
			files = append(files, match)
		}
	}

	if len(files) == 0 {
		return nil, ErrNoReportFiles
	}

	return files, nil
}

func printAutomationBuildHint(logger log.Logger, submitted bool) {
	if !submitted {
		logger.Infof(colorstring.Magenta(`
The automation build was not submitted to Helix ALM.
It is stored in $BITRISE_DEPLOY_DIR, and its full path
is available in the $HALM_AUTOMATION_BUILD_PATH environment variable.`))
		return
	}

	logger.Infof(colorstring.Magenta(`
The submitted automation build is stored in $BITRISE_DEPLOY_DIR,
and its full path is available in the $HALM_AUTOMATION_BUILD_PATH environment variable.`))
}

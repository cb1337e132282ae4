package step

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/bitrise-io/go-steputils/v2/stepconf"
	"github.com/bitrise-io/go-utils/v2/env"
	"github.com/bitrise-io/go-utils/v2/log"
	"github.com/bitrise-steplib/steps-helix-alm-report/format"
	"github.com/bitrise-steplib/steps-helix-alm-report/halm"
	"github.com/bitrise-steplib/steps-helix-alm-report/metadata"
)

const (
	appHomeEnvKey      = "APP_HOME"
	defaultsFileName   = "config.properties"
	apiKeySeparator    = ":"
	missingInputFormat = "%s is required (set the %s input or %s in the defaults file)"
)

// Input ...
type Input struct {
	// Reports
	ReportFiles  string `env:"report_files,required"`
	ReportFormat string `env:"report_format,opt[junit,xunit]"`
	BuildNumber  string `env:"build_number,required"`

	// Helix ALM connection
	RestAPIURL     string          `env:"halm_rest_api_url"`
	ProjectID      string          `env:"halm_project_id"`
	SuiteID        string          `env:"halm_suite_id"`
	AuthType       string          `env:"auth_type,opt[basic,apiKey]"`
	Username       string          `env:"username"`
	Password       stepconf.Secret `env:"password"`
	SSLFingerprint string          `env:"ssl_fingerprint"`

	// Build metadata
	Description     string `env:"build_description"`
	Branch          string `env:"build_branch"`
	ExternalURL     string `env:"external_url"`
	TestRunSetID    int    `env:"test_run_set_id"`
	TestRunSetLabel string `env:"test_run_set_label"`
	PendingRunID    string `env:"pending_run_id"`
	SourceOverride  string `env:"source_override"`
	MetadataFile    string `env:"metadata_file"`

	DefaultsFile string `env:"defaults_file"`
	DryRun       bool   `env:"dry_run,opt[yes,no]"`

	// Debug
	Verbose bool `env:"verbose,opt[yes,no]"`

	// Output export
	DeployDir string `env:"BITRISE_DEPLOY_DIR"`
}

// DefaultInputs are the input values used when the environment does not set them.
func DefaultInputs() map[string]string {
	return map[string]string{
		"report_format": string(format.JUnit),
		"auth_type":     string(halm.AuthBasic),
		"dry_run":       "no",
		"verbose":       "no",
	}
}

// Config ...
type Config struct {
	ReportFiles  []string
	ReportFormat format.ReportFormat
	BuildNumber  string

	Metadata metadata.BuildMetadata

	Connection     halm.ConnectionInfo
	ProjectID      string
	SuiteID        string
	SSLFingerprint string

	DryRun    bool
	DeployDir string
}

// ConfigParser ...
type ConfigParser struct {
	inputParser    stepconf.InputParser
	envRepository  env.Repository
	defaultsLoader DefaultsLoader
	logger         log.Logger
}

// NewConfigParser ...
func NewConfigParser(inputParser stepconf.InputParser, envRepository env.Repository, defaultsLoader DefaultsLoader, logger log.Logger) ConfigParser {
	return ConfigParser{
		inputParser:    inputParser,
		envRepository:  envRepository,
		defaultsLoader: defaultsLoader,
		logger:         logger,
	}
}

// ProcessConfig ...
func (p ConfigParser) ProcessConfig() (Config, error) {
	var input Input
	if err := p.inputParser.Parse(&input); err != nil {
		return Config{}, err
	}

	stepconf.Print(input)
	p.logger.Println()

	p.logger.EnableDebugLog(input.Verbose)

	if strings.TrimSpace(input.BuildNumber) == "" {
		return Config{}, errors.New("build number must not be empty")
	}

	reportFormat, err := format.ParseReportFormat(input.ReportFormat)
	if err != nil {
		return Config{}, err
	}

	reportFiles, err := resolveReportFiles(input.ReportFiles)
	if err != nil {
		return Config{}, err
	}
	p.logger.Printf("- report files: %s", strings.Join(reportFiles, ", "))

	defaults, err := p.defaultsLoader.Load(p.defaultsFilePath(input.DefaultsFile))
	if err != nil {
		return Config{}, err
	}

	buildMetadata := metadata.New()
	if input.MetadataFile != "" {
		if buildMetadata, err = metadata.Load(input.MetadataFile); err != nil {
			return Config{}, err
		}
	}
	buildMetadata.Apply(metadata.Overrides{
		Description:     input.Description,
		Branch:          input.Branch,
		ExternalURL:     input.ExternalURL,
		SourceOverride:  input.SourceOverride,
		PendingRunID:    input.PendingRunID,
		TestRunSetID:    input.TestRunSetID,
		TestRunSetLabel: input.TestRunSetLabel,
	})

	authType := halm.AuthType(input.AuthType)
	username, password := credentials(authType, input.Username, string(input.Password), defaults)

	config := Config{
		ReportFiles:  reportFiles,
		ReportFormat: reportFormat,
		BuildNumber:  strings.TrimSpace(input.BuildNumber),
		Metadata:     buildMetadata,
		Connection: halm.ConnectionInfo{
			BaseURL:  firstNonEmpty(input.RestAPIURL, defaults.RestAPIURL),
			AuthType: authType,
			Username: username,
			Password: password,
		},
		ProjectID:      firstNonEmpty(input.ProjectID, defaults.ProjectID),
		SuiteID:        firstNonEmpty(input.SuiteID, defaults.SuiteID),
		SSLFingerprint: firstNonEmpty(input.SSLFingerprint, defaults.SSLFingerprint),
		DryRun:         input.DryRun,
		DeployDir:      input.DeployDir,
	}

	if !config.DryRun {
		if err := validateConnection(config); err != nil {
			return Config{}, err
		}
	}

	return config, nil
}

func (p ConfigParser) defaultsFilePath(input string) string {
	if input != "" {
		return input
	}
	if appHome := p.envRepository.Get(appHomeEnvKey); appHome != "" {
		return filepath.Join(appHome, defaultsFileName)
	}
	return ""
}

// credentials prefers explicitly given inputs over the defaults file.
// The API key default is a single "keyID:secret" value.
func credentials(authType halm.AuthType, username, password string, defaults Defaults) (string, string) {
	if username != "" {
		return username, password
	}

	if authType == halm.AuthAPIKey {
		keyID, secret, _ := strings.Cut(string(defaults.APIKey), apiKeySeparator)
		return keyID, firstNonEmpty(password, secret)
	}

	return defaults.Username, firstNonEmpty(password, string(defaults.Password))
}

func validateConnection(config Config) error {
	var missing []string
	if config.Connection.BaseURL == "" {
		missing = append(missing, fmt.Sprintf(missingInputFormat, "REST API URL", "halm_rest_api_url", restAPIBaseURLKey))
	}
	if config.ProjectID == "" {
		missing = append(missing, fmt.Sprintf(missingInputFormat, "project ID", "halm_project_id", projectIDKey))
	}
	if config.SuiteID == "" {
		missing = append(missing, fmt.Sprintf(missingInputFormat, "automation suite ID", "halm_suite_id", suiteIDKey))
	}
	if config.Connection.Username == "" {
		missing = append(missing, "credentials are required (set the username and password inputs or provide them in the defaults file)")
	}

	if len(missing) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(missing, "; "))
	}
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if value != "" {
			return value
		}
	}
	return ""
}

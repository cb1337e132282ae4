package metadata

import (
	"fmt"
	"os"

	"github.com/bitrise-steplib/steps-helix-alm-report/automation"
	"gopkg.in/yaml.v3"
)

// BuildMetadata holds the build level information which is not part of the test reports.
type BuildMetadata struct {
	Description          string                     `yaml:"description"`
	Branch               string                     `yaml:"branch"`
	ExternalURL          string                     `yaml:"externalURL"`
	SourceOverride       string                     `yaml:"source"`
	PendingRunID         string                     `yaml:"pendingRunID"`
	TestRunSet           *automation.IDLabelPair    `yaml:"testRunSet"`
	RunConfigurationInfo map[string]any             `yaml:"runConfiguration"`
	Properties           []automation.NameValuePair `yaml:"properties"`
}

// New returns metadata with the default source set.
func New() BuildMetadata {
	return BuildMetadata{SourceOverride: automation.DefaultSource}
}

// Load reads a YAML metadata file and validates it before decoding.
func Load(pth string) (BuildMetadata, error) {
	data, err := os.ReadFile(pth)
	if err != nil {
		return BuildMetadata{}, fmt.Errorf("failed to read metadata file (%s): %w", pth, err)
	}

	return Decode(data)
}

// Decode ...
func Decode(data []byte) (BuildMetadata, error) {
	var document map[string]any
	if err := yaml.Unmarshal(data, &document); err != nil {
		return BuildMetadata{}, fmt.Errorf("failed to parse metadata: %w", err)
	}
	if document == nil {
		document = map[string]any{}
	}

	if err := Validate(document); err != nil {
		return BuildMetadata{}, err
	}

	buildMetadata := New()
	if err := yaml.Unmarshal(data, &buildMetadata); err != nil {
		return BuildMetadata{}, fmt.Errorf("failed to decode metadata: %w", err)
	}
	if buildMetadata.SourceOverride == "" {
		buildMetadata.SourceOverride = automation.DefaultSource
	}

	return buildMetadata, nil
}

// Overrides are explicitly given values which take precedence over the metadata file.
type Overrides struct {
	Description     string
	Branch          string
	ExternalURL     string
	SourceOverride  string
	PendingRunID    string
	TestRunSetID    int
	TestRunSetLabel string
}

// Apply ...
func (m *BuildMetadata) Apply(overrides Overrides) {
	if overrides.Description != "" {
		m.Description = overrides.Description
	}
	if overrides.Branch != "" {
		m.Branch = overrides.Branch
	}
	if overrides.ExternalURL != "" {
		m.ExternalURL = overrides.ExternalURL
	}
	if overrides.SourceOverride != "" {
		m.SourceOverride = overrides.SourceOverride
	}
	if overrides.PendingRunID != "" {
		m.PendingRunID = overrides.PendingRunID
	}
	if overrides.TestRunSetID > 0 {
		m.TestRunSet = &automation.IDLabelPair{
			ID:    overrides.TestRunSetID,
			Label: overrides.TestRunSetLabel,
		}
	}
}

package step

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/bitrise-io/go-utils/v2/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_GivenPropertiesFile_WhenLoadingDefaults_ThenReadsAllKeys(t *testing.T) {
	// Given
	pth := filepath.Join(t.TempDir(), "config.properties")
	require.NoError(t, os.WriteFile(pth, []byte(`# Helix ALM connection
REST_API_BASE_URL=https://halm.example.com/api
HALM_PROJECT_ID=3
HALM_SUITE_ID=4
REST_API_USERNAME=ci
REST_API_PASSWORD="p@ss word"
SSL_FINGERPRINT=AA:BB:CC
`), 0600))

	// When
	defaults, err := NewDefaultsLoader(log.NewLogger()).Load(pth)

	// Then
	require.NoError(t, err)
	assert.Equal(t, Defaults{
		RestAPIURL:     "https://halm.example.com/api",
		ProjectID:      "3",
		SuiteID:        "4",
		Username:       "ci",
		Password:       "p@ss word",
		SSLFingerprint: "AA:BB:CC",
	}, defaults)
}

func Test_GivenMissingFile_WhenLoadingDefaults_ThenReturnsEmpty(t *testing.T) {
	// Given
	pth := filepath.Join(t.TempDir(), "missing.properties")

	// When
	defaults, err := NewDefaultsLoader(log.NewLogger()).Load(pth)

	// Then
	require.NoError(t, err)
	assert.Equal(t, Defaults{}, defaults)
}

func Test_GivenNoPath_WhenLoadingDefaults_ThenReturnsEmpty(t *testing.T) {
	// When
	defaults, err := NewDefaultsLoader(log.NewLogger()).Load("")

	// Then
	require.NoError(t, err)
	assert.Equal(t, Defaults{}, defaults)
}

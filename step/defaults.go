package step

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/bitrise-io/go-steputils/v2/stepconf"
	"github.com/bitrise-io/go-utils/v2/log"
	"github.com/bitrise-steplib/steps-helix-alm-report/envrepo"
	"github.com/joho/godotenv"
)

// Keys of the defaults file ...
const (
	restAPIBaseURLKey = "REST_API_BASE_URL"
	projectIDKey      = "HALM_PROJECT_ID"
	suiteIDKey        = "HALM_SUITE_ID"
)

// Defaults are the connection settings read from a KEY=VALUE properties file.
type Defaults struct {
	RestAPIURL     string          `env:"REST_API_BASE_URL"`
	ProjectID      string          `env:"HALM_PROJECT_ID"`
	SuiteID        string          `env:"HALM_SUITE_ID"`
	APIKey         stepconf.Secret `env:"REST_API_APIKEY"`
	Username       string          `env:"REST_API_USERNAME"`
	Password       stepconf.Secret `env:"REST_API_PASSWORD"`
	SSLFingerprint string          `env:"SSL_FINGERPRINT"`
}

// DefaultsLoader ...
type DefaultsLoader interface {
	Load(pth string) (Defaults, error)
}

type defaultsLoader struct {
	logger log.Logger
}

// NewDefaultsLoader ...
func NewDefaultsLoader(logger log.Logger) DefaultsLoader {
	return defaultsLoader{logger: logger}
}

// Load returns empty Defaults when pth is empty or the file does not exist.
func (l defaultsLoader) Load(pth string) (Defaults, error) {
	if pth == "" {
		return Defaults{}, nil
	}

	values, err := godotenv.Read(pth)
	if errors.Is(err, fs.ErrNotExist) {
		l.logger.Debugf("Defaults file (%s) does not exist", pth)
		return Defaults{}, nil
	}
	if err != nil {
		return Defaults{}, fmt.Errorf("failed to read defaults file (%s): %w", pth, err)
	}

	var defaults Defaults
	if err := stepconf.NewInputParser(envrepo.NewMap(values)).Parse(&defaults); err != nil {
		return Defaults{}, fmt.Errorf("invalid defaults file (%s): %w", pth, err)
	}

	l.logger.Printf("Defaults loaded from %s", pth)
	return defaults, nil
}

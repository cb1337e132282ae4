package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUserAgent(t *testing.T) {
	original := Version
	defer func() { Version = original }()

	Version = "v2.3"
	assert.Equal(t, "reporting-tool/2.3.0", UserAgent())

	Version = "not-a-version"
	assert.Equal(t, "reporting-tool/0.0.0", UserAgent())
}

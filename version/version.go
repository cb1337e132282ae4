package version

import (
	"fmt"

	goversion "github.com/hashicorp/go-version"
)

// ToolName is sent as the product token of the User-Agent header.
const ToolName = "reporting-tool"

// Version is overridden at build time with -ldflags "-X .../version.Version=x.y.z".
var Version = "1.2.0"

// Semantic returns the parsed tool version, falling back to 0.0.0 for a malformed build-time value.
func Semantic() *goversion.Version {
	v, err := goversion.NewVersion(Version)
	if err != nil {
		return goversion.Must(goversion.NewVersion("0.0.0"))
	}
	return v
}

// UserAgent ...
func UserAgent() string {
	return fmt.Sprintf("%s/%s", ToolName, Semantic().String())
}

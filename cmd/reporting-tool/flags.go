package main

import (
	"strconv"

	"github.com/urfave/cli/v2"
)

const envVarPrefix = "HALM_REPORT_"

// stringInputs maps string flags to the step input they set.
var stringInputs = map[string]string{
	"format":             "report_format",
	"build-number":       "build_number",
	"project":            "halm_project_id",
	"suite":              "halm_suite_id",
	"url":                "halm_rest_api_url",
	"username":           "username",
	"password":           "password",
	"auth-type":          "auth_type",
	"fingerprint":        "ssl_fingerprint",
	"description":        "build_description",
	"branch":             "build_branch",
	"external-url":       "external_url",
	"test-run-set-label": "test_run_set_label",
	"pending-run-id":     "pending_run_id",
	"source":             "source_override",
	"metadata":           "metadata_file",
	"defaults":           "defaults_file",
	"deploy-dir":         "BITRISE_DEPLOY_DIR",
}

// boolInputs maps bool flags to the yes/no step input they set.
var boolInputs = map[string]string{
	"dry-run": "dry_run",
	"verbose": "verbose",
}

const testRunSetIDFlag = "test-run-set-id"

func envVars(name string) []string {
	return []string{envVarPrefix + name}
}

var flags = []cli.Flag{
	&cli.StringFlag{
		Name:    "format",
		Aliases: []string{"f"},
		Usage:   "Format of the report files (junit, xunit)",
		EnvVars: envVars("FORMAT"),
	},
	&cli.StringFlag{
		Name:     "build-number",
		Aliases:  []string{"n"},
		Usage:    "Number of the automation build",
		EnvVars:  envVars("BUILD_NUMBER"),
		Required: true,
	},
	&cli.StringFlag{
		Name:    "project",
		Aliases: []string{"p"},
		Usage:   "Helix ALM project ID",
		EnvVars: envVars("PROJECT_ID"),
	},
	&cli.StringFlag{
		Name:    "suite",
		Aliases: []string{"s"},
		Usage:   "Helix ALM automation suite ID",
		EnvVars: envVars("SUITE_ID"),
	},
	&cli.StringFlag{
		Name:    "url",
		Aliases: []string{"H"},
		Usage:   "Base URL of the Helix ALM REST API",
		EnvVars: envVars("URL"),
	},
	&cli.StringFlag{
		Name:    "username",
		Aliases: []string{"U"},
		Usage:   "Username, or the API key ID when the auth type is apiKey",
		EnvVars: envVars("USERNAME"),
	},
	&cli.StringFlag{
		Name:    "password",
		Aliases: []string{"P"},
		Usage:   "Password, or the API key secret when the auth type is apiKey",
		EnvVars: envVars("PASSWORD"),
	},
	&cli.StringFlag{
		Name:    "auth-type",
		Aliases: []string{"A"},
		Usage:   "Authentication type (basic, apiKey)",
		EnvVars: envVars("AUTH_TYPE"),
	},
	&cli.StringFlag{
		Name:    "fingerprint",
		Aliases: []string{"F"},
		Usage:   "SHA-256 fingerprint of a server certificate to accept even if it is not trusted",
		EnvVars: envVars("SSL_FINGERPRINT"),
	},
	&cli.StringFlag{
		Name:    "description",
		Aliases: []string{"d"},
		Usage:   "Description of the automation build",
	},
	&cli.StringFlag{
		Name:    "branch",
		Aliases: []string{"b"},
		Usage:   "Branch the tests ran on",
	},
	&cli.StringFlag{
		Name:    "external-url",
		Aliases: []string{"x"},
		Usage:   "Link to the CI job which produced the reports",
	},
	&cli.IntFlag{
		Name:    testRunSetIDFlag,
		Aliases: []string{"i"},
		Usage:   "ID of the test run set the build belongs to",
	},
	&cli.StringFlag{
		Name:    "test-run-set-label",
		Aliases: []string{"l"},
		Usage:   "Label of the test run set the build belongs to",
	},
	&cli.StringFlag{
		Name:  "pending-run-id",
		Usage: "ID of the pending test run to update",
	},
	&cli.StringFlag{
		Name:  "source",
		Usage: "Source recorded on the automation build",
	},
	&cli.StringFlag{
		Name:    "metadata",
		Usage:   "Path to a YAML build metadata file",
		EnvVars: envVars("METADATA_FILE"),
	},
	&cli.StringFlag{
		Name:    "defaults",
		Usage:   "Path to a KEY=VALUE defaults file (default: $APP_HOME/config.properties)",
		EnvVars: envVars("DEFAULTS_FILE"),
	},
	&cli.StringFlag{
		Name:  "deploy-dir",
		Usage: "Directory the automation build JSON is written to",
	},
	&cli.BoolFlag{
		Name:  "dry-run",
		Usage: "Generate the automation build without submitting it",
	},
	&cli.BoolFlag{
		Name:  "verbose",
		Usage: "Enable debug logs",
	},
}

// inputValues returns the step inputs of every flag set on the command line or by its env var.
func inputValues(c *cli.Context) map[string]string {
	values := map[string]string{}

	for name, key := range stringInputs {
		if c.IsSet(name) {
			values[key] = c.String(name)
		}
	}

	for name, key := range boolInputs {
		if c.IsSet(name) {
			values[key] = yesNo(c.Bool(name))
		}
	}

	if c.IsSet(testRunSetIDFlag) {
		values["test_run_set_id"] = strconv.Itoa(c.Int(testRunSetIDFlag))
	}

	return values
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

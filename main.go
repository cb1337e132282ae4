package main

import (
	"context"
	"os"

	"github.com/bitrise-io/go-utils/v2/env"
	"github.com/bitrise-io/go-utils/v2/log"
	"github.com/bitrise-steplib/steps-helix-alm-report/step"
)

func main() {
	os.Exit(run())
}

func run() int {
	return step.Execute(context.Background(), env.NewRepository(), log.NewLogger())
}

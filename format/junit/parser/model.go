package parser

import "github.com/bitrise-steplib/steps-helix-alm-report/format/attributes"

// Suite is a parsed <testsuite> element.
type Suite struct {
	Name      string
	Timestamp string
	// Time is the suite duration in seconds, nil when the attribute is missing.
	Time       *float64
	Cases      []Case
	Attributes attributes.Attributes
}

// DurationMillis returns the suite duration truncated to milliseconds.
func (s Suite) DurationMillis() int64 {
	return secondsToMillis(s.Time)
}

// Case is a parsed <testcase> element.
type Case struct {
	Name      string
	ClassName string
	Time      *float64
	// Outcome is nil for a passed case.
	Outcome    Outcome
	Attributes attributes.Attributes
}

// DurationMillis returns the case duration truncated to milliseconds.
func (c Case) DurationMillis() int64 {
	return secondsToMillis(c.Time)
}

// Outcome is one of Error, Failure or Skipped.
type Outcome interface {
	outcome()
}

// Error ...
type Error struct {
	Message string
	Type    string
	Value   string
}

// Failure ...
type Failure struct {
	Message string
	Type    string
	Value   string
}

// Skipped ...
type Skipped struct {
	Message string
}

func (Error) outcome()   {}
func (Failure) outcome() {}
func (Skipped) outcome() {}

func secondsToMillis(seconds *float64) int64 {
	if seconds == nil {
		return 0
	}
	return int64(*seconds * 1000)
}

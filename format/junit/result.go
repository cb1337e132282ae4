package junit

import (
	"fmt"
	"strings"

	"github.com/bitrise-io/go-utils/v2/log"
	"github.com/bitrise-steplib/steps-helix-alm-report/automation"
	"github.com/bitrise-steplib/steps-helix-alm-report/format/junit/parser"
	"github.com/bitrise-steplib/steps-helix-alm-report/format/uniquename"
)

// Test case attributes with a dedicated result field.
const (
	UniqueNameAttribute     = "uniqueName"
	TagsAttribute           = "tags"
	DeviceAttribute         = "device"
	ManufacturerAttribute   = "manufacturer"
	ModelAttribute          = "model"
	OSAttribute             = "os"
	OSVersionAttribute      = "osVersion"
	BrowserAttribute        = "browser"
	BrowserVersionAttribute = "browserVersion"
	ExternalURLAttribute    = "externalURL"
	ErrorMessageAttribute   = "errorMessage"
	StartDateAttribute      = "startDate"
)

// Properties added for outcome details which have no dedicated field.
const (
	errorMessageProperty   = "errorMessage"
	errorTypeProperty      = "errorType"
	errorValueProperty     = "errorValue"
	failureMessageProperty = "failureMessage"
	failureTypeProperty    = "failureType"
	failureValueProperty   = "failureValue"
	skippedMessageProperty = "skippedMessage"
)

type fieldSetter func(result *automation.Result, value string)

// knownAttributes is consumed in this order, later keys never see earlier ones.
var knownAttributes = []struct {
	key string
	set fieldSetter
}{
	{UniqueNameAttribute, func(r *automation.Result, v string) { r.UniqueName = v }},
	{TagsAttribute, setTags},
	{DeviceAttribute, func(r *automation.Result, v string) { r.Device = v }},
	{ManufacturerAttribute, func(r *automation.Result, v string) { r.Manufacturer = v }},
	{ModelAttribute, func(r *automation.Result, v string) { r.Model = v }},
	{OSAttribute, func(r *automation.Result, v string) { r.OS = v }},
	{OSVersionAttribute, func(r *automation.Result, v string) { r.OSVersion = v }},
	{BrowserAttribute, func(r *automation.Result, v string) { r.Browser = v }},
	{BrowserVersionAttribute, func(r *automation.Result, v string) { r.BrowserVersion = v }},
	{ExternalURLAttribute, func(r *automation.Result, v string) { r.ExternalURL = v }},
	{ErrorMessageAttribute, func(r *automation.Result, v string) { r.ErrorMessage = v }},
	{StartDateAttribute, func(r *automation.Result, v string) { r.StartDate = v }},
}

func setTags(result *automation.Result, value string) {
	for _, tag := range strings.Split(value, ",") {
		if tag = strings.TrimSpace(tag); tag != "" {
			result.AddTag(tag)
		}
	}
}

// ResultMapper converts parsed test cases to normalized results.
type ResultMapper struct {
	uniqueNames *uniquename.Tracker
	logger      log.Logger
}

// NewResultMapper ...
func NewResultMapper(uniqueNames *uniquename.Tracker, logger log.Logger) ResultMapper {
	return ResultMapper{
		uniqueNames: uniqueNames,
		logger:      logger,
	}
}

// Map ...
func (m ResultMapper) Map(testCase parser.Case, suite parser.Suite) automation.Result {
	result := automation.Result{
		Name:     testCase.Name,
		Duration: testCase.DurationMillis(),
	}

	attrs := testCase.Attributes.Clone()
	for _, known := range knownAttributes {
		if value, ok := attrs.Consume(known.key); ok && value != "" {
			known.set(&result, value)
		}
	}
	attrs.Each(func(key, value string) {
		if value != "" {
			result.AddProperty(key, value)
		}
	})

	candidate := result.UniqueName
	if candidate == "" {
		candidate = fmt.Sprintf("%s:%s:%s", suite.Name, testCase.ClassName, testCase.Name)
	}
	result.UniqueName = m.uniqueNames.EnsureUnique(candidate)
	if result.UniqueName != candidate {
		m.logger.Debugf("Test case unique name (%s) is already used, renamed to: %s", candidate, result.UniqueName)
	}

	applyOutcome(&result, testCase.Outcome)

	return result
}

func applyOutcome(result *automation.Result, outcome parser.Outcome) {
	switch o := outcome.(type) {
	case parser.Error:
		result.SetStatus(automation.StatusFailed)
		setMessage(result, o.Message, errorMessageProperty)
		addPropertyIfSet(result, errorTypeProperty, o.Type)
		addPropertyIfSet(result, errorValueProperty, o.Value)
	case parser.Failure:
		result.SetStatus(automation.StatusFailed)
		setMessage(result, o.Message, failureMessageProperty)
		addPropertyIfSet(result, failureTypeProperty, o.Type)
		addPropertyIfSet(result, failureValueProperty, o.Value)
	case parser.Skipped:
		result.SetStatus(automation.StatusSkipped)
		setMessage(result, o.Message, skippedMessageProperty)
	default:
		result.SetStatus(automation.StatusPassed)
	}
}

// setMessage fills the primary error message, or records the message as a property
// when an explicit errorMessage attribute already took that field.
func setMessage(result *automation.Result, message, property string) {
	if message == "" {
		return
	}
	if result.ErrorMessage == "" {
		result.ErrorMessage = message
		return
	}
	result.AddProperty(property, message)
}

func addPropertyIfSet(result *automation.Result, name, value string) {
	if value != "" {
		result.AddProperty(name, value)
	}
}

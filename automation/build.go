package automation

// DefaultSource is reported as the build source when no override is given.
const DefaultSource = "reporting-tool"

// ResultStatus ...
type ResultStatus int

// Result statuses ...
const (
	StatusPassed  ResultStatus = 1
	StatusFailed  ResultStatus = 2
	StatusSkipped ResultStatus = 3
)

// String ...
func (s ResultStatus) String() string {
	switch s {
	case StatusPassed:
		return "passed"
	case StatusFailed:
		return "failed"
	case StatusSkipped:
		return "skipped"
	default:
		return "unknown"
	}
}

// IDLabelPair ...
type IDLabelPair struct {
	ID    int    `json:"id" yaml:"id"`
	Label string `json:"label" yaml:"label"`
}

// NameValuePair ...
type NameValuePair struct {
	Name  string `json:"name" yaml:"name"`
	Value string `json:"value" yaml:"value"`
}

// Result is a single normalized test result.
type Result struct {
	Name           string          `json:"name"`
	UniqueName     string          `json:"uniqueName"`
	Duration       int64           `json:"duration"`
	Status         IDLabelPair     `json:"status"`
	ErrorMessage   string          `json:"errorMessage,omitempty"`
	Tags           []string        `json:"tags,omitempty"`
	Device         string          `json:"device,omitempty"`
	Manufacturer   string          `json:"manufacturer,omitempty"`
	Model          string          `json:"model,omitempty"`
	OS             string          `json:"os,omitempty"`
	OSVersion      string          `json:"osVersion,omitempty"`
	Browser        string          `json:"browser,omitempty"`
	BrowserVersion string          `json:"browserVersion,omitempty"`
	ExternalURL    string          `json:"externalURL,omitempty"`
	StartDate      string          `json:"startDate,omitempty"`
	Properties     []NameValuePair `json:"properties,omitempty"`
}

// SetStatus ...
func (r *Result) SetStatus(status ResultStatus) {
	r.Status = IDLabelPair{ID: int(status)}
}

// ResultStatus ...
func (r Result) ResultStatus() ResultStatus {
	return ResultStatus(r.Status.ID)
}

// AddProperty ...
func (r *Result) AddProperty(name, value string) {
	r.Properties = append(r.Properties, NameValuePair{Name: name, Value: value})
}

// AddTag appends the tag unless it is already present.
func (r *Result) AddTag(tag string) {
	for _, t := range r.Tags {
		if t == tag {
			return
		}
	}
	r.Tags = append(r.Tags, tag)
}

// Build is the vendor-neutral aggregate of one or more test report files.
type Build struct {
	Number               string          `json:"number"`
	Description          string          `json:"description,omitempty"`
	Branch               string          `json:"branch,omitempty"`
	ExternalURL          string          `json:"externalURL,omitempty"`
	Source               string          `json:"source,omitempty"`
	PendingRunID         string          `json:"pendingRunID,omitempty"`
	TestRunSet           *IDLabelPair    `json:"testRunSet,omitempty"`
	RunConfigurationInfo map[string]any  `json:"runConfigurationInfo,omitempty"`
	Properties           []NameValuePair `json:"properties,omitempty"`
	StartDate            string          `json:"startDate,omitempty"`
	Duration             int64           `json:"duration"`
	Results              []Result        `json:"results,omitempty"`
}

// StatusCounts ...
type StatusCounts struct {
	Total   int
	Passed  int
	Failed  int
	Skipped int
}

// StatusCounts ...
func (b Build) StatusCounts() StatusCounts {
	counts := StatusCounts{Total: len(b.Results)}
	for _, result := range b.Results {
		switch result.ResultStatus() {
		case StatusPassed:
			counts.Passed++
		case StatusFailed:
			counts.Failed++
		case StatusSkipped:
			counts.Skipped++
		}
	}
	return counts
}

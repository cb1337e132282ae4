package halm

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ResponseError is returned when the server answers with a non 2xx status code.
type ResponseError struct {
	StatusCode int
	Message    string
	Body       string
}

func newResponseError(statusCode int, body []byte) *ResponseError {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	_ = json.Unmarshal(body, &payload)

	message := payload.Message
	if message == "" {
		message = payload.Error
	}

	return &ResponseError{
		StatusCode: statusCode,
		Message:    message,
		Body:       strings.TrimSpace(string(body)),
	}
}

func (e *ResponseError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("request failed with status code %d: %s", e.StatusCode, e.Message)
	}
	if e.Body != "" {
		return fmt.Sprintf("request failed with status code %d: %s", e.StatusCode, e.Body)
	}
	return fmt.Sprintf("request failed with status code %d", e.StatusCode)
}

package halm

import (
	"bytes"
	"context"
	"crypto/tls"
	"crypto/x509"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/bitrise-io/go-utils/v2/log"
	"github.com/bitrise-steplib/steps-helix-alm-report/automation"
	"github.com/bitrise-steplib/steps-helix-alm-report/version"
	"github.com/google/uuid"
	"github.com/hashicorp/go-cleanhttp"
	"github.com/hashicorp/go-retryablehttp"
)

const (
	defaultRetryMax = 3
	requestTimeout  = 2 * time.Minute
	requestIDHeader = "X-Request-ID"
)

// AuthType ...
type AuthType string

// Supported authentication types ...
const (
	AuthBasic  AuthType = "basic"
	AuthAPIKey AuthType = "apiKey"
)

// ConnectionInfo ...
type ConnectionInfo struct {
	BaseURL  string
	AuthType AuthType
	// Username is the API key ID when AuthType is AuthAPIKey.
	Username string
	// Password is the API key secret when AuthType is AuthAPIKey.
	Password string
	// PEMCertificates are trusted in addition to the system roots.
	PEMCertificates string
}

// SubmitResponse ...
type SubmitResponse struct {
	StatusCode int
	BuildID    int
}

// Client talks to the Helix ALM REST API.
type Client interface {
	CertificateStatus(ctx context.Context) (CertificateInfo, error)
	PinFingerprint(fingerprint string) error
	AuthToken(ctx context.Context, projectID string) (string, error)
	SubmitBuild(ctx context.Context, token, projectID, suiteID string, build automation.Build) (SubmitResponse, error)
}

type client struct {
	info    ConnectionInfo
	baseURL *url.URL
	logger  log.Logger

	// httpClient retries, it only sends idempotent requests.
	httpClient *retryablehttp.Client
	// submitClient sends the build exactly once.
	submitClient *retryablehttp.Client
}

// NewClient ...
func NewClient(info ConnectionInfo, logger log.Logger) (Client, error) {
	if info.BaseURL == "" {
		return nil, errors.New("REST API base URL is not set")
	}
	baseURL, err := url.Parse(strings.TrimSuffix(info.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid REST API base URL (%s): %w", info.BaseURL, err)
	}
	if baseURL.Scheme != "http" && baseURL.Scheme != "https" {
		return nil, fmt.Errorf("invalid REST API base URL (%s): scheme must be http or https", info.BaseURL)
	}

	switch info.AuthType {
	case AuthBasic, AuthAPIKey:
	default:
		return nil, fmt.Errorf("unsupported authentication type: %s", info.AuthType)
	}

	c := &client{
		info:    info,
		baseURL: baseURL,
		logger:  logger,
	}
	if err := c.trustCertificates(info.PEMCertificates); err != nil {
		return nil, err
	}
	return c, nil
}

// trustCertificates configures the HTTP clients to also trust the given PEM encoded certificates.
func (c *client) trustCertificates(pemCertificates string) error {
	if pemCertificates == "" {
		c.configureTransport(nil)
		return nil
	}

	pool, err := x509.SystemCertPool()
	if err != nil || pool == nil {
		pool = x509.NewCertPool()
	}
	if !pool.AppendCertsFromPEM([]byte(pemCertificates)) {
		return errors.New("no valid PEM certificate found")
	}

	c.configureTransport(&tls.Config{
		RootCAs:    pool,
		MinVersion: tls.VersionTLS12,
	})
	return nil
}

// PinFingerprint makes the HTTP clients accept a server only when one of the certificates
// it presents has the given SHA-256 fingerprint. Chain and hostname verification are skipped.
func (c *client) PinFingerprint(fingerprint string) error {
	pinned := normalizeFingerprint(fingerprint)
	if pinned == "" {
		return errors.New("no fingerprint to pin")
	}

	c.configureTransport(&tls.Config{
		MinVersion: tls.VersionTLS12,
		// The presented chain is checked against the pinned fingerprint instead.
		InsecureSkipVerify: true, //nolint:gosec
		VerifyConnection: func(state tls.ConnectionState) error {
			for _, certificate := range state.PeerCertificates {
				if normalizeFingerprint(Fingerprint(certificate)) == pinned {
					return nil
				}
			}
			return fmt.Errorf("server certificate does not match the pinned fingerprint: %s", fingerprint)
		},
	})
	return nil
}

func (c *client) configureTransport(tlsConfig *tls.Config) {
	transport := cleanhttp.DefaultPooledTransport()
	if tlsConfig != nil {
		transport.TLSClientConfig = tlsConfig
	}

	c.httpClient = c.newHTTPClient(transport, defaultRetryMax)
	c.submitClient = c.newHTTPClient(transport, 0)
}

func (c *client) newHTTPClient(transport *http.Transport, retryMax int) *retryablehttp.Client {
	httpClient := retryablehttp.NewClient()
	httpClient.HTTPClient = &http.Client{
		Transport: transport,
		Timeout:   requestTimeout,
	}
	httpClient.RetryMax = retryMax
	httpClient.Logger = newLeveledLogger(c.logger)
	httpClient.ErrorHandler = retryablehttp.PassthroughErrorHandler
	return httpClient
}

type tokenResponse struct {
	AccessToken string `json:"accessToken"`
}

// AuthToken ...
func (c *client) AuthToken(ctx context.Context, projectID string) (string, error) {
	req, err := c.newRequest(ctx, http.MethodGet, nil, projectID, "token")
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", c.authorization())

	var response tokenResponse
	if _, err := c.do(c.httpClient, req, &response); err != nil {
		return "", fmt.Errorf("failed to get authorization token: %w", err)
	}
	if response.AccessToken == "" {
		return "", errors.New("failed to get authorization token: empty access token in response")
	}

	return response.AccessToken, nil
}

type submitResponse struct {
	ID int `json:"id"`
}

// SubmitBuild ...
func (c *client) SubmitBuild(ctx context.Context, token, projectID, suiteID string, build automation.Build) (SubmitResponse, error) {
	body, err := json.Marshal(build)
	if err != nil {
		return SubmitResponse{}, fmt.Errorf("failed to encode automation build: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, body, projectID, "automationSuites", suiteID, "builds")
	if err != nil {
		return SubmitResponse{}, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	var response submitResponse
	statusCode, err := c.do(c.submitClient, req, &response)
	if err != nil {
		return SubmitResponse{StatusCode: statusCode}, fmt.Errorf("failed to submit automation build: %w", err)
	}

	return SubmitResponse{StatusCode: statusCode, BuildID: response.ID}, nil
}

func (c *client) newRequest(ctx context.Context, method string, body []byte, pathSegments ...string) (*retryablehttp.Request, error) {
	escaped := make([]string, 0, len(pathSegments))
	for _, segment := range pathSegments {
		escaped = append(escaped, url.PathEscape(segment))
	}
	endpoint := c.baseURL.String() + "/" + strings.Join(escaped, "/")

	var rawBody interface{}
	if body != nil {
		rawBody = body
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, method, endpoint, rawBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request (%s %s): %w", method, endpoint, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", version.UserAgent())
	req.Header.Set(requestIDHeader, uuid.NewString())

	return req, nil
}

func (c *client) do(httpClient *retryablehttp.Client, req *retryablehttp.Request, v interface{}) (int, error) {
	c.logger.Debugf("%s %s (%s: %s)", req.Method, req.URL.String(), requestIDHeader, req.Header.Get(requestIDHeader))

	resp, err := httpClient.Do(req)
	if err != nil {
		return 0, err
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			c.logger.Warnf("Failed to close response body: %s", err)
		}
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return resp.StatusCode, newResponseError(resp.StatusCode, body)
	}

	if v != nil && len(bytes.TrimSpace(body)) > 0 {
		if err := json.Unmarshal(body, v); err != nil {
			return resp.StatusCode, fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return resp.StatusCode, nil
}

func (c *client) authorization() string {
	credentials := base64.StdEncoding.EncodeToString([]byte(c.info.Username + ":" + c.info.Password))
	if c.info.AuthType == AuthAPIKey {
		return "APIKey " + credentials
	}
	return "Basic " + credentials
}

// ClientFactory ...
type ClientFactory interface {
	NewClient(info ConnectionInfo) (Client, error)
}

type clientFactory struct {
	logger log.Logger
}

// NewClientFactory ...
func NewClientFactory(logger log.Logger) ClientFactory {
	return clientFactory{logger: logger}
}

func (f clientFactory) NewClient(info ConnectionInfo) (Client, error) {
	return NewClient(info, f.logger)
}

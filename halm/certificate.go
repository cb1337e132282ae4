package halm

import (
	"context"
	"crypto/sha256"
	"crypto/tls"
	"crypto/x509"
	"encoding/hex"
	"encoding/pem"
	"errors"
	"fmt"
	"net"
	"strings"
)

// CertificateStatus ...
type CertificateStatus int

// Certificate statuses ...
const (
	CertificateNotHTTPS CertificateStatus = iota
	CertificateValid
	CertificateInvalid
)

// CertificateInfo describes the certificate chain presented by the server.
type CertificateInfo struct {
	Status CertificateStatus
	// Fingerprint is the SHA-256 hash of the leaf certificate, upper case hex pairs separated by colons.
	Fingerprint string
	// ChainFingerprints holds the fingerprint of every presented certificate, leaf first.
	ChainFingerprints []string
	PEMChain          string
	VerifyError       error
}

// MatchesFingerprint reports whether any presented certificate has the given fingerprint.
// Case and separators are ignored.
func (i CertificateInfo) MatchesFingerprint(fingerprint string) bool {
	expected := normalizeFingerprint(fingerprint)
	if expected == "" {
		return false
	}

	for _, candidate := range append([]string{i.Fingerprint}, i.ChainFingerprints...) {
		if normalizeFingerprint(candidate) == expected {
			return true
		}
	}
	return false
}

func normalizeFingerprint(s string) string {
	s = strings.ReplaceAll(s, ":", "")
	s = strings.ReplaceAll(s, " ", "")
	return strings.ToUpper(s)
}

// CertificateStatus connects to the server without verification and checks the presented chain
// against the trusted roots.
func (c *client) CertificateStatus(ctx context.Context) (CertificateInfo, error) {
	if c.baseURL.Scheme != "https" {
		return CertificateInfo{Status: CertificateNotHTTPS}, nil
	}

	host := c.baseURL.Hostname()
	address := c.baseURL.Host
	if c.baseURL.Port() == "" {
		address = net.JoinHostPort(host, "443")
	}

	dialer := &tls.Dialer{
		Config: &tls.Config{
			ServerName: host,
			// The chain is verified below, the connection is only used to fetch it.
			InsecureSkipVerify: true, //nolint:gosec
		},
	}
	conn, err := dialer.DialContext(ctx, "tcp", address)
	if err != nil {
		return CertificateInfo{}, fmt.Errorf("failed to connect to %s: %w", address, err)
	}
	defer func() {
		if err := conn.Close(); err != nil {
			c.logger.Debugf("Failed to close connection: %s", err)
		}
	}()

	tlsConn, ok := conn.(*tls.Conn)
	if !ok {
		return CertificateInfo{}, errors.New("unexpected connection type")
	}
	certificates := tlsConn.ConnectionState().PeerCertificates
	if len(certificates) == 0 {
		return CertificateInfo{}, fmt.Errorf("server (%s) presented no certificate", address)
	}

	info := CertificateInfo{
		Fingerprint: Fingerprint(certificates[0]),
		PEMChain:    encodePEM(certificates),
	}
	for _, certificate := range certificates {
		info.ChainFingerprints = append(info.ChainFingerprints, Fingerprint(certificate))
	}

	roots, err := x509.SystemCertPool()
	if err != nil || roots == nil {
		roots = x509.NewCertPool()
	}
	if c.info.PEMCertificates != "" {
		roots.AppendCertsFromPEM([]byte(c.info.PEMCertificates))
	}

	intermediates := x509.NewCertPool()
	for _, certificate := range certificates[1:] {
		intermediates.AddCert(certificate)
	}

	if _, err := certificates[0].Verify(x509.VerifyOptions{
		DNSName:       host,
		Roots:         roots,
		Intermediates: intermediates,
	}); err != nil {
		info.Status = CertificateInvalid
		info.VerifyError = err
		return info, nil
	}

	info.Status = CertificateValid
	return info, nil
}

// Fingerprint ...
func Fingerprint(certificate *x509.Certificate) string {
	sum := sha256.Sum256(certificate.Raw)
	encoded := strings.ToUpper(hex.EncodeToString(sum[:]))

	pairs := make([]string, 0, len(sum))
	for i := 0; i < len(encoded); i += 2 {
		pairs = append(pairs, encoded[i:i+2])
	}
	return strings.Join(pairs, ":")
}

func encodePEM(certificates []*x509.Certificate) string {
	var b strings.Builder
	for _, certificate := range certificates {
		_ = pem.Encode(&b, &pem.Block{Type: "CERTIFICATE", Bytes: certificate.Raw})
	}
	return b.String()
}

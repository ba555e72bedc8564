package provider

import (
	"crypto/rand"
	"io"

	qerrors "github.com/qseclabs/cipherkit/internal/errors"
	"github.com/qseclabs/cipherkit/internal/intutils"
)

// CSP sources bytes directly from the operating system CSPRNG via
// crypto/rand. It is safe for concurrent use.
type CSP struct{}

// NewCSP returns the OS provider.
func NewCSP() *CSP { return &CSP{} }

// GetBytes fills out from the OS CSPRNG. An error indicates a critical
// system failure.
func (c *CSP) GetBytes(out []byte) error {
	if _, err := io.ReadFull(rand.Reader, out); err != nil {
		return qerrors.NewCryptoError("csp.GetBytes", qerrors.ErrEntropyUnavailable)
	}
	return nil
}

// GetBytesAt fills out[off:off+length] from the OS CSPRNG.
func (c *CSP) GetBytesAt(out []byte, off, length int) error {
	if off < 0 || length < 0 || off+length > len(out) {
		return qerrors.NewCryptoError("csp.GetBytes", qerrors.ErrInvalidLength)
	}
	return c.GetBytes(out[off : off+length])
}

// Next returns a 32-bit sample.
func (c *CSP) Next() (uint32, error) {
	var b [4]byte
	if err := c.GetBytes(b[:]); err != nil {
		return 0, err
	}
	return intutils.Le32(b[:], 0), nil
}

// Reset is a no-op; the OS CSPRNG manages its own state.
func (c *CSP) Reset() error { return nil }

// Name returns the provider identity.
func (c *CSP) Name() string { return "CSP" }

// Available reports whether the OS CSPRNG responds.
func (c *CSP) Available() bool {
	var b [1]byte
	return c.GetBytes(b[:]) == nil
}

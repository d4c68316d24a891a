// Package verify checks the authenticity of inbound webhook calls. The
// platform signs the raw request body with RSA PKCS#1 v1.5 over a SHA-256
// digest and sends the signature base64-encoded in the SignatureCEK header.
package verify

import (
	"crypto"
	"crypto/rsa"
	"crypto/sha256"
	"crypto/x509"
	"encoding/base64"
	"encoding/pem"
	"fmt"
	"net/http"

	"clova-router/internal/common/logging"
)

// SignatureHeader carries the base64-encoded request signature. Lookup is
// case-insensitive via http.Header canonicalization.
const SignatureHeader = "SignatureCEK"

// Verifier validates request signatures against a fixed platform public key
type Verifier struct {
	publicKey *rsa.PublicKey
	logger    logging.Logger
}

// NewVerifier creates a verifier from PEM-encoded public key material. The
// key is injected rather than compiled in so deployments can rotate it.
func NewVerifier(publicKeyPEM []byte, logger logging.Logger) (*Verifier, error) {
	if logger == nil {
		logger = logging.GetGlobalLogger()
	}

	block, _ := pem.Decode(publicKeyPEM)
	if block == nil {
		return nil, fmt.Errorf("%w: no PEM block found", ErrInvalidPublicKey)
	}

	parsed, err := x509.ParsePKIXPublicKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPublicKey, err)
	}

	rsaKey, ok := parsed.(*rsa.PublicKey)
	if !ok {
		return nil, fmt.Errorf("%w: not an RSA key", ErrInvalidPublicKey)
	}

	return &Verifier{publicKey: rsaKey, logger: logger}, nil
}

// Verify checks the SignatureCEK header against the raw request body. A
// failure is fatal for the request; a forged or tampered body must never
// reach a handler.
func (v *Verifier) Verify(body []byte, header http.Header) error {
	signatureBase64 := header.Get(SignatureHeader)
	if signatureBase64 == "" {
		return ErrMissingSignature
	}

	signature, err := base64.StdEncoding.DecodeString(signatureBase64)
	if err != nil {
		return fmt.Errorf("%w: signature is not valid base64: %v", ErrInvalidSignature, err)
	}

	digest := sha256.Sum256(body)
	if err := rsa.VerifyPKCS1v15(v.publicKey, crypto.SHA256, digest[:], signature); err != nil {
		v.logger.Debug("signature verification failed",
			logging.Field{Key: "error", Value: err.Error()},
		)
		return ErrInvalidSignature
	}

	return nil
}

// Package certificate resolves the issuer's RSA modulus. Pipelines depend on
// the Source interface, so a deployment can hand in a parsed certificate or
// a raw modulus without any change to the pipeline.
package certificate

import (
	"context"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"math/big"
	"os"

	"github.com/anon-aadhaar/anon-aadhaar-noir/internal/bignum"
	dErrors "github.com/anon-aadhaar/anon-aadhaar-noir/pkg/domain-errors"
	"github.com/anon-aadhaar/anon-aadhaar-noir/pkg/platform/sentinel"
)

// MaxFileSize bounds certificate reads.
const MaxFileSize = 64 << 10

// Source yields the public modulus signatures are checked against.
type Source interface {
	Modulus(ctx context.Context) (*big.Int, error)
}

// X509Source extracts the modulus from certificate or public key bytes:
// PEM (CERTIFICATE, PUBLIC KEY or RSA PUBLIC KEY blocks) or raw DER, which is
// how the issuer distributes its .cer file.
type X509Source struct {
	data []byte
}

func NewX509Source(data []byte) *X509Source {
	return &X509Source{data: data}
}

// LoadFile reads a certificate file and closes it before returning.
func LoadFile(path string) (*X509Source, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, dErrors.Wrap(fmt.Errorf("%w: %s", sentinel.ErrNotFound, path), dErrors.CodeCertificateParse, "certificate file missing")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeCertificateParse, "open certificate")
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, MaxFileSize+1))
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeCertificateParse, "read certificate")
	}
	if len(data) > MaxFileSize {
		return nil, dErrors.Newf(dErrors.CodeCertificateParse, "certificate file exceeds %d bytes", MaxFileSize)
	}
	return NewX509Source(data), nil
}

func (s *X509Source) Modulus(ctx context.Context) (*big.Int, error) {
	if err := ctx.Err(); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeTimeout, "certificate parse cancelled")
	}
	if len(s.data) == 0 {
		return nil, dErrors.New(dErrors.CodeCertificateParse, "certificate is empty")
	}

	rest := s.data
	for {
		block, next := pem.Decode(rest)
		if block == nil {
			break
		}
		rest = next
		switch block.Type {
		case "CERTIFICATE":
			return modulusFromCertificate(block.Bytes)
		case "PUBLIC KEY":
			return modulusFromPKIX(block.Bytes)
		case "RSA PUBLIC KEY":
			pub, err := x509.ParsePKCS1PublicKey(block.Bytes)
			if err != nil {
				return nil, dErrors.Wrap(err, dErrors.CodeCertificateParse, "parse PKCS#1 public key")
			}
			return checkModulus(pub.N)
		}
	}
	// DER starts with an ASN.1 SEQUENCE tag.
	if s.data[0] == 0x30 {
		if n, err := modulusFromCertificate(s.data); err == nil {
			return n, nil
		}
		return modulusFromPKIX(s.data)
	}
	return nil, dErrors.New(dErrors.CodeCertificateParse, "no certificate or public key found")
}

func modulusFromCertificate(der []byte) (*big.Int, error) {
	cert, err := x509.ParseCertificate(der)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeCertificateParse, "parse certificate")
	}
	return rsaModulus(cert.PublicKey)
}

func modulusFromPKIX(der []byte) (*big.Int, error) {
	pub, err := x509.ParsePKIXPublicKey(der)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeCertificateParse, "parse public key")
	}
	return rsaModulus(pub)
}

func rsaModulus(pub any) (*big.Int, error) {
	key, ok := pub.(*rsa.PublicKey)
	if !ok {
		return nil, dErrors.Newf(dErrors.CodeCertificateParse, "public key is %T, not RSA", pub)
	}
	return checkModulus(key.N)
}

func checkModulus(n *big.Int) (*big.Int, error) {
	if n == nil || n.Sign() <= 0 {
		return nil, dErrors.New(dErrors.CodeCertificateParse, "modulus must be positive")
	}
	return new(big.Int).Set(n), nil
}

// RawModulusSource serves a modulus given directly as a decimal or 0x-hex
// integer.
type RawModulusSource struct {
	value string
}

func NewRawModulusSource(value string) *RawModulusSource {
	return &RawModulusSource{value: value}
}

func (s *RawModulusSource) Modulus(ctx context.Context) (*big.Int, error) {
	if err := ctx.Err(); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeTimeout, "modulus parse cancelled")
	}
	n, ok := bignum.ParseInteger(s.value)
	if !ok {
		return nil, dErrors.New(dErrors.CodeCertificateParse, "modulus is not a decimal or 0x-hex integer")
	}
	return checkModulus(n)
}

// StaticSource serves an already resolved modulus.
type StaticSource struct {
	n *big.Int
}

func NewStaticSource(n *big.Int) *StaticSource {
	return &StaticSource{n: n}
}

func (s *StaticSource) Modulus(context.Context) (*big.Int, error) {
	return checkModulus(s.n)
}

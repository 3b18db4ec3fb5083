package certificate

import (
	"context"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"math/big"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	dErrors "github.com/anon-aadhaar/anon-aadhaar-noir/pkg/domain-errors"
	"github.com/anon-aadhaar/anon-aadhaar-noir/pkg/platform/sentinel"
)

type X509SourceSuite struct {
	suite.Suite
	key     *rsa.PrivateKey
	certDER []byte
}

func TestX509SourceSuite(t *testing.T) {
	suite.Run(t, new(X509SourceSuite))
}

func (s *X509SourceSuite) SetupSuite() {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	s.Require().NoError(err)
	s.key = key

	template := x509.Certificate{
		SerialNumber: big.NewInt(1),
		Subject:      pkix.Name{CommonName: "uidai-test-signer"},
		NotBefore:    time.Now().Add(-time.Hour),
		NotAfter:     time.Now().Add(24 * time.Hour),
		KeyUsage:     x509.KeyUsageDigitalSignature,
	}
	der, err := x509.CreateCertificate(rand.Reader, &template, &template, &key.PublicKey, key)
	s.Require().NoError(err)
	s.certDER = der
}

func (s *X509SourceSuite) TestPEMCertificate() {
	data := pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: s.certDER})
	n, err := NewX509Source(data).Modulus(context.Background())
	s.Require().NoError(err)
	s.Zero(s.key.N.Cmp(n))
}

func (s *X509SourceSuite) TestDERCertificate() {
	n, err := NewX509Source(s.certDER).Modulus(context.Background())
	s.Require().NoError(err)
	s.Zero(s.key.N.Cmp(n))
}

func (s *X509SourceSuite) TestPKIXPublicKey() {
	der, err := x509.MarshalPKIXPublicKey(&s.key.PublicKey)
	s.Require().NoError(err)

	n, err := NewX509Source(pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: der})).Modulus(context.Background())
	s.Require().NoError(err)
	s.Zero(s.key.N.Cmp(n))

	n, err = NewX509Source(der).Modulus(context.Background())
	s.Require().NoError(err)
	s.Zero(s.key.N.Cmp(n))
}

func (s *X509SourceSuite) TestPKCS1PublicKey() {
	der := x509.MarshalPKCS1PublicKey(&s.key.PublicKey)
	n, err := NewX509Source(pem.EncodeToMemory(&pem.Block{Type: "RSA PUBLIC KEY", Bytes: der})).Modulus(context.Background())
	s.Require().NoError(err)
	s.Zero(s.key.N.Cmp(n))
}

func (s *X509SourceSuite) TestLoadFile() {
	path := filepath.Join(s.T().TempDir(), "testCertificate.pem")
	s.Require().NoError(os.WriteFile(path, pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: s.certDER}), 0o600))

	src, err := LoadFile(path)
	s.Require().NoError(err)
	n, err := src.Modulus(context.Background())
	s.Require().NoError(err)
	s.Zero(s.key.N.Cmp(n))
}

func (s *X509SourceSuite) TestCancelledContext() {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewX509Source(s.certDER).Modulus(ctx)
	s.True(dErrors.HasCode(err, dErrors.CodeTimeout))
}

func TestX509SourceRejects(t *testing.T) {
	ecKey, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)
	ecDER, err := x509.MarshalPKIXPublicKey(&ecKey.PublicKey)
	require.NoError(t, err)

	for name, data := range map[string][]byte{
		"empty":          nil,
		"garbage":        []byte("not a certificate"),
		"corrupt der":    {0x30, 0x03, 0x01, 0x02},
		"unknown pem":    pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: []byte{1}}),
		"bad pem cert":   pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: []byte{1, 2}}),
		"non-rsa pubkey": pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: ecDER}),
	} {
		t.Run(name, func(t *testing.T) {
			_, err := NewX509Source(data).Modulus(context.Background())
			require.Error(t, err)
			assert.True(t, dErrors.HasCode(err, dErrors.CodeCertificateParse))
		})
	}
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "absent.cer"))
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeCertificateParse))
	assert.ErrorIs(t, err, sentinel.ErrNotFound)
}

func TestRawModulusSource(t *testing.T) {
	n, err := NewRawModulusSource("0xC0FFEE").Modulus(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(0xc0ffee), n.Int64())

	n, err = NewRawModulusSource("65537").Modulus(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(65537), n.Int64())

	for _, bad := range []string{"", "0", "-3", "0xg"} {
		_, err := NewRawModulusSource(bad).Modulus(context.Background())
		assert.True(t, dErrors.HasCode(err, dErrors.CodeCertificateParse), bad)
	}
}

func TestStaticSourceCopies(t *testing.T) {
	orig := big.NewInt(99)
	n, err := NewStaticSource(orig).Modulus(context.Background())
	require.NoError(t, err)
	n.SetInt64(1)
	assert.Equal(t, int64(99), orig.Int64())

	_, err = NewStaticSource(nil).Modulus(context.Background())
	assert.True(t, dErrors.HasCode(err, dErrors.CodeCertificateParse))
}

package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anon-aadhaar/anon-aadhaar-noir/internal/circuitinput"
	"github.com/anon-aadhaar/anon-aadhaar-noir/internal/qrdata"
	dErrors "github.com/anon-aadhaar/anon-aadhaar-noir/pkg/domain-errors"
	"github.com/anon-aadhaar/anon-aadhaar-noir/pkg/platform/sentinel"
)

func env(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func circuitEnv() map[string]string {
	return map[string]string{
		EnvPaddedLength: "1536",
		EnvPaddingMode:  "zero",
		EnvLimbWidth:    "120",
		EnvLimbCount:    "18",
		EnvDelimiterMax: "18",
		EnvOverflowBits: "4",
		EnvModulus:      "0xc0ffee",
	}
}

func TestLoad(t *testing.T) {
	cfg, err := Load(env(circuitEnv()))
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Addr)
	assert.False(t, cfg.Debug)
	assert.Equal(t, circuitinput.DefaultFixturePath, cfg.FixturePath)
	assert.Equal(t, circuitinput.CircuitParams{
		PaddedLength: 1536,
		PaddingMode:  qrdata.PaddingZeroFill,
		LimbWidth:    120,
		LimbCount:    18,
		DelimiterMax: 18,
		OverflowBits: 4,
	}, cfg.Circuit)

	src, err := cfg.CertificateSource()
	require.NoError(t, err)
	assert.NotNil(t, src)
}

func TestLoadRequiresEveryCircuitValue(t *testing.T) {
	for _, key := range []string{EnvPaddedLength, EnvPaddingMode, EnvLimbWidth, EnvLimbCount, EnvDelimiterMax, EnvOverflowBits} {
		t.Run(key, func(t *testing.T) {
			e := circuitEnv()
			delete(e, key)
			_, err := Load(env(e))
			require.Error(t, err)
			assert.True(t, dErrors.HasCode(err, dErrors.CodeConfiguration))
			assert.Contains(t, err.Error(), key)
		})
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	for name, mutate := range map[string]func(map[string]string){
		"non-numeric length": func(e map[string]string) { e[EnvPaddedLength] = "big" },
		"unknown padding":    func(e map[string]string) { e[EnvPaddingMode] = "pkcs7" },
		"two modulus sources": func(e map[string]string) {
			e[EnvCertPath] = "cert.pem"
		},
		"prover without circuit": func(e map[string]string) { e[EnvProverDir] = "circuits" },
		"negative overflow":      func(e map[string]string) { e[EnvOverflowBits] = "-1" },
	} {
		t.Run(name, func(t *testing.T) {
			e := circuitEnv()
			mutate(e)
			_, err := Load(env(e))
			require.Error(t, err)
			assert.True(t, dErrors.HasCode(err, dErrors.CodeConfiguration))
		})
	}
}

func TestCertificateSource(t *testing.T) {
	e := circuitEnv()
	delete(e, EnvModulus)
	cfg, err := Load(env(e))
	require.NoError(t, err)

	_, err = cfg.CertificateSource()
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeConfiguration))

	cfg.CertPath = filepath.Join(t.TempDir(), "missing.pem")
	_, err = cfg.CertificateSource()
	require.Error(t, err)
	assert.ErrorIs(t, err, sentinel.ErrNotFound)
}

func TestLoadDisclosure(t *testing.T) {
	d, err := LoadDisclosure(env(map[string]string{
		EnvNullifierSeed: "12345678",
		EnvSignal:        "1",
		EnvRevealGender:  "true",
		EnvRevealAge:     "1",
		EnvRevealPinCode: "false",
		EnvRevealState:   "0",
	}))
	require.NoError(t, err)
	assert.Equal(t, "12345678", d.NullifierSeed)
	assert.Len(t, d.Signal, 32)
	assert.True(t, d.RevealGender)
	assert.True(t, d.RevealAgeAbove18)
	assert.False(t, d.RevealPinCode)
	assert.False(t, d.RevealState)

	_, err = LoadDisclosure(env(map[string]string{EnvNullifierSeed: "1", EnvSignal: "1"}))
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeConfiguration))
	assert.Contains(t, err.Error(), EnvRevealGender)
}

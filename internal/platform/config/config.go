package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/anon-aadhaar/anon-aadhaar-noir/internal/certificate"
	"github.com/anon-aadhaar/anon-aadhaar-noir/internal/circuitinput"
	"github.com/anon-aadhaar/anon-aadhaar-noir/internal/qrdata"
	dErrors "github.com/anon-aadhaar/anon-aadhaar-noir/pkg/domain-errors"
)

// Environment variables. Circuit values have no defaults: the padded length,
// padding mode and limb layout differ between circuit versions, and guessing
// one produces inputs the circuit silently rejects.
const (
	EnvAddr          = "AADHAAR_ADDR"
	EnvDebug         = "AADHAAR_DEBUG"
	EnvPaddedLength  = "AADHAAR_PADDED_LENGTH"
	EnvPaddingMode   = "AADHAAR_PADDING_MODE"
	EnvLimbWidth     = "AADHAAR_LIMB_WIDTH"
	EnvLimbCount     = "AADHAAR_LIMB_COUNT"
	EnvDelimiterMax  = "AADHAAR_DELIMITER_MAX"
	EnvOverflowBits  = "AADHAAR_OVERFLOW_BITS"
	EnvCertPath      = "AADHAAR_CERT_PATH"
	EnvModulus       = "AADHAAR_MODULUS"
	EnvNullifierSeed = "AADHAAR_NULLIFIER_SEED"
	EnvSignal        = "AADHAAR_SIGNAL"
	EnvRevealGender  = "AADHAAR_REVEAL_GENDER"
	EnvRevealAge     = "AADHAAR_REVEAL_AGE_ABOVE_18"
	EnvRevealPinCode = "AADHAAR_REVEAL_PIN_CODE"
	EnvRevealState   = "AADHAAR_REVEAL_STATE"
	EnvFixturePath   = "AADHAAR_FIXTURE_PATH"
	EnvProverDir     = "AADHAAR_PROVER_DIR"
	EnvProverCircuit = "AADHAAR_PROVER_CIRCUIT"
)

// Config is the process configuration, read once at startup and never
// mutated afterwards.
type Config struct {
	Addr        string
	Debug       bool
	Circuit     circuitinput.CircuitParams
	CertPath    string
	Modulus     string
	FixturePath string

	// Prover is enabled when ProverDir is set.
	ProverDir     string
	ProverCircuit string
}

// FromEnv builds a Config from the process environment.
func FromEnv() (Config, error) {
	return Load(os.Getenv)
}

// Load builds a Config from getenv and reports every missing or invalid
// circuit value at once.
func Load(getenv func(string) string) (Config, error) {
	r := reader{getenv: getenv}
	cfg := Config{
		Addr:          getenv(EnvAddr),
		Debug:         getenv(EnvDebug) == "true",
		CertPath:      strings.TrimSpace(getenv(EnvCertPath)),
		Modulus:       strings.TrimSpace(getenv(EnvModulus)),
		FixturePath:   getenv(EnvFixturePath),
		ProverDir:     getenv(EnvProverDir),
		ProverCircuit: getenv(EnvProverCircuit),
	}
	if cfg.Addr == "" {
		cfg.Addr = ":8080"
	}
	if cfg.FixturePath == "" {
		cfg.FixturePath = circuitinput.DefaultFixturePath
	}

	cfg.Circuit = circuitinput.CircuitParams{
		PaddedLength: r.int(EnvPaddedLength),
		LimbWidth:    r.int(EnvLimbWidth),
		LimbCount:    r.int(EnvLimbCount),
		DelimiterMax: r.int(EnvDelimiterMax),
		OverflowBits: r.int(EnvOverflowBits),
	}
	if mode := r.required(EnvPaddingMode); mode != "" {
		m, err := qrdata.ParsePaddingMode(mode)
		if err != nil {
			r.fail(err)
		}
		cfg.Circuit.PaddingMode = m
	}

	if cfg.CertPath != "" && cfg.Modulus != "" {
		r.fail(fmt.Errorf("%s and %s are mutually exclusive", EnvCertPath, EnvModulus))
	}
	if cfg.ProverDir != "" && cfg.ProverCircuit == "" {
		r.fail(fmt.Errorf("%s is required when %s is set", EnvProverCircuit, EnvProverDir))
	}

	if err := r.err(); err != nil {
		return Config{}, err
	}
	if err := cfg.Circuit.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// CertificateSource opens the configured modulus source. A certificate file
// is read and closed here, once per process. The source is only required by
// callers that need it, so its absence is reported here rather than by Load.
func (c Config) CertificateSource() (certificate.Source, error) {
	if c.CertPath == "" && c.Modulus == "" {
		return nil, dErrors.Newf(dErrors.CodeConfiguration, "one of %s or %s is required", EnvCertPath, EnvModulus)
	}
	if c.Modulus != "" {
		return certificate.NewRawModulusSource(c.Modulus), nil
	}
	src, err := certificate.LoadFile(c.CertPath)
	if err != nil {
		return nil, err
	}
	return src, nil
}

// LoadDisclosure reads the per-proof values used by the fixture generator.
func LoadDisclosure(getenv func(string) string) (circuitinput.Disclosure, error) {
	r := reader{getenv: getenv}
	d := circuitinput.Disclosure{
		NullifierSeed:    r.required(EnvNullifierSeed),
		RevealGender:     r.bool(EnvRevealGender),
		RevealAgeAbove18: r.bool(EnvRevealAge),
		RevealPinCode:    r.bool(EnvRevealPinCode),
		RevealState:      r.bool(EnvRevealState),
	}
	if s := r.required(EnvSignal); s != "" {
		signal, err := circuitinput.ParseSignal(s)
		if err != nil {
			r.fail(err)
		}
		d.Signal = signal
	}
	if err := r.err(); err != nil {
		return circuitinput.Disclosure{}, err
	}
	return d, nil
}

type reader struct {
	getenv func(string) string
	errs   []error
}

func (r *reader) fail(err error) {
	r.errs = append(r.errs, err)
}

func (r *reader) required(key string) string {
	v := strings.TrimSpace(r.getenv(key))
	if v == "" {
		r.fail(fmt.Errorf("%s is required", key))
	}
	return v
}

func (r *reader) int(key string) int {
	v := r.required(key)
	if v == "" {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		r.fail(fmt.Errorf("%s must be an integer, got %q", key, v))
	}
	return n
}

func (r *reader) bool(key string) bool {
	v := r.required(key)
	if v == "" {
		return false
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		r.fail(fmt.Errorf("%s must be a boolean, got %q", key, v))
	}
	return b
}

func (r *reader) err() error {
	if len(r.errs) == 0 {
		return nil
	}
	return dErrors.Wrap(errors.Join(r.errs...), dErrors.CodeConfiguration, "invalid configuration")
}

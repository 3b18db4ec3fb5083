// Package circuitinput runs the secure-QR pipeline and assembles the record
// the anon-aadhaar circuit consumes.
package circuitinput

import (
	"strconv"

	"github.com/anon-aadhaar/anon-aadhaar-noir/internal/qrdata"
	dErrors "github.com/anon-aadhaar/anon-aadhaar-noir/pkg/domain-errors"
)

// Parts are the outputs of the pipeline stages that make up one input.
type Parts struct {
	Signed         []byte
	Padded         []byte
	Delimiters     []int
	SignatureLimbs []string
	ModulusLimbs   []string
	RedcLimbs      []string
	Disclosure     Disclosure
}

// Validate checks the circuit contract before any payload is processed.
func (p CircuitParams) Validate() error {
	if p.PaddedLength <= 0 {
		return dErrors.Newf(dErrors.CodeConfiguration, "padded length must be positive, got %d", p.PaddedLength)
	}
	if _, err := qrdata.ParsePaddingMode(string(p.PaddingMode)); err != nil {
		return err
	}
	if p.DelimiterMax <= 0 {
		return dErrors.Newf(dErrors.CodeConfiguration, "delimiter max must be positive, got %d", p.DelimiterMax)
	}
	if p.OverflowBits < 0 {
		return dErrors.Newf(dErrors.CodeConfiguration, "overflow bits must not be negative, got %d", p.OverflowBits)
	}
	// Limb layout is checked by bignum.NewEncoder.
	return nil
}

// Assemble composes the circuit input from stage outputs. It either returns a
// complete record or an error, never a partial record.
func Assemble(p Parts) (*CircuitInput, error) {
	if len(p.Signed) > len(p.Padded) {
		return nil, dErrors.Newf(dErrors.CodeOverflow,
			"signed document of %d bytes exceeds padded buffer of %d", len(p.Signed), len(p.Padded))
	}
	seed, err := parseFieldElement("nullifier seed", p.Disclosure.NullifierSeed)
	if err != nil {
		return nil, err
	}
	signalHash, err := HashSignal(p.Disclosure.Signal)
	if err != nil {
		return nil, err
	}
	if err := checkFieldElement("signal hash", signalHash); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "signal hash out of field")
	}

	return &CircuitInput{
		QRDataPadded: PaddedData{
			Len:     strconv.Itoa(len(p.Padded)),
			Storage: byteStrings(p.Padded),
		},
		QRDataPaddedLength: strconv.Itoa(len(p.Signed)),
		NullifierSeed:      fieldString(seed),
		DelimiterIndices:   intStrings(p.Delimiters),
		SignatureLimbs:     append([]string(nil), p.SignatureLimbs...),
		ModulusLimbs:       append([]string(nil), p.ModulusLimbs...),
		RedcLimbs:          append([]string(nil), p.RedcLimbs...),
		RevealGender:       flag(p.Disclosure.RevealGender),
		RevealAgeAbove18:   flag(p.Disclosure.RevealAgeAbove18),
		RevealPinCode:      flag(p.Disclosure.RevealPinCode),
		RevealState:        flag(p.Disclosure.RevealState),
		SignalHash:         fieldString(signalHash),
	}, nil
}

func flag(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

func byteStrings(b []byte) []string {
	out := make([]string, len(b))
	for i, v := range b {
		out[i] = strconv.Itoa(int(v))
	}
	return out
}

func intStrings(v []int) []string {
	out := make([]string, len(v))
	for i, n := range v {
		out[i] = strconv.Itoa(n)
	}
	return out
}

package circuitinput

import (
	"github.com/anon-aadhaar/anon-aadhaar-noir/internal/qrdata"
)

// CircuitParams is the fixed contract of one circuit build. Every field is
// required; nothing is defaulted.
type CircuitParams struct {
	PaddedLength int
	PaddingMode  qrdata.PaddingMode
	LimbWidth    int
	LimbCount    int
	DelimiterMax int
	OverflowBits int
}

// Disclosure selects what a proof reveals and binds it to a context.
type Disclosure struct {
	NullifierSeed    string
	Signal           []byte
	RevealGender     bool
	RevealAgeAbove18 bool
	RevealPinCode    bool
	RevealState      bool
}

// Request is one pipeline invocation.
type Request struct {
	// Payload is the decimal integer read from the QR code.
	Payload string
	// Record, when set, is an already inflated record and Payload is ignored.
	Record     []byte
	Disclosure Disclosure
}

// PaddedData is the circuit's fixed-capacity byte vector.
type PaddedData struct {
	Len     string   `toml:"len" json:"len"`
	Storage []string `toml:"storage" json:"storage"`
}

// CircuitInput is the complete witness input of the circuit. Field names and
// string typing follow the circuit's main function parameters.
type CircuitInput struct {
	QRDataPadded       PaddedData `toml:"qrDataPadded" json:"qrDataPadded"`
	QRDataPaddedLength string     `toml:"qrDataPaddedLength" json:"qrDataPaddedLength"`
	NullifierSeed      string     `toml:"nullifierSeed" json:"nullifierSeed"`
	DelimiterIndices   []string   `toml:"delimiterIndices" json:"delimiterIndices"`
	SignatureLimbs     []string   `toml:"signature_limbs" json:"signature_limbs"`
	ModulusLimbs       []string   `toml:"modulus_limbs" json:"modulus_limbs"`
	RedcLimbs          []string   `toml:"redc_limbs" json:"redc_limbs"`
	RevealGender       string     `toml:"revealGender" json:"revealGender"`
	RevealAgeAbove18   string     `toml:"revealAgeAbove18" json:"revealAgeAbove18"`
	RevealPinCode      string     `toml:"revealPinCode" json:"revealPinCode"`
	RevealState        string     `toml:"revealState" json:"revealState"`
	SignalHash         string     `toml:"signalHash" json:"signalHash"`
}

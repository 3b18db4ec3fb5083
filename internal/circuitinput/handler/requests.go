package handler

import (
	"strings"

	"github.com/anon-aadhaar/anon-aadhaar-noir/internal/circuitinput"
	dErrors "github.com/anon-aadhaar/anon-aadhaar-noir/pkg/domain-errors"
)

// maxPayloadDigits bounds the decimal payload before any big-integer work.
const maxPayloadDigits = 16 << 10

// GenerateRequest is the body of POST /v1/circuit-inputs and POST /v1/proofs.
type GenerateRequest struct {
	Payload          string `json:"payload"`
	NullifierSeed    string `json:"nullifier_seed"`
	Signal           string `json:"signal"`
	RevealGender     bool   `json:"reveal_gender"`
	RevealAgeAbove18 bool   `json:"reveal_age_above_18"`
	RevealPinCode    bool   `json:"reveal_pin_code"`
	RevealState      bool   `json:"reveal_state"`

	parsedSignal []byte
}

// Validate normalizes and checks the request.
// Implements the Validatable interface for httputil.DecodeAndPrepare.
func (r *GenerateRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}

	if len(r.Payload) > maxPayloadDigits {
		return dErrors.New(dErrors.CodeValidation, "payload is too long")
	}

	r.Payload = strings.TrimSpace(r.Payload)
	if r.Payload == "" {
		return dErrors.New(dErrors.CodeValidation, "payload is required")
	}
	r.NullifierSeed = strings.TrimSpace(r.NullifierSeed)
	if r.NullifierSeed == "" {
		return dErrors.New(dErrors.CodeValidation, "nullifier_seed is required")
	}
	r.Signal = strings.TrimSpace(r.Signal)
	if r.Signal == "" {
		return dErrors.New(dErrors.CodeValidation, "signal is required")
	}

	signal, err := circuitinput.ParseSignal(r.Signal)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeValidation, "signal must be a non-negative integer of at most 256 bits")
	}
	r.parsedSignal = signal
	return nil
}

// ToRequest converts the validated body into a pipeline request.
func (r *GenerateRequest) ToRequest() circuitinput.Request {
	return circuitinput.Request{
		Payload: r.Payload,
		Disclosure: circuitinput.Disclosure{
			NullifierSeed:    r.NullifierSeed,
			Signal:           r.parsedSignal,
			RevealGender:     r.RevealGender,
			RevealAgeAbove18: r.RevealAgeAbove18,
			RevealPinCode:    r.RevealPinCode,
			RevealState:      r.RevealState,
		},
	}
}

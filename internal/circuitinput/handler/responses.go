package handler

import (
	"encoding/hex"

	"github.com/anon-aadhaar/anon-aadhaar-noir/internal/circuitinput"
)

// GenerateResponse is the response for POST /v1/circuit-inputs.
type GenerateResponse struct {
	RequestID string                     `json:"request_id,omitempty"`
	Input     *circuitinput.CircuitInput `json:"input"`
}

// ProofResponse is the response for POST /v1/proofs.
type ProofResponse struct {
	RequestID string                     `json:"request_id,omitempty"`
	Proof     string                     `json:"proof"`
	Verified  bool                       `json:"verified"`
	Input     *circuitinput.CircuitInput `json:"input"`
}

// FromProofResult converts a prover round trip into an HTTP response.
func FromProofResult(requestID string, result *circuitinput.ProofResult) *ProofResponse {
	return &ProofResponse{
		RequestID: requestID,
		Proof:     hex.EncodeToString(result.Proof),
		Verified:  result.Verified,
		Input:     result.Input,
	}
}

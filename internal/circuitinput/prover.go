package circuitinput

import "context"

// Witness is the solved witness produced by executing the circuit.
type Witness []byte

// Proof is an opaque proof artifact from the backend.
type Proof []byte

// Prover is the external circuit-execution and proving capability. Calls may
// take seconds to minutes; implementations must abort when ctx is done.
//
//go:generate mockgen -source=prover.go -destination=mocks/prover_mock.go -package=mocks Prover
type Prover interface {
	Execute(ctx context.Context, input *CircuitInput) (Witness, error)
	Prove(ctx context.Context, witness Witness) (Proof, error)
	Verify(ctx context.Context, proof Proof) (bool, error)
}

// ProofResult is the outcome of a full prove round trip.
type ProofResult struct {
	Input    *CircuitInput
	Proof    Proof
	Verified bool
}

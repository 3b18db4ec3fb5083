package circuitinput

import (
	"io"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	dErrors "github.com/anon-aadhaar/anon-aadhaar-noir/pkg/domain-errors"
)

// DefaultFixturePath is where the circuit's test harness reads its inputs.
const DefaultFixturePath = "circuits/testcases/test.toml"

// EncodeTOML writes input in the circuit's Prover.toml layout: scalar keys in
// declaration order, then the [qrDataPadded] table.
func EncodeTOML(w io.Writer, input *CircuitInput) error {
	if input == nil {
		return dErrors.New(dErrors.CodeInternal, "no circuit input to encode")
	}
	if err := toml.NewEncoder(w).Encode(input); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "encode circuit input")
	}
	return nil
}

// WriteFixture writes input to path, creating parent directories. The file is
// replaced atomically so a reader never sees a half written fixture. It is
// left owner-only (0600): the padded storage is the signed document itself.
func WriteFixture(path string, input *CircuitInput) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "create fixture directory")
	}
	tmp, err := os.CreateTemp(dir, ".fixture-*.toml")
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "create fixture")
	}
	defer os.Remove(tmp.Name())

	if err := EncodeTOML(tmp, input); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "flush fixture")
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "install fixture")
	}
	return nil
}

// ReadFixture loads a fixture written by WriteFixture.
func ReadFixture(path string) (*CircuitInput, error) {
	var input CircuitInput
	if _, err := toml.DecodeFile(path, &input); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "decode fixture")
	}
	return &input, nil
}

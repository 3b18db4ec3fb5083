package circuitinput

import (
	"math/big"
	"strings"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"

	dErrors "github.com/anon-aadhaar/anon-aadhaar-noir/pkg/domain-errors"
)

// parseFieldElement reads a decimal integer that must be a canonical BN254
// scalar, the native field of the circuit.
func parseFieldElement(name, s string) (*big.Int, error) {
	v, ok := new(big.Int).SetString(strings.TrimSpace(s), 10)
	if !ok {
		return nil, dErrors.Newf(dErrors.CodeConfiguration, "%s must be a decimal integer", name)
	}
	if err := checkFieldElement(name, v); err != nil {
		return nil, err
	}
	return v, nil
}

func checkFieldElement(name string, v *big.Int) error {
	if v.Sign() < 0 || v.Cmp(fr.Modulus()) >= 0 {
		return dErrors.Newf(dErrors.CodeConfiguration, "%s is not an element of the BN254 scalar field", name)
	}
	return nil
}

func fieldString(v *big.Int) string {
	var e fr.Element
	e.SetBigInt(v)
	return e.String()
}

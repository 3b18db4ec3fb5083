package bignum

import (
	"math/big"

	dErrors "github.com/anon-aadhaar/anon-aadhaar-noir/pkg/domain-errors"
)

// BarrettParameter returns floor(2^(2k+overflowBits) / m) where k is the bit
// length of m. The circuit multiplies by this constant and compares instead of
// dividing, so it must be exact.
func BarrettParameter(m *big.Int, overflowBits int) (*big.Int, error) {
	if m == nil || m.Sign() <= 0 {
		return nil, dErrors.New(dErrors.CodeConfiguration, "modulus must be positive")
	}
	if overflowBits < 0 {
		return nil, dErrors.Newf(dErrors.CodeConfiguration, "overflow bits must not be negative, got %d", overflowBits)
	}
	k := m.BitLen()
	num := new(big.Int).Lsh(big.NewInt(1), uint(2*k+overflowBits))
	return num.Quo(num, m), nil
}

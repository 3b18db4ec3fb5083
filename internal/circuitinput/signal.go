package circuitinput

import (
	"math/big"

	"golang.org/x/crypto/sha3"

	"github.com/anon-aadhaar/anon-aadhaar-noir/internal/bignum"
	dErrors "github.com/anon-aadhaar/anon-aadhaar-noir/pkg/domain-errors"
)

const signalSize = 32

// ParseSignal reads a decimal or 0x-hex integer and returns its big-endian
// bytes. Signals are 256-bit words.
func ParseSignal(s string) ([]byte, error) {
	v, ok := bignum.ParseInteger(s)
	if !ok {
		return nil, dErrors.New(dErrors.CodeConfiguration, "signal must be a non-negative decimal or 0x-hex integer")
	}
	if v.BitLen() > signalSize*8 {
		return nil, dErrors.Newf(dErrors.CodeConfiguration, "signal exceeds %d bits", signalSize*8)
	}
	return v.FillBytes(make([]byte, signalSize)), nil
}

// HashSignal left-pads the signal to 32 bytes, hashes it with Keccak-256 and
// drops the low three bits so the digest is a BN254 scalar.
func HashSignal(signal []byte) (*big.Int, error) {
	if len(signal) > signalSize {
		return nil, dErrors.Newf(dErrors.CodeConfiguration, "signal exceeds %d bytes", signalSize)
	}
	word := make([]byte, signalSize)
	copy(word[signalSize-len(signal):], signal)

	h := sha3.NewLegacyKeccak256()
	h.Write(word)
	digest := new(big.Int).SetBytes(h.Sum(nil))
	return digest.Rsh(digest, 3), nil
}

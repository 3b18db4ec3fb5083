// Package bignum splits wide integers into the fixed-width limbs a
// non-native field circuit works with, and derives the Barrett constant the
// circuit needs to reduce modulo an RSA modulus without division.
package bignum

import (
	"fmt"
	"math/big"
	"strings"

	dErrors "github.com/anon-aadhaar/anon-aadhaar-noir/pkg/domain-errors"
)

// MaxLimbWidth is the widest limb that still fits a BN254 scalar field
// element with room for the carries the circuit accumulates.
const MaxLimbWidth = 253

// Encoder decomposes integers into Count limbs of Width bits, least
// significant limb first.
type Encoder struct {
	width uint
	count int
}

// NewEncoder validates the limb layout of a circuit.
func NewEncoder(width, count int) (*Encoder, error) {
	if width < 1 || width > MaxLimbWidth {
		return nil, dErrors.Newf(dErrors.CodeConfiguration, "limb width must be in [1, %d], got %d", MaxLimbWidth, width)
	}
	if count < 1 {
		return nil, dErrors.Newf(dErrors.CodeConfiguration, "limb count must be positive, got %d", count)
	}
	return &Encoder{width: uint(width), count: count}, nil
}

func (e *Encoder) Width() int { return int(e.width) }
func (e *Encoder) Count() int { return e.count }

// Capacity is the number of bits the limb layout can hold.
func (e *Encoder) Capacity() int { return int(e.width) * e.count }

// Decompose returns exactly Count limbs whose weighted sum is v.
func (e *Encoder) Decompose(v *big.Int) ([]*big.Int, error) {
	if v == nil {
		return nil, dErrors.New(dErrors.CodeOverflow, "cannot decompose a nil integer")
	}
	if v.Sign() < 0 {
		return nil, dErrors.New(dErrors.CodeOverflow, "cannot decompose a negative integer")
	}
	if v.BitLen() > e.Capacity() {
		return nil, dErrors.Newf(dErrors.CodeOverflow,
			"integer of %d bits does not fit %d limbs of %d bits", v.BitLen(), e.count, e.width)
	}

	mask := new(big.Int).Lsh(big.NewInt(1), e.width)
	mask.Sub(mask, big.NewInt(1))

	limbs := make([]*big.Int, e.count)
	tmp := new(big.Int).Set(v)
	for i := range limbs {
		limbs[i] = new(big.Int).And(tmp, mask)
		tmp.Rsh(tmp, e.width)
	}
	return limbs, nil
}

// Encode decomposes v and renders each limb as a 0x-prefixed lowercase hex
// string, the form the circuit's parameter files use.
func (e *Encoder) Encode(v *big.Int) ([]string, error) {
	limbs, err := e.Decompose(v)
	if err != nil {
		return nil, err
	}
	out := make([]string, len(limbs))
	for i, l := range limbs {
		out[i] = FormatLimb(l)
	}
	return out, nil
}

// FormatLimb renders a limb as 0x-prefixed lowercase hex; zero is "0x0".
func FormatLimb(l *big.Int) string {
	return "0x" + l.Text(16)
}

// Recompose is the inverse of Decompose: Σ limbs[i]·2^(width·i).
func Recompose(limbs []*big.Int, width int) *big.Int {
	res := new(big.Int)
	for i := len(limbs) - 1; i >= 0; i-- {
		res.Lsh(res, uint(width))
		res.Add(res, limbs[i])
	}
	return res
}

// ParseLimbs reads limbs rendered by Encode (hex with 0x prefix) or plain
// decimal strings.
func ParseLimbs(encoded []string) ([]*big.Int, error) {
	out := make([]*big.Int, len(encoded))
	for i, s := range encoded {
		v, ok := ParseInteger(s)
		if !ok {
			return nil, fmt.Errorf("limb %d: invalid integer %q", i, s)
		}
		out[i] = v
	}
	return out, nil
}

// ParseInteger accepts a non-negative decimal or 0x-prefixed hex integer.
func ParseInteger(s string) (*big.Int, bool) {
	s = strings.TrimSpace(s)
	base := 10
	if rest, ok := strings.CutPrefix(strings.ToLower(s), "0x"); ok {
		s, base = rest, 16
	}
	if s == "" {
		return nil, false
	}
	v, ok := new(big.Int).SetString(s, base)
	if !ok || v.Sign() < 0 {
		return nil, false
	}
	return v, true
}

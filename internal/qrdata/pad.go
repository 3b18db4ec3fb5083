package qrdata

import (
	"encoding/binary"
	"strings"

	dErrors "github.com/anon-aadhaar/anon-aadhaar-noir/pkg/domain-errors"
)

// PaddingMode selects how the signed document is laid out in the fixed
// circuit buffer. Each circuit version expects exactly one of them.
type PaddingMode string

const (
	// PaddingZeroFill copies the document and zero-fills the rest.
	PaddingZeroFill PaddingMode = "zero"
	// PaddingSHA256 applies SHA-256 message padding (0x80, zeros, 64-bit
	// bit length) before zero-filling, for circuits that hash in-circuit.
	PaddingSHA256 PaddingMode = "sha256"
)

const sha256BlockSize = 64

// ParsePaddingMode accepts the configured mode name.
func ParsePaddingMode(s string) (PaddingMode, error) {
	switch m := PaddingMode(strings.ToLower(strings.TrimSpace(s))); m {
	case PaddingZeroFill, PaddingSHA256:
		return m, nil
	default:
		return "", dErrors.Newf(dErrors.CodeConfiguration, "unknown padding mode %q (want %q or %q)", s, PaddingZeroFill, PaddingSHA256)
	}
}

// Pad returns a buffer of exactly length bytes starting with signed.
func Pad(signed []byte, length int, mode PaddingMode) ([]byte, error) {
	if length <= 0 {
		return nil, dErrors.Newf(dErrors.CodeConfiguration, "padded length must be positive, got %d", length)
	}
	switch mode {
	case PaddingZeroFill:
		return zeroFill(signed, length)
	case PaddingSHA256:
		buf, _, err := PadSHA256(signed, length)
		return buf, err
	default:
		return nil, dErrors.Newf(dErrors.CodeConfiguration, "unknown padding mode %q", mode)
	}
}

func zeroFill(signed []byte, length int) ([]byte, error) {
	if len(signed) > length {
		return nil, dErrors.Newf(dErrors.CodeOverflow,
			"signed document of %d bytes exceeds padded length %d", len(signed), length)
	}
	buf := make([]byte, length)
	copy(buf, signed)
	return buf, nil
}

// PadSHA256 applies SHA-256 message padding and zero-fills to length. It also
// returns the length of the padded message before the zero fill, a multiple
// of the 64 byte block size.
func PadSHA256(msg []byte, length int) ([]byte, int, error) {
	padded := len(msg) + 1 + 8
	if rem := padded % sha256BlockSize; rem != 0 {
		padded += sha256BlockSize - rem
	}
	if padded > length {
		return nil, 0, dErrors.Newf(dErrors.CodeOverflow,
			"sha256-padded document of %d bytes exceeds padded length %d", padded, length)
	}
	buf := make([]byte, length)
	copy(buf, msg)
	buf[len(msg)] = 0x80
	binary.BigEndian.PutUint64(buf[padded-8:padded], uint64(len(msg))*8)
	return buf, padded, nil
}

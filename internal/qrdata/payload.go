// Package qrdata turns a secure-QR payload into the byte buffers a circuit
// reads: the inflated record, its signed part and signature, the padded
// document and the offsets of its field separators.
package qrdata

import (
	"bytes"
	"io"
	"math/big"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zlib"

	dErrors "github.com/anon-aadhaar/anon-aadhaar-noir/pkg/domain-errors"
)

const (
	// SignatureSize is the length of the RSA-2048 signature trailing every record.
	SignatureSize = 256

	// MaxRecordSize bounds how much a payload may inflate to.
	MaxRecordSize = 1 << 20
)

// DecodePayload parses the decimal integer printed in the QR code and returns
// its big-endian bytes, the compressed stream.
func DecodePayload(decimal string) ([]byte, error) {
	decimal = strings.TrimSpace(decimal)
	if decimal == "" {
		return nil, dErrors.New(dErrors.CodeDecompression, "payload is empty")
	}
	v, ok := new(big.Int).SetString(decimal, 10)
	if !ok || v.Sign() < 0 {
		return nil, dErrors.New(dErrors.CodeDecompression, "payload is not a non-negative decimal integer")
	}
	b := v.Bytes()
	if len(b) == 0 {
		b = []byte{0}
	}
	return b, nil
}

// Decompress inflates a gzip or zlib stream into the raw record. The record
// must be long enough to carry a signature.
func Decompress(compressed []byte) ([]byte, error) {
	r, err := newInflater(compressed)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeDecompression, "open compressed stream")
	}
	defer r.Close()

	record, err := io.ReadAll(io.LimitReader(r, MaxRecordSize+1))
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeDecompression, "inflate payload")
	}
	if len(record) > MaxRecordSize {
		return nil, dErrors.Newf(dErrors.CodeDecompression, "record exceeds %d bytes", MaxRecordSize)
	}
	if len(record) < SignatureSize {
		return nil, dErrors.Newf(dErrors.CodeDecompression,
			"record of %d bytes is shorter than a %d byte signature", len(record), SignatureSize)
	}
	return record, nil
}

// DecompressPayload is DecodePayload followed by Decompress.
func DecompressPayload(decimal string) ([]byte, error) {
	compressed, err := DecodePayload(decimal)
	if err != nil {
		return nil, err
	}
	return Decompress(compressed)
}

func newInflater(compressed []byte) (io.ReadCloser, error) {
	if len(compressed) >= 2 && compressed[0] == 0x1f && compressed[1] == 0x8b {
		return gzip.NewReader(bytes.NewReader(compressed))
	}
	return zlib.NewReader(bytes.NewReader(compressed))
}

// Package sample builds a synthetic secure-QR record with the V2 field
// layout. It stands in for a real card when generating fixtures and gives
// tests a payload whose offsets are known in advance.
package sample

import (
	"bytes"
	"crypto/sha256"
	"encoding/binary"
	"math/big"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zlib"
)

// Fields are the eighteen leading V2 fields, each terminated by 0xFF.
var Fields = []string{
	"V2",                    // version
	"3",                     // email/mobile indicator
	"269720190612163147727", // reference id
	"Sumit Kumar",
	"01-01-1984",
	"M",
	"C/O Ishwar Chand",
	"East Delhi",
	"", // landmark
	"B-31, 3rd floor",
	"", // location
	"110051",
	"Krishna Nagar",
	"Delhi",
	"Gali No 6",
	"Gandhi Nagar",
	"Krishna Nagar",
	"1234", // last four digits of the mobile number
}

const photoSize = 900

// photoSentinels are offsets inside the photo that hold 0xFF, past the
// eighteenth field separator.
var photoSentinels = []int{100, 500}

// Document returns the signed part of the record.
func Document() []byte {
	var buf bytes.Buffer
	for _, f := range Fields {
		buf.WriteString(f)
		buf.WriteByte(0xFF)
	}
	photo := make([]byte, photoSize)
	for i := range photo {
		photo[i] = byte(i % 251)
	}
	for _, off := range photoSentinels {
		photo[off] = 0xFF
	}
	buf.Write(photo)
	return buf.Bytes()
}

// Signature returns 256 deterministic bytes standing in for the RSA signature.
func Signature() []byte {
	return expand("anon-aadhaar sample signature", 256)
}

// Record is Document followed by Signature.
func Record() []byte {
	return append(Document(), Signature()...)
}

// Modulus returns a fixed odd 2048-bit integer used in place of the issuer's
// RSA modulus.
func Modulus() *big.Int {
	m := new(big.Int).SetBytes(expand("anon-aadhaar sample modulus", 256))
	m.SetBit(m, 2047, 1)
	m.SetBit(m, 0, 1)
	return m
}

// Payload compresses Record with gzip and renders it as the decimal integer
// a QR scanner yields.
func Payload() (string, error) {
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if _, err := zw.Write(Record()); err != nil {
		return "", err
	}
	if err := zw.Close(); err != nil {
		return "", err
	}
	return new(big.Int).SetBytes(buf.Bytes()).String(), nil
}

// ZlibPayload is Payload with a zlib stream instead of gzip.
func ZlibPayload() (string, error) {
	var buf bytes.Buffer
	zw := zlib.NewWriter(&buf)
	if _, err := zw.Write(Record()); err != nil {
		return "", err
	}
	if err := zw.Close(); err != nil {
		return "", err
	}
	return new(big.Int).SetBytes(buf.Bytes()).String(), nil
}

func expand(label string, n int) []byte {
	out := make([]byte, 0, n+sha256.Size)
	var ctr [4]byte
	for i := uint32(0); len(out) < n; i++ {
		binary.BigEndian.PutUint32(ctr[:], i)
		h := sha256.New()
		h.Write([]byte(label))
		h.Write(ctr[:])
		out = h.Sum(out)
	}
	return out[:n]
}

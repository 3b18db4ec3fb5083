package main

import (
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"io"
	"math/big"

	"github.com/BurntSushi/toml"

	"github.com/anon-aadhaar/anon-aadhaar-noir/internal/bignum"
	"github.com/anon-aadhaar/anon-aadhaar-noir/internal/circuitinput"
)

const rsaBits = 2048

// signatureParams is the TOML block pasted into circuit unit tests.
type signatureParams struct {
	ModulusLimbs   []string `toml:"modulus_limbs"`
	RedcLimbs      []string `toml:"redc_limbs"`
	SignatureLimbs []string `toml:"signature_limbs"`
}

// printParams signs message with a fresh RSA-2048 key (PKCS#1 v1.5, SHA-256)
// and prints the modulus, Barrett constant and signature as limb arrays.
func printParams(w io.Writer, params circuitinput.CircuitParams, message []byte) error {
	key, err := rsa.GenerateKey(rand.Reader, rsaBits)
	if err != nil {
		return err
	}
	digest := sha256.Sum256(message)
	sig, err := rsa.SignPKCS1v15(rand.Reader, key, crypto.SHA256, digest[:])
	if err != nil {
		return err
	}
	out, err := limbParams(params, key.N, new(big.Int).SetBytes(sig))
	if err != nil {
		return err
	}
	return toml.NewEncoder(w).Encode(out)
}

func limbParams(params circuitinput.CircuitParams, modulus, signature *big.Int) (*signatureParams, error) {
	enc, err := bignum.NewEncoder(params.LimbWidth, params.LimbCount)
	if err != nil {
		return nil, err
	}
	redc, err := bignum.BarrettParameter(modulus, params.OverflowBits)
	if err != nil {
		return nil, err
	}

	var out signatureParams
	if out.ModulusLimbs, err = enc.Encode(modulus); err != nil {
		return nil, err
	}
	if out.RedcLimbs, err = enc.Encode(redc); err != nil {
		return nil, err
	}
	if out.SignatureLimbs, err = enc.Encode(signature); err != nil {
		return nil, err
	}
	return &out, nil
}

package qrdata

import (
	dErrors "github.com/anon-aadhaar/anon-aadhaar-noir/pkg/domain-errors"
)

// Record is an inflated payload split into what was signed and the signature.
type Record struct {
	Signed    []byte
	Signature []byte
}

// Split separates the trailing signature from the signed document. Both
// slices are copies, so callers may keep them after record is reused.
func Split(record []byte) (Record, error) {
	if len(record) < SignatureSize {
		return Record{}, dErrors.Newf(dErrors.CodeMalformedRecord,
			"record of %d bytes cannot hold a %d byte signature", len(record), SignatureSize)
	}
	cut := len(record) - SignatureSize
	return Record{
		Signed:    append([]byte(nil), record[:cut]...),
		Signature: append([]byte(nil), record[cut:]...),
	}, nil
}

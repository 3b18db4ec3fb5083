package qrdata

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anon-aadhaar/anon-aadhaar-noir/internal/qrdata/sample"
	dErrors "github.com/anon-aadhaar/anon-aadhaar-noir/pkg/domain-errors"
)

func TestSplit(t *testing.T) {
	rec, err := Split(sample.Record())
	require.NoError(t, err)
	assert.Equal(t, sample.Document(), rec.Signed)
	assert.Equal(t, sample.Signature(), rec.Signature)
	assert.Len(t, rec.Signed, 1067)
}

func TestSplitSignatureOnly(t *testing.T) {
	rec, err := Split(sample.Signature())
	require.NoError(t, err)
	assert.Empty(t, rec.Signed)
	assert.Len(t, rec.Signature, SignatureSize)
}

func TestSplitCopiesInput(t *testing.T) {
	raw := sample.Record()
	rec, err := Split(raw)
	require.NoError(t, err)

	raw[0] = 'X'
	raw[len(raw)-1] ^= 0xff
	assert.Equal(t, byte('V'), rec.Signed[0])
	assert.Equal(t, sample.Signature(), rec.Signature)
}

func TestSplitShortRecord(t *testing.T) {
	_, err := Split(make([]byte, SignatureSize-1))
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeMalformedRecord))
}

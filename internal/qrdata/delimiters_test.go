package qrdata

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anon-aadhaar/anon-aadhaar-noir/internal/qrdata/sample"
)

var sampleDelimiters = []int{2, 4, 26, 38, 49, 51, 68, 79, 80, 96, 97, 104, 118, 124, 134, 147, 161, 166}

func TestScanDelimitersSample(t *testing.T) {
	buf, err := Pad(sample.Document(), 1536, PaddingZeroFill)
	require.NoError(t, err)

	got := ScanDelimiters(buf, Sentinel, 18)
	assert.Equal(t, sampleDelimiters, got)
}

func TestScanDelimitersCap(t *testing.T) {
	buf := []byte{0xff, 0, 0xff, 0xff, 1, 0xff}

	assert.Equal(t, []int{0, 2}, ScanDelimiters(buf, Sentinel, 2))
	assert.Equal(t, []int{0, 2, 3, 5}, ScanDelimiters(buf, Sentinel, 18))
	assert.Equal(t, []int{1}, ScanDelimiters(buf, 0, 18))
	assert.Empty(t, ScanDelimiters(buf, Sentinel, 0))
	assert.Empty(t, ScanDelimiters(nil, Sentinel, 18))
}

func TestScanDelimitersAscending(t *testing.T) {
	got := ScanDelimiters(sample.Document(), Sentinel, 100)
	require.Len(t, got, 20)
	for i := 1; i < len(got); i++ {
		assert.Less(t, got[i-1], got[i])
	}
}

package qrdata

// Sentinel separates the fields of the signed document.
const Sentinel byte = 0xFF

// ScanDelimiters returns, in ascending order, the first max offsets at which
// buf holds sentinel.
func ScanDelimiters(buf []byte, sentinel byte, max int) []int {
	if max <= 0 {
		return []int{}
	}
	indices := make([]int, 0, max)
	for i, b := range buf {
		if b != sentinel {
			continue
		}
		indices = append(indices, i)
		if len(indices) == max {
			break
		}
	}
	return indices
}

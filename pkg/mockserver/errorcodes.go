package mockserver

import "slices"

const (
	// maxErrorCode is the highest status served under /{code}.
	maxErrorCode = 511

	// minServableCode is the lowest final status net/http can write.
	minServableCode = 200
)

// seedErrorCodes lead the list, in this order.
var seedErrorCodes = []int{444, 449, 450, 451, 456, 495, 496, 497, 498, 499}

// skippedErrorCodes are never served under /{code}.
var skippedErrorCodes = map[int]bool{419: true, 420: true, 427: true, 430: true}

// ErrorCodes returns every status served under /{code}: the seed codes
// first, then every other code from 200 to 511 in ascending order, without
// 419, 420, 427 and 430. The returned slice is a fresh copy.
func ErrorCodes() []int {
	codes := slices.Clone(seedErrorCodes)
	for code := minServableCode; code <= maxErrorCode; code++ {
		if skippedErrorCodes[code] || slices.Contains(seedErrorCodes, code) {
			continue
		}
		codes = append(codes, code)
	}
	return codes
}

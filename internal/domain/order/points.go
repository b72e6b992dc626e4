package order

import (
	"github.com/shopline/backend/internal/domain/shared"
)

// DistributePoints splits total proportionally across shares: each position
// receives floor(share * total / T) where T is the sum of shares, and the
// remainder goes entirely to the first position. The distributed amounts
// always sum to total exactly.
//
// The first-item remainder rule is a deliberate tie-break that downstream
// reconciliation depends on; do not replace it with rounding.
func DistributePoints(total int64, shares []int64) ([]int64, error) {
	if total < 0 {
		return nil, shared.NewValidationError("point amount cannot be negative")
	}
	if len(shares) == 0 {
		return nil, shared.NewValidationError("cannot distribute points over zero items")
	}

	out := make([]int64, len(shares))
	if total == 0 {
		return out, nil
	}

	var sum int64
	for _, s := range shares {
		sum += s
	}
	if sum <= 0 {
		return nil, shared.NewValidationError("cannot distribute points over a non-positive payment total")
	}

	var distributed int64
	for i, s := range shares {
		out[i] = s * total / sum
		distributed += out[i]
	}
	out[0] += total - distributed

	return out, nil
}

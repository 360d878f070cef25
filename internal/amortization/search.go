package amortization

import (
	"github.com/shopspring/decimal"
)

// searchClosestMonth finds the month in [0, maxMonth] whose value under f is
// closest to target, assuming f is monotonically non-increasing. A value
// within tolerance of the target matches immediately; when nothing matches,
// the search resolves to the final lower bound, which also breaks ties
// toward the smaller month.
func searchClosestMonth(f func(month int) decimal.Decimal, target decimal.Decimal, maxMonth int, tolerance decimal.Decimal) int {
	low, high := 0, maxMonth
	for low <= high {
		mid := (low + high) / 2
		v := f(mid)
		if v.Sub(target).Abs().LessThanOrEqual(tolerance) {
			return mid
		}
		if v.GreaterThan(target) {
			low = mid + 1
		} else {
			high = mid - 1
		}
	}
	if low > maxMonth {
		return maxMonth
	}
	return low
}

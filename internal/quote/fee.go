package quote

// feeTier is one flat bracket of the service fee schedule.
// A total belongs to the first tier whose upper bound it does not exceed.
type feeTier struct {
	upTo float64
	fee  float64
}

var feeTiers = []feeTier{
	{upTo: 250, fee: 10},
	{upTo: 1000, fee: 20},
	{upTo: 2000, fee: 30},
}

// percentFee applies to totals above the last flat tier.
const percentFee = 0.015

// Fee returns the service fee, in base currency, charged on a total paid amount.
// Upper bounds of the flat tiers are inclusive.
func Fee(total float64) float64 {
	for _, t := range feeTiers {
		if total <= t.upTo {
			return t.fee
		}
	}
	return total * percentFee
}

// Bracket returns the index of the fee tier a total falls into.
// The percentage tier is len(feeTiers).
func Bracket(total float64) int {
	for i, t := range feeTiers {
		if total <= t.upTo {
			return i
		}
	}
	return len(feeTiers)
}

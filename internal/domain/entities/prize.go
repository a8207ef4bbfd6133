package entities

// PrizeLadder holds the prize for every level of the game.
var PrizeLadder = []int64{
	1000, 2000, 3000, 5000, 10000, 20000, 40000, 80000, 160000, 320000,
	1250000, 2500000, 5000000, 10000000, 20000000, 30000000, 40000000,
	50000000, 60000000, 70000000, 80000000, 90000000, 95000000, 98000000, 100000000,
}

// SafeLevels are the amounts a player keeps after a wrong answer once reached.
var SafeLevels = []int64{10000, 320000, 10000000}

// LastSafeAmount returns the highest safe amount not exceeding winnings.
func LastSafeAmount(winnings int64) int64 {
	var last int64
	for _, safe := range SafeLevels {
		if winnings >= safe {
			last = safe
		}
	}
	return last
}

// IsSafeAmount reports whether amount is one of the safe levels.
func IsSafeAmount(amount int64) bool {
	for _, safe := range SafeLevels {
		if safe == amount {
			return true
		}
	}
	return false
}

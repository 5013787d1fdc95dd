package swaps

// BestRaw selects the quote with the highest raw output amount. Used for
// same-chain candidates, where gas profiles are comparable enough that raw
// output decides.
func BestRaw(quotes []Quote) (Quote, bool) {
	var best Quote
	found := false
	for _, q := range quotes {
		if q.ToAmount == nil {
			continue
		}
		if !found || q.ToAmount.Cmp(best.ToAmount) > 0 {
			best = q
			found = true
		}
	}
	return best, found
}

// BestNet selects the quote with the highest output net of gas. Used for
// cross-chain candidates and cross-class comparison, where fee structures
// differ too much for raw output to be meaningful.
func BestNet(quotes []Quote) (Quote, bool) {
	var best Quote
	found := false
	for _, q := range quotes {
		if q.ToAmount == nil {
			continue
		}
		if !found || q.NetAmount().Cmp(best.NetAmount()) > 0 {
			best = q
			found = true
		}
	}
	return best, found
}

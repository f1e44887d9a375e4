package core

// quote.go – a read-only preview of what a Swap would do, without touching
// token balances or the pool store. Adapted narrowly for a single
// three-asset pool; there is no cross-pool routing here, unlike the
// multi-hop path search a general-purpose router performs.

import "ternarypool/pkg/ammerr"

// Quote is the projected outcome of swapping amount of the bid asset for
// the ask asset against a pool's current reserves.
type Quote struct {
	NewBidReserve uint64
	NewAskReserve uint64
	Paid          uint64
	Earning       uint64
}

// QuoteSwap previews Processor.Swap's pricing step for a given pool without
// mutating anything. The earning cut is skipped when askCode is CodeS (the
// earning-exempt leg). Earning is reported on its own and is not added to
// NewAskReserve, and equal bid and ask codes are rejected with
// UnmatchedPool rather than treated as a no-op.
func (p *Pool) QuoteSwap(amount uint64, bidCode, askCode ReserveCode) (Quote, error) {
	if amount == 0 {
		return Quote{}, ammerr.New(ammerr.ZeroValue)
	}
	if bidCode == askCode {
		return Quote{}, ammerr.New(ammerr.UnmatchedPool)
	}
	if p.IsFrozen() {
		return Quote{}, ammerr.New(ammerr.FrozenPool)
	}

	bidReserve := p.reserveForCode(bidCode)
	askReserve := p.reserveForCode(askCode)

	newBid, err := addU64(bidReserve, amount)
	if err != nil {
		return Quote{}, err
	}
	newAsk, paid, earning, err := CurveWithFee(newBid, bidReserve, askReserve, askCode == CodeS)
	if err != nil {
		return Quote{}, err
	}
	return Quote{NewBidReserve: newBid, NewAskReserve: newAsk, Paid: paid, Earning: earning}, nil
}

func (p *Pool) reserveForCode(code ReserveCode) uint64 {
	switch code {
	case CodeS:
		return p.ReserveS
	case CodeA:
		return p.ReserveA
	case CodeB:
		return p.ReserveB
	default:
		return 0
	}
}

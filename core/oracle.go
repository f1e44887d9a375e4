package core

// oracle.go – constant-product pricing curve, fee split, and the rake
// algorithm that folds an arbitrary three-asset deposit into a single
// balanced LP mint.
//
// Every division here floors, and every division is on a *uint256.Int* so a
// transient product that would overflow a u128 (the rake sub-routine can
// produce one) is caught as Overflow instead of wrapping.

import (
	"ternarypool/pkg/ammerr"

	"github.com/holiman/uint256"
)

const (
	// Fee is the 0.25% swap fee, expressed as a numerator over Decimals.
	Fee uint64 = 2_500_000
	// Earning is the 0.05% administrative share of each non-exempt swap,
	// also expressed as a numerator over Decimals.
	Earning uint64 = 500_000
	// Decimals is the fee/earning fraction denominator.
	Decimals uint64 = 1_000_000_000
	// TriplePrecision scales quantities before the rake algorithm's cube
	// root, matching the 10^18 precision the algorithm needs to keep its
	// closed-form approximation accurate at u64 magnitudes.
	TriplePrecision uint64 = 1_000_000_000_000_000_000
)

func u256(v uint64) *uint256.Int { return uint256.NewInt(v) }

func mulOverflow(a, b *uint256.Int) (*uint256.Int, error) {
	r := new(uint256.Int)
	if _, overflow := r.MulOverflow(a, b); overflow {
		return nil, ammerr.New(ammerr.Overflow)
	}
	return r, nil
}

func addOverflow(a, b *uint256.Int) (*uint256.Int, error) {
	r := new(uint256.Int)
	if _, overflow := r.AddOverflow(a, b); overflow {
		return nil, ammerr.New(ammerr.Overflow)
	}
	return r, nil
}

func subOverflow(a, b *uint256.Int) (*uint256.Int, error) {
	if a.Cmp(b) < 0 {
		return nil, ammerr.New(ammerr.Overflow)
	}
	return new(uint256.Int).Sub(a, b), nil
}

func divExact(a, b *uint256.Int) (*uint256.Int, error) {
	if b.IsZero() {
		return nil, ammerr.New(ammerr.Overflow)
	}
	return new(uint256.Int).Div(a, b), nil
}

// fitsU64 reports whether v fits in a u64, the width every reserve and
// amount in the pool schema is stored at.
func fitsU64(v *uint256.Int) (uint64, error) {
	if !v.IsUint64() {
		return 0, ammerr.New(ammerr.Overflow)
	}
	return v.Uint64(), nil
}

// Curve enforces newBid*newAsk = bid*ask (floor), returning the new ask
// reserve implied by moving the bid reserve to newBid.
func Curve(newBid, bid, ask uint64) (uint64, error) {
	if newBid == 0 || bid == 0 || ask == 0 {
		return 0, ammerr.New(ammerr.Overflow)
	}
	product, err := mulOverflow(u256(bid), u256(ask))
	if err != nil {
		return 0, err
	}
	quotient, err := divExact(product, u256(newBid))
	if err != nil {
		return 0, err
	}
	newAsk, err := fitsU64(quotient)
	if err != nil {
		return 0, err
	}
	if newAsk == 0 {
		return 0, ammerr.New(ammerr.Overflow)
	}
	return newAsk, nil
}

// CurveWithFee layers the swap fee and the administrative earning on top
// of Curve. exempt suppresses the earning cut (used when the ask side is
// already S, the earning-denomination asset, or for the second internal
// conversion of an earning into S). The fee is taken either way.
func CurveWithFee(newBid, bid, ask uint64, exempt bool) (newAsk, paid, earning uint64, err error) {
	newAskRaw, err := Curve(newBid, bid, ask)
	if err != nil {
		return 0, 0, 0, err
	}
	gross, err := subOverflow(u256(ask), u256(newAskRaw))
	if err != nil {
		return 0, 0, 0, err
	}
	feeWide, err := mulOverflow(gross, u256(Fee))
	if err != nil {
		return 0, 0, 0, err
	}
	feeWide, err = divExact(feeWide, u256(Decimals))
	if err != nil {
		return 0, 0, 0, err
	}
	earningWide := u256(0)
	if !exempt {
		earningWide, err = mulOverflow(gross, u256(Earning))
		if err != nil {
			return 0, 0, 0, err
		}
		earningWide, err = divExact(earningWide, u256(Decimals))
		if err != nil {
			return 0, 0, 0, err
		}
	}
	paidWide, err := subOverflow(gross, feeWide)
	if err != nil {
		return 0, 0, 0, err
	}
	paidWide, err = subOverflow(paidWide, earningWide)
	if err != nil {
		return 0, 0, 0, err
	}
	newAskWide, err := addOverflow(u256(newAskRaw), feeWide)
	if err != nil {
		return 0, 0, 0, err
	}

	newAsk, err = fitsU64(newAskWide)
	if err != nil {
		return 0, 0, 0, err
	}
	paid, err = fitsU64(paidWide)
	if err != nil {
		return 0, 0, 0, err
	}
	earning, err = fitsU64(earningWide)
	if err != nil {
		return 0, 0, 0, err
	}
	return newAsk, paid, earning, nil
}

// rakeSplit is the per-pass output of _rake: the parts of a single-asset
// deposit that stay in X versus convert notionally into Y and Z.
type rakeSplit struct {
	x, y, z uint64
}

// rake1 computes, for a deposit of delta into asset X with reserves
// (rx, ry, rz), the split (x, y, z) described in spec.md §4.2.3. Zero
// reserves are a programming error (the pool invariant guarantees all
// three reserves are positive while live) and zero delta is a no-op.
func rake1(delta, rx, ry, rz uint64) (rakeSplit, error) {
	if rx == 0 || ry == 0 || rz == 0 {
		return rakeSplit{}, ammerr.New(ammerr.Overflow)
	}
	if delta == 0 {
		return rakeSplit{}, nil
	}
	precision := u256(TriplePrecision)

	deltaPlusRx, err := addOverflow(u256(delta), u256(rx))
	if err != nil {
		return rakeSplit{}, err
	}
	uArg, err := mulOverflow(deltaPlusRx, precision)
	if err != nil {
		return rakeSplit{}, err
	}
	u := cbrtInt(uArg)

	vArg, err := mulOverflow(u256(rx), precision)
	if err != nil {
		return rakeSplit{}, err
	}
	v := cbrtInt(vArg)

	uSquared, err := mulOverflow(u, u)
	if err != nil {
		return rakeSplit{}, err
	}
	zWide, err := mulOverflow(uSquared, v)
	if err != nil {
		return rakeSplit{}, err
	}
	zWide, err = divExact(zWide, precision)
	if err != nil {
		return rakeSplit{}, err
	}
	zWide, err = subOverflow(zWide, u256(rx))
	if err != nil {
		return rakeSplit{}, err
	}

	zPlusRx, err := addOverflow(zWide, u256(rx))
	if err != nil {
		return rakeSplit{}, err
	}
	sqrtArg, err := mulOverflow(zPlusRx, u256(rx))
	if err != nil {
		return rakeSplit{}, err
	}
	xWide, err := subOverflow(sqrtInt(sqrtArg), u256(rx))
	if err != nil {
		return rakeSplit{}, err
	}

	yWide, err := subOverflow(zWide, xWide)
	if err != nil {
		return rakeSplit{}, err
	}

	sWide, err := subOverflow(u256(delta), zWide)
	if err != nil {
		return rakeSplit{}, err
	}
	s, err := fitsU64(sWide)
	if err != nil {
		return rakeSplit{}, err
	}

	rxPlusX, err := addOverflow(u256(rx), xWide)
	if err != nil {
		return rakeSplit{}, err
	}
	aWide, err := mulOverflow(u256(ry), xWide)
	if err != nil {
		return rakeSplit{}, err
	}
	aWide, err = divExact(aWide, rxPlusX)
	if err != nil {
		return rakeSplit{}, err
	}
	a, err := fitsU64(aWide)
	if err != nil {
		return rakeSplit{}, err
	}

	rxPlusZ, err := addOverflow(u256(rx), zWide)
	if err != nil {
		return rakeSplit{}, err
	}
	bWide, err := mulOverflow(u256(rz), yWide)
	if err != nil {
		return rakeSplit{}, err
	}
	bWide, err = divExact(bWide, rxPlusZ)
	if err != nil {
		return rakeSplit{}, err
	}
	b, err := fitsU64(bWide)
	if err != nil {
		return rakeSplit{}, err
	}

	return rakeSplit{x: s, y: a, z: b}, nil
}

// RakeResult is the outcome of folding a three-asset deposit into the pool:
// the total LP minted and the post-deposit reserves.
type RakeResult struct {
	Lpt                  uint64
	ReserveS, ReserveA, ReserveB uint64
}

// Rake accepts an arbitrary (deltaS, deltaA, deltaB) deposit and returns
// the LP mint and resulting reserves, applying rake1 once per asset in the
// fixed order S, A, B so that each pass sees the LP supply grown by the
// previous pass's mint (spec.md §4.2.3).
func Rake(deltaS, deltaA, deltaB, reserveS, reserveA, reserveB, reserveLpt uint64) (RakeResult, error) {
	rs, ra, rb, rlpt := reserveS, reserveA, reserveB, reserveLpt

	split1, err := rake1(deltaS, rs, ra, rb)
	if err != nil {
		return RakeResult{}, err
	}
	rs, err = addU64(rs, deltaS)
	if err != nil {
		return RakeResult{}, err
	}
	rsPrime, err := subU64(rs, split1.x)
	if err != nil {
		return RakeResult{}, err
	}
	lpt1, err := mulDivU64(split1.x, rlpt, rsPrime)
	if err != nil {
		return RakeResult{}, err
	}
	rlpt, err = addU64(rlpt, lpt1)
	if err != nil {
		return RakeResult{}, err
	}

	split2, err := rake1(deltaA, ra, rb, rs)
	if err != nil {
		return RakeResult{}, err
	}
	ra, err = addU64(ra, deltaA)
	if err != nil {
		return RakeResult{}, err
	}
	// split2.z is the S-equivalent part carried by an A deposit.
	rsPrime, err = subU64(rs, split2.z)
	if err != nil {
		return RakeResult{}, err
	}
	lpt2, err := mulDivU64(split2.z, rlpt, rsPrime)
	if err != nil {
		return RakeResult{}, err
	}
	rlpt, err = addU64(rlpt, lpt2)
	if err != nil {
		return RakeResult{}, err
	}

	split3, err := rake1(deltaB, rb, rs, ra)
	if err != nil {
		return RakeResult{}, err
	}
	rb, err = addU64(rb, deltaB)
	if err != nil {
		return RakeResult{}, err
	}
	// split3.y is the S-equivalent part carried by a B deposit.
	rsPrime3, err := subU64(rs, split3.y)
	if err != nil {
		return RakeResult{}, err
	}
	lpt3, err := mulDivU64(split3.y, rlpt, rsPrime3)
	if err != nil {
		return RakeResult{}, err
	}

	lpt, err := addU64(lpt1, lpt2)
	if err != nil {
		return RakeResult{}, err
	}
	lpt, err = addU64(lpt, lpt3)
	if err != nil {
		return RakeResult{}, err
	}

	return RakeResult{Lpt: lpt, ReserveS: rs, ReserveA: ra, ReserveB: rb}, nil
}

func addU64(a, b uint64) (uint64, error) {
	r, err := addOverflow(u256(a), u256(b))
	if err != nil {
		return 0, err
	}
	return fitsU64(r)
}

func subU64(a, b uint64) (uint64, error) {
	r, err := subOverflow(u256(a), u256(b))
	if err != nil {
		return 0, err
	}
	return fitsU64(r)
}

func mulDivU64(a, b, denom uint64) (uint64, error) {
	product, err := mulOverflow(u256(a), u256(b))
	if err != nil {
		return 0, err
	}
	quotient, err := divExact(product, u256(denom))
	if err != nil {
		return 0, err
	}
	return fitsU64(quotient)
}

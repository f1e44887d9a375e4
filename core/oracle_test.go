package core

import (
	"errors"
	"testing"

	"ternarypool/pkg/ammerr"
)

func TestCurveConstantProduct(t *testing.T) {
	newAsk, err := Curve(1_100_000_000, 1_000_000_000, 1_000_000_000)
	if err != nil {
		t.Fatalf("Curve: %v", err)
	}
	// bid*ask = newBid*newAsk (floor)
	want := uint64(1_000_000_000) * 1_000_000_000 / 1_100_000_000
	if newAsk != want {
		t.Errorf("newAsk = %d, want %d", newAsk, want)
	}
}

func TestCurveZeroInputsRejected(t *testing.T) {
	if _, err := Curve(0, 1, 1); !errors.Is(err, ammerr.New(ammerr.Overflow)) {
		t.Errorf("expected Overflow on zero newBid, got %v", err)
	}
	if _, err := Curve(1, 0, 1); !errors.Is(err, ammerr.New(ammerr.Overflow)) {
		t.Errorf("expected Overflow on zero bid, got %v", err)
	}
	if _, err := Curve(1, 1, 0); !errors.Is(err, ammerr.New(ammerr.Overflow)) {
		t.Errorf("expected Overflow on zero ask, got %v", err)
	}
}

func TestCurveWithFeeSplitsGrossIntoFeeEarningAndPaid(t *testing.T) {
	newAsk, paid, earning, err := CurveWithFee(1_100_000_000, 1_000_000_000, 1_000_000_000, false)
	if err != nil {
		t.Fatalf("CurveWithFee: %v", err)
	}
	rawAsk, _ := Curve(1_100_000_000, 1_000_000_000, 1_000_000_000)
	gross := 1_000_000_000 - rawAsk
	fee := gross * Fee / Decimals
	earn := gross * Earning / Decimals
	wantPaid := gross - fee - earn
	wantNewAsk := rawAsk + fee

	if paid != wantPaid {
		t.Errorf("paid = %d, want %d", paid, wantPaid)
	}
	if earning != earn {
		t.Errorf("earning = %d, want %d", earning, earn)
	}
	if newAsk != wantNewAsk {
		t.Errorf("newAsk = %d, want %d", newAsk, wantNewAsk)
	}
	// the ask reserve CurveWithFee returns retains only the fee; earning is
	// returned separately, and paid + earning + fee add back up to gross
	if paid+earning+(newAsk-rawAsk) != gross {
		t.Errorf("paid+earning+fee = %d, want gross %d", paid+earning+(newAsk-rawAsk), gross)
	}
}

func TestCurveWithFeeExemptSuppressesEarning(t *testing.T) {
	_, _, earning, err := CurveWithFee(1_100_000_000, 1_000_000_000, 1_000_000_000, true)
	if err != nil {
		t.Fatalf("CurveWithFee: %v", err)
	}
	if earning != 0 {
		t.Errorf("exempt swap should carry zero earning, got %d", earning)
	}
}

func TestRakeBalancedDepositMatchesProRataShare(t *testing.T) {
	// A deposit exactly proportional to the existing reserves should mint
	// LP pro-rata and leave no notional cross-asset conversion residue
	// beyond integer-division dust.
	result, err := Rake(100_000, 100_000, 100_000, 1_000_000, 1_000_000, 1_000_000, 1_000_000)
	if err != nil {
		t.Fatalf("Rake: %v", err)
	}
	if result.ReserveS != 1_100_000 || result.ReserveA != 1_100_000 || result.ReserveB != 1_100_000 {
		t.Errorf("reserves = (%d,%d,%d), want (1100000,1100000,1100000)",
			result.ReserveS, result.ReserveA, result.ReserveB)
	}
	// Balanced deposit of 10% should mint close to 10% of supply.
	wantLpt := uint64(100_000)
	diff := int64(result.Lpt) - int64(wantLpt)
	if diff < -10 || diff > 10 {
		t.Errorf("Lpt = %d, want near %d", result.Lpt, wantLpt)
	}
}

func TestRakeReservesAlwaysEqualInputsPlusDeltas(t *testing.T) {
	// Regardless of how lopsided the deposit is, final reserves are exactly
	// the prior reserves plus the raw deltas — no S-equivalent carry from
	// the A/B passes leaks into the S reserve.
	result, err := Rake(0, 50_000, 25_000, 2_000_000, 1_500_000, 1_800_000, 1_000_000)
	if err != nil {
		t.Fatalf("Rake: %v", err)
	}
	if result.ReserveS != 2_000_000 {
		t.Errorf("ReserveS = %d, want unchanged 2000000", result.ReserveS)
	}
	if result.ReserveA != 1_550_000 {
		t.Errorf("ReserveA = %d, want 1550000", result.ReserveA)
	}
	if result.ReserveB != 1_825_000 {
		t.Errorf("ReserveB = %d, want 1825000", result.ReserveB)
	}
	if result.Lpt == 0 {
		t.Errorf("expected nonzero LP mint for a nonzero deposit")
	}
}

func TestRakeZeroDepositMintsNothing(t *testing.T) {
	result, err := Rake(0, 0, 0, 1_000_000, 1_000_000, 1_000_000, 1_000_000)
	if err != nil {
		t.Fatalf("Rake: %v", err)
	}
	if result.Lpt != 0 {
		t.Errorf("Lpt = %d, want 0 for an all-zero deposit", result.Lpt)
	}
}

func TestRakeSingleAssetDepositStillMints(t *testing.T) {
	result, err := Rake(500_000, 0, 0, 1_000_000, 1_000_000, 1_000_000, 1_000_000)
	if err != nil {
		t.Fatalf("Rake: %v", err)
	}
	if result.Lpt == 0 {
		t.Errorf("an S-only deposit should still mint LP via the rake split")
	}
	if result.ReserveS != 1_500_000 {
		t.Errorf("ReserveS = %d, want 1500000", result.ReserveS)
	}
}

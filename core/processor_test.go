package core

import (
	"testing"

	"ternarypool/pkg/ammerr"
)

type fixture struct {
	proc      *Processor
	token     *MockTokenAPI
	programID Address
	poolID    Address
	owner     Address
	payer     Address
	treasurer Address

	mintLpt, vault                Address
	mintS, mintA, mintB           Address
	treasuryS, treasuryA, treasuryB Address
	srcS, srcA, srcB               Address
	lptAcc                         Address
}

func newFixture(t *testing.T, reserveS, reserveA, reserveB uint64) *fixture {
	t.Helper()
	f := &fixture{
		programID: sampleAddress(10),
		poolID:    sampleAddress(11),
		owner:     sampleAddress(12),
		payer:     sampleAddress(13),
		mintLpt:   sampleAddress(20),
		vault:     sampleAddress(21),
		mintS:     sampleAddress(30),
		mintA:     sampleAddress(31),
		mintB:     sampleAddress(32),
		treasuryS: sampleAddress(40),
		treasuryA: sampleAddress(41),
		treasuryB: sampleAddress(42),
		srcS:      sampleAddress(50),
		srcA:      sampleAddress(51),
		srcB:      sampleAddress(52),
		lptAcc:    sampleAddress(60),
	}
	f.treasurer = DeriveAuthority(f.programID, f.poolID)

	f.token = NewMockTokenAPI()
	f.token.Seed(f.srcS, f.payer, f.mintS, reserveS*10+1)
	f.token.Seed(f.srcA, f.payer, f.mintA, reserveA*10+1)
	f.token.Seed(f.srcB, f.payer, f.mintB, reserveB*10+1)
	// lptAcc is not seeded: InitializePool creates it (and the LP mint)
	// itself, and rejects a mint_lpt that already exists.

	f.proc = NewProcessor(f.programID, f.token, nil)

	proof := XorAddress(f.programID, f.poolID, f.treasurer)
	err := f.proc.InitializePool(reserveS, reserveA, reserveB, InitializePoolAccounts{
		Payer:            AccountInfo{Address: f.payer, IsSigner: true},
		Owner:            f.owner,
		PoolID:           f.poolID,
		PoolSigner:       true,
		LptAcc:           f.lptAcc,
		MintLpt:          f.mintLpt,
		Vault:            f.vault,
		VaultSigner:      true,
		Proof:            proof,
		SrcS:             f.srcS,
		MintS:            f.mintS,
		TreasuryS:        f.treasuryS,
		SrcA:             f.srcA,
		MintA:            f.mintA,
		TreasuryA:        f.treasuryA,
		SrcB:             f.srcB,
		MintB:            f.mintB,
		TreasuryB:        f.treasuryB,
		Treasurer:        f.treasurer,
		PoolAccountOwner: f.programID,
	})
	if err != nil {
		t.Fatalf("InitializePool: %v", err)
	}
	return f
}

func TestInitializePoolCreatesReservesAndMintsLpt(t *testing.T) {
	f := newFixture(t, 1_000_000, 2_000_000, 3_000_000)
	pool, ok := f.proc.Pool(f.poolID)
	if !ok {
		t.Fatalf("pool not found after InitializePool")
	}
	if pool.ReserveS != 1_000_000 || pool.ReserveA != 2_000_000 || pool.ReserveB != 3_000_000 {
		t.Errorf("reserves = (%d,%d,%d)", pool.ReserveS, pool.ReserveA, pool.ReserveB)
	}
	if !pool.IsInitialized() || pool.IsFrozen() {
		t.Errorf("pool state = %s, want initialized and not frozen", pool.State)
	}
	supply, _ := f.token.Supply(f.mintLpt)
	if supply != 1_000_000 {
		t.Errorf("LP supply = %d, want 1000000 (minted 1:1 with reserveS)", supply)
	}
}

func TestInitializePoolRejectsSecondCall(t *testing.T) {
	f := newFixture(t, 1_000_000, 1_000_000, 1_000_000)
	proof := XorAddress(f.programID, f.poolID, f.treasurer)
	err := f.proc.InitializePool(1, 1, 1, InitializePoolAccounts{
		Payer:            AccountInfo{Address: f.payer, IsSigner: true},
		Owner:            f.owner,
		PoolID:           f.poolID,
		PoolSigner:       true,
		LptAcc:           f.lptAcc,
		MintLpt:          f.mintLpt,
		Vault:            f.vault,
		VaultSigner:      true,
		Proof:            proof,
		SrcS:             f.srcS,
		MintS:            f.mintS,
		TreasuryS:        f.treasuryS,
		SrcA:             f.srcA,
		MintA:            f.mintA,
		TreasuryA:        f.treasuryA,
		SrcB:             f.srcB,
		MintB:            f.mintB,
		TreasuryB:        f.treasuryB,
		Treasurer:        f.treasurer,
		PoolAccountOwner: f.programID,
	})
	if !isCode(err, ammerr.ConstructorOnce) {
		t.Errorf("expected ConstructorOnce on double init, got %v", err)
	}
}

func TestInitializePoolRejectsBadProof(t *testing.T) {
	programID := sampleAddress(10)
	poolID := sampleAddress(11)
	payer := sampleAddress(13)
	treasurer := DeriveAuthority(programID, poolID)
	token := NewMockTokenAPI()
	srcS, srcA, srcB := sampleAddress(50), sampleAddress(51), sampleAddress(52)
	token.Seed(srcS, payer, sampleAddress(30), 10)
	token.Seed(srcA, payer, sampleAddress(31), 10)
	token.Seed(srcB, payer, sampleAddress(32), 10)
	proc := NewProcessor(programID, token, nil)

	err := proc.InitializePool(1, 1, 1, InitializePoolAccounts{
		Payer:            AccountInfo{Address: payer, IsSigner: true},
		Owner:            sampleAddress(12),
		PoolID:           poolID,
		PoolSigner:       true,
		LptAcc:           sampleAddress(60),
		MintLpt:          sampleAddress(20),
		Vault:            sampleAddress(21),
		VaultSigner:      true,
		Proof:            sampleAddress(0), // wrong
		SrcS:             srcS,
		MintS:            sampleAddress(30),
		TreasuryS:        sampleAddress(40),
		SrcA:             srcA,
		MintA:            sampleAddress(31),
		TreasuryA:        sampleAddress(41),
		SrcB:             srcB,
		MintB:            sampleAddress(32),
		TreasuryB:        sampleAddress(42),
		Treasurer:        treasurer,
		PoolAccountOwner: programID,
	})
	if !isCode(err, ammerr.InvalidMint) {
		t.Errorf("expected InvalidMint for a bad proof, got %v", err)
	}
}

func TestAddLiquidityMintsLptAndUpdatesReserves(t *testing.T) {
	f := newFixture(t, 1_000_000, 1_000_000, 1_000_000)
	err := f.proc.AddLiquidity(100_000, 100_000, 100_000, AddLiquidityAccounts{
		Owner:            AccountInfo{Address: f.payer, IsSigner: true},
		PoolID:           f.poolID,
		PoolAccountOwner: f.programID,
		LptAcc:           f.lptAcc,
		MintLpt:          f.mintLpt,
		SrcS:             f.srcS,
		TreasuryS:        f.treasuryS,
		SrcA:             f.srcA,
		TreasuryA:        f.treasuryA,
		SrcB:             f.srcB,
		TreasuryB:        f.treasuryB,
		Treasurer:        f.treasurer,
	})
	if err != nil {
		t.Fatalf("AddLiquidity: %v", err)
	}
	pool, _ := f.proc.Pool(f.poolID)
	if pool.ReserveS != 1_100_000 || pool.ReserveA != 1_100_000 || pool.ReserveB != 1_100_000 {
		t.Errorf("reserves after AddLiquidity = (%d,%d,%d)", pool.ReserveS, pool.ReserveA, pool.ReserveB)
	}
	if f.token.Balance(f.lptAcc) == 0 {
		t.Errorf("expected nonzero LP balance after AddLiquidity")
	}
}

func TestAddLiquidityRejectsAllZeroDeltas(t *testing.T) {
	f := newFixture(t, 1_000_000, 1_000_000, 1_000_000)
	err := f.proc.AddLiquidity(0, 0, 0, AddLiquidityAccounts{
		Owner:            AccountInfo{Address: f.payer, IsSigner: true},
		PoolID:           f.poolID,
		PoolAccountOwner: f.programID,
		LptAcc:           f.lptAcc,
		MintLpt:          f.mintLpt,
		SrcS:             f.srcS,
		TreasuryS:        f.treasuryS,
		SrcA:             f.srcA,
		TreasuryA:        f.treasuryA,
		SrcB:             f.srcB,
		TreasuryB:        f.treasuryB,
		Treasurer:        f.treasurer,
	})
	if !isCode(err, ammerr.ZeroValue) {
		t.Errorf("expected ZeroValue, got %v", err)
	}
}

func TestSwapMovesReservesAndPaysOut(t *testing.T) {
	f := newFixture(t, 1_000_000, 1_000_000, 1_000_000)
	err := f.proc.Swap(10_000, 0, SwapAccounts{
		Payer:            AccountInfo{Address: f.payer, IsSigner: true},
		PoolID:           f.poolID,
		PoolAccountOwner: f.programID,
		Vault:            f.vault,
		Src:              f.srcA,
		TreasuryBid:      f.treasuryA,
		Dst:              f.srcB,
		TreasuryAsk:      f.treasuryB,
		TreasurySen:      f.treasuryS,
		Treasurer:        f.treasurer,
	})
	if err != nil {
		t.Fatalf("Swap: %v", err)
	}
	pool, _ := f.proc.Pool(f.poolID)
	if pool.ReserveA != 1_010_000 {
		t.Errorf("ReserveA after swap = %d, want 1010000", pool.ReserveA)
	}
	if pool.ReserveB >= 1_000_000 {
		t.Errorf("ReserveB after swap = %d, want less than 1000000", pool.ReserveB)
	}
}

func TestSwapRejectsBelowLimit(t *testing.T) {
	f := newFixture(t, 1_000_000, 1_000_000, 1_000_000)
	err := f.proc.Swap(10_000, 1_000_000_000, SwapAccounts{
		Payer:            AccountInfo{Address: f.payer, IsSigner: true},
		PoolID:           f.poolID,
		PoolAccountOwner: f.programID,
		Vault:            f.vault,
		Src:              f.srcA,
		TreasuryBid:      f.treasuryA,
		Dst:              f.srcB,
		TreasuryAsk:      f.treasuryB,
		TreasurySen:      f.treasuryS,
		Treasurer:        f.treasurer,
	})
	if !isCode(err, ammerr.ExceedLimit) {
		t.Errorf("expected ExceedLimit, got %v", err)
	}
}

func TestSwapRejectedWhenPoolFrozen(t *testing.T) {
	f := newFixture(t, 1_000_000, 1_000_000, 1_000_000)
	if err := f.proc.FreezePool(FreezeAccounts{
		Owner:            AccountInfo{Address: f.owner, IsSigner: true},
		PoolID:           f.poolID,
		PoolAccountOwner: f.programID,
	}); err != nil {
		t.Fatalf("FreezePool: %v", err)
	}
	err := f.proc.Swap(10_000, 0, SwapAccounts{
		Payer:            AccountInfo{Address: f.payer, IsSigner: true},
		PoolID:           f.poolID,
		PoolAccountOwner: f.programID,
		Vault:            f.vault,
		Src:              f.srcA,
		TreasuryBid:      f.treasuryA,
		Dst:              f.srcB,
		TreasuryAsk:      f.treasuryB,
		TreasurySen:      f.treasuryS,
		Treasurer:        f.treasurer,
	})
	if !isCode(err, ammerr.FrozenPool) {
		t.Errorf("expected FrozenPool, got %v", err)
	}
}

func TestThawPoolReenablesSwap(t *testing.T) {
	f := newFixture(t, 1_000_000, 1_000_000, 1_000_000)
	owner := AccountInfo{Address: f.owner, IsSigner: true}
	if err := f.proc.FreezePool(FreezeAccounts{Owner: owner, PoolID: f.poolID, PoolAccountOwner: f.programID}); err != nil {
		t.Fatalf("FreezePool: %v", err)
	}
	if err := f.proc.ThawPool(FreezeAccounts{Owner: owner, PoolID: f.poolID, PoolAccountOwner: f.programID}); err != nil {
		t.Fatalf("ThawPool: %v", err)
	}
	pool, _ := f.proc.Pool(f.poolID)
	if pool.IsFrozen() {
		t.Errorf("pool still frozen after ThawPool")
	}
}

func TestRemoveLiquidityBurnsAndReturnsFunds(t *testing.T) {
	f := newFixture(t, 1_000_000, 1_000_000, 1_000_000)
	dstS, dstA, dstB := sampleAddress(70), sampleAddress(71), sampleAddress(72)
	f.token.Seed(dstS, f.payer, f.mintS, 0)
	f.token.Seed(dstA, f.payer, f.mintA, 0)
	f.token.Seed(dstB, f.payer, f.mintB, 0)

	err := f.proc.RemoveLiquidity(500_000, RemoveLiquidityAccounts{
		Owner:            AccountInfo{Address: f.payer, IsSigner: true},
		PoolID:           f.poolID,
		PoolAccountOwner: f.programID,
		LptAcc:           f.lptAcc,
		MintLpt:          f.mintLpt,
		DstS:             dstS,
		TreasuryS:        f.treasuryS,
		DstA:             dstA,
		TreasuryA:        f.treasuryA,
		DstB:             dstB,
		TreasuryB:        f.treasuryB,
		Treasurer:        f.treasurer,
	})
	if err != nil {
		t.Fatalf("RemoveLiquidity: %v", err)
	}
	if f.token.Balance(dstS) != 500_000 {
		t.Errorf("dstS balance = %d, want 500000", f.token.Balance(dstS))
	}
	pool, _ := f.proc.Pool(f.poolID)
	if pool.ReserveS != 500_000 {
		t.Errorf("ReserveS after removal = %d, want 500000", pool.ReserveS)
	}
}

func TestRemoveLiquidityFullWithdrawalFreezesPool(t *testing.T) {
	f := newFixture(t, 1_000_000, 1_000_000, 1_000_000)
	dstS, dstA, dstB := sampleAddress(70), sampleAddress(71), sampleAddress(72)
	f.token.Seed(dstS, f.payer, f.mintS, 0)
	f.token.Seed(dstA, f.payer, f.mintA, 0)
	f.token.Seed(dstB, f.payer, f.mintB, 0)

	supply, _ := f.token.Supply(f.mintLpt)
	err := f.proc.RemoveLiquidity(supply, RemoveLiquidityAccounts{
		Owner:            AccountInfo{Address: f.payer, IsSigner: true},
		PoolID:           f.poolID,
		PoolAccountOwner: f.programID,
		LptAcc:           f.lptAcc,
		MintLpt:          f.mintLpt,
		DstS:             dstS,
		TreasuryS:        f.treasuryS,
		DstA:             dstA,
		TreasuryA:        f.treasuryA,
		DstB:             dstB,
		TreasuryB:        f.treasuryB,
		Treasurer:        f.treasurer,
	})
	if err != nil {
		t.Fatalf("RemoveLiquidity: %v", err)
	}
	pool, _ := f.proc.Pool(f.poolID)
	if !pool.IsFrozen() {
		t.Errorf("expected pool auto-frozen after draining ReserveS to zero")
	}
}

func TestEarnTransfersFromVault(t *testing.T) {
	f := newFixture(t, 1_000_000, 1_000_000, 1_000_000)
	f.token.Seed(f.vault, f.treasurer, f.mintS, 50_000)
	dst := sampleAddress(80)
	f.token.Seed(dst, f.owner, f.mintS, 0)

	err := f.proc.Earn(10_000, EarnAccounts{
		Owner:            AccountInfo{Address: f.owner, IsSigner: true},
		PoolID:           f.poolID,
		PoolAccountOwner: f.programID,
		Vault:            f.vault,
		Dst:              dst,
		Treasurer:        f.treasurer,
	})
	if err != nil {
		t.Fatalf("Earn: %v", err)
	}
	if f.token.Balance(dst) != 10_000 {
		t.Errorf("dst balance = %d, want 10000", f.token.Balance(dst))
	}
}

func TestEarnRejectsNonOwner(t *testing.T) {
	f := newFixture(t, 1_000_000, 1_000_000, 1_000_000)
	f.token.Seed(f.vault, f.treasurer, f.mintS, 50_000)
	dst := sampleAddress(80)
	f.token.Seed(dst, f.payer, f.mintS, 0)

	err := f.proc.Earn(10_000, EarnAccounts{
		Owner:            AccountInfo{Address: f.payer, IsSigner: true},
		PoolID:           f.poolID,
		PoolAccountOwner: f.programID,
		Vault:            f.vault,
		Dst:              dst,
		Treasurer:        f.treasurer,
	})
	if !isCode(err, ammerr.InvalidOwner) {
		t.Errorf("expected InvalidOwner for a non-owner Earn call, got %v", err)
	}
}

func TestTransferPoolOwnership(t *testing.T) {
	f := newFixture(t, 1_000_000, 1_000_000, 1_000_000)
	newOwner := sampleAddress(90)
	err := f.proc.TransferPoolOwnership(TransferOwnershipAccounts{
		Owner:            AccountInfo{Address: f.owner, IsSigner: true},
		PoolID:           f.poolID,
		PoolAccountOwner: f.programID,
		NewOwner:         newOwner,
	})
	if err != nil {
		t.Fatalf("TransferPoolOwnership: %v", err)
	}
	pool, _ := f.proc.Pool(f.poolID)
	if pool.Owner != newOwner {
		t.Errorf("Owner after transfer = %x, want %x", pool.Owner, newOwner)
	}
}

func TestTransferPoolOwnershipRejectsNonSigner(t *testing.T) {
	f := newFixture(t, 1_000_000, 1_000_000, 1_000_000)
	err := f.proc.TransferPoolOwnership(TransferOwnershipAccounts{
		Owner:            AccountInfo{Address: f.owner, IsSigner: false},
		PoolID:           f.poolID,
		PoolAccountOwner: f.programID,
		NewOwner:         sampleAddress(90),
	})
	if !isCode(err, ammerr.InvalidOwner) {
		t.Errorf("expected InvalidOwner for a non-signer call, got %v", err)
	}
}

func TestWrongProgramOwnerRejectedUniformly(t *testing.T) {
	f := newFixture(t, 1_000_000, 1_000_000, 1_000_000)
	err := f.proc.FreezePool(FreezeAccounts{
		Owner:            AccountInfo{Address: f.owner, IsSigner: true},
		PoolID:           f.poolID,
		PoolAccountOwner: sampleAddress(250), // not the program
	})
	if !isCode(err, ammerr.IncorrectProgramId) {
		t.Errorf("expected IncorrectProgramId, got %v", err)
	}
}

func isCode(err error, code ammerr.Code) bool {
	e, ok := err.(*ammerr.Error)
	return ok && e.Code == code
}

//---------------------------------------------------------------------
// Reference scenarios with literal inputs
//---------------------------------------------------------------------

// TestScenario1InitThenSwap pins the worked example: initialize with
// (1e9, 2e9, 4e9) and swap 100_000_000 A for B. Every intermediate value
// below is the literal figure from the reference scenario, not a
// recomputed one.
func TestScenario1InitThenSwap(t *testing.T) {
	f := newFixture(t, 1_000_000_000, 2_000_000_000, 4_000_000_000)

	newAsk, paid, earning, err := CurveWithFee(2_100_000_000, 2_000_000_000, 4_000_000_000, false)
	if err != nil {
		t.Fatalf("CurveWithFee: %v", err)
	}
	if newAsk != 3_809_999_999 {
		t.Errorf("newAsk = %d, want 3809999999", newAsk)
	}
	if paid != 189_904_763 {
		t.Errorf("paid = %d, want 189904763", paid)
	}
	if earning != 95_238 {
		t.Errorf("earning = %d, want 95238", earning)
	}

	dstBefore := f.token.Balance(f.srcB)
	err = f.proc.Swap(100_000_000, 0, SwapAccounts{
		Payer:            AccountInfo{Address: f.payer, IsSigner: true},
		PoolID:           f.poolID,
		PoolAccountOwner: f.programID,
		Vault:            f.vault,
		Src:              f.srcA,
		TreasuryBid:      f.treasuryA,
		Dst:              f.srcB,
		TreasuryAsk:      f.treasuryB,
		TreasurySen:      f.treasuryS,
		Treasurer:        f.treasurer,
	})
	if err != nil {
		t.Fatalf("Swap: %v", err)
	}
	if got := f.token.Balance(f.srcB) - dstBefore; got != 189_904_763 {
		t.Errorf("payer received %d, want 189904763", got)
	}

	pool, _ := f.proc.Pool(f.poolID)
	if pool.ReserveA != 2_100_000_000 {
		t.Errorf("ReserveA = %d, want 2100000000", pool.ReserveA)
	}
	if pool.ReserveB != 3_810_095_237 {
		t.Errorf("ReserveB = %d, want 3810095237 (newAsk 3809999999 + earning 95238)", pool.ReserveB)
	}
}

// TestScenario2ExemptSwapHasNoEarning pins the exempt-swap case: a swap
// into S earns nothing, the fee stays in the S reserve instead of
// routing to the vault.
func TestScenario2ExemptSwapHasNoEarning(t *testing.T) {
	_, _, earning, err := CurveWithFee(2_100_000_000, 2_000_000_000, 1_000_000_000, true)
	if err != nil {
		t.Fatalf("CurveWithFee: %v", err)
	}
	if earning != 0 {
		t.Errorf("earning = %d, want 0 for an exempt swap", earning)
	}

	f := newFixture(t, 1_000_000_000, 2_000_000_000, 4_000_000_000)
	err = f.proc.Swap(100_000_000, 0, SwapAccounts{
		Payer:            AccountInfo{Address: f.payer, IsSigner: true},
		PoolID:           f.poolID,
		PoolAccountOwner: f.programID,
		Vault:            f.vault,
		Src:              f.srcA,
		TreasuryBid:      f.treasuryA,
		Dst:              f.srcS,
		TreasuryAsk:      f.treasuryS,
		TreasurySen:      f.treasuryS,
		Treasurer:        f.treasurer,
	})
	if err != nil {
		t.Fatalf("Swap: %v", err)
	}
	if f.token.Balance(f.vault) != 0 {
		t.Errorf("vault balance = %d, want 0: an exempt swap must not route anything to the vault", f.token.Balance(f.vault))
	}
}

// TestScenario3BalancedAddThenRemoveRoundTrips pins the balanced-deposit
// round trip: depositing in the pool's exact reserve ratio mints lpt
// within a small cbrt/sqrt rounding tolerance of the pro-rata share, and immediately
// removing that same lpt returns at most the deposited amount of each
// asset, with rounding loss bounded by 3.
func TestScenario3BalancedAddThenRemoveRoundTrips(t *testing.T) {
	f := newFixture(t, 1_000_000_000, 2_000_000_000, 4_000_000_000)
	supply, _ := f.token.Supply(f.mintLpt)
	if supply != 1_000_000_000 {
		t.Fatalf("LP supply after init = %d, want 1000000000", supply)
	}
	lptBefore := f.token.Balance(f.lptAcc)

	err := f.proc.AddLiquidity(100_000_000, 200_000_000, 400_000_000, AddLiquidityAccounts{
		Owner:            AccountInfo{Address: f.payer, IsSigner: true},
		PoolID:           f.poolID,
		PoolAccountOwner: f.programID,
		LptAcc:           f.lptAcc,
		MintLpt:          f.mintLpt,
		SrcS:             f.srcS,
		TreasuryS:        f.treasuryS,
		SrcA:             f.srcA,
		TreasuryA:        f.treasuryA,
		SrcB:             f.srcB,
		TreasuryB:        f.treasuryB,
		Treasurer:        f.treasurer,
	})
	if err != nil {
		t.Fatalf("AddLiquidity: %v", err)
	}
	minted := f.token.Balance(f.lptAcc) - lptBefore
	const wantLpt = 100_000_000
	const lptTolerance = 100 // rake1's cbrt/sqrt approximation, not exact integer arithmetic
	var lptDiff uint64
	if minted > wantLpt {
		lptDiff = minted - wantLpt
	} else {
		lptDiff = wantLpt - minted
	}
	if lptDiff > lptTolerance {
		t.Errorf("lpt minted = %d, want ~100000000 (within %d) for a perfectly balanced deposit", minted, lptTolerance)
	}

	pool, _ := f.proc.Pool(f.poolID)
	if pool.ReserveS != 1_100_000_000 || pool.ReserveA != 2_200_000_000 || pool.ReserveB != 4_400_000_000 {
		t.Errorf("reserves after balanced add = (%d,%d,%d), want (1100000000,2200000000,4400000000)",
			pool.ReserveS, pool.ReserveA, pool.ReserveB)
	}

	dstS, dstA, dstB := sampleAddress(170), sampleAddress(171), sampleAddress(172)
	f.token.Seed(dstS, f.payer, f.mintS, 0)
	f.token.Seed(dstA, f.payer, f.mintA, 0)
	f.token.Seed(dstB, f.payer, f.mintB, 0)

	err = f.proc.RemoveLiquidity(minted, RemoveLiquidityAccounts{
		Owner:            AccountInfo{Address: f.payer, IsSigner: true},
		PoolID:           f.poolID,
		PoolAccountOwner: f.programID,
		LptAcc:           f.lptAcc,
		MintLpt:          f.mintLpt,
		DstS:             dstS,
		TreasuryS:        f.treasuryS,
		DstA:             dstA,
		TreasuryA:        f.treasuryA,
		DstB:             dstB,
		TreasuryB:        f.treasuryB,
		Treasurer:        f.treasurer,
	})
	if err != nil {
		t.Fatalf("RemoveLiquidity: %v", err)
	}

	checkRoundTrip := func(label string, deposited, returned uint64) {
		t.Helper()
		if returned > deposited {
			t.Errorf("%s returned %d, more than the %d deposited", label, returned, deposited)
		}
		if deposited-returned > 3 {
			t.Errorf("%s rounding loss = %d, want <= 3", label, deposited-returned)
		}
	}
	checkRoundTrip("S", 100_000_000, f.token.Balance(dstS))
	checkRoundTrip("A", 200_000_000, f.token.Balance(dstA))
	checkRoundTrip("B", 400_000_000, f.token.Balance(dstB))
}

// TestScenario4FrozenGuards pins the documented frozen-pool policy:
// Swap is rejected, but AddLiquidity and Earn by the owner still
// succeed.
func TestScenario4FrozenGuards(t *testing.T) {
	f := newFixture(t, 1_000_000_000, 1_000_000_000, 1_000_000_000)
	f.token.Seed(f.vault, f.treasurer, f.mintS, 50_000)

	if err := f.proc.FreezePool(FreezeAccounts{
		Owner:            AccountInfo{Address: f.owner, IsSigner: true},
		PoolID:           f.poolID,
		PoolAccountOwner: f.programID,
	}); err != nil {
		t.Fatalf("FreezePool: %v", err)
	}

	err := f.proc.Swap(10_000, 0, SwapAccounts{
		Payer:            AccountInfo{Address: f.payer, IsSigner: true},
		PoolID:           f.poolID,
		PoolAccountOwner: f.programID,
		Vault:            f.vault,
		Src:              f.srcA,
		TreasuryBid:      f.treasuryA,
		Dst:              f.srcB,
		TreasuryAsk:      f.treasuryB,
		TreasurySen:      f.treasuryS,
		Treasurer:        f.treasurer,
	})
	if !isCode(err, ammerr.FrozenPool) {
		t.Errorf("Swap on a frozen pool: expected FrozenPool, got %v", err)
	}

	if err := f.proc.AddLiquidity(10_000, 10_000, 10_000, AddLiquidityAccounts{
		Owner:            AccountInfo{Address: f.payer, IsSigner: true},
		PoolID:           f.poolID,
		PoolAccountOwner: f.programID,
		LptAcc:           f.lptAcc,
		MintLpt:          f.mintLpt,
		SrcS:             f.srcS,
		TreasuryS:        f.treasuryS,
		SrcA:             f.srcA,
		TreasuryA:        f.treasuryA,
		SrcB:             f.srcB,
		TreasuryB:        f.treasuryB,
		Treasurer:        f.treasurer,
	}); err != nil {
		t.Errorf("AddLiquidity on a frozen pool: expected success (documented policy), got %v", err)
	}

	dst := sampleAddress(180)
	f.token.Seed(dst, f.owner, f.mintS, 0)
	if err := f.proc.Earn(10_000, EarnAccounts{
		Owner:            AccountInfo{Address: f.owner, IsSigner: true},
		PoolID:           f.poolID,
		PoolAccountOwner: f.programID,
		Vault:            f.vault,
		Dst:              dst,
		Treasurer:        f.treasurer,
	}); err != nil {
		t.Errorf("Earn on a frozen pool: expected success, got %v", err)
	}
}

// TestScenario5ExceedLimitLeavesPoolUntouched pins the reference
// scenario's limit check: the scenario 1 swap with limit = 200_000_000
// must be rejected (since paid = 189_904_763 < limit) without mutating
// pool state.
func TestScenario5ExceedLimitLeavesPoolUntouched(t *testing.T) {
	f := newFixture(t, 1_000_000_000, 2_000_000_000, 4_000_000_000)
	before, _ := f.proc.Pool(f.poolID)

	err := f.proc.Swap(100_000_000, 200_000_000, SwapAccounts{
		Payer:            AccountInfo{Address: f.payer, IsSigner: true},
		PoolID:           f.poolID,
		PoolAccountOwner: f.programID,
		Vault:            f.vault,
		Src:              f.srcA,
		TreasuryBid:      f.treasuryA,
		Dst:              f.srcB,
		TreasuryAsk:      f.treasuryB,
		TreasurySen:      f.treasuryS,
		Treasurer:        f.treasurer,
	})
	if !isCode(err, ammerr.ExceedLimit) {
		t.Fatalf("expected ExceedLimit, got %v", err)
	}

	after, _ := f.proc.Pool(f.poolID)
	if *after != *before {
		t.Errorf("pool state changed despite ExceedLimit: before=%+v after=%+v", *before, *after)
	}
}

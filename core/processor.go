package core

// processor.go – the instruction processor: authorization, dispatch, and
// the eight state transitions a pool supports. Mutations are committed to
// the in-process pool store only after every token-module call in the
// instruction has succeeded; a caller driving this against a real
// transactional host gets the same all-or-nothing behavior.

import (
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"ternarypool/pkg/ammerr"
	"ternarypool/pkg/metrics"
)

// AccountInfo is a positional account handle: an identity plus the flags
// the generic pre-checks need. It stands in for the host's account
// metadata (signer bit, owning program) without requiring an actual
// network account.
type AccountInfo struct {
	Address  Address
	IsSigner bool
	// Owner is the program this account's data is claimed to belong to.
	// The zero Address means "not yet owned by any program" (true for
	// freshly-created accounts at InitializePool time).
	Owner Address
}

// Processor dispatches decoded instructions against an in-process pool
// store and an abstract TokenAPI. One Processor instance corresponds to
// one deployed program identity.
type Processor struct {
	ProgramID Address
	Token     TokenAPI
	Log       *log.Logger

	mu    sync.RWMutex
	pools map[Address]*Pool
}

// NewProcessor builds a Processor for programID, backed by token. If
// logger is nil, a logger with the package default settings is used.
func NewProcessor(programID Address, token TokenAPI, logger *log.Logger) *Processor {
	if logger == nil {
		logger = log.StandardLogger()
	}
	return &Processor{
		ProgramID: programID,
		Token:     token,
		Log:       logger,
		pools:     make(map[Address]*Pool),
	}
}

// Pool returns the current packed-equivalent record for poolID, for
// inspection by callers and tests.
func (p *Processor) Pool(poolID Address) (*Pool, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	pool, ok := p.pools[poolID]
	if !ok {
		return nil, false
	}
	cp := *pool
	return &cp, true
}

// Snapshot returns a point-in-time copy of every pool the processor
// knows about, keyed by pool id, for harnesses that persist state
// across process runs.
func (p *Processor) Snapshot() map[Address]*Pool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make(map[Address]*Pool, len(p.pools))
	for id, pool := range p.pools {
		cp := *pool
		out[id] = &cp
	}
	return out
}

// Restore replaces the processor's pool store with a previously captured
// Snapshot.
func (p *Processor) Restore(pools map[Address]*Pool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.pools = make(map[Address]*Pool, len(pools))
	for id, pool := range pools {
		cp := *pool
		p.pools[id] = &cp
	}
}

func (p *Processor) getPool(poolID Address) (*Pool, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	pool, ok := p.pools[poolID]
	return pool, ok
}

func (p *Processor) putPool(poolID Address, pool *Pool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.pools[poolID] = pool
}

//---------------------------------------------------------------------
// Generic checks (spec.md §4.6)
//---------------------------------------------------------------------

func requireProgramOwned(programID, claimedOwner Address) error {
	if claimedOwner != programID {
		return ammerr.New(ammerr.IncorrectProgramId)
	}
	return nil
}

func requireSigners(accounts ...AccountInfo) error {
	for _, a := range accounts {
		if !a.IsSigner {
			return ammerr.New(ammerr.InvalidOwner)
		}
	}
	return nil
}

// requireAuthority checks that a caller-supplied treasurer address really
// was derived from (programID, poolID); a mismatch surfaces as InvalidOwner
// (the wrong-authority case in the error taxonomy).
func requireAuthority(programID, poolID, treasurer Address) error {
	if DeriveAuthority(programID, poolID) != treasurer {
		return ammerr.New(ammerr.InvalidOwner)
	}
	return nil
}

func (p *Processor) logResult(instruction string, poolID Address, err error) {
	result := "ok"
	fields := log.Fields{"instruction": instruction, "pool": poolID.String()}
	if err != nil {
		result = errCode(err).String()
		fields["error"] = err.Error()
		p.Log.WithFields(fields).Warn("instruction rejected")
	} else {
		p.Log.WithFields(fields).Info("instruction applied")
	}
	metrics.ObserveInstruction(instruction, result)
}

func errCode(err error) ammerr.Code {
	if e, ok := err.(*ammerr.Error); ok {
		return e.Code
	}
	return ammerr.Overflow
}

//---------------------------------------------------------------------
// InitializePool
//---------------------------------------------------------------------

// InitializePoolAccounts is the account order the instruction expects: the
// payer, the pool and vault accounts (with their signer bits), the pool's
// intended owner, the derived-authority proof, and the three (source,
// mint, treasury) triples for S, A, B.
type InitializePoolAccounts struct {
	Payer      AccountInfo
	Owner      Address
	PoolID     Address
	PoolSigner bool

	LptAcc, MintLpt Address
	Vault           Address
	VaultSigner     bool
	Proof           Address

	SrcS, MintS, TreasuryS Address
	SrcA, MintA, TreasuryA Address
	SrcB, MintB, TreasuryB Address

	Treasurer        Address
	PoolAccountOwner Address // claimed owner of the (not-yet-initialized) pool record
}

func (p *Processor) InitializePool(reserveS, reserveA, reserveB uint64, acc InitializePoolAccounts) (err error) {
	defer func() { p.logResult("InitializePool", acc.PoolID, err) }()

	if err = requireProgramOwned(p.ProgramID, acc.PoolAccountOwner); err != nil {
		return err
	}
	if !acc.Payer.IsSigner || !acc.PoolSigner || !acc.VaultSigner {
		return ammerr.New(ammerr.InvalidOwner)
	}

	if existing, ok := p.getPool(acc.PoolID); ok && existing.IsInitialized() {
		return ammerr.New(ammerr.ConstructorOnce)
	}
	if _, err := p.Token.Supply(acc.MintLpt); err == nil {
		return ammerr.New(ammerr.ConstructorOnce)
	}

	expectedProof := XorAddress(p.ProgramID, acc.PoolID, acc.Treasurer)
	if acc.Proof != expectedProof || acc.MintS == acc.MintA || acc.MintS == acc.MintB || acc.MintA == acc.MintB {
		return ammerr.New(ammerr.InvalidMint)
	}
	if err := requireAuthority(p.ProgramID, acc.PoolID, acc.Treasurer); err != nil {
		return err
	}
	if reserveS == 0 || reserveA == 0 || reserveB == 0 {
		return ammerr.New(ammerr.ZeroValue)
	}

	treasurer := acc.Treasurer
	if err := p.Token.InitAccount(acc.TreasuryS, treasurer, acc.MintS); err != nil {
		return err
	}
	if err := p.Token.Transfer(reserveS, acc.SrcS, acc.TreasuryS, acc.Payer.Address); err != nil {
		return err
	}
	if err := p.Token.InitAccount(acc.TreasuryA, treasurer, acc.MintA); err != nil {
		return err
	}
	if err := p.Token.Transfer(reserveA, acc.SrcA, acc.TreasuryA, acc.Payer.Address); err != nil {
		return err
	}
	if err := p.Token.InitAccount(acc.TreasuryB, treasurer, acc.MintB); err != nil {
		return err
	}
	if err := p.Token.Transfer(reserveB, acc.SrcB, acc.TreasuryB, acc.Payer.Address); err != nil {
		return err
	}

	decimalsS, err := p.Token.Decimals(acc.MintS)
	if err != nil {
		return err
	}
	if err := p.Token.InitMint(decimalsS, acc.MintLpt, treasurer); err != nil {
		return err
	}
	if err := p.Token.InitAccount(acc.LptAcc, acc.Payer.Address, acc.MintLpt); err != nil {
		return err
	}
	if err := p.Token.MintTo(reserveS, acc.MintLpt, acc.LptAcc, treasurer); err != nil {
		return err
	}
	if err := p.Token.InitAccount(acc.Vault, treasurer, acc.MintS); err != nil {
		return err
	}

	pool := &Pool{
		Owner:     acc.Owner,
		State:     Initialized,
		MintLpt:   acc.MintLpt,
		Vault:     acc.Vault,
		MintS:     acc.MintS,
		TreasuryS: acc.TreasuryS,
		ReserveS:  reserveS,
		MintA:     acc.MintA,
		TreasuryA: acc.TreasuryA,
		ReserveA:  reserveA,
		MintB:     acc.MintB,
		TreasuryB: acc.TreasuryB,
		ReserveB:  reserveB,
	}
	p.putPool(acc.PoolID, pool)
	return nil
}

//---------------------------------------------------------------------
// AddLiquidity
//---------------------------------------------------------------------

type AddLiquidityAccounts struct {
	Owner          AccountInfo
	PoolID         Address
	PoolAccountOwner Address
	LptAcc, MintLpt Address
	SrcS, TreasuryS Address
	SrcA, TreasuryA Address
	SrcB, TreasuryB Address
	Treasurer      Address
}

func (p *Processor) AddLiquidity(deltaS, deltaA, deltaB uint64, acc AddLiquidityAccounts) (err error) {
	defer func() { p.logResult("AddLiquidity", acc.PoolID, err) }()

	if err = requireProgramOwned(p.ProgramID, acc.PoolAccountOwner); err != nil {
		return err
	}
	if err = requireSigners(acc.Owner); err != nil {
		return err
	}

	pool, ok := p.getPool(acc.PoolID)
	if !ok {
		return ammerr.New(ammerr.UnmatchedPool)
	}
	poolCopy := *pool
	if poolCopy.MintLpt != acc.MintLpt || poolCopy.TreasuryS != acc.TreasuryS ||
		poolCopy.TreasuryA != acc.TreasuryA || poolCopy.TreasuryB != acc.TreasuryB {
		return ammerr.New(ammerr.InvalidOwner)
	}
	if deltaS == 0 && deltaA == 0 && deltaB == 0 {
		return ammerr.New(ammerr.ZeroValue)
	}
	if err := requireAuthority(p.ProgramID, acc.PoolID, acc.Treasurer); err != nil {
		return err
	}

	supply, err := p.Token.Supply(acc.MintLpt)
	if err != nil {
		return err
	}
	result, err := Rake(deltaS, deltaA, deltaB, poolCopy.ReserveS, poolCopy.ReserveA, poolCopy.ReserveB, supply)
	if err != nil {
		return err
	}

	if deltaS > 0 {
		if err := p.Token.Transfer(deltaS, acc.SrcS, acc.TreasuryS, acc.Owner.Address); err != nil {
			return err
		}
		poolCopy.ReserveS = result.ReserveS
	}
	if deltaA > 0 {
		if err := p.Token.Transfer(deltaA, acc.SrcA, acc.TreasuryA, acc.Owner.Address); err != nil {
			return err
		}
		poolCopy.ReserveA = result.ReserveA
	}
	if deltaB > 0 {
		if err := p.Token.Transfer(deltaB, acc.SrcB, acc.TreasuryB, acc.Owner.Address); err != nil {
			return err
		}
		poolCopy.ReserveB = result.ReserveB
	}

	if err := p.Token.MintTo(result.Lpt, acc.MintLpt, acc.LptAcc, acc.Treasurer); err != nil {
		return err
	}
	p.putPool(acc.PoolID, &poolCopy)
	return nil
}

//---------------------------------------------------------------------
// RemoveLiquidity
//---------------------------------------------------------------------

type RemoveLiquidityAccounts struct {
	Owner          AccountInfo
	PoolID         Address
	PoolAccountOwner Address
	LptAcc, MintLpt Address
	DstS, TreasuryS Address
	DstA, TreasuryA Address
	DstB, TreasuryB Address
	Treasurer      Address
}

func (p *Processor) RemoveLiquidity(lpt uint64, acc RemoveLiquidityAccounts) (err error) {
	defer func() { p.logResult("RemoveLiquidity", acc.PoolID, err) }()

	if err = requireProgramOwned(p.ProgramID, acc.PoolAccountOwner); err != nil {
		return err
	}
	if err = requireSigners(acc.Owner); err != nil {
		return err
	}
	if err := requireAuthority(p.ProgramID, acc.PoolID, acc.Treasurer); err != nil {
		return err
	}

	pool, ok := p.getPool(acc.PoolID)
	if !ok {
		return ammerr.New(ammerr.UnmatchedPool)
	}
	poolCopy := *pool
	if poolCopy.MintLpt != acc.MintLpt || poolCopy.TreasuryS != acc.TreasuryS ||
		poolCopy.TreasuryA != acc.TreasuryA || poolCopy.TreasuryB != acc.TreasuryB {
		return ammerr.New(ammerr.UnmatchedPool)
	}
	if poolCopy.IsFrozen() {
		return ammerr.New(ammerr.FrozenPool)
	}
	if lpt == 0 {
		return ammerr.New(ammerr.ZeroValue)
	}

	supply, err := p.Token.Supply(acc.MintLpt)
	if err != nil {
		return err
	}
	deltaS, err := mulDivU64(lpt, poolCopy.ReserveS, supply)
	if err != nil {
		return err
	}
	deltaA, err := mulDivU64(lpt, poolCopy.ReserveA, supply)
	if err != nil {
		return err
	}
	deltaB, err := mulDivU64(lpt, poolCopy.ReserveB, supply)
	if err != nil {
		return err
	}

	if err := p.Token.Burn(lpt, acc.LptAcc, acc.MintLpt, acc.Owner.Address); err != nil {
		return err
	}

	poolCopy.ReserveS, err = subU64(poolCopy.ReserveS, deltaS)
	if err != nil {
		return err
	}
	poolCopy.ReserveA, err = subU64(poolCopy.ReserveA, deltaA)
	if err != nil {
		return err
	}
	poolCopy.ReserveB, err = subU64(poolCopy.ReserveB, deltaB)
	if err != nil {
		return err
	}
	if poolCopy.ReserveS == 0 {
		poolCopy.State = Frozen
	}

	if err := p.Token.Transfer(deltaS, acc.TreasuryS, acc.DstS, acc.Treasurer); err != nil {
		return err
	}
	if err := p.Token.Transfer(deltaA, acc.TreasuryA, acc.DstA, acc.Treasurer); err != nil {
		return err
	}
	if err := p.Token.Transfer(deltaB, acc.TreasuryB, acc.DstB, acc.Treasurer); err != nil {
		return err
	}
	p.putPool(acc.PoolID, &poolCopy)
	return nil
}

//---------------------------------------------------------------------
// Swap
//---------------------------------------------------------------------

type SwapAccounts struct {
	Payer            AccountInfo
	PoolID           Address
	PoolAccountOwner Address
	Vault            Address
	Src              Address
	TreasuryBid      Address
	Dst              Address
	TreasuryAsk      Address
	TreasurySen      Address
	Treasurer        Address
}

func (p *Processor) Swap(amount, limit uint64, acc SwapAccounts) (err error) {
	start := time.Now()
	defer func() {
		p.logResult("Swap", acc.PoolID, err)
		metrics.ObserveSwapLatency(acc.PoolID.String(), time.Since(start).Seconds())
	}()

	if err = requireProgramOwned(p.ProgramID, acc.PoolAccountOwner); err != nil {
		return err
	}
	if err = requireSigners(acc.Payer); err != nil {
		return err
	}
	if err := requireAuthority(p.ProgramID, acc.PoolID, acc.Treasurer); err != nil {
		return err
	}

	pool, ok := p.getPool(acc.PoolID)
	if !ok {
		return ammerr.New(ammerr.UnmatchedPool)
	}
	poolCopy := *pool

	bidCode, bidReserve, ok := poolCopy.GetReserve(acc.TreasuryBid)
	if !ok {
		return ammerr.New(ammerr.UnmatchedPool)
	}
	askCode, askReserve, ok := poolCopy.GetReserve(acc.TreasuryAsk)
	if !ok {
		return ammerr.New(ammerr.UnmatchedPool)
	}
	senCode, _, ok := poolCopy.GetReserve(acc.TreasurySen)
	if !ok {
		return ammerr.New(ammerr.UnmatchedPool)
	}
	if senCode != CodeS {
		return ammerr.New(ammerr.UnmatchedPool)
	}
	if poolCopy.IsFrozen() {
		return ammerr.New(ammerr.FrozenPool)
	}
	if amount == 0 {
		return ammerr.New(ammerr.ZeroValue)
	}
	if acc.TreasuryBid == acc.TreasuryAsk {
		return nil
	}

	newBid, err := addU64(bidReserve, amount)
	if err != nil {
		return err
	}
	newAsk, paid, earning, err := CurveWithFee(newBid, bidReserve, askReserve, askCode == CodeS)
	if err != nil {
		return err
	}
	if paid < limit {
		return ammerr.New(ammerr.ExceedLimit)
	}

	if err := p.Token.Transfer(amount, acc.Src, acc.TreasuryBid, acc.Payer.Address); err != nil {
		return err
	}
	poolCopy.SetReserve(bidCode, newBid)
	poolCopy.SetReserve(askCode, newAsk)

	if err := p.Token.Transfer(paid, acc.TreasuryAsk, acc.Dst, acc.Treasurer); err != nil {
		return err
	}
	metrics.ObserveSwapVolume(assetLabel(bidCode), amount)

	if earning > 0 {
		newAskPlus, err := addU64(newAsk, earning)
		if err != nil {
			return err
		}
		newSen, earningInSen, _, err := CurveWithFee(newAskPlus, newAsk, poolCopy.ReserveS, true)
		if err != nil {
			return err
		}
		poolCopy.SetReserve(askCode, newAskPlus)
		poolCopy.ReserveS = newSen
		if err := p.Token.Transfer(earningInSen, acc.TreasurySen, acc.Vault, acc.Treasurer); err != nil {
			return err
		}
	}

	p.putPool(acc.PoolID, &poolCopy)
	return nil
}

func assetLabel(code ReserveCode) string {
	switch code {
	case CodeS:
		return "s"
	case CodeA:
		return "a"
	case CodeB:
		return "b"
	default:
		return "?"
	}
}

//---------------------------------------------------------------------
// FreezePool / ThawPool
//---------------------------------------------------------------------

type FreezeAccounts struct {
	Owner            AccountInfo
	PoolID           Address
	PoolAccountOwner Address
}

func (p *Processor) FreezePool(acc FreezeAccounts) (err error) {
	defer func() { p.logResult("FreezePool", acc.PoolID, err) }()
	return p.setOwnerState(acc.PoolAccountOwner, acc.Owner, acc.PoolID, Frozen)
}

func (p *Processor) ThawPool(acc FreezeAccounts) (err error) {
	defer func() { p.logResult("ThawPool", acc.PoolID, err) }()
	return p.setOwnerState(acc.PoolAccountOwner, acc.Owner, acc.PoolID, Initialized)
}

func (p *Processor) setOwnerState(poolAccountOwner Address, owner AccountInfo, poolID Address, state PoolState) error {
	if err := requireProgramOwned(p.ProgramID, poolAccountOwner); err != nil {
		return err
	}
	if err := requireSigners(owner); err != nil {
		return err
	}
	pool, ok := p.getPool(poolID)
	if !ok {
		return ammerr.New(ammerr.UnmatchedPool)
	}
	poolCopy := *pool
	if poolCopy.Owner != owner.Address {
		return ammerr.New(ammerr.InvalidOwner)
	}
	poolCopy.State = state
	p.putPool(poolID, &poolCopy)
	return nil
}

//---------------------------------------------------------------------
// Earn
//---------------------------------------------------------------------

type EarnAccounts struct {
	Owner            AccountInfo
	PoolID           Address
	PoolAccountOwner Address
	Vault            Address
	Dst              Address
	Treasurer        Address
}

func (p *Processor) Earn(amount uint64, acc EarnAccounts) (err error) {
	defer func() { p.logResult("Earn", acc.PoolID, err) }()

	if err = requireProgramOwned(p.ProgramID, acc.PoolAccountOwner); err != nil {
		return err
	}
	if err = requireSigners(acc.Owner); err != nil {
		return err
	}

	pool, ok := p.getPool(acc.PoolID)
	if !ok {
		return ammerr.New(ammerr.UnmatchedPool)
	}
	if pool.Owner != acc.Owner.Address {
		return ammerr.New(ammerr.InvalidOwner)
	}
	if err := requireAuthority(p.ProgramID, acc.PoolID, acc.Treasurer); err != nil {
		return err
	}
	if pool.Vault != acc.Vault {
		return ammerr.New(ammerr.InvalidOwner)
	}
	if amount == 0 {
		return ammerr.New(ammerr.ZeroValue)
	}
	return p.Token.Transfer(amount, acc.Vault, acc.Dst, acc.Treasurer)
}

//---------------------------------------------------------------------
// TransferPoolOwnership
//---------------------------------------------------------------------

type TransferOwnershipAccounts struct {
	Owner            AccountInfo
	PoolID           Address
	PoolAccountOwner Address
	NewOwner         Address
}

func (p *Processor) TransferPoolOwnership(acc TransferOwnershipAccounts) (err error) {
	defer func() { p.logResult("TransferPoolOwnership", acc.PoolID, err) }()

	if err = requireProgramOwned(p.ProgramID, acc.PoolAccountOwner); err != nil {
		return err
	}
	if err = requireSigners(acc.Owner); err != nil {
		return err
	}
	pool, ok := p.getPool(acc.PoolID)
	if !ok {
		return ammerr.New(ammerr.UnmatchedPool)
	}
	poolCopy := *pool
	if poolCopy.Owner != acc.Owner.Address {
		return ammerr.New(ammerr.InvalidOwner)
	}
	poolCopy.Owner = acc.NewOwner
	p.putPool(acc.PoolID, &poolCopy)
	return nil
}

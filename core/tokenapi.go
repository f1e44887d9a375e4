package core

// tokenapi.go – the abstract capability set the processor uses to move
// balances. The core never reads a token account's actual balance; it
// trusts this interface for custody and for enforcing sufficiency, and
// only keeps its own cached reserve counters in sync.

import (
	"sync"

	"ternarypool/pkg/ammerr"
)

// TokenAPI is the external fungible-token module the processor issues
// commands against. A real deployment backs this with the host's token
// program; tests and cmd/poolsim back it with MockTokenAPI.
type TokenAPI interface {
	InitMint(decimals uint8, mint, authority Address) error
	InitAccount(target, owner, mint Address) error
	Transfer(amount uint64, src, dst, authority Address) error
	MintTo(amount uint64, mint, dst, authority Address) error
	Burn(amount uint64, src, mint, authority Address) error

	// Supply returns the current circulating supply of mint, used by the
	// processor to read the LP mint's supply before AddLiquidity/
	// RemoveLiquidity math.
	Supply(mint Address) (uint64, error)
	// Decimals returns a mint's decimal precision, used when creating the
	// LP mint with the same decimals as S.
	Decimals(mint Address) (uint8, error)
}

type mockAccount struct {
	owner Address
	mint  Address
	bal   uint64
}

type mockMint struct {
	decimals  uint8
	authority Address
	supply    uint64
}

// MockTokenAPI is an in-memory TokenAPI used by tests and cmd/poolsim. It
// enforces the same signer/balance rules the real token module would:
// insufficient balance surfaces InsufficientFunds, an unknown account or
// mint surfaces UnmatchedPool.
type MockTokenAPI struct {
	mu       sync.RWMutex
	accounts map[Address]*mockAccount
	mints    map[Address]*mockMint
}

// NewMockTokenAPI returns an empty mock ledger.
func NewMockTokenAPI() *MockTokenAPI {
	return &MockTokenAPI{
		accounts: make(map[Address]*mockAccount),
		mints:    make(map[Address]*mockMint),
	}
}

// Seed creates an account for mint owned by owner with the given starting
// balance, for test fixtures that need pre-funded source accounts.
func (m *MockTokenAPI) Seed(account, owner, mint Address, balance uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.accounts[account] = &mockAccount{owner: owner, mint: mint, bal: balance}
	if _, ok := m.mints[mint]; !ok {
		m.mints[mint] = &mockMint{decimals: 9}
	}
}

func (m *MockTokenAPI) InitMint(decimals uint8, mint, authority Address) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.mints[mint]; ok {
		return ammerr.New(ammerr.ConstructorOnce)
	}
	m.mints[mint] = &mockMint{decimals: decimals, authority: authority}
	return nil
}

func (m *MockTokenAPI) InitAccount(target, owner, mint Address) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.accounts[target]; ok {
		return ammerr.New(ammerr.ConstructorOnce)
	}
	m.accounts[target] = &mockAccount{owner: owner, mint: mint}
	return nil
}

func (m *MockTokenAPI) Transfer(amount uint64, src, dst, authority Address) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	srcAcc, ok := m.accounts[src]
	if !ok {
		return ammerr.New(ammerr.UnmatchedPool)
	}
	dstAcc, ok := m.accounts[dst]
	if !ok {
		return ammerr.New(ammerr.UnmatchedPool)
	}
	if srcAcc.owner != authority {
		return ammerr.New(ammerr.InvalidOwner)
	}
	if srcAcc.bal < amount {
		return ammerr.New(ammerr.InsufficientFunds)
	}
	srcAcc.bal -= amount
	dstAcc.bal += amount
	return nil
}

func (m *MockTokenAPI) MintTo(amount uint64, mint, dst, authority Address) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	mt, ok := m.mints[mint]
	if !ok {
		return ammerr.New(ammerr.UnmatchedPool)
	}
	if mt.authority != authority {
		return ammerr.New(ammerr.InvalidOwner)
	}
	dstAcc, ok := m.accounts[dst]
	if !ok {
		return ammerr.New(ammerr.UnmatchedPool)
	}
	mt.supply += amount
	dstAcc.bal += amount
	return nil
}

func (m *MockTokenAPI) Burn(amount uint64, src, mint Address, authority Address) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	srcAcc, ok := m.accounts[src]
	if !ok {
		return ammerr.New(ammerr.UnmatchedPool)
	}
	if srcAcc.owner != authority {
		return ammerr.New(ammerr.InvalidOwner)
	}
	if srcAcc.bal < amount {
		return ammerr.New(ammerr.InsufficientFunds)
	}
	mt, ok := m.mints[mint]
	if !ok {
		return ammerr.New(ammerr.UnmatchedPool)
	}
	if mt.supply < amount {
		return ammerr.New(ammerr.InsufficientFunds)
	}
	srcAcc.bal -= amount
	mt.supply -= amount
	return nil
}

func (m *MockTokenAPI) Supply(mint Address) (uint64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	mt, ok := m.mints[mint]
	if !ok {
		return 0, ammerr.New(ammerr.UnmatchedPool)
	}
	return mt.supply, nil
}

func (m *MockTokenAPI) Decimals(mint Address) (uint8, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	mt, ok := m.mints[mint]
	if !ok {
		return 0, ammerr.New(ammerr.UnmatchedPool)
	}
	return mt.decimals, nil
}

// AccountSnapshot is an exported, serializable view of one mock token
// account, used by harnesses that persist a MockTokenAPI across runs.
type AccountSnapshot struct {
	Owner Address
	Mint  Address
	Bal   uint64
}

// MintSnapshot is an exported, serializable view of one mock mint.
type MintSnapshot struct {
	Decimals  uint8
	Authority Address
	Supply    uint64
}

// Snapshot returns a point-in-time copy of every account and mint.
func (m *MockTokenAPI) Snapshot() (map[Address]AccountSnapshot, map[Address]MintSnapshot) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	accounts := make(map[Address]AccountSnapshot, len(m.accounts))
	for addr, a := range m.accounts {
		accounts[addr] = AccountSnapshot{Owner: a.owner, Mint: a.mint, Bal: a.bal}
	}
	mints := make(map[Address]MintSnapshot, len(m.mints))
	for addr, mt := range m.mints {
		mints[addr] = MintSnapshot{Decimals: mt.decimals, Authority: mt.authority, Supply: mt.supply}
	}
	return accounts, mints
}

// Restore replaces the ledger's contents with a previously captured
// Snapshot, for harnesses resuming from persisted state.
func (m *MockTokenAPI) Restore(accounts map[Address]AccountSnapshot, mints map[Address]MintSnapshot) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.accounts = make(map[Address]*mockAccount, len(accounts))
	for addr, a := range accounts {
		m.accounts[addr] = &mockAccount{owner: a.Owner, mint: a.Mint, bal: a.Bal}
	}
	m.mints = make(map[Address]*mockMint, len(mints))
	for addr, mt := range mints {
		m.mints[addr] = &mockMint{decimals: mt.Decimals, authority: mt.Authority, supply: mt.Supply}
	}
}

// Balance is a test/inspection helper, not part of TokenAPI: the
// processor itself never reads a balance directly.
func (m *MockTokenAPI) Balance(account Address) uint64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if a, ok := m.accounts[account]; ok {
		return a.bal
	}
	return 0
}

// HasAccount reports whether account has been created, distinguishing a
// never-seen account from one that genuinely holds a zero balance.
func (m *MockTokenAPI) HasAccount(account Address) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.accounts[account]
	return ok
}

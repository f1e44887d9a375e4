package core

// pool.go – the on-disk pool record: a fixed 313-byte little-endian layout
// with one byte of enum state, three addresses, and three (mint, treasury,
// reserve) triples. Packing/unpacking never allocates beyond the returned
// slice, matching how account-data records are handled upstream.

import (
	"encoding/binary"

	"ternarypool/pkg/ammerr"
)

// PoolState is the pool's lifecycle state.
type PoolState uint8

const (
	Uninitialized PoolState = 0
	Initialized   PoolState = 1
	Frozen        PoolState = 2
)

func (s PoolState) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Initialized:
		return "initialized"
	case Frozen:
		return "frozen"
	default:
		return "invalid"
	}
}

// PoolLen is the exact packed size of a Pool record.
const PoolLen = 32 + 1 + 32 + 32 + 3*(32+32+8)

// Pool is one three-asset liquidity venue.
type Pool struct {
	Owner   Address
	State   PoolState
	MintLpt Address
	Vault   Address

	MintS      Address
	TreasuryS  Address
	ReserveS   uint64

	MintA     Address
	TreasuryA Address
	ReserveA  uint64

	MintB     Address
	TreasuryB Address
	ReserveB  uint64
}

// IsInitialized reports whether InitializePool has run on this record.
func (p *Pool) IsInitialized() bool { return p.State != Uninitialized }

// IsFrozen reports whether swaps/removals are currently rejected.
func (p *Pool) IsFrozen() bool { return p.State == Frozen }

// ReserveCode identifies which of the pool's three assets a treasury
// belongs to: 0 = S, 1 = A, 2 = B.
type ReserveCode uint8

const (
	CodeS ReserveCode = 0
	CodeA ReserveCode = 1
	CodeB ReserveCode = 2
)

// GetReserve matches treasury against the pool's three treasuries and
// returns which asset it is and that asset's cached reserve. ok is false
// if treasury belongs to none of them.
func (p *Pool) GetReserve(treasury Address) (code ReserveCode, reserve uint64, ok bool) {
	switch treasury {
	case p.TreasuryS:
		return CodeS, p.ReserveS, true
	case p.TreasuryA:
		return CodeA, p.ReserveA, true
	case p.TreasuryB:
		return CodeB, p.ReserveB, true
	default:
		return 0, 0, false
	}
}

// SetReserve writes the cached reserve for the given asset code.
func (p *Pool) SetReserve(code ReserveCode, value uint64) {
	switch code {
	case CodeS:
		p.ReserveS = value
	case CodeA:
		p.ReserveA = value
	case CodeB:
		p.ReserveB = value
	}
}

func putAddress(dst []byte, a Address) { copy(dst, a[:]) }

func getAddress(src []byte) Address {
	var a Address
	copy(a[:], src)
	return a
}

// Pack serializes the pool into its canonical 313-byte little-endian
// layout: owner(32) state(1) mint_lpt(32) vault(32) then three
// (mint,treasury,reserve) triples for S, A, B.
func (p *Pool) Pack() []byte {
	dst := make([]byte, PoolLen)
	off := 0
	putAddress(dst[off:], p.Owner)
	off += 32
	dst[off] = byte(p.State)
	off++
	putAddress(dst[off:], p.MintLpt)
	off += 32
	putAddress(dst[off:], p.Vault)
	off += 32

	putAddress(dst[off:], p.MintS)
	off += 32
	putAddress(dst[off:], p.TreasuryS)
	off += 32
	binary.LittleEndian.PutUint64(dst[off:], p.ReserveS)
	off += 8

	putAddress(dst[off:], p.MintA)
	off += 32
	putAddress(dst[off:], p.TreasuryA)
	off += 32
	binary.LittleEndian.PutUint64(dst[off:], p.ReserveA)
	off += 8

	putAddress(dst[off:], p.MintB)
	off += 32
	putAddress(dst[off:], p.TreasuryB)
	off += 32
	binary.LittleEndian.PutUint64(dst[off:], p.ReserveB)
	off += 8

	return dst
}

// UnpackPool decodes a 313-byte record produced by Pack. An out-of-range
// state byte is a decode error, not a silent default.
func UnpackPool(src []byte) (*Pool, error) {
	if len(src) != PoolLen {
		return nil, ammerr.Wrap(ammerr.New(ammerr.InvalidInstruction), "pool record has wrong length")
	}
	off := 0
	p := &Pool{}
	p.Owner = getAddress(src[off:])
	off += 32

	switch src[off] {
	case byte(Uninitialized), byte(Initialized), byte(Frozen):
		p.State = PoolState(src[off])
	default:
		return nil, ammerr.Wrap(ammerr.New(ammerr.InvalidInstruction), "invalid pool state byte")
	}
	off++

	p.MintLpt = getAddress(src[off:])
	off += 32
	p.Vault = getAddress(src[off:])
	off += 32

	p.MintS = getAddress(src[off:])
	off += 32
	p.TreasuryS = getAddress(src[off:])
	off += 32
	p.ReserveS = binary.LittleEndian.Uint64(src[off:])
	off += 8

	p.MintA = getAddress(src[off:])
	off += 32
	p.TreasuryA = getAddress(src[off:])
	off += 32
	p.ReserveA = binary.LittleEndian.Uint64(src[off:])
	off += 8

	p.MintB = getAddress(src[off:])
	off += 32
	p.TreasuryB = getAddress(src[off:])
	off += 32
	p.ReserveB = binary.LittleEndian.Uint64(src[off:])
	off += 8

	return p, nil
}

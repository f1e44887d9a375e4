package core

// instruction.go – the wire codec: one tag byte followed by little-endian
// fixed-width operands. Short or overlong payloads are InvalidInstruction,
// matching the original program's strict length checks.

import (
	"encoding/binary"

	"ternarypool/pkg/ammerr"
)

// Tag identifies which operation an instruction encodes.
type Tag uint8

const (
	TagInitializePool         Tag = 0
	TagAddLiquidity           Tag = 1
	TagRemoveLiquidity        Tag = 2
	TagSwap                   Tag = 3
	TagFreezePool             Tag = 4
	TagThawPool               Tag = 5
	TagEarn                   Tag = 6
	TagTransferPoolOwnership  Tag = 7
)

// Instruction is a decoded operation and its operands. Exactly one of the
// typed fields is meaningful, selected by Tag.
type Instruction struct {
	Tag Tag

	// InitializePool
	ReserveS, ReserveA, ReserveB uint64

	// AddLiquidity
	DeltaS, DeltaA, DeltaB uint64

	// RemoveLiquidity / Earn share the Amount field's meaning with Swap's
	// first operand; each is named for its own instruction for clarity.
	Lpt uint64

	// Swap
	Amount, Limit uint64

	// Earn
	EarnAmount uint64
}

func readU64(rest []byte, at int) (uint64, error) {
	if len(rest) < at+8 {
		return 0, ammerr.New(ammerr.InvalidInstruction)
	}
	return binary.LittleEndian.Uint64(rest[at : at+8]), nil
}

// Decode parses a raw instruction payload. The first byte is the tag; the
// remainder must be exactly the operand width the tag expects — no more,
// no less.
func Decode(data []byte) (Instruction, error) {
	if len(data) == 0 {
		return Instruction{}, ammerr.New(ammerr.InvalidInstruction)
	}
	tag := Tag(data[0])
	rest := data[1:]

	switch tag {
	case TagInitializePool:
		if len(rest) != 24 {
			return Instruction{}, ammerr.New(ammerr.InvalidInstruction)
		}
		reserveS, _ := readU64(rest, 0)
		reserveA, _ := readU64(rest, 8)
		reserveB, _ := readU64(rest, 16)
		return Instruction{Tag: tag, ReserveS: reserveS, ReserveA: reserveA, ReserveB: reserveB}, nil

	case TagAddLiquidity:
		if len(rest) != 24 {
			return Instruction{}, ammerr.New(ammerr.InvalidInstruction)
		}
		deltaS, _ := readU64(rest, 0)
		deltaA, _ := readU64(rest, 8)
		deltaB, _ := readU64(rest, 16)
		return Instruction{Tag: tag, DeltaS: deltaS, DeltaA: deltaA, DeltaB: deltaB}, nil

	case TagRemoveLiquidity:
		if len(rest) != 8 {
			return Instruction{}, ammerr.New(ammerr.InvalidInstruction)
		}
		lpt, _ := readU64(rest, 0)
		return Instruction{Tag: tag, Lpt: lpt}, nil

	case TagSwap:
		if len(rest) != 16 {
			return Instruction{}, ammerr.New(ammerr.InvalidInstruction)
		}
		amount, _ := readU64(rest, 0)
		limit, _ := readU64(rest, 8)
		return Instruction{Tag: tag, Amount: amount, Limit: limit}, nil

	case TagFreezePool, TagThawPool, TagTransferPoolOwnership:
		if len(rest) != 0 {
			return Instruction{}, ammerr.New(ammerr.InvalidInstruction)
		}
		return Instruction{Tag: tag}, nil

	case TagEarn:
		if len(rest) != 8 {
			return Instruction{}, ammerr.New(ammerr.InvalidInstruction)
		}
		amount, _ := readU64(rest, 0)
		return Instruction{Tag: tag, EarnAmount: amount}, nil

	default:
		return Instruction{}, ammerr.New(ammerr.InvalidInstruction)
	}
}

// Encode is the inverse of Decode, chiefly useful for tests that must
// produce wire-format payloads.
func Encode(ins Instruction) []byte {
	buf := make([]byte, 8)
	switch ins.Tag {
	case TagInitializePool:
		out := make([]byte, 1+24)
		out[0] = byte(ins.Tag)
		binary.LittleEndian.PutUint64(out[1:9], ins.ReserveS)
		binary.LittleEndian.PutUint64(out[9:17], ins.ReserveA)
		binary.LittleEndian.PutUint64(out[17:25], ins.ReserveB)
		return out
	case TagAddLiquidity:
		out := make([]byte, 1+24)
		out[0] = byte(ins.Tag)
		binary.LittleEndian.PutUint64(out[1:9], ins.DeltaS)
		binary.LittleEndian.PutUint64(out[9:17], ins.DeltaA)
		binary.LittleEndian.PutUint64(out[17:25], ins.DeltaB)
		return out
	case TagRemoveLiquidity:
		out := make([]byte, 1+8)
		out[0] = byte(ins.Tag)
		binary.LittleEndian.PutUint64(out[1:9], ins.Lpt)
		return out
	case TagSwap:
		out := make([]byte, 1+16)
		out[0] = byte(ins.Tag)
		binary.LittleEndian.PutUint64(out[1:9], ins.Amount)
		binary.LittleEndian.PutUint64(out[9:17], ins.Limit)
		return out
	case TagEarn:
		out := make([]byte, 1+8)
		out[0] = byte(ins.Tag)
		binary.LittleEndian.PutUint64(out[1:9], ins.EarnAmount)
		return out
	case TagFreezePool, TagThawPool, TagTransferPoolOwnership:
		return []byte{byte(ins.Tag)}
	default:
		_ = buf
		return nil
	}
}

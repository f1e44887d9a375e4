package core

// address.go – 32-byte account identities for the pool core.
//
// The core never dials a network or holds a private key for any of its
// program-owned accounts; every identity below is just a 32-byte value
// compared by equality. Display uses base58, matching the convention of
// the system this core was modeled on.

import (
	"encoding/hex"

	"github.com/mr-tron/base58"
	"lukechampine.com/blake3"
)

// Address is a 32-byte account identity: a mint, a treasury, an owner, a
// derived authority — all the same shape.
type Address [32]byte

// ZeroAddress is the default, never-initialized identity.
var ZeroAddress = Address{}

func (a Address) String() string {
	return base58.Encode(a[:])
}

// Hex is occasionally useful for logging raw bytes without the base58
// alphabet getting in the way during debugging.
func (a Address) Hex() string { return hex.EncodeToString(a[:]) }

func (a Address) IsZero() bool { return a == ZeroAddress }

// MarshalText implements encoding.TextMarshaler, so an Address serializes
// as its base58 string wherever it appears in JSON — as a struct field or
// as a map key — letting cmd/poolsim persist pool/ledger state as plain
// JSON instead of a bespoke binary format.
func (a Address) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText is MarshalText's counterpart.
func (a *Address) UnmarshalText(text []byte) error {
	parsed, err := ParseAddress(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// ParseAddress decodes a base58-encoded 32-byte address.
func ParseAddress(s string) (Address, error) {
	b, err := base58.Decode(s)
	if err != nil {
		return Address{}, err
	}
	var a Address
	if len(b) != len(a) {
		return Address{}, errInvalidAddressLength
	}
	copy(a[:], b)
	return a, nil
}

var errInvalidAddressLength = addressLenErr{}

type addressLenErr struct{}

func (addressLenErr) Error() string { return "ternarypool: decoded address is not 32 bytes" }

// authoritySalt distinguishes the pool's derived authority from any other
// address namespace that might someday hash off of a pool's identity.
var authoritySalt = []byte("ternarypool-authority-v1")

// DeriveAuthority computes the program-owned address that acts as signer
// for everything the pool custodies: the three treasuries, the vault, and
// the LP mint's mint authority. It is a pure function of (programID,
// poolID) — nobody, including the pool owner, holds its private key.
func DeriveAuthority(programID, poolID Address) Address {
	h := blake3.New(32, nil)
	h.Write(programID[:])
	h.Write(poolID[:])
	h.Write(authoritySalt)
	var out Address
	copy(out[:], h.Sum(nil))
	return out
}

// XorAddress XORs three addresses byte-for-byte. InitializePool uses this
// as a belt-and-suspenders cross-check that a caller-supplied "proof"
// account truly was derived from (programID, poolID, treasurer).
func XorAddress(a, b, c Address) Address {
	var out Address
	for i := range out {
		out[i] = a[i] ^ b[i] ^ c[i]
	}
	return out
}

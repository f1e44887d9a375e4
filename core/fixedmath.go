package core

// fixedmath.go – integer sqrt/cbrt over wide unsigned integers.
//
// Every reserve, LP supply, and deposit amount in this program is a u64;
// products of two u64 values already want 128 bits, and the rake
// sub-routine (_rake) chains several such products together with a
// TRIPLE_PRECISION scaling factor before taking a cube root, which can
// transiently exceed 128 bits. Go has no native 128-bit integer, so all of
// it is carried in *uint256.Int, which also gives us overflow detection on
// every step instead of a silent wrap.

import "github.com/holiman/uint256"

// sqrtInt returns the greatest r such that r*r <= n (Babylonian iteration,
// seeded from n's bit length so convergence is O(log log n)).
func sqrtInt(n *uint256.Int) *uint256.Int {
	if n.IsZero() {
		return uint256.NewInt(0)
	}
	bitLen := n.BitLen()
	// Seed x0 with 2^ceil(bitLen/2), an overestimate that converges fast.
	x := new(uint256.Int).Lsh(uint256.NewInt(1), uint((bitLen+1)/2))
	for {
		// next = (x + n/x) / 2
		q := new(uint256.Int).Div(n, x)
		sum := new(uint256.Int).Add(x, q)
		next := new(uint256.Int).Rsh(sum, 1)
		if next.Cmp(x) >= 0 {
			break
		}
		x = next
	}
	// Correct for the rare off-by-one the Babylonian loop can leave behind.
	for {
		sq := new(uint256.Int)
		if _, overflow := sq.MulOverflow(x, x); overflow || sq.Cmp(n) > 0 {
			x = new(uint256.Int).Sub(x, uint256.NewInt(1))
			continue
		}
		break
	}
	next := new(uint256.Int).Add(x, uint256.NewInt(1))
	nextSq := new(uint256.Int)
	if _, overflow := nextSq.MulOverflow(next, next); !overflow && nextSq.Cmp(n) <= 0 {
		x = next
	}
	return x
}

// cbrtInt returns the greatest r such that r*r*r <= n (Newton iteration
// seeded from sqrt(n); small n is hard-coded since Newton's method needs a
// non-zero seed to converge).
func cbrtInt(n *uint256.Int) *uint256.Int {
	if n.LtUint64(27) {
		return cbrtSmall(n)
	}
	x := sqrtInt(n)
	if x.IsZero() {
		x = uint256.NewInt(1)
	}
	for i := 0; i < 64; i++ {
		x2 := new(uint256.Int)
		if _, overflow := x2.MulOverflow(x, x); overflow {
			// x overshot badly; fall back to a conservative halving step.
			x = new(uint256.Int).Rsh(x, 1)
			if x.IsZero() {
				x = uint256.NewInt(1)
			}
			continue
		}
		q := new(uint256.Int).Div(n, x2)
		twiceX := new(uint256.Int).Mul(x, uint256.NewInt(2))
		sum := new(uint256.Int).Add(twiceX, q)
		next := new(uint256.Int).Div(sum, uint256.NewInt(3))
		if next.Cmp(x) >= 0 {
			break
		}
		x = next
	}
	for {
		cube := new(uint256.Int)
		sq := new(uint256.Int)
		if _, ov1 := sq.MulOverflow(x, x); ov1 {
			x = new(uint256.Int).Sub(x, uint256.NewInt(1))
			continue
		}
		if _, ov2 := cube.MulOverflow(sq, x); ov2 || cube.Cmp(n) > 0 {
			x = new(uint256.Int).Sub(x, uint256.NewInt(1))
			continue
		}
		break
	}
	for {
		next := new(uint256.Int).Add(x, uint256.NewInt(1))
		sq := new(uint256.Int)
		cube := new(uint256.Int)
		if _, ov1 := sq.MulOverflow(next, next); ov1 {
			break
		}
		if _, ov2 := cube.MulOverflow(sq, next); ov2 || cube.Cmp(n) > 0 {
			break
		}
		x = next
	}
	return x
}

func cbrtSmall(n *uint256.Int) *uint256.Int {
	v := n.Uint64()
	table := [27]uint64{0, 1, 1, 1, 1, 1, 1, 1, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2}
	return uint256.NewInt(table[v])
}

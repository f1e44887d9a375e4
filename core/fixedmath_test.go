package core

import (
	"testing"

	"github.com/holiman/uint256"
)

func TestSqrtIntExact(t *testing.T) {
	cases := []struct {
		n, want uint64
	}{
		{0, 0},
		{1, 1},
		{4, 2},
		{9, 3},
		{1_000_000, 1000},
		{999_999, 999}, // floor of a non-perfect square
	}
	for _, c := range cases {
		got := sqrtInt(uint256.NewInt(c.n))
		if got.Uint64() != c.want {
			t.Errorf("sqrtInt(%d) = %d, want %d", c.n, got.Uint64(), c.want)
		}
	}
}

func TestSqrtIntLarge(t *testing.T) {
	n := new(uint256.Int).Exp(uint256.NewInt(10), uint256.NewInt(30))
	r := sqrtInt(n)
	want := new(uint256.Int).Exp(uint256.NewInt(10), uint256.NewInt(15))
	if r.Cmp(want) != 0 {
		t.Errorf("sqrtInt(1e30) = %s, want %s", r, want)
	}
}

func TestCbrtIntSmallTable(t *testing.T) {
	for n := uint64(0); n < 27; n++ {
		got := cbrtInt(uint256.NewInt(n))
		want := uint64(0)
		for want*want*want <= n {
			want++
		}
		want--
		if got.Uint64() != want {
			t.Errorf("cbrtInt(%d) = %d, want %d", n, got.Uint64(), want)
		}
	}
}

func TestCbrtIntExact(t *testing.T) {
	cases := []struct {
		n, want uint64
	}{
		{27, 3},
		{1000, 10},
		{1_000_000_000, 1000},
		{999, 9}, // floor of a non-perfect cube
	}
	for _, c := range cases {
		got := cbrtInt(uint256.NewInt(c.n))
		if got.Uint64() != c.want {
			t.Errorf("cbrtInt(%d) = %d, want %d", c.n, got.Uint64(), c.want)
		}
	}
}

func TestCbrtIntLarge(t *testing.T) {
	n := new(uint256.Int).Exp(uint256.NewInt(10), uint256.NewInt(36))
	r := cbrtInt(n)
	want := new(uint256.Int).Exp(uint256.NewInt(10), uint256.NewInt(12))
	if r.Cmp(want) != 0 {
		t.Errorf("cbrtInt(1e36) = %s, want %s", r, want)
	}
}

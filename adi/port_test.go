package adi

import (
	"testing"

	"triport-go/errcode"
)

func TestTranslatePort(t *testing.T) {
	cases := []struct {
		in   int
		want int
		err  error
	}{
		{1, 0, nil},
		{8, 7, nil},
		{'a', 0, nil},
		{'h', 7, nil},
		{'A', 0, nil},
		{'H', 7, nil},
		{'d', 3, nil},
		{0, 0, errcode.OutOfRange},
		{9, 0, errcode.OutOfRange},
		{-3, 0, errcode.OutOfRange},
		{'i', 0, errcode.OutOfRange},
		{'z', 0, errcode.OutOfRange},
		{'I', 0, errcode.OutOfRange},
	}
	for _, c := range cases {
		got, err := translatePort(c.in)
		if c.err != nil {
			if errcode.Of(err) != c.err {
				t.Fatalf("translatePort(%d): err=%v, want %v", c.in, err, c.err)
			}
			continue
		}
		if err != nil {
			t.Fatalf("translatePort(%d): unexpected err %v", c.in, err)
		}
		if got != c.want {
			t.Fatalf("translatePort(%d)=%d, want %d", c.in, got, c.want)
		}
	}
}

func TestResolvePair(t *testing.T) {
	cases := []struct {
		top, bottom int
		anchor      int
		err         error
	}{
		{3, 4, 3, nil},
		{4, 3, 3, nil},
		{1, 2, 1, nil},
		{7, 8, 7, nil},
		{5, 6, 5, nil},
		{3, 5, 0, errcode.InvalidPair}, // not adjacent
		{4, 5, 0, errcode.InvalidPair}, // anchor not first-of-pair
		{2, 3, 0, errcode.InvalidPair},
		{3, 3, 0, errcode.InvalidPair}, // same port twice
		{9, 10, 0, errcode.OutOfRange}, // outside the bank
		{-1, 0, 0, errcode.OutOfRange},
	}
	for _, c := range cases {
		got, err := resolvePair(c.top, c.bottom)
		if c.err != nil {
			if errcode.Of(err) != c.err {
				t.Fatalf("resolvePair(%d,%d): err=%v, want %v", c.top, c.bottom, err, c.err)
			}
			continue
		}
		if err != nil {
			t.Fatalf("resolvePair(%d,%d): unexpected err %v", c.top, c.bottom, err)
		}
		if got != c.anchor {
			t.Fatalf("resolvePair(%d,%d)=%d, want %d", c.top, c.bottom, got, c.anchor)
		}
	}
}

func TestReversalSlot(t *testing.T) {
	slots := map[int]int{1: 0, 3: 1, 5: 2, 7: 3}
	for anchor, want := range slots {
		if got := reversalSlot(anchor); got != want {
			t.Fatalf("reversalSlot(%d)=%d, want %d", anchor, got, want)
		}
	}
}

package gofunc_test

import (
	"testing"

	"github.com/funcstruct-systems/gofunc/gofunc"
)

func TestCompareSeqs(t *testing.T) {
	cases := []struct {
		a, b []int
		want int
	}{
		{nil, nil, 0},
		{[]int{1}, nil, 1},
		{nil, []int{1}, -1},
		{[]int{1, 2}, []int{1, 2}, 0},
		{[]int{1, 3}, []int{1, 2}, 1},
		{[]int{1}, []int{1, 0}, -1},
	}
	for _, c := range cases {
		got := gofunc.CompareSeqs(gofunc.CompareInts, c.a, c.b)
		if (got > 0) != (c.want > 0) || (got < 0) != (c.want < 0) {
			t.Fatalf("CompareSeqs(%v, %v) = %d, want sign of %d", c.a, c.b, got, c.want)
		}
	}
}

func TestVarintRoundTrip(t *testing.T) {
	values := []uint64{0, 1, 127, 128, 300, 1 << 20, 1<<63 - 1}
	var buf []byte
	for _, v := range values {
		buf = gofunc.AppendUvarint(buf, v)
	}
	for _, want := range values {
		var got uint64
		var err error
		got, buf, err = gofunc.ReadUvarint(buf)
		if err != nil {
			t.Fatal(err)
		}
		if got != want {
			t.Fatalf("read %d, want %d", got, want)
		}
	}
	if len(buf) != 0 {
		t.Fatal("trailing bytes")
	}

	if _, _, err := gofunc.ReadUvarint([]byte{0x80}); err != gofunc.ErrUnmarshal {
		t.Fatalf("truncated varint err = %v", err)
	}
	if _, _, err := gofunc.ReadUvarint(nil); err != gofunc.ErrUnmarshal {
		t.Fatalf("empty varint err = %v", err)
	}
}

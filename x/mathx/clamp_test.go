package mathx

import "testing"

func TestClamp(t *testing.T) {
	cases := []struct{ v, lo, hi, want int }{
		{5, 1, 10, 5},
		{0, 1, 10, 1},
		{11, 1, 10, 10},
		{3, 10, 1, 3},
		{20, 10, 1, 10},
	}
	for _, c := range cases {
		if got := Clamp(c.v, c.lo, c.hi); got != c.want {
			t.Fatalf("Clamp(%d, %d, %d) = %d, want %d", c.v, c.lo, c.hi, got, c.want)
		}
	}
	if Clamp(0.5, 1.0, 2.0) != 1.0 {
		t.Fatal("float clamp incorrect")
	}
}

func TestMax(t *testing.T) {
	if Max(2, 3) != 3 || Max(3, 2) != 3 || Max(0, 1) != 1 {
		t.Fatal("Max incorrect")
	}
}

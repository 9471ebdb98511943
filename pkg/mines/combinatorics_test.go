package mines

import "testing"

func TestChoose(t *testing.T) {
	cases := []struct {
		n, r, want int
	}{
		{0, 0, 1},
		{5, 0, 1},
		{5, 5, 1},
		{5, 1, 5},
		{5, 2, 10},
		{8, 3, 56},
	}
	for _, tc := range cases {
		if got := choose(tc.n, tc.r); got != tc.want {
			t.Errorf("choose(%d, %d) = %d, want %d", tc.n, tc.r, got, tc.want)
		}
	}
}

func TestChoosePanicsWhenROverN(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic when r > n")
		}
	}()
	choose(2, 3)
}

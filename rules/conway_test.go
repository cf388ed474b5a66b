package rules

import "testing"

func TestApply(t *testing.T) {
	tests := []struct {
		alive     bool
		neighbors int
		want      Fate
	}{
		{true, 0, Underpopulation},
		{true, 1, Underpopulation},
		{true, 2, Survival},
		{true, 3, Survival},
		{true, 4, Overpopulation},
		{true, 7, Overpopulation},
		{true, 8, Overpopulation},
		{false, 0, Dormant},
		{false, 2, Dormant},
		{false, 3, Birth},
		{false, 4, Dormant},
		{false, 8, Dormant},
	}
	for _, tt := range tests {
		if got := Apply(tt.alive, tt.neighbors); got != tt.want {
			t.Errorf("Apply(%v, %d) = %v, want %v", tt.alive, tt.neighbors, got, tt.want)
		}
	}
}

func TestFateMatchesB3S23(t *testing.T) {
	for n := 0; n <= 8; n++ {
		for _, alive := range []bool{false, true} {
			want := (alive && n == 2) || n == 3
			fate := Apply(alive, n)
			if fate.Alive() != want {
				t.Errorf("Apply(%v, %d).Alive() = %v, want %v", alive, n, fate.Alive(), want)
			}
			if fate.Flipped() != (alive != want) {
				t.Errorf("Apply(%v, %d).Flipped() = %v", alive, n, fate.Flipped())
			}
		}
	}
}

package gamma

import "testing"

func TestIdentity(t *testing.T) {
	tbl := New(1)
	for i := 0; i < 256; i++ {
		if got := tbl.Dir(uint8(i)); got != uint8(i) {
			t.Fatalf("Dir(%d) = %d, want %d", i, got, i)
		}
	}
}

func TestMonotonic(t *testing.T) {
	for _, g := range []float64{0.5, 1.2, Default, 2.5} {
		tbl := New(g)
		if tbl.Dir(0) != 0 || tbl.Dir(255) != 255 {
			t.Errorf("gamma %v: endpoints = %d, %d", g, tbl.Dir(0), tbl.Dir(255))
		}
		prev := uint8(0)
		for i := 0; i < 256; i++ {
			v := tbl.Dir(uint8(i))
			if v < prev {
				t.Fatalf("gamma %v: Dir(%d) = %d < Dir(%d) = %d", g, i, v, i-1, prev)
			}
			prev = v
		}
	}
}

func TestDarkensMidtones(t *testing.T) {
	tbl := New(Default)
	if v := tbl.Dir(128); v >= 128 {
		t.Errorf("Dir(128) = %d, want < 128 for gamma > 1", v)
	}
}

func TestSetGamma(t *testing.T) {
	tbl := New(Default)
	if tbl.SetGamma(Default) {
		t.Error("SetGamma(same) reported a rebuild")
	}
	if !tbl.SetGamma(1) {
		t.Error("SetGamma(1) did not rebuild")
	}
	if tbl.Dir(100) != 100 {
		t.Errorf("Dir(100) = %d after SetGamma(1)", tbl.Dir(100))
	}
}

func TestInvalidGamma(t *testing.T) {
	tests := []float64{0, -1}
	for _, g := range tests {
		if got := New(g).Gamma(); got != 1 {
			t.Errorf("New(%v).Gamma() = %v, want 1", g, got)
		}
	}
}

func TestAt(t *testing.T) {
	tbl := New(2)
	tests := []struct{ in, want float64 }{
		{-1, 0},
		{0, 0},
		{0.5, 0.25},
		{1, 1},
		{3, 1},
	}
	for _, tt := range tests {
		if got := tbl.At(tt.in); got != tt.want {
			t.Errorf("At(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

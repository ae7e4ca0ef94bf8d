package scoring

import "testing"

func TestBlendRatios(t *testing.T) {
	cfg := DefaultConfig()
	// technology: 90*0.6 + 60*0.4 = 78
	if got := Blend(90, 60, CategoryTechnology, cfg); got != 78 {
		t.Fatalf("technology blend: got %v want 78", got)
	}
	// rights: 69.3*0.7 + 70*0.3 = 69.51
	if got := Blend(69.3, 70, CategoryRights, cfg); got != 69.51 {
		t.Fatalf("rights blend: got %v want 69.51", got)
	}
	// market: 26*0.7 + 60*0.3 = 36.2
	if got := Blend(26, 60, CategoryMarket, cfg); !almostEqual(got, 36.2) {
		t.Fatalf("market blend: got %v want 36.2", got)
	}
}

func TestBlendPanicsOnInvalidCategory(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on invalid category")
		}
	}()
	Blend(50, 50, Category("quality"), DefaultConfig())
}

func almostEqual(a, b float64) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d < 1e-9
}

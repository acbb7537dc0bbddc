package theme

import "testing"

func TestDisplayColorClamps(t *testing.T) {
	if DisplayColor(-3) != displayPalette[0] {
		t.Fatalf("expected negative index to clamp to first colour")
	}
	if DisplayColor(99) != displayPalette[len(displayPalette)-1] {
		t.Fatalf("expected large index to clamp to last colour")
	}
	if DisplayColor(5) != "41" {
		t.Fatalf("unexpected colour for index 5: %s", DisplayColor(5))
	}
}

func TestDefaultStylesPopulated(t *testing.T) {
	s := Default()
	if s.Status == nil || s.SelectedItem == nil || s.LogAlert == nil || s.Footer == nil {
		t.Fatalf("expected default styles to be populated")
	}
}

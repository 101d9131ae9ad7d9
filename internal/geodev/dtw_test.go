package geodev

import "testing"

func TestDtwDistance_IdenticalSequencesAreZero(t *testing.T) {
	seq := []float64{0, 1, 2, 3, 4}
	if d := dtwDistance(seq, seq); d != 0 {
		t.Fatalf("expected 0 for identical sequences, got %v", d)
	}
}

func TestDtwDistance_EmptySequenceReturnsZero(t *testing.T) {
	if d := dtwDistance(nil, []float64{1, 2, 3}); d != 0 {
		t.Fatalf("expected 0 for an empty sequence, got %v", d)
	}
}

func TestDtwDistance_ToleratesTimeShift(t *testing.T) {
	a := []float64{0, 0, 1, 2, 3}
	b := []float64{0, 1, 2, 3, 3}
	if d := dtwDistance(a, b); d != 0 {
		t.Fatalf("expected 0 for a stretched-but-matching sequence, got %v", d)
	}
}

func TestDtwDistance_GrowsWithDivergence(t *testing.T) {
	a := []float64{0, 1, 2, 3}
	b := []float64{0, 1, 2, 3}
	c := []float64{10, 11, 12, 13}
	if d := dtwDistance(a, b); d != 0 {
		t.Fatalf("expected 0, got %v", d)
	}
	if d := dtwDistance(a, c); d <= 0 {
		t.Fatalf("expected a positive distance against a shifted sequence, got %v", d)
	}
}

package plotting

import (
	"path/filepath"
	"testing"
)

func TestConvergenceCurveWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "curve.png")
	err := ConvergenceCurve(path, []int{0, 1, 2}, []float64{10, 5, 1})
	if err != nil {
		t.Fatalf("ConvergenceCurve returned error: %v", err)
	}
}

func TestConvergenceCurveRejectsMismatchedLengths(t *testing.T) {
	path := filepath.Join(t.TempDir(), "curve.png")
	err := ConvergenceCurve(path, []int{0, 1}, []float64{10})
	if err == nil {
		t.Fatal("expected an error for mismatched slice lengths")
	}
}

func TestConvergenceCurveRejectsEmptyTrace(t *testing.T) {
	path := filepath.Join(t.TempDir(), "curve.png")
	err := ConvergenceCurve(path, nil, nil)
	if err == nil {
		t.Fatal("expected an error for an empty trace")
	}
}

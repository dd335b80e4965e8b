package mesh

import "testing"

func TestWallClipZeroesVelocity(t *testing.T) {
	pos := []float64{-3, 5}
	vel := []float64{-2, 1}
	lb := []float64{0, 0}
	ub := []float64{10, 10}
	WallClip(pos, vel, lb, ub)
	if pos[0] != 0 || vel[0] != 0 {
		t.Fatalf("dimension 0 should clip to 0 and zero velocity, got pos=%v vel=%v", pos[0], vel[0])
	}
	if pos[1] != 5 || vel[1] != 1 {
		t.Fatalf("dimension 1 was inside bounds and should be untouched, got pos=%v vel=%v", pos[1], vel[1])
	}
}

func TestShrinkIntersectsOriginalBounds(t *testing.T) {
	lb := []float64{0}
	ub := []float64{100}
	newLB, newUB := Shrink(lb, ub, []float64{0}, 0.1)
	// incumbent at the lower edge: shrunken window's lower side would fall
	// below the original lb and must clip back to it.
	if newLB[0] != 0 {
		t.Fatalf("newLB = %v, want clipped to original lb 0", newLB[0])
	}
	if newUB[0] != 10 {
		t.Fatalf("newUB = %v, want 10 (0 + 0.1*100)", newUB[0])
	}
}

func TestVelocityCapAndClamp(t *testing.T) {
	lb := []float64{0}
	ub := []float64{10}
	capv := VelocityCap(lb, ub)
	if capv[0] != 5 {
		t.Fatalf("VelocityCap = %v, want 5", capv[0])
	}
	vel := []float64{9}
	ClampVelocity(vel, capv)
	if vel[0] != 5 {
		t.Fatalf("ClampVelocity = %v, want 5", vel[0])
	}
}

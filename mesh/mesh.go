// Package mesh projects candidate points onto the box-bound feasible region
// every engine in this module shares (spec §3, §4.F). It generalizes the
// teacher's Bounded.Nearest — plain math.Max/math.Min clipping into [lb,ub]
// with no underlying grid — to the one shape the spec actually needs:
// continuous box bounds, with no grid-snap step at all (the teacher's
// Infinite.Nearest basis-transform/grid-snap feature, the one place the
// teacher reaches for a matrix library, is out of scope here).
package mesh

import "math"

// ClampInPlace slides p into [lb[j], ub[j]] per dimension, mirroring
// Bounded.Nearest with no underlying grid. Used on DE/PSO hot paths.
func ClampInPlace(p, lb, ub []float64) {
	for j := range p {
		if p[j] < lb[j] {
			p[j] = lb[j]
		} else if p[j] > ub[j] {
			p[j] = ub[j]
		}
	}
}

// WallClip implements PSO's boundary rule (spec §4.F): any dimension that
// exits [lb, ub] is clipped back to the boundary and its velocity component
// is zeroed, rather than reflected or wrapped.
func WallClip(pos, vel, lb, ub []float64) {
	for j := range pos {
		switch {
		case pos[j] < lb[j]:
			pos[j] = lb[j]
			vel[j] = 0
		case pos[j] > ub[j]:
			pos[j] = ub[j]
			vel[j] = 0
		}
	}
}

// Shrink computes the tightened bounds the hybrid driver hands to its PSO
// phase (spec §4.G): centered on incumbent at a fraction of the original
// span on each side, intersected back with the original bounds so the
// shrunken box never exceeds the model's own feasible region.
func Shrink(lb, ub, incumbent []float64, frac float64) (newLB, newUB []float64) {
	newLB = make([]float64, len(lb))
	newUB = make([]float64, len(ub))
	for j := range lb {
		span := ub[j] - lb[j]
		lo := incumbent[j] - frac*span
		hi := incumbent[j] + frac*span
		newLB[j] = math.Max(lb[j], lo)
		newUB[j] = math.Min(ub[j], hi)
		if newUB[j] < newLB[j] {
			newLB[j], newUB[j] = newUB[j], newLB[j]
		}
	}
	return newLB, newUB
}

// VelocityCap returns v_max[j] = 0.5*(ub[j]-lb[j]), the per-dimension PSO
// velocity clamp (spec §4.F).
func VelocityCap(lb, ub []float64) []float64 {
	out := make([]float64, len(lb))
	for j := range lb {
		out[j] = 0.5 * (ub[j] - lb[j])
	}
	return out
}

// ClampVelocity clamps vel into [-vmax, vmax] per dimension.
func ClampVelocity(vel, vmax []float64) {
	for j := range vel {
		if vel[j] > vmax[j] {
			vel[j] = vmax[j]
		} else if vel[j] < -vmax[j] {
			vel[j] = -vmax[j]
		}
	}
}

// Package swarm implements Particle Swarm Optimization with decaying
// inertia and wall-clip boundary handling (spec §4.F). It keeps the
// teacher's particle/population vocabulary (swarm.Particle, swarm.Population)
// but replaces the teacher's Constriction-coefficient update and
// database/sql-backed iterator with the spec's inertia-weight rule and a
// plain in-memory loop — PSO here is always single-threaded (spec §4.F, §5).
package swarm

import (
	"math"

	"github.com/yut0takagi/Optica/config"
	"github.com/yut0takagi/Optica/fitness"
	"github.com/yut0takagi/Optica/mesh"
	"github.com/yut0takagi/Optica/model"
	"github.com/yut0takagi/Optica/rng"
)

// Result mirrors de.Result so the hybrid driver can compare the two engines
// without a conversion step.
type Result struct {
	X          []float64
	Fitness    float64
	Iterations int
}

// Particle is one swarm member: current position/velocity plus its personal
// best.
type Particle struct {
	Pos   []float64
	Vel   []float64
	Best  []float64
	BestF float64
}

// Population is the whole swarm plus the bookkeeping needed for the inertia
// decay and the global best.
type Population struct {
	Particles []Particle
	GBest     []float64
	GBestF    float64
	Inertia   float64
	VMax      []float64
	LB, UB    []float64
}

// NewPopulation builds and evaluates an initial swarm of n particles inside
// [lb, ub].
func NewPopulation(n int, lb, ub []float64, m *model.Model, src *rng.Source) *Population {
	dim := len(lb)
	p := &Population{
		Particles: make([]Particle, n),
		GBestF:    math.Inf(1),
		Inertia:   config.PSOInertiaMax,
		VMax:      mesh.VelocityCap(lb, ub),
		LB:        append([]float64(nil), lb...),
		UB:        append([]float64(nil), ub...),
	}

	for i := range p.Particles {
		pos := make([]float64, dim)
		vel := make([]float64, dim)
		for j := 0; j < dim; j++ {
			pos[j] = lb[j] + src.Float64()*(ub[j]-lb[j])
			vel[j] = (src.Float64()*2 - 1) * p.VMax[j]
		}
		f := fitness.Compute(m, pos)
		best := append([]float64(nil), pos...)
		p.Particles[i] = Particle{Pos: pos, Vel: vel, Best: best, BestF: f}
		if f < p.GBestF {
			p.GBestF = f
			p.GBest = append([]float64(nil), pos...)
		}
	}
	return p
}

// Trace is an optional per-generation hook, mirroring optica/de.Trace: called
// with the generation index and the global-best fitness after that
// generation's updates. Wiring one in (optica/record, optica/plotting, spec
// §3.A) costs nothing when absent.
type Trace func(gen int, bestFitness float64)

// Solve runs PSO against m for up to maxIter generations, stopping early if
// the global best drops below config.Tolerance (spec §4.F). trace, if
// supplied, receives one call per generation.
func Solve(m *model.Model, maxIter int, seed uint64, trace ...Trace) Result {
	var t Trace
	if len(trace) > 0 {
		t = trace[0]
	}
	src := rng.New(seed)
	pop := NewPopulation(config.NParticles, m.LB, m.UB, m, src)

	iterRun := maxIter
	for gen := 0; gen < maxIter; gen++ {
		if pop.GBestF < config.Tolerance {
			iterRun = gen
			break
		}

		for i := range pop.Particles {
			pt := &pop.Particles[i]
			for j := range pt.Pos {
				r1 := src.Float64()
				r2 := src.Float64()
				pt.Vel[j] = pop.Inertia*pt.Vel[j] +
					config.PSOCognition*r1*(pt.Best[j]-pt.Pos[j]) +
					config.PSOSocial*r2*(pop.GBest[j]-pt.Pos[j])
			}
			mesh.ClampVelocity(pt.Vel, pop.VMax)
			for j := range pt.Pos {
				pt.Pos[j] += pt.Vel[j]
			}
			mesh.WallClip(pt.Pos, pt.Vel, pop.LB, pop.UB)

			f := fitness.Compute(m, pt.Pos)
			if f < pt.BestF {
				pt.BestF = f
				copy(pt.Best, pt.Pos)
			}
			if f < pop.GBestF {
				pop.GBestF = f
				copy(pop.GBest, pt.Pos)
			}
		}

		pop.Inertia *= config.PSOInertiaDecay
		if pop.Inertia < config.PSOInertiaMin {
			pop.Inertia = config.PSOInertiaMin
		}
		iterRun = gen + 1
		if t != nil {
			t(gen, pop.GBestF)
		}
	}

	return Result{X: pop.GBest, Fitness: pop.GBestF, Iterations: iterRun}
}

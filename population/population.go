// Package population holds the flat, row-major point arrays the DE engine
// mutates in its hot loop (PSO keeps its own swarm.Population): one size*dim
// slice of coordinates plus
// one fitness-per-point slice, matching spec.md §3's explicit row-major
// requirement.
package population

import (
	"math"

	"github.com/yut0takagi/Optica/rng"
)

// Population is a flat, row-major array of n points in dim dimensions: point
// i's coordinates are Pos[i*Dim : (i+1)*Dim]. Fitness[i] caches the last
// evaluation of point i.
type Population struct {
	Dim     int
	Size    int
	Pos     []float64
	Fitness []float64
}

// New allocates an empty population of the given size and dimension; every
// fitness starts at +Inf so the first evaluation always "improves" it.
func New(size, dim int) *Population {
	p := &Population{
		Dim:     dim,
		Size:    size,
		Pos:     make([]float64, size*dim),
		Fitness: make([]float64, size),
	}
	for i := range p.Fitness {
		p.Fitness[i] = math.Inf(1)
	}
	return p
}

// NewRandom allocates a population with every point drawn uniformly from
// [lb, ub], mirroring the teacher's pop.New.
func NewRandom(size int, lb, ub []float64, src *rng.Source) *Population {
	dim := len(lb)
	p := New(size, dim)
	for i := 0; i < size; i++ {
		row := p.Row(i)
		for j := 0; j < dim; j++ {
			row[j] = lb[j] + src.Float64()*(ub[j]-lb[j])
		}
	}
	return p
}

// Row returns the mutable slice backing point i's coordinates.
func (p *Population) Row(i int) []float64 {
	return p.Pos[i*p.Dim : (i+1)*p.Dim]
}

// Best returns the index and fitness of the population's minimum-fitness
// point; ties favor the lowest index, matching the island join rule (spec
// §5).
func (p *Population) Best() (idx int, fitness float64) {
	idx = 0
	fitness = p.Fitness[0]
	for i := 1; i < p.Size; i++ {
		if p.Fitness[i] < fitness {
			idx, fitness = i, p.Fitness[i]
		}
	}
	return idx, fitness
}

// Package config collects the tunable constants shared across the solver
// engines. Values here mirror the source language's config module: plain
// consts, no dynamic config file or flag binding.
package config

// DefaultMaxIter is the iteration budget used when a caller doesn't specify
// one explicitly.
const DefaultMaxIter = 1000

// Population/swarm sizes.
const (
	PopSize    = 50
	NParticles = 50
)

// Differential evolution parameters.
const (
	DEMutation  = 0.8 // F
	DECrossover = 0.9 // CR
)

// Particle swarm parameters.
const (
	PSOCognition    = 2.0 // C1
	PSOSocial       = 2.0 // C2
	PSOInertiaMax   = 0.9
	PSOInertiaMin   = 0.4
	PSOInertiaDecay = 0.995
)

// Convergence and display tolerances.
const (
	Tolerance        = 1e-10
	DisplayTolerance = 1e-6
	// ConstraintTolerance is the absolute tolerance below which a
	// constraint (or CP epsilon threshold) is considered satisfied.
	ConstraintTolerance = 1e-9
)

// Parallel dispatch thresholds for island DE (spec §4.D/E).
const (
	ParallelMinDim  = 50
	ParallelMinIter = 200
)

// DefaultUpperBound is the bound applied to a real decision variable with no
// explicit upper bound in the model text. Spec §9 flags this as an arbitrary
// choice; it is named here so the choice is visible and overridable by
// anyone embedding this package.
const DefaultUpperBound = 1000.0

// DefaultPenaltyCoeff is the default multiplier converting constraint/CP
// violation into a fitness penalty term (spec §4.C). Overridable once, at
// first use, via the OPTICA_PENALTY environment variable — see
// optica/fitness.PenaltyCoeff.
const DefaultPenaltyCoeff = 1e6

// PenaltyEnvVar is the environment variable consulted for overriding
// DefaultPenaltyCoeff.
const PenaltyEnvVar = "OPTICA_PENALTY"

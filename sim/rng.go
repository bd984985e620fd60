package sim

import (
	"hash/fnv"
	"math/rand"
)

// PartitionedRNG provides isolated RNG streams per subsystem so that
// deriving a new consumer of randomness never perturbs another
// subsystem's draws.
type PartitionedRNG struct {
	masterSeed int64
	subsystems map[string]*rand.Rand
}

// NewPartitionedRNG creates a partitioned RNG rooted at masterSeed.
func NewPartitionedRNG(masterSeed int64) *PartitionedRNG {
	return &PartitionedRNG{
		masterSeed: masterSeed,
		subsystems: make(map[string]*rand.Rand),
	}
}

// ForSubsystem returns the RNG for the named subsystem, creating it
// lazily and deterministically from the master seed. Repeated calls with
// the same name return the same stream.
func (p *PartitionedRNG) ForSubsystem(name string) *rand.Rand {
	if rng, ok := p.subsystems[name]; ok {
		return rng
	}
	rng := rand.New(rand.NewSource(p.deriveSeed(name)))
	p.subsystems[name] = rng
	return rng
}

// deriveSeed XORs the master seed with an FNV-1a hash of the subsystem
// name, so subsystem seeds are order-independent of call sequence.
func (p *PartitionedRNG) deriveSeed(name string) int64 {
	h := fnv.New64a()
	h.Write([]byte(name))
	return p.masterSeed ^ int64(h.Sum64())
}

// Subsystem name constants used across the simulator.
const (
	SubsystemWorkload  = "workload"
	SubsystemDurations = "durations"
	SubsystemSizes     = "sizes"
	SubsystemModels    = "models"
)

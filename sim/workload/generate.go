package workload

import (
	"math"
	"sort"
	"strconv"

	"github.com/clossim/clossim/sim"
)

// GenerateConfig parameters a synthetic workload: job count, mean
// interarrival gap, and discrete CDFs for duration and size sampling.
type GenerateConfig struct {
	JobCount     int
	ArrivalRate  float64 // mean interarrival ticks
	Durations    []int64
	CDFDurations []float64
	Sizes        []int
	CDFSizes     []float64
	ModelTypes   []string
}

// Generate produces a synthetic set of jobs using the RNG's workload,
// durations, sizes, and models subsystem streams, so that regenerating
// with the same seed reproduces the identical workload.
func Generate(cfg GenerateConfig, rng *sim.PartitionedRNG) sim.Jobs {
	jobs := make(sim.Jobs, cfg.JobCount)
	arrivals := generateStartTimes(cfg.JobCount, cfg.ArrivalRate, rng.ForSubsystem(sim.SubsystemWorkload))

	durationRNG := rng.ForSubsystem(sim.SubsystemDurations)
	sizeRNG := rng.ForSubsystem(sim.SubsystemSizes)
	modelRNG := rng.ForSubsystem(sim.SubsystemModels)

	for i := 0; i < cfg.JobCount; i++ {
		name := strconv.Itoa(i + 1)
		duration := sampleFromCDF(cfg.Durations, cfg.CDFDurations, durationRNG)
		size := sampleFromCDFInt(cfg.Sizes, cfg.CDFSizes, sizeRNG)
		model := cfg.ModelTypes[modelRNG.Intn(len(cfg.ModelTypes))]
		jobs[name] = &sim.Job{
			Name:        name,
			ArrivalTime: arrivals[i],
			Duration:    duration,
			Size:        size,
			ModelType:   model,
			State:       sim.JobWaiting,
		}
	}
	return jobs
}

// generateStartTimes samples N geometric interarrival gaps with mean
// arrivalRate and returns their cumulative sum as absolute arrival times.
func generateStartTimes(n int, arrivalRate float64, rng interface{ Float64() float64 }) []int64 {
	p := 1 / arrivalRate
	times := make([]int64, n)
	var cum int64
	for i := 0; i < n; i++ {
		cum += geometric(p, rng)
		times[i] = cum
	}
	return times
}

// geometric draws one sample from the geometric distribution with
// success probability p (the number of trials up to and including the
// first success, so values start at 1 and the mean is 1/p), via
// inverse-CDF on a uniform draw.
func geometric(p float64, rng interface{ Float64() float64 }) int64 {
	u := rng.Float64()
	if u >= 1 {
		u = 0.999999999
	}
	return int64(math.Floor(math.Log(1-u)/math.Log(1-p))) + 1
}

// sampleFromCDF draws one value from a discrete CDF (values, cdfValues),
// picking the first value whose cumulative probability exceeds the draw.
func sampleFromCDF(values []int64, cdfValues []float64, rng interface{ Float64() float64 }) int64 {
	u := rng.Float64()
	idx := sort.SearchFloat64s(cdfValues, u)
	if idx >= len(values) {
		idx = len(values) - 1
	}
	return values[idx]
}

func sampleFromCDFInt(values []int, cdfValues []float64, rng interface{ Float64() float64 }) int {
	u := rng.Float64()
	idx := sort.SearchFloat64s(cdfValues, u)
	if idx >= len(values) {
		idx = len(values) - 1
	}
	return values[idx]
}

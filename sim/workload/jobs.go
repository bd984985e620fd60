// Package workload generates synthetic training-job workloads and
// loads/saves the Jobs JSON interchange format.
package workload

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/clossim/clossim/sim"
)

// requiredJobFields are the keys every Jobs JSON record must carry; a
// record missing one is malformed workload input (spec §7b) and aborts
// the load with a descriptive error rather than silently zero-filling
// the missing field.
var requiredJobFields = []string{"arrival_time", "duration", "size", "model_type"}

// LoadJobs reads a Jobs JSON file: a name-keyed object of job records.
func LoadJobs(path string) (sim.Jobs, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading jobs file %s: %w", path, err)
	}
	var raw map[string]map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing jobs file %s: %w", path, err)
	}

	jobs := make(sim.Jobs, len(raw))
	for name, fields := range raw {
		for _, key := range requiredJobFields {
			if _, ok := fields[key]; !ok {
				return nil, fmt.Errorf("job %q: missing required field %q", name, key)
			}
		}
		record, err := json.Marshal(fields)
		if err != nil {
			return nil, fmt.Errorf("job %q: re-encoding fields: %w", name, err)
		}
		var j sim.Job
		if err := json.Unmarshal(record, &j); err != nil {
			return nil, fmt.Errorf("job %q: %w", name, err)
		}
		j.Name = name
		j.State = sim.JobWaiting
		jobs[name] = &j
	}
	return jobs, nil
}

// SaveJobs writes jobs to path as Jobs JSON.
func SaveJobs(path string, jobs sim.Jobs) error {
	data, err := json.MarshalIndent(jobs, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding jobs: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing jobs file %s: %w", path, err)
	}
	return nil
}

package sim

// JobState is the lifecycle state of a training job.
type JobState string

const (
	JobWaiting JobState = "waiting"
	JobRunning JobState = "running"
	JobEnded   JobState = "ended"
)

// Job is a single training job submitted to the cluster.
type Job struct {
	Name        string   `json:"-"`
	ArrivalTime int64    `json:"arrival_time"`
	Duration    int64    `json:"duration"`
	Size        int      `json:"size"`
	ModelType   string   `json:"model_type"`
	State       JobState `json:"-"`
}

// Jobs is a name-keyed collection, the shape of the Jobs JSON interface.
type Jobs map[string]*Job

// Validate checks that every job references a known model type.
func (js Jobs) Validate(table ModelTable) error {
	for name, j := range js {
		if _, ok := table[j.ModelType]; !ok {
			return &MalformedWorkloadError{Job: name, ModelType: j.ModelType}
		}
	}
	return nil
}

// MalformedWorkloadError reports an unknown model_type reference; loading
// a workload with one is fatal.
type MalformedWorkloadError struct {
	Job       string
	ModelType string
}

func (e *MalformedWorkloadError) Error() string {
	return "job " + e.Job + ": unknown model_type " + e.ModelType
}

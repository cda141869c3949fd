package probe

import "time"

// Config holds configuration for a probe run.
type Config struct {
	BaseURL string        // Base URL of the service
	Workers int           // Number of concurrent workers
	Timeout time.Duration // HTTP request timeout
	Verbose bool          // Log every check
}

// Stats holds probe run statistics.
type Stats struct {
	RunID     string
	Checks    int
	Passed    int
	Failed    int
	StartTime time.Time
	EndTime   time.Time
	Duration  time.Duration
	Failures  []Failure
}

// Failure records one check that did not match the expected answer.
type Failure struct {
	Check string `json:"check"`
	Path  string `json:"path"`
	Err   string `json:"error"`
}

// check is one request and the verification of its response body.
type check struct {
	name   string
	path   string
	verify func(body []byte) error
}

package metrics

import "time"

// JobCompleted records a successful job completion.
func JobCompleted(jobType string, duration time.Duration) {
	JobsTotal.WithLabelValues(jobType, "completed").Inc()
	JobDuration.WithLabelValues(jobType).Observe(duration.Seconds())
}

// JobFailed records a job that will not be retried.
func JobFailed(jobType string) {
	JobsTotal.WithLabelValues(jobType, "failed").Inc()
}

// JobDropped records a job rejected because the queue was full.
func JobDropped(jobType string) {
	JobsTotal.WithLabelValues(jobType, "dropped").Inc()
}

// JobRetried records a job retry attempt.
func JobRetried(jobType string) {
	JobRetriesTotal.WithLabelValues(jobType).Inc()
}

// QueueDepth records the number of queued jobs.
func QueueDepth(n int) {
	JobQueueDepth.Set(float64(n))
}

package worker

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// Job type constants - these must match the JobHandler.Type() values
const (
	JobTypeWarmThumbnail = "warm_thumbnail"
)

// WarmThumbnailPayload is the payload for thumbnail warm-up jobs.
type WarmThumbnailPayload struct {
	CustomerID string `json:"customer_id"`
}

// EnqueueJob marshals payload and queues a job of the given type.
func (w *Worker) EnqueueJob(jobType string, payload any) (uuid.UUID, error) {
	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		return uuid.Nil, fmt.Errorf("marshal payload: %w", err)
	}

	job := Job{
		ID:      uuid.New(),
		Type:    jobType,
		Payload: payloadJSON,
	}
	if err := w.enqueue(job); err != nil {
		return uuid.Nil, fmt.Errorf("enqueue job: %w", err)
	}
	return job.ID, nil
}

// EnqueueWarmThumbnails queues a thumbnail warm-up for each customer. It
// stops at the first failure, typically a full queue, and returns how many
// jobs were queued.
func (w *Worker) EnqueueWarmThumbnails(customerIDs []string) (int, error) {
	for i, id := range customerIDs {
		if _, err := w.EnqueueJob(JobTypeWarmThumbnail, WarmThumbnailPayload{CustomerID: id}); err != nil {
			return i, err
		}
	}
	return len(customerIDs), nil
}

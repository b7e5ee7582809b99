package jobs

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the queue background ledger jobs run on.
	QueueDefault = "default"
	// TaskCapitalIntegrity replays the capital adjustment log against the stored balances.
	TaskCapitalIntegrity = "ledger:capital_integrity"
)

// CapitalIntegrityPayload describes one integrity run.
type CapitalIntegrityPayload struct {
	Trigger     string    `json:"trigger"` // "cron" or "manual"
	RequestedAt time.Time `json:"requestedAt"`
}

// NewCapitalIntegrityTask constructs the integrity task.
func NewCapitalIntegrityTask(payload CapitalIntegrityPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskCapitalIntegrity, data, asynq.Queue(QueueDefault)), nil
}

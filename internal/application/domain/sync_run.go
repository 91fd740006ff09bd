package domain

import "time"

// SyncRunStatus marks how a sync run ended
type SyncRunStatus string

const (
	SyncRunSuccess SyncRunStatus = "success"
	SyncRunFailed  SyncRunStatus = "failed"
)

// SyncRun records one execution of the mailbox enrichment pipeline
type SyncRun struct {
	ID         string        `json:"id" gorm:"primaryKey"`
	UserID     string        `json:"user_id" gorm:"index;not null"`
	StartedAt  time.Time     `json:"started_at"`
	FinishedAt time.Time     `json:"finished_at"`
	Processed  int           `json:"processed"` // interactions recorded this run
	Skipped    int           `json:"skipped"`   // duplicates, undecodable or unusable messages
	Status     SyncRunStatus `json:"status"`
	Error      string        `json:"error,omitempty"`
	CreatedAt  time.Time     `json:"created_at"`
}

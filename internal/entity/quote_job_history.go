package entity

import (
	"database/sql"
	"time"

	"gorm.io/datatypes"
)

type QuoteJobStatus string

const (
	QuoteJobRunning            QuoteJobStatus = "running"
	QuoteJobCompleted          QuoteJobStatus = "completed"
	QuoteJobCompletedWithError QuoteJobStatus = "completed_with_errors"
)

// QuoteJobHistory records one run of a quote-update routine; Details holds
// per-symbol failure messages as a JSON object.
type QuoteJobHistory struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Routine     string         `gorm:"not null" json:"routine"`
	Status      QuoteJobStatus `gorm:"not null" json:"status"`
	StartedAt   time.Time      `gorm:"not null" json:"started_at"`
	CompletedAt sql.NullTime   `json:"completed_at"`
	Details     datatypes.JSON `json:"details"`
}

func (QuoteJobHistory) TableName() string {
	return "quote_job_histories"
}

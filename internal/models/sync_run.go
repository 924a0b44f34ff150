package models

import (
	"time"

	"gorm.io/datatypes"
)

// SyncRun is the audit row written after every delta-sync invocation,
// successful or not. One row per invocation, never updated.
type SyncRun struct {
	ID         string         `gorm:"primaryKey;type:text;comment:run uuid" json:"id"`
	InstanceID string         `gorm:"type:text;index;not null;comment:helpdesk instance" json:"instance_id"`
	Kind       string         `gorm:"type:text;not null;comment:delta/staff" json:"kind"`
	StartedAt  time.Time      `gorm:"type:timestamptz;not null" json:"started_at"`
	FinishedAt time.Time      `gorm:"type:timestamptz;not null" json:"finished_at"`
	Pages      int            `gorm:"not null;default:0" json:"pages"`
	Synced     int            `gorm:"not null;default:0;comment:tickets written" json:"synced"`
	HasMore    bool           `gorm:"not null;default:false" json:"has_more"`
	Watermark  int64          `gorm:"not null;default:0;comment:cursor after the run" json:"watermark"`
	LastError  *string        `gorm:"type:text" json:"last_error"`
	StatsJSON  datatypes.JSON `gorm:"type:jsonb;comment:per-run counters" json:"stats"`
}

func (SyncRun) TableName() string {
	return "sync_runs"
}

package models

import "time"

// SyncStatus is the durable delta-sync cursor, one row per instance.
// LastSyncTimestamp is the watermark (seconds since epoch) the next
// incremental fetch starts from; it only ever moves forward.
type SyncStatus struct {
	InstanceID        string    `gorm:"primaryKey;type:text;comment:helpdesk instance" json:"instance_id"`
	LastSyncTimestamp int64     `gorm:"not null;comment:watermark in epoch seconds" json:"last_sync_timestamp"`
	LastSyncDate      time.Time `gorm:"type:timestamptz;comment:display timestamp of last advance" json:"last_sync_date"`
	TicketCount       int64     `gorm:"not null;default:0;comment:cached ticket count" json:"ticket_count"`
}

func (SyncStatus) TableName() string {
	return "sync_status"
}

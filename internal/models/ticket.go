package models

import (
	"time"

	"gorm.io/datatypes"
)

// Ticket mirrors one helpdesk ticket for one instance. Rows are only ever
// inserted or overwritten by the sync path, never deleted.
type Ticket struct {
	ID          int64          `gorm:"primaryKey;autoIncrement:false;comment:remote ticket id" json:"id"`
	InstanceID  string         `gorm:"primaryKey;type:text;comment:helpdesk instance" json:"instance_id"`
	Subject     string         `gorm:"type:text;comment:ticket subject" json:"subject"`
	Status      string         `gorm:"type:text;index;comment:new/open/pending/hold/solved/closed/deleted/spam" json:"status"`
	CreatedAt   *time.Time     `gorm:"type:timestamptz;index;comment:remote creation time" json:"created_at"`
	UpdatedAt   *time.Time     `gorm:"type:timestamptz;comment:remote update time" json:"updated_at"`
	BrandName   string         `gorm:"type:text;comment:resolved brand display name" json:"brand_name"`
	Channel     string         `gorm:"type:text;comment:delivery channel" json:"channel"`
	MetricsJSON datatypes.JSON `gorm:"type:jsonb;comment:reply/resolution time facts" json:"metrics"`
	AssigneeID  *int64         `gorm:"index;comment:assigned agent id" json:"assignee_id"`
	LastSeenAt  time.Time      `gorm:"type:timestamptz;not null;comment:last sync touch" json:"last_seen_at"`
}

func (Ticket) TableName() string {
	return "tickets"
}

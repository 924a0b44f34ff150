package models

import "time"

// User is a helpdesk agent or admin. The delta sync upserts the partial
// fields it sees on ticket pages; the staff sync fills in the photo.
type User struct {
	ID         int64     `gorm:"primaryKey;autoIncrement:false;comment:remote user id" json:"id"`
	InstanceID string    `gorm:"primaryKey;type:text;comment:helpdesk instance" json:"instance_id"`
	Name       string    `gorm:"type:text;comment:display name" json:"name"`
	Email      string    `gorm:"type:text;index;comment:login email" json:"email"`
	Role       string    `gorm:"type:text;comment:agent/admin/end-user" json:"role"`
	Active     bool      `gorm:"not null;default:true;comment:account active" json:"active"`
	PhotoURL   *string   `gorm:"type:text;comment:avatar url" json:"photo_url"`
	LastSeenAt time.Time `gorm:"type:timestamptz;not null;comment:last sync touch" json:"last_seen_at"`
}

func (User) TableName() string {
	return "users"
}

package zendesk

import (
	"encoding/json"
	"time"
)

// IncrementalPage is one page of the incremental ticket export, with the
// users/metric_sets/brands sideloads. Count reaching the page-size ceiling
// (1000) together with a non-zero EndTime signals more data.
type IncrementalPage struct {
	Tickets    []RawTicket `json:"tickets"`
	Users      []RawUser   `json:"users"`
	Brands     []Brand     `json:"brands"`
	MetricSets []MetricSet `json:"metric_sets"`
	Count      int         `json:"count"`
	EndTime    int64       `json:"end_time"`
	NextPage   string      `json:"next_page"`
}

type RawTicket struct {
	ID         int64      `json:"id"`
	Subject    string     `json:"subject"`
	Status     string     `json:"status"`
	CreatedAt  *time.Time `json:"created_at"`
	UpdatedAt  *time.Time `json:"updated_at"`
	BrandID    *int64     `json:"brand_id"`
	AssigneeID *int64     `json:"assignee_id"`
	Via        *Via       `json:"via"`
}

type Via struct {
	Channel string `json:"channel"`
}

type RawUser struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	Active bool   `json:"active"`
}

type Brand struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// MetricSet keeps the whole metric object as raw JSON so the reply-time and
// resolution-time facts land in the tickets table unmodified, while still
// exposing the ticket id it belongs to.
type MetricSet struct {
	TicketID int64
	Raw      json.RawMessage
}

func (m *MetricSet) UnmarshalJSON(data []byte) error {
	var probe struct {
		TicketID int64 `json:"ticket_id"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return err
	}
	m.TicketID = probe.TicketID
	m.Raw = append(m.Raw[:0], data...)
	return nil
}

func (m MetricSet) MarshalJSON() ([]byte, error) {
	if len(m.Raw) == 0 {
		return []byte("null"), nil
	}
	return m.Raw, nil
}

// StaffPage is one page of the full user roster endpoint.
type StaffPage struct {
	Users    []StaffUser `json:"users"`
	Count    int         `json:"count"`
	NextPage string      `json:"next_page"`
}

type StaffUser struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	Active bool   `json:"active"`
	Photo  *Photo `json:"photo"`
}

type Photo struct {
	ContentURL string `json:"content_url"`
}

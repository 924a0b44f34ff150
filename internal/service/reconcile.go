package service

import (
	"time"

	"gorm.io/datatypes"

	"beezen/internal/client/zendesk"
	"beezen/internal/models"
)

// Sentinel labels for lookups that cannot be resolved on a page. A missing
// brand or channel is normal data, never an error.
const (
	BrandUnknown   = "Inconnu"
	ChannelUnknown = "autre"
)

// reconcilePage joins a page's brand and metric sideloads onto its raw
// tickets, producing fully populated rows ready for the upsert writer.
func reconcilePage(instanceID string, page *zendesk.IncrementalPage, now time.Time) ([]models.Ticket, []models.User) {
	brandNames := make(map[int64]string, len(page.Brands))
	for _, brand := range page.Brands {
		brandNames[brand.ID] = brand.Name
	}
	metricSets := make(map[int64]zendesk.MetricSet, len(page.MetricSets))
	for _, metric := range page.MetricSets {
		metricSets[metric.TicketID] = metric
	}

	tickets := make([]models.Ticket, 0, len(page.Tickets))
	for _, raw := range page.Tickets {
		ticket := models.Ticket{
			ID:         raw.ID,
			InstanceID: instanceID,
			Subject:    raw.Subject,
			Status:     raw.Status,
			CreatedAt:  raw.CreatedAt,
			UpdatedAt:  raw.UpdatedAt,
			BrandName:  BrandUnknown,
			Channel:    ChannelUnknown,
			AssigneeID: raw.AssigneeID,
			LastSeenAt: now,
		}
		if raw.BrandID != nil {
			if name, ok := brandNames[*raw.BrandID]; ok {
				ticket.BrandName = name
			}
		}
		if raw.Via != nil && raw.Via.Channel != "" {
			ticket.Channel = raw.Via.Channel
		}
		if metric, ok := metricSets[raw.ID]; ok {
			ticket.MetricsJSON = datatypes.JSON(metric.Raw)
		}
		tickets = append(tickets, ticket)
	}

	users := make([]models.User, 0, len(page.Users))
	for _, raw := range page.Users {
		users = append(users, models.User{
			ID:         raw.ID,
			InstanceID: instanceID,
			Name:       raw.Name,
			Email:      raw.Email,
			Role:       raw.Role,
			Active:     raw.Active,
			LastSeenAt: now,
		})
	}

	return tickets, users
}

// dedupeTickets keeps the last occurrence of each ticket id so a batch
// insert never carries two rows for the same primary key. The incremental
// export can repeat a ticket inside one page when it changed mid-export.
func dedupeTickets(items []models.Ticket) []models.Ticket {
	if len(items) < 2 {
		return items
	}
	index := make(map[int64]int, len(items))
	out := make([]models.Ticket, 0, len(items))
	for _, item := range items {
		if at, ok := index[item.ID]; ok {
			out[at] = item
			continue
		}
		index[item.ID] = len(out)
		out = append(out, item)
	}
	return out
}

func dedupeUsers(items []models.User) []models.User {
	if len(items) < 2 {
		return items
	}
	index := make(map[int64]int, len(items))
	out := make([]models.User, 0, len(items))
	for _, item := range items {
		if at, ok := index[item.ID]; ok {
			out[at] = item
			continue
		}
		index[item.ID] = len(out)
		out = append(out, item)
	}
	return out
}

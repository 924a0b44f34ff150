package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"beezen/internal/models"
	"beezen/internal/repository"
)

// StatsService computes the overview aggregates the dashboard charts are
// built from, over the mirrored rows rather than the remote API.
type StatsService struct {
	Repo   repository.Repository
	RowCap int
}

type StatsOverview struct {
	Total     int            `json:"total"`
	Solved    int            `json:"solved"`
	ByStatus  map[string]int `json:"by_status"`
	ByBrand   map[string]int `json:"by_brand"`
	ByChannel map[string]int `json:"by_channel"`

	// Averages in minutes over tickets that carry the matching metric.
	AvgFirstReplyMinutes *decimal.Decimal `json:"avg_first_reply_minutes,omitempty"`
	AvgResolutionMinutes *decimal.Decimal `json:"avg_resolution_minutes,omitempty"`
}

type ticketMetrics struct {
	ReplyTimeInMinutes          *minutePair `json:"reply_time_in_minutes"`
	FullResolutionTimeInMinutes *minutePair `json:"full_resolution_time_in_minutes"`
}

type minutePair struct {
	Calendar *int64 `json:"calendar"`
	Business *int64 `json:"business"`
}

func (s *StatsService) Overview(ctx context.Context, instanceID string) (StatsOverview, error) {
	instanceID = strings.TrimSpace(instanceID)
	if instanceID == "" {
		return StatsOverview{}, fmt.Errorf("instance id is required")
	}
	rowCap := s.RowCap
	if rowCap <= 0 {
		rowCap = 3000
	}
	tickets, err := s.Repo.ListTickets(ctx, instanceID, rowCap)
	if err != nil {
		return StatsOverview{}, err
	}
	return summarize(tickets), nil
}

func summarize(tickets []models.Ticket) StatsOverview {
	overview := StatsOverview{
		Total:     len(tickets),
		ByStatus:  map[string]int{},
		ByBrand:   map[string]int{},
		ByChannel: map[string]int{},
	}
	replySum := decimal.Zero
	replyCount := 0
	resolutionSum := decimal.Zero
	resolutionCount := 0

	for _, ticket := range tickets {
		overview.ByStatus[ticket.Status]++
		overview.ByBrand[ticket.BrandName]++
		overview.ByChannel[ticket.Channel]++
		if ticket.Status == "solved" || ticket.Status == "closed" {
			overview.Solved++
		}
		if len(ticket.MetricsJSON) == 0 {
			continue
		}
		var metrics ticketMetrics
		if err := json.Unmarshal(ticket.MetricsJSON, &metrics); err != nil {
			continue
		}
		if v := calendarMinutes(metrics.ReplyTimeInMinutes); v != nil {
			replySum = replySum.Add(decimal.NewFromInt(*v))
			replyCount++
		}
		if v := calendarMinutes(metrics.FullResolutionTimeInMinutes); v != nil {
			resolutionSum = resolutionSum.Add(decimal.NewFromInt(*v))
			resolutionCount++
		}
	}

	if replyCount > 0 {
		avg := replySum.DivRound(decimal.NewFromInt(int64(replyCount)), 1)
		overview.AvgFirstReplyMinutes = &avg
	}
	if resolutionCount > 0 {
		avg := resolutionSum.DivRound(decimal.NewFromInt(int64(resolutionCount)), 1)
		overview.AvgResolutionMinutes = &avg
	}
	return overview
}

func calendarMinutes(pair *minutePair) *int64 {
	if pair == nil {
		return nil
	}
	return pair.Calendar
}

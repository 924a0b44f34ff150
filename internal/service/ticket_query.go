package service

import (
	"context"
	"fmt"
	"strings"

	"beezen/internal/models"
	"beezen/internal/repository"
)

// TicketQueryService serves the mirrored data back to the dashboard.
type TicketQueryService struct {
	Repo   repository.Repository
	RowCap int
}

// TicketListing is the get-tickets payload: newest-created-first tickets
// (capped) plus every known user for assignee resolution in the UI.
type TicketListing struct {
	Tickets []models.Ticket `json:"tickets"`
	Users   []models.User   `json:"users"`
}

func (s *TicketQueryService) List(ctx context.Context, instanceID string) (TicketListing, error) {
	instanceID = strings.TrimSpace(instanceID)
	if instanceID == "" {
		return TicketListing{}, fmt.Errorf("instance id is required")
	}
	rowCap := s.RowCap
	if rowCap <= 0 {
		rowCap = 3000
	}
	tickets, err := s.Repo.ListTickets(ctx, instanceID, rowCap)
	if err != nil {
		return TicketListing{}, err
	}
	users, err := s.Repo.ListUsers(ctx, instanceID)
	if err != nil {
		return TicketListing{}, err
	}
	if tickets == nil {
		tickets = []models.Ticket{}
	}
	if users == nil {
		users = []models.User{}
	}
	return TicketListing{Tickets: tickets, Users: users}, nil
}

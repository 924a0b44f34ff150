package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"beezen/internal/client/zendesk"
	"beezen/internal/models"
	"beezen/internal/repository"
)

// StaffFetcher is the roster endpoint's transport, satisfied by
// *zendesk.Client.
type StaffFetcher interface {
	FetchStaff(ctx context.Context, domain string, creds zendesk.Credentials) (*zendesk.StaffPage, error)
}

// StaffSyncService refreshes the full agent/admin roster in one page.
// Unlike the delta sync it has no cursor: the roster endpoint is a plain
// snapshot, and it is the only source of agent photos.
type StaffSyncService struct {
	Store   repository.Repository
	Zendesk StaffFetcher
	Logger  *zap.Logger
	Cache   *ResultCache
	Now     NowFunc
}

type StaffSyncResult struct {
	Count int `json:"count"`
}

func (s *StaffSyncService) Sync(ctx context.Context, instanceID, domain string, creds zendesk.Credentials) (StaffSyncResult, error) {
	if s.Zendesk == nil {
		return StaffSyncResult{}, fmt.Errorf("zendesk client is nil")
	}
	instanceID = strings.TrimSpace(instanceID)
	if instanceID == "" {
		return StaffSyncResult{}, fmt.Errorf("instance id is required")
	}

	page, err := s.Zendesk.FetchStaff(ctx, domain, creds)
	if err != nil {
		return StaffSyncResult{}, err
	}

	now := s.Now.clock()
	staff := make([]models.User, 0, len(page.Users))
	for _, raw := range page.Users {
		user := models.User{
			ID:         raw.ID,
			InstanceID: instanceID,
			Name:       raw.Name,
			Email:      raw.Email,
			Role:       raw.Role,
			Active:     raw.Active,
			LastSeenAt: now,
		}
		if raw.Photo != nil && raw.Photo.ContentURL != "" {
			url := raw.Photo.ContentURL
			user.PhotoURL = &url
		}
		staff = append(staff, user)
	}
	staff = dedupeUsers(staff)

	err = s.Store.InTx(ctx, func(tx *gorm.DB) error {
		return s.Store.UpsertStaffTx(ctx, tx, staff)
	})
	if err != nil {
		return StaffSyncResult{}, fmt.Errorf("persist staff roster: %w", err)
	}

	s.Cache.Invalidate(instanceID)
	if s.Logger != nil {
		s.Logger.Info("staff roster synced",
			zap.String("instance", instanceID),
			zap.Int("count", len(staff)),
		)
	}
	return StaffSyncResult{Count: len(staff)}, nil
}

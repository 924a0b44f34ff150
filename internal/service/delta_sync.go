package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"beezen/internal/client/zendesk"
	"beezen/internal/models"
	"beezen/internal/repository"
)

// defaultPageSize is the incremental export's fixed page ceiling. A page
// whose count reaches it signals more data behind the returned end_time.
const defaultPageSize = 1000

const defaultMaxPages = 10

// TicketFetcher is the remote paginator's transport, satisfied by
// *zendesk.Client and by fakes in tests.
type TicketFetcher interface {
	FetchIncrementalTickets(ctx context.Context, domain string, creds zendesk.Credentials, startTime int64) (*zendesk.IncrementalPage, error)
}

type SyncOptions struct {
	InstanceID  string
	Domain      string
	Credentials zendesk.Credentials
	// StartTime is the fallback watermark (epoch seconds) used when the
	// instance has no stored cursor. Zero means "fallback window ago".
	StartTime int64
}

type SyncResult struct {
	Synced        int    `json:"synced"`
	Users         int    `json:"users"`
	Pages         int    `json:"pages"`
	HasMore       bool   `json:"has_more"`
	LastTimestamp int64  `json:"last_timestamp"`
	TicketCount   int64  `json:"ticket_count"`
	PartialError  string `json:"partial_error,omitempty"`
}

// DeltaSyncService drives the incremental catch-up loop: read the cursor,
// fetch pages, reconcile sideloads onto tickets, upsert, and advance the
// cursor after every durably written page.
type DeltaSyncService struct {
	Store          repository.Repository
	Zendesk        TicketFetcher
	Logger         *zap.Logger
	PageSize       int
	MaxPages       int
	FallbackWindow time.Duration
	Cache          *ResultCache
	Now            NowFunc

	locks instanceLocks
}

func (s *DeltaSyncService) Sync(ctx context.Context, opts SyncOptions) (SyncResult, error) {
	if s.Zendesk == nil {
		return SyncResult{}, fmt.Errorf("zendesk client is nil")
	}
	instanceID := strings.TrimSpace(opts.InstanceID)
	if instanceID == "" {
		return SyncResult{}, fmt.Errorf("instance id is required")
	}

	if !s.locks.tryAcquire(instanceID) {
		return SyncResult{}, ErrSyncInProgress
	}
	defer s.locks.release(instanceID)

	if cached, ok := s.Cache.Get(instanceID, opts.StartTime); ok {
		return cached, nil
	}

	pageSize := s.PageSize
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	maxPages := s.MaxPages
	if maxPages <= 0 {
		maxPages = defaultMaxPages
	}

	startedAt := s.clock()
	status, err := s.Store.GetSyncStatus(ctx, instanceID)
	if err != nil {
		return SyncResult{}, fmt.Errorf("read sync cursor: %w", err)
	}
	start := opts.StartTime
	if status != nil && status.LastSyncTimestamp > 0 {
		start = status.LastSyncTimestamp
	} else if start <= 0 {
		start = startedAt.Add(-s.fallbackWindow()).Unix()
	}

	result := SyncResult{LastTimestamp: start}
	var fetchErr error
	exhausted := false

	for page := 0; page < maxPages; page++ {
		pageData, err := s.Zendesk.FetchIncrementalTickets(ctx, opts.Domain, opts.Credentials, start)
		if err != nil {
			// Stop cleanly: everything committed so far stays committed,
			// and the cursor still points at the last durable page.
			fetchErr = err
			break
		}

		now := s.clock()
		tickets, users := reconcilePage(instanceID, pageData, now)
		tickets = dedupeTickets(tickets)
		users = dedupeUsers(users)

		// The watermark never regresses, whatever end_time the remote sends.
		next := pageData.EndTime
		if next < start {
			next = start
		}

		err = s.Store.InTx(ctx, func(tx *gorm.DB) error {
			if err := s.Store.UpsertTicketsTx(ctx, tx, tickets); err != nil {
				return err
			}
			if err := s.Store.UpsertUsersTx(ctx, tx, users); err != nil {
				return err
			}
			count, err := s.Store.CountTicketsTx(ctx, tx, instanceID)
			if err != nil {
				return err
			}
			result.TicketCount = count
			return s.Store.SaveSyncStatusTx(ctx, tx, &models.SyncStatus{
				InstanceID:        instanceID,
				LastSyncTimestamp: next,
				LastSyncDate:      now,
				TicketCount:       count,
			})
		})
		if err != nil {
			err = fmt.Errorf("persist page %d: %w", page+1, err)
			s.recordRun(ctx, instanceID, startedAt, result, err)
			return result, err
		}

		result.Pages++
		result.Synced += len(tickets)
		result.Users += len(users)
		result.LastTimestamp = next

		if pageData.Count < pageSize || pageData.EndTime == 0 {
			exhausted = true
			break
		}
		start = next
	}

	if fetchErr != nil {
		result.PartialError = fetchErr.Error()
		result.HasMore = result.Pages > 0
		if s.Logger != nil {
			s.Logger.Warn("delta sync stopped early",
				zap.String("instance", instanceID),
				zap.Int("pages", result.Pages),
				zap.Error(fetchErr),
			)
		}
	} else {
		result.HasMore = !exhausted
	}

	s.recordRun(ctx, instanceID, startedAt, result, fetchErr)
	if result.PartialError == "" {
		s.Cache.Set(instanceID, opts.StartTime, result)
	}
	return result, nil
}

func (s *DeltaSyncService) clock() time.Time {
	return s.Now.clock()
}

func (s *DeltaSyncService) fallbackWindow() time.Duration {
	if s.FallbackWindow > 0 {
		return s.FallbackWindow
	}
	return 60 * 24 * time.Hour
}

func (s *DeltaSyncService) recordRun(ctx context.Context, instanceID string, startedAt time.Time, result SyncResult, runErr error) {
	run := &models.SyncRun{
		ID:         uuid.NewString(),
		InstanceID: instanceID,
		Kind:       "delta",
		StartedAt:  startedAt,
		FinishedAt: s.clock(),
		Pages:      result.Pages,
		Synced:     result.Synced,
		HasMore:    result.HasMore,
		Watermark:  result.LastTimestamp,
	}
	if runErr != nil {
		message := runErr.Error()
		run.LastError = &message
	}
	if stats, err := json.Marshal(map[string]int{
		"tickets": result.Synced,
		"users":   result.Users,
		"pages":   result.Pages,
	}); err == nil {
		run.StatsJSON = datatypes.JSON(stats)
	}
	if err := s.Store.InsertSyncRun(ctx, run); err != nil && s.Logger != nil {
		s.Logger.Warn("failed to record sync run", zap.String("instance", instanceID), zap.Error(err))
	}
}

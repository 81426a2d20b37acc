package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/lavanyasahu/CitiFix/common"
	"github.com/lavanyasahu/CitiFix/models"
	"github.com/lavanyasahu/CitiFix/store"
)

// IssueCache is the feed cache as the service sees it. *FeedCache
// implements it.
type IssueCache interface {
	Get(ctx context.Context) ([]models.Issue, bool)
	Set(ctx context.Context, issues []models.Issue)
	Invalidate(ctx context.Context)
}

type IssueService struct {
	issues store.IssueStore
	cache  IssueCache
}

// NewIssueService builds an issue service. cache may be nil.
func NewIssueService(issues store.IssueStore, cache IssueCache) *IssueService {
	return &IssueService{issues: issues, cache: cache}
}

func (s *IssueService) invalidateFeed(ctx context.Context) {
	if s.cache != nil {
		s.cache.Invalidate(ctx)
	}
}

// CreateIssueInput carries a new report. ReporterID is nil for anonymous
// reports; coordinates are independently optional.
type CreateIssueInput struct {
	Title       string
	Description string
	Category    models.IssueCategory
	Latitude    *float64
	Longitude   *float64
	ReporterID  *primitive.ObjectID
}

// CreateIssue validates the report and stores it with status pending.
func (s *IssueService) CreateIssue(ctx context.Context, in CreateIssueInput) (primitive.ObjectID, error) {
	if strings.TrimSpace(in.Title) == "" {
		return primitive.NilObjectID, fmt.Errorf("%w: title is required", common.ErrValidation)
	}
	if strings.TrimSpace(in.Description) == "" {
		return primitive.NilObjectID, fmt.Errorf("%w: description is required", common.ErrValidation)
	}
	if !in.Category.Valid() {
		return primitive.NilObjectID, fmt.Errorf("%w: unknown category %q", common.ErrValidation, in.Category)
	}

	issue := &models.Issue{
		Title:       strings.TrimSpace(in.Title),
		Description: in.Description,
		Category:    in.Category,
		Latitude:    in.Latitude,
		Longitude:   in.Longitude,
		UserID:      in.ReporterID,
		Status:      models.StatusPending,
		CreatedAt:   time.Now().UTC(),
	}

	id, err := s.issues.CreateIssue(ctx, issue)
	if err != nil {
		return primitive.NilObjectID, err
	}
	s.invalidateFeed(ctx)
	return id, nil
}

// ListIssues returns the public feed, newest first.
func (s *IssueService) ListIssues(ctx context.Context) ([]models.Issue, error) {
	if s.cache != nil {
		if issues, ok := s.cache.Get(ctx); ok {
			return issues, nil
		}
	}
	issues, err := s.issues.ListIssues(ctx)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		s.cache.Set(ctx, issues)
	}
	return issues, nil
}

func (s *IssueService) GetIssue(ctx context.Context, id primitive.ObjectID) (*models.Issue, error) {
	return s.issues.GetIssueByID(ctx, id)
}

// AddSignature appends an authority signature to the issue's audit
// trail. It does not change the issue status.
func (s *IssueService) AddSignature(ctx context.Context, actor Actor, issueID primitive.ObjectID, note string) (primitive.ObjectID, error) {
	if !actor.Role.CanSign() {
		return primitive.NilObjectID, fmt.Errorf("%w: only authorities can sign issues", common.ErrForbidden)
	}
	if _, err := s.issues.GetIssueByID(ctx, issueID); err != nil {
		return primitive.NilObjectID, err
	}
	return s.issues.AddSignature(ctx, &models.Signature{
		IssueID:     issueID,
		AuthorityID: actor.ID,
		Note:        note,
		SignedAt:    time.Now().UTC(),
	})
}

// MarkResolved records a resolution signature and moves the issue to its
// terminal resolved state. Resolving an already-resolved issue appends
// another signature and leaves the status untouched. On
// ErrPartialResolution the signature landed but the status did not;
// calling MarkResolved again retries safely.
func (s *IssueService) MarkResolved(ctx context.Context, actor Actor, issueID primitive.ObjectID, note string) (primitive.ObjectID, error) {
	if !actor.Role.CanSign() {
		return primitive.NilObjectID, fmt.Errorf("%w: only authorities can resolve issues", common.ErrForbidden)
	}
	if _, err := s.issues.GetIssueByID(ctx, issueID); err != nil {
		return primitive.NilObjectID, err
	}
	sigID, err := s.issues.ResolveIssue(ctx, issueID, actor.ID, note)
	if err != nil {
		return sigID, err
	}
	s.invalidateFeed(ctx)
	return sigID, nil
}

// Acknowledge moves a pending issue to in_progress. Resolved issues are
// terminal and cannot be reopened.
func (s *IssueService) Acknowledge(ctx context.Context, actor Actor, issueID primitive.ObjectID) error {
	if !actor.Role.CanSign() {
		return fmt.Errorf("%w: only authorities can acknowledge issues", common.ErrForbidden)
	}
	// The store does the pending check and the transition as one
	// conditional write; a resolution landing first stays resolved.
	if err := s.issues.MarkInProgress(ctx, issueID); err != nil {
		return err
	}
	s.invalidateFeed(ctx)
	return nil
}

// SetAdminNotes attaches internal notes to an issue. Admin only.
func (s *IssueService) SetAdminNotes(ctx context.Context, actor Actor, issueID primitive.ObjectID, notes string) error {
	if actor.Role != models.RoleAdmin {
		return fmt.Errorf("%w: only admins can set notes", common.ErrForbidden)
	}
	if err := s.issues.SetAdminNotes(ctx, issueID, notes); err != nil {
		return err
	}
	// Notes are part of the serialized feed, so the cached copy is stale.
	s.invalidateFeed(ctx)
	return nil
}

// GetSignatures returns the issue's audit trail, oldest first.
func (s *IssueService) GetSignatures(ctx context.Context, issueID primitive.ObjectID) ([]models.Signature, error) {
	return s.issues.SignaturesForIssue(ctx, issueID)
}

// DailyCount is one day's worth of submissions.
type DailyCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// Analytics summarizes the issue backlog.
type Analytics struct {
	TotalIssues    int                          `json:"totalIssues"`
	OpenIssues     int                          `json:"openIssues"`
	ResolvedIssues int                          `json:"resolvedIssues"`
	ByCategory     map[models.IssueCategory]int `json:"issuesByCategory"`
	ByStatus       map[models.IssueStatus]int   `json:"issuesByStatus"`
	Last7Days      []DailyCount                 `json:"last7Days"`
}

// Analytics computes counts by category and status plus submissions per
// day over the last week.
func (s *IssueService) Analytics(ctx context.Context) (*Analytics, error) {
	issues, err := s.issues.ListIssues(ctx)
	if err != nil {
		return nil, err
	}

	out := &Analytics{
		TotalIssues: len(issues),
		ByCategory:  make(map[models.IssueCategory]int),
		ByStatus:    make(map[models.IssueStatus]int),
	}
	for _, issue := range issues {
		out.ByCategory[issue.Category]++
		out.ByStatus[issue.Status]++
		if issue.Status == models.StatusResolved {
			out.ResolvedIssues++
		} else {
			out.OpenIssues++
		}
	}

	now := time.Now().UTC()
	for i := 6; i >= 0; i-- {
		day := now.AddDate(0, 0, -i)
		dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
		dayEnd := dayStart.AddDate(0, 0, 1)

		count := 0
		for _, issue := range issues {
			if !issue.CreatedAt.Before(dayStart) && issue.CreatedAt.Before(dayEnd) {
				count++
			}
		}
		out.Last7Days = append(out.Last7Days, DailyCount{
			Date:  dayStart.Format("2006-01-02"),
			Count: count,
		})
	}

	return out, nil
}

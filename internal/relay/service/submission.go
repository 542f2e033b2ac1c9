package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/kindlinghq/kindling/internal/relay/domain"
	"github.com/kindlinghq/kindling/internal/relay/store"
	"github.com/kindlinghq/kindling/pkg/idx"
)

// NewSubmission is the caller-supplied part of a submission. UserID and
// UserEmail come from the verified session, never from the payload.
type NewSubmission struct {
	Name    string `json:"name" validate:"required,max=200"`
	Message string `json:"message" validate:"required,max=4000"`
}

// SubmissionService persists form submissions.
type SubmissionService struct {
	Store    store.Store
	Logger   *slog.Logger
	validate *validator.Validate
}

func NewSubmissionService(st store.Store, logger *slog.Logger) *SubmissionService {
	return &SubmissionService{
		Store:    st,
		Logger:   logger,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// Create validates and stores a submission. Anonymous callers pass empty
// userID; the record is labeled rather than rejected.
func (s *SubmissionService) Create(ctx context.Context, in NewSubmission, userID, userEmail string) (domain.Submission, error) {
	if err := s.validate.Struct(in); err != nil {
		return domain.Submission{}, errors.Join(ErrInvalidPayload, err)
	}

	if userID == "" {
		userID = domain.AnonymousUserID
		userEmail = ""
	}

	sub := domain.Submission{
		ID:          idx.New().String(),
		Name:        in.Name,
		Message:     in.Message,
		UserID:      userID,
		UserEmail:   userEmail,
		SubmittedAt: time.Now().UTC(),
	}

	if err := s.Store.Submissions().CreateSubmission(ctx, sub); err != nil {
		return domain.Submission{}, fmt.Errorf("failed to store submission: %w", err)
	}

	s.Logger.Info("submission stored", "submission_id", sub.ID, "user_id", sub.UserID)
	return sub, nil
}

// List returns submissions newest-first.
func (s *SubmissionService) List(ctx context.Context, limit int) ([]domain.Submission, error) {
	subs, err := s.Store.Submissions().ListSubmissions(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list submissions: %w", err)
	}
	return subs, nil
}

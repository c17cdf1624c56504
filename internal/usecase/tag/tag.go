package tag

import (
	"context"
	"strings"

	"github.com/BruksfildServices01/client-followup/internal/audit"
	domain "github.com/BruksfildServices01/client-followup/internal/domain/tag"
	"github.com/BruksfildServices01/client-followup/internal/httperr"
	"github.com/BruksfildServices01/client-followup/internal/models"
)

var (
	errTagNotFound    = httperr.ErrNotFound("tag_not_found", "Tag not found")
	errClientNotFound = httperr.ErrNotFound("client_not_found", "Client not found")
	errNameTaken      = httperr.ErrConflict("tag_name_taken", "a tag with this name already exists")
)

func notFound(err error) error {
	if httperr.IsRecordNotFound(err) {
		return errTagNotFound
	}
	return err
}

func optional(id string) *string {
	if id == "" {
		return nil
	}
	return &id
}

// Service groups the tag registry operations; they share one repository
// and dispatcher.
type Service struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewService(repo domain.Repository, audit *audit.Dispatcher) *Service {
	return &Service{repo: repo, audit: audit}
}

func (s *Service) List(ctx context.Context) ([]domain.WithCount, error) {
	return s.repo.ListWithCounts(ctx)
}

type CreateTagInput struct {
	Name      string
	Color     *string
	CreatedBy string
}

func (s *Service) Create(ctx context.Context, in CreateTagInput) (*models.Tag, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, httperr.ErrValidation("invalid_name", "tag name is required")
	}

	taken, err := s.repo.NameTaken(ctx, name, "")
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, errNameTaken
	}

	t := &models.Tag{Name: name, Color: in.Color, CreatedBy: in.CreatedBy}
	if err := s.repo.Create(ctx, t); err != nil {
		return nil, err
	}

	s.audit.Dispatch(audit.Event{
		UserID:   optional(in.CreatedBy),
		Action:   "tag_created",
		Entity:   "tag",
		EntityID: audit.Ptr(t.ID),
	})
	return t, nil
}

type UpdateTagInput struct {
	ID     string
	Name   *string
	Color  *string
	UserID string
}

func (s *Service) Update(ctx context.Context, in UpdateTagInput) (*models.Tag, error) {
	t, err := s.repo.GetByID(ctx, in.ID)
	if err != nil {
		return nil, notFound(err)
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, httperr.ErrValidation("invalid_name", "tag name is required")
		}
		taken, err := s.repo.NameTaken(ctx, name, t.ID)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, errNameTaken
		}
		t.Name = name
	}
	if in.Color != nil {
		t.Color = in.Color
	}

	if err := s.repo.Update(ctx, t); err != nil {
		return nil, err
	}

	s.audit.Dispatch(audit.Event{
		UserID:   optional(in.UserID),
		Action:   "tag_updated",
		Entity:   "tag",
		EntityID: audit.Ptr(t.ID),
	})
	return t, nil
}

// Delete removes the tag and its client links. Interaction snapshots keep
// their copy of the tag.
func (s *Service) Delete(ctx context.Context, id, userID string) error {
	err := s.repo.Transaction(ctx, func(tx domain.Repository) error {
		if _, err := tx.GetByID(ctx, id); err != nil {
			return notFound(err)
		}
		return notFound(tx.Delete(ctx, id))
	})
	if err != nil {
		return err
	}

	s.audit.Dispatch(audit.Event{
		UserID:   optional(userID),
		Action:   "tag_deleted",
		Entity:   "tag",
		EntityID: audit.Ptr(id),
	})
	return nil
}

// LinkClient is idempotent.
func (s *Service) LinkClient(ctx context.Context, tagID, clientID string) error {
	if _, err := s.repo.GetByID(ctx, tagID); err != nil {
		return notFound(err)
	}

	ok, err := s.repo.ClientExists(ctx, clientID)
	if err != nil {
		return err
	}
	if !ok {
		return errClientNotFound
	}

	return s.repo.Link(ctx, tagID, clientID)
}

// UnlinkClient is idempotent; a missing link is not an error.
func (s *Service) UnlinkClient(ctx context.Context, tagID, clientID string) error {
	return s.repo.Unlink(ctx, tagID, clientID)
}

package user

import (
	"context"
	"strings"

	"github.com/BruksfildServices01/client-followup/internal/audit"
	domain "github.com/BruksfildServices01/client-followup/internal/domain/user"
	"github.com/BruksfildServices01/client-followup/internal/httperr"
	"github.com/BruksfildServices01/client-followup/internal/models"
	"github.com/BruksfildServices01/client-followup/internal/password"
	"github.com/BruksfildServices01/client-followup/internal/session"
	"github.com/BruksfildServices01/client-followup/internal/validators"
)

const minPasswordLength = 8

var (
	errUserNotFound = httperr.ErrNotFound("user_not_found", "User not found")
	errEmailTaken   = httperr.ErrConflict("email_taken", "a user with this email already exists")
)

func notFound(err error) error {
	if httperr.IsRecordNotFound(err) {
		return errUserNotFound
	}
	return err
}

func optional(id string) *string {
	if id == "" {
		return nil
	}
	return &id
}

func validatePassword(pw string) error {
	if len(pw) < minPasswordLength {
		return httperr.ErrValidation("weak_password", "password must have at least 8 characters")
	}
	return nil
}

// Directory owns users and their credentials.
type Directory struct {
	repo  domain.Repository
	bans  *session.BanList
	audit *audit.Dispatcher
}

func NewDirectory(
	repo domain.Repository,
	bans *session.BanList,
	audit *audit.Dispatcher,
) *Directory {
	return &Directory{
		repo:  repo,
		bans:  bans,
		audit: audit,
	}
}

// ======================================================
// QUERIES
// ======================================================

func (d *Directory) List(ctx context.Context) ([]domain.Summary, error) {
	return d.repo.ListWithCounts(ctx)
}

func (d *Directory) Get(ctx context.Context, id string) (*domain.Detail, error) {
	detail, err := d.repo.GetDetail(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	return detail, nil
}

// ======================================================
// CREATE / UPDATE
// ======================================================

type CreateUserInput struct {
	Name     string
	Email    string
	Password string
	ActorID  string
}

func (d *Directory) Create(ctx context.Context, in CreateUserInput) (*models.User, error) {
	name := strings.TrimSpace(in.Name)
	email := validators.NormalizeEmail(in.Email)
	if name == "" || email == "" {
		return nil, httperr.ErrValidation("invalid_request", "name and email are required")
	}
	if err := validatePassword(in.Password); err != nil {
		return nil, err
	}

	hash, err := password.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	u := &models.User{Name: name, Email: email}

	err = d.repo.Transaction(ctx, func(tx domain.Repository) error {
		taken, err := tx.EmailTaken(ctx, email, "")
		if err != nil {
			return err
		}
		if taken {
			return errEmailTaken
		}

		if err := tx.Create(ctx, u); err != nil {
			if httperr.IsExclusionConflict(err) {
				return errEmailTaken
			}
			return err
		}

		return tx.SaveCredential(ctx, &models.Account{
			UserID:     u.ID,
			ProviderID: models.ProviderCredential,
			Password:   hash,
		})
	})
	if err != nil {
		return nil, err
	}

	d.audit.Dispatch(audit.Event{
		UserID:   optional(in.ActorID),
		Action:   "user_created",
		Entity:   "user",
		EntityID: audit.Ptr(u.ID),
	})
	return u, nil
}

type UpdateUserInput struct {
	ID      string
	Name    *string
	Email   *string
	ActorID string
}

func (d *Directory) Update(ctx context.Context, in UpdateUserInput) (*models.User, error) {
	u, err := d.repo.GetByID(ctx, in.ID)
	if err != nil {
		return nil, notFound(err)
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, httperr.ErrValidation("invalid_request", "name is required")
		}
		u.Name = name
	}

	if in.Email != nil {
		email := validators.NormalizeEmail(*in.Email)
		taken, err := d.repo.EmailTaken(ctx, email, u.ID)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, errEmailTaken
		}
		u.Email = email
	}

	if err := d.repo.Update(ctx, u); err != nil {
		if httperr.IsExclusionConflict(err) {
			return nil, errEmailTaken
		}
		return nil, err
	}

	d.audit.Dispatch(audit.Event{
		UserID:   optional(in.ActorID),
		Action:   "user_updated",
		Entity:   "user",
		EntityID: audit.Ptr(u.ID),
	})
	return u, nil
}

// ResetPassword replaces the stored credential, creating it if absent.
func (d *Directory) ResetPassword(ctx context.Context, userID, newPassword, actorID string) error {
	if err := validatePassword(newPassword); err != nil {
		return err
	}

	if _, err := d.repo.GetByID(ctx, userID); err != nil {
		return notFound(err)
	}

	hash, err := password.Hash(newPassword)
	if err != nil {
		return err
	}

	acc, err := d.repo.GetCredential(ctx, userID)
	if err != nil {
		if !httperr.IsRecordNotFound(err) {
			return err
		}
		acc = &models.Account{UserID: userID, ProviderID: models.ProviderCredential}
	}
	acc.Password = hash

	if err := d.repo.SaveCredential(ctx, acc); err != nil {
		return err
	}

	d.audit.Dispatch(audit.Event{
		UserID:   optional(actorID),
		Action:   "user_password_reset",
		Entity:   "user",
		EntityID: audit.Ptr(userID),
	})
	return nil
}

// ======================================================
// DEACTIVATE / REACTIVATE
// ======================================================

// Deactivate bans the user. Clients and appointments stay assigned to them.
func (d *Directory) Deactivate(ctx context.Context, userID string, reason *string, actorID string) (*models.User, error) {
	if err := domain.CanDeactivate(actorID, userID); err != nil {
		return nil, err
	}

	u, err := d.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, notFound(err)
	}

	if reason != nil && strings.TrimSpace(*reason) == "" {
		reason = nil
	}
	domain.Deactivate(u, reason)

	if err := d.repo.Update(ctx, u); err != nil {
		return nil, err
	}
	d.bans.Ban(ctx, u.ID)

	d.audit.Dispatch(audit.Event{
		UserID:   optional(actorID),
		Action:   "user_deactivated",
		Entity:   "user",
		EntityID: audit.Ptr(u.ID),
		Metadata: map[string]any{"reason": reason},
	})
	return u, nil
}

func (d *Directory) Reactivate(ctx context.Context, userID, actorID string) (*models.User, error) {
	u, err := d.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, notFound(err)
	}

	domain.Reactivate(u)
	if err := d.repo.Update(ctx, u); err != nil {
		return nil, err
	}
	d.bans.Unban(ctx, u.ID)

	d.audit.Dispatch(audit.Event{
		UserID:   optional(actorID),
		Action:   "user_reactivated",
		Entity:   "user",
		EntityID: audit.Ptr(u.ID),
	})
	return u, nil
}

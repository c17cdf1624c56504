package client

import (
	"context"

	domain "github.com/BruksfildServices01/client-followup/internal/domain/client"
	"github.com/BruksfildServices01/client-followup/internal/dto"
	"github.com/BruksfildServices01/client-followup/internal/models"
)

// ======================================================
// LIST
// ======================================================

type ListClientsInput struct {
	Page     int
	PageSize int
	Search   string
	TagIDs   []string
}

type ListClients struct {
	repo domain.Repository
}

func NewListClients(repo domain.Repository) *ListClients {
	return &ListClients{repo: repo}
}

// Execute sorts the whole filtered set by next OPEN appointment before
// paginating; the sort key is derived, not stored.
func (uc *ListClients) Execute(
	ctx context.Context,
	in ListClientsInput,
) (*dto.Page[models.Client], error) {

	page, size := dto.NormalizePage(in.Page, in.PageSize)

	clients, err := uc.repo.ListActive(ctx, domain.ListFilter{
		Search: in.Search,
		TagIDs: uniqueIDs(in.TagIDs),
	})
	if err != nil {
		return nil, err
	}

	domain.SortByNextOpenAppointment(clients)

	out := dto.NewPage(domain.Paginate(clients, page, size), int64(len(clients)), page, size)
	return &out, nil
}

// ======================================================
// GET
// ======================================================

type GetClient struct {
	repo domain.Repository
}

func NewGetClient(repo domain.Repository) *GetClient {
	return &GetClient{repo: repo}
}

func (uc *GetClient) Execute(ctx context.Context, id string) (*models.Client, error) {
	c, err := uc.repo.GetDetail(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	if c.IsDeleted() {
		return nil, errClientNotFound
	}
	return c, nil
}

// ======================================================
// HISTORY
// ======================================================

type ClientHistoryInput struct {
	ClientID string
	Page     int
	PageSize int
}

type ClientHistory struct {
	repo domain.Repository
}

func NewClientHistory(repo domain.Repository) *ClientHistory {
	return &ClientHistory{repo: repo}
}

// Execute lists interactions newest first. Soft-deleted clients keep their
// history readable.
func (uc *ClientHistory) Execute(
	ctx context.Context,
	in ClientHistoryInput,
) (*dto.Page[models.Interaction], error) {

	if _, err := uc.repo.GetByID(ctx, in.ClientID); err != nil {
		return nil, notFound(err)
	}

	page, size := dto.NormalizePage(in.Page, in.PageSize)

	items, total, err := uc.repo.ListInteractions(ctx, in.ClientID, page, size)
	if err != nil {
		return nil, err
	}

	out := dto.NewPage(items, total, page, size)
	return &out, nil
}

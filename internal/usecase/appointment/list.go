package appointment

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/client-followup/internal/domain/appointment"
	"github.com/BruksfildServices01/client-followup/internal/dto"
	"github.com/BruksfildServices01/client-followup/internal/httperr"
	"github.com/BruksfildServices01/client-followup/internal/models"
)

type ListAppointmentsInput struct {
	Page      int
	PageSize  int
	StartDate *time.Time
	EndDate   *time.Time
	Status    string
}

type ListAppointments struct {
	repo domain.Repository
}

func NewListAppointments(repo domain.Repository) *ListAppointments {
	return &ListAppointments{repo: repo}
}

func (uc *ListAppointments) Execute(
	ctx context.Context,
	in ListAppointmentsInput,
) (*dto.Page[models.Appointment], error) {

	page, size := dto.NormalizePage(in.Page, in.PageSize)

	f := domain.ListFilter{
		Page:      page,
		PageSize:  size,
		StartDate: in.StartDate,
		EndDate:   in.EndDate,
	}

	if in.Status != "" {
		st := domain.Status(in.Status)
		if !st.Valid() {
			return nil, httperr.ErrValidation("invalid_status", "status must be OPEN, DONE or CANCELLED")
		}
		f.Status = &st
	}

	apps, total, err := uc.repo.ListAppointments(ctx, f)
	if err != nil {
		return nil, err
	}

	out := dto.NewPage(apps, total, page, size)
	return &out, nil
}

type GetAppointment struct {
	repo domain.Repository
}

func NewGetAppointment(repo domain.Repository) *GetAppointment {
	return &GetAppointment{repo: repo}
}

func (uc *GetAppointment) Execute(ctx context.Context, id string) (*models.Appointment, error) {
	ap, err := uc.repo.GetAppointmentDetail(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	return ap, nil
}

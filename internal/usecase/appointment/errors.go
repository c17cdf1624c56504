package appointment

import "github.com/BruksfildServices01/client-followup/internal/httperr"

var (
	errClientNotFound        = httperr.ErrNotFound("client_not_found", "Client not found")
	errAppointmentNotFound   = httperr.ErrNotFound("appointment_not_found", "Appointment not found")
	errOpenAppointmentExists = httperr.ErrConflict("open_appointment_exists", "Client already has an open appointment")
	errAlreadyFinalized      = httperr.ErrConflict("appointment_already_finalized", "appointment already finalized")
)

func notFound(err error) error {
	if httperr.IsRecordNotFound(err) {
		return errAppointmentNotFound
	}
	return err
}

package client

import (
	"github.com/BruksfildServices01/client-followup/internal/httperr"
)

var (
	errClientNotFound = httperr.ErrNotFound("client_not_found", "Client not found")
	errUserNotFound   = httperr.ErrNotFound("user_not_found", "User not found")
	errTagNotFound    = httperr.ErrNotFound("tag_not_found", "Tag not found")
	errFieldNotFound  = httperr.ErrNotFound("field_not_found", "Client field not found")
)

func notFound(err error) error {
	if httperr.IsRecordNotFound(err) {
		return errClientNotFound
	}
	return err
}

func optional(id string) *string {
	if id == "" {
		return nil
	}
	return &id
}

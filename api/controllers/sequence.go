package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/tripdesk/tripdesk-backend/api/responses"
	"github.com/tripdesk/tripdesk-backend/api/validators"
	"github.com/tripdesk/tripdesk-backend/internal/staff"
	pkgerrors "github.com/tripdesk/tripdesk-backend/pkg/errors"
	"github.com/tripdesk/tripdesk-backend/pkg/logger"
)

type sequenceEntryResponse struct {
	StaffID           uuid.UUID `json:"staff_id"`
	SequenceOrder     int       `json:"sequence_order"`
	AutoAssignEnabled bool      `json:"auto_assign_enabled"`
}

type reorderRequest struct {
	StaffIDs []uuid.UUID `json:"staff_ids" validate:"required,min=1"`
}

type autoAssignRequest struct {
	Enabled *bool `json:"enabled" validate:"required"`
}

func FetchSequence(svc staff.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entries, err := svc.FetchSequence(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "fetching staff sequence"))
			return
		}

		out := make([]sequenceEntryResponse, 0, len(entries))
		for _, entry := range entries {
			out = append(out, sequenceEntryResponse{
				StaffID:           entry.StaffID,
				SequenceOrder:     entry.SequenceOrder,
				AutoAssignEnabled: entry.AutoAssignEnabled,
			})
		}
		responses.WriteSuccess(w, out)
	}
}

// ReorderSequence replaces the rotation order with the posted staff ID list.
func ReorderSequence(svc staff.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body reorderRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Reorder(r.Context(), body.StaffIDs); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"staff_ids": body.StaffIDs})
	}
}

// SetStaffAutoAssign includes or excludes one staff member from rotation.
func SetStaffAutoAssign(svc staff.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw := strings.TrimSpace(chi.URLParam(r, "staffId"))
		staffID, err := uuid.Parse(raw)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid staff id"))
			return
		}

		var body autoAssignRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.SetAutoAssign(r.Context(), staffID, *body.Enabled); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{
			"staff_id": staffID,
			"enabled":  *body.Enabled,
		})
	}
}

func ListStaff(svc staff.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		members, err := svc.ListMembers(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing staff"))
			return
		}

		type memberResponse struct {
			ID                   uuid.UUID `json:"id"`
			Name                 string    `json:"name"`
			Status               string    `json:"status"`
			OperationalCountries []string  `json:"operational_countries"`
		}
		out := make([]memberResponse, 0, len(members))
		for _, member := range members {
			out = append(out, memberResponse{
				ID:                   member.ID,
				Name:                 member.Name,
				Status:               member.Status,
				OperationalCountries: member.OperationalCountries,
			})
		}
		responses.WriteSuccess(w, out)
	}
}

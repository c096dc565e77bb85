package controllers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/tripdesk/tripdesk-backend/api/responses"
	"github.com/tripdesk/tripdesk-backend/api/validators"
	"github.com/tripdesk/tripdesk-backend/internal/assignment"
	"github.com/tripdesk/tripdesk-backend/internal/enquiries"
	"github.com/tripdesk/tripdesk-backend/pkg/db/models"
	"github.com/tripdesk/tripdesk-backend/pkg/enums"
	pkgerrors "github.com/tripdesk/tripdesk-backend/pkg/errors"
	"github.com/tripdesk/tripdesk-backend/pkg/logger"
	"github.com/tripdesk/tripdesk-backend/pkg/pagination"
)

// Assigner runs the auto-assignment cascade for one enquiry.
type Assigner interface {
	Assign(ctx context.Context, enquiryCode string) (*assignment.Decision, error)
}

type enquiryResponse struct {
	ID                 uuid.UUID  `json:"id"`
	EnquiryCode        string     `json:"enquiry_code"`
	CustomerName       string     `json:"customer_name"`
	DestinationCountry string     `json:"destination_country"`
	Status             string     `json:"status"`
	AssignedStaffID    *uuid.UUID `json:"assigned_staff_id,omitempty"`
	AssignedAt         *time.Time `json:"assigned_at,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
}

type enquiryListResponse struct {
	Enquiries  []enquiryResponse `json:"enquiries"`
	NextCursor string            `json:"next_cursor,omitempty"`
}

type assignmentOutcome struct {
	EnquiryCode string     `json:"enquiry_code"`
	Assigned    bool       `json:"assigned"`
	StaffID     *uuid.UUID `json:"staff_id,omitempty"`
	Method      string     `json:"method,omitempty"`
}

type historyEntryResponse struct {
	StaffID    uuid.UUID `json:"staff_id"`
	AssignedBy string    `json:"assigned_by"`
	Method     string    `json:"method"`
	Automatic  bool      `json:"automatic"`
	AssignedAt time.Time `json:"assigned_at"`
}

func toEnquiryResponse(enquiry models.Enquiry) enquiryResponse {
	return enquiryResponse{
		ID:                 enquiry.ID,
		EnquiryCode:        enquiry.EnquiryCode,
		CustomerName:       enquiry.CustomerName,
		DestinationCountry: enquiry.DestinationCountry,
		Status:             string(enquiry.Status),
		AssignedStaffID:    enquiry.AssignedStaffID,
		AssignedAt:         enquiry.AssignedAt,
		CreatedAt:          enquiry.CreatedAt,
	}
}

// TriggerAssignment runs the cascade for the enquiry in the URL. A decision
// answers 202; a run that made no write-back answers 200 so callers can tell
// "assigned" from "nothing to do" without parsing errors.
func TriggerAssignment(engine Assigner, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		code := strings.TrimSpace(chi.URLParam(r, "enquiryCode"))
		if code == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "enquiry code is required"))
			return
		}

		decision, err := engine.Assign(r.Context(), code)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "running assignment"))
			return
		}

		if decision == nil {
			responses.WriteSuccess(w, assignmentOutcome{EnquiryCode: code, Assigned: false})
			return
		}

		staffID := decision.StaffID
		responses.WriteSuccessStatus(w, http.StatusAccepted, assignmentOutcome{
			EnquiryCode: decision.EnquiryCode,
			Assigned:    true,
			StaffID:     &staffID,
			Method:      string(decision.Method),
		})
	}
}

// ListEnquiries returns a cursor-paginated page, newest first.
func ListEnquiries(svc enquiries.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		filter := enquiries.ListFilter{
			Country: strings.TrimSpace(r.URL.Query().Get("country")),
		}
		if raw := strings.TrimSpace(r.URL.Query().Get("status")); raw != "" {
			status, err := enums.ParseEnquiryStatus(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status filter"))
				return
			}
			filter.Status = &status
		}
		if raw := strings.TrimSpace(r.URL.Query().Get("staff_id")); raw != "" {
			staffID, err := uuid.Parse(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid staff id filter"))
				return
			}
			filter.StaffID = &staffID
		}

		page := pagination.Params{
			Limit:  limit,
			Cursor: strings.TrimSpace(r.URL.Query().Get("cursor")),
		}

		list, next, err := svc.List(r.Context(), filter, page)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		out := enquiryListResponse{
			Enquiries:  make([]enquiryResponse, 0, len(list)),
			NextCursor: next,
		}
		for _, enquiry := range list {
			out.Enquiries = append(out.Enquiries, toEnquiryResponse(enquiry))
		}
		responses.WriteSuccess(w, out)
	}
}

func GetEnquiry(svc enquiries.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		code := strings.TrimSpace(chi.URLParam(r, "enquiryCode"))
		if code == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "enquiry code is required"))
			return
		}

		enquiry, err := svc.Get(r.Context(), code)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, toEnquiryResponse(*enquiry))
	}
}

func EnquiryHistory(svc enquiries.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		code := strings.TrimSpace(chi.URLParam(r, "enquiryCode"))
		if code == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "enquiry code is required"))
			return
		}

		rows, err := svc.History(r.Context(), code)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		out := make([]historyEntryResponse, 0, len(rows))
		for _, row := range rows {
			out = append(out, historyEntryResponse{
				StaffID:    row.StaffID,
				AssignedBy: row.AssignedBy,
				Method:     string(row.Method),
				Automatic:  row.Automatic,
				AssignedAt: row.AssignedAt,
			})
		}
		responses.WriteSuccess(w, out)
	}
}

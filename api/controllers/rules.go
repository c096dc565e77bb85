package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tripdesk/tripdesk-backend/api/responses"
	"github.com/tripdesk/tripdesk-backend/api/validators"
	"github.com/tripdesk/tripdesk-backend/internal/rules"
	"github.com/tripdesk/tripdesk-backend/pkg/enums"
	pkgerrors "github.com/tripdesk/tripdesk-backend/pkg/errors"
	"github.com/tripdesk/tripdesk-backend/pkg/logger"
)

type ruleResponse struct {
	Name        string    `json:"name"`
	Enabled     bool      `json:"enabled"`
	Description *string   `json:"description,omitempty"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type ruleToggleRequest struct {
	Enabled *bool `json:"enabled" validate:"required"`
}

func ListRules(svc rules.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := svc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing assignment rules"))
			return
		}

		out := make([]ruleResponse, 0, len(rows))
		for _, row := range rows {
			out = append(out, ruleResponse{
				Name:        string(row.Name),
				Enabled:     row.Enabled,
				Description: row.Description,
				UpdatedAt:   row.UpdatedAt,
			})
		}
		responses.WriteSuccess(w, out)
	}
}

// ToggleRule flips one cascade rule on or off. Unknown rule names are
// rejected before touching the store.
func ToggleRule(svc rules.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw := strings.TrimSpace(chi.URLParam(r, "ruleName"))
		name, err := enums.ParseAssignmentRuleName(raw)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid rule name"))
			return
		}

		var body ruleToggleRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.SetEnabled(r.Context(), name, *body.Enabled); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{
			"name":    string(name),
			"enabled": *body.Enabled,
		})
	}
}

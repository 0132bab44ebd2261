package http

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/notulensi/notulensi-pro/internal/logger"
	"github.com/notulensi/notulensi-pro/internal/service"
	"github.com/notulensi/notulensi-pro/internal/utils"
	"github.com/notulensi/notulensi-pro/models"
)

// seed handles POST /api/seed, creating the demo accounts on an empty
// database. Disabled in production; a repeat call reports that seeding has
// already happened instead of failing.
func (h *Handler) seed(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)
	ctx := r.Context()

	created, err := h.services.AuthService.SeedDemoUsers(ctx)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRegistrationDisabled):
			writeError(w, r, "Seeding is disabled", http.StatusForbidden)
		case errors.Is(err, service.ErrAlreadySeeded):
			if _, werr := utils.WriteJSON(w, models.SeedResponse{
				Success: false,
				Message: "Database already seeded",
			}, http.StatusOK); werr != nil {
				log.Err(werr).Msg("writing seed response failed")
			}
		default:
			log.Err(err).Msg("seeding failed")
			writeError(w, r, "Failed to seed database", http.StatusInternalServerError)
		}
		return
	}

	emails := make([]string, 0, len(created))
	for _, user := range created {
		emails = append(emails, user.Email)
	}

	if _, err := utils.WriteJSON(w, models.SeedResponse{
		Success: true,
		Message: fmt.Sprintf("Successfully created %d demo users", len(created)),
		Users:   emails,
	}, http.StatusOK); err != nil {
		log.Err(err).Msg("writing seed response failed")
	}
}

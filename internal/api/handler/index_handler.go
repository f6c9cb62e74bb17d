package handler

import (
	"net/http"

	"credit-approval/internal/api/handler/dto"
)

// APIIndex serves the root route listing.
//
// @Summary API index
// @Description Lists the service's public endpoints.
// @Tags Index
// @Produce json
// @Success 200 {object} dto.APIIndexResponse "Route listing"
// @Router / [get]
func APIIndex(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, dto.NewAPIIndexResponse())
}

package handlers

import (
	"net/http"

	"github.com/benvon/wifi-api/internal/models"
)

// StatusMessageText is what the root endpoint reports while the API is up
const StatusMessageText = "WiFi API is running"

// Root handles GET /. It reads nothing from the request and cannot fail.
func Root(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, models.StatusMessage{Message: StatusMessageText})
}

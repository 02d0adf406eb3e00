package handler

import "net/http"

// HandleHealth is the liveness probe. It touches no dependencies and always
// reports healthy while the process can serve requests.
//
// GET /api/health → 200 {status:"healthy"}
func HandleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

package handlers

import (
	"encoding/json"
	"net/http"
)

// errorMessage matches the uniform rejection text used by the auth layer; a
// malformed body and a bad key look identical to the caller on purpose.
const errorMessage = "Invalid API key or malformed request"

type errorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Status: "error", Message: message})
}

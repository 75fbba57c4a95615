package web

import (
	"encoding/json"
	"net/http"

	"github.com/kamdem/biogate/internal/verify"
)

type verifyRequest struct {
	FacePath  string `json:"face_path"`
	VoicePath string `json:"voice_path"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleVerify runs one transaction. A rejected authentication is still a
// 200: the transaction completed and produced a report; HTTP errors are
// reserved for malformed requests.
func (s *Server) handleVerify(w http.ResponseWriter, r *http.Request) {
	var req verifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return
	}
	if req.FacePath == "" || req.VoicePath == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "face_path and voice_path are required"})
		return
	}

	report := s.orchestrator.Run(r.Context(),
		verify.Sample{Path: req.FacePath},
		verify.Sample{Path: req.VoicePath},
	)

	writeJSON(w, http.StatusOK, report)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

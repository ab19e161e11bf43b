package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/mux"
	"github.com/xelth-com/eckrecongo/internal/middleware"
	"github.com/xelth-com/eckrecongo/internal/models"
	"github.com/xelth-com/eckrecongo/internal/reconcile"
)

// sessionResponse is the session projection with discrepancy flags
type sessionResponse struct {
	*models.Session
	reconcile.Flags
}

func newSessionResponse(session *models.Session) sessionResponse {
	return sessionResponse{Session: session, Flags: reconcile.ComputeFlags(session)}
}

// ScanRequest is the payload from a scanner or manual adjustment UI
type ScanRequest struct {
	Delta    int    `json:"delta"`
	IsManual bool   `json:"isManual"`
	Code     string `json:"code,omitempty"`
}

// listSessions returns sessions with their discrepancy flags
func (r *Router) listSessions(w http.ResponseWriter, req *http.Request) {
	kind := models.SessionKind(req.URL.Query().Get("kind"))
	sessions, err := r.recon.ListSessions(req.Context(), kind)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	out := make([]sessionResponse, 0, len(sessions))
	for i := range sessions {
		out = append(out, newSessionResponse(&sessions[i]))
	}
	respondJSON(w, http.StatusOK, out)
}

// createSession opens a new session from a normalized item list
func (r *Router) createSession(w http.ResponseWriter, req *http.Request) {
	var in reconcile.CreateSessionInput
	if err := json.NewDecoder(req.Body).Decode(&in); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	session, err := r.recon.CreateSession(req.Context(), in)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, newSessionResponse(session))
}

// getSession returns one session with items, ledger and flags
func (r *Router) getSession(w http.ResponseWriter, req *http.Request) {
	id, ok := pathID(w, req, "id")
	if !ok {
		return
	}

	session, err := r.recon.GetSession(req.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, newSessionResponse(session))
}

// deleteSession removes a non-finalized session and all its scans
func (r *Router) deleteSession(w http.ResponseWriter, req *http.Request) {
	id, ok := pathID(w, req, "id")
	if !ok {
		return
	}

	if err := r.recon.DeleteSession(req.Context(), id); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{
		"message": "Session deleted",
	})
}

// completeSession finalizes a session and commits its stock effect
func (r *Router) completeSession(w http.ResponseWriter, req *http.Request) {
	id, ok := pathID(w, req, "id")
	if !ok {
		return
	}

	result, err := r.recon.CompleteSession(req.Context(), id, requestUser(req))
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"session":      newSessionResponse(result.Session),
		"stockUpdates": result.StockUpdates,
		"unresolved":   result.Unresolved,
		"shipmentId":   result.ShipmentID,
	})
}

// recordScan appends one ledger entry for an item
func (r *Router) recordScan(w http.ResponseWriter, req *http.Request) {
	sessionID, ok := pathID(w, req, "id")
	if !ok {
		return
	}
	itemID, ok := pathID(w, req, "itemId")
	if !ok {
		return
	}

	var body ScanRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if body.Delta == 0 {
		respondError(w, http.StatusBadRequest, "Delta must be non-zero")
		return
	}

	session, err := r.recon.RecordScan(req.Context(), sessionID, itemID, body.Delta, body.IsManual, body.Code)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, newSessionResponse(session))
}

// removeScan deletes one ledger entry and recomputes the item's quantity
func (r *Router) removeScan(w http.ResponseWriter, req *http.Request) {
	sessionID, ok := pathID(w, req, "id")
	if !ok {
		return
	}
	itemID, ok := pathID(w, req, "itemId")
	if !ok {
		return
	}
	scanID, ok := pathID(w, req, "scanId")
	if !ok {
		return
	}

	session, err := r.recon.RemoveScan(req.Context(), sessionID, itemID, scanID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, newSessionResponse(session))
}

// pathID parses a numeric path variable, responding 400 on garbage
func pathID(w http.ResponseWriter, req *http.Request, name string) (uint, bool) {
	raw := mux.Vars(req)[name]
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid "+name)
		return 0, false
	}
	return uint(id), true
}

// requestUser extracts the authenticated user's email from JWT claims
func requestUser(req *http.Request) string {
	claims, ok := req.Context().Value(middleware.UserContextKey).(jwt.MapClaims)
	if !ok {
		return ""
	}
	if email, ok := claims["email"].(string); ok {
		return email
	}
	return ""
}

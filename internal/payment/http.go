package payment

import (
	"encoding/json"
	"log"
	"net/http"
)

// intentRequest is the JSON body accepted by the standalone intent
// endpoint.  Amount is in currency units (dollars, not cents).
type intentRequest struct {
	Amount        float64 `json:"amount"`
	ReservationID uint64  `json:"reservation_id"`
}

// writeJSON serializes v with the proper content type.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// IntentHandler returns the HTTP adapter for the standalone payment
// bridge.  It answers CORS preflights permissively, rejects anything but
// POST with 405 before the processor is ever contacted, and maps
// processor failures to 502 with a generic message (the detail is logged
// server-side only).
func IntentHandler(b *Bridge) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		switch r.Method {
		case http.MethodOptions:
			w.WriteHeader(http.StatusNoContent)
			return
		case http.MethodPost:
		default:
			writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
			return
		}

		var req intentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
			return
		}
		if req.Amount <= 0 || req.ReservationID == 0 {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "amount and reservation_id are required"})
			return
		}

		result, err := b.CreateIntent(req.Amount, req.ReservationID)
		if err != nil {
			log.Printf("intent creation failed for reservation %d: %v", req.ReservationID, err)
			writeJSON(w, http.StatusBadGateway, map[string]string{"error": "payment provider unavailable"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"clientSecret": result.ClientSecret})
	}
}

package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"souq/rdx"
	"souq/utils"

	"github.com/julienschmidt/httprouter"
)

// Handlers exposes the orchestrator over HTTP.
type Handlers struct {
	orc *Orchestrator
}

func NewHandlers(orc *Orchestrator) *Handlers {
	return &Handlers{orc: orc}
}

func writeCheckoutError(w http.ResponseWriter, err error) {
	var verr *ValidationError
	if errors.As(err, &verr) {
		utils.RespondWithJSON(w, http.StatusUnprocessableEntity, utils.M{
			"error": verr.Reason,
			"field": verr.Field,
		})
		return
	}
	var serr *SubmissionError
	if errors.As(err, &serr) {
		utils.RespondWithJSON(w, http.StatusBadGateway, utils.M{
			"error":     "order submission failed, please retry",
			"retryable": true,
		})
		return
	}
	log.Println("checkout error:", err)
	utils.RespondWithError(w, http.StatusBadRequest, "checkout step failed")
}

func (h *Handlers) cartID(w http.ResponseWriter, r *http.Request) string {
	if userID := utils.GetUserIDFromRequest(r); userID != "" {
		return userID
	}
	return r.Header.Get("X-Cart-Session")
}

func (h *Handlers) load(ctx context.Context, w http.ResponseWriter, id string) *Session {
	sess, err := h.orc.Sessions.Load(ctx, id)
	if err != nil {
		log.Println("checkout session load error:", err)
		http.Error(w, "Could not load checkout session", http.StatusInternalServerError)
		return nil
	}
	if sess == nil {
		http.Error(w, "Checkout session not found", http.StatusNotFound)
		return nil
	}
	return sess
}

// Start opens a new checkout session bound to the caller's cart.
func (h *Handlers) Start(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	cartID := h.cartID(w, r)
	if cartID == "" {
		http.Error(w, "No cart session", http.StatusBadRequest)
		return
	}

	sess := NewSession(utils.GetUUID(), cartID)
	if err := h.orc.Sessions.Save(ctx, sess); err != nil {
		log.Println("Start session save error:", err)
		http.Error(w, "Could not start checkout", http.StatusInternalServerError)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, sess)
}

// GetSession returns the current session state, used on page reload.
func (h *Handlers) GetSession(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	sess := h.load(ctx, w, ps.ByName("sessionid"))
	if sess == nil {
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, sess)
}

// Identity collects name and phone, or adopts the authenticated user.
func (h *Handlers) Identity(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var payload struct {
		Name  string `json:"name"`
		Phone string `json:"phone"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}

	sess := h.load(ctx, w, ps.ByName("sessionid"))
	if sess == nil {
		return
	}

	userID := utils.GetUserIDFromRequest(r)
	if err := h.orc.Identity(ctx, sess, payload.Name, payload.Phone, userID, userID != ""); err != nil {
		writeCheckoutError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, sess)
}

// Address collects the delivery address, shift and terms acknowledgment.
// Coordinates are optional; their absence degrades to manual entry.
func (h *Handlers) Address(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var payload struct {
		Address       string   `json:"address"`
		Latitude      *float64 `json:"latitude,omitempty"`
		Longitude     *float64 `json:"longitude,omitempty"`
		ShiftID       string   `json:"shiftId"`
		TermsAccepted bool     `json:"termsAccepted"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}

	sess := h.load(ctx, w, ps.ByName("sessionid"))
	if sess == nil {
		return
	}

	err := h.orc.Address(ctx, sess, payload.Address, payload.Latitude, payload.Longitude, payload.ShiftID, payload.TermsAccepted)
	if err != nil {
		writeCheckoutError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, sess)
}

// VerifyOTP checks the guest's one-time code.
func (h *Handlers) VerifyOTP(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var payload struct {
		Code string `json:"code"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}

	sess := h.load(ctx, w, ps.ByName("sessionid"))
	if sess == nil {
		return
	}

	if err := h.orc.VerifyOTP(ctx, sess, payload.Code); err != nil {
		writeCheckoutError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, sess)
}

// Submit places the order. A Redis SETNX lock rejects a second submit
// for the same session while one is in flight.
func (h *Handlers) Submit(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	sessionID := ps.ByName("sessionid")
	lockKey := "checkout:lock:" + sessionID
	locked, err := rdx.RdxSetNX(lockKey, "1", 30*time.Second)
	if err != nil {
		log.Println("Submit lock error:", err)
		http.Error(w, "Could not submit order", http.StatusInternalServerError)
		return
	}
	if !locked {
		http.Error(w, "Submission already in progress", http.StatusConflict)
		return
	}
	defer func() {
		if _, err := rdx.RdxDel(lockKey); err != nil {
			log.Println("Submit lock release error:", err)
		}
	}()

	sess := h.load(ctx, w, sessionID)
	if sess == nil {
		return
	}

	order, err := h.orc.Submit(ctx, sess)
	if err != nil {
		writeCheckoutError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, order)
}

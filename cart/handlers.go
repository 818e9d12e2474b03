package cart

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"souq/db"
	"souq/models"
	"souq/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

// Handlers exposes the cart aggregate over HTTP. The cart is owned by
// one browsing session: the authenticated user ID when present,
// otherwise the X-Cart-Session header minted on first mutation.
type Handlers struct {
	store *Store
}

func NewHandlers(store *Store) *Handlers {
	return &Handlers{store: store}
}

const sessionHeader = "X-Cart-Session"

func (h *Handlers) sessionID(w http.ResponseWriter, r *http.Request) string {
	if userID := utils.GetUserIDFromRequest(r); userID != "" {
		return userID
	}
	if sid := r.Header.Get(sessionHeader); sid != "" {
		return sid
	}
	sid := utils.GetUUID()
	w.Header().Set(sessionHeader, sid)
	return sid
}

type cartView struct {
	Lines            []Line  `json:"lines"`
	TotalItems       int     `json:"totalItems"`
	TotalUniqueItems int     `json:"totalUniqueItems"`
	Subtotal         float64 `json:"subtotal"`
	Tax              float64 `json:"tax"`
	Total            float64 `json:"total"`
}

func view(c *Cart) cartView {
	return cartView{
		Lines:            c.Lines(),
		TotalItems:       c.TotalItems(),
		TotalUniqueItems: c.TotalUniqueItems(),
		Subtotal:         c.TotalPrice(),
		Tax:              c.Tax(),
		Total:            c.TotalWithTax(),
	}
}

// GetCart returns the session's cart with derived totals.
func (h *Handlers) GetCart(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	c, err := h.store.Load(ctx, h.sessionID(w, r))
	if err != nil {
		log.Println("GetCart load error:", err)
		http.Error(w, "Could not retrieve cart", http.StatusInternalServerError)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, view(c))
}

// AddItem resolves the product from the catalog and merges it into the
// cart. The snapshot is taken server-side so a stale client price can
// never enter the cart.
func (h *Handlers) AddItem(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var payload struct {
		ProductID string `json:"productId"`
		Quantity  int    `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		log.Println("AddItem decode error:", err)
		http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}
	if payload.ProductID == "" || payload.Quantity < 0 {
		http.Error(w, "Missing or invalid fields", http.StatusBadRequest)
		return
	}

	var product models.Product
	err := db.ProductsCollection.FindOne(ctx, bson.M{
		"productId": payload.ProductID,
		"published": true,
	}).Decode(&product)
	if err != nil {
		http.Error(w, "Product not found", http.StatusNotFound)
		return
	}

	sid := h.sessionID(w, r)
	c, err := h.store.Load(ctx, sid)
	if err != nil {
		log.Println("AddItem load error:", err)
		http.Error(w, "Could not retrieve cart", http.StatusInternalServerError)
		return
	}

	c.AddItem(product.Snapshot(), payload.Quantity)

	if err := h.store.Save(ctx, sid, c); err != nil {
		log.Println("AddItem save error:", err)
		http.Error(w, "Failed to add to cart", http.StatusInternalServerError)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, view(c))
}

// UpdateQuantity applies a signed delta to one line.
func (h *Handlers) UpdateQuantity(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var payload struct {
		Delta int `json:"delta"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		log.Println("UpdateQuantity decode error:", err)
		http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}

	sid := h.sessionID(w, r)
	c, err := h.store.Load(ctx, sid)
	if err != nil {
		log.Println("UpdateQuantity load error:", err)
		http.Error(w, "Could not retrieve cart", http.StatusInternalServerError)
		return
	}

	c.UpdateQuantity(ps.ByName("productid"), payload.Delta)

	if err := h.store.Save(ctx, sid, c); err != nil {
		log.Println("UpdateQuantity save error:", err)
		http.Error(w, "Failed to update cart", http.StatusInternalServerError)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, view(c))
}

// RemoveItem deletes one line; removing an absent line still succeeds.
func (h *Handlers) RemoveItem(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	sid := h.sessionID(w, r)
	c, err := h.store.Load(ctx, sid)
	if err != nil {
		log.Println("RemoveItem load error:", err)
		http.Error(w, "Could not retrieve cart", http.StatusInternalServerError)
		return
	}

	c.RemoveItem(ps.ByName("productid"))

	if err := h.store.Save(ctx, sid, c); err != nil {
		log.Println("RemoveItem save error:", err)
		http.Error(w, "Failed to update cart", http.StatusInternalServerError)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, view(c))
}

// ClearCart empties the session's cart.
func (h *Handlers) ClearCart(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	sid := h.sessionID(w, r)
	if err := h.store.Clear(ctx, sid); err != nil {
		log.Println("ClearCart error:", err)
		http.Error(w, "Failed to clear cart", http.StatusInternalServerError)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, view(New()))
}

package catalog

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

// GetActivePromotions lists promotions whose validity window covers now.
func GetActivePromotions(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	now := time.Now()
	cursor, err := db.PromotionsCollection.Find(ctx, bson.M{
		"startsAt": bson.M{"$lte": now},
		"endsAt":   bson.M{"$gte": now},
	})
	if err != nil {
		log.Println("GetActivePromotions Find error:", err)
		http.Error(w, "Could not retrieve promotions", http.StatusInternalServerError)
		return
	}
	defer cursor.Close(ctx)

	var promos []models.Promotion
	if err := cursor.All(ctx, &promos); err != nil {
		http.Error(w, "Error reading promotions", http.StatusInternalServerError)
		return
	}
	if len(promos) == 0 {
		promos = []models.Promotion{}
	}
	utils.RespondWithJSON(w, http.StatusOK, promos)
}

func CreatePromotion(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var promo models.Promotion
	if err := json.NewDecoder(r.Body).Decode(&promo); err != nil {
		http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}
	if promo.Title == "" || !promo.EndsAt.After(promo.StartsAt) {
		http.Error(w, "Missing title or invalid validity window", http.StatusBadRequest)
		return
	}

	promo.PromotionID = utils.GetUUID()
	promo.CreatedAt = time.Now()

	if _, err := db.PromotionsCollection.InsertOne(ctx, promo); err != nil {
		log.Println("CreatePromotion InsertOne error:", err)
		http.Error(w, "Failed to create promotion", http.StatusInternalServerError)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, promo)
}

func DeletePromotion(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	res, err := db.PromotionsCollection.DeleteOne(ctx, bson.M{"promotionId": ps.ByName("promotionid")})
	if err != nil {
		log.Println("DeletePromotion error:", err)
		http.Error(w, "Failed to delete promotion", http.StatusInternalServerError)
		return
	}
	if res.DeletedCount == 0 {
		http.Error(w, "Promotion not found", http.StatusNotFound)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

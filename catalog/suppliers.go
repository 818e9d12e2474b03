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
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GetSuppliers lists suppliers. The storefront shows active ones; the
// back-office passes ?all=true.
func GetSuppliers(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	filter := bson.M{"active": true}
	if r.URL.Query().Get("all") == "true" {
		filter = bson.M{}
	}

	cursor, err := db.SuppliersCollection.Find(ctx, filter, options.Find().SetSort(bson.M{"name": 1}))
	if err != nil {
		log.Println("GetSuppliers Find error:", err)
		http.Error(w, "Could not retrieve suppliers", http.StatusInternalServerError)
		return
	}
	defer cursor.Close(ctx)

	var suppliers []models.Supplier
	if err := cursor.All(ctx, &suppliers); err != nil {
		http.Error(w, "Error reading suppliers", http.StatusInternalServerError)
		return
	}
	if len(suppliers) == 0 {
		suppliers = []models.Supplier{}
	}
	utils.RespondWithJSON(w, http.StatusOK, suppliers)
}

func CreateSupplier(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var supplier models.Supplier
	if err := json.NewDecoder(r.Body).Decode(&supplier); err != nil {
		http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}
	if supplier.Name == "" {
		http.Error(w, "Name is required", http.StatusBadRequest)
		return
	}

	supplier.SupplierID = utils.GetUUID()
	supplier.Active = true
	supplier.CreatedAt = time.Now()

	if _, err := db.SuppliersCollection.InsertOne(ctx, supplier); err != nil {
		log.Println("CreateSupplier InsertOne error:", err)
		http.Error(w, "Failed to create supplier", http.StatusInternalServerError)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, supplier)
}

func UpdateSupplier(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var payload models.Supplier
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}

	res, err := db.SuppliersCollection.UpdateOne(ctx,
		bson.M{"supplierId": ps.ByName("supplierid")},
		bson.M{"$set": bson.M{
			"name":      payload.Name,
			"nameAr":    payload.NameAr,
			"phone":     payload.Phone,
			"address":   payload.Address,
			"logoUrl":   payload.LogoURL,
			"active":    payload.Active,
			"updatedAt": time.Now(),
		}},
	)
	if err != nil {
		log.Println("UpdateSupplier error:", err)
		http.Error(w, "Failed to update supplier", http.StatusInternalServerError)
		return
	}
	if res.MatchedCount == 0 {
		http.Error(w, "Supplier not found", http.StatusNotFound)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

func DeleteSupplier(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	res, err := db.SuppliersCollection.DeleteOne(ctx, bson.M{"supplierId": ps.ByName("supplierid")})
	if err != nil {
		log.Println("DeleteSupplier error:", err)
		http.Error(w, "Failed to delete supplier", http.StatusInternalServerError)
		return
	}
	if res.DeletedCount == 0 {
		http.Error(w, "Supplier not found", http.StatusNotFound)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

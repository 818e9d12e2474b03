package catalog

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"souq/db"
	"souq/models"
	"souq/rdx"
	"souq/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const productCachePrefix = "product:"
const productCacheTTL = 5 * time.Minute

// GetProducts lists published products for the storefront, optionally
// filtered by ?category= and ?supplier=.
func GetProducts(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	filter := bson.M{"published": true}
	if cat := r.URL.Query().Get("category"); cat != "" {
		filter["category"] = cat
	}
	if sup := r.URL.Query().Get("supplier"); sup != "" {
		filter["supplierId"] = sup
	}

	opts := options.Find().SetSort(bson.M{"createdAt": -1})
	cursor, err := db.ProductsCollection.Find(ctx, filter, opts)
	if err != nil {
		log.Println("GetProducts Find error:", err)
		http.Error(w, "Could not retrieve products", http.StatusInternalServerError)
		return
	}
	defer cursor.Close(ctx)

	var products []models.Product
	if err := cursor.All(ctx, &products); err != nil {
		log.Println("GetProducts cursor.All error:", err)
		http.Error(w, "Error reading products", http.StatusInternalServerError)
		return
	}
	if len(products) == 0 {
		products = []models.Product{}
	}
	utils.RespondWithJSON(w, http.StatusOK, products)
}

// GetProduct fetches one published product, served from the Redis cache
// when warm.
func GetProduct(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	productID := ps.ByName("productid")

	if cached, err := rdx.RdxGet(productCachePrefix + productID); err == nil && cached != "" {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(cached))
		return
	}

	var product models.Product
	err := db.ProductsCollection.FindOne(ctx, bson.M{
		"productId": productID,
		"published": true,
	}).Decode(&product)
	if err != nil {
		http.Error(w, "Product not found", http.StatusNotFound)
		return
	}

	if data, err := json.Marshal(product); err == nil {
		if err := rdx.RdxSetWithTTL(productCachePrefix+productID, string(data), productCacheTTL); err != nil {
			log.Println("GetProduct cache set error:", err)
		}
	}
	utils.RespondWithJSON(w, http.StatusOK, product)
}

// CreateProduct adds a catalog entry. Back-office only.
func CreateProduct(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var product models.Product
	if err := json.NewDecoder(r.Body).Decode(&product); err != nil {
		http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}
	if product.Name == "" || product.Price < 0 {
		http.Error(w, "Missing or invalid fields", http.StatusBadRequest)
		return
	}

	product.ProductID = utils.GetUUID()
	product.CreatedAt = time.Now()

	if _, err := db.ProductsCollection.InsertOne(ctx, product); err != nil {
		log.Println("CreateProduct InsertOne error:", err)
		http.Error(w, "Failed to create product", http.StatusInternalServerError)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, product)
}

// UpdateProduct edits a catalog entry and invalidates its cache.
// Carts and orders are untouched; they hold their own snapshots.
func UpdateProduct(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var payload models.Product
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}

	productID := ps.ByName("productid")
	update := bson.M{"$set": bson.M{
		"name":        payload.Name,
		"nameAr":      payload.NameAr,
		"description": payload.Description,
		"category":    payload.Category,
		"supplierId":  payload.SupplierID,
		"price":       payload.Price,
		"unit":        payload.Unit,
		"imageUrl":    payload.ImageURL,
		"published":   payload.Published,
		"updatedAt":   time.Now(),
	}}

	res, err := db.ProductsCollection.UpdateOne(ctx, bson.M{"productId": productID}, update)
	if err != nil {
		log.Println("UpdateProduct error:", err)
		http.Error(w, "Failed to update product", http.StatusInternalServerError)
		return
	}
	if res.MatchedCount == 0 {
		http.Error(w, "Product not found", http.StatusNotFound)
		return
	}

	if _, err := rdx.RdxDel(productCachePrefix + productID); err != nil {
		log.Println("UpdateProduct cache invalidation error:", err)
	}
	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

// DeleteProduct removes a catalog entry.
func DeleteProduct(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	productID := ps.ByName("productid")
	res, err := db.ProductsCollection.DeleteOne(ctx, bson.M{"productId": productID})
	if err != nil {
		log.Println("DeleteProduct error:", err)
		http.Error(w, "Failed to delete product", http.StatusInternalServerError)
		return
	}
	if res.DeletedCount == 0 {
		http.Error(w, "Product not found", http.StatusNotFound)
		return
	}

	if _, err := rdx.RdxDel(productCachePrefix + productID); err != nil {
		log.Println("DeleteProduct cache invalidation error:", err)
	}
	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

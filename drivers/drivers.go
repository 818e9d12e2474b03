package drivers

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

func GetDrivers(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	filter := bson.M{}
	if r.URL.Query().Get("active") == "true" {
		filter["active"] = true
	}

	cursor, err := db.DriversCollection.Find(ctx, filter, options.Find().SetSort(bson.M{"name": 1}))
	if err != nil {
		log.Println("GetDrivers Find error:", err)
		http.Error(w, "Could not retrieve drivers", http.StatusInternalServerError)
		return
	}
	defer cursor.Close(ctx)

	var list []models.Driver
	if err := cursor.All(ctx, &list); err != nil {
		http.Error(w, "Error reading drivers", http.StatusInternalServerError)
		return
	}
	if len(list) == 0 {
		list = []models.Driver{}
	}
	utils.RespondWithJSON(w, http.StatusOK, list)
}

func CreateDriver(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var driver models.Driver
	if err := json.NewDecoder(r.Body).Decode(&driver); err != nil {
		http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}
	if driver.Name == "" || driver.Phone == "" {
		http.Error(w, "Name and phone are required", http.StatusBadRequest)
		return
	}

	driver.DriverID = utils.GetUUID()
	driver.Active = true
	driver.CreatedAt = time.Now()

	if _, err := db.DriversCollection.InsertOne(ctx, driver); err != nil {
		log.Println("CreateDriver InsertOne error:", err)
		http.Error(w, "Failed to create driver", http.StatusInternalServerError)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, driver)
}

func UpdateDriver(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var payload models.Driver
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}

	res, err := db.DriversCollection.UpdateOne(ctx,
		bson.M{"driverId": ps.ByName("driverid")},
		bson.M{"$set": bson.M{
			"name":     payload.Name,
			"phone":    payload.Phone,
			"imageUrl": payload.ImageURL,
			"active":   payload.Active,
		}},
	)
	if err != nil {
		log.Println("UpdateDriver error:", err)
		http.Error(w, "Failed to update driver", http.StatusInternalServerError)
		return
	}
	if res.MatchedCount == 0 {
		http.Error(w, "Driver not found", http.StatusNotFound)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

func DeleteDriver(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	res, err := db.DriversCollection.DeleteOne(ctx, bson.M{"driverId": ps.ByName("driverid")})
	if err != nil {
		log.Println("DeleteDriver error:", err)
		http.Error(w, "Failed to delete driver", http.StatusInternalServerError)
		return
	}
	if res.DeletedCount == 0 {
		http.Error(w, "Driver not found", http.StatusNotFound)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

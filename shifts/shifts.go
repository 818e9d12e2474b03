package shifts

import (
	"context"
	"encoding/json"
	"fmt"
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

// ValidateWindow checks the HH:MM shape and ordering of a shift window.
func ValidateWindow(start, end string) error {
	s, err := time.Parse("15:04", start)
	if err != nil {
		return fmt.Errorf("invalid start time %q", start)
	}
	e, err := time.Parse("15:04", end)
	if err != nil {
		return fmt.Errorf("invalid end time %q", end)
	}
	if !e.After(s) {
		return fmt.Errorf("shift must end after it starts")
	}
	return nil
}

// Directory resolves shift selections for checkout. It satisfies
// checkout.ShiftDirectory.
type Directory struct{}

func (Directory) ActiveShift(ctx context.Context, shiftID string) (bool, error) {
	count, err := db.ShiftsCollection.CountDocuments(ctx, bson.M{
		"shiftId": shiftID,
		"active":  true,
	})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// GetActiveShifts lists the windows selectable at checkout.
func GetActiveShifts(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	cursor, err := db.ShiftsCollection.Find(ctx, bson.M{"active": true}, options.Find().SetSort(bson.M{"start": 1}))
	if err != nil {
		log.Println("GetActiveShifts Find error:", err)
		http.Error(w, "Could not retrieve shifts", http.StatusInternalServerError)
		return
	}
	defer cursor.Close(ctx)

	var list []models.Shift
	if err := cursor.All(ctx, &list); err != nil {
		http.Error(w, "Error reading shifts", http.StatusInternalServerError)
		return
	}
	if len(list) == 0 {
		list = []models.Shift{}
	}
	utils.RespondWithJSON(w, http.StatusOK, list)
}

// GetShifts lists every shift for the back-office.
func GetShifts(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	cursor, err := db.ShiftsCollection.Find(ctx, bson.M{}, options.Find().SetSort(bson.M{"start": 1}))
	if err != nil {
		log.Println("GetShifts Find error:", err)
		http.Error(w, "Could not retrieve shifts", http.StatusInternalServerError)
		return
	}
	defer cursor.Close(ctx)

	var list []models.Shift
	if err := cursor.All(ctx, &list); err != nil {
		http.Error(w, "Error reading shifts", http.StatusInternalServerError)
		return
	}
	if len(list) == 0 {
		list = []models.Shift{}
	}
	utils.RespondWithJSON(w, http.StatusOK, list)
}

func CreateShift(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var shift models.Shift
	if err := json.NewDecoder(r.Body).Decode(&shift); err != nil {
		http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}
	if shift.Name == "" {
		http.Error(w, "Name is required", http.StatusBadRequest)
		return
	}
	if err := ValidateWindow(shift.Start, shift.End); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	shift.ShiftID = utils.GetUUID()
	shift.Active = true
	shift.CreatedAt = time.Now()

	if _, err := db.ShiftsCollection.InsertOne(ctx, shift); err != nil {
		log.Println("CreateShift InsertOne error:", err)
		http.Error(w, "Failed to create shift", http.StatusInternalServerError)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, shift)
}

func UpdateShift(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var payload models.Shift
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}
	if err := ValidateWindow(payload.Start, payload.End); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	res, err := db.ShiftsCollection.UpdateOne(ctx,
		bson.M{"shiftId": ps.ByName("shiftid")},
		bson.M{"$set": bson.M{
			"name":     payload.Name,
			"nameAr":   payload.NameAr,
			"start":    payload.Start,
			"end":      payload.End,
			"capacity": payload.Capacity,
			"active":   payload.Active,
		}},
	)
	if err != nil {
		log.Println("UpdateShift error:", err)
		http.Error(w, "Failed to update shift", http.StatusInternalServerError)
		return
	}
	if res.MatchedCount == 0 {
		http.Error(w, "Shift not found", http.StatusNotFound)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

func DeleteShift(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	res, err := db.ShiftsCollection.DeleteOne(ctx, bson.M{"shiftId": ps.ByName("shiftid")})
	if err != nil {
		log.Println("DeleteShift error:", err)
		http.Error(w, "Failed to delete shift", http.StatusInternalServerError)
		return
	}
	if res.DeletedCount == 0 {
		http.Error(w, "Shift not found", http.StatusNotFound)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

package contact

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"souq/db"
	"souq/models"
	"souq/mq"
	"souq/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// SubmitContact records a contact-form message and announces it to the
// dashboard feed.
func SubmitContact(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var submission models.ContactSubmission
	if err := json.NewDecoder(r.Body).Decode(&submission); err != nil {
		http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}

	submission.Name = strings.TrimSpace(submission.Name)
	submission.Message = strings.TrimSpace(submission.Message)
	if submission.Name == "" || submission.Message == "" {
		http.Error(w, "Name and message are required", http.StatusBadRequest)
		return
	}

	submission.ContactID = utils.GetUUID()
	submission.Read = false
	submission.CreatedAt = time.Now()

	if _, err := db.ContactsCollection.InsertOne(ctx, submission); err != nil {
		log.Println("SubmitContact InsertOne error:", err)
		http.Error(w, "Failed to submit message", http.StatusInternalServerError)
		return
	}

	mq.Emit(ctx, "dashboard", "contact:new", submission)
	utils.RespondWithJSON(w, http.StatusCreated, map[string]string{"status": "received"})
}

// GetSubmissions lists inbox entries for the back-office, newest first.
// ?unread=true narrows to unread ones.
func GetSubmissions(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	filter := bson.M{}
	if r.URL.Query().Get("unread") == "true" {
		filter["read"] = false
	}

	opts := options.Find().SetSort(bson.M{"createdAt": -1})
	cursor, err := db.ContactsCollection.Find(ctx, filter, opts)
	if err != nil {
		log.Println("GetSubmissions Find error:", err)
		http.Error(w, "Could not retrieve submissions", http.StatusInternalServerError)
		return
	}
	defer cursor.Close(ctx)

	var list []models.ContactSubmission
	if err := cursor.All(ctx, &list); err != nil {
		http.Error(w, "Error reading submissions", http.StatusInternalServerError)
		return
	}
	if len(list) == 0 {
		list = []models.ContactSubmission{}
	}
	utils.RespondWithJSON(w, http.StatusOK, list)
}

// MarkRead flags one inbox entry as handled.
func MarkRead(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	res, err := db.ContactsCollection.UpdateOne(ctx,
		bson.M{"contactId": ps.ByName("contactid")},
		bson.M{"$set": bson.M{"read": true}},
	)
	if err != nil {
		log.Println("MarkRead error:", err)
		http.Error(w, "Failed to update submission", http.StatusInternalServerError)
		return
	}
	if res.MatchedCount == 0 {
		http.Error(w, "Submission not found", http.StatusNotFound)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "read"})
}

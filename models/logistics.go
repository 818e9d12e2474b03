package models

import "time"

// Shift is a named delivery window selectable at checkout.
type Shift struct {
	ShiftID   string    `json:"shiftId" bson:"shiftId"`
	Name      string    `json:"name" bson:"name"`
	NameAr    string    `json:"nameAr,omitempty" bson:"nameAr,omitempty"`
	Start     string    `json:"start" bson:"start"` // "09:00"
	End       string    `json:"end" bson:"end"`     // "13:00"
	Capacity  int       `json:"capacity,omitempty" bson:"capacity,omitempty"`
	Active    bool      `json:"active" bson:"active"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
}

type Driver struct {
	DriverID      string    `json:"driverId" bson:"driverId"`
	Name          string    `json:"name" bson:"name"`
	Phone         string    `json:"phone" bson:"phone"`
	ImageURL      string    `json:"imageUrl,omitempty" bson:"imageUrl,omitempty"`
	ImagePublicID string    `json:"imagePublicId,omitempty" bson:"imagePublicId,omitempty"`
	Active        bool      `json:"active" bson:"active"`
	CreatedAt     time.Time `json:"createdAt" bson:"createdAt"`
}

// ContactSubmission is one entry in the contact-form inbox.
type ContactSubmission struct {
	ContactID string    `json:"contactId" bson:"contactId"`
	Name      string    `json:"name" bson:"name"`
	Phone     string    `json:"phone" bson:"phone"`
	Message   string    `json:"message" bson:"message"`
	Read      bool      `json:"read" bson:"read"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
}

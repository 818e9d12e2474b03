package models

import "time"

type User struct {
	UserID    string    `json:"userid" bson:"userid"`
	Username  string    `json:"username" bson:"username"`
	Phone     string    `json:"phone,omitempty" bson:"phone,omitempty"`
	Password  string    `json:"-" bson:"password"`
	Role      string    `json:"role" bson:"role"` // "customer" or "admin"
	LastLogin time.Time `json:"lastLogin,omitempty" bson:"last_login,omitempty"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
}

package db

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	ProductsCollection   *mongo.Collection
	SuppliersCollection  *mongo.Collection
	PromotionsCollection *mongo.Collection
	OrdersCollection     *mongo.Collection
	ShiftsCollection     *mongo.Collection
	DriversCollection    *mongo.Collection
	ContactsCollection   *mongo.Collection
	UserCollection       *mongo.Collection
	Client               *mongo.Client
)

// Initialize MongoDB connection
func init() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found; using system environment")
	}

	uri := os.Getenv("MONGO_URI")
	if uri == "" {
		uri = "mongodb://localhost:27017"
	}

	var err error
	ClientOptions := options.Client().ApplyURI(uri)
	Client, err = mongo.Connect(context.TODO(), ClientOptions)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}

	ProductsCollection = Client.Database("souqdb").Collection("products")
	SuppliersCollection = Client.Database("souqdb").Collection("suppliers")
	PromotionsCollection = Client.Database("souqdb").Collection("promotions")
	OrdersCollection = Client.Database("souqdb").Collection("orders")
	ShiftsCollection = Client.Database("souqdb").Collection("shifts")
	DriversCollection = Client.Database("souqdb").Collection("drivers")
	ContactsCollection = Client.Database("souqdb").Collection("contacts")
	UserCollection = Client.Database("souqdb").Collection("users")
}

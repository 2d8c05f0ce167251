package config

import (
	"context"
	"log"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

var MongoConn *mongo.Client

var DBName string = "administrasi-rehabilitasi-db"
var UserCollection string = "users"
var PatientCollection string = "patients"
var PaymentCollection string = "payments"
var StaffCollection string = "staff"
var PayrollCollection string = "payrolls"
var AdvanceCollection string = "advances"
var BonusCollection string = "bonuses"
var DeductionCollection string = "deductions"
var GraduateCollection string = "graduates"
var SettingsCollection string = "settings"

func MongoConnect() {

	mongoURI := os.Getenv("MONGOSTRING")

	if mongoURI == "" {
		log.Fatal("MONGOSTRING belum di setting di env. coba setting dulu")
	}

	client, err := mongo.NewClient(options.Client().ApplyURI(mongoURI))
	if err != nil {
		log.Fatalf("Failed to create MongoDB client: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err = client.Connect(ctx)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}

	err = client.Ping(ctx, readpref.Primary())
	if err != nil {
		log.Fatalf("Failed to ping MongoDB: %v", err)
	}

	log.Println("Connected to MongoDB!")
	MongoConn = client
}

// InitDatabase membuat indeks yang dibutuhkan aplikasi.
func InitDatabase() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	users := GetCollection(UserCollection)
	_, err := users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		log.Printf("Warning: gagal membuat indeks unik username: %v", err)
	}

	payments := GetCollection(PaymentCollection)
	_, err = payments.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "patient_id", Value: 1}},
	})
	if err != nil {
		log.Printf("Warning: gagal membuat indeks patient_id pada payments: %v", err)
	}

	staffRefs := bson.D{{Key: "staff_id", Value: 1}}
	for _, name := range []string{PayrollCollection, AdvanceCollection, BonusCollection, DeductionCollection} {
		_, err = GetCollection(name).Indexes().CreateOne(ctx, mongo.IndexModel{Keys: staffRefs})
		if err != nil {
			log.Printf("Warning: gagal membuat indeks staff_id pada %s: %v", name, err)
		}
	}
}

func GetCollection(collectionName string) *mongo.Collection {
	if MongoConn == nil {
		log.Fatal("MongoDB untuk client tidak di inisialisasi. Panggil MongoConnect() first")
	}
	return MongoConn.Database(DBName).Collection(collectionName)
}

func DisconnectDB() {
	if MongoConn != nil {
		if err := MongoConn.Disconnect(context.Background()); err != nil {
			log.Fatalf("Error disconnecting from MongoDB: %v", err)
		}
		log.Println("Disconnect from MongoDB")
	}
}

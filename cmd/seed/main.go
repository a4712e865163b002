package main

import (
	"log"
	"os"

	"study-assistant-be/internal/config"
	"study-assistant-be/internal/model"
	"study-assistant-be/pkg/database"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func main() {
	cfg := config.Load()

	if cfg.Database.Connection == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(cfg.Database.Driver, cfg.Database.Connection)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	if err := db.AutoMigrate(model.All()...); err != nil {
		log.Fatalf("Error: AutoMigrate failed: %v", err)
	}

	email := getEnv("SEED_EMAIL", "demo@study.local")
	password := getEnv("SEED_PASSWORD", "demo12345")

	log.Println("Seeding demo account...")
	user, err := seedUser(db, email, password)
	if err != nil {
		log.Fatalf("Error: seeding user failed: %v", err)
	}

	log.Println("Seeding study sessions...")
	SeedStudySessions(db, user.Id)

	log.Printf("Seeding completed! Login with %s / %s", email, password)
}

func seedUser(db *gorm.DB, email, password string) (*model.User, error) {
	var existing model.User
	if err := db.Where("email = ?", email).First(&existing).Error; err == nil {
		log.Printf("User '%s' already exists, skipping...", email)
		return &existing, nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := model.User{
		Id:           uuid.New(),
		Email:        email,
		PasswordHash: string(hash),
		DisplayName:  "Demo Student",
	}
	if err := db.Create(&user).Error; err != nil {
		return nil, err
	}
	log.Printf("Created user: %s", email)
	return &user, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

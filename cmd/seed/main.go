package main

import (
	"log"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"

	"loan-marketplace-be/internal/entity"
	"loan-marketplace-be/internal/mapper"
	"loan-marketplace-be/pkg/database"
	"loan-marketplace-be/pkg/matching"
)

// Seeds one lender account per catalog entry so the marketplace has
// working logins out of the box. Default password: password123.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	password := os.Getenv("SEED_LENDER_PASSWORD")
	if password == "" {
		password = "password123"
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Error: Failed to hash seed password: %v", err)
	}

	lenderMapper := mapper.NewLenderMapper()

	color.Cyan("Seeding lender catalog (%d entries)...", len(matching.BuiltinOffers))

	for _, offer := range matching.BuiltinOffers {
		email := seedEmail(offer.LenderName)

		var count int64
		db.Table("lenders").Where("email = ?", email).Count(&count)
		if count > 0 {
			color.Yellow("Lender '%s' already exists, skipping...", offer.LenderName)
			continue
		}

		lender := &entity.Lender{
			Id:                 uuid.New(),
			Name:               offer.LenderName,
			Email:              email,
			PasswordHash:       string(hash),
			CompanyName:        offer.LenderName,
			RegistrationNumber: strings.ToUpper(offer.LenderId),
			LoanTypes:          []entity.LoanType{offer.LoanType},
			IsActive:           true,
			CreatedAt:          time.Now(),
		}

		if err := db.Create(lenderMapper.ToModel(lender)).Error; err != nil {
			color.Red("Error creating lender '%s': %v", offer.LenderName, err)
			continue
		}
		color.Green("Created lender: %s <%s>", offer.LenderName, email)
	}

	color.Cyan("Lender seeding completed!")
}

func seedEmail(lenderName string) string {
	slug := strings.ToLower(lenderName)
	slug = strings.ReplaceAll(slug, " ", "")
	return slug + "@lenders.example.com"
}

package main

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"cars-api/config"
	"cars-api/pkg/helpers"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	login := "demo.user"
	password := "password123"
	hash, err := helpers.HashPassword(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	var userID int64
	err = db.QueryRow(`
		INSERT INTO users (first_name, last_name, birthday, login, password, email, phone, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, 'ACTIVE')
		ON CONFLICT (login) DO UPDATE SET password = EXCLUDED.password, updated_at = now()
		RETURNING id
	`, "Demo", "User", "1990-05-12", login, hash, "demo.user@example.com", "+5511999999999").Scan(&userID)
	if err != nil {
		log.Fatalf("failed to seed user: %v", err)
	}
	fmt.Printf("seeded user: id=%d login=%s password=%s\n", userID, login, password)

	cars := []struct {
		Year  int
		Plate string
		Model string
		Color string
	}{
		{2018, "PDV0001", "Audi A3", "White"},
		{2021, "PDV0002", "Honda Civic", "Black"},
	}
	for _, c := range cars {
		var carID int64
		err = db.QueryRow(`
			INSERT INTO cars (car_year, license_plate, model, color, owner_id)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (license_plate) DO UPDATE SET owner_id = EXCLUDED.owner_id
			RETURNING id
		`, c.Year, c.Plate, c.Model, c.Color, userID).Scan(&carID)
		if err != nil {
			log.Fatalf("failed to seed car %s: %v", c.Plate, err)
		}
		fmt.Printf("seeded car: id=%d plate=%s model=%s\n", carID, c.Plate, c.Model)
	}
}

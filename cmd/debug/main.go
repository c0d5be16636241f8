package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/playventures/bizlab/internal/database"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using default/environment variables")
	}

	// Construct connection string
	connString := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_HOST"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_NAME"),
	)

	ctx := context.Background()

	dbPool, err := database.NewPool(ctx, connString, 5, 30*time.Minute, time.Hour)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer dbPool.Close()

	// Dump Users
	fmt.Println("--- Users ---")
	rows, err := dbPool.Query(ctx, "SELECT user_id, username, xp, level, biz_coins, created_at FROM users ORDER BY created_at")
	if err != nil {
		log.Printf("Failed to query users: %v", err)
	} else {
		defer rows.Close()
		for rows.Next() {
			var id, username string
			var xp int64
			var level, bizCoins int
			var createdAt time.Time
			if err := rows.Scan(&id, &username, &xp, &level, &bizCoins, &createdAt); err != nil {
				log.Printf("Failed to scan user: %v", err)
			}
			fmt.Printf("ID: %s, Username: %s, XP: %d, Level: %d, BizCoins: %d, CreatedAt: %v\n",
				id, username, xp, level, bizCoins, createdAt)
		}
	}

	// Dump Portfolios
	fmt.Println("\n--- Portfolios ---")
	query := `
		SELECT u.username, up.business_id, up.manager_level, up.last_collected
		FROM user_portfolio up
		JOIN users u ON up.user_id = u.user_id
		ORDER BY u.username, up.business_id
	`
	rows, err = dbPool.Query(ctx, query)
	if err != nil {
		log.Printf("Failed to query portfolios: %v", err)
	} else {
		defer rows.Close()
		for rows.Next() {
			var username, businessID string
			var managerLevel int
			var lastCollected time.Time
			if err := rows.Scan(&username, &businessID, &managerLevel, &lastCollected); err != nil {
				log.Printf("Failed to scan portfolio row: %v", err)
			}
			fmt.Printf("User: %s, Business: %s, ManagerLevel: %d, LastCollected: %v\n",
				username, businessID, managerLevel, lastCollected)
		}
	}

	// Dump Game Saves
	fmt.Println("\n--- Game Saves ---")
	query = `
		SELECT u.username, gs.business_id, gs.updated_at
		FROM game_saves gs
		JOIN users u ON gs.user_id = u.user_id
		ORDER BY gs.updated_at DESC
	`
	rows, err = dbPool.Query(ctx, query)
	if err != nil {
		log.Printf("Failed to query game saves: %v", err)
	} else {
		defer rows.Close()
		for rows.Next() {
			var username, businessID string
			var updatedAt time.Time
			if err := rows.Scan(&username, &businessID, &updatedAt); err != nil {
				log.Printf("Failed to scan game save: %v", err)
			}
			fmt.Printf("User: %s, Business: %s, UpdatedAt: %v\n", username, businessID, updatedAt)
		}
	}
}

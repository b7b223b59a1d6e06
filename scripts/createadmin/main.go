// Command createadmin registers a back-office account.
//
//	go run ./scripts/createadmin [name] [email] [password]
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"coolrentals/config"
	"coolrentals/database"
	adminRepo "coolrentals/database/repository/admin"
	"coolrentals/services/admin"
	"coolrentals/utils"
)

func main() {
	config.LoadConfig()
	database.InitDB()

	name := argOr(1, "Admin")
	email := argOr(2, "admin@example.com")
	password := argOr(3, "admin123")

	repo, err := adminRepo.NewMongoAdminRepo()
	if err != nil {
		log.Fatalf("Failed to prepare admins collection: %v", err)
	}
	svc := admin.NewDefaultAdminService(repo, nil, 0)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	defer database.CloseDB(context.Background())

	account, err := svc.CreateAdmin(ctx, name, email, password)
	if err != nil {
		fmt.Fprintln(os.Stderr, utils.AsAppError(err).PublicMessage())
		log.Printf("Error creating admin user: %v", err)
		os.Exit(1)
	}

	fmt.Println("Admin user created successfully:")
	fmt.Println("Name:", account.Name)
	fmt.Println("Email:", account.Email)
	fmt.Println("Role:", account.Role)
}

func argOr(i int, fallback string) string {
	if len(os.Args) > i && os.Args[i] != "" {
		return os.Args[i]
	}
	return fallback
}

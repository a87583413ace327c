package main

import (
	"context"
	"errors"
	"flag"
	"log"

	"github.com/mworley/recipebox/backend/config"
	"github.com/mworley/recipebox/backend/internal/database"
	"github.com/mworley/recipebox/backend/internal/service"
)

func main() {
	email := flag.String("email", "", "email address for the admin account")
	password := flag.String("password", "", "password for the admin account")
	flag.Parse()

	if *email == "" || *password == "" {
		log.Fatal("both -email and -password are required")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	auth := service.NewAuthService(db, cfg.JWTSecret)
	user, err := auth.CreateSuperuser(context.Background(), *email, *password)
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			log.Fatalf("An account with email %s already exists", *email)
		}
		log.Fatalf("Failed to create admin: %v", err)
	}

	log.Printf("Created admin account %s (%s)", user.Email, user.ID)
}

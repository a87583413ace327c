package main

import (
	"context"
	"errors"
	"log"

	"github.com/mworley/recipebox/backend/config"
	"github.com/mworley/recipebox/backend/internal/database"
	"github.com/mworley/recipebox/backend/internal/service"
	"github.com/mworley/recipebox/backend/internal/types"
)

// Sample data for local development environments.
var sampleRecipes = []types.CreateRecipeRequest{
	{
		Title:       "Thai prawn red curry",
		TimeMinutes: 35,
		Price:       9.50,
		Description: "Fragrant red curry with king prawns and jasmine rice.",
		Tags:        []types.NameInput{{Name: "Thai"}, {Name: "Dinner"}},
		Ingredients: []types.NameInput{{Name: "Prawns"}, {Name: "Coconut milk"}, {Name: "Red curry paste"}},
	},
	{
		Title:       "Chocolate cheesecake",
		TimeMinutes: 90,
		Price:       12.00,
		Description: "Baked cheesecake with a dark chocolate ganache.",
		Tags:        []types.NameInput{{Name: "Dessert"}},
		Ingredients: []types.NameInput{{Name: "Cream cheese"}, {Name: "Dark chocolate"}},
	},
	{
		Title:       "Avocado lime toast",
		TimeMinutes: 10,
		Price:       4.00,
		Description: "Sourdough toast with smashed avocado and chili flakes.",
		Tags:        []types.NameInput{{Name: "Breakfast"}, {Name: "Vegan"}},
		Ingredients: []types.NameInput{{Name: "Avocado"}, {Name: "Sourdough"}, {Name: "Lime"}},
	},
	{
		Title:       "Mushroom risotto",
		TimeMinutes: 45,
		Price:       7.25,
		Description: "Creamy arborio rice with porcini and parmesan.",
		Tags:        []types.NameInput{{Name: "Dinner"}, {Name: "Vegetarian"}},
		Ingredients: []types.NameInput{{Name: "Arborio rice"}, {Name: "Porcini"}, {Name: "Parmesan"}},
	},
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	ctx := context.Background()
	auth := service.NewAuthService(db, cfg.JWTSecret)

	user, err := auth.Register(ctx, "Demo User", "demo@example.com", "demopass123")
	if err != nil {
		if !errors.Is(err, service.ErrEmailTaken) {
			log.Fatalf("Failed to create demo user: %v", err)
		}
		log.Println("Demo user already exists, skipping seed")
		return
	}

	images, err := service.NewImageStore(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to configure image storage: %v", err)
	}

	recipes := service.NewRecipeService(db, images)
	for _, req := range sampleRecipes {
		recipe, err := recipes.CreateRecipe(ctx, user.ID, req)
		if err != nil {
			log.Fatalf("Failed to seed recipe %q: %v", req.Title, err)
		}
		log.Printf("Seeded recipe %q (%s)", recipe.Title, recipe.ID)
	}
	log.Printf("Seeded %d recipes for %s", len(sampleRecipes), user.Email)
}

package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"github.com/eventhub/eventhub/infrastructure/service/jwt"
	"github.com/eventhub/eventhub/infrastructure/service/logger"
	"github.com/eventhub/eventhub/internal/adapter/persistence"
	"github.com/eventhub/eventhub/internal/domain"
	"github.com/eventhub/eventhub/internal/usecase"
)

// reference rows created when a resource is still empty
var seeds = []struct {
	res  domain.Resource
	rows []domain.Fields
}{
	{domain.Categories, []domain.Fields{
		{"category_name": "Music", "description": "Concerts and live sets"},
		{"category_name": "Conference", "description": "Talks and workshops"},
		{"category_name": "Wedding"},
	}},
	{domain.Countries, []domain.Fields{
		{"country_name": "Indonesia", "iso_code": "ID"},
		{"country_name": "Singapore", "iso_code": "SG"},
	}},
	{domain.EventTypes, []domain.Fields{
		{"event_type_name": "Indoor"},
		{"event_type_name": "Outdoor"},
		{"event_type_name": "Online"},
	}},
	{domain.ItemCategories, []domain.Fields{
		{"categorytxt": "Furniture"},
		{"categorytxt": "Lighting"},
		{"categorytxt": "Audio"},
	}},
	{domain.FAQs, []domain.Fields{
		{"question": "How do I get a refund?", "answer": "Refunds follow the organiser's policy shown on the ticket.", "position": 1},
		{"question": "Can I transfer my ticket?", "answer": "Yes, until 24 hours before the event starts.", "position": 2},
	}},
}

func main() {
	userID := flag.Int64("user", 1, "user id stamped on seeded rows and encoded in the printed token")
	flag.Parse()

	_ = godotenv.Load()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		log.Fatal("JWT_SECRET environment variable is required")
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		log.Fatalf("failed to connect db: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatalf("failed to ping db: %v", err)
	}

	ctx := context.Background()
	store := persistence.NewPostgresResourceStore(db)
	resources := usecase.NewResourceUseCase(store, domain.DefaultRegistry(), logger.NewNopLogger())

	for _, s := range seeds {
		existing, err := store.Count(ctx, s.res, domain.Filter{})
		if err != nil {
			log.Fatalf("failed to count %s: %v", s.res.Name, err)
		}
		if existing > 0 {
			fmt.Printf("skip %s: %d rows present\n", s.res.Name, existing)
			continue
		}
		for _, row := range s.rows {
			if _, err := resources.Create(ctx, s.res, row, userID); err != nil {
				log.Fatalf("failed to seed %s: %v", s.res.Name, err)
			}
		}
		fmt.Printf("seeded %s: %d rows\n", s.res.Name, len(s.rows))
	}

	tokens, err := jwt.NewJWTService(jwt.Config{Secret: secret})
	if err != nil {
		log.Fatalf("failed to init jwt: %v", err)
	}
	token, err := tokens.GenerateAccessToken(*userID)
	if err != nil {
		log.Fatalf("failed to sign token: %v", err)
	}

	fmt.Printf("development access token for user %d:\n%s\n", *userID, token)
}

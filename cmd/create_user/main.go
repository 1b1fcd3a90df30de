package main

import (
	"context"
	"flag"
	"log"
	"os"

	"rps_game/internal/db"
	"rps_game/internal/repository"
	"rps_game/internal/service"

	"github.com/joho/godotenv"
)

// Registers a user straight against the database, same rules as POST /api/v1/user.
func main() {
	name := flag.String("name", "", "user name (required)")
	email := flag.String("email", "", "optional email address for reminders")
	flag.Parse()

	if *name == "" {
		flag.Usage()
		os.Exit(2)
	}

	_ = godotenv.Load()
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL not set")
	}

	pool := db.Connect(dsn)
	defer pool.Close()

	ctx := context.Background()
	audit := service.NewAuditService(repository.NewAuditRepository(pool))
	users := service.NewUserService(
		repository.NewUserRepository(pool),
		repository.NewScoreRepository(pool),
		nil,
		audit,
	)

	msg, err := users.CreateUser(ctx, *name, *email)
	if err != nil {
		log.Fatalf("create user failed: %v", err)
	}
	log.Println(msg)

	u, err := users.GetUser(ctx, *name)
	if err != nil {
		log.Fatalf("get user failed: %v", err)
	}
	log.Printf("id=%d name=%s email=%q created_at=%v\n", u.ID, u.Name, u.Email, u.CreatedAt)
}

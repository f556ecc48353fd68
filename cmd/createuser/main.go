// Command createuser inserts a staff account with a bcrypt-hashed
// password. Accounts are created out-of-band; the HTTP API has no
// signup endpoint.
//
//	createuser -username ayse -password secret
package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/joho/godotenv"

	"crmsales/internal/config"
	"crmsales/internal/database"
	"crmsales/internal/repository"
)

func main() {
	username := flag.String("username", "", "login name for the new user")
	password := flag.String("password", "", "plaintext password to hash")
	flag.Parse()

	if *username == "" || *password == "" {
		log.Fatal("both -username and -password are required")
	}

	_ = godotenv.Load()

	// Only the database section is needed here; the server-side
	// variables (ports, JWT secret) stay optional for this tool.
	dbc := config.LoadDB()

	db, err := database.Open(database.Settings{
		User: dbc.User, Pass: dbc.Pass,
		Host: dbc.Host, Port: dbc.Port, Name: dbc.Name,
	})
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	id, err := repository.NewUserRepo(db).Create(ctx, *username, *password, config.BcryptCost())
	if err != nil {
		log.Fatalf("create user: %v", err)
	}
	log.Printf("created user %q with id %d", *username, id)
}

package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"viewset-bot/internal/pkg/serverutils"

	"github.com/joho/godotenv"
)

// token prints a console JWT for a participant:
//
//	go run ./cmd/token -id 42 -staff
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	id := flag.Int64("id", 0, "participant id")
	username := flag.String("username", "", "participant username")
	firstName := flag.String("first-name", "", "participant first name")
	lang := flag.String("lang", "en", "language code")
	staff := flag.Bool("staff", false, "grant staff access")
	ttl := flag.Duration("ttl", 24*time.Hour, "token lifetime")
	flag.Parse()

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		log.Fatal("Error: JWT_SECRET is not set")
	}
	if *id == 0 {
		log.Fatal("Error: -id is required")
	}

	token, err := serverutils.IssueConsoleToken(secret, serverutils.ConsoleClaims{
		ParticipantID: *id,
		Username:      *username,
		FirstName:     *firstName,
		LanguageCode:  *lang,
		IsStaff:       *staff,
	}, *ttl)
	if err != nil {
		log.Fatalf("Error: sign token: %v", err)
	}
	fmt.Println(token)
}

package main

import (
	"encoding/json"
	"log"
	"os"

	"viewset-bot/internal/entity"
	"viewset-bot/internal/model"
	"viewset-bot/pkg/database"

	"github.com/joho/godotenv"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func main() {
	// Load Environment Variables
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

	log.Println("Seeding Menu Elements...")
	seedMenu(db)

	log.Println("Seeding Catalog...")
	seedCatalog(db)

	log.Println("Seeding completed!")
}

func strPtr(s string) *string { return &s }

func buttons(rows [][]entity.MenuButton) datatypes.JSON {
	raw, err := json.Marshal(rows)
	if err != nil {
		log.Fatalf("Error: encode buttons: %v", err)
	}
	return raw
}

func seedMenu(db *gorm.DB) {
	elems := []model.MenuElem{
		{
			Command: strPtr("/help"),
			Message: "Type /start for the main menu, /me for your profile.",
			Buttons: buttons([][]entity.MenuButton{{{Text: "Categories", CallbackData: "cat/sl"}}}),
			IsVisible: true,
		},
		{
			Command:   strPtr("/about"),
			Callbacks: datatypes.JSONSlice[string]{"about"},
			Message:   "A demo shop managed entirely from chat.",
			IsVisible: true,
		},
		{
			Command:    strPtr("/unknown"),
			Message:    "Sorry, I do not know this command.",
			Buttons:    buttons([][]entity.MenuButton{{{Text: "Menu", CallbackData: "/start"}}}),
			EmptyBlock: true,
			IsVisible:  true,
		},
	}

	for _, e := range elems {
		var existing model.MenuElem
		res := db.Where("command = ?", *e.Command).FirstOrCreate(&existing, e)
		if res.Error != nil {
			log.Printf("Error creating menu element '%s': %v", *e.Command, res.Error)
		} else if res.RowsAffected == 0 {
			log.Printf("Menu element '%s' already exists, skipping...", *e.Command)
		} else {
			log.Printf("Created menu element: %s", *e.Command)
		}
	}
}

func seedCatalog(db *gorm.DB) {
	for _, name := range []string{"hats", "shoes", "cloth"} {
		var category model.Category
		if err := db.Where("name = ?", name).FirstOrCreate(&category, model.Category{Name: name}).Error; err != nil {
			log.Printf("Error creating category '%s': %v", name, err)
		}
	}
}

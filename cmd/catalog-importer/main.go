// cmd/catalog-importer - Seeds the discipleship course catalog from a JSON file
package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"faithhub/database"
	"faithhub/models"

	"github.com/joho/godotenv"
	"gorm.io/gorm/clause"
)

type JSONCourse struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Lessons     int    `json:"lessons"`
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using system environment variables")
	}

	jsonPath := "./data/courses.json"
	if len(os.Args) > 1 {
		jsonPath = os.Args[1]
	}

	data, err := os.ReadFile(jsonPath)
	if err != nil {
		log.Fatal("Failed to read JSON file:", err)
	}

	var courses []JSONCourse
	if err := json.Unmarshal(data, &courses); err != nil {
		log.Fatal("Failed to parse JSON:", err)
	}

	fmt.Printf("Found %d courses\n", len(courses))

	database.InitDB()
	defer database.CloseDB()
	db := database.GetDB()

	imported := 0
	for _, c := range courses {
		if c.ID == "" || c.Title == "" {
			log.Printf("Skipping course with missing id or title: %+v", c)
			continue
		}

		course := models.Course{
			ID:          c.ID,
			Title:       c.Title,
			Description: c.Description,
			Category:    c.Category,
			Lessons:     c.Lessons,
			IsActive:    true,
		}

		// Upsert so re-running the importer refreshes existing entries
		if err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).Create(&course).Error; err != nil {
			log.Printf("Failed to import course %s: %v", c.ID, err)
			continue
		}
		imported++
	}

	fmt.Printf("✅ Imported %d/%d courses\n", imported, len(courses))
}

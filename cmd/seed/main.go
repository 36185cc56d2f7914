// Seeds the database with a starter wedding and one record of each child
// type. Safe to run repeatedly: it does nothing once a wedding exists.
package main

import (
	"context"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/everafter/wedding-planner/internal/config"
	"github.com/everafter/wedding-planner/internal/db"
	"github.com/everafter/wedding-planner/internal/planner"
)

func main() {
	_ = godotenv.Load()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg := config.Load()
	if cfg.DatabaseURL == "" {
		log.Fatal().Msg("DATABASE_URL is not set")
	}

	conn, err := db.Open(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("db connect failed")
	}
	defer conn.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	repo := planner.NewRepo(conn)

	existing, err := repo.FirstWedding(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("seed lookup failed")
	}
	if existing != nil {
		log.Info().Int64("wedding_id", existing.ID).Msg("already seeded, nothing to do")
		return
	}

	wedding := &planner.Wedding{
		Name:      "Alex & Jordan Wedding",
		Date:      planner.NewDate(time.Now().AddDate(0, 0, 90)),
		VenueName: "Rose Garden Estate",
	}
	if err := repo.CreateWedding(ctx, wedding); err != nil {
		log.Fatal().Err(err).Msg("seed wedding failed")
	}

	email := "taylor@example.com"
	phone := "+1 555 111 2222"
	notes := "Vegetarian"
	guest := &planner.Guest{
		WeddingID:    wedding.ID,
		Name:         "Taylor Morgan",
		Email:        &email,
		Phone:        &phone,
		PlusOneCount: 1,
		DietaryNotes: &notes,
	}
	if err := repo.CreateGuest(ctx, guest); err != nil {
		log.Fatal().Err(err).Msg("seed guest failed")
	}

	entry := &planner.GuestbookEntry{
		WeddingID: wedding.ID,
		GuestName: "Sam Lee",
		Message:   "Wishing you both a lifetime of joy and adventure!",
		IsPublic:  true,
	}
	if err := repo.CreateGuestbookEntry(ctx, entry); err != nil {
		log.Fatal().Err(err).Msg("seed guestbook entry failed")
	}

	task := &planner.Task{
		WeddingID: wedding.ID,
		Title:     "Confirm caterer final headcount",
		Status:    planner.StatusInProgress,
		Priority:  planner.PriorityHigh,
	}
	if err := repo.CreateTask(ctx, task); err != nil {
		log.Fatal().Err(err).Msg("seed task failed")
	}

	log.Info().Int64("wedding_id", wedding.ID).Msg("seed data created")
}

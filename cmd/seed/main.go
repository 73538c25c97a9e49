package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/julianojcs/ibs/internal/core/domain"
	"github.com/julianojcs/ibs/internal/platform/config"
	"github.com/julianojcs/ibs/internal/repositories/database/pgsql"
	"github.com/julianojcs/ibs/pkg/database"
)

// Seeds the course catalog. Safe to run repeatedly: entries are upserted by
// their code.
func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx := context.Background()
	dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer dbPool.Close()

	courseRepo := pgsql.NewCourseRepository(dbPool)

	now := time.Now()
	courses := []domain.Course{
		{
			CourseID:    uuid.NewString(),
			Name:        "International Business Summer School 2024",
			Code:        "IBS-LDN-2024",
			Description: "Summer intensive on international business, London campus.",
			StartDate:   time.Date(2024, time.July, 1, 0, 0, 0, 0, time.UTC),
			EndDate:     time.Date(2024, time.August, 9, 0, 0, 0, 0, time.UTC),
			Location:    "London, UK",
			IsActive:    true,
			CreatedAt:   now,
			UpdatedAt:   now,
		},
		{
			CourseID:    uuid.NewString(),
			Name:        "International Business Summer School 2025",
			Code:        "IBS-LDN-2025",
			Description: "Summer intensive on international business, London campus.",
			StartDate:   time.Date(2025, time.June, 30, 0, 0, 0, 0, time.UTC),
			EndDate:     time.Date(2025, time.August, 8, 0, 0, 0, 0, time.UTC),
			Location:    "London, UK",
			IsActive:    true,
			CreatedAt:   now,
			UpdatedAt:   now,
		},
		{
			CourseID:    uuid.NewString(),
			Name:        "Global Management Winter Program 2025",
			Code:        "GMW-LDN-2025",
			Description: "Winter program on global management and strategy.",
			StartDate:   time.Date(2025, time.January, 6, 0, 0, 0, 0, time.UTC),
			EndDate:     time.Date(2025, time.February, 14, 0, 0, 0, 0, time.UTC),
			Location:    "London, UK",
			IsActive:    true,
			CreatedAt:   now,
			UpdatedAt:   now,
		},
	}

	for _, course := range courses {
		if err := courseRepo.UpsertCourse(ctx, course); err != nil {
			logger.Error("Failed to seed course",
				slog.String("code", course.Code), slog.String("error", err.Error()))
			os.Exit(1)
		}
		logger.Info("Seeded course", slog.String("code", course.Code))
	}

	logger.Info("Course catalog seeded", slog.Int("count", len(courses)))
}

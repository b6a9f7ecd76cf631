package database

import (
	"log"
	"strings"

	"gorm.io/driver/postgres"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	_ "modernc.org/sqlite"

	"badmintok/internal/domain"
)

func Connect(dsn string) (*gorm.DB, error) {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		log.Println("Connecting to PostgreSQL...")
		return gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	}

	log.Println("Using SQLite for local development:", dsn)

	return gorm.Open(
		gormsqlite.New(gormsqlite.Config{
			DriverName: "sqlite",
			DSN:        dsn,
		}),
		&gorm.Config{TranslateError: true},
	)
}

// Migrate creates/updates the schema for every domain table. Also used by
// tests against in-memory SQLite.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.User{},
		&domain.Profile{},
		&domain.RefreshToken{},
		&domain.Band{},
		&domain.BandMember{},
		&domain.BandBookmark{},
		&domain.BandPost{},
		&domain.BandComment{},
		&domain.BandPostLike{},
		&domain.BandVote{},
		&domain.BandVoteOption{},
		&domain.BandVoteChoice{},
		&domain.BandSchedule{},
		&domain.BandScheduleApplication{},
		&domain.Category{},
		&domain.Post{},
		&domain.PostImage{},
		&domain.Comment{},
		&domain.PostLike{},
		&domain.ContestCategory{},
		&domain.Contest{},
		&domain.ContestLike{},
		&domain.Notification{},
		&domain.UserBlock{},
		&domain.Report{},
		&domain.Inquiry{},
	)
}

package database

import (
	"context"
	"fmt"
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	config "github.com/nileshk/portfolio_backend/configs"
	"github.com/nileshk/portfolio_backend/models"
)

// DB is the process-wide connection handle. It is opened exactly once in
// main before any request handling starts; everything downstream receives
// it through constructors.
var DB *gorm.DB

func ConnectDB() *gorm.DB {
	var err error
	dsn := config.Config("DATABASE_URL")

	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		PrepareStmt:            false,
		SkipDefaultTransaction: true,
	})
	if err != nil {
		log.Fatalf("🔥 Failed to connect to database: %v", err)
	}

	fmt.Println("✅ Database connected successfully")
	return DB
}

func Migrate() {
	err := DB.AutoMigrate(
		&models.Booking{},
		&models.ContactMessage{},
	)
	if err != nil {
		log.Fatalf("🔥 Failed to migrate database: %v", err)
	}
	fmt.Println("✅ Database migration successful")
}

// Health is the readiness probe: pings the underlying pool on demand.
func Health(ctx context.Context) error {
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

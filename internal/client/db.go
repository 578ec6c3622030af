package client

import (
	"log"
	"strings"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"khmer-shop-backend/internal/model"
)

// InitDB opens the database behind databaseURL (mysql DSN, or a sqlite path
// prefixed with "sqlite://") and migrates the schema.
func InitDB(databaseURL string) *gorm.DB {
	var dialector gorm.Dialector
	if path, ok := strings.CutPrefix(databaseURL, "sqlite://"); ok {
		dialector = sqlite.Open(path)
	} else {
		dialector = mysql.Open(databaseURL)
	}

	db, err := gorm.Open(dialector, &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatal("failed to connect to database:", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatal(err)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(50)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := Migrate(db); err != nil {
		log.Fatal(err)
	}

	return db
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.Category{},
		&model.Product{},
		&model.Cart{},
		&model.CartItem{},
		&model.Order{},
		&model.OrderItem{},
		&model.PaymentProof{},
	)
}

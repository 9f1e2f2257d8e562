package postgres

import (
	"github.com/recgames/board-game-server/internal/domain"
	"github.com/recgames/board-game-server/internal/repository"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func NewConnection(databaseURL string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, err
	}

	// Auto-migrate tables
	err = db.AutoMigrate(
		&domain.Game{},
		&domain.Person{},
		&domain.GameType{},
		&domain.Category{},
		&domain.Mechanic{},
		&domain.User{},
		&domain.Collection{},
		&domain.Ranking{},
	)
	if err != nil {
		return nil, err
	}

	return db, nil
}

func NewRepositories(db *gorm.DB) *repository.Repositories {
	return &repository.Repositories{
		Game:       NewGameRepository(db),
		Stats:      NewStatsRepository(db),
		Collection: NewCollectionRepository(db),
		User:       NewUserRepository(db),
		Ranking:    NewRankingRepository(db),
		Entity:     NewEntityRepository(db),
	}
}

package infra

import (
	"barcontrol/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase abre a conexão GORM (backend pgx) e roda AutoMigrate para o
// esquema completo. O esquema é pequeno o suficiente para dispensar
// migrations SQL versionadas.
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := db.AutoMigrate(
		&model.Usuario{},
		&model.Produto{},
		&model.ProdutoComponente{},
		&model.Mesa{},
		&model.Caixa{},
		&model.CaixaMov{},
		&model.Comanda{},
		&model.ItemComanda{},
		&model.MovEstoque{},
		&model.LogAcao{},
	); err != nil {
		return nil, err
	}

	return db, nil
}

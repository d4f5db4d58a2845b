package model

import (
	"time"

	"github.com/google/uuid"
)

type Mesa struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Numero    string    `gorm:"size:20;uniqueIndex;not null"`
	Descricao *string   `gorm:"size:200"`
	Ativo     bool      `gorm:"default:true"`
	CriadoEm  time.Time `gorm:"autoCreateTime"`
}

func (Mesa) TableName() string { return "mesas" }

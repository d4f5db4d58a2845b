package model

import (
	"time"

	"github.com/google/uuid"
)

// LogAcao é a trilha de auditoria de toda operação mutante. Persistida de
// forma assíncrona pelo worker de auditoria.
type LogAcao struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Usuario  string    `gorm:"size:120;not null;index"`
	Acao     string    `gorm:"size:120;not null;index"`
	Detalhe  *string   `gorm:"size:500"`
	IP       *string   `gorm:"size:64"`
	DataHora time.Time `gorm:"index;autoCreateTime"`
}

func (LogAcao) TableName() string { return "logs" }

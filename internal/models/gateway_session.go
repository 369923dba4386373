package models

import (
	"time"

	"gorm.io/datatypes"
)

// GatewaySession - запись сессии шлюза в БД (вариант durable storage "postgres").
// Token и UserBlob пишутся и стираются только вместе: строка либо содержит
// полную пару {токен, пользователь}, либо не существует.
type GatewaySession struct {
	ID        string         `gorm:"type:uuid;primaryKey"`
	Token     string         `gorm:"not null"`
	UserBlob  datatypes.JSON `gorm:"not null"`
	CreatedAt time.Time      `gorm:"default:now()"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime"`
}

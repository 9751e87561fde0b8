package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Service is an offering of a tenant (a haircut, a half-day tattoo session).
type Service struct {
	ID              string          `bson:"id" json:"id"`
	TenantID        string          `bson:"tenantId" json:"tenantId"`
	Name            string          `bson:"name" json:"name"`
	Description     string          `bson:"description,omitempty" json:"description,omitempty"`
	DurationMinutes int             `bson:"durationMinutes" json:"durationMinutes"`
	Price           decimal.Decimal `bson:"price" json:"price"` // fixed price charged for non-auction slots
	Active          bool            `bson:"active" json:"active"`
	CreatedAt       time.Time       `bson:"createdAt" json:"createdAt"`
}

// ServiceInput is the payload for creating a service.
type ServiceInput struct {
	Name            string          `json:"name" binding:"required"`
	Description     string          `json:"description"`
	DurationMinutes int             `json:"durationMinutes" binding:"required,min=1"`
	Price           decimal.Decimal `json:"price"`
}

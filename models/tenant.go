package models

import "time"

// Tenant is a business account. Services, staff and slots are scoped to it.
type Tenant struct {
	ID        string    `bson:"id" json:"id"`
	Slug      string    `bson:"slug" json:"slug"` // URL handle, unique
	Name      string    `bson:"name" json:"name"`
	Kind      string    `bson:"kind" json:"kind"`         // "barbershop", "tattoo_studio", "other"
	Timezone  string    `bson:"timezone" json:"timezone"` // IANA name, e.g. "Europe/Lisbon"
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}

const (
	TenantKindBarbershop   = "barbershop"
	TenantKindTattooStudio = "tattoo_studio"
	TenantKindOther        = "other"
)

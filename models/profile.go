package models

import "time"

const (
	RoleCustomer = "customer"
	RoleProvider = "provider"
	RoleOwner    = "owner"
)

// Profile describes an authenticated user. The ID is the subject issued by the
// hosted auth provider. Staff (providers and owners) belong to a tenant.
type Profile struct {
	ID          string    `bson:"id" json:"id"`
	TenantID    string    `bson:"tenantId,omitempty" json:"tenantId,omitempty"`
	Role        string    `bson:"role" json:"role"`
	DisplayName string    `bson:"displayName" json:"displayName"`
	Bio         string    `bson:"bio,omitempty" json:"bio,omitempty"`
	AvatarURL   string    `bson:"avatarUrl,omitempty" json:"avatarUrl,omitempty"`
	FCMToken    string    `bson:"fcmToken,omitempty" json:"-"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time `bson:"updatedAt" json:"updatedAt"`
}

// IsStaff reports whether the profile acts on behalf of a tenant.
func (p Profile) IsStaff() bool {
	return p.Role == RoleProvider || p.Role == RoleOwner
}

// ProfileInput is the payload for creating or updating the caller's own profile.
type ProfileInput struct {
	Role        string `json:"role" binding:"required,oneof=customer provider owner"`
	TenantSlug  string `json:"tenantSlug"`
	DisplayName string `json:"displayName" binding:"required"`
	Bio         string `json:"bio"`
	AvatarURL   string `json:"avatarUrl"`
	FCMToken    string `json:"fcmToken"`
}

// Actor is the authenticated caller of a service operation.
type Actor struct {
	ID       string
	Role     string
	TenantID string
}

// ActorFromProfile builds the actor for a loaded profile.
func ActorFromProfile(p Profile) Actor {
	return Actor{ID: p.ID, Role: p.Role, TenantID: p.TenantID}
}

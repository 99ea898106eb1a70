package model

import (
	"nightlife/shared/model"
	"time"
)

const (
	TableName  = "profiles"
	EntityName = "profile"

	FieldID                    = "id"
	FieldEmail                 = "email"
	FieldPassword              = "password"
	FieldRole                  = "role"
	FieldUsername              = "username"
	FieldReferralCode          = "referral_code"
	FieldReferredBy            = "referred_by"
	FieldTier                  = "tier"
	FieldSubscriptionStatus    = "subscription_status"
	FieldSubscriptionExpiresAt = "subscription_expires_at"
	FieldLastLogin             = "last_login"
	FieldActive                = "active"

	ConstraintEmail        = "profiles_email_key"
	ConstraintReferralCode = "profiles_referral_code_key"
)

const (
	TierRegular = "regular"

	SubscriptionInactive = "inactive"
	SubscriptionActive   = "active"
)

type Profile struct {
	ID                    string     `db:"id"`
	Email                 string     `db:"email"`
	Password              string     `db:"password"`
	Role                  string     `db:"role"`
	Username              *string    `db:"username"`
	ReferralCode          string     `db:"referral_code"`
	ReferredBy            *string    `db:"referred_by"`
	Tier                  string     `db:"tier"`
	SubscriptionStatus    string     `db:"subscription_status"`
	SubscriptionExpiresAt *time.Time `db:"subscription_expires_at"`
	LastLogin             *time.Time `db:"last_login"`
	Active                bool       `db:"active"`
	model.Metadata
}

package dto

import (
	"nightlife/internal/domains/profile/model"
	"nightlife/shared"
	"nightlife/shared/constant"
	gDto "nightlife/shared/dto"
	"nightlife/shared/timezone"
)

type ProfileResponse struct {
	ID                    string  `json:"id"`
	Email                 string  `json:"email"`
	Role                  string  `json:"role"`
	Username              *string `json:"username,omitempty"`
	ReferralCode          string  `json:"referral_code"`
	ReferredBy            *string `json:"referred_by,omitempty"`
	Tier                  string  `json:"tier"`
	SubscriptionStatus    string  `json:"subscription_status"`
	SubscriptionExpiresAt *string `json:"subscription_expires_at,omitempty"`
	LastLogin             *string `json:"last_login,omitempty"`
	Active                bool    `json:"active"`
	gDto.Metadata
}

func (r *ProfileResponse) FromModel(model model.Profile) {
	r.ID = model.ID
	r.Email = model.Email
	r.Role = model.Role
	r.Username = model.Username
	r.ReferralCode = model.ReferralCode
	r.ReferredBy = model.ReferredBy
	r.Tier = model.Tier
	r.SubscriptionStatus = model.SubscriptionStatus
	r.SubscriptionExpiresAt = timezone.FormatPtr(model.SubscriptionExpiresAt, constant.DateFormat)
	r.LastLogin = timezone.FormatPtr(model.LastLogin, constant.DateFormat)
	r.Active = model.Active
	r.Metadata.FromModel(model.Metadata)
}

type GetProfilesResponse struct {
	Profiles  []ProfileResponse `json:"profiles"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetProfilesResponse) FromModels(models []model.Profile, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Profiles = make([]ProfileResponse, len(models))
	for i, mod := range models {
		r.Profiles[i].FromModel(mod)
	}
}

type UpdateProfileRequest struct {
	Username string `db:"username" json:"username" validate:"required,min=3,max=30,alphanum"`
}

// ReferralResponse is the public view of a referred friend.
type ReferralResponse struct {
	ID       string  `json:"id"`
	Username *string `json:"username,omitempty"`
	Tier     string  `json:"tier"`
	JoinedAt string  `json:"joined_at"`
}

func (r *ReferralResponse) FromModel(model model.Profile) {
	r.ID = model.ID
	r.Username = model.Username
	r.Tier = model.Tier
	r.JoinedAt = timezone.Format(model.CreatedAt, constant.DateFormat)
}

type GetReferralsResponse struct {
	ReferralCode string             `json:"referral_code"`
	Referrals    []ReferralResponse `json:"referrals"`
	TotalPage    int                `json:"total_page"`
	TotalData    int                `json:"total_data"`
}

func (r *GetReferralsResponse) FromModels(code string, models []model.Profile, totalData, limit int) {
	r.ReferralCode = code
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Referrals = make([]ReferralResponse, len(models))
	for i, mod := range models {
		r.Referrals[i].FromModel(mod)
	}
}

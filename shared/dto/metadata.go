package dto

import (
	"nightlife/shared/constant"
	"nightlife/shared/model"
	"nightlife/shared/timezone"
)

// Metadata is the audit block embedded in every resource response. Timestamps
// are rendered in the application zone.
type Metadata struct {
	CreatedAt  string `json:"created_at"`
	ModifiedAt string `json:"modified_at"`
	CreatedBy  string `json:"created_by,omitempty"`
	ModifiedBy string `json:"modified_by,omitempty"`
}

func (m *Metadata) FromModel(audit model.Metadata) {
	*m = Metadata{
		CreatedAt:  timezone.Format(audit.CreatedAt, constant.DateFormat),
		ModifiedAt: timezone.Format(audit.ModifiedAt, constant.DateFormat),
		CreatedBy:  audit.CreatedBy,
		ModifiedBy: audit.ModifiedBy,
	}

	if audit.ModifiedAt.IsZero() {
		m.ModifiedAt = m.CreatedAt
	}
}

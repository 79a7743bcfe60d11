package dto

import (
	"shareit/shared/constant"
	"shareit/shared/model"
	"shareit/shared/timezone"
)

// Audit is the creation and last modification stamp of a resource as rendered in responses.
type Audit struct {
	CreatedAt  string `json:"created_at"`
	CreatedBy  string `json:"created_by"`
	ModifiedAt string `json:"modified_at,omitempty"`
	ModifiedBy string `json:"modified_by,omitempty"`
}

func NewAudit(m model.Metadata) Audit {
	return Audit{
		CreatedAt:  timezone.Format(m.CreatedAt, constant.TimeLayout),
		CreatedBy:  m.CreatedBy,
		ModifiedAt: timezone.Format(m.ModifiedAt, constant.TimeLayout),
		ModifiedBy: m.ModifiedBy,
	}
}

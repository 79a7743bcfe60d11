package dto

import (
	"shareit/internal/domains/user/model"
	gDto "shareit/shared/dto"
)

type UserResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	gDto.Audit
}

func (r *UserResponse) FromModel(model model.User) {
	r.ID = model.ID
	r.Name = model.Name
	r.Email = model.Email
	r.Audit = gDto.NewAudit(model.Metadata)
}

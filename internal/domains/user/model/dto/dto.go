package dto

import (
	"hotel/internal/domains/user/model"
	"hotel/shared"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	gModel "hotel/shared/model"
	"hotel/shared/timezone"

	"github.com/google/uuid"
)

type CreateUserRequest struct {
	Name     string  `json:"name"            validate:"required,max=255"`
	Email    string  `json:"email"           validate:"required,email"`
	Phone    *string `json:"phone,omitempty" validate:"omitempty,phone"`
	Password string  `json:"password"        validate:"required,min=8"`
	Role     string  `json:"role"            validate:"omitempty,oneof=guest staff admin"`
}

func (r *CreateUserRequest) ToModel(username string, hashedPassword string) model.User {
	role := r.Role
	if role == "" {
		role = constant.RoleGuest
	}

	return model.User{
		ID:       uuid.NewString(),
		Name:     r.Name,
		Email:    model.NormalizeEmail(r.Email),
		Phone:    r.Phone,
		Password: hashedPassword,
		Role:     role,
		Active:   true,
		Metadata: gModel.NewMetadata(username, timezone.Now()),
	}
}

type UserResponse struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Email     string  `json:"email"`
	Phone     *string `json:"phone,omitempty"`
	Role      string  `json:"role"`
	LastLogin *string `json:"last_login,omitempty"`
	Active    bool    `json:"active"`
	gDto.Metadata
}

func (r *UserResponse) FromModel(model model.User) {
	r.ID = model.ID
	r.Name = model.Name
	r.Email = model.Email
	r.Phone = model.Phone
	r.Role = model.Role
	r.Active = model.Active

	if model.LastLogin != nil {
		lastLogin := timezone.Format(*model.LastLogin, constant.DateFormat)
		r.LastLogin = &lastLogin
	}

	r.Metadata.FromModel(model.Metadata)
}

type UpdateUserRequest struct {
	Name   string  `db:"name"   json:"name,omitempty"   validate:"omitempty,max=255"`
	Phone  *string `db:"phone"  json:"phone,omitempty"  validate:"omitempty,phone"`
	Role   string  `db:"role"   json:"role,omitempty"   validate:"omitempty,oneof=guest staff admin"`
	Active *bool   `db:"active" json:"active,omitempty"`
}

type UpdateProfileRequest struct {
	Name  string  `db:"name"  json:"name,omitempty"  validate:"omitempty,max=255"`
	Phone *string `db:"phone" json:"phone,omitempty" validate:"omitempty,phone"`
}

type GetUsersResponse struct {
	Users     []UserResponse `json:"users"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetUsersResponse) FromModels(models []model.User, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.TotalPages(totalData, limit)

	r.Users = make([]UserResponse, len(models))
	for i, mod := range models {
		r.Users[i].FromModel(mod)
	}
}

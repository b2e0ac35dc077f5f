package dto

import (
	"salon/internal/domains/user/model"
	"salon/shared"
	"salon/shared/constant"
	gDto "salon/shared/dto"
	gModel "salon/shared/model"
	"salon/shared/timezone"
	"strings"
	"time"

	"github.com/google/uuid"
)

// CreateUserRequest is how an admin adds a staff account.
type CreateUserRequest struct {
	Email    string `json:"email"    validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	Name     string `json:"name"     validate:"required,max=100"`
	Level    string `json:"level"    validate:"omitempty,oneof=admin staff"`
}

func (r *CreateUserRequest) ToModel(user, hashedPassword string) model.User {
	level := r.Level
	if level == constant.Empty {
		level = constant.RoleStaff
	}

	return model.User{
		ID:       uuid.NewString(),
		Email:    strings.ToLower(strings.TrimSpace(r.Email)),
		Password: hashedPassword,
		Name:     strings.TrimSpace(r.Name),
		Level:    level,
		Active:   true,
		Metadata: gModel.NewMetadata(user, timezone.Now()),
	}
}

type UpdateUserRequest struct {
	Name   *string `db:"name"   json:"name"   validate:"omitempty,max=100"`
	Level  *string `db:"level"  json:"level"  validate:"omitempty,oneof=admin staff client"`
	Active *bool   `db:"active" json:"active"`
}

type UserResponse struct {
	ID        string     `json:"id"`
	Email     string     `json:"email"`
	Name      string     `json:"name"`
	Level     string     `json:"level"`
	Active    bool       `json:"active"`
	LastLogin *time.Time `json:"last_login,omitempty"`
	gDto.Metadata
}

func (r *UserResponse) FromModel(model model.User) {
	r.ID = model.ID
	r.Email = model.Email
	r.Name = model.Name
	r.Level = model.Level
	r.Active = model.Active
	r.LastLogin = model.LastLogin
	r.Metadata.FromModel(model.Metadata)
}

type GetUsersResponse struct {
	Users     []UserResponse `json:"users"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetUsersResponse) FromModels(models []model.User, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Users = make([]UserResponse, len(models))
	for i, mod := range models {
		r.Users[i].FromModel(mod)
	}
}

type ListQuery struct {
	Search string `json:"search" validate:"omitempty,max=100"`
	Level  string `json:"level"  validate:"omitempty,oneof=admin staff client"`
	Active string `json:"active" validate:"omitempty,boolean"`
}

// Filter matches Search against name or email, combined with the level and
// active flags when given.
func (q ListQuery) Filter() gDto.FilterGroup {
	filter := gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd}

	if q.Search != constant.Empty {
		filter.Filters = append(filter.Filters, gDto.FilterGroup{
			Operator: gDto.FilterGroupOperatorOr,
			Filters: []any{
				gDto.Filter{ArgName: "search_name", Field: model.FieldName, Operator: gDto.FilterOperatorLike, Value: q.Search, Table: model.TableName},
				gDto.Filter{ArgName: "search_email", Field: model.FieldEmail, Operator: gDto.FilterOperatorLike, Value: q.Search, Table: model.TableName},
			},
		})
	}

	if q.Level != constant.Empty {
		filter.Filters = append(filter.Filters, gDto.Filter{
			Field: model.FieldLevel, Operator: gDto.FilterOperatorEq, Value: q.Level, Table: model.TableName,
		})
	}

	if active := shared.ConvertStringToBool(q.Active); active != nil {
		filter.Filters = append(filter.Filters, gDto.Filter{
			Field: model.FieldActive, Operator: gDto.FilterOperatorEq, Value: *active, Table: model.TableName,
		})
	}

	return filter
}

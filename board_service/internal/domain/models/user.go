package models

import "time"

type Role string

const (
	RoleJobseeker Role = "jobseeker"
	RoleEmployer  Role = "employer"
	RoleAdmin     Role = "admin"
)

// структура пользователя; CompanyID обязателен для работодателя
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      Role      `json:"role"`
	CompanyID string    `json:"companyId,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// Identity - кто делает запрос (из сессии)
type Identity struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Role      Role   `json:"role"`
	CompanyID string `json:"companyId,omitempty"`
}

// CanManageJobs - работодатель с компанией или администратор
func (i Identity) CanManageJobs() bool {
	return (i.Role == RoleEmployer || i.Role == RoleAdmin) && i.CompanyID != ""
}

// Follow - подписка пользователя на компанию
type Follow struct {
	UserID    string    `json:"userId"`
	CompanyID string    `json:"companyId"`
	CreatedAt time.Time `json:"createdAt"`
}

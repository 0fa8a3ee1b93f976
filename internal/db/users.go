package db

import (
	"poddock/internal/models"
)

const (
	PlanFree    = "free"
	PlanStarter = "starter"
	PlanPro     = "pro"
)

func GetAdminUserByEmail(email string) (*models.AdminUser, error) {
	user := &models.AdminUser{}
	err := DB.Get(user, "SELECT * FROM admin_users WHERE email = $1", email)
	if err != nil {
		return nil, err
	}
	return user, nil
}

func GetAdminUserByID(id string) (*models.AdminUser, error) {
	user := &models.AdminUser{}
	err := DB.Get(user, "SELECT * FROM admin_users WHERE id = $1", id)
	if err != nil {
		return nil, err
	}
	return user, nil
}

package project

import "time"

type Project struct {
	ID          string
	CompanyID   string
	Name        string
	ClientName  *string
	ClientEmail *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

package project

import "context"

type ProjectRepository interface {
	GetByID(ctx context.Context, id string, companyID string) (Project, error)
}

package domain

import "context"

//go:generate mockgen -source=integration_repository.go -destination=integration_repository_mock.go -package=domain

type IntegrationRepository interface {
	SaveIntegration(ctx context.Context, integration *Integration) error
	GetIntegration(ctx context.Context, userID, integrationID string) (*Integration, error)
	ListIntegrations(ctx context.Context, userID string) ([]*Integration, error)
	DeleteIntegration(ctx context.Context, userID, integrationID string) error
}

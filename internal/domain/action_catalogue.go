package domain

import "context"

//go:generate mockgen -source=action_catalogue.go -destination=action_catalogue_mock.go -package=domain

// ActionCatalogue is the read-only source of micro-actions. ListActions
// preserves catalogue order.
type ActionCatalogue interface {
	ListActions(ctx context.Context) ([]*MicroAction, error)
	GetAction(ctx context.Context, actionID string) (*MicroAction, error)
}

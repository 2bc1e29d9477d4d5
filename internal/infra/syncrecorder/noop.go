package syncrecorder

import (
	"context"

	"github.com/KasumiMercury/primind-slot-scheduler/internal/domain"
)

type noopRecorder struct{}

func NewNoopRecorder() domain.SyncResultRecorder {
	return &noopRecorder{}
}

func (n *noopRecorder) RecordSyncResult(_ context.Context, _ domain.SyncResult) error {
	return nil
}

func (n *noopRecorder) Flush(_ context.Context) error {
	return nil
}

func (n *noopRecorder) Close() error {
	return nil
}

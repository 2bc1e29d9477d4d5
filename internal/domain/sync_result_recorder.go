package domain

import "context"

type SyncResultRecorder interface {
	RecordSyncResult(ctx context.Context, result SyncResult) error
	Flush(ctx context.Context) error
	Close() error
}

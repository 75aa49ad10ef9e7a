package health

import (
	"context"
	"fmt"

	"llmprice-hq/pricebook/pkg/catalogue"
)

// SnapshotSource is implemented by catalogue.Store.
type SnapshotSource interface {
	Snapshot() (*catalogue.Snapshot, error)
}

// CatalogueCheck reports unhealthy until a catalogue snapshot exists, and
// when the snapshot holds no records.
func CatalogueCheck(src SnapshotSource) CheckFunc {
	return func(ctx context.Context) error {
		snap, err := src.Snapshot()
		if err != nil {
			return err
		}
		if len(snap.Records) == 0 {
			return fmt.Errorf("catalogue is empty (%d files)", len(snap.Files))
		}
		return nil
	}
}

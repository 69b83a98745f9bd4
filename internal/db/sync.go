package db

import (
	"context"
	"fmt"

	"github.com/sstent/atlog/internal/api"
)

// SyncActivities reconciles the local mirror with the server's full
// unfiltered history: new activities are inserted, changed ones
// updated. It returns the number of newly mirrored activities.
func SyncActivities(ctx context.Context, client *api.Client, d *SQLiteDatabase) (int, error) {
	// The mirror always reflects the complete history, so the
	// listing is fetched without filters.
	remote, err := client.ListActivities(ctx, api.Filter{})
	if err != nil {
		return 0, fmt.Errorf("failed to fetch activities: %w", err)
	}

	local, err := d.GetAll()
	if err != nil {
		return 0, fmt.Errorf("failed to get local activities: %w", err)
	}

	// Create map for quick lookup of local activities
	localMap := make(map[int]Record)
	for _, r := range local {
		localMap[r.ID] = r
	}

	inserted := 0
	for _, a := range remote {
		r, exists := localMap[a.ID]

		if !exists {
			if err := d.Insert(a); err != nil {
				return inserted, err
			}
			inserted++
			continue
		}

		if r.Activity != a {
			if err := d.Update(a); err != nil {
				return inserted, err
			}
		}
	}

	return inserted, nil
}

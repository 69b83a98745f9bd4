package db

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sstent/atlog/internal/api"
)

func newTestDatabase(t *testing.T) *SQLiteDatabase {
	t.Helper()
	d, err := NewDatabase(filepath.Join(t.TempDir(), "atlog.db"))
	require.NoError(t, err)
	t.Cleanup(func() { d.Close() })
	return d
}

func testActivity(id int) api.Activity {
	return api.Activity{
		ID:         id,
		RecordedAt: "02/06/2024 - 08:15:00",
		Country:    api.CountryPT,
		PlaceName:  "Porto",
		TypeCode:   1,
		TypeLabel:  "Carga",
		DistanceKm: 12,
	}
}

func TestInsertAndGetAll(t *testing.T) {
	d := newTestDatabase(t)

	require.NoError(t, d.Insert(testActivity(1)))
	require.NoError(t, d.Insert(testActivity(2)))

	records, err := d.GetAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, testActivity(1), records[0].Activity)
	assert.Empty(t, records[0].PhotoFile)
}

func TestUpdatePreservesPhotoFile(t *testing.T) {
	d := newTestDatabase(t)

	a := testActivity(1)
	a.PhotoURL = "/uploads/1_porto.jpg"
	require.NoError(t, d.Insert(a))
	require.NoError(t, d.MarkPhotoDownloaded(1, "/photos/1_porto.jpg"))

	a.PlaceName = "Braga"
	a.DistanceKm = 30
	require.NoError(t, d.Update(a))

	records, err := d.GetAll()
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Braga", records[0].PlaceName)
	assert.Equal(t, 30, records[0].DistanceKm)
	assert.Equal(t, "/photos/1_porto.jpg", records[0].PhotoFile,
		"server-side update must not forget the local download")
}

func TestGetPendingPhotos(t *testing.T) {
	d := newTestDatabase(t)

	noPhoto := testActivity(1)
	require.NoError(t, d.Insert(noPhoto))

	pending := testActivity(2)
	pending.PhotoURL = "/uploads/2_vigo.jpg"
	require.NoError(t, d.Insert(pending))

	done := testActivity(3)
	done.PhotoURL = "/uploads/3_braga.jpg"
	require.NoError(t, d.Insert(done))
	require.NoError(t, d.MarkPhotoDownloaded(3, "/photos/3_braga.jpg"))

	records, err := d.GetPendingPhotos()
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, 2, records[0].ID)
}

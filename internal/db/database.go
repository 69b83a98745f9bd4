package db

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/sstent/atlog/internal/api"
)

// Record is one mirrored activity plus local photo download state.
type Record struct {
	api.Activity
	PhotoFile string
}

// SQLiteDatabase mirrors fetched activity history in a local SQLite
// file and tracks which photos have been downloaded.
type SQLiteDatabase struct {
	db *sql.DB
}

// NewDatabase creates a new SQLite database connection
func NewDatabase(path string) (*SQLiteDatabase, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Create table if it doesn't exist
	if err := createSchema(db); err != nil {
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &SQLiteDatabase{db: db}, nil
}

// Close closes the database connection
func (d *SQLiteDatabase) Close() error {
	return d.db.Close()
}

// createSchema creates the database schema
func createSchema(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS activities (
		id INTEGER PRIMARY KEY,
		recorded_at TEXT NOT NULL,
		country TEXT NOT NULL,
		place_name TEXT NOT NULL,
		type_code INTEGER NOT NULL,
		type_label TEXT NOT NULL,
		distance_km INTEGER NOT NULL,
		photo_url TEXT NOT NULL DEFAULT '',
		photo_file TEXT NOT NULL DEFAULT ''
	);

	CREATE INDEX IF NOT EXISTS idx_photo_url ON activities(photo_url);
	`

	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// GetAll returns all mirrored activities
func (d *SQLiteDatabase) GetAll() ([]Record, error) {
	rows, err := d.db.Query(selectColumns + " FROM activities ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("failed to get activities: %w", err)
	}
	defer rows.Close()

	return scanRecords(rows)
}

// GetPendingPhotos returns mirrored activities that have a photo on
// the server but no local copy yet.
func (d *SQLiteDatabase) GetPendingPhotos() ([]Record, error) {
	rows, err := d.db.Query(selectColumns +
		" FROM activities WHERE photo_url != '' AND photo_file = '' ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("failed to get pending photos: %w", err)
	}
	defer rows.Close()

	return scanRecords(rows)
}

// Insert adds a newly seen activity to the mirror.
func (d *SQLiteDatabase) Insert(a api.Activity) error {
	_, err := d.db.Exec(
		`INSERT INTO activities
		 (id, recorded_at, country, place_name, type_code, type_label, distance_km, photo_url)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.RecordedAt, string(a.Country), a.PlaceName,
		a.TypeCode, a.TypeLabel, a.DistanceKm, a.PhotoURL,
	)
	if err != nil {
		return fmt.Errorf("failed to insert activity %d: %w", a.ID, err)
	}
	return nil
}

// Update refreshes a mirrored activity's server-side fields. The local
// photo_file column is left alone so downloads are not repeated.
func (d *SQLiteDatabase) Update(a api.Activity) error {
	_, err := d.db.Exec(
		`UPDATE activities SET recorded_at = ?, country = ?, place_name = ?,
		 type_code = ?, type_label = ?, distance_km = ?, photo_url = ?
		 WHERE id = ?`,
		a.RecordedAt, string(a.Country), a.PlaceName,
		a.TypeCode, a.TypeLabel, a.DistanceKm, a.PhotoURL, a.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update activity %d: %w", a.ID, err)
	}
	return nil
}

// MarkPhotoDownloaded records the local path of a downloaded photo.
func (d *SQLiteDatabase) MarkPhotoDownloaded(id int, filename string) error {
	_, err := d.db.Exec("UPDATE activities SET photo_file = ? WHERE id = ?",
		filename, id)
	if err != nil {
		return fmt.Errorf("failed to mark photo as downloaded: %w", err)
	}

	return nil
}

const selectColumns = `SELECT id, recorded_at, country, place_name,
	type_code, type_label, distance_km, photo_url, photo_file`

// scanRecords converts database rows to Record objects
func scanRecords(rows *sql.Rows) ([]Record, error) {
	var records []Record

	for rows.Next() {
		var r Record
		var country string

		if err := rows.Scan(&r.ID, &r.RecordedAt, &country, &r.PlaceName,
			&r.TypeCode, &r.TypeLabel, &r.DistanceKm, &r.PhotoURL, &r.PhotoFile); err != nil {
			return nil, fmt.Errorf("failed to scan activity: %w", err)
		}

		r.Country = api.Country(country)
		records = append(records, r)
	}

	return records, rows.Err()
}

package store

import (
	"database/sql"
	"errors"
	"strconv"

	"github.com/ayusman/aircanvas/internal/session"
)

// Setting keys for the drawing calibration.
const (
	keyPinchEnter      = "pinch_enter"
	keyPinchExit       = "pinch_exit"
	keySmoothingAlpha  = "smoothing_alpha"
	keyMinSegment      = "min_segment"
	keyBrushWidth      = "brush_width"
	keySelectOnRelease = "select_on_release"
)

// SettingsRepository provides key-value settings access.
type SettingsRepository struct {
	db *sql.DB
}

// Settings returns the settings repository for this store.
func (s *Store) Settings() *SettingsRepository {
	return &SettingsRepository{db: s.db}
}

// Get retrieves a setting value by key.
func (r *SettingsRepository) Get(key string) (string, error) {
	var value string
	err := r.db.QueryRow(`SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", err
	}
	return value, nil
}

// Set inserts or replaces a setting.
func (r *SettingsRepository) Set(key, value string) error {
	_, err := r.db.Exec(
		`INSERT INTO settings (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
		key, value,
	)
	return err
}

// All retrieves every setting as a map.
func (r *SettingsRepository) All() (map[string]string, error) {
	rows, err := r.db.Query(`SELECT key, value FROM settings`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	settings := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, err
		}
		settings[key] = value
	}

	return settings, rows.Err()
}

// LoadCalibration reads the session calibration from settings. Missing or
// unparsable keys keep their default value, so a fresh database yields
// session.DefaultConfig().
func (r *SettingsRepository) LoadCalibration() (session.Config, error) {
	cfg := session.DefaultConfig()

	settings, err := r.All()
	if err != nil {
		return cfg, err
	}

	loadFloat := func(key string, dst *float64) {
		if raw, ok := settings[key]; ok {
			if v, err := strconv.ParseFloat(raw, 64); err == nil {
				*dst = v
			}
		}
	}

	loadFloat(keyPinchEnter, &cfg.PinchEnter)
	loadFloat(keyPinchExit, &cfg.PinchExit)
	loadFloat(keySmoothingAlpha, &cfg.SmoothingAlpha)
	loadFloat(keyMinSegment, &cfg.MinSegment)
	loadFloat(keyBrushWidth, &cfg.BrushWidth)

	if raw, ok := settings[keySelectOnRelease]; ok {
		if v, err := strconv.ParseBool(raw); err == nil {
			cfg.SelectOnRelease = v
		}
	}

	return cfg, nil
}

// SaveCalibration writes the session calibration to settings.
func (r *SettingsRepository) SaveCalibration(cfg session.Config) error {
	values := map[string]string{
		keyPinchEnter:      strconv.FormatFloat(cfg.PinchEnter, 'g', -1, 64),
		keyPinchExit:       strconv.FormatFloat(cfg.PinchExit, 'g', -1, 64),
		keySmoothingAlpha:  strconv.FormatFloat(cfg.SmoothingAlpha, 'g', -1, 64),
		keyMinSegment:      strconv.FormatFloat(cfg.MinSegment, 'g', -1, 64),
		keyBrushWidth:      strconv.FormatFloat(cfg.BrushWidth, 'g', -1, 64),
		keySelectOnRelease: strconv.FormatBool(cfg.SelectOnRelease),
	}

	for key, value := range values {
		if err := r.Set(key, value); err != nil {
			return err
		}
	}
	return nil
}

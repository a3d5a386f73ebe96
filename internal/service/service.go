// Package service ties the recorder to persisted settings and owns the
// lifecycle of one recording session at a time. Both the CLI commands and the
// control server drive the application through it.
package service

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/danielrosehill/voicenote/internal/audio"
	"github.com/danielrosehill/voicenote/internal/config"
	"github.com/danielrosehill/voicenote/internal/quality"
)

// Status is the poll-friendly snapshot exposed to UIs.
type Status struct {
	State           audio.State `json:"state"`
	DurationSeconds float64     `json:"duration_seconds"`
	LevelDB         float64     `json:"level_db"`
	QualityPreset   string      `json:"quality_preset"`
	SaveDirectory   string      `json:"save_directory"`
}

// Service owns the recorder and the settings document backing it.
type Service struct {
	rec          *audio.Recorder
	settingsPath string

	mu       sync.Mutex
	settings config.Settings
}

// New loads settings from settingsPath and builds a recorder configured from
// them, resolving the preferred device by name if one is set.
func New(settingsPath string) *Service {
	settings := config.Load(settingsPath)
	rec := audio.NewRecorder(settings.Profile(), nil)

	if settings.PreferredDevice != "" {
		if dev := audio.FindInputDevice(settings.PreferredDevice); dev != nil {
			rec.SetDevice(dev.Index)
		} else {
			slog.Warn("Preferred input device not found, using system default",
				"device", settings.PreferredDevice)
		}
	}

	return &Service{
		rec:          rec,
		settingsPath: settingsPath,
		settings:     settings,
	}
}

// Recorder exposes the underlying state machine.
func (s *Service) Recorder() *audio.Recorder {
	return s.rec
}

// Settings returns the current settings snapshot.
func (s *Service) Settings() config.Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings
}

// Status returns the current poll snapshot.
func (s *Service) Status() Status {
	s.mu.Lock()
	settings := s.settings
	s.mu.Unlock()
	return Status{
		State:           s.rec.State(),
		DurationSeconds: s.rec.Duration(),
		LevelDB:         s.rec.Level(),
		QualityPreset:   string(s.rec.Quality().Preset),
		SaveDirectory:   settings.DefaultSavePath,
	}
}

// SetQuality switches the active preset and persists the choice. Fails while
// a recording is active.
func (s *Service) SetQuality(preset quality.Preset) error {
	profile, err := quality.ForPreset(preset)
	if err != nil {
		return err
	}
	if err := s.rec.SetQuality(profile); err != nil {
		return err
	}
	s.mu.Lock()
	s.settings.QualityPreset = string(preset)
	s.mu.Unlock()
	s.persist()
	return nil
}

// SetDevice selects an input device for the next recording and persists the
// preference by name.
func (s *Service) SetDevice(index int, name string) {
	s.rec.SetDevice(index)
	s.mu.Lock()
	s.settings.PreferredDevice = name
	s.mu.Unlock()
	s.persist()
}

// SetSaveDirectory changes the default save directory and persists it.
func (s *Service) SetSaveDirectory(dir string) {
	s.mu.Lock()
	s.settings.DefaultSavePath = dir
	s.mu.Unlock()
	s.persist()
}

// SaveToDefault saves the stopped recording to the default save directory
// under a timestamped filename and returns the written path.
func (s *Service) SaveToDefault() (string, error) {
	s.mu.Lock()
	dir := s.settings.DefaultSavePath
	s.mu.Unlock()

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("creating save directory: %w", err)
	}
	return s.rec.Save(filepath.Join(dir, GenerateFilename()))
}

// persist writes the settings document, logging rather than failing the
// calling operation.
func (s *Service) persist() {
	s.mu.Lock()
	settings := s.settings
	s.mu.Unlock()
	if err := settings.Save(s.settingsPath); err != nil {
		slog.Warn("Unable to persist settings", "path", s.settingsPath, "error", err)
	}
}

// GenerateFilename returns a timestamped voice note filename (no extension;
// the file writer normalizes it).
func GenerateFilename() string {
	return time.Now().Format("voice_note_20060102_150405")
}

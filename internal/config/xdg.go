package config

import (
	"os"
	"path/filepath"
)

// localHighscoreFile is the project-local highscore file name.
const localHighscoreFile = "highscores.json"

// XDGConfigHome returns the XDG config home or a default fallback.
func XDGConfigHome() string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return filepath.Join(home, ".config")
}

// XDGDataHome returns the XDG data home or a default fallback.
func XDGDataHome() string {
	if v := os.Getenv("XDG_DATA_HOME"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return filepath.Join(home, ".local", "share")
}

// DefaultConfigPath returns the default TOML config path.
func DefaultConfigPath() string {
	return filepath.Join(XDGConfigHome(), "typr", "config.toml")
}

// DefaultDBPath returns the default path for the session history database.
func DefaultDBPath() string {
	return filepath.Join(XDGDataHome(), "typr", "history.db")
}

// DefaultHighscorePath prefers a project-local highscores.json; when
// the working directory is not writable it falls back to the data home.
func DefaultHighscorePath() string {
	if _, err := os.Stat(localHighscoreFile); err == nil {
		return localHighscoreFile
	}
	if dirWritable(".") {
		return localHighscoreFile
	}
	return filepath.Join(XDGDataHome(), "typr", localHighscoreFile)
}

func dirWritable(dir string) bool {
	file, err := os.CreateTemp(dir, ".typr-*")
	if err != nil {
		return false
	}
	name := file.Name()
	if cerr := file.Close(); cerr != nil {
		// Best-effort close of the probe file.
		_ = cerr
	}
	if rerr := os.Remove(name); rerr != nil {
		// Best-effort cleanup of the probe file.
		_ = rerr
	}
	return true
}

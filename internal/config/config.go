package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config carries everything the server reads from the environment. It is
// built once in main and handed to the components that need it; nothing
// reads the environment after startup.
type Config struct {
	MongoURI  string
	MongoDB   string
	Port      string
	UploadDir string
	PublicDir string

	// StrictUploads requires branch, sem, subject, type, email and the
	// frontFile part on upload creation. The lenient mode copies whatever
	// arrived and stores an empty frontFile when the part is missing.
	StrictUploads bool
}

func Load() (*Config, error) {
	cfg := &Config{
		MongoURI:      os.Getenv("MONGO_URI"),
		MongoDB:       getenv("MONGO_DB", "bookbridge"),
		Port:          getenv("PORT", "5000"),
		UploadDir:     getenv("UPLOAD_DIR", "uploads"),
		PublicDir:     getenv("PUBLIC_DIR", "public"),
		StrictUploads: true,
	}

	if cfg.MongoURI == "" {
		return nil, fmt.Errorf("MONGO_URI is not set")
	}

	if v := os.Getenv("UPLOAD_STRICT"); v != "" {
		strict, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("invalid UPLOAD_STRICT %q: %w", v, err)
		}
		cfg.StrictUploads = strict
	}

	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

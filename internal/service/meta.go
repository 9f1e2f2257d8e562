package service

import (
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/recgames/board-game-server/internal/config"
	"github.com/recgames/board-game-server/internal/domain"
)

var versionRe = regexp.MustCompile(`^\D*(.+)$`)

// MetaService serves the model update timestamp and project version, both
// read from files written at build/training time.
type MetaService struct {
	cfg *config.Config
}

func NewMetaService(cfg *config.Config) *MetaService {
	return &MetaService{cfg: cfg}
}

// ModelUpdatedAt reads and parses the model timestamp file.
func (s *MetaService) ModelUpdatedAt() (time.Time, error) {
	raw, err := os.ReadFile(s.cfg.ModelUpdatedFile)
	if err != nil {
		return time.Time{}, domain.ErrNotFound
	}
	ts, err := time.Parse(time.RFC3339, strings.TrimSpace(string(raw)))
	if err != nil {
		return time.Time{}, domain.ErrNotFound
	}
	return ts.UTC(), nil
}

// ProjectVersion reads the VERSION file, stripping any leading "v" prefix.
func (s *MetaService) ProjectVersion() string {
	raw, err := os.ReadFile(s.cfg.VersionFile)
	if err != nil {
		return ""
	}
	return ParseVersion(string(raw))
}

// ParseVersion strips leading non-digit characters from a version string.
func ParseVersion(version string) string {
	version = strings.TrimSpace(version)
	if version == "" {
		return ""
	}
	match := versionRe.FindStringSubmatch(version)
	if match == nil {
		return ""
	}
	return match[1]
}

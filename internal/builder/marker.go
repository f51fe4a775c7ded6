package builder

import (
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/altuslabsxyz/objbuild/internal/paths"
)

// Marker is the advisory note a build leaves in its build directory. It is
// informational only and never used for mutual exclusion.
type Marker struct {
	BuildID   string    `toml:"build_id"`
	PID       int       `toml:"pid"`
	Host      string    `toml:"host"`
	Toolchain string    `toml:"toolchain"`
	StartedAt time.Time `toml:"started_at"`
}

func writeMarker(buildDir string, m Marker) error {
	data, err := toml.Marshal(m)
	if err != nil {
		return fmt.Errorf("failed to marshal marker: %w", err)
	}
	return os.WriteFile(paths.MarkerPath(buildDir), data, 0644)
}

// ReadMarker reads the marker left by the last build in buildDir.
func ReadMarker(buildDir string) (*Marker, error) {
	data, err := os.ReadFile(paths.MarkerPath(buildDir))
	if err != nil {
		return nil, err
	}
	var m Marker
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse marker: %w", err)
	}
	return &m, nil
}

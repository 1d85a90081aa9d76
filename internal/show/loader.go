package show

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Load reads a show file, resolves measure-indexed timing, and returns the
// show together with its base directory so the audio file path can be
// resolved relative to the show file.
//
// Schema validation beyond basic shape is the show author's concern; the
// runtime trusts segment ordering and recovers per-segment at dispatch time.
//
// Parameters:
//   - path: Path to the show YAML file
//
// Returns:
//   - *Show: Parsed show with all segment times in seconds
//   - string: Directory containing the show file
//   - error: If the file cannot be read or parsed, declares no audio file
//     or sections, or measure resolution fails
func Load(path string) (*Show, string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, "", fmt.Errorf("resolving show path: %w", err)
	}
	baseDir := filepath.Dir(abs)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("reading show file: %w", err)
	}

	var s Show
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, "", fmt.Errorf("parsing show file: %w", err)
	}

	if s.File == "" {
		return nil, "", ErrNoAudioFile
	}
	if len(s.Sections) == 0 {
		return nil, "", ErrNoSections
	}

	if err := s.ResolveTimes(); err != nil {
		return nil, "", err
	}

	return &s, baseDir, nil
}

// AudioPath returns the show's audio file path resolved against baseDir.
func (s *Show) AudioPath(baseDir string) string {
	if filepath.IsAbs(s.File) {
		return s.File
	}
	return filepath.Join(baseDir, s.File)
}

package fixtures

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/utakatalp/league-dashboard/internal/league"
	"github.com/utakatalp/league-dashboard/internal/logger"
)

// Fixture file names inside a data directory.
const (
	TeamsFile    = "teams.json"
	MatchesFile  = "matches.json"
	UpcomingFile = "next_matches.json"
)

// Source loads the fixture dataset once at process start.
type Source interface {
	Load(ctx context.Context) (*Dataset, error)
}

// FileSource reads the three fixture files from a directory.
type FileSource struct {
	Dir string
}

// NewFileSource creates a source over dir.
func NewFileSource(dir string) *FileSource {
	return &FileSource{Dir: dir}
}

func (s *FileSource) Load(ctx context.Context) (*Dataset, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	teams, err := readFile(filepath.Join(s.Dir, TeamsFile), DecodeTeams)
	if err != nil {
		return nil, err
	}
	matches, err := readFile(filepath.Join(s.Dir, MatchesFile), DecodeMatches)
	if err != nil {
		return nil, err
	}
	upcoming, err := readFile(filepath.Join(s.Dir, UpcomingFile), DecodeMatches)
	if err != nil {
		return nil, err
	}
	logger.Info("Loaded fixtures", "dir", s.Dir,
		"teams", len(teams), "matches", len(matches), "upcoming", len(upcoming))
	return &Dataset{Teams: teams, Matches: matches, Upcoming: upcoming}, nil
}

// readFile decodes one fixture file. A missing file is an empty collection.
func readFile[T any](path string, decode func(io.Reader) ([]T, error)) ([]T, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		logger.Warn("Fixture file missing, using empty collection", "path", path)
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	items, err := decode(f)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	return items, nil
}

// Standings ranks every group of the dataset.
func (d *Dataset) Standings(opts league.Options) []league.Group {
	return league.CalculateStandings(d.Teams, d.Matches, opts)
}

package player

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrDuplicateID is returned when two roster entries share an ID.
var ErrDuplicateID = errors.New("duplicate player id")

// rosterFile is the on-disk shape of a roster.
type rosterFile struct {
	Players []Config `yaml:"players"`
}

// LoadRosterFromBytes parses a YAML roster of the form:
//
//	players:
//	  - name: cautious
//	    point_threshold: 500
//	    dice_threshold: 3
//
// Postcondition: Returns at least one player with unique IDs, or an error.
func LoadRosterFromBytes(data []byte) ([]*Player, error) {
	var rf rosterFile
	if err := yaml.Unmarshal(data, &rf); err != nil {
		return nil, fmt.Errorf("parsing roster YAML: %w", err)
	}
	return FromConfigs(rf.Players)
}

// LoadRoster reads and parses the roster file at path.
//
// Precondition: path must be a readable YAML file.
func LoadRoster(path string) ([]*Player, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading roster %q: %w", path, err)
	}
	players, err := LoadRosterFromBytes(data)
	if err != nil {
		return nil, fmt.Errorf("loading %q: %w", path, err)
	}
	return players, nil
}

// FromConfigs builds players from cfgs, rejecting duplicates.
//
// Postcondition: on error, the partial result is discarded.
func FromConfigs(cfgs []Config) ([]*Player, error) {
	if len(cfgs) == 0 {
		return nil, errors.New("roster must list at least one player")
	}
	seen := make(map[string]bool, len(cfgs))
	players := make([]*Player, 0, len(cfgs))
	for i, cfg := range cfgs {
		p, err := New(cfg)
		if err != nil {
			return nil, fmt.Errorf("roster entry %d: %w", i, err)
		}
		if seen[p.ID()] {
			return nil, fmt.Errorf("roster entry %d: %w %q", i, ErrDuplicateID, p.ID())
		}
		seen[p.ID()] = true
		players = append(players, p)
	}
	return players, nil
}

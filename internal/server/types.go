// Package server defines the normalized server snapshot shared by the
// directory client, the history cache, the favorites list and the renderers.
package server

// Defaults substituted for absent upstream fields.
const (
	UnknownName   = "Unknown Server"
	Unknown       = "Unknown"
	UnknownPlayer = "Unknown"
)

// Snapshot is one normalized point-in-time read of a server's public stats.
// Values are never mutated after construction; the next poll supersedes them.
type Snapshot struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Players    int      `json:"players"`
	MaxPlayers int      `json:"maxPlayers"`
	Ping       int      `json:"ping"`
	Details    Details  `json:"details"`
	PlayerList []string `json:"playerList"`
}

// Details holds the descriptive fields shown under a server's name.
type Details struct {
	GameMode string `json:"gameMode"`
	MapName  string `json:"mapName"`
	Version  string `json:"version"`
}

// Clone returns a copy that shares no backing arrays with s.
func (s Snapshot) Clone() Snapshot {
	cp := s
	cp.PlayerList = make([]string, len(s.PlayerList))
	copy(cp.PlayerList, s.PlayerList)
	return cp
}

// Occupancy returns players as a percentage of max players, 0 when max is unknown.
func (s Snapshot) Occupancy() float64 {
	if s.MaxPlayers <= 0 {
		return 0
	}
	pct := float64(s.Players) / float64(s.MaxPlayers) * 100
	if pct > 100 {
		return 100
	}
	return pct
}

// Normalize fills any empty text fields with their documented defaults and
// clamps negative counts to zero. Used on snapshots loaded from disk.
func (s Snapshot) Normalize() Snapshot {
	cp := s.Clone()
	if cp.Name == "" {
		cp.Name = UnknownName
	}
	if cp.Details.GameMode == "" {
		cp.Details.GameMode = Unknown
	}
	if cp.Details.MapName == "" {
		cp.Details.MapName = Unknown
	}
	if cp.Details.Version == "" {
		cp.Details.Version = Unknown
	}
	if cp.Players < 0 {
		cp.Players = 0
	}
	if cp.MaxPlayers < 0 {
		cp.MaxPlayers = 0
	}
	if cp.Ping < 0 {
		cp.Ping = 0
	}
	return cp
}

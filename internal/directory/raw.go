package directory

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/rileyhilliard/cfx/internal/server"
)

// flexInt decodes a JSON number, a numeric string, or null. The directory
// reports sv_maxclients both ways depending on the endpoint.
type flexInt int

func (f *flexInt) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = 0
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			// Non-numeric strings are treated as absent rather than failing the whole payload.
			*f = 0
			return nil
		}
		*f = flexInt(n)
		return nil
	}

	var n float64
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = flexInt(int(n))
	return nil
}

func (f flexInt) value() int {
	if f < 0 {
		return 0
	}
	return int(f)
}

// rawPlayer is one entry of the upstream player list.
type rawPlayer struct {
	Name string `json:"name"`
	ID   int    `json:"id"`
	Ping int    `json:"ping"`
}

// rawData is the nested "Data" object of single and search responses.
type rawData struct {
	ID         string            `json:"id"`
	Hostname   string            `json:"hostname"`
	Clients    flexInt           `json:"clients"`
	MaxClients flexInt           `json:"sv_maxclients"`
	Players    *[]rawPlayer      `json:"players"`
	GameType   string            `json:"gametype"`
	MapName    string            `json:"mapname"`
	Server     string            `json:"server"`
	Ping       flexInt           `json:"ping"`
	Vars       map[string]string `json:"vars"`
}

// rawServer is a single-lookup response or one element of a search response.
type rawServer struct {
	EndPoint   string   `json:"EndPoint"`
	Hostname   string   `json:"hostname"`
	MaxClients flexInt  `json:"sv_maxclients"`
	Data       *rawData `json:"Data"`
}

// rawSearch is the search response envelope. Data stays raw so a
// non-array payload can be reported as no results instead of a decode error.
type rawSearch struct {
	Data json.RawMessage `json:"data"`
}

// rawListEntry is one element of the full directory listing.
type rawListEntry struct {
	Endpoint   string  `json:"endpoint"`
	Hostname   string  `json:"hostname"`
	Players    flexInt `json:"players"`
	MaxPlayers flexInt `json:"maxPlayers"`
	Locale     string  `json:"locale"`
	GameType   string  `json:"gametype"`
	MapName    string  `json:"mapname"`
}

type rawList struct {
	Servers *[]rawListEntry `json:"servers"`
}

// normalize converts one upstream server object into a Snapshot, substituting
// the documented default for every absent field. fallbackID is used when
// upstream reports no identifier at all.
func normalize(raw rawServer, fallbackID string) server.Snapshot {
	data := rawData{}
	if raw.Data != nil {
		data = *raw.Data
	}

	snap := server.Snapshot{
		ID:         firstNonEmpty(data.ID, raw.EndPoint, fallbackID),
		Name:       firstNonEmpty(data.Hostname, raw.Hostname, server.UnknownName),
		Ping:       data.Ping.value(),
		PlayerList: []string{},
		Details: server.Details{
			GameMode: firstNonEmpty(data.GameType, server.Unknown),
			MapName:  firstNonEmpty(data.MapName, server.Unknown),
			Version:  firstNonEmpty(data.Server, server.Unknown),
		},
	}

	snap.MaxPlayers = data.MaxClients.value()
	if snap.MaxPlayers == 0 {
		snap.MaxPlayers = raw.MaxClients.value()
	}
	if snap.MaxPlayers == 0 && data.Vars != nil {
		if n, err := strconv.Atoi(data.Vars["sv_maxClients"]); err == nil && n > 0 {
			snap.MaxPlayers = n
		}
	}

	if data.Players != nil {
		for _, p := range *data.Players {
			snap.PlayerList = append(snap.PlayerList, firstNonEmpty(strings.TrimSpace(p.Name), server.UnknownPlayer))
		}
		snap.Players = len(snap.PlayerList)
	} else {
		snap.Players = data.Clients.value()
	}

	return snap
}

// normalizeListEntry applies the same defaulting rules to a directory listing row.
func normalizeListEntry(raw rawListEntry) server.Snapshot {
	return server.Snapshot{
		ID:         raw.Endpoint,
		Name:       firstNonEmpty(raw.Hostname, server.UnknownName),
		Players:    raw.Players.value(),
		MaxPlayers: raw.MaxPlayers.value(),
		PlayerList: []string{},
		Details: server.Details{
			GameMode: firstNonEmpty(raw.GameType, server.Unknown),
			MapName:  firstNonEmpty(raw.MapName, server.Unknown),
			Version:  server.Unknown,
		},
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

package batch

import (
	"encoding/json"
	"fmt"
	"os"

	"armax-decoder/internal/armax"
	"armax-decoder/internal/cheatlist"
)

// Manifest is the JSON summary of one decoded listing.
type Manifest struct {
	Game   string          `json:"game"`
	GameID uint32          `json:"game_id"`
	Region string          `json:"region"`
	Cheats []ManifestEntry `json:"cheats"`
}

// ManifestEntry represents one cheat in the output manifest.
type ManifestEntry struct {
	Name          string   `json:"name"`
	Comment       string   `json:"comment,omitempty"`
	Line          int      `json:"line"`
	CheatID       uint32   `json:"cheat_id"`
	GameID        uint32   `json:"game_id"`
	Region        string   `json:"region"`
	Enable        bool     `json:"enable"`
	State         string   `json:"state"`
	VerifierWords int      `json:"verifier_words"`
	Codes         []string `json:"codes"`
	Error         string   `json:"error,omitempty"`
}

// WriteManifest writes the game summary as indented JSON.
func WriteManifest(path string, game cheatlist.Game) error {
	m := Manifest{
		Game:   game.Name,
		GameID: game.ID,
		Region: game.Region.String(),
		Cheats: make([]ManifestEntry, len(game.Cheats)),
	}
	for i, c := range game.Cheats {
		e := ManifestEntry{
			Name:          c.Name,
			Comment:       c.Comment,
			Line:          c.Line,
			CheatID:       c.ID,
			GameID:        c.GameID,
			Region:        c.Region.String(),
			Enable:        c.Enable,
			State:         c.State.String(),
			VerifierWords: c.VerifierWords,
			Codes:         []string{},
		}
		if c.State == cheatlist.Failed {
			e.Error = fmt.Sprint(c.Err)
		} else {
			for j := 0; j+1 < len(c.Codes); j += 2 {
				e.Codes = append(e.Codes, armax.FormatRaw(c.Codes[j], c.Codes[j+1]))
			}
		}
		m.Cheats[i] = e
	}

	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

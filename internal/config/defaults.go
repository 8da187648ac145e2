package config

import (
	_ "embed"
)

//go:embed defaults/settings.yaml
var defaultSettingsYAML []byte

// DefaultSettings returns the hardcoded defaults, used when even the
// embedded YAML fails to parse.
func DefaultSettings() Settings {
	return Settings{
		Keys: KeyBindings{
			MoveLeft:  []string{"left", "a"},
			MoveRight: []string{"right", "d"},
			SoftDrop:  []string{"down", "s"},
			HardDrop:  []string{" "},
			RotateCW:  []string{"up", "x"},
			RotateCCW: []string{"z"},
			Hold:      []string{"c"},
			Pause:     []string{"p", "esc"},
			Quit:      []string{"q"},
			Restart:   []string{"r"},
		},
		Visual: VisualSettings{
			ShowGhost:  true,
			BlockStyle: "solid",
		},
		Gameplay: GameplaySettings{
			DASMs: 170,
			ARRMs: 50,
		},
	}
}

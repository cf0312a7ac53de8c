// Package icons provides the glyph set for the UI, selectable between
// nerd-font, plain unicode and ascii-only styles.
package icons

// Style represents the icon style to use.
type Style string

const (
	StyleNerd    Style = "nerd"
	StyleUnicode Style = "unicode"
	StyleNone    Style = "none"
)

// Icons holds the icon characters for the current style.
type Icons struct {
	Play       string
	Pause      string
	Stop       string
	Shuffle    string
	RepeatAll  string
	RepeatOne  string
	Favorite   string
	Volume     string
	VolumeMute string
	Sleep      string
}

var (
	nerdIcons = Icons{
		Play:       "",
		Pause:      "",
		Stop:       "",
		Shuffle:    "󰒟",
		RepeatAll:  "󰑖",
		RepeatOne:  "󰑘",
		Favorite:   "󰣐",
		Volume:     "󰕾",
		VolumeMute: "󰖁",
		Sleep:      "󰒲",
	}

	unicodeIcons = Icons{
		Play:       "▶",
		Pause:      "⏸",
		Stop:       "⏹",
		Shuffle:    "🔀",
		RepeatAll:  "🔁",
		RepeatOne:  "🔂",
		Favorite:   "♥",
		Volume:     "🔊",
		VolumeMute: "🔇",
		Sleep:      "💤",
	}

	noneIcons = Icons{
		Play:       ">",
		Pause:      "||",
		Stop:       "[]",
		Shuffle:    "[S]",
		RepeatAll:  "[R]",
		RepeatOne:  "[1]",
		Favorite:   "*",
		Volume:     "vol",
		VolumeMute: "mute",
		Sleep:      "zZ",
	}

	// current holds the active icon set
	current = unicodeIcons
)

// Init initializes the icons based on the style.
// Call this once at startup with the config value.
func Init(style string) {
	switch Style(style) {
	case StyleNerd:
		current = nerdIcons
	case StyleNone:
		current = noneIcons
	default:
		current = unicodeIcons
	}
}

// Play returns the play indicator.
func Play() string { return current.Play }

// Pause returns the pause indicator.
func Pause() string { return current.Pause }

// Stop returns the stop indicator.
func Stop() string { return current.Stop }

// Shuffle returns the shuffle icon.
func Shuffle() string { return current.Shuffle }

// RepeatAll returns the repeat all icon.
func RepeatAll() string { return current.RepeatAll }

// RepeatOne returns the repeat one icon.
func RepeatOne() string { return current.RepeatOne }

// Favorite returns the favorite/heart icon.
func Favorite() string { return current.Favorite }

// Volume returns the volume icon.
func Volume() string { return current.Volume }

// VolumeMute returns the muted volume icon.
func VolumeMute() string { return current.VolumeMute }

// Sleep returns the sleep-timer icon.
func Sleep() string { return current.Sleep }

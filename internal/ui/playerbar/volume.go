package playerbar

import (
	"fmt"

	"github.com/whitehole-music/whitehole/internal/icons"
)

// RenderVolumeCompact renders the volume indicator.
// Format: "🔊  50%" or "🔇  50%" when muted.
func RenderVolumeCompact(volume float64, muted bool) string {
	pct := int(volume * 100)
	icon := icons.Volume()
	if muted {
		icon = icons.VolumeMute()
	}
	return timeStyle().Render(fmt.Sprintf("%s %3d%%", icon, pct))
}

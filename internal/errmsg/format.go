// Package errmsg provides consistent error formatting for user-facing messages.
package errmsg

import "fmt"

// Op represents an operation that can fail.
type Op string

// Operation constants - grouped by domain.
const (
	// Playback operations
	OpPlaybackStart Op = "start playback"
	OpVolumeSet     Op = "set volume"

	// Queue operations
	OpQueueAdd    Op = "add to queue"
	OpQueueRemove Op = "remove from queue"
	OpQueueLoad   Op = "restore queue"
	OpQueueSave   Op = "save queue"

	// Catalog operations
	OpSearch      Op = "search the catalog"
	OpSuggest     Op = "load suggestions"
	OpTrending    Op = "load trending tracks"
	OpNewReleases Op = "load new releases"

	// Session state operations
	OpStateOpen     Op = "open session database"
	OpVolumeLoad    Op = "restore volume"
	OpVolumeSave    Op = "save volume"
	OpFavoritesLoad Op = "restore favorites"
	OpFavoritesSave Op = "save favorites"
	OpRecentLoad    Op = "restore play history"
	OpRecentSave    Op = "save play history"

	// Favorites
	OpFavoriteToggle Op = "update favorites"

	// Initialization
	OpInitialize Op = "initialize application"
)

// Format creates a user-friendly error message.
func Format(op Op, err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Failed to %s: %v", op, err)
}

// FormatWith creates an error message with additional context.
func FormatWith(op Op, context string, err error) string {
	if err == nil {
		return ""
	}
	if context == "" {
		return Format(op, err)
	}
	return fmt.Sprintf("Failed to %s '%s': %v", op, context, err)
}

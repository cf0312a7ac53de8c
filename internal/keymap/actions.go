// Package keymap defines key bindings and action dispatch for the
// application.
package keymap

// Action represents a user-triggerable action.
type Action string

const (
	// Global actions
	ActionQuit   Action = "quit"
	ActionHelp   Action = "help"
	ActionSearch Action = "search"

	// View switching
	ActionViewSearch    Action = "view_search"
	ActionViewQueue     Action = "view_queue"
	ActionViewFavorites Action = "view_favorites"
	ActionViewRecent    Action = "view_recent"
	ActionViewDiscover  Action = "view_discover"

	// Playback actions
	ActionPlayPause     Action = "play_pause"
	ActionStop          Action = "stop"
	ActionNextTrack     Action = "next_track"
	ActionPrevTrack     Action = "prev_track"
	ActionVolumeUp      Action = "volume_up"
	ActionVolumeDown    Action = "volume_down"
	ActionToggleMute    Action = "toggle_mute"
	ActionCycleRepeat   Action = "cycle_repeat"
	ActionToggleShuffle Action = "toggle_shuffle"
	ActionSleepTimer    Action = "sleep_timer"
	ActionCancelSleep   Action = "cancel_sleep"

	// Navigation actions
	ActionMoveUp    Action = "move_up"
	ActionMoveDown  Action = "move_down"
	ActionJumpStart Action = "jump_start"
	ActionJumpEnd   Action = "jump_end"

	// Selection/activation actions
	ActionSelect      Action = "select"      // enter - play selection
	ActionAdd         Action = "add"         // a - add to queue
	ActionSuggestions Action = "suggestions" // u - suggestions for selection

	// Generic contextual actions
	ActionDelete         Action = "delete"          // d/delete - remove from queue
	ActionClear          Action = "clear"           // c - clear queue
	ActionToggleFavorite Action = "toggle_favorite" // f
	ActionMoveItemUp     Action = "move_item_up"    // shift+k
	ActionMoveItemDown   Action = "move_item_down"  // shift+j
)

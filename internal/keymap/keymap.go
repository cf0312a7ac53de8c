package keymap

// Binding describes a single key binding.
type Binding struct {
	Keys        []string
	Action      Action
	Description string
	Context     string // "global", "playback", "list", "queue"
}

// All contains all key bindings for dispatch and help generation.
var All = []Binding{
	// Global
	{[]string{"q", "ctrl+c"}, ActionQuit, "Quit application", "global"},
	{[]string{"?"}, ActionHelp, "Show help", "global"},
	{[]string{"/"}, ActionSearch, "Search", "global"},
	{[]string{"1"}, ActionViewSearch, "Search view", "global"},
	{[]string{"2"}, ActionViewQueue, "Queue view", "global"},
	{[]string{"3"}, ActionViewFavorites, "Favorites view", "global"},
	{[]string{"4"}, ActionViewRecent, "Recently played view", "global"},
	{[]string{"5"}, ActionViewDiscover, "Discover view", "global"},

	// Playback
	{[]string{" "}, ActionPlayPause, "Play/pause", "playback"},
	{[]string{"S"}, ActionStop, "Stop", "playback"},
	{[]string{"n", "right"}, ActionNextTrack, "Next track", "playback"},
	{[]string{"b", "left"}, ActionPrevTrack, "Previous track", "playback"},
	{[]string{"+", "="}, ActionVolumeUp, "Volume up", "playback"},
	{[]string{"-", "_"}, ActionVolumeDown, "Volume down", "playback"},
	{[]string{"m"}, ActionToggleMute, "Toggle mute", "playback"},
	{[]string{"r"}, ActionCycleRepeat, "Cycle repeat mode", "playback"},
	{[]string{"s"}, ActionToggleShuffle, "Toggle shuffle", "playback"},
	{[]string{"z"}, ActionSleepTimer, "Sleep timer (15 min)", "playback"},
	{[]string{"Z"}, ActionCancelSleep, "Cancel sleep timer", "playback"},

	// List navigation
	{[]string{"k", "up"}, ActionMoveUp, "Move up", "list"},
	{[]string{"j", "down"}, ActionMoveDown, "Move down", "list"},
	{[]string{"g"}, ActionJumpStart, "First item", "list"},
	{[]string{"G"}, ActionJumpEnd, "Last item", "list"},
	{[]string{"enter"}, ActionSelect, "Play selection", "list"},
	{[]string{"a"}, ActionAdd, "Add to queue", "list"},
	{[]string{"f"}, ActionToggleFavorite, "Toggle favorite", "list"},
	{[]string{"u"}, ActionSuggestions, "Suggestions for selection", "list"},

	// Queue panel
	{[]string{"d", "delete"}, ActionDelete, "Remove from queue", "queue"},
	{[]string{"c"}, ActionClear, "Clear queue", "queue"},
	{[]string{"K", "shift+k"}, ActionMoveItemUp, "Move track up", "queue"},
	{[]string{"J", "shift+j"}, ActionMoveItemDown, "Move track down", "queue"},
}

// ByContext returns key bindings filtered by context.
func ByContext(context string) []Binding {
	var result []Binding
	for _, kb := range All {
		if kb.Context == context {
			result = append(result, kb)
		}
	}
	return result
}

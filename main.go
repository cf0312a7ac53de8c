package main

import (
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/whitehole-music/whitehole/internal/app"
	"github.com/whitehole-music/whitehole/internal/catalog"
	"github.com/whitehole-music/whitehole/internal/config"
	"github.com/whitehole-music/whitehole/internal/errmsg"
	"github.com/whitehole-music/whitehole/internal/favorites"
	"github.com/whitehole-music/whitehole/internal/icons"
	"github.com/whitehole-music/whitehole/internal/logging"
	"github.com/whitehole-music/whitehole/internal/notify"
	"github.com/whitehole-music/whitehole/internal/playback"
	"github.com/whitehole-music/whitehole/internal/player"
	"github.com/whitehole-music/whitehole/internal/queue"
	"github.com/whitehole-music/whitehole/internal/recent"
	"github.com/whitehole-music/whitehole/internal/search"
	"github.com/whitehole-music/whitehole/internal/state"
	"github.com/whitehole-music/whitehole/internal/stderr"
)

func initialModel() (*app.Model, func(), error) {
	logger, closeLog, err := logging.Open()
	if err != nil {
		logger = logging.Nop()
		closeLog = func() {}
	}

	cfg, err := config.Load()
	if err != nil {
		closeLog()
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	icons.Init(cfg.IconStyle())

	// Storage is probed once; without it the session runs in memory.
	var store state.Interface
	if mgr, err := state.Open(); err == nil {
		store = mgr
	} else {
		logger.Warn().Msg(errmsg.Format(errmsg.OpStateOpen, err) + "; running without persistence")
		store = state.NewDiscard()
	}

	searchCfg := cfg.GetSearchConfig()
	cacheTTL := time.Duration(searchCfg.CacheTTLMinutes) * time.Minute

	cat := catalog.New(cfg.GetCatalogConfig(), cacheTTL, logger)
	searcher := search.New(cat,
		time.Duration(searchCfg.DebounceMs)*time.Millisecond,
		searchCfg.SuggestionLimit,
		cacheTTL)

	svc := playback.New(player.New(), queue.New(), store, cfg.GetPlayerConfig().VolumeStep)

	deps := app.Deps{
		Service:  svc,
		Searcher: searcher,
		Catalog:  cat,
		Store:    store,
		Favs:     favorites.New(),
		Recent:   recent.New(),
		Notifier: notify.NewDesktop(notify.NewLog(logger)),
		Log:      logger,
	}
	app.RestoreSession(deps)

	cleanup := func() {
		_ = store.Close()
		closeLog()
	}
	return app.New(deps), cleanup, nil
}

func main() {
	// Capture fd 2 before the audio backend initializes so ALSA noise
	// cannot tear up the TUI.
	if err := stderr.Start(); err == nil {
		defer stderr.Stop()
	}

	m, cleanup, err := initialModel()
	if err != nil {
		stderr.WriteOriginal(fmt.Sprintf("Error initializing: %v\n", err))
		os.Exit(1)
	}
	defer cleanup()

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		stderr.WriteOriginal(fmt.Sprintf("Error running program: %v\n", err))
		os.Exit(1)
	}
}

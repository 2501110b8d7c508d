package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/lanerunner/common"
	"github.com/milk9111/lanerunner/logging"
	"github.com/milk9111/lanerunner/prefabs"
	"github.com/milk9111/lanerunner/settings"
	"go.uber.org/zap"
)

func main() {
	debug := flag.Bool("debug", false, "enable debug mode")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	logLevel := flag.String("log-level", "", "log level (debug, info, warn, error)")
	watch := flag.Bool("watch", false, "reload prefabs from disk when they change")
	prefabDir := flag.String("prefabs", prefabs.Dir, "directory whose prefab files override the built-in ones")
	flag.Parse()

	logger, err := logging.New(logging.Config{Development: *debug, Level: *logLevel})
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = logger.Sync() }()

	prefabs.Dir = *prefabDir

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	prefs := settings.Open("lanerunner", logger)
	if !prefs.Persistent() {
		logger.Info("settings will not be saved")
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(common.BaseWidth, common.BaseHeight)
	ebiten.SetWindowTitle("lanerunner")
	ebiten.SetTPS(common.TPS)
	ebiten.SetFullscreen(prefs.Get().Fullscreen)

	opts := GameOptions{Logger: logger, Settings: prefs, Debug: *debug}
	if *watch {
		watcher, err := prefabs.NewWatcher(prefabs.Dir)
		if err != nil {
			logger.Warn("prefab hot reload disabled", zap.String("dir", prefabs.Dir), zap.Error(err))
		} else {
			logger.Info("watching prefabs", zap.String("dir", prefabs.Dir))
			opts.Watcher = watcher
		}
	}

	game, err := NewGame(opts)
	if err != nil {
		logger.Fatal("failed to start", zap.Error(err))
	}
	defer func() { _ = game.Close() }()

	if err := ebiten.RunGame(game); err != nil {
		logger.Error("game exited", zap.Error(err))
	}
}

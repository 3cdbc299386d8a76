package cli

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"sync"

	"github.com/tasuku43/wsdeps/internal/domain/deps"
	"github.com/tasuku43/wsdeps/internal/domain/pkgjson"
	"github.com/tasuku43/wsdeps/internal/domain/workspace"
	"github.com/tasuku43/wsdeps/internal/infra/watcher"
	"github.com/tasuku43/wsdeps/internal/ui"
)

var watchedFiles = []string{pkgjson.FileName, workspace.ConfigFileName}

func runWatch(env cmdEnv, args []string) error {
	fs, helpFlag := newCommandFlags("watch", env.out, printWatchHelp)
	rest, err := parseInterspersed(fs, args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	if *helpFlag {
		printWatchHelp(env.out)
		return nil
	}
	if len(rest) != 0 {
		return fmt.Errorf("usage: wsdeps watch")
	}

	r := newRenderer(env.out)
	var mu sync.Mutex
	refresh := func(changed []string) {
		mu.Lock()
		defer mu.Unlock()
		renderWatchSnapshot(r, env.rootDir, changed)
	}

	w, err := watcher.New(env.cfg.Watch.Debounce, watchedFiles, watcher.DefaultExcludeDirs, refresh)
	if err != nil {
		return err
	}
	defer func() { _ = w.Close() }()
	if err := w.Watch([]string{env.rootDir}); err != nil {
		return fmt.Errorf("watch %s: %w", env.rootDir, err)
	}

	refresh(nil)

	ctx, stop := signal.NotifyContext(env.ctx, os.Interrupt)
	defer stop()
	return w.Run(ctx)
}

// renderWatchSnapshot rescans the workspace. Scan errors are shown and the
// watch goes on, since the next edit may fix them.
func renderWatchSnapshot(r *ui.Renderer, rootDir string, changed []string) {
	if len(changed) > 0 {
		r.Blank()
		r.Section("Info")
		r.Bullet(fmt.Sprintf("changed (%d)", len(changed)))
		lines := make([]string, 0, len(changed))
		for _, path := range changed {
			lines = append(lines, relDir(rootDir, path))
		}
		renderTreeLines(r, lines, treeLineMuted)
		r.Blank()
	}
	packages, err := workspace.Search(rootDir)
	if err != nil {
		r.Section("Result")
		r.BulletError(err.Error())
		return
	}
	writeVersionsText(r, deps.Versions(packages))
}

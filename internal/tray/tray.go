package tray

import (
	"log/slog"
	"os/exec"
	"runtime"
	"sync"
	"sync/atomic"

	"fyne.io/systray"
)

// ShutdownFunc is called when "Exit" is clicked
type ShutdownFunc func()

// Tray manages the system tray icon and menu
type Tray struct {
	url          string
	logger       *slog.Logger
	shutdownFunc ShutdownFunc
	once         sync.Once
	shuttingDown atomic.Bool
	menuOpen     *systray.MenuItem
	menuExit     *systray.MenuItem
}

// New creates a tray whose "Open Browser" item opens url.
func New(url string, logger *slog.Logger, shutdownFn ShutdownFunc) *Tray {
	if logger == nil {
		logger = slog.Default()
	}
	return &Tray{
		url:          url,
		logger:       logger,
		shutdownFunc: shutdownFn,
	}
}

// Run initializes and runs the system tray (blocks until Quit())
func (t *Tray) Run(iconData []byte) {
	systray.Run(func() {
		t.onReady(iconData)
	}, func() {
		t.onExit()
	})
}

// Quit removes the tray icon and makes Run return.
func (t *Tray) Quit() {
	t.shuttingDown.Store(true)
	systray.Quit()
}

func (t *Tray) onReady(iconData []byte) {
	if iconData != nil {
		systray.SetIcon(iconData)
	}
	systray.SetTitle("padsynth")
	systray.SetTooltip("padsynth - " + t.url)

	t.menuOpen = systray.AddMenuItem("Open Browser", "Open web interface")
	t.menuExit = systray.AddMenuItem("Exit", "Quit application")

	// Handle menu clicks in separate goroutines to prevent blocking
	go t.handleMenuClicks()

	t.logger.Info("system tray initialized")
}

func (t *Tray) handleMenuClicks() {
	for {
		select {
		case <-t.menuOpen.ClickedCh:
			if !t.shuttingDown.Load() {
				t.openBrowser()
			}
		case <-t.menuExit.ClickedCh:
			if t.shuttingDown.CompareAndSwap(false, true) {
				t.once.Do(t.shutdownFunc)
				systray.Quit()
				return
			}
		}
	}
}

func (t *Tray) onExit() {
	t.shuttingDown.Store(true)
	t.logger.Info("system tray exiting")
}

func (t *Tray) openBrowser() {
	// Prevent multiple browser launches during shutdown
	if t.shuttingDown.Load() {
		return
	}
	if err := browserCommand(runtime.GOOS, t.url).Start(); err != nil {
		t.logger.Warn("failed to open browser", "url", t.url, "error", err)
	}
}

func browserCommand(goos, url string) *exec.Cmd {
	switch goos {
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	case "darwin":
		return exec.Command("open", url)
	default:
		return exec.Command("xdg-open", url)
	}
}

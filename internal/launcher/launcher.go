// Package launcher hands action URLs to the operating system.
package launcher

import (
	"errors"
	"fmt"
	"os/exec"
	"runtime"
	"strings"

	"nexus/internal/logging"
	"nexus/internal/response"

	"github.com/atotto/clipboard"
)

// ErrNoAction is returned when a response has no primary action to invoke.
var ErrNoAction = errors.New("no action to invoke")

// Opener opens a URL or app scheme with the desktop's default handler.
type Opener interface {
	Open(target string) error
}

// SystemOpener runs the platform's URL handler.
type SystemOpener struct {
	goos  string
	start func(name string, args ...string) error
}

// NewSystemOpener returns an opener for the running platform.
func NewSystemOpener() *SystemOpener {
	return &SystemOpener{goos: runtime.GOOS, start: startDetached}
}

// Open starts the handler and does not wait for it.
func (o *SystemOpener) Open(target string) error {
	target = strings.TrimSpace(target)
	if target == "" {
		return ErrNoAction
	}

	name, args := command(o.goos, target)
	if err := o.start(name, args...); err != nil {
		return fmt.Errorf("open %s: %w", target, err)
	}
	logging.Debug("opened action", "target", target, "handler", name)
	return nil
}

// command picks the handler. The target is passed as a single argument,
// never through a shell.
func command(goos, target string) (string, []string) {
	switch goos {
	case "darwin":
		return "open", []string{target}
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler", target}
	default:
		return "xdg-open", []string{target}
	}
}

func startDetached(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	cmd.Stdin = nil
	cmd.Stdout = nil
	cmd.Stderr = nil

	if err := cmd.Start(); err != nil {
		return err
	}
	// The handler outlives us; don't leave a zombie.
	go func() { _ = cmd.Wait() }()
	return nil
}

// OpenPrimary invokes the response's primary action. Video-bearing
// responses and responses without actions return ErrNoAction.
func OpenPrimary(o Opener, resp response.Response) (response.Action, error) {
	action, ok := resp.PrimaryAction()
	if !ok {
		return response.Action{}, ErrNoAction
	}
	return action, o.Open(action.URL)
}

// Clipboard receives copied text.
type Clipboard interface {
	WriteAll(text string) error
}

// SystemClipboard is the desktop clipboard.
type SystemClipboard struct{}

func (SystemClipboard) WriteAll(text string) error {
	if clipboard.Unsupported {
		return errors.New("clipboard is not available on this system")
	}
	return clipboard.WriteAll(text)
}

// CopyPrimary copies the primary action URL, or the first action's URL for
// a video-bearing response.
func CopyPrimary(c Clipboard, resp response.Response) (string, error) {
	url := ""
	if action, ok := resp.PrimaryAction(); ok {
		url = action.URL
	} else if len(resp.Actions) > 0 {
		url = resp.Actions[0].URL
	}
	if url == "" {
		return "", ErrNoAction
	}
	return url, c.WriteAll(url)
}

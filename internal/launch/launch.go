// Package launch opens rendered pages and preview URLs in a browser.
package launch

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
)

// System selects the platform's default handler.
const System = "system"

// Opener starts a browser on a file or URL.
type Opener struct {
	browser string
	goos    string
}

// NewOpener creates an opener for the named browser. An empty name or
// "system" uses the platform default.
func NewOpener(browser string) *Opener {
	browser = strings.TrimSpace(browser)
	if browser == "" {
		browser = System
	}
	return &Opener{browser: browser, goos: runtime.GOOS}
}

// Target turns a page path into something a browser can open. URLs pass
// through; files must exist and are made absolute.
func Target(pathOrURL string) (string, error) {
	if pathOrURL == "" {
		return "", fmt.Errorf("nothing to open")
	}
	if strings.HasPrefix(pathOrURL, "http://") || strings.HasPrefix(pathOrURL, "https://") {
		return pathOrURL, nil
	}

	abs, err := filepath.Abs(pathOrURL)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", pathOrURL, err)
	}
	if _, err := os.Stat(abs); err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("page not found: %s", abs)
		}
		return "", fmt.Errorf("checking page: %w", err)
	}
	return abs, nil
}

// ListenURL returns the browser URL for a listen address such as ":8080".
func ListenURL(addr string) string {
	if strings.HasPrefix(addr, ":") {
		addr = "localhost" + addr
	}
	if strings.HasPrefix(addr, "0.0.0.0:") {
		addr = "localhost" + strings.TrimPrefix(addr, "0.0.0.0")
	}
	return "http://" + addr + "/"
}

// Command returns the command that opens target.
func (o *Opener) Command(target string) (*exec.Cmd, error) {
	switch o.goos {
	case "darwin":
		if o.browser == System {
			return exec.Command("open", target), nil
		}
		return exec.Command("open", "-a", o.browser, target), nil
	case "linux":
		if o.browser == System {
			return exec.Command("xdg-open", target), nil
		}
		return exec.Command(o.browser, target), nil
	case "windows":
		if o.browser == System {
			return exec.Command("rundll32", "url.dll,FileProtocolHandler", target), nil
		}
		return exec.Command(o.browser, target), nil
	default:
		return nil, fmt.Errorf("unsupported platform: %s", o.goos)
	}
}

// Open starts the browser without waiting for it to exit.
func (o *Opener) Open(pathOrURL string) error {
	target, err := Target(pathOrURL)
	if err != nil {
		return err
	}
	cmd, err := o.Command(target)
	if err != nil {
		return err
	}
	return cmd.Start()
}

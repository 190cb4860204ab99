package site

import (
	"fmt"
	"net/http"
	"os/exec"
	"runtime"
	"strings"
)

// Serve starts a local HTTP file server for the static site, mounted
// under base.
func Serve(dir, base string, port int, open bool) error {
	addr := fmt.Sprintf(":%d", port)
	url := fmt.Sprintf("http://localhost:%d%s/", port, strings.TrimSuffix(base, "/"))

	if open {
		go openBrowser(url)
	}

	fmt.Printf("Serving research site at %s\n", url)
	fmt.Println("Press Ctrl+C to stop.")

	return http.ListenAndServe(addr, FileHandler(dir, base))
}

// FileHandler serves dir under the base prefix. Requests outside base are
// redirected to it.
func FileHandler(dir, base string) http.Handler {
	base = strings.TrimSuffix(base, "/")
	files := http.FileServer(http.Dir(dir))
	if base == "" {
		return files
	}
	mux := http.NewServeMux()
	mux.Handle(base+"/", http.StripPrefix(base, files))
	mux.Handle("/", http.RedirectHandler(base+"/", http.StatusFound))
	return mux
}

// OpenBrowser opens url in the default browser without waiting for it.
func OpenBrowser(url string) { openBrowser(url) }

// openBrowser opens the given URL in the default browser.
func openBrowser(url string) {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", url)
	case "darwin":
		cmd = exec.Command("open", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	_ = cmd.Start()
}

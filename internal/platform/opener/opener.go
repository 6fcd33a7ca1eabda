package opener

import (
	"os/exec"
	"runtime"
)

// System opens files with the desktop's default handler.
type System struct {
	goos string
}

func New() System {
	return System{goos: runtime.GOOS}
}

// Open starts the handler without waiting for it to exit.
func (s System) Open(path string) error {
	cmd := command(s.goos, path)
	if err := cmd.Start(); err != nil {
		return err
	}
	go func() { _ = cmd.Wait() }()
	return nil
}

func command(goos, path string) *exec.Cmd {
	switch goos {
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", path)
	case "darwin":
		return exec.Command("open", path)
	}
	return exec.Command("xdg-open", path)
}

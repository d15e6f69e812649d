package services

import (
	"errors"
	"fmt"
	"os/exec"
	"runtime"
	"strings"

	"github.com/custodia-labs/rulebook/internal/core/domain"
	"github.com/custodia-labs/rulebook/internal/core/ports/driving"
)

// Operating system identifiers.
const (
	osDarwin  = "darwin"
	osLinux   = "linux"
	osWindows = "windows"
)

// errNoClipboard is returned when no clipboard utility is installed.
var errNoClipboard = errors.New("no clipboard utility found (install xclip or xsel)")

// Ensure ActionService implements the interface.
var _ driving.ActionService = (*ActionService)(nil)

// ActionService runs OS commands for clipboard and file opening.
type ActionService struct {
	goos     string
	lookPath func(string) (string, error)
	run      func(cmd *exec.Cmd) error
}

// NewActionService creates an action service for the running platform.
func NewActionService() *ActionService {
	return &ActionService{
		goos:     runtime.GOOS,
		lookPath: exec.LookPath,
		run:      func(cmd *exec.Cmd) error { return cmd.Run() },
	}
}

// CopyToClipboard copies text to the system clipboard.
func (s *ActionService) CopyToClipboard(text string) error {
	cmd, err := s.clipboardCommand()
	if err != nil {
		return err
	}
	cmd.Stdin = strings.NewReader(text)
	if err := s.run(cmd); err != nil {
		return fmt.Errorf("copy to clipboard: %w", err)
	}
	return nil
}

// OpenPath opens path in the default application.
func (s *ActionService) OpenPath(path string) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("%w: empty path", domain.ErrInvalidInput)
	}
	cmd, err := s.openCommand(path)
	if err != nil {
		return err
	}
	if err := s.run(cmd); err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	return nil
}

func (s *ActionService) clipboardCommand() (*exec.Cmd, error) {
	switch s.goos {
	case osDarwin:
		return exec.Command("pbcopy"), nil
	case osLinux:
		// Try xclip first, fall back to xsel
		if _, err := s.lookPath("xclip"); err == nil {
			return exec.Command("xclip", "-selection", "clipboard"), nil
		}
		if _, err := s.lookPath("xsel"); err == nil {
			return exec.Command("xsel", "--clipboard", "--input"), nil
		}
		return nil, errNoClipboard
	case osWindows:
		return exec.Command("cmd", "/c", "clip"), nil
	default:
		return nil, fmt.Errorf("unsupported platform: %s", s.goos)
	}
}

func (s *ActionService) openCommand(path string) (*exec.Cmd, error) {
	switch s.goos {
	case osDarwin:
		return exec.Command("open", path), nil
	case osLinux:
		return exec.Command("xdg-open", path), nil
	case osWindows:
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", path), nil
	default:
		return nil, fmt.Errorf("unsupported platform: %s", s.goos)
	}
}

package middleware

import (
	"log"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	bm "github.com/charmbracelet/wish/bubbletea"
	"github.com/muesli/termenv"
	"github.com/solwave/fanwall/cli"
	"github.com/solwave/fanwall/pay"
	"github.com/solwave/fanwall/store"
	"github.com/solwave/fanwall/ui"
	"github.com/solwave/fanwall/util"
	"github.com/solwave/fanwall/wallet"
)

func MainTui(conf *util.AppConfig) wish.Middleware {
	teaHandler := func(s ssh.Session) *tea.Program {
		// Check for CLI command first (non-interactive mode)
		if cmd := s.Command(); len(cmd) > 0 {
			handleCLI(s, cmd, conf)
			return nil // Don't start TUI
		}

		pty, _, active := s.Pty()
		if !active {
			wish.Println(s, "no active terminal, skipping")
			return nil
		}

		identity := wallet.FromSession(s)
		if identity.Connected {
			util.LogPublicKey(s)
		} else {
			log.Printf("%s@%s opened a read-only session (no public key)", s.User(), s.LocalAddr())
		}

		// Set the global color profile to ANSI256 for Docker compatibility
		lipgloss.SetColorProfile(termenv.ANSI256)

		m := ui.NewModel(identity, conf, pty.Window.Width, pty.Window.Height)
		return tea.NewProgram(m, tea.WithFPS(60), tea.WithInput(s), tea.WithOutput(s), tea.WithAltScreen())
	}
	return bm.MiddlewareWithProgramHandler(teaHandler, termenv.ANSI256)
}

// handleCLI processes CLI commands in non-interactive mode
func handleCLI(s ssh.Session, cmd []string, conf *util.AppConfig) {
	identity := wallet.FromSession(s)

	handler := cli.NewHandler(s, store.Get(), pay.Get(), identity, conf)
	if err := handler.Execute(cmd); err != nil {
		// Error already printed by handler
		return
	}
}

package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/solwave/fanwall/domain"
	"github.com/solwave/fanwall/pay"
	"github.com/solwave/fanwall/store"
	"github.com/solwave/fanwall/util"
)

// Session interface represents the minimal session requirements for CLI operations
type Session interface {
	io.Reader
	io.Writer
}

// Handler processes CLI commands
type Handler struct {
	session  Session
	store    store.Store
	payer    pay.Payer
	identity domain.Identity
	output   *Output
	jsonMode bool
	conf     *util.AppConfig
}

// NewHandler creates a new CLI handler
func NewHandler(s Session, st store.Store, payer pay.Payer, identity domain.Identity, conf *util.AppConfig) *Handler {
	return &Handler{
		session:  s,
		store:    st,
		payer:    payer,
		identity: identity,
		jsonMode: false,
		conf:     conf,
	}
}

// Execute parses and executes a CLI command
func (h *Handler) Execute(args []string) error {
	args, h.jsonMode = parseGlobalFlags(args)
	h.output = NewOutput(h.session, h.jsonMode)

	if len(args) == 0 {
		return h.showHelp()
	}

	cmd := strings.ToLower(args[0])
	cmdArgs := args[1:]

	switch cmd {
	case "posts":
		return h.handlePosts(cmdArgs)
	case "post":
		return h.handlePost(cmdArgs)
	case "comments":
		return h.handleComments(cmdArgs)
	case "comment":
		return h.handleComment(cmdArgs)
	case "react":
		return h.handleReact(cmdArgs)
	case "tip":
		return h.handleTip(cmdArgs)
	case "--help", "-h", "help":
		return h.showHelp()
	default:
		err := fmt.Errorf("unknown command: %s", cmd)
		h.output.Error(err)
		return err
	}
}

// requireWallet gates the signed commands. A key-less session can browse but
// not write.
func (h *Handler) requireWallet() error {
	if !h.identity.Connected {
		err := fmt.Errorf("no wallet identity: reconnect with an ed25519 key")
		h.output.Error(err)
		return err
	}
	return nil
}

// parseGlobalFlags extracts global flags like --json from args
func parseGlobalFlags(args []string) ([]string, bool) {
	jsonMode := false
	var filtered []string

	for _, arg := range args {
		switch arg {
		case "--json", "-j":
			jsonMode = true
		default:
			filtered = append(filtered, arg)
		}
	}

	return filtered, jsonMode
}

// showHelp displays help information
func (h *Handler) showHelp() error {
	if h.output.IsJSON() {
		help := HelpResponse{
			Version: util.GetVersion(),
			Commands: []HelpCommand{
				{
					Name:        "posts",
					Description: "Show the fan wall",
					Usage:       "posts [-n <count>]",
					Flags:       []string{"-n <count>: limit number of posts (default 20)"},
				},
				{
					Name:        "post",
					Description: "Create a new post",
					Usage:       "post <message> or post -",
					Flags:       []string{"-: read message from stdin"},
				},
				{
					Name:        "comments",
					Description: "Show a post's comment thread",
					Usage:       "comments <post-id>",
				},
				{
					Name:        "comment",
					Description: "Add a comment to a post",
					Usage:       "comment <post-id> <text>",
				},
				{
					Name:        "react",
					Description: "Toggle an emoji reaction on a post",
					Usage:       "react <post-id> <heart|fire|rocket|clap|moon>",
				},
				{
					Name:        "tip",
					Description: "Send a SOL tip to a post's author",
					Usage:       "tip <post-id> <amount>",
				},
				{
					Name:        "help",
					Description: "Show this help message",
					Usage:       "help",
				},
			},
			GlobalFlags: []string{
				"--json, -j: output in JSON format",
			},
		}
		h.output.JSON(help)
	} else {
		h.output.Println("fanwall CLI - wallet-keyed fan page over SSH")
		h.output.Println("")
		h.output.Println("Usage: ssh -p <port> <server> <command> [options]")
		h.output.Println("")
		h.output.Println("Commands:")
		h.output.Println("  posts [-n <N>]            Show the fan wall")
		h.output.Println("  post <message>            Create a new post")
		h.output.Println("  post -                    Read message from stdin")
		h.output.Println("  comments <post-id>        Show a post's comment thread")
		h.output.Println("  comment <post-id> <text>  Add a comment")
		h.output.Println("  react <post-id> <emoji>   Toggle heart|fire|rocket|clap|moon")
		h.output.Println("  tip <post-id> <amount>    Send a SOL tip to the author")
		h.output.Println("  help                      Show this help message")
		h.output.Println("")
		h.output.Println("Global flags:")
		h.output.Println("  --json, -j                Output in JSON format")
		h.output.Println("")
		h.output.Println("Examples:")
		h.output.Println("  ssh -p 23232 localhost posts -j")
		h.output.Println("  ssh -p 23232 localhost react 7b0c... fire")
		h.output.Println("  echo \"gm\" | ssh -p 23232 localhost post -")
	}
	return nil
}

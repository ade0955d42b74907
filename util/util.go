package util

import (
	_ "embed"
	"fmt"
	"log"
	"regexp"
	"strconv"
	"strings"

	"github.com/charmbracelet/ssh"
	"github.com/mattn/go-runewidth"
	gossh "golang.org/x/crypto/ssh"
)

//go:embed version.txt
var embeddedVersion string

var urlRegex = regexp.MustCompile(`^https?://[^\s]+$`)

const LamportsPerSol = 1_000_000_000

func LogPublicKey(s ssh.Session) {
	log.Printf("%s@%s opened a new ssh-session..", s.User(), s.LocalAddr())
}

func PublicKeyToString(s ssh.PublicKey) string {
	return strings.TrimSpace(string(gossh.MarshalAuthorizedKey(s)))
}

func GetVersion() string {
	return strings.TrimSpace(embeddedVersion)
}

func GetNameAndVersion() string {
	return fmt.Sprintf("%s / %s", Name, GetVersion())
}

func IsURL(s string) bool {
	return urlRegex.MatchString(s)
}

// Truncate shortens s to the given display width, appending an ellipsis when
// something was cut. Width is measured in terminal cells, not bytes.
func Truncate(s string, width int) string {
	if runewidth.StringWidth(s) <= width {
		return s
	}
	return runewidth.Truncate(s, width, "…")
}

// ShortWallet renders a wallet address as head…tail for display.
func ShortWallet(addr string) string {
	if len(addr) <= 12 {
		return addr
	}
	return addr[:6] + "…" + addr[len(addr)-4:]
}

// ParseSol parses a decimal SOL amount into lamports. Returns an error for
// anything that is not a positive number with at most 9 fractional digits.
func ParseSol(s string) (uint64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty amount")
	}
	whole, frac, _ := strings.Cut(s, ".")
	if whole == "" {
		whole = "0"
	}
	if len(frac) > 9 {
		return 0, fmt.Errorf("amount has more than 9 decimal places")
	}
	w, err := strconv.ParseUint(whole, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q", s)
	}
	lamports := w * LamportsPerSol
	if frac != "" {
		f, err := strconv.ParseUint(frac+strings.Repeat("0", 9-len(frac)), 10, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid amount %q", s)
		}
		lamports += f
	}
	if lamports == 0 {
		return 0, fmt.Errorf("amount must be positive")
	}
	return lamports, nil
}

// FormatSol renders lamports as a decimal SOL string without trailing zeros.
func FormatSol(lamports uint64) string {
	whole := lamports / LamportsPerSol
	frac := lamports % LamportsPerSol
	if frac == 0 {
		return strconv.FormatUint(whole, 10)
	}
	fs := strings.TrimRight(fmt.Sprintf("%09d", frac), "0")
	return fmt.Sprintf("%d.%s", whole, fs)
}

// CountVisibleChars counts runes, which is what the post length limit is
// measured in.
func CountVisibleChars(s string) int {
	return len([]rune(s))
}

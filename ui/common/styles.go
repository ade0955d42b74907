package common

import "github.com/charmbracelet/lipgloss"

// ANSI256 color codes shared across views.
const (
	COLOR_ACCENT    = "135"
	COLOR_SECONDARY = "75"
	COLOR_USERNAME  = "48"
	COLOR_DIM       = "243"
	COLOR_WHITE     = "255"
	COLOR_CRITICAL  = "196"
	COLOR_SUCCESS   = "48"
	COLOR_HELP      = "243"
)

const (
	DefaultItemsPerPage     = 5
	TimelineRefreshSeconds  = 30
	HoursPerDay             = 24
	TextInputDefaultWidth   = 40
	PanelMarginVertical     = 2
	FooterHeight            = 1
	MaxContentTruncateWidth = 80
)

var (
	CaptionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(COLOR_ACCENT)).
			Bold(true)

	ListEmptyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(COLOR_DIM)).
			Italic(true)

	ListItemStyle = lipgloss.NewStyle()

	ListItemSelectedStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color(COLOR_WHITE))

	ListBadgeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(COLOR_DIM))

	ListStatusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(COLOR_SUCCESS))

	ListErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(COLOR_CRITICAL))
)

const (
	ListSelectedPrefix   = "> "
	ListUnselectedPrefix = "  "
)

func DefaultWindowWidth(width int) int {
	if width <= 0 {
		return 120
	}
	return width
}

func DefaultWindowHeight(height int) int {
	if height <= 0 {
		return 30
	}
	return height
}

// CalculateAvailableHeight leaves room for the header and footer.
func CalculateAvailableHeight(height int) int {
	h := height - 6
	if h < 10 {
		h = 10
	}
	return h
}

func CalculateLeftPanelWidth(width int) int {
	return TextInputDefaultWidth + 10
}

func CalculateRightPanelWidth(width, leftPanelWidth int) int {
	w := width - leftPanelWidth - 6
	if w < 40 {
		w = 40
	}
	return w
}

func CalculateContentWidth(panelWidth, padding int) int {
	w := panelWidth - padding
	if w < 20 {
		w = 20
	}
	return w
}

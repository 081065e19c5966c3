package shell

import "github.com/charmbracelet/lipgloss"

const (
	// ColorPrimary is purple, used for titles.
	ColorPrimary = lipgloss.Color("#7C3AED")

	// ColorMuted is gray, used for secondary text.
	ColorMuted = lipgloss.Color("#6B7280")
)

var (
	// TitleStyle is for the banner title and builtin headers.
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	// SubtitleStyle is for hints under a title.
	SubtitleStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	// BannerStyle frames the welcome banner.
	BannerStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorPrimary).
			Padding(0, 2)
)

func banner() string {
	return BannerStyle.Render(
		TitleStyle.Render("ByteShell v"+Version) + "\n" +
			SubtitleStyle.Render("Type 'help' for commands"),
	)
}

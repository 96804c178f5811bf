package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/matheuskafuri/mednews/internal/digest"
)

var asciiLogo = []string{
	`███╗   ███╗███████╗██████╗ ███╗   ██╗███████╗██╗    ██╗███████╗`,
	`████╗ ████║██╔════╝██╔══██╗████╗  ██║██╔════╝██║    ██║██╔════╝`,
	`██╔████╔██║█████╗  ██║  ██║██╔██╗ ██║█████╗  ██║ █╗ ██║███████╗`,
	`██║╚██╔╝██║██╔══╝  ██║  ██║██║╚██╗██║██╔══╝  ██║███╗██║╚════██║`,
	`██║ ╚═╝ ██║███████╗██████╔╝██║ ╚████║███████╗╚███╔███╔╝███████║`,
	`╚═╝     ╚═╝╚══════╝╚═════╝ ╚═╝  ╚═══╝╚══════╝ ╚══╝╚══╝ ╚══════╝`,
}

func renderHomeScreen(width, height int, d *digest.Digest, updateVersion string) string {
	logoStyle := lipgloss.NewStyle().Foreground(colorPrimary)
	keyStyle := lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	labelStyle := lipgloss.NewStyle().Foreground(colorText)
	dimStyle := lipgloss.NewStyle().Foreground(colorDim)

	var lines []string

	// ASCII logo
	for _, l := range asciiLogo {
		lines = append(lines, logoStyle.Render(l))
	}
	lines = append(lines, "")
	lines = append(lines, dimStyle.Render("AI in medicine, aggregated"))
	lines = append(lines, "")

	// Digest
	if d != nil {
		lines = append(lines, labelStyle.Render(fmt.Sprintf("%s. %d articles in your window.", d.Greeting, d.NewCount)))
		if d.ActiveSources != "" {
			lines = append(lines, dimStyle.Render("Most active: ")+labelStyle.Render(d.ActiveSources))
		}
		if d.Trending != "" {
			lines = append(lines, dimStyle.Render("Trending: ")+labelStyle.Render(d.Trending))
		}
		if len(d.TopicCounts) > 0 {
			limit := 3
			if len(d.TopicCounts) < limit {
				limit = len(d.TopicCounts)
			}
			parts := make([]string, limit)
			for i := 0; i < limit; i++ {
				parts[i] = fmt.Sprintf("%s (%d)", d.TopicCounts[i].Topic, d.TopicCounts[i].Count)
			}
			lines = append(lines, dimStyle.Render("Top topics: ")+labelStyle.Render(strings.Join(parts, ", ")))
		}
		lines = append(lines, "")
	}

	// Menu items
	lines = append(lines, "          "+keyStyle.Render("[e]")+"  "+labelStyle.Render("Browse / Explore"))
	lines = append(lines, "")
	lines = append(lines, "          "+keyStyle.Render("[q]")+"  "+labelStyle.Render("Quit"))

	// Update notification
	if updateVersion != "" {
		lines = append(lines, "")
		lines = append(lines, keyStyle.Render("Update available: v"+updateVersion+" → brew upgrade mednews"))
	}

	content := strings.Join(lines, "\n")
	contentHeight := strings.Count(content, "\n") + 1

	topPad := (height - contentHeight) / 3
	if topPad < 0 {
		topPad = 0
	}

	// Center horizontally
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Top,
		strings.Repeat("\n", topPad)+content)
}

package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/matheuskafuri/mednews/internal/cache"
	"github.com/matheuskafuri/mednews/internal/classify"
)

func renderPreview(article *cache.Article, width, height, scroll int) string {
	if article == nil {
		return lipglossCenter("Select an article", width, height)
	}

	contentWidth := width - 2
	if contentWidth < 10 {
		contentWidth = 10
	}

	title := previewTitleStyle.Width(contentWidth).Render(article.Title)
	source := previewSourceStyle.Render(
		fmt.Sprintf("%s · %s", article.Source, article.Published.Format("Jan 2, 2006")),
	)

	sections := []string{title, source}

	if topics := classify.Split(article.Topics); len(topics) > 0 {
		tags := make([]string, len(topics))
		for i, t := range topics {
			tags[i] = previewTopicStyle.Render(string(t))
		}
		sections = append(sections, strings.Join(tags, " "), "")
	}

	if article.AISummary != "" {
		ai := previewAIStyle.Width(contentWidth).Render("✦ " + article.AISummary)
		sections = append(sections, ai)
		if article.AITags != "" {
			sections = append(sections, previewLinkStyle.Render(article.AITags))
		}
		sections = append(sections, "")
	}

	desc := article.Summary
	if desc == "" {
		desc = "(No description available)"
	}
	body := previewBodyStyle.Width(contentWidth).Render(wrapText(desc, contentWidth))
	link := previewLinkStyle.Width(contentWidth).Render("Read more: " + article.Link)

	sections = append(sections, body, "", link)
	content := lipgloss.JoinVertical(lipgloss.Left, sections...)

	// Apply scroll offset
	lines := strings.Split(content, "\n")
	if scroll > 0 && scroll < len(lines) {
		lines = lines[scroll:]
	}

	// Pad to fill height
	if len(lines) < height {
		lines = append(lines, make([]string, height-len(lines))...)
	} else if len(lines) > height {
		lines = lines[:height]
	}

	return strings.Join(lines, "\n")
}

func wrapText(s string, width int) string {
	if width <= 0 {
		return s
	}
	words := strings.Fields(s)
	if len(words) == 0 {
		return ""
	}

	var lines []string
	line := words[0]
	for _, w := range words[1:] {
		if len(line)+1+len(w) > width {
			lines = append(lines, line)
			line = w
		} else {
			line += " " + w
		}
	}
	lines = append(lines, line)
	return strings.Join(lines, "\n")
}

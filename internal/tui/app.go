package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/matheuskafuri/mednews/internal/aggregate"
	"github.com/matheuskafuri/mednews/internal/ai"
	"github.com/matheuskafuri/mednews/internal/browser"
	"github.com/matheuskafuri/mednews/internal/cache"
	"github.com/matheuskafuri/mednews/internal/classify"
	"github.com/matheuskafuri/mednews/internal/config"
	"github.com/matheuskafuri/mednews/internal/digest"
)

type focusPane int

const (
	focusList focusPane = iota
	focusPreview
)

type mode int

const (
	modeHome mode = iota
	modeNormal
	modeSearch
	modeSources
	modeTopics
	modeHelp
)

type App struct {
	cfg      *config.Config
	db       *cache.Cache
	articles []cache.Article
	cursor   int
	focus    focusPane
	mode     mode

	width  int
	height int

	// Sub-components
	searchInput textinput.Model
	spinner     spinner.Model
	sourceBar   selectBar
	topicBar    selectBar

	// AI
	summarizer ai.Summarizer

	// State
	refreshing    bool
	since         time.Time
	previewScroll int
	currentDate   string
	streak        int
	err           error
	digest        *digest.Digest
	updateVersion string
}

// RunOpts holds all parameters for launching the TUI.
type RunOpts struct {
	Cfg           *config.Config
	DB            *cache.Cache
	Since         time.Time
	Streak        int
	Summarizer    ai.Summarizer
	Digest        *digest.Digest
	UpdateVersion string
	Topic         classify.Topic
	BrowseMode    bool
}

func NewApp(opts RunOpts) *App {
	ti := textinput.New()
	ti.Placeholder = "Search articles..."
	ti.Prompt = searchPromptStyle.Render("/ ")
	ti.CharLimit = 100

	sp := spinner.New()
	sp.Spinner = spinner.MiniDot
	sp.Style = spinnerStyle

	topics := classify.AllTopics()
	topicNames := make([]string, len(topics))
	for i, t := range topics {
		topicNames[i] = string(t)
	}

	topicBar := newSelectBar(topicNames, true)
	if opts.Topic != "" {
		topicBar.toggle(string(opts.Topic))
	}

	startMode := modeHome
	if opts.BrowseMode {
		startMode = modeNormal
	}

	return &App{
		cfg:           opts.Cfg,
		db:            opts.DB,
		since:         opts.Since,
		streak:        opts.Streak,
		summarizer:    opts.Summarizer,
		sourceBar:     newSelectBar(opts.Cfg.SourceNames(), false),
		topicBar:      topicBar,
		searchInput:   ti,
		spinner:       sp,
		currentDate:   time.Now().Format("Jan 2"),
		mode:          startMode,
		digest:        opts.Digest,
		updateVersion: opts.UpdateVersion,
	}
}

func (a *App) Init() tea.Cmd {
	// Only load articles immediately if starting in browse mode
	if a.mode == modeNormal {
		return a.loadArticlesCmd()
	}
	return nil
}

// loadArticlesCmd captures current query state into the closure to avoid races.
func (a *App) loadArticlesCmd() tea.Cmd {
	opts := cache.QueryOpts{
		Since:   a.since,
		Sources: a.sourceBar.activeEntries(),
		Topic:   a.topicBar.activeEntry(),
		Search:  a.searchInput.Value(),
	}
	db := a.db
	return func() tea.Msg {
		articles, err := db.GetArticles(opts)
		if err != nil {
			return feedErrMsg{err: err}
		}
		return feedsLoadedMsg{articles: articles}
	}
}

func (a *App) doRefresh() tea.Cmd {
	agg := aggregate.New(a.cfg, a.db)
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		defer cancel()
		return refreshDoneMsg{result: agg.Refresh(ctx, true)}
	}
}

func openBrowserCmd(url string) tea.Cmd {
	return func() tea.Msg {
		err := browser.Open(url)
		if err != nil {
			return feedErrMsg{err: err}
		}
		return nil
	}
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case tea.KeyMsg:
		// Clear sticky error on any keypress
		a.err = nil
		return a.handleKey(msg)

	case feedsLoadedMsg:
		a.articles = msg.articles
		if a.cursor >= len(a.articles) {
			a.cursor = max(0, len(a.articles)-1)
		}
		return a, a.maybeFetchSummary()

	case feedErrMsg:
		a.err = msg.err
		return a, nil

	case refreshDoneMsg:
		a.refreshing = false
		if len(msg.result.Errors) > 0 {
			a.err = msg.result.Errors[0]
		}
		return a, a.loadArticlesCmd()

	case summaryLoadedMsg:
		// Update the article in our local slice
		tags := strings.Join(msg.result.Tags, ", ")
		for i := range a.articles {
			if a.articles[i].ID == msg.articleID {
				a.articles[i].AISummary = msg.result.Summary
				a.articles[i].AITags = tags
				break
			}
		}
		// Persist to cache asynchronously
		db := a.db
		id := msg.articleID
		summary := msg.result.Summary
		return a, func() tea.Msg {
			db.UpdateArticleAISummary(id, summary, tags)
			return nil
		}

	case spinner.TickMsg:
		if a.refreshing {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			return a, cmd
		}
		return a, nil
	}

	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Global keys
	switch msg.String() {
	case "ctrl+c":
		return a, tea.Quit
	}

	// Mode-specific handling
	switch a.mode {
	case modeHome:
		return a.handleHomeKey(msg)
	case modeSearch:
		return a.handleSearchKey(msg)
	case modeSources:
		return a.handleBarKey(msg, &a.sourceBar, "f")
	case modeTopics:
		return a.handleBarKey(msg, &a.topicBar, "t")
	case modeHelp:
		if msg.String() == "?" || msg.String() == "esc" || msg.String() == "q" {
			a.mode = modeNormal
		}
		return a, nil
	}

	// Normal mode
	switch msg.String() {
	case "q":
		return a, tea.Quit
	case "j", "down":
		if a.focus == focusList && a.cursor < len(a.articles)-1 {
			a.cursor++
			a.previewScroll = 0
			return a, a.maybeFetchSummary()
		} else if a.focus == focusPreview {
			a.previewScroll++
		}
		return a, nil
	case "k", "up":
		if a.focus == focusList && a.cursor > 0 {
			a.cursor--
			a.previewScroll = 0
			return a, a.maybeFetchSummary()
		} else if a.focus == focusPreview && a.previewScroll > 0 {
			a.previewScroll--
		}
		return a, nil
	case "tab":
		if a.focus == focusList {
			a.focus = focusPreview
		} else {
			a.focus = focusList
		}
		return a, nil
	case "o", "enter":
		if len(a.articles) > 0 && a.cursor < len(a.articles) {
			return a, openBrowserCmd(a.articles[a.cursor].Link)
		}
		return a, nil
	case "/":
		a.mode = modeSearch
		a.searchInput.Focus()
		return a, textinput.Blink
	case "f":
		a.mode = modeSources
		a.sourceBar.selectMode = true
		return a, nil
	case "t":
		a.mode = modeTopics
		a.topicBar.selectMode = true
		return a, nil
	case "r":
		if !a.refreshing {
			a.refreshing = true
			return a, tea.Batch(a.doRefresh(), a.spinner.Tick)
		}
		return a, nil
	case "h":
		a.mode = modeHome
		return a, nil
	case "?":
		a.mode = modeHelp
		return a, nil
	}

	return a, nil
}

func (a *App) handleHomeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "e", "enter":
		a.mode = modeNormal
		return a, a.loadArticlesCmd()
	case "q":
		return a, tea.Quit
	}
	return a, nil
}

func (a *App) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		a.mode = modeNormal
		a.searchInput.SetValue("")
		a.searchInput.Blur()
		return a, a.loadArticlesCmd()
	case "enter":
		a.mode = modeNormal
		a.searchInput.Blur()
		return a, a.loadArticlesCmd()
	}

	var cmd tea.Cmd
	a.searchInput, cmd = a.searchInput.Update(msg)
	return a, cmd
}

func (a *App) handleBarKey(msg tea.KeyMsg, bar *selectBar, exitKey string) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", exitKey:
		a.mode = modeNormal
		bar.selectMode = false
		return a, nil
	case "left", "h":
		if bar.cursor > 0 {
			bar.cursor--
		}
		return a, nil
	case "right", "l":
		if bar.cursor < len(bar.entries)-1 {
			bar.cursor++
		}
		return a, nil
	case " ", "enter":
		bar.toggleCurrent()
		a.cursor = 0
		return a, a.loadArticlesCmd()
	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		idx := int(msg.String()[0] - '1')
		if idx < len(bar.entries) {
			bar.toggle(bar.entries[idx])
			a.cursor = 0
			return a, a.loadArticlesCmd()
		}
		return a, nil
	}
	return a, nil
}

func (a *App) withBottomBar(content string, hints string) string {
	bar := renderBottomBar(a.streak, hints, a.width)
	lines := strings.Split(content, "\n")
	for len(lines) < a.height-1 {
		lines = append(lines, "")
	}
	if len(lines) >= a.height {
		lines = lines[:a.height-1]
	}
	lines = append(lines, bar)
	return strings.Join(lines, "\n")
}

func (a *App) View() string {
	if a.width == 0 {
		return lipgloss.NewStyle().Foreground(colorPrimary).Render("  mednews")
	}

	if a.mode == modeHome {
		return a.withBottomBar(renderHomeScreen(a.width, a.height, a.digest, a.updateVersion), "e browse  q quit")
	}

	if a.mode == modeHelp {
		return a.withBottomBar(a.renderHelp(), "? close  h home  q quit")
	}

	// Layout calculations
	headerHeight := 1
	filterHeight := 1
	statusHeight := 1
	contentHeight := a.height - headerHeight - filterHeight - statusHeight - 4 // borders

	listWidth := int(float64(a.width) * 0.35)
	previewWidth := a.width - listWidth - 1 // gap

	if contentHeight < 3 {
		contentHeight = 3
	}

	// Header
	headerLeft := headerStyle.Render("mednews")
	headerRight := headerDateStyle.Render(a.currentDate)
	headerGap := a.width - lipgloss.Width(headerLeft) - lipgloss.Width(headerRight)
	if headerGap < 0 {
		headerGap = 0
	}
	header := headerLeft + fmt.Sprintf("%*s", headerGap, "") + headerRight

	// Filter row: topic bar while picking topics, source bar otherwise,
	// search input while searching
	filter := a.sourceBar.render(a.width)
	if a.mode == modeTopics {
		filter = a.topicBar.render(a.width)
	}
	if a.mode == modeSearch {
		filter = a.searchInput.View()
	}

	// List pane
	innerListW := listWidth - 4 // border + padding
	listContent := renderList(a.articles, a.cursor, contentHeight, innerListW)

	var listPane string
	if a.focus == focusList {
		listPane = listPaneActiveStyle.Width(listWidth - 2).Height(contentHeight).Render(listContent)
	} else {
		listPane = listPaneStyle.Width(listWidth - 2).Height(contentHeight).Render(listContent)
	}

	// Preview pane
	var selected *cache.Article
	if len(a.articles) > 0 && a.cursor < len(a.articles) {
		selected = &a.articles[a.cursor]
	}
	innerPreviewW := previewWidth - 4
	previewContent := renderPreview(selected, innerPreviewW, contentHeight, a.previewScroll)

	var previewPane string
	if a.focus == focusPreview {
		previewPane = previewPaneActiveStyle.Width(previewWidth - 2).Height(contentHeight).Render(previewContent)
	} else {
		previewPane = previewPaneStyle.Width(previewWidth - 2).Height(contentHeight).Render(previewContent)
	}

	// Join panes
	content := lipgloss.JoinHorizontal(lipgloss.Top, listPane, previewPane)

	// Status bar
	status := renderStatusBar(
		len(a.articles),
		a.sourceBar.activeLabel(),
		a.topicBar.activeEntry(),
		a.streak,
		a.width,
		a.mode == modeSearch,
		a.refreshing,
	)

	if a.refreshing {
		status = a.spinner.View() + " " + status
	}

	// Error display
	if a.err != nil {
		status = lipgloss.NewStyle().Foreground(colorAccent).Render(a.err.Error())
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, filter, content, status)
}

func (a *App) maybeFetchSummary() tea.Cmd {
	if a.summarizer == nil {
		return nil
	}
	if len(a.articles) == 0 || a.cursor >= len(a.articles) {
		return nil
	}
	article := a.articles[a.cursor]
	if article.AISummary != "" {
		return nil // already cached
	}
	s := a.summarizer
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		result, err := s.Summarize(ctx, article.Title, article.Summary)
		if err != nil {
			return nil // non-fatal
		}
		return summaryLoadedMsg{articleID: article.ID, result: result}
	}
}

func (a *App) renderHelp() string {
	title := lipgloss.NewStyle().Foreground(colorPrimary).Bold(true).Render("mednews")
	dim := helpDimStyle

	help := title + dim.Render(" — Keyboard Shortcuts") + "\n\n" +
		dim.Render("Navigation") + "\n" +
		"  j/k, ↑/↓     Navigate article list\n" +
		"  tab           Switch focus between list and preview\n\n" +
		dim.Render("Actions") + "\n" +
		"  o, enter      Open article in browser\n" +
		"  r             Refresh feeds\n" +
		"  /             Search articles\n" +
		"  f             Filter by source\n" +
		"  t             Filter by topic\n\n" +
		dim.Render("Filter Mode") + "\n" +
		"  ←/→, h/l     Move between entries\n" +
		"  space/enter   Toggle entry\n" +
		"  1-9           Toggle entry by number\n" +
		"  esc           Exit filter mode\n\n" +
		dim.Render("General") + "\n" +
		"  h             Go to home screen\n" +
		"  ?             Toggle this help\n" +
		"  q, ctrl+c    Quit"

	card := helpCardStyle.Render(help)

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, card)
}

// Run starts the TUI application.
func Run(opts RunOpts) error {
	app := NewApp(opts)
	p := tea.NewProgram(app, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

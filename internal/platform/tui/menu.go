package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/karel-quest/internal/core"
	"github.com/vovakirdan/karel-quest/internal/registry"
	"github.com/vovakirdan/karel-quest/internal/storage"
)

const menuBanner = "K A R E L ' S   C O D E   Q U E S T"

// MenuItem is one level in the picker with its stored record.
type MenuItem struct {
	GameID    string
	Title     string
	HighScore int
	Runs      int
	Wins      int
	BestTicks int64
}

var (
	menuTitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	menuCursorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	menuDimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// MenuModel picks a level. It quits its program on any decision so the
// caller can read the outcome.
type MenuModel struct {
	items          []MenuItem
	cursor         int
	config         core.RuntimeConfig
	keyMapper      *KeyMapper
	quitting       bool
	selected       *MenuItem
	openScoreboard bool
}

// NewMenuModel lists every registered level. A nil store shows no records.
func NewMenuModel(store *storage.Store, cfg core.RuntimeConfig) MenuModel {
	levels := registry.List()
	items := make([]MenuItem, len(levels))
	for i, lv := range levels {
		items[i] = loadMenuItem(store, lv)
	}
	return MenuModel{items: items, config: cfg, keyMapper: NewKeyMapper()}
}

func loadMenuItem(store *storage.Store, lv registry.GameInfo) MenuItem {
	item := MenuItem{GameID: lv.ID, Title: lv.Title}
	if store == nil {
		return item
	}
	stats, err := store.GetGameStats(lv.ID)
	if err != nil {
		return item
	}
	item.HighScore = stats.HighScore
	item.Runs = stats.Runs
	item.Wins = stats.Wins
	item.BestTicks = stats.BestTicks
	return item
}

func (m MenuModel) Init() tea.Cmd {
	return nil
}

func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
	}
	return m, nil
}

func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		m.cursor = core.Max(m.cursor-1, 0)
	case MenuActionDown:
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}
	case MenuActionSelect:
		if len(m.items) == 0 {
			return m, nil
		}
		picked := m.items[m.cursor]
		m.selected = &picked
		return m, tea.Quit
	case MenuActionScoreboard:
		m.openScoreboard = true
		return m, tea.Quit
	}
	return m, nil
}

// record is the one-line summary shown next to a level title.
func (it MenuItem) record(tickRate int) string {
	if it.Runs == 0 && it.HighScore == 0 {
		return ""
	}
	parts := []string{fmt.Sprintf("best: %d", it.HighScore)}
	if it.Runs > 0 {
		parts = append(parts, fmt.Sprintf("%d/%d won", it.Wins, it.Runs))
	}
	if it.BestTicks > 0 {
		parts = append(parts, "fastest "+FormatTicks(it.BestTicks, tickRate))
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}
	width := m.config.ScreenW

	lines := []string{
		"",
		centerText(menuTitleStyle.Render(menuBanner), width),
		"",
		centerText("Choose a world", width),
		"",
	}
	for i, it := range m.items {
		label := it.Title
		if rec := it.record(m.config.TickRate); rec != "" {
			label += "  " + menuDimStyle.Render(rec)
		}
		if i == m.cursor {
			label = menuCursorStyle.Render("> "+it.Title) + strings.TrimPrefix(label, it.Title)
		} else {
			label = "  " + label
		}
		lines = append(lines, centerText(label, width))
	}
	lines = append(lines, "",
		centerText(menuDimStyle.Render("Up/Down: Navigate  |  Enter: Play  |  Tab: Scores  |  Q: Quit"), width),
		"")
	return strings.Join(lines, "\n")
}

func (m MenuModel) Selected() *MenuItem { return m.selected }

func (m MenuModel) IsQuitting() bool { return m.quitting }

func (m MenuModel) WantsScoreboard() bool { return m.openScoreboard }

// Config returns the runtime config, updated by resizes.
func (m MenuModel) Config() core.RuntimeConfig { return m.config }

// centerText pads text to the middle of width, measuring printable cells.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}

// MenuResult is what a finished menu program decided.
type MenuResult struct {
	GameID          string
	Config          core.RuntimeConfig
	WantsScoreboard bool
	Quit            bool
}

// RunMenu shows the menu in the alternate screen until the player decides.
func RunMenu(store *storage.Store, cfg core.RuntimeConfig) (MenuResult, error) {
	final, err := tea.NewProgram(NewMenuModel(store, cfg), tea.WithAltScreen()).Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}
	m, ok := final.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Quit: true}, nil
	}

	res := MenuResult{Config: m.Config()}
	switch {
	case m.WantsScoreboard():
		res.WantsScoreboard = true
	case m.Selected() != nil:
		res.GameID = m.Selected().GameID
	default:
		res.Quit = true
	}
	return res, nil
}

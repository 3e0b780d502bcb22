package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-hoops/internal/core"
	"github.com/vovakirdan/tui-hoops/internal/progress"
)

// MenuChoice is what the player picked in the menu.
type MenuChoice int

const (
	ChoiceNone MenuChoice = iota
	ChoicePlay
	ChoiceScores
	ChoiceReset
	ChoiceQuit
)

// MenuItem represents a selectable entry in the menu.
type MenuItem struct {
	Choice MenuChoice
	Title  string
}

var menuItems = []MenuItem{
	{ChoicePlay, "Play"},
	{ChoiceScores, "High scores"},
	{ChoiceReset, "Reset progress"},
	{ChoiceQuit, "Quit"},
}

var (
	menuTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("208"))
	menuCursorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229"))
	menuDimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
	menuWarnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("1"))
	menuStatsStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 2)
)

type menuKeyMap struct {
	Nav    key.Binding
	Select key.Binding
	Quit   key.Binding
}

func (k menuKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Nav, k.Select, k.Quit}
}

func (k menuKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// MenuModel is the Bubble Tea model for the start menu.
type MenuModel struct {
	env          Env
	store        *progress.Store
	session      progress.Session
	cursor       int
	width        int
	height       int
	config       core.RuntimeConfig
	keyMapper    *KeyMapper
	help         help.Model
	keys         menuKeyMap
	confirmReset bool
	status       string
	quitting     bool
	selected     MenuChoice
}

// NewMenuModel creates a new menu model showing the profile's progress.
func NewMenuModel(env Env, cfg core.RuntimeConfig) MenuModel {
	env = env.withDefaults()
	m := MenuModel{
		env:       env,
		store:     env.progressStore(),
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
		config:    cfg,
		keyMapper: NewKeyMapper(),
		help:      help.New(),
		keys: menuKeyMap{
			Nav:    key.NewBinding(key.WithKeys("up", "down"), key.WithHelp("↑/↓", "navigate")),
			Select: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
			Quit:   key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
		},
	}
	m.reload()
	return m
}

func (m *MenuModel) reload() {
	sess, err := m.store.Load()
	if err != nil {
		m.env.Logger.Warn("cannot load progress", "profile", m.env.Profile, "error", err)
		m.status = "Progress could not be read"
	}
	m.session = sess
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.help.Width = msg.Width
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action := m.keyMapper.MapKeyToMenuAction(msg)
	if action != MenuActionSelect {
		m.confirmReset = false
	}

	switch action {
	case MenuActionQuit, MenuActionBack:
		m.quitting = true
		m.selected = ChoiceQuit
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(menuItems)-1 {
			m.cursor++
		}

	case MenuActionSelect:
		return m.selectItem(menuItems[m.cursor].Choice)
	}

	return m, nil
}

func (m MenuModel) selectItem(choice MenuChoice) (tea.Model, tea.Cmd) {
	switch choice {
	case ChoiceReset:
		if !m.confirmReset {
			m.confirmReset = true
			m.status = "Press enter again to reset your level and shots"
			return m, nil
		}
		m.confirmReset = false
		if err := m.store.Clear(); err != nil {
			m.env.Logger.Warn("cannot reset progress", "profile", m.env.Profile, "error", err)
			m.status = "Reset failed"
			return m, nil
		}
		m.env.Logger.Info("progress reset", "profile", m.env.Profile)
		m.status = "Progress reset"
		m.reload()
		return m, nil

	case ChoiceQuit:
		m.quitting = true
	}

	m.selected = choice
	return m, tea.Quit
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(menuTitleStyle.Render("  T U I   H O O P S  "), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(menuDimStyle.Render("profile: "+m.env.Profile), m.width))
	b.WriteString("\n\n")

	stats := fmt.Sprintf("Level %d   Shots %d   Best %d",
		m.session.Level, m.session.ShotsRemaining, m.session.MaxLevel)
	b.WriteString(centerBlock(menuStatsStyle.Render(stats), m.width))
	b.WriteString("\n\n")

	for i, item := range menuItems {
		line := "  " + item.Title
		if i == m.cursor {
			line = menuCursorStyle.Render("> " + item.Title)
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.status != "" {
		style := menuDimStyle
		if m.confirmReset {
			style = menuWarnStyle
		}
		b.WriteString(centerText(style.Render(m.status), m.width))
		b.WriteString("\n")
	}
	b.WriteString(centerText(m.help.View(m.keys), m.width))
	b.WriteString("\n")

	return b.String()
}

// Selected returns what the player picked, or ChoiceNone.
func (m MenuModel) Selected() MenuChoice {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText centers a single line within the given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}

// centerBlock centers a multi-line block within the given width.
func centerBlock(block string, width int) string {
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, block)
}

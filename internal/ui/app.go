package ui

import (
	"fmt"
	"strings"

	"github.com/abelbrown/stageview/internal/coord"
	"github.com/abelbrown/stageview/internal/otel"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// AppConfig holds the optional dependencies of the App.
type AppConfig struct {
	Ring       *otel.RingBuffer // debug overlay source; nil disables the overlay
	Fullscreen bool             // program was started with the alt screen
	ShowStatus bool
}

// App is the root Bubble Tea model.
// IMPORTANT: App never calls into the engine. Content arrives as messages
// sent through Surface; the App only draws the latest one.
type App struct {
	title string
	text  string
	image *ImageShown
	state coord.State

	spinner    spinner.Model
	ring       *otel.RingBuffer
	width      int
	height     int
	ready      bool
	fullscreen bool
	debug      bool
	showStatus bool
}

// NewApp creates an App with the given configuration.
func NewApp(cfg AppConfig) App {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = StateBusy

	return App{
		spinner:    s,
		ring:       cfg.Ring,
		fullscreen: cfg.Fullscreen,
		showStatus: cfg.ShowStatus,
	}
}

// Init starts the spinner.
func (a App) Init() tea.Cmd {
	return a.spinner.Tick
}

// Update handles messages and returns the updated model and any commands.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return a.handleKeyMsg(msg)

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		return a, nil

	case TitleSet:
		a.title = msg.Title
		return a, nil

	case Cleared:
		a.text = ""
		a.image = nil
		return a, nil

	case TextShown:
		a.text = msg.Text
		a.image = nil
		return a, nil

	case ImageShown:
		img := msg
		a.image = &img
		a.text = ""
		return a, nil

	case StateChanged:
		a.state = msg.State
		return a, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd
	}

	return a, nil
}

// handleKeyMsg processes keyboard input. Keys only change presentation.
func (a App) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		return a, tea.Quit

	case key.Matches(msg, keys.Debug):
		if a.ring != nil {
			a.debug = !a.debug
		}
		return a, nil

	case key.Matches(msg, keys.Fullscreen):
		a.fullscreen = !a.fullscreen
		if a.fullscreen {
			return a, tea.EnterAltScreen
		}
		return a, tea.ExitAltScreen
	}
	return a, nil
}

// View renders the stage.
func (a App) View() string {
	if !a.ready {
		return "Connecting..."
	}

	if a.debug {
		bodyHeight := a.height - 1
		panel := debugOverlay(a.ring, a.width, bodyHeight)
		body := lipgloss.Place(a.width, bodyHeight, lipgloss.Center, lipgloss.Center, panel)
		return body + "\n" + debugStatusBar(a.width)
	}

	var header, footer string
	if a.title != "" {
		header = Title.Render(truncateRunes(a.title, a.width-2))
	}
	if a.showStatus {
		footer = a.statusBar()
	}

	used := 0
	if header != "" {
		used += lipgloss.Height(header)
	}
	if footer != "" {
		used += lipgloss.Height(footer)
	}
	bodyHeight := max(a.height-used, 1)

	body := lipgloss.Place(a.width, bodyHeight, lipgloss.Center, lipgloss.Center, a.content(bodyHeight))

	var parts []string
	if header != "" {
		parts = append(parts, header)
	}
	parts = append(parts, body)
	if footer != "" {
		parts = append(parts, footer)
	}
	return strings.Join(parts, "\n")
}

func (a App) content(height int) string {
	if a.image != nil {
		caption := a.image.Alt + "\n" + describeImage(a.image.Src)
		return ImageCaption.Width(max(a.width-2, 1)).Render(caption)
	}
	return fitLyrics(a.text, max(a.width-2, 1), height)
}

// describeImage summarises an image reference. Inline data URIs are
// reduced to their size.
func describeImage(src string) string {
	if strings.HasPrefix(src, "data:") {
		return fmt.Sprintf("[inline image, %d bytes]", len(src))
	}
	return truncateRunes(src, 60)
}

func (a App) statusBar() string {
	var badge string
	switch a.state {
	case coord.Idle:
		badge = StateIdle.Render("● " + a.state.String())
	default:
		badge = a.spinner.View() + " " + StateBusy.Render(a.state.String())
	}

	var hints []string
	for _, b := range keys.hints() {
		h := b.Help()
		hints = append(hints, StatusBarKey.Render(h.Key)+StatusBarText.Render(":"+h.Desc))
	}
	return StatusBar.Width(a.width).Render(badge + "  " + strings.Join(hints, " "))
}

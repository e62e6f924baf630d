package ui

import "github.com/charmbracelet/lipgloss"

// Colors used in the application.
var (
	colorPrimary   = lipgloss.Color("62")  // Purple
	colorSecondary = lipgloss.Color("241") // Gray
	colorMuted     = lipgloss.Color("240") // Darker gray
	colorHighlight = lipgloss.Color("212") // Pink
	colorSuccess   = lipgloss.Color("78")  // Green
)

// Title style for the song title line above the lyrics.
var Title = lipgloss.NewStyle().
	Bold(true).
	Foreground(colorHighlight).
	Padding(0, 1)

// Lyrics style for composed slide text. Width is set per render.
var Lyrics = lipgloss.NewStyle().
	Foreground(lipgloss.Color("255")).
	Bold(true).
	Align(lipgloss.Center)

// ImageCaption style for the image placeholder.
var ImageCaption = lipgloss.NewStyle().
	Foreground(colorSecondary).
	Italic(true).
	Align(lipgloss.Center)

// StatusBar style for the bottom status bar.
var StatusBar = lipgloss.NewStyle().
	Foreground(lipgloss.Color("255")).
	Background(lipgloss.Color("236")).
	Padding(0, 1)

// StatusBarKey style for key hints in status bar.
var StatusBarKey = lipgloss.NewStyle().
	Foreground(colorHighlight).
	Bold(true)

// StatusBarText style for descriptive text in status bar.
var StatusBarText = lipgloss.NewStyle().
	Foreground(colorSecondary)

// StateIdle style for the controller state badge when idle.
var StateIdle = lipgloss.NewStyle().
	Foreground(colorSuccess)

// StateBusy style for the controller state badge while work is pending.
var StateBusy = lipgloss.NewStyle().
	Foreground(colorPrimary).
	Bold(true)

// DebugPanel style for the debug overlay container.
var DebugPanel = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(colorPrimary).
	Padding(1, 2)

// DebugHeaderStyle for section headers inside the debug overlay.
var DebugHeaderStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(colorHighlight)

// HelpStyle for muted hints.
var HelpStyle = lipgloss.NewStyle().
	Foreground(colorMuted)

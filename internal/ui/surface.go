package ui

import tea "github.com/charmbracelet/bubbletea"

// Surface adapts the App to display.Surface. Each call becomes a message
// for the running program, so the reconciler never touches model state.
type Surface struct {
	send func(tea.Msg)
}

// NewSurface returns a Surface that delivers messages through send,
// normally (*tea.Program).Send.
func NewSurface(send func(tea.Msg)) *Surface {
	return &Surface{send: send}
}

func (s *Surface) SetTitle(title string) { s.send(TitleSet{Title: title}) }

func (s *Surface) Clear() { s.send(Cleared{}) }

func (s *Surface) ShowText(text string) { s.send(TextShown{Text: text}) }

func (s *Surface) ShowImage(src, alt string) { s.send(ImageShown{Src: src, Alt: alt}) }

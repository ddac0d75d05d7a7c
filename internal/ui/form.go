package ui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"tubelist/internal/models"
	"tubelist/internal/tasks"
)

// ErrCancelled is returned by Collect when the user aborts the form.
var ErrCancelled = errors.New("playlist form cancelled")

// field identifies which form input currently has focus.
type field int

const (
	fieldTitle field = iota
	fieldDescription
	fieldPrivacy
)

var privacyChoices = []models.Privacy{
	models.PrivacyUnlisted,
	models.PrivacyPrivate,
	models.PrivacyPublic,
}

// Model is the playlist metadata form.
type Model struct {
	title       textinput.Model
	description textinput.Model
	privacy     int
	focus       field
	done        bool
	cancelled   bool
	help        help.Model
	keys        keyMap
}

// NewModel creates a form pre-filled with the provided defaults.
func NewModel(defaults tasks.PlaylistSpec) *Model {
	title := textinput.New()
	title.Placeholder = "Playlist title"
	title.SetValue(defaults.Title)
	title.CharLimit = 150
	title.Focus()

	description := textinput.New()
	description.Placeholder = "Description (optional)"
	description.SetValue(defaults.Description)
	description.CharLimit = 5000

	privacy := 0
	for i, p := range privacyChoices {
		if p == defaults.Privacy {
			privacy = i
			break
		}
	}

	return &Model{
		title:       title,
		description: description,
		privacy:     privacy,
		focus:       fieldTitle,
		help:        help.New(),
		keys:        newKeyMap(),
	}
}

func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.quit):
			m.cancelled = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.confirm):
			if strings.TrimSpace(m.title.Value()) == "" {
				m.focus = fieldTitle
				return m, m.setFocus()
			}
			m.done = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.next):
			m.focus = (m.focus + 1) % 3
			return m, m.setFocus()

		case key.Matches(msg, m.keys.prev):
			m.focus = (m.focus + 2) % 3
			return m, m.setFocus()

		case key.Matches(msg, m.keys.cycle) && m.focus == fieldPrivacy:
			if msg.String() == "left" {
				m.privacy = (m.privacy + len(privacyChoices) - 1) % len(privacyChoices)
			} else {
				m.privacy = (m.privacy + 1) % len(privacyChoices)
			}
			return m, nil
		}
	}

	return m, m.updateInputs(msg)
}

func (m *Model) setFocus() tea.Cmd {
	m.title.Blur()
	m.description.Blur()
	switch m.focus {
	case fieldTitle:
		return m.title.Focus()
	case fieldDescription:
		return m.description.Focus()
	}
	return nil
}

func (m *Model) updateInputs(msg tea.Msg) tea.Cmd {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	m.title, cmd = m.title.Update(msg)
	cmds = append(cmds, cmd)
	m.description, cmd = m.description.Update(msg)
	cmds = append(cmds, cmd)

	return tea.Batch(cmds...)
}

func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(styles.title.Render("New Playlist"))
	b.WriteString("\n\n")

	b.WriteString("Title\n")
	b.WriteString(m.title.View())
	b.WriteString("\n\nDescription\n")
	b.WriteString(m.description.View())
	b.WriteString("\n\nPrivacy\n")
	b.WriteString(m.renderPrivacy())
	b.WriteString("\n\n")
	b.WriteString(m.help.ShortHelpView(m.keys.ShortHelp()))

	return b.String()
}

func (m *Model) renderPrivacy() string {
	parts := make([]string, len(privacyChoices))
	for i, p := range privacyChoices {
		label := string(p)
		if i == m.privacy {
			if m.focus == fieldPrivacy {
				label = styles.ok.Render(fmt.Sprintf("[%s]", label))
			} else {
				label = fmt.Sprintf("[%s]", label)
			}
		} else {
			label = styles.help.Render(label)
		}
		parts[i] = label
	}
	return strings.Join(parts, "  ")
}

// Spec returns the collected playlist metadata.
func (m *Model) Spec() tasks.PlaylistSpec {
	return tasks.PlaylistSpec{
		Title:       strings.TrimSpace(m.title.Value()),
		Description: strings.TrimSpace(m.description.Value()),
		Privacy:     privacyChoices[m.privacy],
	}
}

// Collect runs the form and returns the confirmed playlist metadata.
// Cancelling the form returns [ErrCancelled].
func Collect(defaults tasks.PlaylistSpec) (tasks.PlaylistSpec, error) {
	model := NewModel(defaults)
	program := tea.NewProgram(model)

	final, err := program.Run()
	if err != nil {
		return tasks.PlaylistSpec{}, fmt.Errorf("failed to run playlist form: %w", err)
	}

	m, ok := final.(*Model)
	if !ok || m.cancelled || !m.done {
		return tasks.PlaylistSpec{}, ErrCancelled
	}
	return m.Spec(), nil
}

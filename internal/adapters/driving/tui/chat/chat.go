// Package chat provides an interactive chat TUI over the ask service.
package chat

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/quanda-cli/internal/core/domain"
	"github.com/custodia-labs/quanda-cli/internal/core/ports/driving"
)

// styles for the chat transcript.
var (
	userStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#06B6D4")).
			Bold(true)
	assistantStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A6E3A1"))
	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F38BA8"))
	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6C7086"))
)

// message is one transcript entry.
type message struct {
	role string // "user" or "assistant"
	text string
}

// answerMsg carries the result of one ask.
type answerMsg struct {
	answer string
	err    error
}

// Model is the bubbletea model for the chat view.
type Model struct {
	ask      driving.AskService
	input    textinput.Model
	viewport viewport.Model
	spinner  spinner.Model
	messages []message
	thinking bool
	ready    bool
	width    int
}

// New creates a chat model over the given ask service.
func New(ask driving.AskService) *Model {
	ti := textinput.New()
	ti.Placeholder = "Ask a question..."
	ti.Focus()
	ti.CharLimit = 512

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return &Model{
		ask:     ask,
		input:   ti,
		spinner: sp,
	}
}

// Init starts the cursor blink.
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			return m, m.submit()
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		inputHeight := 3
		if !m.ready {
			m.viewport = viewport.New(msg.Width, msg.Height-inputHeight)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = msg.Height - inputHeight
		}
		m.viewport.SetContent(m.transcript())

	case answerMsg:
		m.thinking = false
		if msg.err != nil {
			m.messages = append(m.messages, message{role: "assistant", text: "Error: " + msg.err.Error()})
		} else {
			m.messages = append(m.messages, message{role: "assistant", text: msg.answer})
		}
		m.viewport.SetContent(m.transcript())
		m.viewport.GotoBottom()
		return m, nil

	case spinner.TickMsg:
		if !m.thinking {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)
	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

// submit sends the typed question to the ask service.
func (m *Model) submit() tea.Cmd {
	question := strings.TrimSpace(m.input.Value())
	if question == "" || m.thinking {
		return nil
	}

	m.messages = append(m.messages, message{role: "user", text: question})
	m.input.Reset()
	m.thinking = true
	m.viewport.SetContent(m.transcript())
	m.viewport.GotoBottom()

	ask := func() tea.Msg {
		answer, err := m.ask.Ask(context.Background(), question, driving.AskOptions{})
		if errors.Is(err, domain.ErrQueryInProgress) {
			return answerMsg{answer: "Still working on the previous question."}
		}
		return answerMsg{answer: answer, err: err}
	}

	return tea.Batch(ask, m.spinner.Tick)
}

// View renders the chat.
func (m *Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	var b strings.Builder
	b.WriteString(m.viewport.View())
	b.WriteString("\n")
	if m.thinking {
		b.WriteString(m.spinner.View() + " Thinking...\n")
	} else {
		b.WriteString(m.input.View() + "\n")
	}
	b.WriteString(helpStyle.Render("enter: ask • esc: quit"))
	return b.String()
}

// transcript renders all messages for the viewport.
func (m *Model) transcript() string {
	if len(m.messages) == 0 {
		return helpStyle.Render("Ask a question about your knowledge bases.")
	}

	var b strings.Builder
	for _, msg := range m.messages {
		switch msg.role {
		case "user":
			b.WriteString(userStyle.Render("You: ") + msg.text)
		default:
			if strings.HasPrefix(msg.text, "Error:") {
				b.WriteString(errorStyle.Render(msg.text))
			} else {
				b.WriteString(assistantStyle.Render("Quanda: ") + msg.text)
			}
		}
		b.WriteString("\n\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

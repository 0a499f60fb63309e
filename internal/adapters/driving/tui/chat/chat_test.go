package chat

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/quanda-cli/internal/core/domain"
	"github.com/custodia-labs/quanda-cli/internal/core/ports/driving"
)

// MockAskService implements driving.AskService for testing.
type MockAskService struct {
	AskFunc func(ctx context.Context, question string, opts driving.AskOptions) (string, error)
}

func (m *MockAskService) Ask(ctx context.Context, question string, opts driving.AskOptions) (string, error) {
	if m.AskFunc != nil {
		return m.AskFunc(ctx, question, opts)
	}
	return "", nil
}

func (m *MockAskService) Retrieve(ctx context.Context, question string, opts driving.AskOptions) ([]domain.Candidate, error) {
	return nil, nil
}

func sizedModel(ask driving.AskService) *Model {
	m := New(ask)
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	return updated.(*Model)
}

func TestNew(t *testing.T) {
	m := New(&MockAskService{})

	require.NotNil(t, m)
	assert.False(t, m.ready)
	assert.False(t, m.thinking)
	assert.Empty(t, m.messages)
}

func TestUpdate_WindowSizeMakesReady(t *testing.T) {
	m := sizedModel(&MockAskService{})

	assert.True(t, m.ready)
	assert.Equal(t, 80, m.viewport.Width)
}

func TestUpdate_EmptySubmitIsIgnored(t *testing.T) {
	m := sizedModel(&MockAskService{})

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Nil(t, cmd)
	assert.Empty(t, m.messages)
	assert.False(t, m.thinking)
}

func TestUpdate_SubmitRecordsQuestionAndAsks(t *testing.T) {
	asked := ""
	mock := &MockAskService{
		AskFunc: func(ctx context.Context, question string, opts driving.AskOptions) (string, error) {
			asked = question
			return "A programming language.", nil
		},
	}
	m := sizedModel(mock)
	m.input.SetValue("What is Go?")

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	require.NotNil(t, cmd)
	require.Len(t, m.messages, 1)
	assert.Equal(t, "user", m.messages[0].role)
	assert.Equal(t, "What is Go?", m.messages[0].text)
	assert.True(t, m.thinking)
	assert.Empty(t, m.input.Value())

	// Drain the batch so the ask command actually runs.
	drainCmd(t, m, cmd)
	assert.Equal(t, "What is Go?", asked)
}

func TestUpdate_AnswerAppendsToTranscript(t *testing.T) {
	m := sizedModel(&MockAskService{})
	m.thinking = true

	_, _ = m.Update(answerMsg{answer: "A programming language."})

	assert.False(t, m.thinking)
	require.Len(t, m.messages, 1)
	assert.Equal(t, "assistant", m.messages[0].role)
	assert.Equal(t, "A programming language.", m.messages[0].text)
}

func TestUpdate_AnswerErrorIsShown(t *testing.T) {
	m := sizedModel(&MockAskService{})
	m.thinking = true

	_, _ = m.Update(answerMsg{err: errors.New("storage unavailable")})

	require.Len(t, m.messages, 1)
	assert.Contains(t, m.messages[0].text, "storage unavailable")
}

func TestUpdate_SubmitWhileThinkingIsIgnored(t *testing.T) {
	m := sizedModel(&MockAskService{})
	m.thinking = true
	m.input.SetValue("second question")

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Nil(t, cmd)
	assert.Empty(t, m.messages)
}

func TestUpdate_EscQuits(t *testing.T) {
	m := sizedModel(&MockAskService{})

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})

	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestView_ShowsThinkingIndicator(t *testing.T) {
	m := sizedModel(&MockAskService{})
	m.thinking = true

	assert.Contains(t, m.View(), "Thinking...")
}

func TestTranscript_EmptyShowsHint(t *testing.T) {
	m := sizedModel(&MockAskService{})

	assert.Contains(t, m.transcript(), "Ask a question")
}

// drainCmd executes a command tree until the answer message arrives.
func drainCmd(t *testing.T, m *Model, cmd tea.Cmd) {
	t.Helper()
	queue := []tea.Cmd{cmd}
	for len(queue) > 0 {
		next := queue[0]
		queue = queue[1:]
		if next == nil {
			continue
		}
		switch msg := next().(type) {
		case tea.BatchMsg:
			queue = append(queue, msg...)
		case answerMsg:
			_, _ = m.Update(msg)
			return
		}
	}
	t.Fatal("ask command never produced an answer")
}

package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"debate/internal/domain"
)

// SearchPort is the TUI-facing subset of the search engine.
type SearchPort interface {
	Speakers() []string
	SelectSpeaker(id string) (string, error)
	TopicNames() []string
	PresetTopic(name string) (domain.Topic, error)
	AdHocTopic(keywords string) domain.Topic
	Search(topic domain.TermVector, speaker string, k int) ([]domain.SearchResult, error)
	DefaultK() int
	Tokenize(text string) []string
}

type screen int

const (
	screenSpeaker screen = iota
	screenTopic
	screenKeywords
	screenResults
)

const customEntry = "Custom keywords..."

// Model is the Bubble Tea model for the interactive menu.
type Model struct {
	service  SearchPort
	input    textinput.Model
	viewport viewport.Model
	screen   screen
	summary  string
	status   string
	cursor   int
	k        int
	speaker  string
	topic    domain.Topic
	results  []domain.SearchResult
	current  int
	ready    bool
}

// New creates a new TUI model instance.
func New(service SearchPort, summary string) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Type keywords and press Enter"
	ti.CharLimit = 0
	vp := viewport.New(0, 0)
	return Model{
		service:  service,
		input:    ti,
		viewport: vp,
		summary:  summary,
		status:   "Choose a speaker.",
		k:        service.DefaultK(),
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd { return nil }

// Update handles key and window events and updates the view state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		_, rh := resultBoxStyle.GetFrameSize()
		reserved := 4 + rh // header, summary, menu title, status
		m.viewport.Width = max(20, msg.Width)
		m.viewport.Height = max(3, msg.Height-reserved)
		m.viewport.SetContent(m.renderCurrentResult())
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyCtrlD {
			return m, tea.Quit
		}
		switch m.screen {
		case screenSpeaker:
			return m.updateSpeaker(msg)
		case screenTopic:
			return m.updateTopic(msg)
		case screenKeywords:
			return m.updateKeywords(msg)
		case screenResults:
			return m.updateResults(msg)
		}
	}
	return m, nil
}

func (m Model) updateSpeaker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	speakers := m.service.Speakers()
	switch msg.String() {
	case "q", "esc":
		return m, tea.Quit
	case "up", "down":
		m.cursor = moveCursor(m.cursor, len(speakers), msg.String())
	case "enter":
		if len(speakers) == 0 {
			return m, nil
		}
		id, err := m.service.SelectSpeaker(speakers[m.cursor])
		if err != nil {
			m.status = "Error: " + err.Error()
			return m, nil
		}
		m.speaker = id
		m.screen = screenTopic
		m.cursor = 0
		m.status = fmt.Sprintf("Speaker %s. Pick a topic (+/- changes result count).", id)
	}
	return m, nil
}

func (m Model) updateTopic(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	entries := m.topicEntries()
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "esc":
		m.screen = screenSpeaker
		m.cursor = 0
		m.status = "Choose a speaker."
	case "up", "down":
		m.cursor = moveCursor(m.cursor, len(entries), msg.String())
	case "+", "=":
		m.k++
		m.status = fmt.Sprintf("Showing up to %d results.", m.k)
	case "-":
		if m.k > 1 {
			m.k--
		}
		m.status = fmt.Sprintf("Showing up to %d results.", m.k)
	case "enter":
		if entries[m.cursor] == customEntry {
			m.screen = screenKeywords
			m.input.SetValue("")
			m.input.Focus()
			m.status = "Enter keywords separated by spaces."
			return m, textinput.Blink
		}
		topic, err := m.service.PresetTopic(entries[m.cursor])
		if err != nil {
			m.status = "Error: " + err.Error()
			return m, nil
		}
		return m.runSearch(topic), nil
	}
	return m, nil
}

func (m Model) updateKeywords(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.input.Blur()
		m.screen = screenTopic
		m.status = fmt.Sprintf("Speaker %s. Pick a topic.", m.speaker)
		return m, nil
	case tea.KeyEnter:
		q := strings.TrimSpace(m.input.Value())
		if q == "" {
			return m, nil
		}
		m.input.Blur()
		return m.runSearch(m.service.AdHocTopic(q)), nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) updateResults(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "esc", "backspace":
		m.screen = screenTopic
		m.status = fmt.Sprintf("Speaker %s. Pick a topic.", m.speaker)
		return m, nil
	case "down", "right", "n":
		if len(m.results) > 0 {
			m.current = (m.current + 1) % len(m.results)
		}
	case "up", "left", "p":
		if len(m.results) > 0 {
			m.current = (m.current - 1 + len(m.results)) % len(m.results)
		}
	default:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}
	m.viewport.SetContent(m.renderCurrentResult())
	return m, nil
}

func (m Model) runSearch(topic domain.Topic) Model {
	res, err := m.service.Search(topic.Vector, m.speaker, m.k)
	if err != nil {
		m.status = "Error: " + err.Error()
		m.results = nil
	} else {
		m.status = fmt.Sprintf("Top %d of %s on %q", len(res), m.speaker, topic.Name)
		m.results = res
	}
	m.topic = topic
	m.current = 0
	m.screen = screenResults
	m.viewport.SetContent(m.renderCurrentResult())
	m.viewport.GotoTop()
	return m
}

func (m Model) topicEntries() []string {
	return append(m.service.TopicNames(), customEntry)
}

// View renders the TUI layout for the current screen.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	header := lipgloss.NewStyle().Bold(true).Render("Debate Search")
	summary := lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Render(m.summary)
	status := lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Render(m.status)
	var body string
	switch m.screen {
	case screenSpeaker:
		body = renderMenu("Speakers", m.service.Speakers(), m.cursor)
	case screenTopic:
		body = renderMenu(fmt.Sprintf("Topics for %s (k=%d)", m.speaker, m.k), m.topicEntries(), m.cursor)
	case screenKeywords:
		body = titleStyle.Render("Custom topic for "+m.speaker) + "\n" + queryBoxStyle.Render(m.input.View())
	case screenResults:
		body = resultBoxStyle.Render(m.viewport.View())
	}
	return header + "\n" + summary + "\n" + body + "\n" + status
}

func renderMenu(title string, items []string, cursor int) string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render(title))
	for i, it := range items {
		sb.WriteString("\n")
		if i == cursor {
			sb.WriteString(selectedStyle.Render("> " + it))
		} else {
			sb.WriteString("  " + it)
		}
	}
	return sb.String()
}

func (m Model) renderCurrentResult() string {
	if len(m.results) == 0 {
		return "No results."
	}
	r := m.results[m.current]
	title := fmt.Sprintf("Result %d/%d  #%d  score=%.3f", m.current+1, len(m.results), r.Index, r.Score)
	return title + "\n\n" + highlightTerms(r.Text, m.topic.Vector, m.service.Tokenize)
}

var (
	resultBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	queryBoxStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	highlightStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	titleStyle     = lipgloss.NewStyle().Underline(true)
	selectedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
)

// highlightTerms emphasizes the words of text that occur in the topic vector.
func highlightTerms(text string, topic domain.TermVector, tokenize func(string) []string) string {
	return markTerms(text, topic, tokenize, highlightStyle.Render)
}

// markTerms applies mark to every whitespace-separated word whose tokens hit
// the topic. Words go through tokenize so they match the way documents were
// vectorized.
func markTerms(text string, topic domain.TermVector, tokenize func(string) []string, mark func(...string) string) string {
	if len(topic) == 0 {
		return text
	}
	words := strings.Fields(text)
	for i, w := range words {
		for _, tok := range tokenize(w) {
			if _, ok := topic[tok]; ok {
				words[i] = mark(w)
				break
			}
		}
	}
	return strings.Join(words, " ")
}

func moveCursor(cursor, n int, key string) int {
	if n == 0 {
		return 0
	}
	if key == "down" {
		return (cursor + 1) % n
	}
	return (cursor - 1 + n) % n
}

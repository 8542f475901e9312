// Package prompt asks the operator for the two operational limits at
// startup, either through a small BubbleTea form on a terminal or line by
// line from any other reader.
package prompt

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/luki/plantmon/internal/config"
)

var questions = [2]string{
	"Digite o limite máximo de temperatura (°C): ",
	"Digite o limite máximo de umidade (%): ",
}

// ── Model ────────────────────────────────────────────────────────────

type model struct {
	answers [2]string
	field   int
	done    bool
	aborted bool
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		m.aborted = true
		return m, tea.Quit

	case tea.KeyEnter, tea.KeyCtrlJ:
		if m.field < len(m.answers)-1 {
			m.field++
			return m, nil
		}
		m.done = true
		return m, tea.Quit

	case tea.KeyBackspace:
		a := []rune(m.answers[m.field])
		if len(a) > 0 {
			m.answers[m.field] = string(a[:len(a)-1])
		}

	case tea.KeyRunes, tea.KeySpace:
		m.answers[m.field] += string(key.Runes)
	}

	return m, nil
}

var (
	questionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	answerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("51")).Bold(true)
	hintStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

func (m model) View() string {
	if m.done || m.aborted {
		return ""
	}

	var sb strings.Builder
	for i := 0; i <= m.field; i++ {
		sb.WriteString(questionStyle.Render(questions[i]))
		sb.WriteString(answerStyle.Render(m.answers[i]))
		if i == m.field {
			sb.WriteString("█")
		}
		sb.WriteString("\n")
	}
	sb.WriteString(hintStyle.Render("enter: confirmar  esc: usar limites padrão"))
	sb.WriteString("\n")
	return sb.String()
}

// ── Entry points ─────────────────────────────────────────────────────

// Run shows the interactive form on a terminal. Aborting the form or
// typing a non-numeric value yields the defaults with a non-nil error.
func Run(in io.Reader, out io.Writer) (config.Thresholds, error) {
	p := tea.NewProgram(model{}, tea.WithInput(in), tea.WithOutput(out))
	final, err := p.Run()
	if err != nil {
		return config.DefaultThresholds(), fmt.Errorf("prompt: %w", err)
	}
	return resolve(final.(model))
}

func resolve(m model) (config.Thresholds, error) {
	if m.aborted {
		return config.DefaultThresholds(), fmt.Errorf("prompt aborted: %w", config.ErrInvalidThreshold)
	}
	return config.ParseThresholds(m.answers[0], m.answers[1])
}

// ReadLines asks both questions on out and reads one answer per line from
// in. It is used when input is not a terminal.
func ReadLines(in io.Reader, out io.Writer) (config.Thresholds, error) {
	sc := bufio.NewScanner(in)
	var answers [2]string
	for i, q := range questions {
		fmt.Fprint(out, q)
		if !sc.Scan() {
			fmt.Fprintln(out)
			return config.DefaultThresholds(), fmt.Errorf("read answer: %w", config.ErrInvalidThreshold)
		}
		answers[i] = sc.Text()
		// a bad first answer ends the prompt without asking the second
		if i == 0 {
			if _, err := config.ParseLimit(answers[0]); err != nil {
				return config.DefaultThresholds(), fmt.Errorf("temperature %q: %w", answers[0], err)
			}
		}
	}
	return config.ParseThresholds(answers[0], answers[1])
}

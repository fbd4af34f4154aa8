package ui

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// ErrAborted is returned when the operator cancels a prompt.
var ErrAborted = errors.New("prompt aborted")

// Prompter asks the operator questions on a pair of streams.
type Prompter struct {
	In  io.Reader
	Out io.Writer

	reader *bufio.Reader
}

// NewPrompter returns a Prompter on stdin/stderr.
func NewPrompter() *Prompter {
	return &Prompter{In: os.Stdin, Out: os.Stderr}
}

// IsTerminal reports whether r is an interactive terminal.
func IsTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Interactive reports whether the prompter reads from a terminal.
func (p *Prompter) Interactive() bool {
	return IsTerminal(p.In)
}

// Confirm asks a yes/no question. Anything but y/yes, including EOF, is no.
func (p *Prompter) Confirm(question string) (bool, error) {
	fmt.Fprintf(p.Out, "%s %s ", WarningStyle().Render(IconWarning+" "+question), DimStyle().Render("[y/N]"))
	line, err := p.readLine()
	if err != nil {
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(p.Out)
			return false, nil
		}
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}

// ConfirmToken asks the operator to type token exactly. On a terminal an
// inline text input is used; otherwise a line is read from In.
func (p *Prompter) ConfirmToken(question, token string) (bool, error) {
	if p.Interactive() {
		return p.confirmTokenTUI(question, token)
	}

	fmt.Fprintf(p.Out, "%s\n%s ", ErrorStyle().Render(IconWarning+" "+question),
		DimStyle().Render(fmt.Sprintf("Type '%s' to continue:", token)))
	line, err := p.readLine()
	if err != nil {
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(p.Out)
			return false, nil
		}
		return false, err
	}
	return strings.TrimSpace(line) == token, nil
}

func (p *Prompter) readLine() (string, error) {
	if p.reader == nil {
		p.reader = bufio.NewReader(p.In)
	}
	line, err := p.reader.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return line, nil
}

func (p *Prompter) confirmTokenTUI(question, token string) (bool, error) {
	prog := tea.NewProgram(newTokenModel(question, token), tea.WithInput(p.In), tea.WithOutput(p.Out))
	final, err := prog.Run()
	if err != nil {
		return false, err
	}
	m := final.(tokenModel)
	if m.aborted {
		return false, ErrAborted
	}
	return m.confirmed(), nil
}

// ─── Typed confirmation model ────────────────────────────────────────────────

// tokenModel is a one-line bubbletea form: the operator types the token and
// presses Enter. Esc or Ctrl+C aborts.
type tokenModel struct {
	question  string
	token     string
	input     textinput.Model
	submitted bool
	aborted   bool
}

func newTokenModel(question, token string) tokenModel {
	ti := textinput.New()
	ti.Placeholder = token
	ti.Prompt = "  " + IconArrow + " "
	ti.CharLimit = 64
	ti.Focus()
	return tokenModel{question: question, token: token, input: ti}
}

func (m tokenModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m tokenModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyEnter:
			m.submitted = true
			return m, tea.Quit
		case tea.KeyEsc, tea.KeyCtrlC:
			m.aborted = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m tokenModel) View() string {
	if m.submitted || m.aborted {
		return ""
	}
	hint := lipgloss.NewStyle().Foreground(ColorMuted).Italic(true).
		Render(fmt.Sprintf("  Type '%s' and press Enter %s Esc cancels", m.token, IconPipe))
	return ErrorStyle().Render("  "+IconWarning+" "+m.question) + "\n" + m.input.View() + "\n" + hint + "\n"
}

func (m tokenModel) confirmed() bool {
	return m.submitted && strings.TrimSpace(m.input.Value()) == m.token
}

package ui

import (
	"bytes"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestConfirm(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"YES\n", true},
		{"n\n", false},
		{"\n", false},
		{"", false},
		{"yes", true},
	}
	for _, tt := range tests {
		p := &Prompter{In: strings.NewReader(tt.input), Out: &bytes.Buffer{}}
		got, err := p.Confirm("Proceed?")
		if err != nil {
			t.Fatalf("Confirm(%q): %v", tt.input, err)
		}
		if got != tt.want {
			t.Errorf("Confirm(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestConfirmSequence(t *testing.T) {
	p := &Prompter{In: strings.NewReader("y\nn\n"), Out: &bytes.Buffer{}}
	first, _ := p.Confirm("first?")
	second, _ := p.Confirm("second?")
	if !first || second {
		t.Errorf("answers = %v, %v, want true, false", first, second)
	}
}

func TestConfirmToken(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"delete\n", true},
		{"  delete  \n", true},
		{"yes\n", false},
		{"DELETE\n", false},
		{"y\n", false},
		{"", false},
	}
	for _, tt := range tests {
		p := &Prompter{In: strings.NewReader(tt.input), Out: &bytes.Buffer{}}
		got, err := p.ConfirmToken("Delete 2 directories?", "delete")
		if err != nil {
			t.Fatalf("ConfirmToken(%q): %v", tt.input, err)
		}
		if got != tt.want {
			t.Errorf("ConfirmToken(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestTokenModel(t *testing.T) {
	var m tea.Model = newTokenModel("Delete?", "delete")
	for _, r := range "delete" {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	tm := m.(tokenModel)
	if !tm.confirmed() {
		t.Errorf("typed token not confirmed, value %q", tm.input.Value())
	}
	if tm.View() != "" {
		t.Error("view should clear after submit")
	}
}

func TestTokenModelWrongTokenAndAbort(t *testing.T) {
	var m tea.Model = newTokenModel("Delete?", "delete")
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("yes")})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.(tokenModel).confirmed() {
		t.Error("wrong token confirmed")
	}

	m = newTokenModel("Delete?", "delete")
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if !m.(tokenModel).aborted {
		t.Error("esc did not abort")
	}
}

func TestNonFileReaderIsNotTerminal(t *testing.T) {
	if IsTerminal(strings.NewReader("")) {
		t.Error("strings.Reader reported as terminal")
	}
}

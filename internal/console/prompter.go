package console

import (
	"errors"

	"github.com/peterh/liner"
)

// ErrAborted is returned by a Prompter when the user interrupts a prompt.
var ErrAborted = errors.New("prompt aborted")

// Prompter reads one line of input. Implementations return io.EOF when input ends.
type Prompter interface {
	Prompt(prompt string) (string, error)
	PromptWithSuggestion(prompt, text string) (string, error)
	AppendHistory(line string)
	Close() error
}

type linerPrompter struct {
	state *liner.State
}

// NewLinePrompter returns a terminal line editor with history.
func NewLinePrompter() Prompter {
	state := liner.NewLiner()
	state.SetCtrlCAborts(true)
	return &linerPrompter{state: state}
}

func (p *linerPrompter) Prompt(prompt string) (string, error) {
	line, err := p.state.Prompt(prompt)
	return line, translate(err)
}

func (p *linerPrompter) PromptWithSuggestion(prompt, text string) (string, error) {
	line, err := p.state.PromptWithSuggestion(prompt, text, -1)
	return line, translate(err)
}

func (p *linerPrompter) AppendHistory(line string) {
	p.state.AppendHistory(line)
}

func (p *linerPrompter) Close() error {
	return p.state.Close()
}

func translate(err error) error {
	if errors.Is(err, liner.ErrPromptAborted) {
		return ErrAborted
	}
	return err
}

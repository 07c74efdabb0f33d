// Package menu implements the interactive prompt flow: pick a method, pick
// a bound (or type one) and, for long results, decide whether to print the
// list.
package menu

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"primesieve/internal/engine"
	"primesieve/internal/selector"
)

const (
	methodPrompt = "Select method: 1 = Prime Test; 2 = Sieve of Eratosthenes; " +
		"3 = Multithreaded Sieve of Eratosthenes; 4 = All\n"
	boundPrompt = "Select upper bound: 1 = 1,000; 2 = 100,000,000; " +
		"3 = 1,000,000,000; 4 = 4,000,000,000; 5 = Custom upper bound\n"
	customPrompt = "Enter the custom upper bound: "
	listPrompt   = "Do you want to see the list of primes? (y/n): "
)

// Prompter reads answers line by line from in and writes prompts to out.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

func New(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out}
}

// readAnswer returns the next non-empty line, trimmed.
func (p *Prompter) readAnswer() (string, error) {
	for {
		line, err := p.in.ReadString('\n')
		if s := strings.TrimSpace(line); s != "" {
			return s, nil
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return "", io.ErrUnexpectedEOF
			}
			return "", err
		}
	}
}

// Method asks for a method code (1-4).
func (p *Prompter) Method() (engine.Method, error) {
	if _, err := io.WriteString(p.out, methodPrompt); err != nil {
		return 0, err
	}
	ans, err := p.readAnswer()
	if err != nil {
		return 0, fmt.Errorf("reading method: %w", err)
	}
	_, _ = io.WriteString(p.out, "\n")
	return selector.ParseMethod(ans)
}

// Bound asks for a bound preset (1-4) or, for selector.PresetCustom, a
// typed bound.
func (p *Prompter) Bound() (uint64, error) {
	if _, err := io.WriteString(p.out, boundPrompt); err != nil {
		return 0, err
	}
	ans, err := p.readAnswer()
	if err != nil {
		return 0, fmt.Errorf("reading bound choice: %w", err)
	}
	code, err := strconv.Atoi(ans)
	if err != nil {
		return 0, fmt.Errorf("%w: bound choice %q", selector.ErrInvalidSelector, ans)
	}
	if code != selector.PresetCustom {
		n, err := selector.PresetBound(code)
		if err == nil {
			_, _ = io.WriteString(p.out, "\n")
		}
		return n, err
	}

	if _, err := io.WriteString(p.out, customPrompt); err != nil {
		return 0, err
	}
	ans, err = p.readAnswer()
	if err != nil {
		return 0, fmt.Errorf("reading custom bound: %w", err)
	}
	_, _ = io.WriteString(p.out, "\n")
	return selector.ParseBound(ans)
}

// ConfirmList asks whether to print the prime list. Only the first
// character of the answer counts: y or Y is a yes. A read error is a no.
func (p *Prompter) ConfirmList() bool {
	if _, err := io.WriteString(p.out, listPrompt); err != nil {
		return false
	}
	ans, err := p.readAnswer()
	if err != nil {
		return false
	}
	return ans[0] == 'y' || ans[0] == 'Y'
}

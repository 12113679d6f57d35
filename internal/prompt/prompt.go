package prompt

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/auto-dns/elastic-stack-ctl/internal/domain"
	"github.com/auto-dns/elastic-stack-ctl/internal/util"
)

// Prompter asks the user which action to run when none was given on the
// command line.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out}
}

// Action reads action keywords until one parses. Invalid input is reported
// and re-prompted; end of input without a valid action is an error.
func (p *Prompter) Action() (domain.Action, error) {
	choices := strings.Join(util.Map(domain.Actions(), func(a domain.Action) string { return string(a) }), "/")
	for {
		fmt.Fprintf(p.out, "Action (%s): ", choices)

		line, err := p.in.ReadString('\n')
		if err != nil && err != io.EOF {
			return "", fmt.Errorf("reading action: %w", err)
		}

		action, parseErr := domain.ParseAction(line)
		if parseErr == nil {
			return action, nil
		}
		if strings.TrimSpace(line) != "" {
			fmt.Fprintf(p.out, "Unrecognized action %q\n", strings.TrimSpace(line))
		}
		if err == io.EOF {
			return "", fmt.Errorf("no action selected: %w", io.EOF)
		}
	}
}

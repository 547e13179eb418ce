// Package prompt asks the user which apps a run should operate on.
package prompt

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/thoreinstein/dotbackup/internal/config"
	"github.com/thoreinstein/dotbackup/internal/errors"
	"github.com/thoreinstein/dotbackup/internal/logging"
)

// Sentinel errors for app selection.
var (
	ErrNoApps             = errors.New("no apps to select from")
	ErrInvalidSelection   = errors.New("invalid selection")
	ErrSelectionCancelled = errors.New("selection cancelled")
)

// Picker chooses apps and returns their names.
type Picker interface {
	PickApps(apps []config.App) ([]string, error)
}

// NewPicker returns the fuzzy finder when in is a terminal and the numbered
// prompt otherwise.
func NewPicker(in io.Reader, out io.Writer) Picker {
	if logging.IsInteractive(in) {
		return &FuzzyPicker{}
	}
	return NewSelectorWithIO(in, out)
}

// Selector is a numbered prompt reading the choice from a line of input.
type Selector struct {
	reader io.Reader
	writer io.Writer
}

// NewSelector creates a new Selector using stdin and stdout.
func NewSelector() *Selector {
	return &Selector{
		reader: os.Stdin,
		writer: os.Stdout,
	}
}

// NewSelectorWithIO creates a Selector with custom reader and writer for testing.
func NewSelectorWithIO(r io.Reader, w io.Writer) *Selector {
	return &Selector{
		reader: r,
		writer: w,
	}
}

// PickApps lists apps and reads a selection such as "1 3", "2,4" or "1-3".
//
// Returns:
//   - ErrNoApps if the list is empty
//   - the only app without prompting when there is exactly one
//   - every app when the input is empty
//   - ErrInvalidSelection for anything that is not an index or range in bounds
//   - ErrSelectionCancelled if input is EOF (e.g., Ctrl+D)
func (s *Selector) PickApps(apps []config.App) ([]string, error) {
	if len(apps) == 0 {
		return nil, ErrNoApps
	}

	if len(apps) == 1 {
		return []string{apps[0].Name}, nil
	}

	fmt.Fprintln(s.writer, "Configured apps:")
	for i, a := range apps {
		fmt.Fprintf(s.writer, "  [%d] %s (%s)\n", i+1, a.Name, plural(len(a.Files), "file"))
	}
	fmt.Fprintf(s.writer, "Select apps [all]: ")

	reader := bufio.NewReader(s.reader)
	input, err := reader.ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) {
			return nil, errors.Wrap(err, "reading selection")
		}
		// A final line without newline is still an answer.
		if input == "" {
			return nil, ErrSelectionCancelled
		}
	}

	input = strings.TrimSpace(input)
	if input == "" {
		names := make([]string, len(apps))
		for i, a := range apps {
			names[i] = a.Name
		}
		return names, nil
	}

	indexes, err := parseSelection(input, len(apps))
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(indexes))
	for _, i := range indexes {
		names = append(names, apps[i].Name)
	}
	return names, nil
}

// parseSelection turns "1 3,5-6" into zero-based indexes, keeping the first
// occurrence of each.
func parseSelection(input string, n int) ([]int, error) {
	fields := strings.FieldsFunc(input, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})

	seen := make(map[int]bool)
	var out []int
	add := func(i int) {
		if !seen[i] {
			seen[i] = true
			out = append(out, i-1)
		}
	}

	for _, f := range fields {
		lo, hi, isRange := strings.Cut(f, "-")
		start, err := parseIndex(lo, n)
		if err != nil {
			return nil, err
		}
		if !isRange {
			add(start)
			continue
		}
		end, err := parseIndex(hi, n)
		if err != nil {
			return nil, err
		}
		if end < start {
			return nil, errors.Wrapf(ErrInvalidSelection, "range %q is reversed", f)
		}
		for i := start; i <= end; i++ {
			add(i)
		}
	}
	return out, nil
}

func parseIndex(s string, n int) (int, error) {
	i, err := strconv.Atoi(s)
	if err != nil {
		return 0, errors.Wrapf(ErrInvalidSelection, "%q is not a number", s)
	}
	if i < 1 || i > n {
		return 0, errors.Wrapf(ErrInvalidSelection, "%d is out of range [1-%d]", i, n)
	}
	return i, nil
}

func plural(n int, word string) string {
	if n == 1 {
		return "1 " + word
	}
	return strconv.Itoa(n) + " " + word + "s"
}

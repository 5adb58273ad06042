package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/benmeehan/trailmap/internal/models"
)

// Terminal asks the operator for input on a line-oriented terminal.
type Terminal struct {
	in  *bufio.Reader
	out io.Writer
}

// NewTerminal creates a Terminal reading answers from in and writing prompts to out.
func NewTerminal(in io.Reader, out io.Writer) *Terminal {
	return &Terminal{
		in:  bufio.NewReader(in),
		out: out,
	}
}

// ChooseEntity lists persons numbered from 1 and returns the zero based index of the answer.
// An answer outside the listed numbers is reported as typed.
func (t *Terminal) ChooseEntity(persons []models.Person) (int, error) {
	fmt.Fprintln(t.out, "Available entities:")
	for i, person := range persons {
		fmt.Fprintf(t.out, "%d. %s\n", i+1, person.DisplayName())
	}

	choice, err := t.askInt("Enter the number of the entity you want to track: ")
	if err != nil {
		return 0, err
	}
	if choice < 1 || choice > len(persons) {
		return 0, &models.OutOfRangeError{Input: choice, Min: 1, Max: len(persons)}
	}
	return choice - 1, nil
}

// HistoryDays asks for the number of days of history to fetch.
func (t *Terminal) HistoryDays() (int, error) {
	days, err := t.askInt("Enter the number of days of history to fetch: ")
	if err != nil {
		return 0, err
	}
	return FixedDays(days).HistoryDays()
}

func (t *Terminal) askInt(question string) (int, error) {
	fmt.Fprint(t.out, question)

	line, err := t.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return 0, fmt.Errorf("failed to read answer: %w", err)
	}

	answer := strings.TrimSpace(line)
	n, err := strconv.Atoi(answer)
	if err != nil {
		return 0, &models.InvalidInputError{Input: answer, Reason: "not a whole number"}
	}
	return n, nil
}

// FixedDays is a DaysSource with a preset answer.
type FixedDays int

// HistoryDays returns the preset number of days.
func (d FixedDays) HistoryDays() (int, error) {
	if d < 0 {
		return 0, &models.InvalidInputError{Input: strconv.Itoa(int(d)), Reason: "number of days must not be negative"}
	}
	return int(d), nil
}

// FixedChoice is an EntitySelector with a preset zero based index.
type FixedChoice int

// ChooseEntity returns the preset index.
func (c FixedChoice) ChooseEntity(_ []models.Person) (int, error) {
	return int(c), nil
}

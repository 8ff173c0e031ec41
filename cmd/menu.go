package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/sw33tLie/platescope/pkg/plate"
)

type menuAction int

const (
	actionDiscover menuAction = iota + 1
	actionPlates
	actionPattern
	actionPatterns
)

// menuChoice is what the user picked in the interactive menu.
type menuChoice struct {
	action menuAction
	region byte
	count  int
	file   string
	prefix string
}

var errInvalidNumber = errors.New("please enter a valid number")

func runMenu(ctx context.Context, in io.Reader, out io.Writer) error {
	choice, err := readMenu(in, out)
	if err != nil {
		// Bad input ends the run without a failure status.
		fmt.Fprintln(out, err)
		return nil
	}

	switch choice.action {
	case actionDiscover:
		return runDiscover(ctx, choice.count, choice.region)
	case actionPlates:
		return runPlates(ctx, choice.file)
	case actionPattern:
		return runPattern(ctx, choice.prefix, choice.count)
	case actionPatterns:
		return runPatterns(ctx, choice.file, choice.count)
	}
	return nil
}

func readMenu(in io.Reader, out io.Writer) (menuChoice, error) {
	r := bufio.NewReader(in)

	fmt.Fprintln(out, "Vehicle Plate Lookup")
	fmt.Fprintln(out, "====================")
	fmt.Fprintln(out, "1. Generate and look up random plates")
	fmt.Fprintln(out, "2. Look up plates from a file")
	fmt.Fprintln(out, "3. Generate from a 3-letter pattern")
	fmt.Fprintln(out, "4. Process multiple patterns from a file")

	option, err := askInt(r, out, "\nSelect an option: ")
	if err != nil {
		return menuChoice{}, err
	}

	choice := menuChoice{action: menuAction(option)}
	switch choice.action {
	case actionDiscover:
		fmt.Fprintln(out, "\nAvailable regions:")
		for i, reg := range plate.Regions {
			fmt.Fprintf(out, "%d. %s (%c)\n", i+1, reg.Name, reg.Code)
		}
		fmt.Fprintln(out, "0. Any")

		idx, err := askInt(r, out, "\nSelect a region (0 for any): ")
		if err != nil {
			return menuChoice{}, err
		}
		if idx > 0 && idx <= len(plate.Regions) {
			choice.region = plate.Regions[idx-1].Code
		}
		if choice.count, err = askCount(r, out, "How many plates should be saved: "); err != nil {
			return menuChoice{}, err
		}

	case actionPlates:
		choice.file = ask(r, out, "Path of the file with the plates: ")

	case actionPattern:
		choice.prefix = strings.ToUpper(ask(r, out, "Enter the 3 letters of the pattern (e.g. ABC): "))
		if choice.count, err = askCount(r, out, "How many plates should be generated: "); err != nil {
			return menuChoice{}, err
		}

	case actionPatterns:
		choice.file = ask(r, out, "Path of the patterns file (Enter for '"+defaultPatternsFile+"'): ")
		if choice.file == "" {
			choice.file = defaultPatternsFile
		}
		if choice.count, err = askCount(r, out, "How many plates should be generated per pattern: "); err != nil {
			return menuChoice{}, err
		}

	default:
		return menuChoice{}, errors.New("invalid option")
	}
	return choice, nil
}

func ask(r *bufio.Reader, out io.Writer, prompt string) string {
	fmt.Fprint(out, prompt)
	line, _ := r.ReadString('\n')
	return strings.TrimSpace(line)
}

func askInt(r *bufio.Reader, out io.Writer, prompt string) (int, error) {
	n, err := strconv.Atoi(ask(r, out, prompt))
	if err != nil {
		return 0, errInvalidNumber
	}
	return n, nil
}

func askCount(r *bufio.Reader, out io.Writer, prompt string) (int, error) {
	n, err := askInt(r, out, prompt)
	if err != nil {
		return 0, err
	}
	if n <= 0 {
		return 0, errors.New("the amount must be greater than 0")
	}
	return n, nil
}

// terminal.go
//
// Line-oriented front end for the puzzle engine.
// Responsibilities:
//   - Render a status line on every store change and the full board on demand.
//   - Turn commands into session / carousel calls.
//   - Announce the game-over result when a submission completes the puzzle.
//
// Commands: show, guess <prompt>, select <n>, reset, next, save <path>, help, quit.

package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/robalobadob/redoodle/internal/carousel"
	"github.com/robalobadob/redoodle/internal/puzzle"
	"github.com/robalobadob/redoodle/internal/session"
	"github.com/robalobadob/redoodle/internal/state"
)

const helpText = `commands:
  show            print the puzzle
  guess <prompt>  submit a prompt for the next image
  select <n>      show guess n (1-based)
  reset           start the current puzzle over
  next            move on to the next puzzle
  save <path>     write the shown guess image to a PNG file
  help            this text
  quit            exit`

type terminal struct {
	in    io.Reader
	out   io.Writer
	store *state.Store
	sess  *session.Session
	car   *carousel.Controller
}

func newTerminal(in io.Reader, out io.Writer, st *state.Store, sess *session.Session, car *carousel.Controller) *terminal {
	return &terminal{in: in, out: out, store: st, sess: sess, car: car}
}

func (t *terminal) run(ctx context.Context) error {
	unsubscribe := t.store.Subscribe(t.status)
	defer unsubscribe()
	t.sess.OnComplete(t.gameOver)

	if _, err := t.sess.Load(ctx); err != nil {
		fmt.Fprintf(t.out, "could not load puzzle: %v\n", err)
	} else {
		t.show()
	}

	lines := make(chan string)
	readErr := make(chan error, 1)
	done := make(chan struct{})
	defer close(done)
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(t.in)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-done:
				return
			}
		}
		readErr <- sc.Err()
	}()

	for {
		fmt.Fprint(t.out, "> ")
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				return <-readErr
			}
			if quit := t.exec(ctx, strings.TrimSpace(line)); quit {
				return nil
			}
		}
	}
}

// exec runs one command and reports whether the loop should stop.
func (t *terminal) exec(ctx context.Context, line string) bool {
	cmd, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)

	switch strings.ToLower(cmd) {
	case "":
	case "show":
		t.show()
	case "guess":
		t.report(t.sess.SubmitGuess(ctx, arg))
	case "select":
		n, err := strconv.Atoi(arg)
		if err != nil || !t.car.Select(n-1) {
			fmt.Fprintf(t.out, "select: want a guess number between 1 and %d\n", t.store.Snapshot().GuessesTotal)
		}
	case "reset":
		t.report(t.sess.Reset(ctx))
	case "next":
		t.report(t.sess.Advance(ctx))
	case "save":
		t.save(arg)
	case "help", "?":
		fmt.Fprintln(t.out, helpText)
	case "quit", "exit":
		return true
	default:
		fmt.Fprintf(t.out, "unknown command %q (try help)\n", cmd)
	}
	return false
}

func (t *terminal) report(_ puzzle.State, err error) {
	switch {
	case err == nil:
		t.show()
	case errors.Is(err, session.ErrPuzzleComplete):
		fmt.Fprintln(t.out, "no guesses left: reset or move to the next puzzle")
	case errors.Is(err, session.ErrEmptyPrompt):
		fmt.Fprintln(t.out, "guess: enter a prompt")
	default:
		fmt.Fprintf(t.out, "error: %v\n", err)
	}
}

// status prints a one-line summary of each new snapshot.
func (t *terminal) status(st puzzle.State) {
	idx := st.CurrentSelectedGuessIndex
	note := ""
	if img, ok := st.SelectedGuess(); ok && img.IsLoading {
		note = " (generating...)"
	}
	fmt.Fprintf(t.out, "[%s] guesses %d/%d, showing #%d%s\n", st.PuzzleName, st.GuessesMade(), st.GuessesTotal, idx+1, note)
}

func (t *terminal) show() {
	st := t.store.Snapshot()
	fmt.Fprintln(t.out, st.PuzzleName)
	fmt.Fprintf(t.out, "  %-8s %s\n", st.StartImage.Heading+":", st.StartImage.Caption)
	goal := st.GoalImage.Caption
	if goal == "" {
		goal = "?"
	}
	fmt.Fprintf(t.out, "  %-8s %s\n", st.GoalImage.Heading+":", goal)
	fmt.Fprintf(t.out, "  Guesses (%d/%d):\n", st.GuessesMade(), st.GuessesTotal)
	for _, ind := range t.car.Indicators() {
		marker := " "
		if ind.Selected {
			marker = ">"
		}
		fmt.Fprintf(t.out, "  %s %d. %s\n", marker, ind.Index+1, ind.Caption)
	}
}

func (t *terminal) gameOver(st puzzle.State) {
	fmt.Fprintf(t.out, "Your final image was %.1f%% similar!\n", *st.SimilarityScore)
	fmt.Fprintf(t.out, "  final guess: %s\n", *st.FinalPrompt)
	if _, goal, ok := t.car.FinalComparison(); ok && goal.Caption != "" {
		fmt.Fprintf(t.out, "  goal prompt: %s\n", goal.Caption)
	}
}

func (t *terminal) save(path string) {
	if path == "" {
		fmt.Fprintln(t.out, "save: want a file path")
		return
	}
	_, img := t.car.Current()
	if !img.Visible() {
		fmt.Fprintln(t.out, "save: nothing to save for this slot yet")
		return
	}
	b, err := img.Bytes()
	if err != nil {
		fmt.Fprintf(t.out, "save: %v\n", err)
		return
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		fmt.Fprintf(t.out, "save: %v\n", err)
		return
	}
	fmt.Fprintf(t.out, "saved %d bytes to %s\n", len(b), path)
}

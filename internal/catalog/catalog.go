// internal/catalog/catalog.go
//
// Puzzle catalog for the dev puzzle API.
//
// Responsibilities:
//   - Load "start prompt | goal prompt" lines from a file or the embedded default.
//   - Number puzzles from 1 in line order.
//   - Answer lookups and "next puzzle" progression.
//
// Progression:
//   - Next(n) is the following puzzle; past the end the last puzzle repeats.
//
// File format:
//   one puzzle per line, blank lines and lines starting with '#' ignored.

package catalog

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/robalobadob/redoodle/assets"
)

// Puzzle is one catalog entry.
type Puzzle struct {
	Num         int
	StartPrompt string
	GoalPrompt  string
}

// Catalog is an ordered, immutable list of puzzles.
type Catalog struct {
	puzzles []Puzzle
}

// Load reads path, or the embedded catalog when path is empty.
func Load(path string) (*Catalog, error) {
	var lines []string
	var err error
	if path == "" {
		lines, err = assets.PuzzleLines()
	} else {
		lines, err = readFile(path)
	}
	if err != nil {
		return nil, err
	}
	return Parse(lines)
}

// Parse builds a catalog from "start | goal" lines.
func Parse(lines []string) (*Catalog, error) {
	c := &Catalog{}
	for i, l := range lines {
		start, goal, ok := strings.Cut(l, "|")
		start, goal = strings.TrimSpace(start), strings.TrimSpace(goal)
		if !ok || start == "" || goal == "" {
			return nil, fmt.Errorf("catalog line %d: want \"start | goal\", got %q", i+1, l)
		}
		c.puzzles = append(c.puzzles, Puzzle{Num: len(c.puzzles) + 1, StartPrompt: start, GoalPrompt: goal})
	}
	if len(c.puzzles) == 0 {
		return nil, errors.New("catalog is empty")
	}
	return c, nil
}

func readFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		s := strings.TrimSpace(sc.Text())
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}
		out = append(out, s)
	}
	return out, sc.Err()
}

// Len reports the number of puzzles.
func (c *Catalog) Len() int { return len(c.puzzles) }

// Get returns puzzle num (1-based).
func (c *Catalog) Get(num int) (Puzzle, bool) {
	if num < 1 || num > len(c.puzzles) {
		return Puzzle{}, false
	}
	return c.puzzles[num-1], true
}

// Next returns the puzzle number after num, repeating the last one.
func (c *Catalog) Next(num int) int {
	if num < 1 {
		return 1
	}
	if num >= len(c.puzzles) {
		return len(c.puzzles)
	}
	return num + 1
}

package assets

import (
	"bufio"
	"embed"
	"strings"
)

//go:embed snapshot.schema.json puzzles.txt
var FS embed.FS

// SnapshotSchemaURL is the resource name the schema is compiled under.
const SnapshotSchemaURL = "snapshot.schema.json"

func readLines(name string) ([]string, error) {
	f, err := FS.Open(name)
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

// PuzzleLines returns the embedded "start | goal" catalog lines.
func PuzzleLines() ([]string, error) {
	return readLines("puzzles.txt")
}

// SnapshotSchema returns the JSON schema for wire puzzle snapshots.
func SnapshotSchema() ([]byte, error) {
	return FS.ReadFile(SnapshotSchemaURL)
}

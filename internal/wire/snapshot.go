// internal/wire/snapshot.go
//
// Wire format for puzzle snapshots exchanged with the puzzle API.
// Responsibilities:
//   - Define the server → client JSON shape.
//   - Decode response bodies, validating them against the embedded JSON schema
//     before they reach the domain model.
//   - Reject guess lists with a produced image after an empty slot.

package wire

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/robalobadob/redoodle/assets"
)

// ErrInvalidSnapshot is returned when a body does not match the snapshot schema.
var ErrInvalidSnapshot = errors.New("invalid puzzle snapshot")

// Image is one wire image. Prompt is null for hidden prompts (e.g. the goal
// before completion) and decodes to "".
type Image struct {
	Base64Image string  `json:"base64_image"`
	Prompt      *string `json:"prompt"`
}

// Snapshot is the server's serialized puzzle state.
// GuessImages entries may be null, meaning "not yet guessed".
type Snapshot struct {
	StartImage       Image    `json:"start_image"`
	GoalImage        Image    `json:"goal_image"`
	GuessImages      []*Image `json:"guess_images"`
	GuessesSubmitted int      `json:"guesses_submitted"`
	GuessesTotal     int      `json:"guesses_total"`
	PuzzleNum        int      `json:"puzzle_num"`
	SimilarityScore  *float64 `json:"similarity_score"`
	FinalPrompt      *string  `json:"final_prompt"`
}

// PromptText returns the prompt or "" when absent.
func (i Image) PromptText() string {
	if i.Prompt == nil {
		return ""
	}
	return *i.Prompt
}

var (
	schemaOnce sync.Once
	schema     *jsonschema.Schema
	schemaErr  error
)

func snapshotSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		raw, err := assets.SnapshotSchema()
		if err != nil {
			schemaErr = fmt.Errorf("read snapshot schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource(assets.SnapshotSchemaURL, bytes.NewReader(raw)); err != nil {
			schemaErr = fmt.Errorf("add snapshot schema: %w", err)
			return
		}
		schema, schemaErr = c.Compile(assets.SnapshotSchemaURL)
	})
	return schema, schemaErr
}

// Decode validates data against the snapshot schema and unmarshals it.
func Decode(data []byte) (Snapshot, error) {
	sch, err := snapshotSchema()
	if err != nil {
		return Snapshot{}, err
	}
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return Snapshot{}, fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
	}
	if err := sch.Validate(doc); err != nil {
		return Snapshot{}, fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
	}
	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return Snapshot{}, fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
	}
	gap := -1
	for i, g := range s.GuessImages {
		switch {
		case g == nil && gap < 0:
			gap = i
		case g != nil && gap >= 0:
			return Snapshot{}, fmt.Errorf("%w: guess_images[%d] follows empty slot %d", ErrInvalidSnapshot, i, gap)
		}
	}
	return s, nil
}

// internal/puzzle/types.go
//
// Core type definitions for the client-side puzzle model.
// Defines:
//   - Image: one displayable image slot (start, goal, or a guess).
//   - State: the single source of truth for one puzzle in progress.
//
// The model carries only server-driven facts. View-only toggles (expanded
// images, animations) belong to the presentation layer.

package puzzle

const (
	// DefaultGuessesTotal is the guess quota used for the pre-load snapshot.
	DefaultGuessesTotal = 3

	OriginalImageHeading    = "Original"
	GoalImageHeading        = "Goal"
	ImagePlaceholderCaption = "Your guess will appear here"
	LoadingCaption          = "Loading..."
	LoadingPuzzleName       = "Loading..."
)

// Image is one displayable image slot.
//
// Invariants:
//   - DisplayPlaceholder implies Payload == "".
//   - IsLoading suppresses rendering of any prior payload.
type Image struct {
	Payload            string // data URL or bare base64, empty when absent
	Caption            string
	Heading            string
	IsLoading          bool // an update for this slot is in flight
	DisplayPlaceholder bool // nothing has been produced for this slot yet
}

// State holds a puzzle in progress.
//
// GuessImages has fixed length GuessesTotal and index i is always the i-th
// guess made.
type State struct {
	StartImage                Image
	GoalImage                 Image
	GuessImages               []Image
	GuessesTotal              int
	PuzzleName                string
	CurrentSelectedGuessIndex int
	SimilarityScore           *float64 // nil until complete, then 0..100
	FinalPrompt               *string  // nil until complete
}

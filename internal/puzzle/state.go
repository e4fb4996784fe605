// internal/puzzle/state.go
//
// Pure helpers over the puzzle model.
// Responsibilities:
//   - Build the pre-load snapshot shown before the first fetch.
//   - Count submitted guesses and detect completion.
//   - Produce independent copies so the store never leaks its snapshot.
//   - Decode image payloads (data URL or bare base64).

package puzzle

import (
	"encoding/base64"
	"errors"
	"strings"
)

// Placeholder returns an empty guess slot awaiting an image.
func Placeholder() Image {
	return Image{Caption: ImagePlaceholderCaption, DisplayPlaceholder: true}
}

// Loading builds the snapshot shown while the first puzzle load is pending.
// n <= 0 falls back to DefaultGuessesTotal.
func Loading(n int) State {
	if n <= 0 {
		n = DefaultGuessesTotal
	}
	guesses := make([]Image, n)
	for i := range guesses {
		img := Placeholder()
		img.IsLoading = true
		guesses[i] = img
	}
	return State{
		StartImage: Image{
			Caption:            LoadingCaption,
			Heading:            OriginalImageHeading,
			IsLoading:          true,
			DisplayPlaceholder: true,
		},
		GoalImage: Image{
			Caption:            LoadingCaption,
			Heading:            GoalImageHeading,
			IsLoading:          true,
			DisplayPlaceholder: true,
		},
		GuessImages:  guesses,
		GuessesTotal: n,
		PuzzleName:   LoadingPuzzleName,
	}
}

// GuessesMade counts the non-placeholder guess slots.
func (s State) GuessesMade() int {
	n := 0
	for _, img := range s.GuessImages {
		if !img.DisplayPlaceholder {
			n++
		}
	}
	return n
}

// IsComplete reports whether the score and final prompt are present and the
// guess quota has been used up.
func (s State) IsComplete() bool {
	return s.SimilarityScore != nil && s.FinalPrompt != nil && s.GuessesMade() >= s.GuessesTotal
}

// ValidGuessIndex reports whether i addresses a guess slot.
func (s State) ValidGuessIndex(i int) bool {
	return i >= 0 && i < s.GuessesTotal && i < len(s.GuessImages)
}

// SelectedGuess returns the slot the carousel is showing.
func (s State) SelectedGuess() (Image, bool) {
	if !s.ValidGuessIndex(s.CurrentSelectedGuessIndex) {
		return Image{}, false
	}
	return s.GuessImages[s.CurrentSelectedGuessIndex], true
}

// Clone returns a deep copy.
func (s State) Clone() State {
	out := s
	if s.GuessImages != nil {
		out.GuessImages = make([]Image, len(s.GuessImages))
		copy(out.GuessImages, s.GuessImages)
	}
	if s.SimilarityScore != nil {
		v := *s.SimilarityScore
		out.SimilarityScore = &v
	}
	if s.FinalPrompt != nil {
		v := *s.FinalPrompt
		out.FinalPrompt = &v
	}
	return out
}

// WithLoading marks a slot as having an update in flight.
func (img Image) WithLoading() Image {
	img.IsLoading = true
	return img
}

// Visible reports whether the payload should be rendered.
func (img Image) Visible() bool {
	return !img.IsLoading && !img.DisplayPlaceholder && img.Payload != ""
}

var errNoPayload = errors.New("image has no payload")

// Bytes decodes the payload, accepting a data URL or a bare base64 string.
func (img Image) Bytes() ([]byte, error) {
	p := img.Payload
	if p == "" {
		return nil, errNoPayload
	}
	if strings.HasPrefix(p, "data:") {
		i := strings.Index(p, ",")
		if i < 0 {
			return nil, errors.New("malformed data URL")
		}
		p = p[i+1:]
	}
	return base64.StdEncoding.DecodeString(p)
}

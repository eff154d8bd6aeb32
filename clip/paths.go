package clip

import (
	"fmt"

	"github.com/user/markerman/pkg/slug"
)

// FormatIndex renders a clip's 1-based position as the zero-padded text used
// both for display and for sorting.
func FormatIndex(index int) string {
	return fmt.Sprintf("%02d", index)
}

// Filename computes the output name for the clip at index from its marker name.
// Format: {NN}_{slug}, e.g. "03_intro". The index prefix keeps names distinct
// when two markers slug to the same text; an empty slug leaves "03_".
func Filename(index int, markerName string) string {
	return FormatIndex(index) + "_" + slug.Sanitize(markerName)
}

package digest

import (
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// folderCompare orders folder names for section headings. It reports -1, 0,
// or 1 like strings.Compare.
type folderCompare func(a, b string) int

// localeCompare orders mixed Japanese and Latin folder names with proper
// collation. A plain code-point comparison is not an acceptable substitute
// here: it interleaves scripts and cases in ways no reader expects.
func localeCompare() folderCompare {
	c := collate.New(language.Japanese)
	return c.CompareString
}

// codepointCompare is the deterministic fallback for environments without
// collation tables. It must only ever be tested against its own ordering.
func codepointCompare(a, b string) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

package rnacompete

import (
	"io"
	"strings"

	"github.com/csimplestring/go-csv/detector"
)

// tableDelimiters are the separators accepted from detection. The detector
// returns every byte that occurs equally often on each sampled line, in no
// particular order, so punctuation such as '_' or '-' in identifiers can
// otherwise be chosen.
const tableDelimiters = "\t,;|"

// DetermineDelimiter returns the most likely delimiter of the delimited table
// in r, considering only tableDelimiters. Annotation tables are most often
// tab-delimited, so that is the fallback.
func DetermineDelimiter(r io.Reader) rune {
	d := detector.New()

	for _, candidate := range d.DetectDelimiter(r, '"') {
		if len(candidate) == 1 && strings.ContainsRune(tableDelimiters, rune(candidate[0])) {
			return rune(candidate[0])
		}
	}

	return '\t'
}

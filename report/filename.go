package report

import "fmt"

// SampleMarker is the k-mer subsample size embedded in output names, or "all"
// when every k-mer was used.
func SampleMarker(nkmers int) string {
	if nkmers <= 0 {
		return "all"
	}

	return fmt.Sprintf("%d", nkmers)
}

// FileName builds names like pearson_performance_1000kmers_SetA.tsv.
func FileName(prefix string, nkmers int, label, ext string) string {
	return fmt.Sprintf("%s_%skmers_%s.%s", prefix, SampleMarker(nkmers), label, ext)
}

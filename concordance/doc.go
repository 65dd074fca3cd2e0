// Package concordance measures how reproducible the k-mer summaries of each
// RNA-binding protein are between two replicate RNAcompete experiments.
//
// For every target, the Z-score, AUC and E-score of each k-mer are computed
// from both sets, and the two sets are compared with Pearson and Spearman
// correlations after dropping k-mers that are undefined in either set. A
// metric with no paired values is left out for that target; a metric with a
// single pair is undefined and causes the target to be skipped, as does a
// target with no metric left.
package concordance

// Package rnacompete holds the input helpers shared by the RNAcompete replicate
// concordance tools: opening local, compressed, or Google Storage inputs and
// sniffing the delimiter of annotation tables.
//
// The analysis itself lives in the kmers, annotation, metrics, concordance,
// report and plot packages, and is driven by cmd/rbpconcordance.
package rnacompete

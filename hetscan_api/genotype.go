package hetscan_api

import (
	"strconv"
	"strings"
)

// ExtractGenotype pairs the FORMAT keys with the colon-delimited sample
// values and returns the GT, DP and GQ subfields. Keys absent from the
// FORMAT field stay empty, they are never defaulted.
func ExtractGenotype(formatKeys []string, sampleValue string) (*GenotypeFields, error) {
	values := strings.Split(sampleValue, ":")
	if len(values) != len(formatKeys) {
		return nil, &FieldCountMismatchError{Keys: len(formatKeys), Values: len(values)}
	}

	content := map[string]string{}
	for index, key := range formatKeys {
		content[key] = values[index]
	}

	fields := &GenotypeFields{
		GT: content["GT"],
		DP: content["DP"],
		GQ: content["GQ"],
	}
	return fields, nil
}

// Thresholds are the configurable bounds of the quality predicate
type Thresholds struct {
	// Minimum exclusive read depth
	Depth int

	// Minimum inclusive genotype quality
	Quality int
}

// Pass reports whether the genotype is a heterozygous call with sufficient
// read depth and genotype quality. A missing DP or GQ always fails.
func (t Thresholds) Pass(fields *GenotypeFields) bool {
	if !IsHeterozygous(fields.GT) {
		return false
	}
	if !t.DepthPasses(fields.DP) {
		return false
	}
	return t.QualityPasses(fields.GQ)
}

// IsHeterozygous reports whether the GT call has exactly one reference
// allele "0" and one non-reference allele, in either order. Phased "|" and
// unphased "/" notation are equivalent. Multi-allelic calls without a
// reference allele (e.g. "1/2") do not count as heterozygous.
func IsHeterozygous(gt string) bool {
	alleles := strings.Split(strings.ReplaceAll(gt, "|", "/"), "/")
	if len(alleles) != 2 {
		return false
	}
	first, second := alleles[0], alleles[1]
	if second == "0" {
		first, second = second, first
	}
	return first == "0" && second != "0" && second != "." && second != ""
}

// IsMissingGT reports whether the GT call is absent
func IsMissingGT(gt string) bool {
	return gt == "" || gt == "." || gt == "./." || gt == ".|."
}

// DepthPasses reports whether DP is present and strictly greater than the
// depth threshold
func (t Thresholds) DepthPasses(dp string) bool {
	value, err := strconv.Atoi(dp)
	if err != nil {
		return false
	}
	return value > t.Depth
}

// QualityPasses reports whether GQ is present and greater than or equal to
// the quality threshold
func (t Thresholds) QualityPasses(gq string) bool {
	value, err := strconv.Atoi(gq)
	if err != nil {
		return false
	}
	return value >= t.Quality
}

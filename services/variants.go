package services

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Alternates are numbered bid options in this range.
const (
	MinAlternate = 1
	MaxAlternate = 25
)

// ParseAlternates parses a comma-separated alternate list. Non-numeric
// tokens and out-of-range numbers are dropped; duplicates collapse; the
// result is sorted ascending.
func ParseAlternates(text string) []int {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	seen := map[int]bool{}
	var out []int
	for _, part := range strings.Split(text, ",") {
		part = strings.TrimSpace(part)
		n, err := strconv.Atoi(part)
		if err != nil || n < MinAlternate || n > MaxAlternate || seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	sort.Ints(out)
	return out
}

// VariantsFor expands an alternate list into variant keys: "BASE" plus one
// "ALTn" per alternate, ascending.
func VariantsFor(alts []int) []string {
	sorted := append([]int(nil), alts...)
	sort.Ints(sorted)
	out := []string{"BASE"}
	for _, n := range sorted {
		out = append(out, fmt.Sprintf("ALT%d", n))
	}
	return out
}

// SpecID builds the composite spec identifier for a (code, variant) pair.
func SpecID(code, variant string) string {
	return code + "||" + variant
}

// ParseSpecID splits a spec identifier back into code and variant. A missing
// or empty variant part reads as "BASE".
func ParseSpecID(specID string) (code, variant string) {
	if base, v, ok := strings.Cut(specID, "||"); ok {
		v = strings.TrimSpace(v)
		if v == "" {
			v = "BASE"
		}
		return strings.TrimSpace(base), v
	}
	return strings.TrimSpace(specID), "BASE"
}

// SpecLabel is the user-facing name for a (code, variant) pair: the bare code
// for BASE, "ALTn code" otherwise.
func SpecLabel(code, variant string) string {
	if variant == "BASE" {
		return code
	}
	return variant + " " + code
}

// ValidSpecIDs returns the set of spec identifiers implied by the job's cost
// codes: every code with non-blank text crossed with its variants.
func ValidSpecIDs(job *Job) map[string]bool {
	out := map[string]bool{}
	for _, cc := range job.CostCodes {
		code := strings.TrimSpace(cc.Code)
		if code == "" {
			continue
		}
		for _, v := range VariantsFor(cc.Alts) {
			out[SpecID(code, v)] = true
		}
	}
	return out
}

// sortedSpecIDs returns a deterministic ordering of a spec-id keyed map,
// sorted by code then variant (BASE first, then ALTs numerically).
func sortedSpecIDs[V any](m map[string]V) []string {
	ids := make([]string, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		ci, vi := ParseSpecID(ids[i])
		cj, vj := ParseSpecID(ids[j])
		if ci != cj {
			return ci < cj
		}
		return variantRank(vi) < variantRank(vj)
	})
	return ids
}

func variantRank(variant string) int {
	if variant == "BASE" {
		return 0
	}
	n, err := strconv.Atoi(strings.TrimPrefix(variant, "ALT"))
	if err != nil {
		return MaxAlternate + 1
	}
	return n
}

package services

import "strings"

// CalcQuoteCost computes the quoted cost from a whole-dollar price and a
// surcharge percentage. The surcharge addend truncates: calc on 999 at 33.3%
// adds 332, not 333.
func CalcQuoteCost(price int, surchargePct float64) int {
	return price + int(float64(price)*(surchargePct/100.0))
}

// QuoteSummary totals and averages the quotes that carry a positive cost.
// Blank placeholder quotes are excluded from both figures.
func QuoteSummary(quotes []*Quote) (total, avg int) {
	count := 0
	for _, q := range quotes {
		if q != nil && q.Cost > 0 {
			total += q.Cost
			count++
		}
	}
	if count > 0 {
		avg = total / count
	}
	return total, avg
}

// NormalizeQuotes reconciles the quotes map against the current cost codes:
// legacy bare-code keys migrate to "code||BASE" (merging into an existing
// BASE bucket), every valid spec identifier gets a bucket holding at least
// one quote, stale buckets are dropped, and every quote's cost is recomputed
// from its price and surcharge.
func NormalizeQuotes(job *Job) {
	if job.Quotes == nil {
		job.Quotes = map[string][]*Quote{}
	}

	for key, quotes := range job.Quotes {
		if strings.Contains(key, "||") {
			continue
		}
		delete(job.Quotes, key)
		base := strings.TrimSpace(key)
		if base == "" {
			continue
		}
		newKey := SpecID(base, "BASE")
		job.Quotes[newKey] = append(job.Quotes[newKey], quotes...)
	}

	valid := ValidSpecIDs(job)
	for id := range job.Quotes {
		if !valid[id] {
			delete(job.Quotes, id)
		}
	}

	for id := range valid {
		bucket := job.Quotes[id]
		kept := bucket[:0]
		for _, q := range bucket {
			if q != nil {
				kept = append(kept, q)
			}
		}
		if len(kept) == 0 {
			kept = append(kept, &Quote{})
		}
		for _, q := range kept {
			q.Cost = CalcQuoteCost(q.Price, q.Surcharge)
		}
		job.Quotes[id] = kept
	}
}

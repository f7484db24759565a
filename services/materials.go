package services

import "strings"

// sealantsFactorDefault is one sausage tube per 12 linear feet of joint.
const sealantsFactorDefault = "0.0833"

// MaterialQty resolves a material's quantity from its basis: a section
// subtotal scaled by the factor, or the manually entered quantity text.
func MaterialQty(m *Material, subs Subtotals) float64 {
	factor := SafeFloat(m.Factor)
	switch m.Basis {
	case BasisPerim:
		return float64(subs.Perim) * factor
	case BasisHeadSill:
		return float64(subs.HeadSill) * factor
	case BasisCaulkLF:
		return float64(subs.CaulkLF) * factor
	default:
		return SafeFloat(m.Qty)
	}
}

// MaterialCost is the rounded-up extended cost of one material line; an
// exactly-zero product stays zero instead of ceiling to 1.
func MaterialCost(m *Material, subs Subtotals) int {
	product := MaterialQty(m, subs) * SafeFloat(m.Rate)
	if product == 0 {
		return 0
	}
	return RoundUp(product)
}

// RecomputeSectionTotals recalculates every row's derived columns, then the
// section subtotals, then each material's cost, storing and returning the
// install-material total. The sealants template row re-seeds its factor if
// the estimator blanked it.
func RecomputeSectionTotals(section *ScheduleSection) int {
	for _, r := range section.Rows {
		if r != nil {
			CalcScheduleRow(r)
		}
	}

	subs := ScheduleSubtotals(section.Rows)

	total := 0
	for _, m := range section.Materials {
		if m == nil {
			continue
		}
		if m.Key == "sealants" && strings.TrimSpace(m.Factor) == "" {
			m.Factor = sealantsFactorDefault
		}
		total += MaterialCost(m, subs)
	}

	section.InstallMaterialTotal = total
	return total
}

// materialHasData reports whether the estimator entered anything on the
// material line; used to gate freeform-row deletion behind confirmation.
func materialHasData(m *Material) bool {
	for _, v := range []string{m.Label, m.Qty, m.Factor, m.Rate, m.Unit} {
		if strings.TrimSpace(v) != "" {
			return true
		}
	}
	return false
}

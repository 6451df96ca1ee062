package agents

// IsEligible reports whether p may stand for target in the given year.
// It reads only p's current snapshot; there is no hidden history.
func IsEligible(p *Politician, target Office, year int, rules Rules) bool {
	spec, ok := rules.Offices[target]
	if !ok || !target.Valid() {
		return false
	}
	if p.Age < spec.MinAge {
		return false
	}

	// Quaestor is the entry rung: age is the only gate.
	if target == OfficeQuaestor {
		return true
	}

	if p.Office != target.Predecessor() || p.Tenure < rules.PromotionTenure {
		return false
	}

	if target == OfficeConsul && p.LastConsulYear != nil {
		return year-*p.LastConsulYear >= rules.ConsulCooldown
	}
	return true
}

// Electable reports whether p belongs in target's candidate pool this year.
// On top of IsEligible it forbids moving a sitting magistrate sideways or
// down the ladder: office holders only ever stand for a higher office.
func Electable(p *Politician, target Office, year int, rules Rules) bool {
	if p.Office != OfficeNone && p.Office >= target {
		return false
	}
	return IsEligible(p, target, year, rules)
}

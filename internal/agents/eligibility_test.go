package agents

import "testing"

func intPtr(v int) *int { return &v }

func TestIsEligibleAgeGate(t *testing.T) {
	rules := DefaultRules()

	// Every other field is set so that only age can fail the check.
	tests := []struct {
		target Office
		holds  Office
		minAge int
	}{
		{OfficeQuaestor, OfficeNone, 30},
		{OfficeAedile, OfficeQuaestor, 36},
		{OfficePraetor, OfficeAedile, 39},
		{OfficeConsul, OfficePraetor, 42},
	}

	for _, tt := range tests {
		t.Run(tt.target.String(), func(t *testing.T) {
			p := &Politician{Office: tt.holds, Tenure: 10, Age: tt.minAge - 1}
			if IsEligible(p, tt.target, 100, rules) {
				t.Errorf("age %d eligible for %v, want ineligible", p.Age, tt.target)
			}
			p.Age = tt.minAge
			if !IsEligible(p, tt.target, 100, rules) {
				t.Errorf("age %d ineligible for %v, want eligible", p.Age, tt.target)
			}
		})
	}
}

func TestIsEligiblePredecessorChain(t *testing.T) {
	rules := DefaultRules()

	tests := []struct {
		name   string
		p      Politician
		target Office
		want   bool
	}{
		{"fresh candidate stands for quaestor", Politician{Age: 30}, OfficeQuaestor, true},
		{"quaestor with tenure 2 stands for aedile", Politician{Age: 36, Office: OfficeQuaestor, Tenure: 2}, OfficeAedile, true},
		{"quaestor with tenure 1 waits", Politician{Age: 36, Office: OfficeQuaestor, Tenure: 1}, OfficeAedile, false},
		{"candidate cannot skip to aedile", Politician{Age: 50}, OfficeAedile, false},
		{"quaestor cannot skip to praetor", Politician{Age: 50, Office: OfficeQuaestor, Tenure: 9}, OfficePraetor, false},
		{"aedile with tenure 2 stands for praetor", Politician{Age: 39, Office: OfficeAedile, Tenure: 2}, OfficePraetor, true},
		{"aedile cannot skip to consul", Politician{Age: 50, Office: OfficeAedile, Tenure: 9}, OfficeConsul, false},
		{"praetor with tenure 2 stands for consul", Politician{Age: 42, Office: OfficePraetor, Tenure: 2}, OfficeConsul, true},
		{"praetor with tenure 0 waits", Politician{Age: 42, Office: OfficePraetor}, OfficeConsul, false},
		{"no such office", Politician{Age: 60}, OfficeNone, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsEligible(&tt.p, tt.target, 1, rules); got != tt.want {
				t.Errorf("IsEligible(%+v, %v) = %v, want %v", tt.p, tt.target, got, tt.want)
			}
		})
	}
}

func TestIsEligibleConsulCooldown(t *testing.T) {
	rules := DefaultRules()
	p := &Politician{Age: 45, Office: OfficePraetor, Tenure: 2, LastConsulYear: intPtr(5)}

	for year := 6; year < 15; year++ {
		if IsEligible(p, OfficeConsul, year, rules) {
			t.Errorf("year %d: eligible %d years after consulship, want ineligible", year, year-5)
		}
	}
	for _, year := range []int{15, 16, 40} {
		if !IsEligible(p, OfficeConsul, year, rules) {
			t.Errorf("year %d: ineligible %d years after consulship, want eligible", year, year-5)
		}
	}
}

func TestIsEligibleConsulScenarios(t *testing.T) {
	rules := DefaultRules()
	p := &Politician{Age: 45, Office: OfficePraetor, Tenure: 2}

	if !IsEligible(p, OfficeConsul, 1, rules) {
		t.Fatal("praetor with no prior consulship should be eligible in year 1")
	}

	p.LastConsulYear = intPtr(5)
	if IsEligible(p, OfficeConsul, 10, rules) {
		t.Error("consul in year 5 should be ineligible in year 10")
	}
	if !IsEligible(p, OfficeConsul, 15, rules) {
		t.Error("consul in year 5 should be eligible in year 15")
	}
}

func TestElectable(t *testing.T) {
	rules := DefaultRules()

	tests := []struct {
		name   string
		p      Politician
		target Office
		want   bool
	}{
		{"candidate for quaestor", Politician{Age: 30}, OfficeQuaestor, true},
		{"sitting quaestor not re-pooled", Politician{Age: 33, Office: OfficeQuaestor}, OfficeQuaestor, false},
		{"consul never demoted to quaestor", Politician{Age: 50, Office: OfficeConsul}, OfficeQuaestor, false},
		{"praetor moves up", Politician{Age: 45, Office: OfficePraetor, Tenure: 3}, OfficeConsul, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Electable(&tt.p, tt.target, 1, rules); got != tt.want {
				t.Errorf("Electable(%+v, %v) = %v, want %v", tt.p, tt.target, got, tt.want)
			}
		})
	}
}

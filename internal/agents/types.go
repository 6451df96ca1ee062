// Package agents provides the politician data model, the office ladder,
// eligibility rules, and the spawner that creates new politicians.
package agents

import "fmt"

// PoliticianID is a unique identifier for a politician within one run.
type PoliticianID uint64

// Office is a rung on the cursus honorum. The zero value means no office.
type Office uint8

const (
	OfficeNone     Office = iota // Unelected candidate
	OfficeQuaestor               // Entry tier
	OfficeAedile
	OfficePraetor
	OfficeConsul // Top tier
)

// Offices lists every real office in ascending order of seniority.
var Offices = []Office{OfficeQuaestor, OfficeAedile, OfficePraetor, OfficeConsul}

// ElectionOrder lists offices in the order elections are resolved: top-down.
var ElectionOrder = []Office{OfficeConsul, OfficePraetor, OfficeAedile, OfficeQuaestor}

var officeNames = [...]string{"none", "quaestor", "aedile", "praetor", "consul"}

// String returns the lower-case name of the office.
func (o Office) String() string {
	if int(o) < len(officeNames) {
		return officeNames[o]
	}
	return fmt.Sprintf("office(%d)", uint8(o))
}

// Valid reports whether o is one of the four real offices.
func (o Office) Valid() bool {
	return o >= OfficeQuaestor && o <= OfficeConsul
}

// Predecessor returns the office that must be held before standing for o.
// Quaestor has no predecessor and returns OfficeNone.
func (o Office) Predecessor() Office {
	if o <= OfficeQuaestor || o > OfficeConsul {
		return OfficeNone
	}
	return o - 1
}

// ParseOffice maps an office name back to its value.
func ParseOffice(name string) (Office, error) {
	for i, n := range officeNames {
		if i > 0 && n == name {
			return Office(i), nil
		}
	}
	return OfficeNone, fmt.Errorf("unknown office %q", name)
}

// MarshalText encodes the office by name, so JSON maps keyed by Office read well.
func (o Office) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// UnmarshalText decodes an office name.
func (o *Office) UnmarshalText(text []byte) error {
	if string(text) == "none" {
		*o = OfficeNone
		return nil
	}
	v, err := ParseOffice(string(text))
	if err != nil {
		return err
	}
	*o = v
	return nil
}

// Politician is a single agent climbing the ladder.
type Politician struct {
	ID   PoliticianID `json:"id"`
	Name string       `json:"name"`

	Age            int `json:"age"`             // Sim-years
	LifeExpectancy int `json:"life_expectancy"` // Drawn once at creation

	Office Office `json:"office"`
	Tenure int    `json:"tenure"` // Consecutive years in Office

	// Year the politician most recently took a consulship.
	LastConsulYear *int `json:"last_consul_year,omitempty"`

	BornYear int `json:"born_year"` // Simulation year the politician entered the model
}

// Elect moves p into office for the given year. Tenure resets only when the
// office actually changes. Taking the consulship always stamps LastConsulYear.
func (p *Politician) Elect(office Office, year int) (promoted bool) {
	if p.Office != office {
		p.Office = office
		p.Tenure = 0
		promoted = true
	}
	if office == OfficeConsul {
		y := year
		p.LastConsulYear = &y
	}
	return promoted
}

// OutlivesNextYear reports whether p survives the next aging step.
func (p *Politician) OutlivesNextYear() bool {
	return p.Age+1 <= p.LifeExpectancy
}

// AgeOneYear advances the politician by one year in age and tenure.
func (p *Politician) AgeOneYear() {
	p.Age++
	p.Tenure++
}

// OfficeSpec carries the per-office parameters.
type OfficeSpec struct {
	Capacity      int `json:"capacity"`
	MinAge        int `json:"min_age"`
	InitialAgeMin int `json:"initial_age_min"` // Age band for incumbents at initialization
	InitialAgeMax int `json:"initial_age_max"`
}

// Rules holds the office ladder parameters the election depends on.
type Rules struct {
	Offices         map[Office]OfficeSpec `json:"offices"`
	PromotionTenure int                   `json:"promotion_tenure"` // Years in predecessor office before promotion
	ConsulCooldown  int                   `json:"consul_cooldown"`  // Years between consulships
}

// DefaultRules returns the classic ladder: 20 quaestors, 10 aediles,
// 8 praetors and 2 consuls.
func DefaultRules() Rules {
	return Rules{
		Offices: map[Office]OfficeSpec{
			OfficeQuaestor: {Capacity: 20, MinAge: 30, InitialAgeMin: 30, InitialAgeMax: 34},
			OfficeAedile:   {Capacity: 10, MinAge: 36, InitialAgeMin: 36, InitialAgeMax: 39},
			OfficePraetor:  {Capacity: 8, MinAge: 39, InitialAgeMin: 39, InitialAgeMax: 42},
			OfficeConsul:   {Capacity: 2, MinAge: 42, InitialAgeMin: 42, InitialAgeMax: 45},
		},
		PromotionTenure: 2,
		ConsulCooldown:  10,
	}
}

// Capacities returns the seat count per office.
func (r Rules) Capacities() map[Office]int {
	caps := make(map[Office]int, len(Offices))
	for _, o := range Offices {
		caps[o] = r.Offices[o].Capacity
	}
	return caps
}

// EntryAge is the age at which fresh candidates enter the model.
func (r Rules) EntryAge() int {
	return r.Offices[OfficeQuaestor].MinAge
}

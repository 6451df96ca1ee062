// Politician spawning: seeds the initial magistracies and creates each
// year's fresh crop of candidates.
package agents

import (
	"github.com/talgya/cursus/internal/entropy"
)

// Spawner creates politicians for the simulation. All randomness comes from
// the run's stream.
type Spawner struct {
	stream *entropy.Stream
	life   entropy.LifeExpectancy
	rules  Rules
	nextID PoliticianID
}

// NewSpawner creates a spawner bound to a run's stream.
func NewSpawner(stream *entropy.Stream, life entropy.LifeExpectancy, rules Rules) *Spawner {
	return &Spawner{
		stream: stream,
		life:   life,
		rules:  rules,
		nextID: 1,
	}
}

// NextID returns the ID the next spawned politician will receive.
func (s *Spawner) NextID() PoliticianID {
	return s.nextID
}

// SpawnIncumbents creates a full bench for office, with ages drawn
// uniformly from the office's initial age band.
func (s *Spawner) SpawnIncumbents(office Office) []*Politician {
	spec := s.rules.Offices[office]
	out := make([]*Politician, 0, spec.Capacity)
	for i := 0; i < spec.Capacity; i++ {
		p := s.spawnOne(s.stream.IntRange(spec.InitialAgeMin, spec.InitialAgeMax), 0)
		p.Office = office
		out = append(out, p)
	}
	return out
}

// SpawnCandidates creates count fresh candidates at the entry age, holding
// no office and with zero tenure.
func (s *Spawner) SpawnCandidates(count int, year int) []*Politician {
	if count <= 0 {
		return nil
	}
	out := make([]*Politician, 0, count)
	for i := 0; i < count; i++ {
		out = append(out, s.spawnOne(s.rules.EntryAge(), year))
	}
	return out
}

func (s *Spawner) spawnOne(age int, year int) *Politician {
	id := s.nextID
	s.nextID++

	return &Politician{
		ID:             id,
		Name:           s.generateName(),
		Age:            age,
		LifeExpectancy: s.life.Draw(s.stream),
		Office:         OfficeNone,
		Tenure:         0,
		BornYear:       year,
	}
}

func (s *Spawner) generateName() string {
	praenomen := praenomina[s.stream.Intn(len(praenomina))]
	nomen := nomina[s.stream.Intn(len(nomina))]
	return praenomen + " " + nomen
}

// Name pools for procedural generation.
var praenomina = []string{
	"Appius", "Aulus", "Decimus", "Gaius", "Gnaeus", "Lucius", "Mamercus",
	"Manius", "Marcus", "Numerius", "Publius", "Quintus", "Servius",
	"Sextus", "Spurius", "Tiberius", "Titus",
}

var nomina = []string{
	"Aemilius", "Antonius", "Aurelius", "Caecilius", "Calpurnius", "Claudius",
	"Cornelius", "Domitius", "Fabius", "Flavius", "Fulvius", "Julius",
	"Junius", "Licinius", "Livius", "Manlius", "Marcius", "Octavius",
	"Pompeius", "Porcius", "Postumius", "Sempronius", "Sergius", "Servilius",
	"Sulpicius", "Terentius", "Tullius", "Valerius",
}

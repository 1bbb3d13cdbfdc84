package ingestion

import (
	"context"
	"maps"
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/openshift-assisted/machine-monitor/internal/config"
	"github.com/openshift-assisted/machine-monitor/internal/domain/entity"
	"github.com/openshift-assisted/machine-monitor/internal/log"
)

type outcome string

const (
	outcomeHealthy  outcome = "healthy"
	outcomeWarning  outcome = "warning"
	outcomeCritical outcome = "critical"
	outcomeSilent   outcome = "silent"
)

type weightedOutcome struct {
	outcome outcome
	weight  int
}

var disturbances = []weightedOutcome{
	{outcomeWarning, 40},
	{outcomeCritical, 30},
	{outcomeSilent, 30},
}

type span struct {
	low, high float64
}

type profile struct {
	temperature span
	pressure    span
	speed       span
	diskVolume  span
}

// Readings of each profile sit inside the matching band of the default thresholds.
var profiles = map[outcome]profile{
	outcomeHealthy: {
		temperature: span{35, 50},
		pressure:    span{1.5, 2.5},
		speed:       span{1000, 1800},
		diskVolume:  span{40, 80},
	},
	outcomeWarning: {
		temperature: span{62, 78},
		pressure:    span{3.1, 4.5},
		speed:       span{1000, 1800},
		diskVolume:  span{40, 80},
	},
	outcomeCritical: {
		temperature: span{82, 95},
		pressure:    span{5.2, 6},
		speed:       span{1000, 1800},
		diskVolume:  span{40, 80},
	},
}

// Simulator produces synthetic readings for the inventory.
// Every update interval it either ends the current disturbance, once it has lasted the recovery
// interval, or disturbs one random healthy machine.
// A silent machine stops reporting for the silence interval, which outlasts the offline timeout.
type Simulator struct {
	mu sync.Mutex

	clock clockwork.Clock
	rand  *rand.Rand
	conf  config.Simulation

	ids         []string
	outcomes    map[string]outcome
	readings    map[string]map[string]any
	silentSince map[string]time.Time
	current     string
	disturbedAt time.Time
	lastUpdate  time.Time
}

func NewSimulator(ids []string, conf config.Simulation, clock clockwork.Clock, rnd *rand.Rand) *Simulator {
	ret := &Simulator{
		clock:       clock,
		rand:        rnd,
		conf:        conf,
		ids:         ids,
		outcomes:    make(map[string]outcome, len(ids)),
		readings:    make(map[string]map[string]any, len(ids)),
		silentSince: make(map[string]time.Time),
	}

	for _, id := range ids {
		ret.outcomes[id] = outcomeHealthy
		ret.readings[id] = ret.generate(outcomeHealthy)
	}

	ret.lastUpdate = clock.Now()

	return ret
}

// NewRand returns a generator seeded with seed, or with the current time when seed is 0.
func NewRand(seed int64, clock clockwork.Clock) *rand.Rand {
	if seed == 0 {
		seed = clock.Now().UnixNano()
	}

	return rand.New(rand.NewSource(seed)) //nolint:gosec
}

func (s *Simulator) Poll(_ context.Context) ([]entity.InboundSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()

	if now.Sub(s.lastUpdate) >= s.conf.UpdateInterval {
		s.update(now)
		s.lastUpdate = now
	}

	timestamp := entity.FormatTimestamp(now)

	ret := make([]entity.InboundSnapshot, 0, len(s.ids))

	for _, id := range s.ids {
		if s.outcomes[id] == outcomeSilent {
			continue
		}

		ret = append(ret, entity.InboundSnapshot{
			ID:        id,
			Data:      maps.Clone(s.readings[id]),
			Timestamp: timestamp,
		})
	}

	return ret, nil
}

func (s *Simulator) update(now time.Time) {
	for _, id := range s.ids {
		if s.outcomes[id] == outcomeHealthy {
			s.readings[id] = s.generate(outcomeHealthy)
		}
	}

	for _, id := range s.ids {
		since, silent := s.silentSince[id]
		if silent && now.Sub(since) >= s.conf.SilenceInterval {
			s.recover(id)
		}
	}

	if s.current != "" {
		if now.Sub(s.disturbedAt) < s.conf.RecoveryInterval {
			return
		}

		if s.outcomes[s.current] != outcomeSilent {
			s.recover(s.current)
		}

		s.current = ""

		return
	}

	healthy := s.healthy()
	if len(healthy) == 0 {
		return
	}

	id := healthy[s.rand.Intn(len(healthy))]
	next := s.pick()

	s.outcomes[id] = next
	s.current = id
	s.disturbedAt = now

	if next == outcomeSilent {
		s.silentSince[id] = now
	} else {
		s.readings[id] = s.generate(next)
	}

	log.Logger().V(1).Info("Simulated machine disturbed", "machineID", id, "outcome", next)
}

func (s *Simulator) recover(id string) {
	delete(s.silentSince, id)

	s.outcomes[id] = outcomeHealthy
	s.readings[id] = s.generate(outcomeHealthy)

	log.Logger().V(1).Info("Simulated machine recovered", "machineID", id)
}

func (s *Simulator) healthy() []string {
	ret := make([]string, 0, len(s.ids))

	for _, id := range s.ids {
		if s.outcomes[id] == outcomeHealthy {
			ret = append(ret, id)
		}
	}

	return ret
}

func (s *Simulator) pick() outcome {
	total := 0
	for _, d := range disturbances {
		total += d.weight
	}

	n := s.rand.Intn(total)

	for _, d := range disturbances {
		if n < d.weight {
			return d.outcome
		}

		n -= d.weight
	}

	return outcomeWarning
}

func (s *Simulator) generate(o outcome) map[string]any {
	p := profiles[o]

	return map[string]any{
		entity.FieldTemperature: s.uniform(p.temperature),
		entity.FieldPressure:    s.uniform(p.pressure),
		entity.FieldSpeed:       math.Round(s.uniform(p.speed)),
		entity.FieldDiskVolume:  s.uniform(p.diskVolume),
	}
}

func (s *Simulator) uniform(r span) float64 {
	v := r.low + s.rand.Float64()*(r.high-r.low)

	return math.Round(v*10) / 10
}

package rewards

import (
	"sort"

	"github.com/osse101/TrainerBot_Go/internal/domain"
)

// Roster is a read-only index over the acting user's trainers and monsters
type Roster struct {
	trainers     map[int64]domain.Trainer
	monsters     map[int64]domain.Monster
	trainerOrder []int64
	monsterOrder []int64
}

// NewRoster indexes trainers and monsters by ID. Later duplicates replace
// earlier ones but keep the first position.
func NewRoster(trainers []domain.Trainer, monsters []domain.Monster) *Roster {
	r := &Roster{
		trainers: make(map[int64]domain.Trainer, len(trainers)),
		monsters: make(map[int64]domain.Monster, len(monsters)),
	}
	for _, t := range trainers {
		if _, seen := r.trainers[t.ID]; !seen {
			r.trainerOrder = append(r.trainerOrder, t.ID)
		}
		r.trainers[t.ID] = t
	}
	for _, m := range monsters {
		if _, seen := r.monsters[m.ID]; !seen {
			r.monsterOrder = append(r.monsterOrder, m.ID)
		}
		r.monsters[m.ID] = m
	}
	return r
}

// Trainer looks up a trainer by ID.
func (r *Roster) Trainer(id int64) (domain.Trainer, bool) {
	if r == nil {
		return domain.Trainer{}, false
	}
	t, ok := r.trainers[id]
	return t, ok
}

// Monster looks up a monster by ID.
func (r *Roster) Monster(id int64) (domain.Monster, bool) {
	if r == nil {
		return domain.Monster{}, false
	}
	m, ok := r.monsters[id]
	return m, ok
}

// Trainers returns trainers in roster order.
func (r *Roster) Trainers() []domain.Trainer {
	if r == nil {
		return nil
	}
	out := make([]domain.Trainer, 0, len(r.trainerOrder))
	for _, id := range r.trainerOrder {
		out = append(out, r.trainers[id])
	}
	return out
}

// Monsters returns monsters in roster order.
func (r *Roster) Monsters() []domain.Monster {
	if r == nil {
		return nil
	}
	out := make([]domain.Monster, 0, len(r.monsterOrder))
	for _, id := range r.monsterOrder {
		out = append(out, r.monsters[id])
	}
	return out
}

// MonstersOf returns the monsters owned by trainerID, sorted by ID.
func (r *Roster) MonstersOf(trainerID int64) []domain.Monster {
	if r == nil {
		return nil
	}
	var out []domain.Monster
	for _, m := range r.monsters {
		if m.TrainerID == trainerID {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Len returns the number of trainers and monsters.
func (r *Roster) Len() (trainers, monsters int) {
	if r == nil {
		return 0, 0
	}
	return len(r.trainers), len(r.monsters)
}

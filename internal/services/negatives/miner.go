// Package negatives mines mismatched donor segments: rows whose action
// class pair differs from a source segment's, relabeled so they look like
// candidates for the source action but are definitionally not instances of
// it.
package negatives

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/kt902/dissertation/internal/models"
)

type poolKey struct {
	nounClass int
	verbClass int
}

// Miner samples structurally dissimilar donors from the full annotation
// table. Candidate pools are cached per (noun_class, verb_class) key.
type Miner struct {
	records []*models.SegmentRecord
	pools   map[poolKey][]int
	rng     *rand.Rand
}

// NewMiner creates a miner over the full annotation table. A nil rng gets a
// time-seeded source; tests inject a fixed seed.
func NewMiner(records []*models.SegmentRecord, rng *rand.Rand) *Miner {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Miner{
		records: records,
		pools:   make(map[poolKey][]int),
		rng:     rng,
	}
}

// pool returns the indices of records whose (noun_class, verb_class) pair
// differs from key, computing and caching it on first use.
func (m *Miner) pool(key poolKey) []int {
	if cached, ok := m.pools[key]; ok {
		return cached
	}

	var candidates []int
	for i, rec := range m.records {
		if rec.NounClass != key.nounClass || rec.VerbClass != key.verbClass {
			candidates = append(candidates, i)
		}
	}
	m.pools[key] = candidates
	return candidates
}

// Sample draws count donors for the source segment, uniformly at random and
// without replacement, and relabels each: the donor takes the source's
// action class pair and narration_id, records its own original identity as
// negative_narration_id, and has action presence and quality forced to zero.
func (m *Miner) Sample(source *models.SegmentRecord, count int) ([]*models.SegmentRecord, error) {
	if count <= 0 {
		count = 1
	}

	candidates := m.pool(poolKey{nounClass: source.NounClass, verbClass: source.VerbClass})
	if len(candidates) < count {
		return nil, fmt.Errorf("segment %s: need %d negative donors, only %d rows have a different class pair",
			source.NarrationID, count, len(candidates))
	}

	// Partial Fisher-Yates over a scratch copy; only the first count slots
	// are settled.
	scratch := make([]int, len(candidates))
	copy(scratch, candidates)
	sampled := make([]*models.SegmentRecord, 0, count)
	for i := 0; i < count; i++ {
		j := i + m.rng.Intn(len(scratch)-i)
		scratch[i], scratch[j] = scratch[j], scratch[i]

		donor := *m.records[scratch[i]]
		donor.NounClass = source.NounClass
		donor.VerbClass = source.VerbClass
		donor.QualityScore = 0
		donor.ActionPresence = 0
		donor.NegativeNarrationID = donor.NarrationID
		donor.NarrationID = source.NarrationID
		sampled = append(sampled, &donor)
	}

	return sampled, nil
}

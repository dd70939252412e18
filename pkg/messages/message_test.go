package messages

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var base = time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

func TestCanon(t *testing.T) {
	est := time.FixedZone("EST", -5*60*60)
	assert.Equal(t, base, Canon(base.In(est)))
	assert.Equal(t, base, Canon(base.Add(300*time.Millisecond)))
}

func TestClassify(t *testing.T) {
	m := &Message{ID: "a1", ExpiresAt: base.Add(time.Minute), CreatedAt: base}

	assert.Equal(t, Live, Classify(m, base))
	assert.Equal(t, Live, Classify(m, base.Add(59*time.Second)))
	// expiry instant itself is already expired
	assert.Equal(t, TimeExpired, Classify(m, base.Add(time.Minute)))
	assert.Equal(t, TimeExpired, Classify(m, base.Add(time.Hour)))
}

func TestClassifySubSecondPrecision(t *testing.T) {
	m := &Message{ID: "a1", ExpiresAt: base.Add(time.Minute), CreatedAt: base}

	// sub-second slack on either side of the boundary must not change
	// the verdict, since backends round-trip whole seconds only
	assert.Equal(t, Live, Classify(m, base.Add(59*time.Second+900*time.Millisecond)))
	assert.Equal(t, TimeExpired, Classify(m, base.Add(60*time.Second+100*time.Millisecond)))
}

func TestClassifyCorrupt(t *testing.T) {
	m := &Message{ID: "a1", CreatedAt: base}
	assert.Equal(t, Corrupt, Classify(m, base))
}

func TestReclaimable(t *testing.T) {
	live := &Message{ID: "a1", ExpiresAt: base.Add(time.Minute), CreatedAt: base}
	assert.False(t, Reclaimable(live, base))
	assert.True(t, Reclaimable(live, base.Add(2*time.Minute)))

	corrupt := &Message{ID: "a2", CreatedAt: base}
	assert.False(t, Reclaimable(corrupt, base))
	assert.False(t, Reclaimable(corrupt, base.Add(CorruptGrace-time.Second)))
	assert.True(t, Reclaimable(corrupt, base.Add(CorruptGrace)))
}

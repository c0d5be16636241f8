package skill

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolve_NoSkillsIsNeutral(t *testing.T) {
	r := NewResolver()
	m := r.Resolve(nil)
	assert.Equal(t, 1.0, m.PriceMultiplier)
	assert.Equal(t, 1.0, m.CostMultiplier)
}

func TestResolve_MultiplicativeStacking(t *testing.T) {
	r := NewResolverWithEffects(map[string]Effect{
		"a": {Target: TargetPrice, Factor: 1.10},
		"b": {Target: TargetPrice, Factor: 1.20},
		"c": {Target: TargetCost, Factor: 0.90},
	})

	m := r.Resolve([]string{"a", "b", "c"})
	assert.InDelta(t, 1.32, m.PriceMultiplier, 0.0001)
	assert.InDelta(t, 0.90, m.CostMultiplier, 0.0001)
}

func TestResolve_DuplicatesAppliedOnce(t *testing.T) {
	r := NewResolverWithEffects(map[string]Effect{
		"a": {Target: TargetPrice, Factor: 1.50},
	})

	m := r.Resolve([]string{"a", "a", "a"})
	assert.InDelta(t, 1.50, m.PriceMultiplier, 0.0001)
}

func TestResolve_UnknownSkillsIgnored(t *testing.T) {
	r := NewResolver()
	m := r.Resolve([]string{"does_not_exist"})
	assert.Equal(t, 1.0, m.PriceMultiplier)
	assert.Equal(t, 1.0, m.CostMultiplier)
}

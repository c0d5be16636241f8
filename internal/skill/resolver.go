// Package skill folds a user's unlocked skill set into the scalar multipliers
// consumed by the tycoon simulation.
package skill

// Modifiers are the two multipliers applied to a simulated day's revenue and
// expenses. Neutral is {1.0, 1.0}.
type Modifiers struct {
	PriceMultiplier float64 `json:"price_multiplier"`
	CostMultiplier  float64 `json:"cost_multiplier"`
}

// Effect modifier targets
const (
	TargetPrice = "price"
	TargetCost  = "cost"
)

// Effect is one skill's contribution: a multiplicative factor on either the
// price or the cost side.
type Effect struct {
	Target string
	Factor float64
}

// defaultEffects maps skill IDs to their economic effect. Skills not listed
// here have no economic effect and are ignored by the resolver.
var defaultEffects = map[string]Effect{
	"marketing_basics":    {Target: TargetPrice, Factor: 1.05},
	"premium_branding":    {Target: TargetPrice, Factor: 1.10},
	"customer_service":    {Target: TargetPrice, Factor: 1.05},
	"bulk_purchasing":     {Target: TargetCost, Factor: 0.95},
	"supply_negotiation":  {Target: TargetCost, Factor: 0.90},
	"waste_reduction":     {Target: TargetCost, Factor: 0.95},
	"automation_know_how": {Target: TargetCost, Factor: 0.92},
}

// Resolver computes modifiers from an unlocked-skill-ID set. It holds no
// per-user state: callers resolve fresh on every simulation run, so a skill
// unlocked mid-session affects the next simulated day but never a day already
// resolved.
type Resolver struct {
	effects map[string]Effect
}

// NewResolver creates a resolver with the built-in effect catalog
func NewResolver() *Resolver {
	return &Resolver{effects: defaultEffects}
}

// NewResolverWithEffects creates a resolver with a custom effect catalog
func NewResolverWithEffects(effects map[string]Effect) *Resolver {
	return &Resolver{effects: effects}
}

// Resolve folds the unlocked skills into multiplicative modifiers. Duplicate
// IDs in the input are applied once.
func (r *Resolver) Resolve(unlocked []string) Modifiers {
	m := Modifiers{PriceMultiplier: 1.0, CostMultiplier: 1.0}
	seen := make(map[string]bool, len(unlocked))
	for _, id := range unlocked {
		if seen[id] {
			continue
		}
		seen[id] = true
		effect, ok := r.effects[id]
		if !ok {
			continue
		}
		switch effect.Target {
		case TargetPrice:
			m.PriceMultiplier *= effect.Factor
		case TargetCost:
			m.CostMultiplier *= effect.Factor
		}
	}
	return m
}

package domain

// GameType selects which template state machine hosts a business simulation
type GameType string

// Recognized game types
const (
	GameTypeTycoon   GameType = "tycoon"
	GameTypeClicker  GameType = "clicker"
	GameTypeSorting  GameType = "sorting"
	GameTypeDriving  GameType = "driving"
	GameTypeMatching GameType = "matching"
	GameTypeRhythm   GameType = "rhythm"
)

// Entity types
const (
	EntityTypeItem     = "item"
	EntityTypeObstacle = "obstacle"
	EntityTypeTarget   = "target"
	EntityTypeResource = "resource"
)

// Upgrade modifier targets
const (
	ModifierTargetClickValue = "click_value"
	ModifierTargetAutoRate   = "auto_rate"
)

// BusinessSimulation is a declarative, CMS-authored config describing one
// playable mini-game/economy. It is an unvalidated superset schema: game_type
// determines which fields are meaningful, the rest are ignored rather than
// rejected because configs are hand-authored externally.
type BusinessSimulation struct {
	ID            string        `json:"id"`
	Name          string        `json:"name"`
	Category      string        `json:"category"`
	GameType      GameType      `json:"game_type"`
	VisualConfig  VisualConfig  `json:"visual_config"`
	Variables     Variables     `json:"variables"`
	GameMechanics GameMechanics `json:"game_mechanics"`
	Entities      []Entity      `json:"entities"`
	Scoring       Scoring       `json:"scoring"`
	UpgradeTree   []Upgrade     `json:"upgrade_tree"`
	EventTriggers EventTriggers `json:"event_triggers"`
}

// VisualConfig carries presentation-only theming. It never affects gameplay.
type VisualConfig struct {
	Theme  string   `json:"theme"`
	Colors []string `json:"colors"`
	Icon   string   `json:"icon"`
}

// Variables holds the tycoon template's player-tunable inputs
type Variables struct {
	PlayerInputs []PlayerInput `json:"player_inputs"`
}

// PlayerInput is one named 0-100 slider
type PlayerInput struct {
	Name  string `json:"name"`
	Label string `json:"label"`
}

// GameMechanics carries optional per-type tunables. Zero values mean
// "use the template default".
type GameMechanics struct {
	ClickValue  int `json:"click_value,omitempty"`
	AutoRate    int `json:"auto_rate,omitempty"`
	SpawnRateMs int `json:"spawn_rate_ms,omitempty"`
}

// Entity is a typed game object with an emoji glyph
type Entity struct {
	ID       string `json:"id"`
	Type     string `json:"type"`
	Glyph    string `json:"glyph"`
	Behavior string `json:"behavior,omitempty"`
}

// Scoring holds the config-driven scoring knobs
type Scoring struct {
	BasePoints       int `json:"base_points,omitempty"`
	WinThreshold     int `json:"win_threshold,omitempty"`
	TimeLimitSeconds int `json:"time_limit_seconds,omitempty"`
}

// Upgrade is a permanent, one-time-purchasable modifier attached to a business
type Upgrade struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Cost           int     `json:"cost"`
	Effect         string  `json:"effect"`
	ModifierTarget string  `json:"modifier_target,omitempty"`
	ModifierValue  float64 `json:"modifier_value,omitempty"`
}

// EventTriggers holds the named random events rolled during a tycoon simulation
type EventTriggers struct {
	Positive []BusinessEvent `json:"positive"`
	Negative []BusinessEvent `json:"negative"`
}

// BusinessEvent is one random event with a textual effect description and a
// numeric multiplier applied during simulation
type BusinessEvent struct {
	Name       string  `json:"name"`
	Effect     string  `json:"effect"`
	Multiplier float64 `json:"multiplier,omitempty"`
}

// ItemEntities returns the config's item-type entities in declared order
func (b *BusinessSimulation) ItemEntities() []Entity {
	var items []Entity
	for _, e := range b.Entities {
		if e.Type == EntityTypeItem {
			items = append(items, e)
		}
	}
	return items
}

// FindUpgrade returns the upgrade with the given ID, or nil
func (b *BusinessSimulation) FindUpgrade(id string) *Upgrade {
	for i := range b.UpgradeTree {
		if b.UpgradeTree[i].ID == id {
			return &b.UpgradeTree[i]
		}
	}
	return nil
}

package ledger

// Level curve parameters. XP to go from level N-1 to N is
// BaseXP * N^LevelExponent; level is derived from cumulative XP.
const (
	BaseXP        = 100
	LevelExponent = 1.5
	MaxLevel      = 100
)

// ManagerHireCost is the flat BizCoin price of hiring a manager for a
// business, converting it into a passive-income portfolio item.
const ManagerHireCost = 500

// InitialManagerLevel is the manager level a freshly hired manager starts at
const InitialManagerLevel = 1

// User cache tuning
const (
	UserCacheSize       = 1024
	UserCacheTTLSeconds = 30
)

package domain

import "time"

// User is a registered player record. XP, level, coin balance and the
// portfolio are the only fields the game core mutates; Level is always
// derived from XP, never set independently.
type User struct {
	ID        string          `json:"id"`
	Username  string          `json:"username"`
	XP        int64           `json:"xp"`
	Level     int             `json:"level"`
	BizCoins  int             `json:"biz_coins"`
	Skills    []string        `json:"skills,omitempty"`
	Portfolio []PortfolioItem `json:"portfolio"`
	CreatedAt time.Time       `json:"created_at"`
}

// PortfolioItem is an owned business automation record. Created when the user
// hires a manager for a business; never deleted.
type PortfolioItem struct {
	BusinessID    string    `json:"business_id"`
	ManagerLevel  int       `json:"manager_level"`
	LastCollected time.Time `json:"last_collected"`
}

// FindPortfolioItem returns the portfolio entry for a business, or nil
func (u *User) FindPortfolioItem(businessID string) *PortfolioItem {
	for i := range u.Portfolio {
		if u.Portfolio[i].BusinessID == businessID {
			return &u.Portfolio[i]
		}
	}
	return nil
}

// HasSkill reports whether the user has unlocked the given skill
func (u *User) HasSkill(skillID string) bool {
	for _, s := range u.Skills {
		if s == skillID {
			return true
		}
	}
	return false
}

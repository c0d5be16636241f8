package catalog

import (
	"fmt"

	"github.com/playventures/bizlab/internal/domain"
)

// Tutorial is the static how-to-play text for a game template. Tutorials are
// per template, not per business, so they live in code rather than configs.
type Tutorial struct {
	Title string   `json:"title"`
	Steps []string `json:"steps"`
}

var tutorials = map[domain.GameType]Tutorial{
	domain.GameTypeTycoon: {
		Title: "Run Your Business",
		Steps: []string{
			"Set your sliders to decide quality, price, and marketing for the day.",
			"Start the day and watch customers come in.",
			"Check the results: revenue minus expenses is your profit.",
			"Buy upgrades to attract more customers, then try the next day!",
		},
	},
	domain.GameTypeClicker: {
		Title: "Click to Earn",
		Steps: []string{
			"Tap the business to earn points with every click.",
			"Buy upgrades to earn more per click or to earn automatically.",
			"Keep an eye on your score and cash out when you're done.",
		},
	},
	domain.GameTypeSorting: {
		Title: "Sort It Out",
		Steps: []string{
			"Items appear one at a time. Look at each one carefully.",
			"Send each item to its matching bin.",
			"Correct sorts earn points; wrong bins cost you a few.",
		},
	},
	domain.GameTypeDriving: {
		Title: "Delivery Dash",
		Steps: []string{
			"Steer your delivery car around the grid with the arrow controls.",
			"Reach the target to score and earn bonus time.",
			"Deliver as many orders as you can before time runs out.",
		},
	},
	domain.GameTypeMatching: {
		Title: "Follow the Recipe",
		Steps: []string{
			"A recipe shows three ingredients in order.",
			"Pick the ingredients in exactly that order.",
			"A perfect match scores points; a wrong order clears your tray.",
		},
	},
	domain.GameTypeRhythm: {
		Title: "Feel the Beat",
		Steps: []string{
			"Notes slide across the screen toward the hit line.",
			"Hit each note right when it crosses the line.",
			"Perfect timing scores big, and combos multiply your points!",
		},
	},
}

// TutorialFor returns the tutorial for a game type
func TutorialFor(gameType domain.GameType) (Tutorial, error) {
	t, ok := tutorials[gameType]
	if !ok {
		return Tutorial{}, fmt.Errorf("%w: %s", domain.ErrUnknownGameType, gameType)
	}
	return t, nil
}

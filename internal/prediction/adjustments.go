package prediction

import (
	"fmt"

	"github.com/yourusername/clever-props/internal/models"
	"github.com/yourusername/clever-props/internal/stats"
)

// Rest and venue factors.
const (
	BackToBackFactor = 0.95
	WellRestedFactor = 1.02
	WellRestedDays   = 3
	HomeFactor       = 1.03
	AwayFactor       = 0.97
)

// Adjustments returns the ordered multiplicative adjustments for a game:
// pace, rest, opponent, venue, then minutes when a projection and a minutes
// history are both available.
func Adjustments(statType models.StatType, gameCtx models.GameContext, series models.Series) []models.Adjustment {
	out := []models.Adjustment{
		paceAdjustment(gameCtx),
		restAdjustment(gameCtx),
		opponentAdjustment(statType, gameCtx),
		venueAdjustment(gameCtx),
	}
	if a, ok := minutesAdjustment(statType, gameCtx, series); ok {
		out = append(out, a)
	}
	return out
}

func paceAdjustment(g models.GameContext) models.Adjustment {
	return models.Adjustment{
		Name:        "pace",
		Factor:      g.PaceFactor,
		Description: fmt.Sprintf("pace factor %.2f", g.PaceFactor),
	}
}

func restAdjustment(g models.GameContext) models.Adjustment {
	switch {
	case g.IsBackToBack():
		return models.Adjustment{Name: "rest", Factor: BackToBackFactor, Description: "back-to-back game"}
	case g.RestDays >= WellRestedDays:
		return models.Adjustment{Name: "rest", Factor: WellRestedFactor, Description: fmt.Sprintf("%d days of rest", g.RestDays)}
	default:
		return models.Adjustment{Name: "rest", Factor: 1.0, Description: fmt.Sprintf("%d days of rest", g.RestDays)}
	}
}

// opponentAdjustment scales by how far the opponent's defensive rating sits
// from league average, weighted by how sensitive the stat is to defense.
func opponentAdjustment(statType models.StatType, g models.GameContext) models.Adjustment {
	rating := g.OpponentDefenseRating
	factor := 1 + statType.OpponentSensitivity()*(rating-models.BaselineDefenseRating)/models.BaselineDefenseRating
	return models.Adjustment{
		Name:        "opponent",
		Factor:      factor,
		Description: fmt.Sprintf("opponent defensive rating %.1f", rating),
	}
}

func venueAdjustment(g models.GameContext) models.Adjustment {
	switch g.HomeAway {
	case models.Home:
		return models.Adjustment{Name: "home_away", Factor: HomeFactor, Description: "home game"}
	case models.Away:
		return models.Adjustment{Name: "home_away", Factor: AwayFactor, Description: "away game"}
	default:
		return models.Adjustment{Name: "home_away", Factor: 1.0, Description: "neutral venue"}
	}
}

func minutesAdjustment(statType models.StatType, g models.GameContext, series models.Series) (models.Adjustment, bool) {
	if statType == models.StatMinutes || g.ProjectedMinutes <= 0 || !series.HasMinutes() {
		return models.Adjustment{}, false
	}
	avg := stats.Mean(series.Minutes)
	if avg <= 0 {
		return models.Adjustment{}, false
	}
	factor := stats.Clamp(g.ProjectedMinutes/avg, minMinutesFactor, maxMinutesFactor)
	return models.Adjustment{
		Name:        "minutes",
		Factor:      factor,
		Description: fmt.Sprintf("projected %.1f minutes vs %.1f average", g.ProjectedMinutes, avg),
	}, true
}

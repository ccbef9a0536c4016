package betting

import (
	"fmt"

	"github.com/yourusername/clever-props/internal/models"
	"github.com/yourusername/clever-props/internal/stats"
)

// Config holds the recommendation thresholds.
type Config struct {
	MinEdge       float64 `mapstructure:"min_edge" json:"min_edge"`
	MinConfidence float64 `mapstructure:"min_confidence" json:"min_confidence"`
	KellyFraction float64 `mapstructure:"kelly_fraction" json:"kelly_fraction"`
}

// DefaultConfig returns the standard thresholds.
func DefaultConfig() Config {
	return Config{
		MinEdge:       0.05,
		MinConfidence: 0.7,
		KellyFraction: 0.25,
	}
}

// Input is everything the betting layer needs about one prop. Pointer fields
// may be missing.
type Input struct {
	PredictedValue  float64      `json:"predicted_value"`
	Line            float64      `json:"line"`
	OverProbability *float64     `json:"over_probability,omitempty"`
	Confidence      *float64     `json:"confidence,omitempty"`
	Odds            *models.Odds `json:"odds,omitempty"`
}

// InputFromPrediction builds an Input from a prediction. Probability and
// confidence are only carried when the prediction is usable and has a line.
func InputFromPrediction(p *models.PredictionResult, odds *models.Odds) Input {
	in := Input{Odds: odds}
	if p == nil {
		return in
	}
	in.PredictedValue = p.PredictedValue
	if p.Line != nil {
		in.Line = *p.Line
	}
	if p.IsUsable() && p.HasLine() {
		over := p.OverProbability
		conf := p.Confidence
		in.OverProbability = &over
		in.Confidence = &conf
	}
	return in
}

// Recommend picks a side when its expected value clears the edge threshold
// and the prediction is confident enough. Otherwise it recommends avoiding.
func Recommend(in Input, cfg Config) models.Recommendation {
	rec := models.Recommendation{Action: models.ActionAvoid, Reasoning: []string{}}

	if in.OverProbability == nil {
		rec.Reasoning = append(rec.Reasoning, "no over probability available")
		return rec
	}
	if in.Confidence == nil {
		rec.Reasoning = append(rec.Reasoning, "no confidence score available")
		return rec
	}
	if in.Odds == nil {
		rec.Reasoning = append(rec.Reasoning, "no market odds available")
		return rec
	}

	overDec, err := AmericanToDecimal(in.Odds.Over)
	if err != nil {
		rec.Reasoning = append(rec.Reasoning, fmt.Sprintf("over odds unusable: %v", err))
		return rec
	}
	underDec, err := AmericanToDecimal(in.Odds.Under)
	if err != nil {
		rec.Reasoning = append(rec.Reasoning, fmt.Sprintf("under odds unusable: %v", err))
		return rec
	}

	pOver := stats.Clamp01(*in.OverProbability)
	pUnder := 1 - pOver
	confidence := stats.Clamp01(*in.Confidence)
	overEV := ExpectedValue(pOver, overDec)
	underEV := ExpectedValue(pUnder, underDec)

	rec.OverEV = stats.RoundProbability(overEV)
	rec.UnderEV = stats.RoundProbability(underEV)
	rec.Confidence = stats.RoundProbability(confidence)

	rec.Reasoning = append(rec.Reasoning,
		fmt.Sprintf("projection %.1f vs line %.1f", in.PredictedValue, in.Line),
		fmt.Sprintf("over %.1f%% at %+d (EV %+.3f), under %.1f%% at %+d (EV %+.3f)",
			pOver*100, in.Odds.Over, overEV, pUnder*100, in.Odds.Under, underEV),
	)
	compareMarket(&rec, pOver, *in.Odds)

	if confidence <= cfg.MinConfidence {
		rec.ExpectedValue = rec.OverEV
		if underEV > overEV {
			rec.ExpectedValue = rec.UnderEV
		}
		rec.Reasoning = append(rec.Reasoning,
			fmt.Sprintf("confidence %.3f does not exceed minimum %.3f", confidence, cfg.MinConfidence))
		return rec
	}

	action, ev, prob, dec := models.ActionOver, overEV, pOver, overDec
	if underEV > overEV {
		action, ev, prob, dec = models.ActionUnder, underEV, pUnder, underDec
	}
	rec.ExpectedValue = stats.RoundProbability(ev)

	if ev <= cfg.MinEdge {
		rec.Reasoning = append(rec.Reasoning,
			fmt.Sprintf("best EV %+.3f does not exceed minimum edge %.3f", ev, cfg.MinEdge))
		return rec
	}

	rec.Action = action
	rec.KellyStake = stats.RoundProbability(KellyFraction(prob, dec, cfg.KellyFraction))
	rec.Reasoning = append(rec.Reasoning,
		fmt.Sprintf("%s has edge %+.3f with confidence %.3f", action, ev, confidence))
	return rec
}

// compareMarket records the no-vig market view next to the model's and the
// prices the model would consider fair.
func compareMarket(rec *models.Recommendation, pOver float64, odds models.Odds) {
	marketOver, _, err := RemoveVig(odds.Over, odds.Under)
	if err != nil {
		return
	}
	margin, err := Overround(odds.Over, odds.Under)
	if err != nil {
		return
	}
	rec.MarketOverProbability = stats.RoundProbability(marketOver)
	rec.Overround = stats.RoundProbability(margin)
	rec.ModelEdge = stats.RoundProbability(pOver - marketOver)
	rec.Reasoning = append(rec.Reasoning,
		fmt.Sprintf("model over %.1f%% vs no-vig market %.1f%% (edge %+.1f%%, overround %.1f%%)",
			pOver*100, marketOver*100, (pOver-marketOver)*100, margin*100))

	fairOver, errOver := FairOdds(pOver)
	fairUnder, errUnder := FairOdds(1 - pOver)
	if errOver != nil || errUnder != nil {
		return
	}
	rec.FairOverOdds = fairOver
	rec.FairUnderOdds = fairUnder
	rec.Reasoning = append(rec.Reasoning, fmt.Sprintf("fair odds over %+d, under %+d", fairOver, fairUnder))
}

package models

import (
	"fmt"
	"strings"
)

// StatType is a per-game statistical category.
type StatType string

// Supported stat types
const (
	StatPoints         StatType = "points"
	StatRebounds       StatType = "rebounds"
	StatAssists        StatType = "assists"
	StatSteals         StatType = "steals"
	StatBlocks         StatType = "blocks"
	StatTurnovers      StatType = "turnovers"
	StatThrees         StatType = "threes"
	StatMinutes        StatType = "minutes"
	StatFieldGoalsMade StatType = "field_goals_made"
	StatFreeThrowsMade StatType = "free_throws_made"
)

type statProfile struct {
	opponentSensitivity float64
	leagueAverage       float64
	count               bool
}

var statProfiles = map[StatType]statProfile{
	StatPoints:         {opponentSensitivity: 1.0, leagueAverage: 11.5},
	StatRebounds:       {opponentSensitivity: 0.6, leagueAverage: 4.5, count: true},
	StatAssists:        {opponentSensitivity: 0.8, leagueAverage: 2.7, count: true},
	StatSteals:         {opponentSensitivity: 0.5, leagueAverage: 0.8, count: true},
	StatBlocks:         {opponentSensitivity: 0.5, leagueAverage: 0.5, count: true},
	StatTurnovers:      {opponentSensitivity: 0.4, leagueAverage: 1.4, count: true},
	StatThrees:         {opponentSensitivity: 0.9, leagueAverage: 1.3, count: true},
	StatMinutes:        {opponentSensitivity: 0.0, leagueAverage: 23.0},
	StatFieldGoalsMade: {opponentSensitivity: 1.0, leagueAverage: 4.3, count: true},
	StatFreeThrowsMade: {opponentSensitivity: 0.8, leagueAverage: 1.8, count: true},
}

// ParseStatType normalizes and validates a stat type name.
func ParseStatType(s string) (StatType, error) {
	st := StatType(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := statProfiles[st]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownStatType, s)
	}
	return st, nil
}

// StatTypes lists every supported stat type.
func StatTypes() []StatType {
	return []StatType{
		StatPoints, StatRebounds, StatAssists, StatSteals, StatBlocks,
		StatTurnovers, StatThrees, StatMinutes, StatFieldGoalsMade, StatFreeThrowsMade,
	}
}

// Valid reports whether the stat type is supported.
func (s StatType) Valid() bool {
	_, ok := statProfiles[s]
	return ok
}

// IsCount reports whether the stat is a small integer count.
func (s StatType) IsCount() bool {
	return statProfiles[s].count
}

// OpponentSensitivity scales how strongly opponent defense moves the stat.
func (s StatType) OpponentSensitivity() float64 {
	return statProfiles[s].opponentSensitivity
}

// LeagueAverage is the per-game league average used as a Bayesian prior.
func (s StatType) LeagueAverage() float64 {
	return statProfiles[s].leagueAverage
}

func (s StatType) String() string {
	return string(s)
}

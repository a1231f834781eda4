package usecase

import (
	"math"
	"strconv"
	"strings"

	"github.com/riskibarqy/liga-fantasy/internal/domain/player"
	"github.com/riskibarqy/liga-fantasy/internal/domain/roster"
)

// ScrapedPlayerStat is one raw record from the external stats feed. Numeric
// fields arrive as strings and are parsed defensively: non-numeric or
// missing values count as zero, never as an error.
type ScrapedPlayerStat struct {
	Name          string
	RealTeam      string
	Sport         player.Sport
	Matches       string
	Goals         string
	Assists       string
	YellowCards   string
	RedCards      string
	MinutesPlayed string
	Points        string
}

func (s ScrapedPlayerStat) Key() player.MatchKey {
	return player.MatchKey{Name: strings.TrimSpace(s.Name), RealTeam: strings.TrimSpace(s.RealTeam)}
}

// ToStats converts the raw record into absolute counters.
func (s ScrapedPlayerStat) ToStats() player.Stats {
	return player.Stats{
		Matches:       parseCount(s.Matches),
		Goals:         parseCount(s.Goals),
		Assists:       parseCount(s.Assists),
		YellowCards:   parseCount(s.YellowCards),
		RedCards:      parseCount(s.RedCards),
		MinutesPlayed: parseCount(s.MinutesPlayed),
		Points:        parseCount(s.Points),
	}
}

// ScoreResult is the per-player output of one scoring pass.
type ScoreResult struct {
	PlayerID string
	Stats    player.Stats
	Delta    int
	NewTotal int
}

// ComputeDeltas joins scraped records to the persisted pool by (name,
// realTeam) and computes point deltas plus recomputed totals. The total is
// derived from the absolute scraped counters rather than accumulated from
// deltas so any past drift self-corrects. Pure: no side effects on inputs.
func ComputeDeltas(pool []player.Player, scraped []ScrapedPlayerStat) (results []ScoreResult, unmatched []ScrapedPlayerStat) {
	byKey := make(map[player.MatchKey]player.Player, len(pool))
	for _, p := range pool {
		byKey[p.Key()] = p
	}

	results = make([]ScoreResult, 0, len(scraped))
	for _, record := range scraped {
		current, ok := byKey[record.Key()]
		if !ok {
			unmatched = append(unmatched, record)
			continue
		}

		next := record.ToStats()
		var delta, total int
		switch current.Sport {
		case player.SportFutsal:
			delta = futsalPoints(diffStats(next, current.Stats))
			total = futsalPoints(next)
		default:
			delta = footballPoints(diffStats(next, current.Stats))
			total = footballPoints(next)
		}

		results = append(results, ScoreResult{
			PlayerID: current.ID,
			Stats:    next,
			Delta:    delta,
			NewTotal: total,
		})
	}

	return results, unmatched
}

// RosterPoints sums a roster's per-player points with the captain bonus:
// the captain counts double when their base is positive, otherwise the vice
// captain counts double under the same positive-base condition.
func RosterPoints(r roster.Roster, pointsByPlayer map[string]int) int {
	total := 0
	for _, id := range r.PlayerIDs {
		total += pointsByPlayer[id]
	}

	if r.CaptainID != "" && pointsByPlayer[r.CaptainID] > 0 {
		total += pointsByPlayer[r.CaptainID]
	} else if r.ViceCaptainID != "" && pointsByPlayer[r.ViceCaptainID] > 0 {
		total += pointsByPlayer[r.ViceCaptainID]
	}

	return total
}

func footballPoints(s player.Stats) int {
	minuteBonus := int(math.Floor(3.5 * float64(s.MinutesPlayed) / 60.0))
	return 4*s.Goals + s.Matches + minuteBonus - s.YellowCards - 3*s.RedCards
}

func futsalPoints(s player.Stats) int {
	return s.Points + 4*s.Goals + 3*s.Assists + s.Matches - s.YellowCards - 3*s.RedCards
}

func diffStats(next, prev player.Stats) player.Stats {
	return player.Stats{
		Matches:       next.Matches - prev.Matches,
		Goals:         next.Goals - prev.Goals,
		Assists:       next.Assists - prev.Assists,
		YellowCards:   next.YellowCards - prev.YellowCards,
		RedCards:      next.RedCards - prev.RedCards,
		MinutesPlayed: next.MinutesPlayed - prev.MinutesPlayed,
		Points:        next.Points - prev.Points,
	}
}

func parseCount(raw string) int {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return 0
	}
	value, err := strconv.Atoi(trimmed)
	if err != nil {
		return 0
	}
	return value
}

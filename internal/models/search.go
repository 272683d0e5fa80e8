package models

import (
	"sort"
	"strings"
)

// Over-fetch multiplier compensating for candidates the scorer discards.
const searchOversampleFactor = 3

// Per-field weights for the relevance heuristic.
const (
	scoreTitleSubstring = 10
	scoreTitleWholeWord = 5 // on top of the substring score
	scoreVenue          = 7
	scoreDescription    = 3
	scoreHashtagExact   = 8 // per matching hashtag
)

func tokenizeQuery(term string) []string {
	return strings.Fields(strings.ToLower(term))
}

// ScoreEvent sums per-field weights over the query words: title substring
// +10 (whole-word match adds +5 more), venue/location +7, description +3,
// and +8 for every hashtag equal to the word with or without a leading '#'.
func ScoreEvent(event *Event, words []string) int {
	title := strings.ToLower(event.Title)
	titleWords := strings.Fields(title)
	venue := strings.ToLower(event.VenueName + " " + event.Location)
	description := strings.ToLower(event.Description)

	score := 0
	for _, word := range words {
		if strings.Contains(title, word) {
			score += scoreTitleSubstring
			for _, tw := range titleWords {
				if tw == word {
					score += scoreTitleWholeWord
					break
				}
			}
		}
		if strings.Contains(venue, word) {
			score += scoreVenue
		}
		if strings.Contains(description, word) {
			score += scoreDescription
		}
		bare := strings.TrimPrefix(word, "#")
		for _, tag := range event.Hashtags {
			if tag == bare {
				score += scoreHashtagExact
			}
		}
	}
	return score
}

// RankEvents scores candidates against the term and drops zero scorers.
// When byRelevance is set the survivors are ordered by score descending;
// otherwise the candidates' original order is preserved.
func RankEvents(candidates []*Event, term string, byRelevance bool) []*Event {
	words := tokenizeQuery(term)

	type scored struct {
		event *Event
		score int
	}
	var matches []scored
	for _, ev := range candidates {
		if s := ScoreEvent(ev, words); s > 0 {
			matches = append(matches, scored{ev, s})
		}
	}
	if byRelevance {
		sort.SliceStable(matches, func(i, j int) bool {
			return matches[i].score > matches[j].score
		})
	}

	result := make([]*Event, len(matches))
	for i, m := range matches {
		result[i] = m.event
	}
	return result
}

package models

import "testing"

func TestScoreEventTitleMatch(t *testing.T) {
	event := &Event{Title: "Sunday Brunch"}
	score := ScoreEvent(event, tokenizeQuery("brunch"))
	// Substring (+10) plus whole-word (+5).
	if score != 15 {
		t.Errorf("score = %d, want 15", score)
	}
}

func TestScoreEventTitleSubstringOnly(t *testing.T) {
	event := &Event{Title: "Brunchfest 2026"}
	score := ScoreEvent(event, tokenizeQuery("brunch"))
	// Substring hit without a whole-word match.
	if score != 10 {
		t.Errorf("score = %d, want 10", score)
	}
}

func TestScoreEventHashtagMatch(t *testing.T) {
	event := &Event{Title: "Morning Meetup", Hashtags: []string{"brunch"}}
	if score := ScoreEvent(event, tokenizeQuery("brunch")); score != 8 {
		t.Errorf("score = %d, want 8", score)
	}
	// Leading '#' in the query word matches the same tag.
	if score := ScoreEvent(event, tokenizeQuery("#brunch")); score != 8 {
		t.Errorf("score with # = %d, want 8", score)
	}
}

func TestScoreEventVenueAndDescription(t *testing.T) {
	event := &Event{
		Title:       "Open Mic",
		VenueName:   "Brunch House",
		Description: "brunch and live music",
	}
	// Venue (+7) and description (+3).
	if score := ScoreEvent(event, tokenizeQuery("brunch")); score != 10 {
		t.Errorf("score = %d, want 10", score)
	}
}

func TestScoreEventNoMatch(t *testing.T) {
	event := &Event{
		Title:       "Vinyl Night",
		VenueName:   "The Basement",
		Description: "records all evening",
		Hashtags:    []string{"vinyl", "music"},
	}
	if score := ScoreEvent(event, tokenizeQuery("brunch")); score != 0 {
		t.Errorf("score = %d, want 0", score)
	}
}

func TestScoreEventMultiWordQuery(t *testing.T) {
	event := &Event{Title: "Sunday Brunch"}
	score := ScoreEvent(event, tokenizeQuery("sunday brunch"))
	// Each word scores title substring + whole word independently.
	if score != 30 {
		t.Errorf("score = %d, want 30", score)
	}
}

func TestRankEventsDropsZeroScores(t *testing.T) {
	candidates := []*Event{
		{Title: "Sunday Brunch"},
		{Title: "Vinyl Night"},
		{Title: "Brunchfest"},
	}

	ranked := RankEvents(candidates, "brunch", false)
	if len(ranked) != 2 {
		t.Fatalf("ranked %d events, want 2", len(ranked))
	}
	for _, ev := range ranked {
		if ev.Title == "Vinyl Night" {
			t.Error("zero-score event survived ranking")
		}
	}
}

func TestRankEventsOrdering(t *testing.T) {
	weak := &Event{Title: "Taco Tuesday", Description: "brunch leftovers"} // +3
	strong := &Event{Title: "Sunday Brunch"}                               // +15

	// Without relevance sorting the store order is preserved.
	kept := RankEvents([]*Event{weak, strong}, "brunch", false)
	if kept[0] != weak || kept[1] != strong {
		t.Error("store order was not preserved without relevance sort")
	}

	// With relevance sorting the higher score wins.
	byScore := RankEvents([]*Event{weak, strong}, "brunch", true)
	if byScore[0] != strong {
		t.Errorf("relevance order starts with %q, want %q", byScore[0].Title, strong.Title)
	}
}

func TestTokenizeQuery(t *testing.T) {
	words := tokenizeQuery("  Sunday   BRUNCH ")
	if len(words) != 2 || words[0] != "sunday" || words[1] != "brunch" {
		t.Errorf("tokenized = %v, want [sunday brunch]", words)
	}
	if len(tokenizeQuery("   ")) != 0 {
		t.Error("whitespace-only query produced tokens")
	}
}

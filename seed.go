package main

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/hrosb/memory/internal/score"
)

// sampleScores populate an otherwise empty leaderboard so fresh installs
// have something to show.
var sampleScores = []score.CreateInput{
	{PlayerName: "Memory Master", TimeSpent: 12.5, Accuracy: 1.0, BoardSize: "4x4", CardType: "animals"},
	{PlayerName: "Quick Thinker", TimeSpent: 15.2, Accuracy: 0.95, BoardSize: "4x4", CardType: "animals"},
	{PlayerName: "Card Shark", TimeSpent: 20.1, Accuracy: 0.9, BoardSize: "4x4", CardType: "letters"},
	{PlayerName: "Brain Wizard", TimeSpent: 5.8, Accuracy: 1.0, BoardSize: "2x2", CardType: "animals"},
	{PlayerName: "Puzzle Pro", TimeSpent: 60.3, Accuracy: 0.85, BoardSize: "6x6", CardType: "letters"},
}

// seedSampleScores inserts the samples when the store is empty and does
// nothing otherwise.
func seedSampleScores(ctx context.Context, st score.Store) error {
	_, info, err := st.List(ctx, score.Filter{}, score.Pagination{Limit: 1, Page: 1})
	if err != nil {
		return err
	}
	if info.Total > 0 {
		log.Debug().Int("total", info.Total).Msg("score store already populated")
		return nil
	}
	for _, in := range sampleScores {
		if _, err := st.Create(ctx, in); err != nil {
			return err
		}
	}
	log.Info().Int("count", len(sampleScores)).Msg("seeded sample scores")
	return nil
}

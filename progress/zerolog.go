package progress

import (
	"github.com/rs/zerolog"

	"github.com/sokoban-opt/vicinity/sokoboard"
)

// ZerologSink writes structured log lines through a zerolog.Logger.
// Each report becomes one event carrying the fields a reader would
// want to filter or graph on (phase, move/push counts, seed size)
// rather than a free-form message.
type ZerologSink struct {
	Logger zerolog.Logger
}

func (s ZerologSink) SetInfoText(msg string) {
	s.Logger.Info().Str("phase", "info").Msg(msg)
}

func (s ZerologSink) AddLog(msg string) {
	s.Logger.Debug().Str("phase", "log").Msg(msg)
}

func (s ZerologSink) NewFoundSolution(sol sokoboard.Solution, seedSet []sokoboard.Solution) {
	ev := s.Logger.Info().
		Str("phase", "improved").
		Int("moves", sol.MovesCount).
		Int("pushes", sol.PushesCount).
		Int("box_lines", sol.BoxLines).
		Int("box_changes", sol.BoxChanges).
		Int("pushing_sessions", sol.PushingSessions).
		Int("seed_count", len(seedSet))
	ev.Msg("found improved solution")
}

func (s ZerologSink) OptimizerEnded(best *sokoboard.Solution) {
	ev := s.Logger.Info().Str("phase", "ended")
	if best == nil {
		ev.Bool("improved", false).Msg("optimizer ended without improvement")
		return
	}
	ev.Bool("improved", true).
		Int("moves", best.MovesCount).
		Int("pushes", best.PushesCount).
		Msg("optimizer ended")
}

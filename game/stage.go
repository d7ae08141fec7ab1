package game

import "github.com/tarapoker/tarapoker/cards"

// Stage represents the community-card stage of a hand
type Stage string

const (
	StagePreflop  Stage = "preflop"
	StageFlop     Stage = "flop"
	StageTurn     Stage = "turn"
	StageRiver    Stage = "river"
	StageShowdown Stage = "showdown"
)

// communityDeals maps each stage to the number of community cards dealt on
// entering it: 3 for the flop, then 1 each for turn and river.
var communityDeals = map[Stage]int{
	StageFlop:  3,
	StageTurn:  1,
	StageRiver: 1,
}

// HandComparator decides the winners among the players still in the hand
// after river betting. The engine ships without one: the only resolution it
// implements itself is the elimination winner. A showdown evaluator plugs
// in here without touching the turn, pot, or stage machinery.
type HandComparator interface {
	CompareHands(community []cards.Card, contenders []*Player) []*Player
}

// StageController drives preflop -> flop -> turn -> river -> showdown and
// guards against a stage's cards being dealt twice.
type StageController struct {
	stage Stage
	dealt bool
}

// Stage returns the current stage.
func (s *StageController) Stage() Stage {
	if s.stage == "" {
		return StagePreflop
	}
	return s.stage
}

// Reset returns the controller to preflop with nothing dealt.
func (s *StageController) Reset() {
	s.stage = StagePreflop
	s.dealt = false
}

// Advance moves to the next stage and returns how many community cards to
// deal on entry. done is true once river betting is behind us.
func (s *StageController) Advance() (deal int, done bool) {
	switch s.Stage() {
	case StagePreflop:
		s.stage = StageFlop
	case StageFlop:
		s.stage = StageTurn
	case StageTurn:
		s.stage = StageRiver
	default:
		s.stage = StageShowdown
		return 0, true
	}
	s.dealt = false
	return communityDeals[s.stage], false
}

// MarkDealt records that the current stage's cards went out. A second deal
// within the same stage is rejected.
func (s *StageController) MarkDealt() error {
	if s.dealt {
		return ErrStageAlreadyDealt
	}
	s.dealt = true
	return nil
}

package pathfinder

import (
	"github.com/TheLQ/facto-loop-miner-sub001/config"
	"github.com/TheLQ/facto-loop-miner-sub001/geometry"
	"github.com/TheLQ/facto-loop-miner-sub001/raillink"
)

// costModel prices one link given how many turns precede it.
type costModel struct {
	units     config.CostTunables
	goal      raillink.Pose
	manhattan bool
}

// step returns the incremental cost of appending next.
func (m costModel) step(next raillink.Link, recentTurns int) int {
	u := m.units
	cost := u.StraightCostUnit * next.Length()
	if next.IsTurn() {
		cost += u.TurnCostUnit + u.MultiTurnCostUnit*recentTurns
	}
	end := next.Next()
	if end.Direction != m.goal.Direction {
		cost += u.DirectionCostUnit
	}
	if rest := m.goal.Point.Sub(end.Point); rest != (geometry.Point{}) {
		major := abs(rest.X) >= abs(rest.Y)
		if end.Direction.IsHorizontal() != major {
			cost += u.AxisCostUnit
		}
	}
	return cost
}

// estimate is the heuristic from pose p to the goal.
func (m costModel) estimate(p raillink.Pose) int {
	if !m.manhattan {
		return 0
	}
	return m.units.StraightCostUnit * p.Point.ManhattanDistance(m.goal.Point)
}

// turnsIn counts turns among the last lookback links of history.
func turnsIn(history []raillink.Link, lookback int) int {
	n := 0
	for i := len(history) - 1; i >= 0 && i >= len(history)-lookback; i-- {
		if history[i].IsTurn() {
			n++
		}
	}
	return n
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

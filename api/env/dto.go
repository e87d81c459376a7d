// Package envapi exposes generation environments over HTTP.
package envapi

import (
	"github.com/beka-birhanu/vinom-pcg/game/grid"
)

// CreateRequest describes a new environment.
type CreateRequest struct {
	Problem          string      `json:"problem" binding:"required"`
	Representation   string      `json:"representation" binding:"required"`
	Width            int         `json:"width" binding:"required,min=1,max=4096"`
	Height           int         `json:"height" binding:"required,min=1,max=4096"`
	Depth            int         `json:"depth" binding:"min=0,max=4096"`
	Agents           int         `json:"agents" binding:"min=0"`
	Spawn            string      `json:"spawn"`
	Warp             bool        `json:"warp"`
	Holes            *grid.Holes `json:"holes"`
	RandomStart      bool        `json:"random_start"`
	MazeStart        bool        `json:"maze_start"`
	ChangePercentage float64     `json:"change_percentage" binding:"min=0,max=1"`
	MaxIterations    int         `json:"max_iterations" binding:"min=0"`
	TracePath        bool        `json:"trace_path"`
	UseQueue         bool        `json:"use_queue"`
}

// ResetRequest seeds an episode. Both fields are optional.
type ResetRequest struct {
	Seed  *int64 `json:"seed"`
	Cells []int  `json:"cells"`
}

// StepRequest is one action. Pos is read by the wide representation only.
type StepRequest struct {
	Pos   grid.Coord `json:"pos"`
	Value int        `json:"value"`
}

// AgentRequest selects the active agent.
type AgentRequest struct {
	Agent int `json:"agent" binding:"min=0"`
}

// BorderResponse names the tile padding the bordered grid.
type BorderResponse struct {
	Tile int    `json:"tile"`
	Name string `json:"name"`
}

// PathResponse carries the latest traced path.
type PathResponse struct {
	Path []grid.Coord `json:"path"`
}

// OneHotResponse is an observation encoded with one channel per tile.
type OneHotResponse struct {
	Shape    grid.Shape `json:"shape"`
	Channels int        `json:"channels"`
	Data     []float32  `json:"data"`
	Pos      grid.Coord `json:"pos"`
}

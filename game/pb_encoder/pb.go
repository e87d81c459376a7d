package pb

import (
	"fmt"

	"github.com/beka-birhanu/vinom-pcg/game"
	"github.com/beka-birhanu/vinom-pcg/game/grid"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

// ContentType is the media type of protobuf payloads.
const ContentType = "application/x-protobuf"

var _ game.Encoder = &Protobuf{}

// Protobuf encodes results as google.protobuf.Struct messages.
type Protobuf struct{}

// ContentType implements game.Encoder.
func (p *Protobuf) ContentType() string {
	return ContentType
}

// MarshalStats implements game.Encoder.
func (p *Protobuf) MarshalStats(stats map[string]int) ([]byte, error) {
	s, err := structpb.NewStruct(countsToAny(stats))
	if err != nil {
		return nil, err
	}
	return proto.Marshal(s)
}

// UnmarshalStats implements game.Encoder.
func (p *Protobuf) UnmarshalStats(b []byte) (map[string]int, error) {
	s := &structpb.Struct{}
	if err := proto.Unmarshal(b, s); err != nil {
		return nil, err
	}
	return countsFromStruct(s), nil
}

// MarshalStepResult implements game.Encoder.
func (p *Protobuf) MarshalStepResult(r game.StepResult) ([]byte, error) {
	s, err := structpb.NewStruct(map[string]any{
		"changed":   r.Changed,
		"pos":       map[string]any{"x": r.Pos.X, "y": r.Pos.Y, "z": r.Pos.Z},
		"pass_done": r.PassDone,
		"reward":    r.Reward,
		"done":      r.Done,
		"truncated": r.Truncated,
		"stats":     countsToAny(r.Stats),
		"info":      countsToAny(r.Info),
	})
	if err != nil {
		return nil, err
	}
	return proto.Marshal(s)
}

// UnmarshalStepResult implements game.Encoder.
func (p *Protobuf) UnmarshalStepResult(b []byte) (game.StepResult, error) {
	s := &structpb.Struct{}
	if err := proto.Unmarshal(b, s); err != nil {
		return game.StepResult{}, err
	}

	f := s.GetFields()
	pos := f["pos"].GetStructValue()
	if pos == nil {
		return game.StepResult{}, fmt.Errorf("step result without position")
	}
	pf := pos.GetFields()

	return game.StepResult{
		Changed: f["changed"].GetBoolValue(),
		Pos: grid.XYZ(
			int(pf["x"].GetNumberValue()),
			int(pf["y"].GetNumberValue()),
			int(pf["z"].GetNumberValue()),
		),
		PassDone:  f["pass_done"].GetBoolValue(),
		Reward:    f["reward"].GetNumberValue(),
		Done:      f["done"].GetBoolValue(),
		Truncated: f["truncated"].GetBoolValue(),
		Stats:     countsFromStruct(f["stats"].GetStructValue()),
		Info:      countsFromStruct(f["info"].GetStructValue()),
	}, nil
}

func countsToAny(counts map[string]int) map[string]any {
	out := make(map[string]any, len(counts))
	for k, v := range counts {
		out[k] = v
	}
	return out
}

func countsFromStruct(s *structpb.Struct) map[string]int {
	out := make(map[string]int, len(s.GetFields()))
	for k, v := range s.GetFields() {
		out[k] = int(v.GetNumberValue())
	}
	return out
}

package game

// Encoder defines the wire format used to ship step results and statistics to controllers.
type Encoder interface {
	MarshalStepResult(StepResult) ([]byte, error)
	UnmarshalStepResult([]byte) (StepResult, error)
	MarshalStats(map[string]int) ([]byte, error)
	UnmarshalStats([]byte) (map[string]int, error)
	ContentType() string
}

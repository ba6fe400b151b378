package pipeline

// Stage is the position of a request in the pipeline.
type Stage int

const (
	StageIdle Stage = iota
	StageExtracting
	StageTranslating
	StageSummarizing
	StageDone
	StageFailed
)

func (s Stage) String() string {
	switch s {
	case StageIdle:
		return "idle"
	case StageExtracting:
		return "extracting"
	case StageTranslating:
		return "translating"
	case StageSummarizing:
		return "summarizing"
	case StageDone:
		return "done"
	case StageFailed:
		return "failed"
	default:
		return "unknown"
	}
}

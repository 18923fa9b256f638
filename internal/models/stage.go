package models

// Stage is one of the nine ordered pipeline stages. The stage is always
// derived from a fresh snapshot of external state, never stored.
type Stage string

const (
	StageGapIssue         Stage = "GAP_ISSUE"
	StageGapExecution     Stage = "GAP_EXECUTION"
	StageGapMerge         Stage = "GAP_MERGE"
	StageDevIssueCreation Stage = "DEV_ISSUE_CREATION"
	StageDevExecution     Stage = "DEV_EXECUTION"
	StageDevMerge         Stage = "DEV_MERGE"
	StageCapIssue         Stage = "CAP_ISSUE"
	StageCapExecution     Stage = "CAP_EXECUTION"
	StageCapMerge         Stage = "CAP_MERGE"
)

// stageInfo carries the human-readable label and zero-based step index for a
// stage. The index follows the pipeline's canonical walk order, not the
// classifier's priority order.
var stageInfo = map[Stage]struct {
	label string
	step  int
}{
	StageGapIssue:         {"Gap analysis issue creation", 0},
	StageGapExecution:     {"Gap analysis execution", 1},
	StageGapMerge:         {"Gap analysis merge", 2},
	StageDevIssueCreation: {"Development issue creation", 3},
	StageDevExecution:     {"Development execution", 4},
	StageDevMerge:         {"Development merge", 5},
	StageCapIssue:         {"Capability update issue creation", 6},
	StageCapExecution:     {"Capability update execution", 7},
	StageCapMerge:         {"Capability update merge", 8},
}

// Label returns the human-readable stage label.
func (s Stage) Label() string {
	return stageInfo[s].label
}

// StepIndex returns the zero-based pipeline step for the stage.
func (s Stage) StepIndex() int {
	return stageInfo[s].step
}

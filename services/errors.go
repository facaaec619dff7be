package services

import "fmt"

// Stage identifies the pipeline stage a failure originated from
type Stage string

const (
	StageAssetFetch  Stage = "asset_fetch"
	StageGeneration  Stage = "generation"
	StageExtraction  Stage = "extraction"
	StageAssembly    Stage = "assembly"
	StagePersistence Stage = "persistence"
)

// StageError attributes a pipeline failure to its originating stage. The
// pipeline aborts on the first one; no partial result is ever returned.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s failure: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// wrapStage wraps err with its stage; nil stays nil
func wrapStage(stage Stage, err error) error {
	if err == nil {
		return nil
	}
	return &StageError{Stage: stage, Err: err}
}

func stageErrorf(stage Stage, format string, args ...interface{}) error {
	return &StageError{Stage: stage, Err: fmt.Errorf(format, args...)}
}

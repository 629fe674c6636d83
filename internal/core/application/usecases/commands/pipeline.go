package commands

import (
	"fmt"
)

// Stage is a state of the fulfillment pipeline for one delivery.
//
//	RECEIVED → AUTHENTICATED → {ALREADY_DONE | IN_PROGRESS | CLAIMED}
//	CLAIMED → PARSED → GEOCODED → CHART_RENDERED → DOCUMENT_RENDERED → STORED
//	STORED → {NOTIFIED | NOTIFY_FAILED} → DONE
type Stage string

const (
	StageReceived         Stage = "RECEIVED"
	StageAuthenticated    Stage = "AUTHENTICATED"
	StageAlreadyDone      Stage = "ALREADY_DONE"
	StageInProgress       Stage = "IN_PROGRESS"
	StageClaimed          Stage = "CLAIMED"
	StageParsed           Stage = "PARSED"
	StageGeocoded         Stage = "GEOCODED"
	StageChartRendered    Stage = "CHART_RENDERED"
	StageDocumentRendered Stage = "DOCUMENT_RENDERED"
	StageStored           Stage = "STORED"
	StageNotified         Stage = "NOTIFIED"
	StageNotifyFailed     Stage = "NOTIFY_FAILED"
	StageDone             Stage = "DONE"
)

// FailureCategory classifies why a delivery stopped.
type FailureCategory string

const (
	AuthenticationFailure FailureCategory = "authentication_failure"
	ParseFailure          FailureCategory = "parse_failure"
	ResolutionFailure     FailureCategory = "resolution_failure"
	RenderFailure         FailureCategory = "render_failure"
	StorageFailure        FailureCategory = "storage_failure"
	NotificationFailure   FailureCategory = "notification_failure"
)

// PipelineError reports a failed delivery: the last stage reached, the failure
// category and a human-readable detail. ClientFault is true when the delivery
// itself is at fault (bad signature, bad payload, unknown address) rather
// than a collaborator.
type PipelineError struct {
	Stage       Stage
	Category    FailureCategory
	Detail      string
	ClientFault bool
	Err         error
}

func newPipelineError(stage Stage, category FailureCategory, detail string, clientFault bool, err error) *PipelineError {
	return &PipelineError{
		Stage:       stage,
		Category:    category,
		Detail:      detail,
		ClientFault: clientFault,
		Err:         err,
	}
}

func (e *PipelineError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s after %s: %s: %v", e.Category, e.Stage, e.Detail, e.Err)
	}
	return fmt.Sprintf("%s after %s: %s", e.Category, e.Stage, e.Detail)
}

func (e *PipelineError) Unwrap() error {
	return e.Err
}

package pipeline

import "fmt"

// Kind classifies why a pipeline run stopped. Each kind maps to one
// user-visible diagnostic; none of them are fatal to the process.
type Kind string

const (
	KindAcquisition            Kind = "acquisition_failure"
	KindNormalization          Kind = "normalization_failure"
	KindTranscriptionAmbiguous Kind = "transcription_ambiguous"
	KindTranscriptionService   Kind = "transcription_service_failure"
	KindDetection              Kind = "detection_failure"
	KindTranslation            Kind = "translation_failure"
	KindSynthesis              Kind = "synthesis_failure"
	KindSummarizationEmpty     Kind = "summarization_empty"
	KindExport                 Kind = "export_failure"
	KindHistory                Kind = "history_failure"
)

// StageError reports the first failing stage of a run. The run's
// artifacts are already cleaned up by the time a StageError reaches
// the caller.
type StageError struct {
	Stage string
	Kind  Kind
	Err   error
}

func (e *StageError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("stage %s (%s): %v", e.Stage, e.Kind, e.Err)
	}
	return fmt.Sprintf("stage %s (%s)", e.Stage, e.Kind)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// Message is the inline diagnostic shown to the user.
func (e *StageError) Message() string {
	switch e.Kind {
	case KindAcquisition:
		return "Could not download audio from the given link."
	case KindNormalization:
		return "Could not convert the downloaded audio."
	case KindTranscriptionAmbiguous:
		return "No intelligible speech was found in the audio."
	case KindTranscriptionService:
		return "Transcription failed."
	case KindDetection:
		return "Could not detect the language of the transcript."
	case KindTranslation:
		return "Translation failed."
	case KindSynthesis:
		return "Could not generate the translated audio."
	case KindSummarizationEmpty:
		return "The transcript produced an empty summary."
	case KindExport:
		return "Could not render the summary document."
	case KindHistory:
		return "The result could not be saved to your history."
	default:
		return "The workflow did not complete."
	}
}

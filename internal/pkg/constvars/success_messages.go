package constvars

const (
	ResponseSuccess = "success"

	ClinicianRegisterSuccess = "clinician registered successfully"
	LoginSuccess             = "successfully login"

	PatientEnrolledSuccess    = "patient enrolled successfully"
	PatientListSuccess        = "patients fetched successfully"
	PatientDetailSuccess      = "patient fetched successfully"
	PatientDeactivatedSuccess = "patient deactivated successfully"

	CheckInStartedSuccess  = "check-in started"
	CheckInStepSuccess     = "check-in step processed"
	CheckInListSuccess     = "check-ins fetched successfully"
	CheckInReviewSuccess   = "check-in review recorded"
	RecordingUploadSuccess = "recording uploaded successfully"
	RecordingURLSuccess    = "recording url generated"

	CallEnqueuedSuccess = "call request enqueued"
)

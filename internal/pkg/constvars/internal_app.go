package constvars

type contextKey string

const (
	CONTEXT_REQUEST_ID_KEY   contextKey = "request_id"
	CONTEXT_CLINICIAN_ID_KEY contextKey = "clinician_id"
)

const (
	MongoCollectionPatients       = "patients"
	MongoCollectionSurveySessions = "survey_sessions"
	MongoCollectionClinicians     = "clinicians"
)

const (
	RedisKeyActiveSessionFormat  = "survey:active:%s"
	RedisKeyFinalizeLockFormat   = "survey:finalize:%s"
	RedisKeyCallSchedulerLeader  = "callsched:leader"
	RedisKeyEnrollmentLockFormat = "patient:enroll:%s"
)

const (
	// DTMF tokens accepted by the phone survey. Everything else re-asks.
	DTMFYes = "1"
	DTMFNo  = "2"
)

const (
	DoctorStatusPending  = "Pending"
	DoctorStatusReviewed = "Reviewed"
	DoctorStatusEscalate = "Escalate"
)

package constvars

const (
	LoggingRequestIDKey          = "request_id"
	LoggingPatientIDKey          = "patient_id"
	LoggingSessionIDKey          = "session_id"
	LoggingDiseaseTrackKey       = "disease_track"
	LoggingCursorKey             = "cursor"
	LoggingRiskScoreKey          = "risk_score"
	LoggingRedisKey              = "redis_key"
	LoggingLockValueKey          = "lock_value"
	LoggingLockExpirationTimeKey = "lock_expiration_time"
	LoggingMethodKey             = "method"
	LoggingEndpointKey           = "endpoint"
	LoggingRemoteAddrKey         = "remote_addr"
	LoggingUserAgentKey          = "user_agent"
	LoggingQueryKey              = "query"
	LoggingStatusCodeKey         = "status_code"
	LoggingDurationKey           = "duration"
	LoggingSuccessKey            = "success"
	LoggingQueueKey              = "queue"
)

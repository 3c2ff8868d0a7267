package constvars

const (
	ResponseUnknown = "unknown"

	// Client-facing messages
	ErrClientCannotProcessRequest          = "cannot process request"
	ErrClientSomethingWrongWithApplication = "something went wrong with the application"
	ErrClientNotAuthorized                 = "you are not authorized to access this resource"
	ErrClientInvalidUsernameOrPassword     = "invalid email or password"
	ErrClientEmailAlreadyExists            = "email already registered"
	ErrClientPatientNotFound               = "patient not found"
	ErrClientSessionNotFound               = "no check-in session found for this patient"
	ErrClientCheckInNotFound               = "check-in not found"
	ErrClientCheckInNotCompleted           = "check-in is not completed yet"
	ErrClientRecordingNotFound             = "no recording attached to this check-in"
	ErrClientServerLongRespond             = "server took too long to respond"
	ErrClientTooManyRequests               = "too many requests, slow down"

	// Developer-facing messages
	ErrDevValidationFailed           = "request validation failed"
	ErrDevInvalidInput               = "invalid input"
	ErrDevCannotParseJSON            = "cannot parse JSON payload"
	ErrDevCannotParseMultipartForm   = "cannot parse multipart form"
	ErrDevURLParamIDValidationFailed = "url param %s validation failed"
	ErrDevServerDeadlineExceeded     = "handler deadline exceeded"

	ErrDevDBFailedToFindDocument     = "mongodb failed to find document"
	ErrDevDBFailedToInsertDocument   = "mongodb failed to insert document"
	ErrDevDBFailedToUpdateDocument   = "mongodb failed to update document"
	ErrDevDBFailedToDeleteDocument   = "mongodb failed to delete document"
	ErrDevDBFailedToIterateDocuments = "mongodb failed to iterate documents"
	ErrDevDBStringNotObjectID        = "string is not a valid mongodb object id"

	ErrDevRedisGetData      = "redis failed to get data"
	ErrDevRedisSetData      = "redis failed to set data"
	ErrDevRedisDeleteData   = "redis failed to delete data"
	ErrDevRedisGetNoData    = "redis has no data for key %s"
	ErrDevRedisUnlock       = "redis failed to release lock"
	ErrDevCannotMarshalJSON = "cannot marshal value to JSON"

	ErrDevRabbitMQPublish        = "rabbitmq failed to publish message"
	ErrDevRabbitMQConfirmTimeout = "rabbitmq publish confirm not received"

	ErrDevMinioFailedToCreateObject = "minio failed to create object in bucket %s"
	ErrDevMinioFailedToPresign      = "minio failed to presign object in bucket %s"

	ErrDevSMTPSendEmail = "smtp failed to send email via host %s"

	ErrDevAuthTokenMissing          = "authorization token is missing"
	ErrDevAuthTokenInvalidOrExpired = "authorization token is invalid or expired"
	ErrDevAuthGenerateToken         = "failed to generate token"
	ErrDevInvalidCredentials        = "credentials do not match any clinician"
	ErrDevEmailAlreadyExists        = "clinician email already exists"
	ErrDevFailedToHashPassword      = "failed to hash password"

	ErrDevPatientNotFound      = "patient does not exist or is inactive"
	ErrDevSessionNotFound      = "no survey session found for patient"
	ErrDevCheckInNotFound      = "survey session does not exist"
	ErrDevCheckInNotCompleted  = "survey session has not been finalized"
	ErrDevRecordingNotAttached = "survey session has no recording object"
)

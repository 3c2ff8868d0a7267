package constvars

const (
	HeaderContentType   = "Content-Type"
	HeaderXRequestID    = "X-Request-Id"
	HeaderXAPIKey       = "X-Api-Key"
	HeaderAuthorization = "Authorization"

	MIMEApplicationJSON = "application/json"
)

package config

type (
	InternalConfig struct {
		App      App
		JWT      JWT
		IVR      IVR
		Calls    Calls
		Alerting Alerting
	}

	DriverConfig struct {
		MongoDB  MongoDB
		Redis    Redis
		RabbitMQ RabbitMQ
		Minio    Minio
		SMTP     SMTP
		Logger   Logger
	}

	App struct {
		Env                        string
		Port                       string
		Version                    string
		Address                    string
		Timezone                   string
		EndpointPrefix             string
		MaxRequests                int
		ShutdownTimeout            int
		RabbitMQMailerQueue        string
		RequestBodyLimitInMegabyte int
	}

	MongoDB struct {
		Port     string
		Host     string
		DbName   string
		Username string
		Password string
	}

	Redis struct {
		Host     string
		Port     string
		Password string
	}

	RabbitMQ struct {
		Port     string
		Host     string
		Username string
		Password string
	}

	Minio struct {
		Port       string
		Host       string
		Username   string
		Password   string
		BucketName string
	}

	SMTP struct {
		Host        string
		Username    string
		Password    string
		EmailSender string
		Port        int
	}

	Logger struct {
		Level               string
		OutputFileName      string
		OutputErrorFileName string
	}

	JWT struct {
		Secret        string
		ExpTimeInHour int
	}

	IVR struct {
		APIKey                  string
		WebhookRatePerSecond    float64
		WebhookBurst            int
		SessionCacheTTLInMinute int
	}

	Calls struct {
		CronSpec              string
		MonitoringWindowDays  int
		DispatchRatePerSecond float64
	}

	Alerting struct {
		RiskThreshold  float64
		RecipientEmail string
	}
)

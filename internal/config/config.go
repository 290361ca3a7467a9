package config

const (
	DefaultTimeZone       = "America/Mexico_City"
	DefaultDataPath       = "./data/ventas.csv"
	DefaultInsightPort    = ":8502"
	DefaultWebhookTimeout = 60 // seconds

	// Digest Scheduler Constants
	DefaultDigestSchedule = "0 8 * * *" // daily morning push
)

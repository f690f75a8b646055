package cmd

type Config struct {
	HTTPPort string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	KafkaBrokers          string
	KafkaOrderEventsTopic string
	OutboxBatchSize       int

	OtelExporterEndpoint string
	OtelExporterInsecure bool
	Environment          string
	LogLevel             string
}

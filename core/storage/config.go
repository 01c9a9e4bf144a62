package storage

// Config holds the S3/MinIO connection used when SCAN_SOURCE=bucket.
type Config struct {
	// Endpoint is host[:port] of the service; an http(s):// scheme is stripped.
	Endpoint string `mapstructure:"endpoint" default:"localhost:9000" validate:"required"`
	// AccessKey and SecretKey are static V4 credentials.
	AccessKey string `mapstructure:"access_key" default:"minioadmin"`
	SecretKey string `mapstructure:"secret_key" default:"minioadmin"`
	// UseSSL switches the client to https.
	UseSSL bool `mapstructure:"use_ssl" default:"false"`
	// Bucket is listed by the bucket source and read by /api/file.
	Bucket string `mapstructure:"bucket" default:"renders" validate:"required"`
	// Region is optional for MinIO.
	Region string `mapstructure:"region" default:""`
	// TimeoutSeconds bounds dialing, TLS handshakes and response headers.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30" validate:"gte=0"`
}

package config

type AppConfig struct {
	APIPort string `env:"PORT" envDefault:"12333"`
	// JWTSecret signs and verifies the bearer tokens the auth middleware accepts
	JWTSecret string `env:"JWT_SECRET,required"`
	// ImageFolder is the object-key prefix for uploaded note images
	ImageFolder string `env:"IMAGE_FOLDER" envDefault:"notes_app"`
}

type NotestackDatabaseConfig struct {
	Host            string `env:"NOTESTACK_POSTGRES_HOST,required"`
	Port            string `env:"NOTESTACK_POSTGRES_PORT,required"`
	User            string `env:"NOTESTACK_POSTGRES_USER,required"`
	DBName          string `env:"NOTESTACK_POSTGRES_DB_NAME,required"`
	Password        string `env:"NOTESTACK_POSTGRES_PASSWORD,required"`
	MaxConn         int    `env:"NOTESTACK_POSTGRES_DB_MAX_CONN" envDefault:"100"`
	MaxIdleConn     int    `env:"NOTESTACK_POSTGRES_DB_MAX_IDLE_CONN" envDefault:"10"`
	ConnMaxLifetime int    `env:"NOTESTACK_POSTGRES_DB_CONN_MAX_LIFETIME" envDefault:"60"`
	LogLevel        string `env:"NOTESTACK_POSTGRES_LOG_LEVEL" envDefault:"WARN"`
	SSLMode         string `env:"NOTESTACK_POSTGRES_SSL_MODE" envDefault:"disable"`
}

// ImageStorageConfig configures the external blob store holding note images.
// Provider picks between plain S3 and Cloudflare R2 (S3-compatible API).
type ImageStorageConfig struct {
	Provider        string `env:"IMAGE_STORAGE_PROVIDER" envDefault:"r2"`
	AWSRegion       string `env:"IMAGE_STORAGE_AWS_REGION"`
	R2AccountID     string `env:"IMAGE_STORAGE_R2_ACCOUNT_ID"`
	AccessKeyID     string `env:"IMAGE_STORAGE_ACCESS_KEY_ID,required"`
	AccessKeySecret string `env:"IMAGE_STORAGE_ACCESS_KEY_SECRET,required"`
	Bucket          string `env:"IMAGE_STORAGE_BUCKET" envDefault:"note-images"`
	CDNDomain       string `env:"IMAGE_STORAGE_CDN_DOMAIN"`
	PublicAccess    bool   `env:"IMAGE_STORAGE_PUBLIC_ACCESS" envDefault:"true"`
}

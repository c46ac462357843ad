package config

type Config struct {
	Debug    bool     `mapstructure:"debug"`
	Server   Server   `mapstructure:"server"`
	Auth     Auth     `mapstructure:"auth"`
	Media    Media    `mapstructure:"media"`
	Records  Records  `mapstructure:"records"`
	Bluesky  Bluesky  `mapstructure:"bluesky"`
	Mastodon Mastodon `mapstructure:"mastodon"`
}

type Server struct {
	Address        string       `mapstructure:"address" validate:"required,hostname|ip"`
	Port           int          `mapstructure:"port" validate:"required,min=1,max=65535"`
	AllowedOrigins []string     `mapstructure:"allowed_origins" validate:"dive,url"`
	Limits         ServerLimits `mapstructure:"limits"`
}

type ServerLimits struct {
	MaxPayloadSize uint `mapstructure:"max_payload_size" validate:"required"`
	MaxFileSize    uint `mapstructure:"max_file_size" validate:"required"`
}

type Auth struct {
	AdminToken string `mapstructure:"admin_token" validate:"required,min=16"`
}

type Media struct {
	Strategy string `mapstructure:"strategy" validate:"required,oneof=s3 filesystem memory"`
	// LegacyBaseUrls lists public URL prefixes that previously stored objects
	// may still carry (e.g. a pre-migration region endpoint). The cross-post
	// source resolver strips whichever prefix matches.
	LegacyBaseUrls []string                 `mapstructure:"legacy_base_urls" validate:"dive,url"`
	S3             *S3MediaStrategy         `mapstructure:"s3" validate:"required_if=Strategy s3"`
	Filesystem     *FilesystemMediaStrategy `mapstructure:"filesystem" validate:"required_if=Strategy filesystem"`
}

type S3MediaStrategy struct {
	AccessKeyId    string `mapstructure:"access_key_id" validate:"required"`
	SecretKeyId    string `mapstructure:"secret_key_id" validate:"required"`
	Region         string `mapstructure:"region" validate:"required"`
	Bucket         string `mapstructure:"bucket" validate:"required"`
	Endpoint       string `mapstructure:"endpoint"`
	PublicUrl      string `mapstructure:"public_url" validate:"required,url"`
	ForcePathStyle bool   `mapstructure:"force_path_style"`
	DisableSSL     bool   `mapstructure:"disable_ssl"`
}

type FilesystemMediaStrategy struct {
	Path      string `mapstructure:"path" validate:"required,abspath"`
	PublicUrl string `mapstructure:"public_url" validate:"required,url"`
}

type Records struct {
	Strategy string              `mapstructure:"strategy" validate:"required,oneof=sql memory"`
	Sql      *SqlRecordsStrategy `mapstructure:"sql" validate:"required_if=Strategy sql"`
}

type SqlRecordsStrategy struct {
	Driver      string  `mapstructure:"driver" validate:"required,oneof=postgres mysql"`
	DSN         string  `mapstructure:"dsn" validate:"required"`
	TablePrefix *string `mapstructure:"table_prefix" validate:"omitempty,identifier"`
}

type Bluesky struct {
	Service    string `mapstructure:"service" validate:"required,url"`
	Identifier string `mapstructure:"identifier" validate:"required"`
	Password   string `mapstructure:"password" validate:"required"`
	// ReuseSession keeps the access token from the first login around for
	// subsequent dispatches instead of logging in per request.
	ReuseSession bool `mapstructure:"reuse_session"`
}

type Mastodon struct {
	Server      string `mapstructure:"server" validate:"required,url"`
	AccessToken string `mapstructure:"access_token" validate:"required"`
}

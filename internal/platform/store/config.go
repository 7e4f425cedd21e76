package store

import (
	"time"

	"cattery/internal/platform/config"
)

// Config aggregates per backend configuration
type Config struct {
	AppName string

	PG     PGConfig
	SQLite SQLiteConfig
	CH     CHConfig
	S3     S3Config
}

// PGConfig configures postgres connectivity and tracing
type PGConfig struct {
	Enabled     bool
	URL         string
	MaxConns    int32
	LogSQL      bool
	SlowQueryMs int

	ConnectRetries int           // default 20
	PingTimeout    time.Duration // default 3s
}

// SQLiteConfig configures the embedded database
type SQLiteConfig struct {
	Enabled bool
	Path    string
}

// CHConfig configures clickhouse connectivity
type CHConfig struct {
	Enabled bool
	URL     string
}

// S3Config configures the object store
type S3Config struct {
	Enabled         bool
	Bucket          string
	Region          string
	Endpoint        string
	PathStyle       bool
	AccessKeyID     string
	SecretAccessKey string
}

// ConfigFromEnv reads SERVICE_* keys; each backend is enabled by its locator being set
func ConfigFromEnv(cfg config.Conf, appName string) Config {
	svc := cfg.Prefix("SERVICE_")
	pg := svc.Prefix("PGSQL_")
	sq := svc.Prefix("SQLITE_")
	ch := svc.Prefix("CLICKHOUSE_")
	s3 := svc.Prefix("S3_")

	out := Config{AppName: appName}

	out.PG.URL = pg.MayString("DBURL", "")
	out.PG.Enabled = out.PG.URL != ""
	out.PG.MaxConns = int32(pg.MayInt("MAX_CONNS", 4))
	out.PG.LogSQL = pg.MayBool("LOG_SQL", false)
	out.PG.SlowQueryMs = pg.MayInt("SLOW_MS", 250)

	out.SQLite.Path = sq.MayString("PATH", "")
	out.SQLite.Enabled = out.SQLite.Path != ""

	out.CH.URL = ch.MayString("DBURL", "")
	out.CH.Enabled = out.CH.URL != ""

	out.S3.Bucket = s3.MayString("BUCKET", "")
	out.S3.Enabled = out.S3.Bucket != ""
	out.S3.Region = s3.MayString("REGION", "us-east-1")
	out.S3.Endpoint = s3.MayString("ENDPOINT", "")
	out.S3.PathStyle = s3.MayBool("PATH_STYLE", false)
	out.S3.AccessKeyID = s3.MayString("ACCESS_KEY_ID", "")
	out.S3.SecretAccessKey = s3.MayString("SECRET_ACCESS_KEY", "")

	return out
}

package module

import (
	"os"
	"strings"
	"time"

	"cattery/internal/core/cattery"
	"cattery/internal/platform/config"
	"cattery/internal/platform/logger"
	"cattery/internal/platform/store"
	"cattery/internal/services/cattery/repo"

	"github.com/google/uuid"
)

// DefaultSQLitePath is where the embedded database lives when none is configured
const DefaultSQLitePath = "data/cattery.db"

// Options controls the cattery module. Values are read from env
type Options struct {
	Backend        string
	InstallationID string
	FilePath       string
	SQLitePath     string
	S3Prefix       string

	WeeklyLimit  int
	RefreshEvery time.Duration
	Seed         uint64
}

// FromConfig reads options using the CORE_CATTERY_ prefix off the root conf
func FromConfig(cfg config.Conf) Options {
	c := cfg.Prefix("CORE_CATTERY_")
	return Options{
		Backend:        c.MayEnum("BACKEND", repo.BackendSQLite, repo.Backends...),
		InstallationID: installationID(c.MayString("INSTALLATION_ID", "")),
		FilePath:       c.MayString("FILE_PATH", repo.DefaultFilePath),
		SQLitePath:     c.MayString("SQLITE_PATH", DefaultSQLitePath),
		S3Prefix:       cfg.Prefix("SERVICE_S3_").MayString("PREFIX", "cattery/"),
		WeeklyLimit:    c.MayInt("WEEKLY_LIMIT", cattery.DefaultWeeklyLimit),
		RefreshEvery:   c.MayDuration("REFRESH_EVERY", time.Minute),
		Seed:           uint64(max(c.MayInt("SEED", 0), 0)),
	}
}

// Enable switches on the store backend the selected snapshot backend needs
// sqlite is opened at SQLitePath unless SERVICE_SQLITE_PATH already set one
func Enable(sc *store.Config, o Options) {
	if strings.EqualFold(o.Backend, repo.BackendSQLite) && !sc.SQLite.Enabled {
		sc.SQLite.Enabled = true
		sc.SQLite.Path = o.SQLitePath
	}
}

// installationID accepts a configured uuid or derives a stable one from the host
func installationID(configured string) string {
	if configured != "" {
		id, err := uuid.Parse(configured)
		if err == nil {
			return id.String()
		}
		logger.Named("cattery").Warn().Err(err).Str("value", configured).
			Msg("invalid installation id; deriving from host")
	}
	host, err := os.Hostname()
	if err != nil || host == "" {
		host = "localhost"
	}
	return uuid.NewSHA1(uuid.NameSpaceDNS, []byte("cattery."+host)).String()
}

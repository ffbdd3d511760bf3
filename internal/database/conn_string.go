package database

import (
	"net"
	"net/url"
	"strconv"

	"github.com/rickgao/fixture-merge/internal/config"
)

// ApplicationName is reported to PostgreSQL as application_name.
const ApplicationName = "fixture-merge"

// BuildConnString builds a postgres:// URL from cfg. User and password are
// escaped, IPv6 hosts are bracketed and an empty ssl_mode becomes "prefer".
func BuildConnString(cfg config.DBConfig) string {
	sslMode := cfg.SSLMode
	if sslMode == "" {
		sslMode = "prefer"
	}

	q := url.Values{}
	q.Set("application_name", ApplicationName)
	q.Set("sslmode", sslMode)

	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(cfg.User, cfg.Password),
		Host:     net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
		Path:     "/" + cfg.Name,
		RawQuery: q.Encode(),
	}
	return u.String()
}

package postgres

import "time"

// ClientConfig holds Postgres connection settings.
type ClientConfig struct {
	URL         string
	User        string
	Password    string
	MaxConns    int32
	MinConns    int32
	DialTimeout time.Duration
}

// ClientOption configures the client.
type ClientOption func(*ClientConfig)

// WithURL sets the connection URL (postgres://host:port/db).
func WithURL(url string) ClientOption {
	return func(c *ClientConfig) {
		c.URL = url
	}
}

// WithCredentials sets user and password, overriding any present in the URL.
func WithCredentials(user, password string) ClientOption {
	return func(c *ClientConfig) {
		c.User = user
		c.Password = password
	}
}

// WithPoolSize sets max and min pool connections.
func WithPoolSize(max, min int32) ClientOption {
	return func(c *ClientConfig) {
		c.MaxConns = max
		c.MinConns = min
	}
}

// WithDialTimeout sets the initial connect timeout.
func WithDialTimeout(d time.Duration) ClientOption {
	return func(c *ClientConfig) {
		c.DialTimeout = d
	}
}

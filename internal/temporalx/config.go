package temporalx

import "time"

type Config struct {
	Address   string
	Namespace string
	TaskQueue string

	ClientCertPath string
	ClientKeyPath  string
	ClientCAPath   string

	DialTimeout time.Duration
	// DialMaxWait bounds how long NewClient keeps retrying an unreachable server.
	DialMaxWait time.Duration
}

func (c Config) withDefaults() Config {
	if c.Namespace == "" {
		c.Namespace = "bestway"
	}
	if c.TaskQueue == "" {
		c.TaskQueue = "bestway-routegen"
	}
	if c.DialTimeout <= 0 {
		c.DialTimeout = 5 * time.Second
	}
	if c.DialMaxWait < 0 {
		c.DialMaxWait = 0
	}
	return c
}

func (c Config) Enabled() bool { return c.Address != "" }

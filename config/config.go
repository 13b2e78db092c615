package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Server struct {
	// User is the UNIX user jobs are submitted as by default.
	User string `yaml:"user"`
	// Executor selects how scheduler commands are run: "shell" goes
	// through sh -c with user impersonation (requires root), "local"
	// runs as the service's own account.
	Executor string `yaml:"executor"`
	// WorkDir is the working directory for scheduler commands.
	WorkDir string `yaml:"work_dir"`
}

type Scheduler struct {
	// DefaultQueue is used when a submission names no queue.
	DefaultQueue string `yaml:"default_queue"`
	// LogDir is where job output files land by default.
	LogDir string `yaml:"log_dir"`
}

type Poll struct {
	IntervalSeconds int `yaml:"interval_seconds"`
	GraceSeconds    int `yaml:"grace_seconds"`
}

type Cache struct {
	// TTLSeconds bounds how stale the cached bhosts/bqueues answers may
	// get.
	TTLSeconds int `yaml:"ttl_seconds"`
}

type Config struct {
	Server    Server    `yaml:"server"`
	Scheduler Scheduler `yaml:"scheduler"`
	Poll      Poll      `yaml:"poll"`
	Cache     Cache     `yaml:"cache"`
}

func Default() Config {
	return Config{
		Server: Server{
			User:     "root",
			Executor: "shell",
			WorkDir:  "/tmp",
		},
		Scheduler: Scheduler{
			LogDir: "logs",
		},
		Poll: Poll{
			IntervalSeconds: 30,
			GraceSeconds:    60,
		},
		Cache: Cache{
			TTLSeconds: 30,
		},
	}
}

// Load reads a yaml config file over the defaults. An empty path returns
// the defaults unchanged.
func Load(path string) (*Config, error) {
	config := Default()
	if path == "" {
		return &config, nil
	}

	cb, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(cb, &config); err != nil {
		return nil, err
	}
	return &config, nil
}

func (c *Config) PollInterval() time.Duration {
	return time.Duration(c.Poll.IntervalSeconds) * time.Second
}

func (c *Config) PollGrace() time.Duration {
	return time.Duration(c.Poll.GraceSeconds) * time.Second
}

func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.Cache.TTLSeconds) * time.Second
}

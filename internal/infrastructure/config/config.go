package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"bsdsetup/internal/domain/constants"
	"bsdsetup/internal/domain/errors"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds the full provisioner configuration.
type Config struct {
	User     UserConfig     `yaml:"user"`
	SSH      SSHConfig      `yaml:"ssh"`
	Firewall FirewallConfig `yaml:"firewall"`
	Proxy    ProxyConfig    `yaml:"proxy"`
	Packages []string       `yaml:"packages"`
	Timezone string         `yaml:"timezone"`
	Paths    PathsConfig    `yaml:"paths"`
	Runtime  RuntimeConfig  `yaml:"runtime"`
}

// UserConfig describes the account to provision.
type UserConfig struct {
	Name string `yaml:"name"`
	Shell string `yaml:"shell"`
	// InitialPassword is applied only when non-empty. The upstream setup
	// script shipped a hard-coded default; here it is an explicit opt-in.
	InitialPassword string `yaml:"initial_password"`
	DotfilesRepo    string `yaml:"dotfiles_repo"`
}

// SSHConfig holds the sshd hardening policy.
type SSHConfig struct {
	// PasswordAuthentication mirrors the upstream behavior of leaving
	// password logins enabled. Set to false for key-only access.
	PasswordAuthentication bool `yaml:"password_authentication"`
}

// FirewallConfig holds the pf inbound allow-lists.
type FirewallConfig struct {
	TCPPorts []int `yaml:"tcp_ports"`
	UDPPorts []int `yaml:"udp_ports"`
}

// ProxyConfig describes the Caddy deployment.
type ProxyConfig struct {
	Hostnames   []string `yaml:"hostnames"`
	BackendPort int      `yaml:"backend_port"`
	AdminEmail  string   `yaml:"admin_email"`
}

// PathsConfig collects every file the provisioner reads or writes.
type PathsConfig struct {
	LogFile     string `yaml:"log_file"`
	BackupDir   string `yaml:"backup_dir"`
	PFConfig    string `yaml:"pf_config"`
	SSHDConfig  string `yaml:"sshd_config"`
	Caddyfile   string `yaml:"caddyfile"`
	StagingDir  string `yaml:"staging_dir"`
	MetricsFile string `yaml:"metrics_file"`
}

// RuntimeConfig holds execution tuning.
type RuntimeConfig struct {
	LogLevel       string        `yaml:"log_level"`
	CommandTimeout time.Duration `yaml:"command_timeout"`
	ProbeTimeout   time.Duration `yaml:"probe_timeout"`
	MirrorURL      string        `yaml:"mirror_url"`
	PkgJobs        int           `yaml:"pkg_jobs"`
}

// Loader loads configuration.
type Loader interface {
	Load(path string) (*Config, error)
}

// FileEnvLoader layers defaults, an optional YAML file, an optional env
// file, and individual environment overrides, in that order.
type FileEnvLoader struct{}

// NewFileEnvLoader creates a new FileEnvLoader.
func NewFileEnvLoader() Loader {
	return &FileEnvLoader{}
}

// Load builds the configuration. path may be empty when no config file is
// given on the command line.
func (l *FileEnvLoader) Load(path string) (*Config, error) {
	cfg := defaults()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.NewValidationError("cannot read config file", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, errors.NewValidationError("cannot parse config file", err)
		}
	}

	// Optional env file; absence is fine.
	envFile := getEnvOrDefault("BSDSETUP_ENV_FILE", "bsdsetup.env")
	if _, err := os.Stat(envFile); err == nil {
		if err := godotenv.Load(envFile); err != nil {
			return nil, errors.NewValidationError("cannot load env file", err)
		}
	}

	l.applyEnvOverrides(cfg)

	if err := l.validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func defaults() *Config {
	return &Config{
		User: UserConfig{
			Name:  constants.DefaultUserName,
			Shell: constants.DefaultUserShell,
		},
		SSH: SSHConfig{
			PasswordAuthentication: true,
		},
		Firewall: FirewallConfig{
			TCPPorts: []int{22, 80, 443, 32400},
			UDPPorts: []int{1900, 32410, 32411, 32412, 32413, 32414},
		},
		Proxy: ProxyConfig{
			Hostnames:   []string{"localhost"},
			BackendPort: constants.DefaultBackendPort,
			AdminEmail:  constants.DefaultAdminEmail,
		},
		Packages: []string{
			"bash", "sudo", "git", "curl", "vim", "htop", "tmux",
			"caddy", "plexmediaserver", "fail2ban", "zfs-stats",
		},
		Timezone: constants.DefaultTimezone,
		Paths: PathsConfig{
			LogFile:     constants.DefaultLogFile,
			BackupDir:   constants.DefaultBackupDir,
			PFConfig:    constants.PFConfigPath,
			SSHDConfig:  constants.SSHDConfigPath,
			Caddyfile:   constants.CaddyfilePath,
			StagingDir:  constants.DefaultStagingDir,
			MetricsFile: constants.DefaultMetricsFile,
		},
		Runtime: RuntimeConfig{
			LogLevel:       constants.DefaultLogLevel,
			CommandTimeout: 10 * time.Minute,
			ProbeTimeout:   5 * time.Second,
			MirrorURL:      constants.DefaultMirrorURL,
			PkgJobs:        constants.DefaultPkgJobs,
		},
	}
}

// applyEnvOverrides lets individual settings be overridden without a file.
func (l *FileEnvLoader) applyEnvOverrides(cfg *Config) {
	cfg.User.Name = getEnvOrDefault("BSDSETUP_USER", cfg.User.Name)
	cfg.User.Shell = getEnvOrDefault("BSDSETUP_SHELL", cfg.User.Shell)
	cfg.User.InitialPassword = getEnvOrDefault("BSDSETUP_USER_PASSWORD", cfg.User.InitialPassword)
	cfg.User.DotfilesRepo = getEnvOrDefault("BSDSETUP_DOTFILES_REPO", cfg.User.DotfilesRepo)
	cfg.Timezone = getEnvOrDefault("BSDSETUP_TIMEZONE", cfg.Timezone)
	cfg.Paths.LogFile = getEnvOrDefault("BSDSETUP_LOG_FILE", cfg.Paths.LogFile)
	cfg.Paths.BackupDir = getEnvOrDefault("BSDSETUP_BACKUP_DIR", cfg.Paths.BackupDir)
	cfg.Runtime.LogLevel = getEnvOrDefault("LOG_LEVEL", cfg.Runtime.LogLevel)
	cfg.Runtime.MirrorURL = getEnvOrDefault("BSDSETUP_MIRROR_URL", cfg.Runtime.MirrorURL)
	cfg.Runtime.PkgJobs = getEnvIntOrDefault("BSDSETUP_PKG_JOBS", cfg.Runtime.PkgJobs)
	cfg.Runtime.CommandTimeout = getEnvDurationOrDefault("BSDSETUP_COMMAND_TIMEOUT", cfg.Runtime.CommandTimeout)
	cfg.Runtime.ProbeTimeout = getEnvDurationOrDefault("BSDSETUP_PROBE_TIMEOUT", cfg.Runtime.ProbeTimeout)

	if hosts := os.Getenv("BSDSETUP_PROXY_HOSTNAMES"); hosts != "" {
		var parsed []string
		for _, h := range strings.Split(hosts, ",") {
			if h = strings.TrimSpace(h); h != "" {
				parsed = append(parsed, h)
			}
		}
		if len(parsed) > 0 {
			cfg.Proxy.Hostnames = parsed
		}
	}
}

// validate rejects configurations that cannot be provisioned.
func (l *FileEnvLoader) validate(cfg *Config) error {
	if cfg.User.Name == "" {
		return errors.NewValidationError("user name not configured", nil)
	}
	if !strings.HasPrefix(cfg.User.Shell, "/") {
		return errors.NewValidationError("user shell must be an absolute path", nil)
	}
	if len(cfg.Proxy.Hostnames) == 0 {
		return errors.NewValidationError("at least one proxy hostname required", nil)
	}
	if cfg.Proxy.BackendPort < 1 || cfg.Proxy.BackendPort > 65535 {
		return errors.NewValidationError("proxy backend port out of range", nil)
	}
	if len(cfg.Firewall.TCPPorts) == 0 {
		return errors.NewValidationError("firewall tcp allow-list empty", nil)
	}
	for _, port := range append(append([]int{}, cfg.Firewall.TCPPorts...), cfg.Firewall.UDPPorts...) {
		if port < 1 || port > 65535 {
			return errors.NewValidationError("firewall port out of range", nil)
		}
	}
	if cfg.Runtime.CommandTimeout <= 0 {
		return errors.NewValidationError("invalid command timeout", nil)
	}
	if cfg.Runtime.PkgJobs < 1 {
		return errors.NewValidationError("pkg jobs must be at least 1", nil)
	}
	return nil
}

// Environment variable helpers.

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

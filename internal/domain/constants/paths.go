package constants

// System paths.
const (
	// Firewall
	PFConfigPath = "/etc/pf.conf"

	// SSH
	SSHDConfigPath = "/etc/ssh/sshd_config"

	// Reverse proxy
	CaddyfilePath = "/usr/local/etc/caddy/Caddyfile"

	// Login shell allow-list
	ShellsPath = "/etc/shells"

	// Timezone
	LocaltimePath = "/etc/localtime"
	ZoneinfoDir   = "/usr/share/zoneinfo"

	// Periodic maintenance
	PeriodicWeeklyDir = "/usr/local/etc/periodic/weekly"

	// Provisioner state
	DefaultLogFile     = "/var/log/bsdsetup.log"
	DefaultBackupDir   = "/var/backups/bsdsetup"
	DefaultMetricsFile = "/var/tmp/bsdsetup_metrics.prom"
	DefaultStagingDir  = "/usr/local/share/bsdsetup/dotfiles"
)

// Service names.
const (
	ServiceSSHD  = "sshd"
	ServicePF    = "pf"
	ServiceCaddy = "caddy"
	ServiceCron  = "cron"
	ServicePlex  = "plexmediaserver"
)

// File permissions.
const (
	LogFilePermission    = 0600
	ConfigFilePermission = 0644
	ScriptPermission     = 0755
	BackupDirPermission  = 0755
)

// Defaults.
const (
	DefaultUserName    = "sawyer"
	DefaultUserShell   = "/usr/local/bin/bash"
	DefaultTimezone    = "America/New_York"
	DefaultBackendPort = 32400
	DefaultAdminEmail  = ""
	DefaultMirrorURL   = "https://pkg.freebsd.org"
	DefaultPkgJobs     = 4
	DefaultLogLevel    = "info"
)

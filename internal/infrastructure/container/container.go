package container

import (
	"bsdsetup/internal/application/pipeline"
	"bsdsetup/internal/application/steps"
	"bsdsetup/internal/domain/interfaces"
	"bsdsetup/internal/infrastructure/adapters"
	"bsdsetup/internal/infrastructure/config"
	"bsdsetup/internal/infrastructure/firewall"
	"bsdsetup/internal/infrastructure/network"
	"bsdsetup/internal/infrastructure/proxy"
	"bsdsetup/internal/infrastructure/services"

	"github.com/sirupsen/logrus"
)

// Container wires adapters, services and steps together.
type Container struct {
	config *config.Config
	logger *logrus.Logger

	// infrastructure adapters
	fileSystem      interfaces.FileSystem
	commandExecutor interfaces.CommandExecutor
	clock           interfaces.Clock
	privileges      interfaces.PrivilegeChecker
	prober          interfaces.ReachabilityProber

	// system services
	serviceManager interfaces.ServiceManager
	packageManager interfaces.PackageManager
	userManager    interfaces.UserManager
	backupService  interfaces.BackupService
	routeDetector  interfaces.RouteDetector

	// configurators
	pfConfigurator    *firewall.PFConfigurator
	caddyConfigurator *proxy.CaddyConfigurator

	preflight *steps.Preflight
	pipeline  []interfaces.Step
	runner    *pipeline.Runner
}

// NewContainer builds the full dependency graph.
func NewContainer(cfg *config.Config, logger *logrus.Logger) *Container {
	c := &Container{
		config: cfg,
		logger: logger,
	}

	c.initializeInfrastructure()
	c.initializeServices()
	c.initializeSteps()

	return c
}

func (c *Container) initializeInfrastructure() {
	c.fileSystem = adapters.NewRealFileSystem()
	c.commandExecutor = adapters.NewRealCommandExecutor()
	c.clock = adapters.NewRealClock()
	c.privileges = adapters.NewRealPrivilegeChecker()
	c.prober = adapters.NewHTTPReachabilityProber(c.config.Runtime.MirrorURL, c.config.Runtime.ProbeTimeout)
}

func (c *Container) initializeServices() {
	timeout := c.config.Runtime.CommandTimeout

	c.serviceManager = services.NewRCServiceManager(c.commandExecutor, c.logger, timeout)
	c.packageManager = services.NewPkgManager(c.commandExecutor, c.logger, timeout, c.config.Runtime.PkgJobs)
	c.userManager = services.NewPWUserManager(c.commandExecutor, c.logger, timeout)
	c.backupService = services.NewFileBackupService(c.fileSystem, c.clock, c.logger, c.config.Paths.BackupDir)
	c.routeDetector = network.NewDefaultRouteDetector(c.commandExecutor, c.logger, timeout)

	c.pfConfigurator = firewall.NewPFConfigurator(
		c.fileSystem,
		c.backupService,
		c.serviceManager,
		c.commandExecutor,
		c.logger,
		c.config.Paths.PFConfig,
	)
	c.caddyConfigurator = proxy.NewCaddyConfigurator(
		c.fileSystem,
		c.backupService,
		c.serviceManager,
		c.logger,
		c.config.Paths.Caddyfile,
	)
}

// initializeSteps builds the pipeline in its fixed execution order.
// Packages come first (later steps need the tools they install), the user
// before anything writing into its home, the firewall before the services
// it exposes.
func (c *Container) initializeSteps() {
	cfg := c.config

	c.preflight = steps.NewPreflight(c.privileges, c.prober, c.logger)

	c.pipeline = []interfaces.Step{
		steps.NewBootstrapPackagesStep(c.packageManager, c.logger, cfg.Packages),
		steps.NewCreateUserStep(
			c.userManager, c.fileSystem, c.backupService, c.logger,
			cfg.User.Name, cfg.User.Shell, cfg.User.InitialPassword,
		),
		steps.NewSetTimezoneStep(c.fileSystem, c.logger, cfg.Timezone),
		steps.NewFetchDotfilesStep(
			c.commandExecutor, c.fileSystem, c.logger,
			cfg.User.DotfilesRepo, cfg.Paths.StagingDir,
		),
		steps.NewConfigureShellStep(
			c.fileSystem, c.backupService, c.userManager, c.logger,
			cfg.User.Name, cfg.Paths.StagingDir,
		),
		steps.NewHardenSSHStep(
			c.fileSystem, c.backupService, c.serviceManager, c.logger,
			cfg.Paths.SSHDConfig, cfg.SSH.PasswordAuthentication,
		),
		steps.NewConfigureFirewallStep(
			c.routeDetector, c.pfConfigurator, c.logger,
			cfg.Firewall.TCPPorts, cfg.Firewall.UDPPorts,
		),
		steps.NewDeployProxyStep(c.caddyConfigurator, c.logger, proxy.Site{
			Hostnames:   cfg.Proxy.Hostnames,
			BackendPort: cfg.Proxy.BackendPort,
			AdminEmail:  cfg.Proxy.AdminEmail,
		}),
		steps.NewEnableMediaServiceStep(c.serviceManager, c.logger),
		steps.NewConfigurePeriodicStep(c.fileSystem, c.backupService, c.serviceManager, c.logger),
	}

	c.runner = pipeline.NewRunner(c.logger, c.clock)
}

// GetConfig returns the loaded configuration.
func (c *Container) GetConfig() *config.Config {
	return c.config
}

// GetPreflight returns the environment check.
func (c *Container) GetPreflight() *steps.Preflight {
	return c.preflight
}

// GetSteps returns the pipeline steps in execution order.
func (c *Container) GetSteps() []interfaces.Step {
	return c.pipeline
}

// GetRunner returns the pipeline runner.
func (c *Container) GetRunner() *pipeline.Runner {
	return c.runner
}

// GetFileSystem returns the filesystem adapter.
func (c *Container) GetFileSystem() interfaces.FileSystem {
	return c.fileSystem
}

// GetCommandExecutor returns the command executor adapter.
func (c *Container) GetCommandExecutor() interfaces.CommandExecutor {
	return c.commandExecutor
}

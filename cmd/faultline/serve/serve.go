// Package servecmder provides the serve command for running the faultline
// API server.
package servecmder

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/faultlinehq/faultline/api"
	"github.com/faultlinehq/faultline/pkg/config"
	"github.com/faultlinehq/faultline/pkg/diagnose"
	"github.com/faultlinehq/faultline/pkg/kb"
	"github.com/faultlinehq/faultline/pkg/logger"
)

type ServeCommander struct {
	listen       string
	forwardPath  string
	backwardPath string
	debug        bool
	logger       *zap.Logger
}

const serveLongDesc string = `Run the faultline diagnosis API server.

The server loads both rule sets once at startup and serves diagnoses over
HTTP. Rule sets default to the builtin knowledge base; point the rule flags
at YAML files to serve a custom one.

Configuration precedence: flags > FAULTLINE_* environment variables >
config.toml > defaults.`

const serveShortDesc string = "Run the faultline API server"

func NewServeCmd() *cobra.Command {
	cmder := &ServeCommander{}
	fs := config.DefaultFlagSet()

	cmd := &cobra.Command{
		Use:   "serve",
		Short: serveShortDesc,
		Long:  serveLongDesc,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var err error
			cmder.debug, err = cmd.Flags().GetBool("debug")
			if err != nil {
				return fmt.Errorf("could not get debug flag: %v", err)
			}

			configDir, _ := cmd.Flags().GetString("config-dir")
			v, err := config.InitViper(configDir)
			if err != nil {
				return err
			}

			config.BindRegisteredFlags(v, cmd, fs, []string{
				config.FlagAPIListen,
				config.FlagForwardRules,
				config.FlagBackwardRules,
			})

			cmder.listen = v.GetString("api.listen")
			cmder.forwardPath = v.GetString("rules.forward_path")
			cmder.backwardPath = v.GetString("rules.backward_path")

			return cmder.run()
		},
	}

	config.AddStringFlag(cmd, fs, config.FlagAPIListen, &cmder.listen)
	config.AddStringFlag(cmd, fs, config.FlagForwardRules, &cmder.forwardPath)
	config.AddStringFlag(cmd, fs, config.FlagBackwardRules, &cmder.backwardPath)

	return cmd
}

func (c *ServeCommander) run() error {
	c.logger = logger.NewLogger(c.debug)
	defer c.logger.Sync()

	forward, backward, err := kb.Resolve(c.forwardPath, c.backwardPath)
	if err != nil {
		return err
	}

	c.logger.Info("loaded rule sets",
		zap.Int("forward_rules", forward.Len()),
		zap.Int("backward_rules", backward.Len()),
	)

	svc := diagnose.NewService(forward, backward)

	server := api.NewServer(api.Config{ListenAddr: c.listen}, svc, c.logger)

	// Channel to capture the server error
	errChan := make(chan error, 1)

	go func() {
		if err := server.Run(); err != nil {
			errChan <- fmt.Errorf("API server error: %w", err)
		}
	}()

	// Wait for interrupt signal or error
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		return err
	case sig := <-sigChan:
		c.logger.Info("received signal, shutting down", zap.String("signal", sig.String()))
		return server.Shutdown()
	}
}

package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/resume-scorer/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the scoring and matching HTTP API",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		serve(cmd)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().IntP("port", "p", server.DefaultPort, "port to listen on")

	viper.BindPFlag("server.port", serveCmd.Flags().Lookup("port"))
}

func serve(cmd *cobra.Command) {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	config, log := setup()

	scorer, err := newScorer(config)
	if err != nil {
		log.Fatal("creating a scorer", zap.Error(err))
	}

	matcher, err := newMatcher(config)
	if err != nil {
		log.Fatal("creating a matcher", zap.Error(err))
	}

	srv, err := server.New(config.Server, server.Deps{
		Scorer:   scorer,
		Matcher:  matcher,
		Rewriter: optionalRewriter(ctx, config, log),
		Logger:   log,
	})
	if err != nil {
		log.Fatal("creating a server", zap.Error(err))
	}

	log.Info("starting the resume-scorer api", zap.String("version", version))

	if err := srv.Run(ctx); err != nil {
		log.Fatal("serving", zap.Error(err))
	}
}

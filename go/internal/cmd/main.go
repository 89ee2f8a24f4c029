package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/jonboulle/clockwork"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"github.com/mcdev12/scoreboard/go/clients/scoreboard_client"
	"github.com/mcdev12/scoreboard/go/internal/catalog"
	"github.com/mcdev12/scoreboard/go/internal/console"
	"github.com/mcdev12/scoreboard/go/internal/live"
	"github.com/mcdev12/scoreboard/go/internal/render"
	"github.com/mcdev12/scoreboard/go/internal/session"
	"github.com/mcdev12/scoreboard/go/internal/viewer"
	"github.com/mcdev12/scoreboard/go/internal/viewstate"
)

func main() {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Debug().Err(err).Msg("could not load .env file")
	}

	// Logs go to stderr so they don't interleave with the board on stdout
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	app := &cli.App{
		Name:  "scoreboard",
		Usage: "follow a game's play-by-play live",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "path to a YAML config file",
				EnvVars: []string{"SCOREBOARD_CONFIG"},
			},
			&cli.StringFlag{
				Name:  "base-url",
				Usage: "scoreboard service base URL",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "trace, debug, info, warn or error",
			},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal().Err(err).Msg("scoreboard viewer failed")
	}
}

func run(c *cli.Context) error {
	config, err := loadConfig(c.String("config"))
	if err != nil {
		return err
	}
	config.applyEnv()
	if c.IsSet("base-url") {
		config.BaseURL = c.String("base-url")
	}
	if c.IsSet("log-level") {
		config.LogLevel = c.String("log-level")
	}
	if err := config.validate(); err != nil {
		return err
	}

	level, _ := zerolog.ParseLevel(config.LogLevel)
	zerolog.SetGlobalLevel(level)

	log.Info().
		Str("base_url", config.BaseURL).
		Str("log_level", config.LogLevel).
		Msg("starting scoreboard viewer")

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	client := scoreboard_client.NewScoreboardClient(config.BaseURL)
	client.SetTimeout(config.RequestTimeout)

	out := console.New(os.Stdout)
	sports := out.NewSelector("sport")
	games := out.NewSelector("game")

	view := viewstate.NewController()
	view.Subscribe(out.ShowState)

	board := render.NewBoard(clockwork.NewRealClock(), out)
	dialer := live.NewDialer(config.BaseURL, config.liveConfig())

	manager := session.NewManager(client, dialer, board, view, out)
	go manager.Run(ctx)

	loader := catalog.NewLoader(client, sports, games)
	v := viewer.New(loader, manager, view, out)

	// Failures are already shown as notices; the shell can retry with "sports"
	if err := v.Start(ctx); err != nil {
		log.Debug().Err(err).Msg("initial sport list failed")
	}

	shell := console.NewShell(out, v, sports, games, board)
	runErr := shell.Run(ctx, os.Stdin)

	// Stopping the manager closes any open live channel
	stop()
	<-manager.Done()

	if runErr != nil && ctx.Err() == nil {
		return runErr
	}
	log.Info().Msg("scoreboard viewer stopped")
	return nil
}

// Compile-time checks that the concrete pieces satisfy the seams between
// packages.
var (
	_ session.GameFetcher   = (*scoreboard_client.ScoreboardClient)(nil)
	_ session.ChannelOpener = (*live.Dialer)(nil)
	_ session.Renderer      = (*render.Board)(nil)
	_ session.ViewState     = (*viewstate.Controller)(nil)
	_ session.Notifier      = (*console.Console)(nil)
	_ catalog.Source        = (*scoreboard_client.ScoreboardClient)(nil)
	_ catalog.Selector      = (*console.Selector)(nil)
	_ render.Display        = (*console.Console)(nil)
	_ viewer.Catalog        = (*catalog.Loader)(nil)
	_ viewer.Games          = (*session.Manager)(nil)
	_ viewer.ViewState      = (*viewstate.Controller)(nil)
	_ console.Viewer        = (*viewer.Viewer)(nil)
)

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/utakatalp/league-dashboard/internal/api"
	"github.com/utakatalp/league-dashboard/internal/config"
	"github.com/utakatalp/league-dashboard/internal/fixtures"
	"github.com/utakatalp/league-dashboard/internal/league"
	"github.com/utakatalp/league-dashboard/internal/logger"
	"github.com/utakatalp/league-dashboard/internal/store"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// app holds what every subcommand needs after configuration is loaded.
type app struct {
	v   *viper.Viper
	cfg *config.Config
}

func newRootCmd() *cobra.Command {
	a := &app{v: config.New()}
	var cfgFile string

	root := &cobra.Command{
		Use:           "league",
		Short:         "League dashboard: standings, results, leaderboards and knockout bracket",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cfgFile != "" {
				a.v.SetConfigFile(cfgFile)
			}
			cfg, err := config.Load(a.v)
			if err != nil {
				return err
			}
			a.cfg = cfg
			logger.InitWriter(cmd.ErrOrStderr(), cfg.Log.Level)
			return nil
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default league.yaml in . or ./config)")
	flags.String("driver", config.DriverFile, "data source: file, sqlite or postgres")
	flags.String("data-dir", "data", "directory holding the fixture JSON files")
	flags.String("dsn", "", "database connection string for sqlite or postgres")
	flags.Bool("head-to-head", false, "rank teams level on points by their mutual results")
	a.v.BindPFlag("data.driver", flags.Lookup("driver"))
	a.v.BindPFlag("data.dir", flags.Lookup("data-dir"))
	a.v.BindPFlag("data.dsn", flags.Lookup("dsn"))
	a.v.BindPFlag("standings.head_to_head", flags.Lookup("head-to-head"))

	root.AddCommand(
		a.serveCmd(),
		a.tableCmd(),
		a.leadersCmd("scorers", "Print the top-scorer leaderboard", league.TopScorers),
		a.leadersCmd("cards", "Print the disciplinary leaderboard", league.TopCards),
		a.bracketCmd(),
		a.seedCmd(),
	)
	return root
}

func (a *app) options() league.Options {
	return league.Options{HeadToHead: a.cfg.Standings.HeadToHead}
}

// source builds the configured fixture source. The returned close function
// is never nil.
func (a *app) source() (fixtures.Source, func(), error) {
	switch a.cfg.Data.Driver {
	case config.DriverSQLite, config.DriverPostgres:
		s, err := store.NewStore(a.cfg.Data.Driver, a.cfg.Data.DSN)
		if err != nil {
			return nil, func() {}, err
		}
		return s, func() { s.Close() }, nil
	default:
		return fixtures.NewFileSource(a.cfg.Data.Dir), func() {}, nil
	}
}

func (a *app) load(ctx context.Context) (*fixtures.Dataset, error) {
	src, closeSrc, err := a.source()
	defer closeSrc()
	if err != nil {
		return nil, err
	}
	return src.Load(ctx)
}

func (a *app) serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the dashboard JSON API",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			data, err := a.load(ctx)
			if err != nil {
				return err
			}
			handler := api.NewRouter(api.NewHandlers(data, a.options()), a.cfg.HTTP.CORSOrigins)
			srv := &http.Server{
				Addr:              a.cfg.HTTP.Addr,
				Handler:           handler,
				ReadHeaderTimeout: 5 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() {
				logger.Info("Server started", "addr", srv.Addr)
				errCh <- srv.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if !errors.Is(err, http.ErrServerClosed) {
					return fmt.Errorf("serving: %w", err)
				}
				return nil
			case <-ctx.Done():
			}

			logger.Info("Shutting down server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	}
	cmd.Flags().String("addr", ":8080", "listen address")
	a.v.BindPFlag("http.addr", cmd.Flags().Lookup("addr"))
	return cmd
}

func (a *app) tableCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "table [group]",
		Short: "Print group standings",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := a.load(cmd.Context())
			if err != nil {
				return err
			}
			groups := data.Standings(a.options())
			if len(args) == 1 {
				g, ok := league.FindGroup(groups, args[0])
				if !ok {
					return fmt.Errorf("group %q not found", args[0])
				}
				groups = []league.Group{g}
			}
			out := cmd.OutOrStdout()
			for i, g := range groups {
				if i > 0 {
					fmt.Fprintln(out)
				}
				league.PrintTable(out, "Group "+g.Name, g.Table)
			}
			return nil
		},
	}
}

func (a *app) leadersCmd(use, short string, board func([]league.Team, []league.Match) []league.Leader) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := a.load(cmd.Context())
			if err != nil {
				return err
			}
			printLeaders(cmd.OutOrStdout(), board(data.Teams, data.Matches))
			return nil
		},
	}
}

func printLeaders(w io.Writer, rows []league.Leader) {
	if len(rows) == 0 {
		fmt.Fprintln(w, "Nothing recorded yet.")
		return
	}
	for i, r := range rows {
		fmt.Fprintf(w, "%3d %-24s %-20s %3d\n", i+1, r.Player, r.Team, r.Tally)
	}
}

func (a *app) bracketCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "bracket",
		Short: "Print the knockout bracket seeded from the standings",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := a.load(cmd.Context())
			if err != nil {
				return err
			}
			br := league.DeriveBracket(data.Standings(a.options()))
			out := cmd.OutOrStdout()
			printTies := func(title string, ties []league.Tie) {
				fmt.Fprintln(out, title)
				for _, t := range ties {
					fmt.Fprintf(out, "  %-4s %-20s vs %s\n", t.ID, t.Home.Name, t.Away.Name)
				}
			}
			printTies("Playoffs", br.Supplements[:])
			printTies("Quarterfinals", br.Quarterfinals[:])
			printTies("Semifinals", br.Semifinals[:])
			printTies("Final", []league.Tie{br.Final})
			return nil
		},
	}
}

func (a *app) seedCmd() *cobra.Command {
	var from string
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Import fixture JSON files into the configured database",
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.cfg.Data.Driver == config.DriverFile {
				return errors.New("seed needs --driver sqlite or postgres")
			}
			ctx := cmd.Context()
			data, err := fixtures.NewFileSource(from).Load(ctx)
			if err != nil {
				return err
			}
			s, err := store.NewStore(a.cfg.Data.Driver, a.cfg.Data.DSN)
			if err != nil {
				return err
			}
			defer s.Close()
			if err := s.Migrate(ctx); err != nil {
				return err
			}
			return s.Import(ctx, data)
		},
	}
	cmd.Flags().StringVar(&from, "from", "data", "directory holding the fixture JSON files")
	return cmd
}

package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/mobil-koeln/gomate/internal/bridge"
	"github.com/mobil-koeln/gomate/internal/config"
	"github.com/mobil-koeln/gomate/internal/models"
	"github.com/mobil-koeln/gomate/internal/output"
	"github.com/mobil-koeln/gomate/internal/tui"
	"github.com/mobil-koeln/gomate/internal/views"
)

var version = "0.1.0"

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		cancel()
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "gomate",
	Short: "London transport line status in the terminal",
	Long: `gomate shows live line status for London tube, bus and train lines,
simulated arrivals per line, favorites and a signed-in profile.

When the live feed cannot be reached, a built-in offline snapshot is shown.

Quick Start:
  1. Launch TUI:            gomate (or gomate tui)
  2. Show line status:      gomate status
  3. Only delayed tubes:    gomate status --modes tube --search central
  4. Show arrivals:         gomate arrivals victoria
  5. Sign in:               gomate login emilys --password emilyspass
  6. Serve the HTTP API:    gomate serve --addr 127.0.0.1:8787`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		// If no subcommand is provided, launch TUI
		if len(args) == 0 {
			return runTUI(cmd, args)
		}
		return cmd.Help()
	},
}

// Global flags
var (
	flagConfig   string
	flagJSON     bool
	flagColor    string
	flagStore    string
	flagDataDir  string
	flagLogLevel string
)

// Command flags
var (
	flagModes     []string
	flagSearch    string
	flagFavorites bool
	flagPassword  string
	flagAddr      string
)

func init() {
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(arrivalsCmd)
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)
	rootCmd.AddCommand(favoritesCmd)
	rootCmd.AddCommand(themeCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(tuiCmd)

	favoritesCmd.AddCommand(favoritesListCmd)
	favoritesCmd.AddCommand(favoritesToggleCmd)
	themeCmd.AddCommand(themeToggleCmd)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file (default ~/.config/gomate/config.toml)")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "Output as JSON")
	rootCmd.PersistentFlags().StringVar(&flagColor, "color", "auto", "Color output: auto, always, never")
	rootCmd.PersistentFlags().StringVar(&flagStore, "store", "", "Storage backend: file, sqlite, memory")
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "Directory for persisted data")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")

	statusCmd.Flags().StringSliceVarP(&flagModes, "modes", "m", nil, "Transport modes (tube,bus,train)")
	statusCmd.Flags().StringVarP(&flagSearch, "search", "s", "", "Filter lines by name")
	statusCmd.Flags().BoolVarP(&flagFavorites, "favorites", "f", false, "Only show favorite lines")

	loginCmd.Flags().StringVarP(&flagPassword, "password", "p", "", "Password (or set GOMATE_PASSWORD)")

	serveCmd.Flags().StringVar(&flagAddr, "addr", "", "Listen address (default from config)")
}

// getColorMode returns the color mode based on flag
func getColorMode() output.ColorMode {
	return output.ParseColorMode(flagColor)
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show line status",
	Long: `Fetch and show the current status of every line.

Examples:
  gomate status                       # Default modes (tube, bus, train)
  gomate status --modes tube          # Only tube lines
  gomate status --search "elizabeth"  # Filter by name
  gomate status --favorites           # Only favorite lines
  gomate status --json                # Lines as JSON`,
	Args: cobra.NoArgs,
	RunE: runStatus,
}

var arrivalsCmd = &cobra.Command{
	Use:   "arrivals <line-id>",
	Short: "Show upcoming arrivals for a line",
	Long: `Show simulated upcoming arrivals for a line, soonest first.

Example:
  gomate arrivals victoria
  gomate arrivals 73 --json`,
	Args: cobra.ExactArgs(1),
	RunE: runArrivals,
}

var loginCmd = &cobra.Command{
	Use:   "login <username>",
	Short: "Sign in",
	Long: `Sign in and keep the session for later commands.

The password is read from --password or the GOMATE_PASSWORD environment
variable.

Example:
  gomate login emilys --password emilyspass`,
	Args: cobra.ExactArgs(1),
	RunE: runLogin,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out and forget the stored session",
	Args:  cobra.NoArgs,
	RunE:  runLogout,
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in user",
	Args:  cobra.NoArgs,
	RunE:  runWhoami,
}

var favoritesCmd = &cobra.Command{
	Use:   "favorites",
	Short: "List or toggle favorite lines",
	Args:  cobra.NoArgs,
	RunE:  runFavoritesList,
}

var favoritesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List favorite lines",
	Args:  cobra.NoArgs,
	RunE:  runFavoritesList,
}

var favoritesToggleCmd = &cobra.Command{
	Use:   "toggle <line-id>",
	Short: "Add a line to favorites, or remove it",
	Args:  cobra.ExactArgs(1),
	RunE:  runFavoritesToggle,
}

var themeCmd = &cobra.Command{
	Use:   "theme",
	Short: "Show the current theme",
	Args:  cobra.NoArgs,
	RunE:  runTheme,
}

var themeToggleCmd = &cobra.Command{
	Use:   "toggle",
	Short: "Switch between light and dark mode",
	Args:  cobra.NoArgs,
	RunE:  runThemeToggle,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the JSON HTTP API",
	Long: `Serve the application state and actions over HTTP.

Routes:
  GET    /state               Full state snapshot
  POST   /transport/fetch     Fetch line status (?modes=tube,bus)
  GET    /arrivals/{lineID}   Fetch arrivals for a line
  DELETE /arrivals            Clear arrivals
  POST   /auth/login          {"username": "...", "password": "..."}
  POST   /auth/logout
  POST   /favorites/toggle    {"id": "..."}
  PUT    /search              {"query": "..."}
  POST   /theme/toggle
  GET    /health`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch interactive full-screen TUI",
	Long: `Launch an interactive full-screen terminal UI.

Keyboard:
  j/k or arrows  Navigate lines
  Enter          Show arrivals for the selected line
  Esc            Go back
  /              Search lines
  f              Toggle favorite
  r              Refresh
  t              Toggle theme
  a              Toggle auto-refresh
  q              Quit`,
	Args: cobra.NoArgs,
	RunE: runTUI,
}

func runStatus(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	return withApp(ctx, func(a *app) error {
		modes := splitModes(flagModes)
		if len(modes) == 0 {
			modes = a.cfg.Modes
		}

		transport, err := a.container.FetchTransportData(ctx, modes)
		if err != nil {
			return fmt.Errorf("failed to fetch line status: %w", err)
		}

		lines := views.FilterByQuery(transport.Items, flagSearch)
		if flagFavorites {
			lines = onlyFavorites(lines, transport.Favorites)
		}

		if flagJSON {
			return printJSON(os.Stdout, lines)
		}

		colors := output.NewColors(getColorMode())
		opts := output.TableOptions{Colors: colors, Favorites: transport.Favorites, ShowReason: true}

		output.RenderSummary(os.Stdout, views.Summarize(lines), opts)
		if transport.Source == "fallback" {
			_, _ = fmt.Fprintln(os.Stdout, colors.Muted("Live feed unavailable, showing offline data."))
		}
		_, _ = fmt.Fprintln(os.Stdout)
		output.RenderLines(os.Stdout, lines, opts)
		return nil
	})
}

// onlyFavorites keeps the lines that are in favorites
func onlyFavorites(lines, favorites []models.LineStatus) []models.LineStatus {
	out := make([]models.LineStatus, 0, len(lines))
	for _, l := range lines {
		if views.IsFavorite(favorites, l.ID) {
			out = append(out, l)
		}
	}
	return out
}

func runArrivals(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	lineID := strings.TrimSpace(args[0])
	if lineID == "" {
		return errors.New("line id must not be empty")
	}

	return withApp(ctx, func(a *app) error {
		arrivals, err := a.container.FetchArrivals(ctx, lineID)
		if err != nil {
			return fmt.Errorf("failed to fetch arrivals: %w", err)
		}

		if flagJSON {
			return printJSON(os.Stdout, arrivals)
		}

		output.RenderArrivals(os.Stdout, lineID, arrivals, output.TableOptions{
			Colors: output.NewColors(getColorMode()),
		})
		return nil
	})
}

func runLogin(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	password := flagPassword
	if password == "" {
		password = os.Getenv("GOMATE_PASSWORD")
	}

	return withApp(ctx, func(a *app) error {
		auth, err := a.container.Login(ctx, args[0], password)
		if err != nil {
			if auth.Error != "" {
				return fmt.Errorf("login failed: %s", auth.Error)
			}
			return fmt.Errorf("login failed: %w", err)
		}
		if !auth.IsAuthenticated {
			a.logger.Warn("signed in without a token, session will not be restored")
		}

		if flagJSON {
			return printJSON(os.Stdout, auth)
		}
		output.RenderProfile(os.Stdout, auth.User, output.TableOptions{
			Colors: output.NewColors(getColorMode()),
		})
		return nil
	})
}

func runLogout(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	return withApp(ctx, func(a *app) error {
		a.container.Logout(ctx)
		_, _ = fmt.Fprintln(os.Stdout, "Logged out.")
		return nil
	})
}

func runWhoami(cmd *cobra.Command, _ []string) error {
	return withApp(cmd.Context(), func(a *app) error {
		auth := a.container.Snapshot().Auth
		if flagJSON {
			return printJSON(os.Stdout, auth)
		}
		output.RenderProfile(os.Stdout, auth.User, output.TableOptions{
			Colors: output.NewColors(getColorMode()),
		})
		return nil
	})
}

func runFavoritesList(cmd *cobra.Command, _ []string) error {
	return withApp(cmd.Context(), func(a *app) error {
		favorites := a.container.Snapshot().Transport.Favorites
		if flagJSON {
			return printJSON(os.Stdout, favorites)
		}
		if len(favorites) == 0 {
			_, _ = fmt.Fprintln(os.Stdout, "No favorites yet. Add one with 'gomate favorites toggle <line-id>'.")
			return nil
		}
		output.RenderLines(os.Stdout, favorites, output.TableOptions{
			Colors:    output.NewColors(getColorMode()),
			Favorites: favorites,
		})
		return nil
	})
}

func runFavoritesToggle(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	lineID := strings.TrimSpace(args[0])

	return withApp(ctx, func(a *app) error {
		snap := a.container.Snapshot()

		// Removing a favorite must work even when the line is no longer listed
		line, ok := models.FindLine(snap.Transport.Favorites, lineID)
		if !ok {
			transport, err := a.container.FetchTransportData(ctx, a.cfg.Modes)
			if err != nil {
				return fmt.Errorf("failed to fetch line status: %w", err)
			}
			line, ok = models.FindLine(transport.Items, lineID)
			if !ok {
				return fmt.Errorf("unknown line %q", lineID)
			}
		}

		favorites := a.container.ToggleFavorite(line)
		if flagJSON {
			return printJSON(os.Stdout, favorites)
		}

		if views.IsFavorite(favorites, line.ID) {
			_, _ = fmt.Fprintf(os.Stdout, "Added %s to favorites.\n", line.Name)
		} else {
			_, _ = fmt.Fprintf(os.Stdout, "Removed %s from favorites.\n", line.Name)
		}
		return nil
	})
}

func themeName(dark bool) string {
	if dark {
		return "dark"
	}
	return "light"
}

func runTheme(cmd *cobra.Command, _ []string) error {
	return withApp(cmd.Context(), func(a *app) error {
		theme := a.container.Snapshot().Theme
		if flagJSON {
			return printJSON(os.Stdout, theme)
		}
		_, _ = fmt.Fprintln(os.Stdout, themeName(theme.IsDarkMode))
		return nil
	})
}

func runThemeToggle(cmd *cobra.Command, _ []string) error {
	return withApp(cmd.Context(), func(a *app) error {
		dark := a.container.ToggleTheme()
		if flagJSON {
			return printJSON(os.Stdout, map[string]bool{"isDarkMode": dark})
		}
		_, _ = fmt.Fprintf(os.Stdout, "Theme set to %s.\n", themeName(dark))
		return nil
	})
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	a, err := newApp(ctx, os.Stderr)
	if err != nil {
		return err
	}
	defer a.close()

	addr := flagAddr
	if addr == "" {
		addr = a.cfg.Addr
	}

	srv := bridge.NewServer(a.container,
		bridge.WithModes(a.cfg.Modes),
		bridge.WithAllowedOrigins(a.cfg.AllowedOrigins),
		bridge.WithLogger(a.logger),
	).HTTPServer(addr)

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("serving", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	a.logger.Info("shutting down")
	return srv.Shutdown(shutdownCtx)
}

func runTUI(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	// The alternate screen owns the terminal, so logs go to a file or nowhere
	var logOut io.Writer = io.Discard
	if path := os.Getenv("GOMATE_LOG_FILE"); path != "" {
		f, err := tea.LogToFile(path, "gomate")
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		defer func() { _ = f.Close() }()
		logOut = f
	}

	a, err := newApp(ctx, logOut)
	if err != nil {
		return err
	}
	defer a.close()

	model := tui.New(ctx, a.container, a.cfg.Modes)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err = p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}

// splitModes accepts both repeated and comma-separated --modes values
func splitModes(values []string) []string {
	return config.SplitList(strings.Join(values, ","))
}

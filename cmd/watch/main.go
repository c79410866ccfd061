package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"golang-stock-dashboard/internal/entity"
	"golang-stock-dashboard/internal/watch"
	"golang-stock-dashboard/pkg/logger"
	"golang-stock-dashboard/pkg/telegram"

	"github.com/spf13/cobra"
)

var (
	apiBaseURL    string
	profileDB     string
	chartPath     string
	pollInterval  time.Duration
	logLevel      string
	telegramToken string
	telegramChat  int64
	alertMove     float64
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Interactive terminal client for the dashboard service",
	Run:   runWatch,
}

func runWatch(cmd *cobra.Command, args []string) {
	appLogger, err := logger.New(logLevel, "console")
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = appLogger.Sync() }()

	store, err := watch.OpenProfileStore(profileDB, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to open profile store", logger.ErrorField(err))
	}
	defer store.Close()

	api := watch.NewClient(apiBaseURL, 15*time.Second)
	view := watch.NewTerminalView(os.Stdout, chartPath, appLogger)

	searchOpts := []watch.SearchOption{watch.WithPollInterval(pollInterval)}
	if telegramToken != "" && telegramChat != 0 {
		notifier, err := telegram.NewClient(telegramToken, telegramChat)
		if err != nil {
			appLogger.Fatal("Failed to initialize Telegram notifier", logger.ErrorField(err))
		}
		searchOpts = append(searchOpts, watch.WithPriceAlerts(notifier, alertMove))
	}

	searchCtrl := watch.NewSearchController(api, view, appLogger, searchOpts...)
	defer searchCtrl.StopPoll()

	suggestCtrl := watch.NewSuggestController(api, appLogger,
		view.ShowSuggestions,
		func(symbol string) {
			searchCtrl.Search(context.Background(), symbol)
		})
	panel := watch.NewRecommendationPanel(api, store, view, appLogger)

	fmt.Println("Type a symbol to search. Commands: :down :up :esc :rec :profile <budget> <risk> <timeline> :stop :quit")

	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case line == ":quit" || line == ":q":
			return
		case line == ":down":
			suggestCtrl.Navigate(watch.Down)
		case line == ":up":
			suggestCtrl.Navigate(watch.Up)
		case line == ":esc":
			suggestCtrl.Escape()
		case line == ":stop":
			searchCtrl.StopPoll()
		case line == ":rec":
			panel.Request(context.Background())
		case strings.HasPrefix(line, ":profile"):
			saveProfile(store, view, line)
		case line == "":
			suggestCtrl.Enter()
		default:
			suggestCtrl.Input(line)
		}
	}
	if err := scanner.Err(); err != nil {
		appLogger.Error("Input closed", logger.ErrorField(err))
	}
}

// saveProfile parses ":profile <budget> <risk> <timeline>" and stores it.
// Bad fields fall back to their defaults.
func saveProfile(store *watch.ProfileStore, view *watch.TerminalView, line string) {
	fields := strings.Fields(line)
	profile := store.Load()
	if len(fields) > 1 {
		if budget, err := strconv.ParseInt(fields[1], 10, 64); err == nil {
			profile.Budget = budget
		}
	}
	if len(fields) > 2 {
		profile.RiskTolerance = entity.RiskTolerance(fields[2])
	}
	if len(fields) > 3 {
		profile.Timeline = entity.Timeline(fields[3])
	}
	profile = profile.Normalized()

	if err := store.Save(profile); err != nil {
		view.ShowError(fmt.Sprintf("Failed to save profile: %v", err))
		return
	}
	view.ShowMessage(fmt.Sprintf("Profile saved: budget %d, risk %s, timeline %s",
		profile.Budget, profile.RiskTolerance, profile.Timeline))
}

func main() {
	rootCmd := &cobra.Command{Use: "watch"}

	watchCmd.Flags().StringVar(&apiBaseURL, "api", "http://localhost:8080", "Dashboard service base URL")
	watchCmd.Flags().StringVar(&profileDB, "profile-db", "watch.db", "Path to the local profile database")
	watchCmd.Flags().StringVar(&chartPath, "chart", "chart.png", "Path the price chart PNG is written to (empty disables)")
	watchCmd.Flags().DurationVar(&pollInterval, "poll-interval", watch.DefaultPollInterval, "How often the active symbol is refreshed")
	watchCmd.Flags().StringVar(&logLevel, "log-level", "warn", "Log level")
	watchCmd.Flags().StringVar(&telegramToken, "telegram-token", "", "Telegram bot token for price alerts (empty disables)")
	watchCmd.Flags().Int64Var(&telegramChat, "telegram-chat", 0, "Telegram chat ID price alerts are sent to")
	watchCmd.Flags().Float64Var(&alertMove, "alert-move", 2.0, "Price move percent that triggers an alert")

	rootCmd.AddCommand(watchCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing watch CLI: %s\n", err)
		os.Exit(1)
	}
}

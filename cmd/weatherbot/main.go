package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/radiowx/weatherbot/internal/bot"
	"github.com/radiowx/weatherbot/internal/config"
	"github.com/radiowx/weatherbot/internal/imagery"
	"github.com/radiowx/weatherbot/internal/location"
	"github.com/radiowx/weatherbot/internal/logger"
	"github.com/radiowx/weatherbot/internal/mattermost"
	"github.com/radiowx/weatherbot/internal/meteo"
	"github.com/radiowx/weatherbot/internal/report"
)

func main() {
	var (
		configFile string
		debug      bool
	)

	rootCmd := &cobra.Command{
		Use:   "weatherbot",
		Short: "Weather lookup bot for Mattermost",
		Long: `A bot that answers direct messages with weather reports.

Send it a city name, a latitude,longitude pair, or an MGRS grid
reference and it replies with current conditions, forecasts, or air
quality from the Open-Meteo APIs. US locations also get the latest
GOES satellite image.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(configFile, debug)
		},
	}

	rootCmd.Flags().StringVarP(&configFile, "config", "c", "", "path to config file")
	rootCmd.Flags().BoolVar(&debug, "debug", false, "enable debug logging")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(configFile string, debug bool) error {
	cfg, err := config.Load(configFile)
	if err != nil {
		return err
	}
	if debug {
		cfg.Debug = true
	}

	log := logger.New(cfg.Debug)

	messenger, err := mattermost.NewClient(cfg.ServerURL, cfg.BotToken, cfg.Username, cfg.Password, log)
	if err != nil {
		return err
	}

	geocoder := location.NewGeocoder(cfg.GeocodingURL, cfg.DataTimeout, log)
	resolver := location.NewResolver(geocoder, log)
	weather := meteo.NewClient(cfg.ForecastURL, cfg.AirQualityURL, cfg.DataTimeout, log)
	fetcher := imagery.NewFetcher(cfg.GOESImageURL, cfg.ImageTimeout, log)

	b := bot.New(resolver, weather, report.NewFormatter(), fetcher, messenger, log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Info("weather bot started")

	err = messenger.Listen(ctx, func(ctx context.Context, destination, sender, message string) {
		b.HandleMessage(ctx, destination, message)
	})
	if err == context.Canceled {
		log.Info("weather bot shutting down")
		return nil
	}
	return err
}

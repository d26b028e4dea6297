// Package bot sequences one inbound message through classification,
// resolution, data fetch, formatting, and reply. Processing is strictly
// sequential and synchronous; a failure anywhere degrades to one of two
// fixed replies and never escapes to the user as a raw error.
package bot

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/radiowx/weatherbot/internal/imagery"
	"github.com/radiowx/weatherbot/internal/location"
	"github.com/radiowx/weatherbot/internal/meteo"
	"github.com/radiowx/weatherbot/internal/report"
)

const (
	replyCouldNotUnderstand = "I couldn't understand that location. Type 'help' for format examples."
	replyCouldNotFetch      = "Sorry, I couldn't fetch the weather for that location."
)

// Bot is the request orchestrator.
type Bot struct {
	resolver  *location.Resolver
	weather   *meteo.Client
	formatter *report.Formatter
	imagery   *imagery.Fetcher
	messenger Messenger
	log       *logrus.Logger
}

func New(resolver *location.Resolver, weather *meteo.Client, formatter *report.Formatter, fetcher *imagery.Fetcher, messenger Messenger, log *logrus.Logger) *Bot {
	return &Bot{
		resolver:  resolver,
		weather:   weather,
		formatter: formatter,
		imagery:   fetcher,
		messenger: messenger,
		log:       log,
	}
}

// HandleMessage processes one inbound message end to end and sends the
// reply. It never returns an error: every failure mode ends in one of the
// fixed replies or, for image fetches, a text-only reply.
func (b *Bot) HandleMessage(ctx context.Context, destination, content string) {
	content = strings.TrimSpace(content)

	if strings.EqualFold(content, "help") {
		b.send(destination, helpText)
		return
	}

	command, locationQuery := parseCommand(content)

	resolved, err := b.resolver.Resolve(ctx, locationQuery)
	if err != nil {
		b.log.WithError(err).WithField("query", locationQuery).Info("location resolution failed")
		b.send(destination, replyCouldNotUnderstand)
		return
	}

	text := b.buildReport(ctx, command, *resolved)
	if text == "" {
		b.send(destination, replyCouldNotFetch)
		return
	}

	if imagery.InCONUS(resolved.Lat, resolved.Lon) {
		b.log.WithFields(logrus.Fields{
			"lat": resolved.Lat,
			"lon": resolved.Lon,
		}).Debug("location is in CONUS, attempting satellite image")

		image, imgErr := b.imagery.Fetch(ctx)
		if imgErr == nil {
			if sendErr := b.messenger.SendTextWithAttachment(destination, text,
				image, imagery.AttachmentName, imagery.AttachmentFormat); sendErr != nil {
				b.log.WithError(sendErr).Error("failed to send reply with attachment")
			}
			return
		}
		// Image failures never block the weather report.
		b.log.WithError(imgErr).Warn("satellite image fetch failed, sending text only")
	}

	b.send(destination, text)
}

// buildReport runs the variant-specific fetch and formatting. An empty
// return means the fetch failed or produced nothing.
func (b *Bot) buildReport(ctx context.Context, command string, loc location.Resolved) string {
	switch command {
	case "brief":
		cw, err := b.weather.CurrentBrief(ctx, loc.Lat, loc.Lon)
		if err != nil {
			b.log.WithError(err).Error("brief weather fetch failed")
			return ""
		}
		return b.formatter.Brief(loc, cw)

	case "hourly":
		hourly, err := b.weather.Hourly(ctx, loc.Lat, loc.Lon)
		if err != nil {
			b.log.WithError(err).Error("hourly forecast fetch failed")
			return ""
		}
		return b.formatter.Hourly(loc, hourly)

	case "forecast":
		daily, err := b.weather.Daily(ctx, loc.Lat, loc.Lon)
		if err != nil {
			b.log.WithError(err).Error("daily forecast fetch failed")
			return ""
		}
		return b.formatter.Daily(loc, daily)

	case "air":
		air, err := b.weather.AirQuality(ctx, loc.Lat, loc.Lon)
		if err != nil {
			b.log.WithError(err).Error("air quality fetch failed")
			return ""
		}
		return b.formatter.AirQuality(loc, air)

	case "detailed":
		return b.buildDetailedReport(ctx, loc)

	default:
		curr, err := b.weather.Current(ctx, loc.Lat, loc.Lon)
		if err != nil {
			b.log.WithError(err).Error("current weather fetch failed")
			return ""
		}
		return b.formatter.Current(loc, curr)
	}
}

// buildDetailedReport fetches every constituent independently; a failed
// constituent is skipped rather than aborting the rest.
func (b *Bot) buildDetailedReport(ctx context.Context, loc location.Resolved) string {
	var currentText, airText, hourlyText, dailyText string

	if curr, err := b.weather.Current(ctx, loc.Lat, loc.Lon); err == nil {
		currentText = b.formatter.Current(loc, curr)
	} else {
		b.log.WithError(err).Warn("detailed report: current section failed")
	}
	if air, err := b.weather.AirQuality(ctx, loc.Lat, loc.Lon); err == nil {
		airText = b.formatter.AirQuality(loc, air)
	} else {
		b.log.WithError(err).Warn("detailed report: air quality section failed")
	}
	if hourly, err := b.weather.Hourly(ctx, loc.Lat, loc.Lon); err == nil {
		hourlyText = b.formatter.Hourly(loc, hourly)
	} else {
		b.log.WithError(err).Warn("detailed report: hourly section failed")
	}
	if daily, err := b.weather.Daily(ctx, loc.Lat, loc.Lon); err == nil {
		dailyText = b.formatter.Daily(loc, daily)
	} else {
		b.log.WithError(err).Warn("detailed report: daily section failed")
	}

	return b.formatter.Detailed(currentText, airText, hourlyText, dailyText)
}

func (b *Bot) send(destination, text string) {
	if err := b.messenger.SendText(destination, text); err != nil {
		b.log.WithError(err).Error("failed to send reply")
	}
}

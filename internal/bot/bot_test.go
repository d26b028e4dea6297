package bot

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/radiowx/weatherbot/internal/imagery"
	"github.com/radiowx/weatherbot/internal/location"
	"github.com/radiowx/weatherbot/internal/meteo"
	"github.com/radiowx/weatherbot/internal/report"
)

type sentText struct {
	dest, text string
}

type sentAttachment struct {
	dest, text, name, format string
	data                     []byte
}

type fakeMessenger struct {
	texts       []sentText
	attachments []sentAttachment
}

func (m *fakeMessenger) SendText(dest, text string) error {
	m.texts = append(m.texts, sentText{dest, text})
	return nil
}

func (m *fakeMessenger) SendTextWithAttachment(dest, text string, image []byte, name, format string) error {
	m.attachments = append(m.attachments, sentAttachment{dest, text, name, format, image})
	return nil
}

// testHarness wires the bot against httptest doubles for every external API.
type testHarness struct {
	bot       *Bot
	messenger *fakeMessenger

	geocodeCalls int
	weatherCalls int
	airCalls     int
	imageCalls   int
}

type harnessOptions struct {
	geocodeBody   string
	weatherStatus int
	imageStatus   int
}

func newHarness(t *testing.T, opts harnessOptions) (*testHarness, func()) {
	t.Helper()

	h := &testHarness{messenger: &fakeMessenger{}}

	if opts.geocodeBody == "" {
		opts.geocodeBody = `{"results":[]}`
	}
	if opts.weatherStatus == 0 {
		opts.weatherStatus = http.StatusOK
	}
	if opts.imageStatus == 0 {
		opts.imageStatus = http.StatusOK
	}

	geocodeSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h.geocodeCalls++
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(opts.geocodeBody))
	}))

	weatherSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h.weatherCalls++
		if opts.weatherStatus != http.StatusOK {
			w.WriteHeader(opts.weatherStatus)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		q := r.URL.Query()
		switch {
		case q.Get("current_weather") == "true":
			w.Write([]byte(`{"current_weather":{"temperature":20.0,"windspeed":10.0,"winddirection":90,"weathercode":0,"is_day":1}}`))
		case q.Get("current") != "":
			w.Write([]byte(`{"current":{"temperature_2m":21.5,"weather_code":2,"relative_humidity_2m":50}}`))
		case q.Get("hourly") != "":
			w.Write([]byte(`{"hourly":{"time":["2026-08-28T00:00"],"temperature_2m":[18.0],"weather_code":[0]}}`))
		case q.Get("daily") != "":
			w.Write([]byte(`{"daily":{"time":["2026-08-28"],"weather_code":[0],"temperature_2m_max":[24.0],"temperature_2m_min":[15.0]}}`))
		default:
			w.Write([]byte(`{}`))
		}
	}))

	airSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h.airCalls++
		if opts.weatherStatus != http.StatusOK {
			w.WriteHeader(opts.weatherStatus)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"current":{"us_aqi":42,"european_aqi":18,"pm2_5":6.0}}`))
	}))

	imageSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h.imageCalls++
		if opts.imageStatus != http.StatusOK {
			w.WriteHeader(opts.imageStatus)
			return
		}
		w.Header().Set("Content-Type", "image/jpeg")
		w.Write([]byte{0xFF, 0xD8, 0xFF})
	}))

	log := logrus.New()
	log.SetOutput(io.Discard)

	timeout := 5 * time.Second
	resolver := location.NewResolver(location.NewGeocoder(geocodeSrv.URL, timeout, log), log)
	weather := meteo.NewClient(weatherSrv.URL, airSrv.URL, timeout, log)
	fetcher := imagery.NewFetcher(imageSrv.URL, timeout, log)

	h.bot = New(resolver, weather, report.NewFormatter(), fetcher, h.messenger, log)

	cleanup := func() {
		geocodeSrv.Close()
		weatherSrv.Close()
		airSrv.Close()
		imageSrv.Close()
	}
	return h, cleanup
}

func TestHandleMessageCoordinatesInCONUS(t *testing.T) {
	h, cleanup := newHarness(t, harnessOptions{})
	defer cleanup()

	h.bot.HandleMessage(context.Background(), "user1", "40.71,-74.01")

	if h.geocodeCalls != 0 {
		t.Errorf("decimal pair should not geocode, saw %d calls", h.geocodeCalls)
	}
	if h.imageCalls != 1 {
		t.Errorf("expected one image fetch for CONUS location, saw %d", h.imageCalls)
	}
	if len(h.messenger.attachments) != 1 {
		t.Fatalf("expected reply with attachment, got %d attachments and %d texts",
			len(h.messenger.attachments), len(h.messenger.texts))
	}

	sent := h.messenger.attachments[0]
	if sent.dest != "user1" {
		t.Errorf("reply went to %q", sent.dest)
	}
	if !strings.Contains(sent.text, "Condition: Partly cloudy") {
		t.Errorf("report missing condition line:\n%s", sent.text)
	}
	if !strings.HasPrefix(sent.text, "Weather for 40.71, -74.01:") {
		t.Errorf("report header should use coordinates:\n%s", sent.text)
	}
	if sent.name != imagery.AttachmentName || sent.format != imagery.AttachmentFormat {
		t.Errorf("unexpected attachment naming: %q %q", sent.name, sent.format)
	}
}

func TestHandleMessageUnknownPlace(t *testing.T) {
	h, cleanup := newHarness(t, harnessOptions{geocodeBody: `{"results":[]}`})
	defer cleanup()

	h.bot.HandleMessage(context.Background(), "user1", "Unknown City Name Xyzabc")

	if len(h.messenger.texts) != 1 {
		t.Fatalf("expected exactly one text reply, got %d", len(h.messenger.texts))
	}
	if h.messenger.texts[0].text != replyCouldNotUnderstand {
		t.Errorf("expected fixed unresolvable reply, got %q", h.messenger.texts[0].text)
	}
	if h.weatherCalls != 0 || h.airCalls != 0 || h.imageCalls != 0 {
		t.Errorf("no weather or image calls expected, saw weather=%d air=%d image=%d",
			h.weatherCalls, h.airCalls, h.imageCalls)
	}
}

func TestHandleMessageOutsideCONUS(t *testing.T) {
	h, cleanup := newHarness(t, harnessOptions{})
	defer cleanup()

	// London: valid coordinates, outside the CONUS box.
	h.bot.HandleMessage(context.Background(), "user1", "51.5,-0.1")

	if h.imageCalls != 0 {
		t.Errorf("no image fetch expected outside CONUS, saw %d", h.imageCalls)
	}
	if len(h.messenger.texts) != 1 || len(h.messenger.attachments) != 0 {
		t.Fatalf("expected one plain text reply, got %d texts %d attachments",
			len(h.messenger.texts), len(h.messenger.attachments))
	}
	if !strings.Contains(h.messenger.texts[0].text, "Condition:") {
		t.Errorf("report missing condition line:\n%s", h.messenger.texts[0].text)
	}
}

func TestHandleMessageWeatherFetchFails(t *testing.T) {
	h, cleanup := newHarness(t, harnessOptions{weatherStatus: http.StatusInternalServerError})
	defer cleanup()

	h.bot.HandleMessage(context.Background(), "user1", "40.71,-74.01")

	if len(h.messenger.texts) != 1 {
		t.Fatalf("expected one text reply, got %d", len(h.messenger.texts))
	}
	if h.messenger.texts[0].text != replyCouldNotFetch {
		t.Errorf("expected fixed fetch-failure reply, got %q", h.messenger.texts[0].text)
	}
	if h.imageCalls != 0 {
		t.Errorf("image fetch should not happen without a report, saw %d", h.imageCalls)
	}
}

func TestHandleMessageImageFailureDegradesToText(t *testing.T) {
	h, cleanup := newHarness(t, harnessOptions{imageStatus: http.StatusServiceUnavailable})
	defer cleanup()

	h.bot.HandleMessage(context.Background(), "user1", "40.71,-74.01")

	if len(h.messenger.attachments) != 0 {
		t.Error("attachment sent despite image fetch failure")
	}
	if len(h.messenger.texts) != 1 {
		t.Fatalf("expected text-only reply, got %d texts", len(h.messenger.texts))
	}
	if !strings.Contains(h.messenger.texts[0].text, "Condition:") {
		t.Errorf("weather report should still be delivered:\n%s", h.messenger.texts[0].text)
	}
}

func TestHandleMessageHelp(t *testing.T) {
	h, cleanup := newHarness(t, harnessOptions{})
	defer cleanup()

	h.bot.HandleMessage(context.Background(), "user1", "  Help  ")

	if len(h.messenger.texts) != 1 {
		t.Fatalf("expected one reply, got %d", len(h.messenger.texts))
	}
	if h.messenger.texts[0].text != helpText {
		t.Errorf("expected help text, got %q", h.messenger.texts[0].text)
	}
	if h.geocodeCalls != 0 || h.weatherCalls != 0 {
		t.Errorf("help must not trigger API calls, saw geocode=%d weather=%d",
			h.geocodeCalls, h.weatherCalls)
	}
}

func TestHandleMessageAirCommand(t *testing.T) {
	h, cleanup := newHarness(t, harnessOptions{})
	defer cleanup()

	h.bot.HandleMessage(context.Background(), "user1", "air 51.5,-0.1")

	if h.airCalls != 1 {
		t.Fatalf("expected one air-quality call, saw %d", h.airCalls)
	}
	if len(h.messenger.texts) != 1 {
		t.Fatalf("expected one reply, got %d", len(h.messenger.texts))
	}
	text := h.messenger.texts[0].text
	if !strings.Contains(text, "US AQI: 42 (Good)") {
		t.Errorf("air report missing US AQI line:\n%s", text)
	}
}

func TestHandleMessageBriefCommand(t *testing.T) {
	h, cleanup := newHarness(t, harnessOptions{})
	defer cleanup()

	h.bot.HandleMessage(context.Background(), "user1", "brief 51.5,-0.1")

	if len(h.messenger.texts) != 1 {
		t.Fatalf("expected one reply, got %d", len(h.messenger.texts))
	}
	text := h.messenger.texts[0].text
	if !strings.Contains(text, "- Temp: 20°C (68.0°F)") {
		t.Errorf("brief report missing temperature:\n%s", text)
	}
	if !strings.Contains(text, "- Condition: Clear sky") {
		t.Errorf("brief report missing condition:\n%s", text)
	}
}

func TestHandleMessageDetailedCommand(t *testing.T) {
	h, cleanup := newHarness(t, harnessOptions{})
	defer cleanup()

	h.bot.HandleMessage(context.Background(), "user1", "detailed 51.5,-0.1")

	// current + hourly + daily on the forecast API, one air-quality call.
	if h.weatherCalls != 3 {
		t.Errorf("expected 3 forecast API calls, saw %d", h.weatherCalls)
	}
	if h.airCalls != 1 {
		t.Errorf("expected 1 air-quality call, saw %d", h.airCalls)
	}

	if len(h.messenger.texts) != 1 {
		t.Fatalf("expected one reply, got %d", len(h.messenger.texts))
	}
	text := h.messenger.texts[0].text
	for _, want := range []string{
		"Weather for 51.50, -0.10:",
		"US AQI: 42 (Good)",
		"12-Hour Forecast for 51.50, -0.10:",
		"7-Day Forecast for 51.50, -0.10:",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("detailed report missing %q:\n%s", want, text)
		}
	}
	if got := strings.Count(text, "========================================"); got != 3 {
		t.Errorf("expected 3 separators, got %d:\n%s", got, text)
	}
}

func TestHandleMessageGeocodedPlaceName(t *testing.T) {
	h, cleanup := newHarness(t, harnessOptions{
		geocodeBody: `{"results":[{"latitude":35.68,"longitude":139.69,"name":"Tokyo","country":"Japan"}]}`,
	})
	defer cleanup()

	h.bot.HandleMessage(context.Background(), "user1", "Tokyo")

	if h.geocodeCalls != 1 {
		t.Fatalf("expected one geocoding call, saw %d", h.geocodeCalls)
	}
	if len(h.messenger.texts) != 1 {
		t.Fatalf("expected one reply, got %d", len(h.messenger.texts))
	}
	if !strings.HasPrefix(h.messenger.texts[0].text, "Weather for Tokyo, Japan:") {
		t.Errorf("report header should use the geocoded display name:\n%s", h.messenger.texts[0].text)
	}
	if h.imageCalls != 0 {
		t.Errorf("Tokyo is outside CONUS, saw %d image calls", h.imageCalls)
	}
}

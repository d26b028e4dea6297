package bot

import "strings"

// Report-variant keywords, checked as a leading word of the message. A
// message with no keyword is treated as a plain location query.
var commandKeywords = []string{"brief", "current", "hourly", "forecast", "detailed", "air"}

const defaultCommand = "current"

const helpText = "Weather Bot Commands:\n\n" +
	"Basic usage: Send a location to get current weather\n" +
	"- City name (e.g., London)\n" +
	"- Latitude,Longitude (e.g., 40.71,-74.01)\n" +
	"- MGRS coordinates (e.g., 18TWL123456)\n\n" +
	"Advanced commands:\n" +
	"- 'brief <location>' - Compact current weather\n" +
	"- 'current <location>' - Detailed current weather\n" +
	"- 'hourly <location>' - 12-hour forecast\n" +
	"- 'forecast <location>' - 7-day forecast\n" +
	"- 'air <location>' - Air quality index\n" +
	"- 'detailed <location>' - Everything at once\n\n" +
	"For US locations, I'll include a GOES satellite image!"

// parseCommand splits a message into a report keyword and the location
// query. Without a leading keyword the whole message is the location and
// the default variant applies.
func parseCommand(content string) (command, locationQuery string) {
	content = strings.TrimSpace(content)
	lower := strings.ToLower(content)

	for _, kw := range commandKeywords {
		if strings.HasPrefix(lower, kw+" ") {
			return kw, strings.TrimSpace(content[len(kw):])
		}
	}
	return defaultCommand, content
}

package meteo

import "testing"

func intPtr(v int) *int { return &v }

func TestDescribeWeatherCode(t *testing.T) {
	tests := []struct {
		code     *int
		expected string
	}{
		{intPtr(0), "Clear sky"},
		{intPtr(1), "Mainly clear"},
		{intPtr(2), "Partly cloudy"},
		{intPtr(3), "Overcast"},
		{intPtr(45), "Fog"},
		{intPtr(48), "Depositing rime fog"},
		{intPtr(51), "Drizzle"},
		{intPtr(55), "Drizzle"},
		{intPtr(56), "Freezing Drizzle"},
		{intPtr(61), "Rain"},
		{intPtr(63), "Rain"},
		{intPtr(65), "Rain"},
		{intPtr(66), "Freezing Rain"},
		{intPtr(71), "Snow fall"},
		{intPtr(77), "Snow grains"},
		{intPtr(80), "Rain showers"},
		{intPtr(85), "Snow showers"},
		{intPtr(95), "Thunderstorm"},
		{intPtr(96), "Thunderstorm with hail"},
		{intPtr(99), "Thunderstorm with hail"},
		{intPtr(999), "Unknown code (999)"},
		{nil, "Unknown"},
	}

	for _, tt := range tests {
		if got := DescribeWeatherCode(tt.code, true); got != tt.expected {
			t.Errorf("DescribeWeatherCode(%v) = %q, want %q", tt.code, got, tt.expected)
		}
	}
}

func TestDescribeWeatherCodeIgnoresDayFlag(t *testing.T) {
	// The day/night flag is accepted but intentionally never branched on;
	// this pins the as-shipped behavior.
	code := intPtr(0)
	if day, night := DescribeWeatherCode(code, true), DescribeWeatherCode(code, false); day != night {
		t.Errorf("day flag changed output: %q vs %q", day, night)
	}
}

func TestUVCategory(t *testing.T) {
	tests := []struct {
		uv       float64
		expected string
	}{
		{0, "Low"},
		{2.9, "Low"},
		{3.0, "Moderate"},
		{5.9, "Moderate"},
		{6.0, "High"},
		{7.9, "High"},
		{8.0, "Very High"},
		{10.9, "Very High"},
		{11.0, "Extreme"},
		{15.0, "Extreme"},
	}

	for _, tt := range tests {
		if got := UVCategory(tt.uv); got != tt.expected {
			t.Errorf("UVCategory(%v) = %q, want %q", tt.uv, got, tt.expected)
		}
	}
}

func TestUSAQICategory(t *testing.T) {
	tests := []struct {
		aqi      float64
		expected string
	}{
		{0, "Good"},
		{50, "Good"},
		{51, "Moderate"},
		{100, "Moderate"},
		{101, "Unhealthy for Sensitive Groups"},
		{150, "Unhealthy for Sensitive Groups"},
		{151, "Unhealthy"},
		{200, "Unhealthy"},
		{201, "Very Unhealthy"},
		{300, "Very Unhealthy"},
		{301, "Hazardous"},
	}

	for _, tt := range tests {
		if got := USAQICategory(tt.aqi); got != tt.expected {
			t.Errorf("USAQICategory(%v) = %q, want %q", tt.aqi, got, tt.expected)
		}
	}
}

func TestEUAQICategory(t *testing.T) {
	tests := []struct {
		aqi      float64
		expected string
	}{
		{0, "Good"},
		{20, "Good"},
		{21, "Fair"},
		{40, "Fair"},
		{41, "Moderate"},
		{60, "Moderate"},
		{61, "Poor"},
		{80, "Poor"},
		{81, "Very Poor"},
		{100, "Very Poor"},
		{101, "Extremely Poor"},
	}

	for _, tt := range tests {
		if got := EUAQICategory(tt.aqi); got != tt.expected {
			t.Errorf("EUAQICategory(%v) = %q, want %q", tt.aqi, got, tt.expected)
		}
	}
}

package app

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"
)

// ErrInvalidTimeZone is returned by FormatLocalTime for empty or unknown zones.
var ErrInvalidTimeZone = errors.New("invalid time zone")

// 12-hour clock with seconds, as en-US renders it ("3:04:05 PM").
const clockLayout = "3:04:05 PM"

// keys are normalized country names
var countryZones = map[string]string{
	"australia":        "Australia/Sydney",
	"japan":            "Asia/Tokyo",
	"brazil":           "America/Sao_Paulo",
	"french polynesia": "Pacific/Tahiti",
	"cambodia":         "Asia/Phnom_Penh",
	"india":            "Asia/Kolkata",
}

// ResolveTimeZone maps a country name to its IANA zone. Only exact names
// (ignoring case and surrounding space) resolve; anything else reports false.
func ResolveTimeZone(country string) (string, bool) {
	tz, ok := countryZones[Normalize(country)]
	return tz, ok
}

// LocalTimeLabel is the text shown in front of a live clock.
func LocalTimeLabel(country string) string {
	return "Local time in " + country + ": "
}

var zones sync.Map // string -> *time.Location

func loadZone(tz string) (*time.Location, error) {
	if v, ok := zones.Load(tz); ok {
		return v.(*time.Location), nil
	}
	// "" and "Local" are accepted by LoadLocation but are not IANA names
	if strings.TrimSpace(tz) == "" || tz == "Local" {
		return nil, ErrInvalidTimeZone
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %v", ErrInvalidTimeZone, tz, err)
	}
	zones.Store(tz, loc)
	return loc, nil
}

// FormatLocalTime renders now as wall-clock time in tz.
func FormatLocalTime(tz string, now time.Time) (string, error) {
	loc, err := loadZone(tz)
	if err != nil {
		return "", err
	}
	return now.In(loc).Format(clockLayout), nil
}

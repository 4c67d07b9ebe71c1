// Package datetime normalizes wall-clock values, IANA zone identifiers,
// and calendar-day keys for the schedule cache and API layer.
package datetime

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

const (
	// WireLayout is the wall-clock form transmitted to the schedule service,
	// always paired with an explicit zone id rather than a UTC offset.
	WireLayout = "2006-01-02T15:04:05"

	// KeyLayout is the canonical calendar-day key form.
	KeyLayout = "2006-01-02"

	// DefaultZoneID governs day boundaries when no other zone applies.
	DefaultZoneID = "Asia/Seoul"
)

// zoneIDPattern matches IANA-style Region/City identifiers. Bare names like
// "Local" or "UTC" are intentionally rejected; values crossing the API
// boundary must carry a geographic zone.
var zoneIDPattern = regexp.MustCompile(`^[A-Za-z_]+(/[A-Za-z0-9_+\-]+)+$`)

// ZonedDateTime is a wall-clock instant paired with the IANA zone it was
// observed in. This is the only form in which instants cross the API
// boundary.
type ZonedDateTime struct {
	DateTime string `json:"dateTime"`
	ZoneID   string `json:"zoneId"`
}

// Zone is the governing timezone for day-key derivation. It is built once at
// startup from configuration and passed explicitly; there is no package-level
// default beyond the DefaultZoneID constant.
type Zone struct {
	id  string
	loc *time.Location
}

// LoadZone resolves an IANA zone identifier into a Zone.
func LoadZone(id string) (Zone, error) {
	trimmed := strings.TrimSpace(id)
	if !ValidZoneID(trimmed) {
		return Zone{}, fmt.Errorf("invalid zone id %q", id)
	}
	loc, err := time.LoadLocation(trimmed)
	if err != nil {
		return Zone{}, fmt.Errorf("load zone %q: %w", id, err)
	}
	return Zone{id: trimmed, loc: loc}, nil
}

// MustLoadZone is LoadZone for identifiers known at compile time.
func MustLoadZone(id string) Zone {
	z, err := LoadZone(id)
	if err != nil {
		panic(err)
	}
	return z
}

// ValidZoneID reports whether id looks like an IANA Region/City identifier.
func ValidZoneID(id string) bool {
	return zoneIDPattern.MatchString(id)
}

// ID returns the zone identifier string.
func (z Zone) ID() string { return z.id }

// Location returns the underlying time.Location.
func (z Zone) Location() *time.Location {
	if z.loc == nil {
		return time.UTC
	}
	return z.loc
}

// IsZero reports whether the zone was never loaded.
func (z Zone) IsZero() bool { return z.loc == nil }

// DateKey derives the canonical YYYY-MM-DD key for t's calendar day in this
// zone.
func (z Zone) DateKey(t time.Time) string {
	return t.In(z.Location()).Format(KeyLayout)
}

// Wire converts t into the transmission form for this zone.
func (z Zone) Wire(t time.Time) ZonedDateTime {
	return ZonedDateTime{
		DateTime: t.In(z.Location()).Format(WireLayout),
		ZoneID:   z.id,
	}
}

// WeekStart returns midnight on the Monday of t's ISO week in this zone.
func (z Zone) WeekStart(t time.Time) time.Time {
	lt := t.In(z.Location())
	back := (int(lt.Weekday()) + 6) % 7
	d := lt.AddDate(0, 0, -back)
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, z.Location())
}

// WeekDays returns the seven successive days starting at weekStart.
func WeekDays(weekStart time.Time) []time.Time {
	days := make([]time.Time, 7)
	for i := range days {
		days[i] = weekStart.AddDate(0, 0, i)
	}
	return days
}

// Resolve parses the value into a time.Time. A valid ZoneID takes precedence;
// invalid or missing identifiers fall back to the provided zone rather than
// failing, so that a malformed server payload degrades to the configured day
// boundary instead of erroring the whole view.
func (v ZonedDateTime) Resolve(fallback Zone) (time.Time, error) {
	loc := fallback.Location()
	if ValidZoneID(v.ZoneID) {
		if own, err := time.LoadLocation(v.ZoneID); err == nil {
			loc = own
		}
	}
	value := strings.TrimSpace(v.DateTime)
	if value == "" {
		return time.Time{}, fmt.Errorf("empty date-time")
	}
	for _, layout := range []string{WireLayout, "2006-01-02T15:04:05.999999999", KeyLayout} {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t, nil
		}
	}
	// Offset-carrying forms keep their instant but are re-expressed in the
	// owning zone so day keys stay stable.
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339} {
		if t, err := time.Parse(layout, value); err == nil {
			return t.In(loc), nil
		}
	}
	return time.Time{}, fmt.Errorf("parse date-time %q", v.DateTime)
}

// Key derives the calendar-day key for the value. The value's own zone keys
// the day when present and valid; an already-zoned value must never shift
// across a day boundary by being re-interpreted in the default zone.
func (v ZonedDateTime) Key(fallback Zone) (string, error) {
	t, err := v.Resolve(fallback)
	if err != nil {
		return "", err
	}
	return t.Format(KeyLayout), nil
}

// IsZero reports whether the value carries no date-time at all.
func (v ZonedDateTime) IsZero() bool {
	return strings.TrimSpace(v.DateTime) == ""
}

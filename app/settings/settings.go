package settings

import (
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/kittipatv/yt-sched/app/database"
	"github.com/kittipatv/yt-sched/app/schedule"
)

// Keys in the persistent settings store.
const (
	KeyAPIKey         = "api_key"
	KeyChannelIDs     = "channel_ids"
	KeyTimezone       = "timezone"
	KeyLookAheadHours = "look_ahead_hours"
	KeyRSSDiscovery   = "rss_discovery"
	KeyAdminPINHash   = "admin_pin_hash"
)

const (
	DefaultTimezone       = "Asia/Bangkok"
	DefaultLookAheadHours = 72
	MinLookAheadHours     = 1
	MaxLookAheadHours     = 240
)

// Settings is the typed snapshot handed to one refresh cycle. It is built
// from the store when the cycle starts and passed explicitly through the
// pipeline; the core packages never read ambient state.
type Settings struct {
	APIKey         string
	ChannelsText   string
	Channels       []string
	Timezone       string
	Location       *time.Location
	LookAheadHours int
	RSSDiscovery   bool
}

// Load assembles a Settings snapshot from the store.
func Load(repo database.SettingsRepository) (*Settings, error) {
	values, err := repo.GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	return FromMap(values)
}

// FromMap builds Settings from raw stored values, applying defaults,
// falling back on an invalid timezone and clamping the look-ahead into the
// supported range.
func FromMap(values map[string]string) (*Settings, error) {
	s := &Settings{
		APIKey:         values[KeyAPIKey],
		ChannelsText:   values[KeyChannelIDs],
		Timezone:       DefaultTimezone,
		LookAheadHours: DefaultLookAheadHours,
	}

	if tz := values[KeyTimezone]; tz != "" {
		s.Timezone = tz
	}
	loc, err := time.LoadLocation(s.Timezone)
	if err != nil {
		slog.Warn("Invalid timezone, falling back to default", "timezone", s.Timezone, "error", err)
		s.Timezone = DefaultTimezone
		loc, err = time.LoadLocation(DefaultTimezone)
		if err != nil {
			return nil, fmt.Errorf("failed to load default timezone: %w", err)
		}
	}
	s.Location = loc

	if raw := values[KeyLookAheadHours]; raw != "" {
		hours, err := strconv.Atoi(raw)
		if err != nil {
			slog.Warn("Invalid look-ahead hours, using default", "value", raw)
		} else {
			s.LookAheadHours = ClampLookAhead(hours)
		}
	}

	s.RSSDiscovery = values[KeyRSSDiscovery] == "true"
	s.Channels = schedule.ParseChannelList(s.ChannelsText)

	return s, nil
}

func ClampLookAhead(hours int) int {
	if hours < MinLookAheadHours {
		return MinLookAheadHours
	}
	if hours > MaxLookAheadHours {
		return MaxLookAheadHours
	}
	return hours
}

// Configured reports whether a fetch cycle can run at all. Without an API
// key or channels the cycle publishes an idle result instead of fetching.
func (s *Settings) Configured() bool {
	return s.APIKey != "" && len(s.Channels) > 0
}

package api

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kittipatv/yt-sched/app/database"
	"github.com/kittipatv/yt-sched/app/presets"
	"github.com/kittipatv/yt-sched/app/schedule"
	"github.com/kittipatv/yt-sched/app/settings"
	"github.com/kittipatv/yt-sched/app/tasks"
)

func NewHandler(settingsRepo database.SettingsRepository, store *schedule.ResultStore,
	presetCache *presets.Cache, scheduler tasks.TaskSchedulerInterface, resolver HandleResolver) *Handler {
	return &Handler{
		settingsRepo: settingsRepo,
		store:        store,
		presetCache:  presetCache,
		scheduler:    scheduler,
		resolver:     resolver,
	}
}

// GetSchedule serves the flat, filtered and sorted entry list (list view).
func (h *Handler) GetSchedule(c *gin.Context) {
	result := h.store.Latest()

	c.JSON(http.StatusOK, gin.H{
		"state":        result.State,
		"timezone":     result.Timezone,
		"refreshed_at": result.RefreshedAt,
		"entries":      emptyIfNilEntries(result.Entries),
		"errors":       emptyIfNilErrors(result.Errors),
	})
}

// GetScheduleDays serves the day-bucketed sections (grid view).
func (h *Handler) GetScheduleDays(c *gin.Context) {
	result := h.store.Latest()

	days := result.Days
	if days == nil {
		days = []schedule.DaySection{}
	}

	c.JSON(http.StatusOK, gin.H{
		"state":        result.State,
		"timezone":     result.Timezone,
		"refreshed_at": result.RefreshedAt,
		"days":         days,
		"errors":       emptyIfNilErrors(result.Errors),
	})
}

// Refresh enqueues a manual fetch cycle. The cycle runs in the background;
// clients poll the schedule endpoints for the updated result.
func (h *Handler) Refresh(c *gin.Context) {
	if err := h.scheduler.EnqueueRefresh(); err != nil {
		slog.Error("Failed to enqueue manual refresh", "error", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Failed to enqueue refresh", "details": err.Error()})
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"success": true,
		"message": "Refresh enqueued",
	})
}

func (h *Handler) GetHealth(c *gin.Context) {
	result := h.store.Latest()

	health := map[string]interface{}{
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"state":     result.State,
		"entries":   len(result.Entries),
	}
	if !result.RefreshedAt.IsZero() {
		health["refreshed_at"] = result.RefreshedAt
	}

	c.JSON(http.StatusOK, health)
}

func (h *Handler) GetStats(c *gin.Context) {
	result := h.store.Latest()

	byStatus := map[schedule.Status]int{}
	for _, entry := range result.Entries {
		byStatus[entry.Status]++
	}

	configuredChannels := 0
	if raw, ok, err := h.settingsRepo.Get(settings.KeyChannelIDs); err == nil && ok {
		configuredChannels = len(schedule.DedupeChannels(schedule.ParseChannelList(raw)))
	}

	c.JSON(http.StatusOK, gin.H{
		"state":               result.State,
		"refreshed_at":        result.RefreshedAt,
		"entries":             len(result.Entries),
		"live":                byStatus[schedule.StatusLive],
		"upcoming":            byStatus[schedule.StatusUpcoming],
		"past":                byStatus[schedule.StatusPast],
		"days":                len(result.Days),
		"channel_errors":      len(result.Errors),
		"configured_channels": configuredChannels,
		"loaded_presets":      h.presetCache.Count(),
	})
}

type updateSettingsRequest struct {
	APIKey         *string `json:"api_key"`
	ChannelIDs     *string `json:"channel_ids"`
	Timezone       *string `json:"timezone"`
	LookAheadHours *int    `json:"look_ahead_hours"`
	RSSDiscovery   *bool   `json:"rss_discovery"`
}

// APIGetSettings returns the stored settings with the API key masked.
func (h *Handler) APIGetSettings(c *gin.Context) {
	values, err := h.settingsRepo.GetAll()
	if err != nil {
		slog.Error("Database error", "operation", "get_settings", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	current, err := settings.FromMap(values)
	if err != nil {
		slog.Error("Failed to build settings", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build settings"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"api_key":          maskAPIKey(current.APIKey),
		"api_key_set":      current.APIKey != "",
		"channel_ids":      current.ChannelsText,
		"channels":         len(schedule.DedupeChannels(current.Channels)),
		"timezone":         current.Timezone,
		"look_ahead_hours": current.LookAheadHours,
		"rss_discovery":    current.RSSDiscovery,
	})
}

// APIUpdateSettings stores the provided fields and triggers a refresh so
// the new configuration takes effect immediately.
func (h *Handler) APIUpdateSettings(c *gin.Context) {
	var req updateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	if req.Timezone != nil {
		if _, err := time.LoadLocation(*req.Timezone); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid timezone", "details": err.Error()})
			return
		}
	}

	updates := map[string]string{}
	if req.APIKey != nil {
		updates[settings.KeyAPIKey] = *req.APIKey
	}
	if req.ChannelIDs != nil {
		updates[settings.KeyChannelIDs] = *req.ChannelIDs
	}
	if req.Timezone != nil {
		updates[settings.KeyTimezone] = *req.Timezone
	}
	if req.LookAheadHours != nil {
		updates[settings.KeyLookAheadHours] = strconv.Itoa(settings.ClampLookAhead(*req.LookAheadHours))
	}
	if req.RSSDiscovery != nil {
		updates[settings.KeyRSSDiscovery] = strconv.FormatBool(*req.RSSDiscovery)
	}

	if len(updates) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No settings provided"})
		return
	}

	for key, value := range updates {
		if err := h.settingsRepo.Set(key, value); err != nil {
			slog.Error("Database error", "operation", "set_setting", "key", key, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save settings"})
			return
		}
	}

	if err := h.scheduler.EnqueueRefresh(); err != nil {
		slog.Warn("Failed to enqueue refresh after settings update", "error", err)
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"updated": len(updates),
	})
}

type setPINRequest struct {
	PIN string `json:"pin"`
}

// APISetPIN stores the admin PIN hash. The PIN middleware lets this
// endpoint through unauthenticated only while no PIN exists yet.
func (h *Handler) APISetPIN(c *gin.Context) {
	var req setPINRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.PIN == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "PIN is required"})
		return
	}

	if err := h.settingsRepo.Set(settings.KeyAdminPINHash, hashPIN(req.PIN)); err != nil {
		slog.Error("Database error", "operation", "set_pin", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save PIN"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// APIResolveHandle resolves an @handle into a channel ID so admins can
// paste handles instead of hunting for UC… identifiers.
func (h *Handler) APIResolveHandle(c *gin.Context) {
	handle := strings.TrimSpace(c.Query("handle"))
	if handle == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing handle parameter"})
		return
	}

	apiKey, ok, err := h.settingsRepo.Get(settings.KeyAPIKey)
	if err != nil {
		slog.Error("Database error", "operation", "get_api_key", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	if !ok || apiKey == "" {
		c.JSON(http.StatusPreconditionFailed, gin.H{"error": "API key not configured"})
		return
	}

	channelID, err := h.resolver.ResolveHandle(c.Request.Context(), apiKey, handle)
	if err != nil {
		slog.Warn("Handle resolution failed", "handle", handle, "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to resolve handle", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"handle":     handle,
		"channel_id": channelID,
	})
}

func (h *Handler) APIListPresets(c *gin.Context) {
	loaded := h.presetCache.GetPresets()

	list := make([]gin.H, 0, len(loaded))
	for _, preset := range loaded {
		list = append(list, gin.H{
			"name":        preset.Name,
			"title":       preset.Title,
			"description": preset.Description,
			"channels":    len(preset.Channels),
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"presets": list,
		"total":   len(list),
	})
}

// APIApplyPreset replaces the stored channel list with a preset's channels
// and triggers a refresh.
func (h *Handler) APIApplyPreset(c *gin.Context) {
	name := c.Param("name")

	preset, err := h.presetCache.GetPreset(name)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Preset not found"})
		return
	}

	if err := h.settingsRepo.Set(settings.KeyChannelIDs, strings.Join(preset.Channels, "\n")); err != nil {
		slog.Error("Database error", "operation", "apply_preset", "preset", name, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to apply preset"})
		return
	}

	if err := h.scheduler.EnqueueRefresh(); err != nil {
		slog.Warn("Failed to enqueue refresh after preset apply", "error", err)
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"preset":   preset.Name,
		"channels": len(preset.Channels),
	})
}

// APIReloadPresets re-reads the preset directory in the background.
func (h *Handler) APIReloadPresets(c *gin.Context) {
	if err := h.scheduler.EnqueueReloadPresets(); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Failed to enqueue reload", "details": err.Error()})
		return
	}

	c.JSON(http.StatusAccepted, gin.H{"success": true})
}

func maskAPIKey(key string) string {
	if key == "" {
		return ""
	}
	if len(key) <= 8 {
		return "********"
	}
	return key[:4] + "..." + key[len(key)-4:]
}

func emptyIfNilEntries(entries []schedule.Entry) []schedule.Entry {
	if entries == nil {
		return []schedule.Entry{}
	}
	return entries
}

func emptyIfNilErrors(errs []schedule.ChannelError) []schedule.ChannelError {
	if errs == nil {
		return []schedule.ChannelError{}
	}
	return errs
}

package metrics

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/firesafetykz/portal/internal/domain"
	"github.com/firesafetykz/portal/internal/event"
)

func TestMiddleware_UsesRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Middleware)
	r.Get("/api/notifications/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	before := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/api/notifications/{id}", "418"))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/notifications/abc", nil))

	assert.Equal(t, http.StatusTeapot, rec.Code)
	after := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/api/notifications/{id}", "418"))
	assert.Equal(t, before+1, after)
}

func TestResponseWriter_HijackUnsupported(t *testing.T) {
	rw := &responseWriter{ResponseWriter: httptest.NewRecorder()}
	_, _, err := rw.Hijack()
	assert.Error(t, err)
}

func TestEventMetricsCollector(t *testing.T) {
	bus := event.NewMemoryBus()
	NewEventMetricsCollector().Register(bus)
	ctx := context.Background()

	sessionsBefore := testutil.ToFloat64(SessionsCompleted)
	xpBefore := testutil.ToFloat64(XPAwarded)
	unlockBefore := testutil.ToFloat64(AchievementsUnlocked.WithLabelValues("first-fire"))
	levelBefore := testutil.ToFloat64(LevelUps.WithLabelValues("2"))
	createdBefore := testutil.ToFloat64(NotificationsCreated.WithLabelValues("new_bid"))

	require.NoError(t, bus.Publish(ctx, event.NewSessionCompletedEvent(domain.GameSession{ID: "s1", UserID: "u1", XPEarned: 120})))
	require.NoError(t, bus.Publish(ctx, event.NewAchievementUnlockedEvent("u1", domain.Achievement{ID: "first-fire", RewardXP: 50})))
	require.NoError(t, bus.Publish(ctx, event.NewLevelUpEvent("u1", domain.LevelInfo{Level: 1}, domain.LevelInfo{Level: 2})))
	require.NoError(t, bus.Publish(ctx, event.NewNotificationCreatedEvent(domain.Notification{Kind: domain.FrameNewBid})))

	assert.Equal(t, sessionsBefore+1, testutil.ToFloat64(SessionsCompleted))
	assert.Equal(t, xpBefore+170, testutil.ToFloat64(XPAwarded))
	assert.Equal(t, unlockBefore+1, testutil.ToFloat64(AchievementsUnlocked.WithLabelValues("first-fire")))
	assert.Equal(t, levelBefore+1, testutil.ToFloat64(LevelUps.WithLabelValues("2")))
	assert.Equal(t, createdBefore+1, testutil.ToFloat64(NotificationsCreated.WithLabelValues("new_bid")))
}

func TestEventMetricsCollector_BadPayloadIsIgnored(t *testing.T) {
	c := NewEventMetricsCollector()
	err := c.HandleEvent(context.Background(), event.Event{Type: event.LevelUp, Payload: make(chan int)})
	assert.NoError(t, err)
}

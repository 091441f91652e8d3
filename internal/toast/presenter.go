package toast

import (
	"log/slog"
	"sync"
	"time"

	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/firesafetykz/portal/internal/domain"
	"github.com/firesafetykz/portal/internal/metrics"
	"github.com/firesafetykz/portal/internal/realtime"
)

var _ realtime.Handler = (*Presenter)(nil)

// Presenter renders dispatched frames as toasts and keeps the unread badge.
// It never touches connection state.
type Presenter struct {
	printer *message.Printer
	sinks   []Sink
	now     func() time.Time
	log     *slog.Logger

	mu    sync.Mutex
	badge int
}

// NewPresenter creates a presenter printing texts in locale
func NewPresenter(locale domain.Locale, sinks ...Sink) *Presenter {
	return &Presenter{
		printer: NewPrinter(locale),
		sinks:   sinks,
		now:     time.Now,
		log:     slog.Default(),
	}
}

// Badge returns the number of unseen toasts
func (p *Presenter) Badge() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.badge
}

// ResetBadge marks everything as seen
func (p *Presenter) ResetBadge() {
	p.mu.Lock()
	p.badge = 0
	p.mu.Unlock()
}

func (p *Presenter) OnConnection(m realtime.ConnectionFrame) {
	p.log.Debug(LogMsgSilentFrame, "type", m.Type())
}

func (p *Presenter) OnAuthSuccess(m realtime.AuthSuccessFrame) {
	p.log.Debug(LogMsgSilentFrame, "type", m.Type(), "user_id", m.UserID)
}

func (p *Presenter) OnAuthError(m realtime.AuthErrorFrame) {
	body := m.Text
	if body == "" {
		body = p.printer.Sprintf(keyAuthErrorBody)
	}
	p.emit(m, Toast{
		Level: LevelError,
		Title: p.printer.Sprintf(keyAuthErrorTitle),
		Body:  body,
	}, false)
}

func (p *Presenter) OnNewBid(m realtime.NewBidFrame) {
	title := p.adTitle(m.Bid.AdTitle)
	var body string
	if m.Bid.BidderName != "" && m.Bid.Amount > 0 {
		body = p.printer.Sprintf(keyNewBidBody, m.Bid.BidderName, number.Decimal(m.Bid.Amount, number.MaxFractionDigits(2)), title)
	} else {
		body = p.printer.Sprintf(keyNewBidBodyAnon, title)
	}
	p.emit(m, Toast{
		Level: LevelInfo,
		Title: p.printer.Sprintf(keyNewBidTitle),
		Body:  body,
		Sound: true,
	}, true)
}

func (p *Presenter) OnBidStatusChanged(m realtime.BidStatusChangedFrame) {
	p.emit(m, Toast{
		Level: bidStatusLevel(m.Bid.Status),
		Title: p.printer.Sprintf(keyBidStatusTitle),
		Body:  p.printer.Sprintf(keyBidStatusBody, p.adTitle(m.Bid.AdTitle), p.bidStatus(m.Bid.Status)),
	}, true)
}

func (p *Presenter) OnNewOrder(m realtime.NewOrderFrame) {
	body := m.Order.Title
	if body == "" {
		body = m.Text
	}
	p.emit(m, Toast{
		Level: LevelInfo,
		Title: p.printer.Sprintf(keyNewOrderTitle),
		Body:  body,
		Sound: true,
	}, true)
}

func (p *Presenter) OnNewMessage(m realtime.NewMessageFrame) {
	body := m.Chat.Preview
	if body == "" {
		body = m.Text
	}
	p.emit(m, Toast{
		Level: LevelInfo,
		Title: p.printer.Sprintf(keyNewMessageTitle, m.Chat.SenderName),
		Body:  body,
		Sound: true,
	}, true)
}

func (p *Presenter) OnOrderStatusChanged(m realtime.OrderStatusChangedFrame) {
	p.emit(m, Toast{
		Level: LevelInfo,
		Title: p.printer.Sprintf(keyOrderStatusTitle),
		Body:  p.printer.Sprintf(keyOrderStatusBody, p.adTitle(m.Order.Title), m.Order.Status),
	}, true)
}

func (p *Presenter) OnNotification(m realtime.NotificationFrame) {
	title := m.Notification.Title
	if title == "" {
		title = p.printer.Sprintf(keyNotificationTitle)
	}
	body := m.Notification.Message
	if body == "" {
		body = m.Text
	}
	p.emit(m, Toast{
		Level: LevelInfo,
		Title: title,
		Body:  body,
	}, true)
}

func (p *Presenter) OnBroadcast(m realtime.BroadcastFrame) {
	p.emit(m, Toast{
		Level: LevelWarning,
		Title: p.printer.Sprintf(keyBroadcastTitle),
		Body:  m.Text,
	}, false)
}

func (p *Presenter) OnPong(m realtime.PongFrame) {
	p.log.Debug(LogMsgSilentFrame, "type", m.Type())
}

func (p *Presenter) emit(m realtime.Message, t Toast, countsUnread bool) {
	t.Kind = m.Type()
	t.At = m.At()
	if t.At.IsZero() {
		t.At = p.now()
	}

	if countsUnread {
		p.mu.Lock()
		p.badge++
		p.mu.Unlock()
	}

	metrics.ToastsEmitted.WithLabelValues(string(t.Kind)).Inc()
	p.log.Debug(LogMsgToastShown, "kind", t.Kind, "level", t.Level, "sound", t.Sound)

	for _, s := range p.sinks {
		if err := s.Show(t); err != nil {
			p.log.Warn(LogMsgSinkFailed, "kind", t.Kind, "error", err)
		}
	}
}

func (p *Presenter) adTitle(title string) string {
	if title == "" {
		return p.printer.Sprintf(keyUntitled)
	}
	return title
}

func (p *Presenter) bidStatus(s domain.BidStatus) string {
	if !s.Valid() {
		return string(s)
	}
	return p.printer.Sprintf(keyBidStatusPrefix + string(s))
}

func bidStatusLevel(s domain.BidStatus) Level {
	switch s {
	case domain.BidAccepted, domain.BidCompleted:
		return LevelSuccess
	case domain.BidRejected, domain.BidWithdrawn:
		return LevelWarning
	default:
		return LevelInfo
	}
}

package realtime

import "github.com/firesafetykz/portal/internal/domain"

// Session identifies who the channel is opened for.
// It must be complete before Connect: the user id goes into the auth frame
// and the locale decides how frames are rendered.
type Session struct {
	UserID string
	Locale domain.Locale
}

package toast

// Catalog keys
const (
	keyAuthErrorTitle    = "auth_error.title"
	keyAuthErrorBody     = "auth_error.body"
	keyNewBidTitle       = "new_bid.title"
	keyNewBidBody        = "new_bid.body"
	keyNewBidBodyAnon    = "new_bid.body_anonymous"
	keyBidStatusTitle    = "bid_status_changed.title"
	keyBidStatusBody     = "bid_status_changed.body"
	keyNewOrderTitle     = "new_order.title"
	keyOrderStatusTitle  = "order_status_changed.title"
	keyOrderStatusBody   = "order_status_changed.body"
	keyNewMessageTitle   = "new_message.title"
	keyNotificationTitle = "notification.title"
	keyBroadcastTitle    = "broadcast.title"
	keyBidStatusPrefix   = "bid_status."
	keyUntitled          = "untitled"
)

// Log messages
const (
	LogMsgToastShown  = "Toast shown"
	LogMsgSinkFailed  = "Toast sink failed"
	LogMsgSilentFrame = "Frame acknowledged without toast"
)

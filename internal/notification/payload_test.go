package notification

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/firesafetykz/portal/internal/domain"
	"github.com/firesafetykz/portal/internal/realtime"
	"github.com/firesafetykz/portal/internal/relay"
)

func TestCreate_PayloadShapePerKind(t *testing.T) {
	tests := []struct {
		name    string
		kind    domain.FrameType
		payload string
		wantErr bool
	}{
		{"bid with fractional amount", domain.FrameNewBid, `{"bidId":"b1","adTitle":"Щит","bidderName":"Айгерим","amount":1500.5}`, false},
		{"bid with string amount", domain.FrameNewBid, `{"bidId":"b1","amount":"1500"}`, true},
		{"bid as array", domain.FrameNewBid, `[1,2]`, true},
		{"bid status change", domain.FrameBidStatusChanged, `{"bidId":"b1","prevStatus":"accepted","status":"completed"}`, false},
		{"bid status as number", domain.FrameBidStatusChanged, `{"bidId":"b1","prevStatus":"pending","status":3}`, true},
		{"order", domain.FrameNewOrder, `{"orderId":"o1","title":"Монтаж"}`, false},
		{"order with numeric id", domain.FrameNewOrder, `{"orderId":42}`, true},
		{"order status", domain.FrameOrderStatusChanged, `{"orderId":"o1","status":"shipped"}`, false},
		{"order status as string", domain.FrameOrderStatusChanged, `"shipped"`, true},
		{"chat message", domain.FrameNewMessage, `{"conversationId":"c1","senderName":"Ерлан","preview":"Здравствуйте"}`, false},
		{"chat message with object preview", domain.FrameNewMessage, `{"preview":{"text":"x"}}`, true},
		{"notification", domain.FrameNotification, `{"id":"n1","title":"Обновление","link":"/orders"}`, false},
		{"notification as array", domain.FrameNotification, `["x"]`, true},
		{"notification null", domain.FrameNotification, `null`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, _, _ := newTestService()
			repo.On("CreateNotification", mock.Anything, mock.Anything).Return(nil)

			n, err := svc.Create(context.Background(), CreateInput{
				UserID:  testUserID,
				Kind:    tt.kind,
				Title:   "t",
				Payload: json.RawMessage(tt.payload),
			})

			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrInvalidInput)
				repo.AssertNotCalled(t, "CreateNotification", mock.Anything, mock.Anything)
				return
			}
			require.NoError(t, err)

			// whatever is stored must reach the client as a decodable frame
			frame, err := relay.FrameFromNotification(*n)
			require.NoError(t, err)
			raw, err := json.Marshal(frame)
			require.NoError(t, err)

			msg, err := realtime.Decode(raw)
			require.NoError(t, err)
			assert.Equal(t, tt.kind, msg.Type())
		})
	}
}

func TestCreate_FractionalBidReachesClient(t *testing.T) {
	svc, repo, _, _ := newTestService()
	repo.On("CreateNotification", mock.Anything, mock.Anything).Return(nil)

	n, err := svc.Create(context.Background(), CreateInput{
		UserID:  testUserID,
		Kind:    domain.FrameNewBid,
		Title:   "Новая ставка",
		Payload: json.RawMessage(`{"bidId":"b1","adTitle":"Щит","amount":1500.5}`),
	})
	require.NoError(t, err)

	frame, err := relay.FrameFromNotification(*n)
	require.NoError(t, err)
	raw, err := json.Marshal(frame)
	require.NoError(t, err)

	msg, err := realtime.Decode(raw)
	require.NoError(t, err)
	bid, ok := msg.(realtime.NewBidFrame)
	require.True(t, ok)
	assert.InDelta(t, 1500.5, bid.Bid.Amount, 0.001)
}

package notify

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

// Listener holds a dedicated Postgres connection on LISTEN and forwards every
// notification on the configured channel to the hub. The connection cannot be
// drawn from the pool: LISTEN is session state, so the listener owns its own.
type Listener struct {
	connString string
	channel    string
	hub        *Hub
	logger     zerolog.Logger
}

// reconnectDelay paces reconnection attempts after a dropped connection.
const reconnectDelay = 2 * time.Second

// NewListener creates a listener for the given NOTIFY channel.
func NewListener(connString, channel string, hub *Hub, logger zerolog.Logger) *Listener {
	return &Listener{
		connString: connString,
		channel:    channel,
		hub:        hub,
		logger:     logger.With().Str("component", "notify-listener").Str("channel", channel).Logger(),
	}
}

// Run listens until the context is cancelled, reconnecting after connection
// failures. Missed notifications during a reconnect are acceptable: consumers
// converge on the next event or fetch.
func (l *Listener) Run(ctx context.Context) error {
	for {
		err := l.listen(ctx)
		if ctx.Err() != nil {
			return ctx.Err()
		}

		l.logger.Warn().Err(err).Msg("listen connection lost, reconnecting")

		select {
		case <-time.After(reconnectDelay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (l *Listener) listen(ctx context.Context) error {
	conn, err := pgx.Connect(ctx, l.connString)
	if err != nil {
		return fmt.Errorf("failed to connect for listen: %w", err)
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = conn.Close(closeCtx)
	}()

	if _, err := conn.Exec(ctx, "LISTEN "+pgx.Identifier{l.channel}.Sanitize()); err != nil {
		return fmt.Errorf("failed to listen on channel: %w", err)
	}

	l.logger.Info().Msg("listening for order changes")

	for {
		notification, err := conn.WaitForNotification(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return err
			}
			return fmt.Errorf("failed waiting for notification: %w", err)
		}

		orderID, err := uuid.Parse(notification.Payload)
		if err != nil {
			l.logger.Warn().
				Str("payload", notification.Payload).
				Msg("ignoring notification with malformed order id")
			continue
		}

		l.logger.Debug().Str("order_id", orderID.String()).Msg("order change received")
		l.hub.Publish(Event{OrderID: orderID})
	}
}

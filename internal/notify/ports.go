package notify

import "context"

type Notificator interface {
	// Notify reports a transcription failure to the admin channel.
	Notify(ctx context.Context, err error, details string) error
}

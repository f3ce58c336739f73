package realtime

import (
	"fmt"

	pusher "github.com/pusher/pusher-http-go/v5"
)

// Publisher is the narrow capability the chat core needs from the hosted
// realtime transport. Ordering and delivery to live clients belong to the
// transport; the core only publishes after persisting.
type Publisher interface {
	Publish(channel, event string, data interface{}) error
}

type pusherPublisher struct {
	client *pusher.Client
}

// NewPusherPublisher builds a Publisher backed by Pusher Channels.
func NewPusherPublisher(appID, key, secret, cluster string) Publisher {
	return &pusherPublisher{
		client: &pusher.Client{
			AppID:   appID,
			Key:     key,
			Secret:  secret,
			Cluster: cluster,
		},
	}
}

func (p *pusherPublisher) Publish(channel, event string, data interface{}) error {
	if err := p.client.Trigger(channel, event, data); err != nil {
		return fmt.Errorf("failed to publish %s on %s: %w", event, channel, err)
	}
	return nil
}

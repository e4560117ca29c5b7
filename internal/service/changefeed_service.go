package service

import (
	"context"
	"encoding/json"
	"log"

	"orgnotes-be/internal/dto"
	"orgnotes-be/internal/websocket"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IChangefeedService interface {
	Consume(ctx context.Context) error
}

// changefeedService bridges the internal note-change bus to the websocket
// hub. It is the only consumer of the change topic inside this process.
type changefeedService struct {
	pubSub    *gochannel.GoChannel
	topicName string
	hub       *websocket.Hub
}

func NewChangefeedService(
	pubSub *gochannel.GoChannel,
	topicName string,
	hub *websocket.Hub,
) IChangefeedService {
	return &changefeedService{
		pubSub:    pubSub,
		topicName: topicName,
		hub:       hub,
	}
}

func (cs *changefeedService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(msg)
		}
	}()

	return nil
}

func (cs *changefeedService) processMessage(msg *message.Message) {
	var payload dto.NoteChangeMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Printf("[ERROR] Failed to unmarshal change message: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	cs.hub.BroadcastChange(websocket.ChangeMessage{
		Type:   "notes_changed",
		OrgId:  payload.OrgId,
		NoteId: payload.NoteId,
		Action: payload.Action,
	})

	msg.Ack()
}

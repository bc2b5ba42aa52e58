package messaging

import (
	"context"
	"encoding/json"

	"share-adage-backend/application/ports"

	"github.com/aws/aws-sdk-go-v2/aws"
	awseventbridge "github.com/aws/aws-sdk-go-v2/service/eventbridge"
	"github.com/aws/aws-sdk-go-v2/service/eventbridge/types"
	"go.uber.org/zap"
)

// eventSource identifies this service on the bus.
const eventSource = "share-adage-backend"

// EventBridgePublisher emits domain events to an EventBridge bus. Delivery
// is best-effort: failures are logged and never surfaced to the triggering
// operation.
type EventBridgePublisher struct {
	client  *awseventbridge.Client
	busName string
	logger  *zap.Logger
}

// NewEventBridgePublisher creates an EventBridge-backed publisher.
func NewEventBridgePublisher(client *awseventbridge.Client, busName string, logger *zap.Logger) *EventBridgePublisher {
	return &EventBridgePublisher{
		client:  client,
		busName: busName,
		logger:  logger,
	}
}

var _ ports.EventPublisher = (*EventBridgePublisher)(nil)

// Publish emits one event with the given detail type.
func (p *EventBridgePublisher) Publish(ctx context.Context, detailType string, detail interface{}) {
	if p.busName == "" {
		return
	}

	body, err := json.Marshal(detail)
	if err != nil {
		p.logger.Warn("failed to encode event detail",
			zap.String("detailType", detailType),
			zap.Error(err),
		)
		return
	}

	_, err = p.client.PutEvents(ctx, &awseventbridge.PutEventsInput{
		Entries: []types.PutEventsRequestEntry{
			{
				EventBusName: aws.String(p.busName),
				Source:       aws.String(eventSource),
				DetailType:   aws.String(detailType),
				Detail:       aws.String(string(body)),
			},
		},
	})
	if err != nil {
		p.logger.Warn("failed to publish event",
			zap.String("detailType", detailType),
			zap.Error(err),
		)
	}
}

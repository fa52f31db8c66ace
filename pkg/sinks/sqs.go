package sinks

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Gappu824/aura-ai-hackathon/internal/logger"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/aws/aws-sdk-go-v2/service/sqs/types"
)

type sqsClient interface {
	SendMessage(ctx context.Context, params *sqs.SendMessageInput, optFns ...func(*sqs.Options)) (*sqs.SendMessageOutput, error)
}

// queueSink sends events to an SQS queue. FIFO queues get one message group
// per slot so a slot's events stay ordered, deduplicated by event id.
type queueSink struct {
	id     string
	url    string
	fifo   bool
	client sqsClient
	log    logger.Logger
}

func newSQSSink(ctx context.Context, cfg Config, log logger.Logger) (Sink, error) {
	if cfg.SQS == nil {
		return nil, fmt.Errorf("sink %q missing sqs configuration", cfg.ID)
	}

	awsCfg, err := loadAWSConfig(ctx, cfg.SQS.Region, cfg.SQS.Credentials)
	if err != nil {
		return nil, fmt.Errorf("sink %q: %w", cfg.ID, err)
	}
	return newQueueSink(cfg.ID, cfg.SQS.QueueURL, sqs.NewFromConfig(awsCfg), log), nil
}

func newQueueSink(id, url string, client sqsClient, log logger.Logger) *queueSink {
	return &queueSink{
		id:     id,
		url:    url,
		fifo:   strings.HasSuffix(url, ".fifo"),
		client: client,
		log:    logger.Ensure(log),
	}
}

func (q *queueSink) ID() string   { return q.id }
func (q *queueSink) Type() string { return TypeSQS }

func (q *queueSink) Publish(ctx context.Context, evt Event) error {
	body, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("encode event %s: %w", evt.ID, err)
	}

	input := &sqs.SendMessageInput{
		QueueUrl:          aws.String(q.url),
		MessageBody:       aws.String(string(body)),
		MessageAttributes: make(map[string]types.MessageAttributeValue),
	}
	for name, value := range evt.Attributes() {
		input.MessageAttributes[name] = types.MessageAttributeValue{DataType: aws.String("String"), StringValue: aws.String(value)}
	}
	if q.fifo {
		input.MessageGroupId = aws.String(evt.Slot)
		input.MessageDeduplicationId = aws.String(evt.ID)
	}

	out, err := q.client.SendMessage(ctx, input)
	if err != nil {
		q.log.ErrorObj("sqs sink send failed", "sink_sqs_error", map[string]any{
			"sink_id":  q.id,
			"event_id": evt.ID,
			"error":    err.Error(),
		})
		return fmt.Errorf("send event %s to queue %s: %w", evt.ID, q.id, err)
	}
	q.log.DebugObj("sqs sink delivered event", "sink_sqs_delivery", map[string]any{
		"sink_id":    q.id,
		"event_id":   evt.ID,
		"message_id": aws.ToString(out.MessageId),
	})
	return nil
}

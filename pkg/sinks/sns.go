package sinks

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Gappu824/aura-ai-hackathon/internal/logger"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/aws-sdk-go-v2/service/sns/types"
)

type snsClient interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

// topicSink publishes events to an SNS topic. Subscribers can filter on the
// message attributes without decoding the body.
type topicSink struct {
	id     string
	arn    string
	fifo   bool
	client snsClient
	log    logger.Logger
}

func newSNSSink(ctx context.Context, cfg Config, log logger.Logger) (Sink, error) {
	if cfg.SNS == nil {
		return nil, fmt.Errorf("sink %q missing sns configuration", cfg.ID)
	}

	awsCfg, err := loadAWSConfig(ctx, cfg.SNS.Region, cfg.SNS.Credentials)
	if err != nil {
		return nil, fmt.Errorf("sink %q: %w", cfg.ID, err)
	}
	return newTopicSink(cfg.ID, cfg.SNS.TopicARN, sns.NewFromConfig(awsCfg), log), nil
}

func newTopicSink(id, arn string, client snsClient, log logger.Logger) *topicSink {
	return &topicSink{
		id:     id,
		arn:    arn,
		fifo:   strings.HasSuffix(arn, ".fifo"),
		client: client,
		log:    logger.Ensure(log),
	}
}

func (t *topicSink) ID() string   { return t.id }
func (t *topicSink) Type() string { return TypeSNS }

func (t *topicSink) Publish(ctx context.Context, evt Event) error {
	body, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("encode event %s: %w", evt.ID, err)
	}

	input := &sns.PublishInput{
		TopicArn:          aws.String(t.arn),
		Message:           aws.String(string(body)),
		Subject:           aws.String(evt.Operation + " " + evt.Outcome),
		MessageAttributes: make(map[string]types.MessageAttributeValue),
	}
	for name, value := range evt.Attributes() {
		input.MessageAttributes[name] = types.MessageAttributeValue{DataType: aws.String("String"), StringValue: aws.String(value)}
	}
	if t.fifo {
		input.MessageGroupId = aws.String(evt.Slot)
		input.MessageDeduplicationId = aws.String(evt.ID)
	}

	out, err := t.client.Publish(ctx, input)
	if err != nil {
		t.log.ErrorObj("sns sink publish failed", "sink_sns_error", map[string]any{
			"sink_id":  t.id,
			"event_id": evt.ID,
			"error":    err.Error(),
		})
		return fmt.Errorf("publish event %s to topic %s: %w", evt.ID, t.id, err)
	}
	t.log.DebugObj("sns sink delivered event", "sink_sns_delivery", map[string]any{
		"sink_id":    t.id,
		"event_id":   evt.ID,
		"message_id": aws.ToString(out.MessageId),
	})
	return nil
}

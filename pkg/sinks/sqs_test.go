package sinks

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/Gappu824/aura-ai-hackathon/internal/domain"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
)

type fakeSQSClient struct {
	input *sqs.SendMessageInput
	err   error
}

func (f *fakeSQSClient) SendMessage(_ context.Context, params *sqs.SendMessageInput, _ ...func(*sqs.Options)) (*sqs.SendMessageOutput, error) {
	f.input = params
	if f.err != nil {
		return nil, f.err
	}
	return &sqs.SendMessageOutput{MessageId: aws.String("msg-123")}, nil
}

func TestSQSSinkPublishSuccess(t *testing.T) {
	client := &fakeSQSClient{}
	sink := newQueueSink("queue", "https://example.com/queue", client, nil)

	evt := ClarityEvent("overall_clarity", domain.NewClarityAlert("Runs small."))
	if err := sink.Publish(context.Background(), evt); err != nil {
		t.Fatalf("Publish returned error: %v", err)
	}
	if client.input == nil {
		t.Fatalf("client was not called")
	}
	if got := aws.ToString(client.input.QueueUrl); got != "https://example.com/queue" {
		t.Fatalf("QueueUrl = %s", got)
	}
	attr, ok := client.input.MessageAttributes["operation"]
	if !ok || aws.ToString(attr.StringValue) != OperationClarity || aws.ToString(attr.DataType) != "String" {
		t.Fatalf("operation attribute missing or wrong: %#v", attr)
	}
	if got := aws.ToString(client.input.MessageAttributes["event_id"].StringValue); got != evt.ID {
		t.Fatalf("event_id attribute = %q, want %q", got, evt.ID)
	}
	if client.input.MessageGroupId != nil {
		t.Fatalf("standard queue must not get a message group")
	}
	if body := aws.ToString(client.input.MessageBody); !strings.Contains(body, `"clarity_alert":"Runs small."`) {
		t.Fatalf("MessageBody missing alert: %s", body)
	}
}

func TestSQSSinkFIFOGroupsBySlot(t *testing.T) {
	client := &fakeSQSClient{}
	sink := newQueueSink("queue", "https://example.com/analyses.fifo", client, nil)

	evt := AuthenticityEvent("example:good", domain.AuthenticityResult{Score: 0.9})
	if err := sink.Publish(context.Background(), evt); err != nil {
		t.Fatalf("Publish returned error: %v", err)
	}
	if got := aws.ToString(client.input.MessageGroupId); got != "example:good" {
		t.Fatalf("MessageGroupId = %q", got)
	}
	if got := aws.ToString(client.input.MessageDeduplicationId); got != evt.ID {
		t.Fatalf("MessageDeduplicationId = %q, want %q", got, evt.ID)
	}
}

func TestSQSSinkPublishError(t *testing.T) {
	sink := newQueueSink("queue", "https://example.com/queue", &fakeSQSClient{err: errors.New("boom")}, nil)
	if err := sink.Publish(context.Background(), Event{}); err == nil {
		t.Fatalf("expected error from Publish")
	}
}

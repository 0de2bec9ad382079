package publishers

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/aws-sdk-go-v2/service/sqs"

	"github.com/salaryhelper/salaryhelper-client/internal/logger"
)

type fakeSQS struct {
	got *sqs.SendMessageInput
	err error
}

func (f *fakeSQS) SendMessage(_ context.Context, in *sqs.SendMessageInput, _ ...func(*sqs.Options)) (*sqs.SendMessageOutput, error) {
	f.got = in
	if f.err != nil {
		return nil, f.err
	}
	return &sqs.SendMessageOutput{MessageId: aws.String("m-1")}, nil
}

type fakeSNS struct {
	got *sns.PublishInput
	err error
}

func (f *fakeSNS) Publish(_ context.Context, in *sns.PublishInput, _ ...func(*sns.Options)) (*sns.PublishOutput, error) {
	f.got = in
	if f.err != nil {
		return nil, f.err
	}
	return &sns.PublishOutput{MessageId: aws.String("m-2")}, nil
}

func TestSQSSinkSendsEvent(t *testing.T) {
	api := &fakeSQS{}
	sink := &sqsSink{id: "q", queue: "https://sqs.example.com/q", api: api, log: logger.NopLogger{}}

	if err := sink.Publish(context.Background(), NewEvent(KindInvalidated, "u9")); err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if got := aws.ToString(api.got.QueueUrl); got != "https://sqs.example.com/q" {
		t.Fatalf("QueueUrl = %s", got)
	}
	if attr := api.got.MessageAttributes["event_kind"]; aws.ToString(attr.StringValue) != KindInvalidated || aws.ToString(attr.DataType) != "String" {
		t.Fatalf("event_kind attribute = %#v", attr)
	}
	if attr := api.got.MessageAttributes["user_id"]; aws.ToString(attr.StringValue) != "u9" {
		t.Fatalf("user_id attribute = %#v", attr)
	}
	if !strings.Contains(aws.ToString(api.got.MessageBody), `"kind":"invalidated"`) {
		t.Fatalf("MessageBody = %s", aws.ToString(api.got.MessageBody))
	}
}

func TestSQSSinkError(t *testing.T) {
	sink := &sqsSink{id: "q", api: &fakeSQS{err: errors.New("throttled")}, log: logger.NopLogger{}}
	err := sink.Publish(context.Background(), NewEvent(KindLogin, "u1"))
	if err == nil || !strings.Contains(err.Error(), "throttled") {
		t.Fatalf("expected wrapped send error, got %v", err)
	}
}

func TestSNSSinkSendsEvent(t *testing.T) {
	api := &fakeSNS{}
	sink := &snsSink{id: "t", topic: "arn:aws:sns:ap-east-1:1:sessions", api: api, log: logger.NopLogger{}}

	if err := sink.Publish(context.Background(), NewEvent(KindLogout, "")); err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if got := aws.ToString(api.got.TopicArn); got != "arn:aws:sns:ap-east-1:1:sessions" {
		t.Fatalf("TopicArn = %s", got)
	}
	if got := aws.ToString(api.got.Subject); got != "session logout" {
		t.Fatalf("Subject = %s", got)
	}
	if _, ok := api.got.MessageAttributes["user_id"]; ok {
		t.Fatalf("user_id attribute should be omitted for anonymous events")
	}
}

func TestSNSSinkError(t *testing.T) {
	sink := &snsSink{id: "t", api: &fakeSNS{err: errors.New("denied")}, log: logger.NopLogger{}}
	if err := sink.Publish(context.Background(), NewEvent(KindLogout, "u2")); err == nil {
		t.Fatalf("expected error from Publish")
	}
}

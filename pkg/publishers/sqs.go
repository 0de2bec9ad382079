package publishers

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	sqstypes "github.com/aws/aws-sdk-go-v2/service/sqs/types"

	"github.com/salaryhelper/salaryhelper-client/internal/logger"
)

// sqsAPI is the one SQS call the sink makes.
type sqsAPI interface {
	SendMessage(ctx context.Context, params *sqs.SendMessageInput, optFns ...func(*sqs.Options)) (*sqs.SendMessageOutput, error)
}

// sqsSink enqueues each event as one SQS message.
type sqsSink struct {
	id    string
	queue string
	api   sqsAPI
	log   logger.Logger
}

func newSQSPublisher(ctx context.Context, cfg PublisherConfig, log logger.Logger) (Publisher, error) {
	if cfg.SQS == nil {
		return nil, fmt.Errorf("publisher %q: sqs block missing", cfg.ID)
	}
	awsCfg, err := loadAWSConfig(ctx, cfg.SQS.Region, cfg.SQS.Credentials)
	if err != nil {
		return nil, err
	}
	return &sqsSink{
		id:    cfg.ID,
		queue: cfg.SQS.QueueURL,
		api:   sqs.NewFromConfig(awsCfg),
		log:   logger.Ensure(log),
	}, nil
}

func (s *sqsSink) ID() string   { return s.id }
func (s *sqsSink) Type() string { return TypeSQS }

func (s *sqsSink) Publish(ctx context.Context, evt Event) error {
	body, attrs, err := evt.encode()
	if err != nil {
		return err
	}

	msgAttrs := make(map[string]sqstypes.MessageAttributeValue, len(attrs))
	for k, v := range attrs {
		msgAttrs[k] = sqstypes.MessageAttributeValue{
			DataType:    aws.String("String"),
			StringValue: aws.String(v),
		}
	}

	out, err := s.api.SendMessage(ctx, &sqs.SendMessageInput{
		QueueUrl:          aws.String(s.queue),
		MessageBody:       aws.String(string(body)),
		MessageAttributes: msgAttrs,
	})
	if err != nil {
		err = fmt.Errorf("sqs send: %w", err)
		reportDelivery(s.log, s, evt, nil, err)
		return err
	}
	reportDelivery(s.log, s, evt, aws.ToString(out.MessageId), nil)
	return nil
}

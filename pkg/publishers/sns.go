package publishers

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	snstypes "github.com/aws/aws-sdk-go-v2/service/sns/types"

	"github.com/salaryhelper/salaryhelper-client/internal/logger"
)

// snsAPI is the one SNS call the sink makes.
type snsAPI interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

type snsSink struct {
	id    string
	topic string
	api   snsAPI
	log   logger.Logger
}

func newSNSPublisher(ctx context.Context, cfg PublisherConfig, log logger.Logger) (Publisher, error) {
	if cfg.SNS == nil {
		return nil, fmt.Errorf("publisher %q: sns block missing", cfg.ID)
	}
	awsCfg, err := loadAWSConfig(ctx, cfg.SNS.Region, cfg.SNS.Credentials)
	if err != nil {
		return nil, err
	}
	return &snsSink{
		id:    cfg.ID,
		topic: cfg.SNS.TopicARN,
		api:   sns.NewFromConfig(awsCfg),
		log:   logger.Ensure(log),
	}, nil
}

func (s *snsSink) ID() string   { return s.id }
func (s *snsSink) Type() string { return TypeSNS }

// Publish sets the event kind as the SNS subject so email subscribers get a
// readable line.
func (s *snsSink) Publish(ctx context.Context, evt Event) error {
	body, attrs, err := evt.encode()
	if err != nil {
		return err
	}

	msgAttrs := make(map[string]snstypes.MessageAttributeValue, len(attrs))
	for k, v := range attrs {
		msgAttrs[k] = snstypes.MessageAttributeValue{
			DataType:    aws.String("String"),
			StringValue: aws.String(v),
		}
	}

	out, err := s.api.Publish(ctx, &sns.PublishInput{
		TopicArn:          aws.String(s.topic),
		Subject:           aws.String("session " + evt.Kind),
		Message:           aws.String(string(body)),
		MessageAttributes: msgAttrs,
	})
	if err != nil {
		err = fmt.Errorf("sns publish: %w", err)
		reportDelivery(s.log, s, evt, nil, err)
		return err
	}
	reportDelivery(s.log, s, evt, aws.ToString(out.MessageId), nil)
	return nil
}

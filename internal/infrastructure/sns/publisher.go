package sns

import (
	"context"
	"encoding/json"
	"fmt"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/aws-sdk-go-v2/service/sns/types"
	"github.com/docnotify-api/internal/config"
)

// Publisher emits committed domain events to an SNS topic. A downstream
// dispatcher consumes the topic and handles delivery (push, email, webhooks);
// this service never retries or tracks delivery.
type Publisher interface {
	Publish(ctx context.Context, name string, payload interface{}) error
}

type publisher struct {
	client   *sns.Client
	topicARN string
}

func NewPublisher(cfg *config.Config) (Publisher, error) {
	if cfg.SNSTopicARN == "" {
		return nil, fmt.Errorf("SNS_EVENTS_TOPIC_ARN not configured")
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(cfg.SNSRegion),
	)
	if err != nil {
		return nil, err
	}
	return &publisher{client: sns.NewFromConfig(awsCfg), topicARN: cfg.SNSTopicARN}, nil
}

func (p *publisher) Publish(ctx context.Context, name string, payload interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal %s payload: %w", name, err)
	}
	message := string(body)
	_, err = p.client.Publish(ctx, &sns.PublishInput{
		TopicArn: &p.topicARN,
		Message:  &message,
		MessageAttributes: map[string]types.MessageAttributeValue{
			"event": {
				DataType:    strPtr("String"),
				StringValue: &name,
			},
		},
	})
	return err
}

func strPtr(s string) *string { return &s }

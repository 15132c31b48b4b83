package sns

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/blogger-api-nosql/internal/config"
	"github.com/blogger-api-nosql/internal/notify"
)

// mailJob is the message body consumed by the mail worker subscribed to
// the topic. Actual SMTP delivery happens outside this service.
type mailJob struct {
	Kind  string `json:"kind"`
	Email string `json:"email"`
	Code  string `json:"code"`
}

// Publisher hands mail jobs to an SNS topic, implementing notify.Sender.
type Publisher struct {
	client   *sns.Client
	topicARN string
}

// NewPublisher creates an SNS client with the same region, credentials
// and endpoint override (LocalStack) wiring as the DynamoDB client.
func NewPublisher(cfg *config.Config) (*Publisher, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.AWSRegion),
	}

	if cfg.AWSAccessKeyID != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AWSAccessKeyID, cfg.AWSSecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(), opts...)
	if err != nil {
		return nil, err
	}

	clientOpts := []func(*sns.Options){}
	if cfg.AWSEndpointURL != "" {
		clientOpts = append(clientOpts, func(o *sns.Options) {
			o.BaseEndpoint = aws.String(cfg.AWSEndpointURL)
		})
	}

	return &Publisher{client: sns.NewFromConfig(awsCfg, clientOpts...), topicARN: cfg.MailTopicARN}, nil
}

func (p *Publisher) SendRegistrationConfirmation(ctx context.Context, email, code string) error {
	return p.publish(ctx, notify.KindRegistrationConfirmation, email, code)
}

func (p *Publisher) SendRecoveryPassword(ctx context.Context, email, code string) error {
	return p.publish(ctx, notify.KindRecoveryPassword, email, code)
}

func (p *Publisher) publish(ctx context.Context, kind notify.Kind, email, code string) error {
	body, err := json.Marshal(mailJob{Kind: string(kind), Email: email, Code: code})
	if err != nil {
		return fmt.Errorf("marshal mail job: %w", err)
	}
	msg := string(body)
	_, err = p.client.Publish(ctx, &sns.PublishInput{
		TopicArn: &p.topicARN,
		Message:  &msg,
	})
	return err
}

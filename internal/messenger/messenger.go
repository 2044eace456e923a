package messenger

import (
	"fmt"
	"strings"

	"github.com/ZilDuck/nft-marketplace-engine/internal/config"
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/sqs"
	"go.uber.org/zap"
)

type MessageService interface {
	SendMessage(item Item, body []byte) error
	PollMessages(item Item, handler chan *sqs.Message)
	DeleteMessage(item Item, msg *sqs.Message) error
	GetQueueSize(item Item) (*int, error)
}

type Messenger struct {
	sqs *sqs.SQS
}

type Item string

var (
	SaleSettled    Item = "marketplace.sale.settled"
	AuctionSettled Item = "marketplace.auction.settled"
)

func (i Item) queue() string {
	name := strings.ReplaceAll(string(i), ".", "_")
	return fmt.Sprintf("%s_%s", config.Get().Index, name)
}

func NewMessenger() (MessageService, error) {
	cfg := config.Get().Aws

	sess, err := session.NewSession(&aws.Config{
		Region:      aws.String(cfg.Region),
		Credentials: credentials.NewStaticCredentials(cfg.AccessKey, cfg.SecretKey, ""),
	})
	if err != nil {
		zap.L().With(zap.Error(err)).Error("[Queue] Failed to create aws session")
		return nil, err
	}

	return &Messenger{sqs: sqs.New(sess)}, nil
}

func (m Messenger) SendMessage(item Item, body []byte) error {
	queueUrl, err := m.queueUrl(item)
	if err != nil {
		return err
	}

	_, err = m.sqs.SendMessage(&sqs.SendMessageInput{
		QueueUrl:    queueUrl,
		MessageBody: aws.String(string(body)),
	})
	if err != nil {
		zap.L().With(zap.Error(err), zap.String("queue", item.queue())).Error("[Queue] Failed to send message")
		return err
	}

	zap.L().With(zap.String("queue", item.queue())).Info("[Queue] Published message")

	return nil
}

func (m Messenger) PollMessages(item Item, handler chan *sqs.Message) {
	queueUrl, err := m.queueUrl(item)
	if err != nil {
		zap.L().With(zap.Error(err), zap.String("queue", item.queue())).Error("[Queue] Failed to resolve queue")
		return
	}

	for {
		output, err := m.sqs.ReceiveMessage(&sqs.ReceiveMessageInput{
			QueueUrl:            queueUrl,
			MaxNumberOfMessages: aws.Int64(10),
			WaitTimeSeconds:     aws.Int64(20),
		})
		if err != nil {
			zap.L().With(zap.Error(err), zap.String("queue", item.queue())).Error("[Queue] Failed to receive messages")
			continue
		}

		for _, message := range output.Messages {
			handler <- message
		}
	}
}

func (m Messenger) DeleteMessage(item Item, msg *sqs.Message) error {
	queueUrl, err := m.queueUrl(item)
	if err != nil {
		return err
	}

	_, err = m.sqs.DeleteMessage(&sqs.DeleteMessageInput{
		QueueUrl:      queueUrl,
		ReceiptHandle: msg.ReceiptHandle,
	})

	return err
}

func (m Messenger) GetQueueSize(item Item) (*int, error) {
	queueUrl, err := m.queueUrl(item)
	if err != nil {
		return nil, err
	}

	attrs, err := m.sqs.GetQueueAttributes(&sqs.GetQueueAttributesInput{
		QueueUrl:       queueUrl,
		AttributeNames: []*string{aws.String(sqs.QueueAttributeNameApproximateNumberOfMessages)},
	})
	if err != nil {
		return nil, err
	}

	var size int
	if messages, ok := attrs.Attributes[sqs.QueueAttributeNameApproximateNumberOfMessages]; ok {
		_, err = fmt.Sscanf(*messages, "%d", &size)
	}

	return &size, err
}

func (m Messenger) queueUrl(item Item) (*string, error) {
	result, err := m.sqs.GetQueueUrl(&sqs.GetQueueUrlInput{QueueName: aws.String(item.queue())})
	if err == nil {
		return result.QueueUrl, nil
	}

	if aerr, ok := err.(awserr.Error); ok && aerr.Code() == sqs.ErrCodeQueueDoesNotExist {
		created, createErr := m.sqs.CreateQueue(&sqs.CreateQueueInput{QueueName: aws.String(item.queue())})
		if createErr != nil {
			zap.L().With(zap.Error(createErr), zap.String("queue", item.queue())).Error("[Queue] Failed to create queue")
			return nil, createErr
		}

		return created.QueueUrl, nil
	}

	return nil, err
}

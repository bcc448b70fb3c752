package sqs_helper

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/Roll-Play/votechain/pkg/ledger"
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/sqs"
	"github.com/aws/aws-sdk-go/service/sqs/sqsiface"
)

const BlockMinedEvent = "block_mined"

type SqsHelper struct {
	SqsClient sqsiface.SQSAPI
	QueueUrl  *string
}

func NewSqsHelper(ctx context.Context, queueName string) (*SqsHelper, error) {
	sess, err := session.NewSessionWithOptions(session.Options{
		SharedConfigState: session.SharedConfigEnable,
	})
	if err != nil {
		return nil, fmt.Errorf("create aws session: %w", err)
	}

	return NewSqsHelperWithClient(ctx, sqs.New(sess), queueName)
}

func NewSqsHelperWithClient(ctx context.Context, client sqsiface.SQSAPI, queueName string) (*SqsHelper, error) {
	result, err := client.GetQueueUrlWithContext(ctx, &sqs.GetQueueUrlInput{
		QueueName: aws.String(queueName),
	})
	if err != nil {
		return nil, fmt.Errorf("resolve queue %s: %w", queueName, err)
	}

	return &SqsHelper{
		SqsClient: client,
		QueueUrl:  result.QueueUrl,
	}, nil
}

func (sh SqsHelper) SendMessage(
	ctx context.Context,
	delay int64,
	messageAttributes map[string]*sqs.MessageAttributeValue,
	messageBody string,
) error {
	_, err := sh.SqsClient.SendMessageWithContext(ctx, &sqs.SendMessageInput{
		DelaySeconds:      aws.Int64(delay),
		MessageAttributes: messageAttributes,
		MessageBody:       aws.String(messageBody),
		QueueUrl:          sh.QueueUrl,
	})
	return err
}

func (sh SqsHelper) PublishBlock(ctx context.Context, block ledger.Block) error {
	body, err := json.Marshal(block)
	if err != nil {
		return err
	}

	attributes := map[string]*sqs.MessageAttributeValue{
		"event": {
			DataType:    aws.String("String"),
			StringValue: aws.String(BlockMinedEvent),
		},
		"index": {
			DataType:    aws.String("Number"),
			StringValue: aws.String(strconv.Itoa(block.Index)),
		},
	}

	return sh.SendMessage(ctx, 0, attributes, string(body))
}

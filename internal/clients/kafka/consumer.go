package kafka

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Shopify/sarama"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"moliyabot/internal/logger"
	"moliyabot/internal/model/reports"
)

type consumerConfig interface {
	producerConfig
	ConsumerGroup() string
}

type requestProcessor interface {
	Process(ctx context.Context, req reports.Request)
}

type Consumer struct {
	consumerGroup sarama.ConsumerGroup
	topic         string
	processor     requestProcessor
}

func NewConsumer(cfg consumerConfig, processor requestProcessor) (*Consumer, error) {
	config := sarama.NewConfig()
	config.Version = sarama.V2_5_0_0
	config.Consumer.Offsets.Initial = sarama.OffsetOldest

	consumerGroup, err := sarama.NewConsumerGroup(cfg.Brokers(), cfg.ConsumerGroup(), config)
	return &Consumer{
		consumerGroup: consumerGroup,
		topic:         cfg.ReportsTopic(),
		processor:     processor,
	}, err
}

func (c *Consumer) StartConsuming(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		default:
			err := c.consumerGroup.Consume(ctx, []string{c.topic}, c)
			if err != nil {
				return errors.Wrap(err, fmt.Sprintf("consume from %s", c.topic))
			}
		}
	}
}

func (c *Consumer) Setup(sarama.ConsumerGroupSession) error {
	logger.Info("consumer - setup")
	return nil
}

func (c *Consumer) Cleanup(sarama.ConsumerGroupSession) error {
	logger.Info("consumer - cleanup")
	return nil
}

func (c *Consumer) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for message := range claim.Messages() {
		var req reports.Request
		err := json.Unmarshal(message.Value, &req)
		if err != nil {
			logger.Error("cannot unmarshal kafka message", zap.Error(err))
		} else {
			logger.Info(
				"received report request",
				zap.ByteString("key", message.Key),
				zap.Int64("userID", req.UserID),
				zap.String("period", req.Period),
			)
			c.processor.Process(session.Context(), req)
		}
		session.MarkMessage(message, "")
	}

	return nil
}

// Package kafka consumes video generation jobs from a Kafka topic.
package kafka

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/IBM/sarama"

	"quotereel/pipeline"
)

// ConsumerConfig holds Kafka consumer configuration.
type ConsumerConfig struct {
	Brokers   []string
	Topic     string
	GroupID   string
	Processor *pipeline.Processor
}

// Consumer reads pipeline.Job messages and runs them through the processor.
type Consumer struct {
	group     sarama.ConsumerGroup
	processor *pipeline.Processor
	topic     string
	groupID   string
	ready     chan bool
}

// NewConsumer creates a consumer-group client for the job topic.
func NewConsumer(cfg ConsumerConfig) (*Consumer, error) {
	saramaConfig := sarama.NewConfig()
	saramaConfig.Version = sarama.V3_6_0_0
	saramaConfig.Consumer.Group.Rebalance.GroupStrategies = []sarama.BalanceStrategy{sarama.NewBalanceStrategyRoundRobin()}
	saramaConfig.Consumer.Offsets.Initial = sarama.OffsetNewest
	saramaConfig.Consumer.Return.Errors = true

	group, err := sarama.NewConsumerGroup(cfg.Brokers, cfg.GroupID, saramaConfig)
	if err != nil {
		return nil, err
	}

	return &Consumer{
		group:     group,
		processor: cfg.Processor,
		topic:     cfg.Topic,
		groupID:   cfg.GroupID,
		ready:     make(chan bool),
	}, nil
}

// Start begins consuming; it returns once the group session is established.
func (c *Consumer) Start(ctx context.Context) error {
	handler := &jobHandler{consumer: c, ready: c.ready}

	go func() {
		for {
			if err := c.group.Consume(ctx, []string{c.topic}, handler); err != nil {
				if err == context.Canceled {
					log.Println("Kafka consumer context canceled")
					return
				}
				log.Printf("Error from Kafka consumer: %v", err)
			}
			if ctx.Err() != nil {
				return
			}
			handler.ready = make(chan bool)
		}
	}()

	<-c.ready
	log.Printf("Kafka consumer started (group: %s, topic: %s)", c.groupID, c.topic)

	go func() {
		for err := range c.group.Errors() {
			log.Printf("Kafka consumer error: %v", err)
		}
	}()

	return nil
}

func (c *Consumer) Close() error {
	log.Println("Closing Kafka consumer...")
	return c.group.Close()
}

// jobHandler implements sarama.ConsumerGroupHandler for generation jobs.
// Malformed or invalid messages are marked and skipped; a failed run leaves
// the message unmarked so it can be retried.
type jobHandler struct {
	consumer *Consumer
	ready    chan bool
}

func (h *jobHandler) Setup(sarama.ConsumerGroupSession) error {
	close(h.ready)
	return nil
}

func (h *jobHandler) Cleanup(sarama.ConsumerGroupSession) error { return nil }

func (h *jobHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for {
		select {
		case message := <-claim.Messages():
			if message == nil {
				return nil
			}

			log.Printf("Received Kafka message: partition=%d, offset=%d, key=%s",
				message.Partition, message.Offset, string(message.Key))

			if h.handle(session.Context(), message.Value) {
				session.MarkMessage(message, "")
			}

		case <-session.Context().Done():
			return nil
		}
	}
}

// handle decodes and runs one job, reporting whether to mark the message.
func (h *jobHandler) handle(ctx context.Context, payload []byte) bool {
	job := pipeline.DefaultJob()
	if err := json.Unmarshal(payload, &job); err != nil {
		log.Printf("Failed to unmarshal job message: %v", err)
		return true // skip poison messages
	}

	if job.QuoteCount <= 0 || job.DurationSeconds <= 0 {
		log.Printf("Skipping invalid job (id=%s): counts must be positive", job.ID)
		return true
	}

	log.Printf("Processing generation job: id=%s count=%d", job.ID, job.QuoteCount)
	if _, err := h.consumer.processor.Run(ctx, job); err != nil {
		log.Printf("Failed to process job %s: %v", job.ID, err)
		return false // leave unmarked for retry
	}

	log.Printf("Successfully processed job: id=%s", job.ID)
	return true
}

// StartWithGracefulShutdown runs the consumer until SIGINT/SIGTERM.
func StartWithGracefulShutdown(cfg ConsumerConfig) error {
	consumer, err := NewConsumer(cfg)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := consumer.Start(ctx); err != nil {
		return err
	}

	sigterm := make(chan os.Signal, 1)
	signal.Notify(sigterm, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-sigterm:
		log.Println("Received termination signal")
	case <-ctx.Done():
		log.Println("Context canceled")
	}

	cancel()

	// Give in-flight processing a moment to finish.
	time.Sleep(2 * time.Second)

	return consumer.Close()
}

// Brokers parses the broker list from the environment.
func Brokers() []string {
	brokers := os.Getenv("KAFKA_BOOTSTRAP_SERVERS")
	if brokers == "" {
		brokers = "localhost:9093"
	}
	return strings.Split(brokers, ",")
}

// Topic returns the job topic name.
func Topic() string {
	topic := os.Getenv("KAFKA_TOPIC_GENERATE_REQUESTS")
	if topic == "" {
		topic = "quotereel-generate-requests"
	}
	return topic
}

// GroupID returns the consumer group ID.
func GroupID() string {
	groupID := os.Getenv("KAFKA_CONSUMER_GROUP_ID")
	if groupID == "" {
		groupID = "quotereel-consumer-group"
	}
	return groupID
}

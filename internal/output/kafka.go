package output

import (
	"fmt"
	"strings"
	"time"

	"github.com/IBM/sarama"
)

type KafkaOutput struct {
	producer sarama.SyncProducer
}

func NewKafkaOutput(brokers string) (*KafkaOutput, error) {
	saramaConfig := sarama.NewConfig()
	saramaConfig.Producer.RequiredAcks = sarama.WaitForAll
	saramaConfig.Producer.Retry.Max = 5
	saramaConfig.Producer.Retry.Backoff = 100 * time.Millisecond
	saramaConfig.Producer.Return.Successes = true // Must be true for SyncProducer
	saramaConfig.Net.DialTimeout = 30 * time.Second

	brokerList := strings.Split(brokers, ",")
	producer, err := sarama.NewSyncProducer(brokerList, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create Sarama producer: %w", err)
	}
	return &KafkaOutput{producer: producer}, nil
}

// WriteReport keys the message by range so reruns of one range share a
// partition.
func (k *KafkaOutput) WriteReport(topic string, snap *Snapshot) error {
	if k.producer == nil {
		return fmt.Errorf("Kafka producer is closed")
	}
	msg, err := snap.Encode()
	if err != nil {
		return err
	}
	_, _, err = k.producer.SendMessage(&sarama.ProducerMessage{
		Topic: topic,
		Key:   sarama.StringEncoder(snap.Range.String()),
		Value: sarama.ByteEncoder(msg),
	})
	if err != nil {
		return fmt.Errorf("failed to send message to topic %s: %w", topic, err)
	}
	return nil
}

func (k *KafkaOutput) Close() error {
	if k.producer == nil {
		return nil
	}
	err := k.producer.Close()
	k.producer = nil
	return err
}

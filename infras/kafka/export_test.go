package kafka

import kafkaGo "github.com/segmentio/kafka-go"

func WriterOf(client Client) *kafkaGo.Writer {
	impl, ok := client.(*kafkaClientImpl)
	if !ok {
		return nil
	}

	return impl.writer
}

package queue

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/streadway/amqp"

	"github.com/launchpad-ai/launchpad/internal/metrics"
)

// JobMessage es el trabajo que viaja por la cola resume_jobs.
type JobMessage struct {
	JobID     string `json:"job_id"`
	UserID    string `json:"user_id"`
	ObjectKey string `json:"object_key"`
	Mime      string `json:"mime"`
	Goal      string `json:"goal"`
}

// Publisher escribe trabajos en la cola y updates de estado en el exchange
// topic. Cada publish abre su propio channel, la conexión se comparte.
type Publisher struct {
	conn     *amqp.Connection
	queue    string
	exchange string
}

func Dial(url, queueName, exchange string) (*Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("amqp dial: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("amqp channel: %w", err)
	}
	defer ch.Close()

	_, err = ch.QueueDeclare(
		queueName, // queue name
		true,      // durable (survives broker restarts)
		false,     // auto-delete when unused
		false,     // exclusive
		false,     // no-wait
		nil,       // arguments
	)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("declare queue %s: %w", queueName, err)
	}

	err = ch.ExchangeDeclare(
		exchange, // exchange name
		"topic",  // kind
		true,     // durable
		false,    // auto-delete
		false,    // internal
		false,    // no-wait
		nil,      // arguments
	)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("declare exchange %s: %w", exchange, err)
	}

	return &Publisher{conn: conn, queue: queueName, exchange: exchange}, nil
}

func (p *Publisher) Close() error {
	return p.conn.Close()
}

// PublishJob encola un trabajo de análisis de currículum.
func (p *Publisher) PublishJob(job JobMessage) error {
	ch, err := p.conn.Channel()
	if err != nil {
		metrics.QueueMsgs.Inc(map[string]string{"direction": "published", "outcome": "error"})
		return err
	}
	defer ch.Close()

	body, _ := json.Marshal(job)
	err = ch.Publish(
		"",      // default exchange
		p.queue, // routing key = queue name
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Body:         body,
		},
	)
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	metrics.QueueMsgs.Inc(map[string]string{"direction": "published", "outcome": outcome})
	return err
}

// PublishUpdate manda un update de estado con routing key resume.{job_id}.
func PublishUpdate(conn *amqp.Connection, exchange, jobID string, update map[string]any) error {
	ch, err := conn.Channel()
	if err != nil {
		metrics.QueueMsgs.Inc(map[string]string{"direction": "published", "outcome": "error"})
		return err
	}
	defer ch.Close()

	if update == nil {
		update = map[string]any{}
	}
	if _, ok := update["timestamp"]; !ok {
		update["timestamp"] = time.Now()
	}

	body, _ := json.Marshal(update)
	routingKey := fmt.Sprintf("resume.%s", jobID)

	err = ch.Publish(
		exchange,
		routingKey,
		false,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		},
	)
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	metrics.QueueMsgs.Inc(map[string]string{"direction": "published", "outcome": outcome})
	return err
}

// PublishUpdate sobre la conexión del publisher.
func (p *Publisher) PublishUpdate(jobID string, update map[string]any) error {
	return PublishUpdate(p.conn, p.exchange, jobID, update)
}

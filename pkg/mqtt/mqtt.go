package mqtt

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	mqttv2 "github.com/mochi-mqtt/server/v2"
	"github.com/mochi-mqtt/server/v2/hooks/auth"
	"github.com/mochi-mqtt/server/v2/listeners"
	"github.com/nergy-se/fancontroller/pkg/state"
	"github.com/nergy-se/fancontroller/pkg/version"
	"github.com/sirupsen/logrus"
)

const DefaultTopic = "fancontroller/state"

// Broker is an embedded MQTT broker the controller publishes its state to.
type Broker struct {
	server *mqttv2.Server
	topic  string
	cancel context.CancelFunc
	done   chan struct{}
}

// Start runs a broker listening on address until ctx is done or Close is
// called. wg is released once the broker is closed.
func Start(ctx context.Context, wg *sync.WaitGroup, address, topic string) (*Broker, error) {
	if topic == "" {
		topic = DefaultTopic
	}
	server := mqttv2.New(&mqttv2.Options{
		InlineClient: true,
	})

	// Allow all connections.
	_ = server.AddHook(new(auth.AllowHook), nil)

	tcp := listeners.NewTCP(listeners.Config{ID: "t1", Address: address})
	err := server.AddListener(tcp)
	if err != nil {
		return nil, fmt.Errorf("error adding mqtt listener %s: %w", address, err)
	}

	err = server.Serve()
	if err != nil {
		return nil, fmt.Errorf("error starting mqtt broker: %w", err)
	}

	ctx, cancel := context.WithCancel(ctx)
	b := &Broker{
		server: server,
		topic:  topic,
		cancel: cancel,
		done:   make(chan struct{}),
	}
	err = server.Publish(topic+"/version", []byte(version.Version), true, 0)
	if err != nil {
		logrus.Warnf("mqtt: error publishing version: %s", err)
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		defer close(b.done)
		<-ctx.Done()
		err := server.Close()
		if err != nil {
			logrus.Errorf("mqtt: error closing broker: %s", err)
		}
	}()
	return b, nil
}

// Close stops the broker and waits for its listener to be released.
func (b *Broker) Close() {
	b.cancel()
	<-b.done
}

func (b *Broker) Topic() string {
	return b.topic
}

// Publish sends s as a retained json message so new subscribers see the latest state.
func (b *Broker) Publish(s state.Snapshot) error {
	payload, err := json.Marshal(s.Map())
	if err != nil {
		return err
	}
	return b.server.Publish(b.topic, payload, true, 0)
}

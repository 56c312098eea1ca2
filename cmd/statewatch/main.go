package main

import (
	"context"
	"encoding/json"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/nergy-se/fancontroller/pkg/mqtt"
	"github.com/sirupsen/logrus"
)

func main() {
	broker := flag.String("broker", "tcp://127.0.0.1:1883", "mqtt broker url")
	topic := flag.String("topic", mqtt.DefaultTopic, "state topic")
	clientID := flag.String("client-id", "statewatch", "")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	opts := paho.NewClientOptions().
		AddBroker(*broker).
		SetClientID(*clientID).
		SetAutoReconnect(true).
		SetConnectTimeout(5 * time.Second)
	opts.OnConnect = func(c paho.Client) {
		token := c.Subscribe(*topic, 0, func(_ paho.Client, msg paho.Message) {
			t := mqtt.Telemetry{}
			err := json.Unmarshal(msg.Payload(), &t)
			if err != nil {
				logrus.Errorf("error decoding %s: %s", msg.Topic(), err)
				return
			}
			logrus.Info(t.String())
		})
		if token.Wait() && token.Error() != nil {
			logrus.Error(token.Error())
		}
	}

	client := paho.NewClient(opts)
	token := client.Connect()
	if token.Wait() && token.Error() != nil {
		logrus.Error(token.Error())
		os.Exit(1)
	}

	<-ctx.Done()
	client.Disconnect(250)
}

package app

import (
	"context"
	"fmt"
	"net"
	"sync"

	"github.com/nergy-se/fancontroller/pkg/api/v1/config"
	"github.com/nergy-se/fancontroller/pkg/controller"
	"github.com/nergy-se/fancontroller/pkg/mqtt"
	"github.com/nergy-se/fancontroller/pkg/state"
	"github.com/nergy-se/fancontroller/pkg/version"
	"github.com/nergy-se/fancontroller/pkg/webserver"
	"github.com/sirupsen/logrus"
)

type App struct {
	wg      *sync.WaitGroup
	config  *config.CliConfig
	store   *state.Store
	drivers *drivers
	server  *webserver.Server
}

func New(config *config.CliConfig) *App {
	return &App{
		wg:     &sync.WaitGroup{},
		config: config,
		store:  state.NewStore(),
	}
}

// Start sets up drivers, telemetry and the listener, then runs the control
// loop and request server until ctx is done. Any setup failure is returned;
// the controller never runs without its listener.
func (a *App) Start(ctx context.Context) error {
	err := a.config.Validate()
	if err != nil {
		return err
	}
	logrus.Infof("fancontroller starting, version %s", version.Version)

	a.drivers, err = newDrivers(a.config)
	if err != nil {
		return fmt.Errorf("error initializing drivers: %w", err)
	}

	// indicator starts low, as before any command was received.
	err = a.drivers.toggle.SetLevel(ctx, false)
	if err != nil {
		a.drivers.Close()
		return fmt.Errorf("error resetting toggle: %w", err)
	}

	var publisher controller.Publisher
	var broker *mqtt.Broker
	if a.config.MQTTListen != "" {
		broker, err = mqtt.Start(ctx, a.wg, a.config.MQTTListen, a.config.MQTTTopic)
		if err != nil {
			a.drivers.Close()
			return err
		}
		logrus.Infof("mqtt broker listening on %s, publishing to %s", a.config.MQTTListen, broker.Topic())
		publisher = broker
	}

	a.server = webserver.New(a.store, a.drivers.toggle, a.config.RequestTimeoutDuration(), a.config.MaxRequestBytes)
	err = a.server.Listen(ctx, a.config.ListenAddress)
	if err != nil {
		if broker != nil {
			broker.Close()
		}
		a.drivers.Close()
		return err
	}
	logNetworkInfo(a.server.Addr())

	loop := controller.NewLoop(a.drivers.sensor, a.drivers.actuator, a.store, publisher, a.config.TickDuration(), a.config.ReportDuration())

	a.wg.Add(2)
	go func() {
		defer a.wg.Done()
		loop.Run(ctx)
	}()
	go func() {
		defer a.wg.Done()
		err := a.server.Serve(ctx)
		if err != nil {
			logrus.Errorf("webserver stopped: %s", err)
		}
	}()
	return nil
}

// Wait blocks until everything started by Start has stopped and releases the drivers.
func (a *App) Wait() {
	a.wg.Wait()
	if a.drivers == nil {
		return
	}
	err := a.drivers.Close()
	if err != nil {
		logrus.Errorf("error closing drivers: %s", err)
	}
}

// Addr returns the address the request server is bound to.
func (a *App) Addr() net.Addr {
	if a.server == nil {
		return nil
	}
	return a.server.Addr()
}

func (a *App) State() state.Snapshot {
	return a.store.Get()
}

func logNetworkInfo(addr net.Addr) {
	port := ""
	if tcpAddr, ok := addr.(*net.TCPAddr); ok {
		port = fmt.Sprint(tcpAddr.Port)
	}
	logrus.Infof("server listening on %s", addr)

	addrs, err := net.InterfaceAddrs()
	if err != nil {
		logrus.Warnf("error listing interface addresses: %s", err)
		return
	}
	for _, a := range addrs {
		ipNet, ok := a.(*net.IPNet)
		if !ok || ipNet.IP.IsLoopback() || ipNet.IP.To4() == nil {
			continue
		}
		logrus.Infof("access: http://%s", net.JoinHostPort(ipNet.IP.String(), port))
	}
}

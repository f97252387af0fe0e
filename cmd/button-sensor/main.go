// Command button-sensor polls a debounced push-button on a GPIO line and
// publishes press/release events to MQTT.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lokno/button-sensor/internal/button"
	"github.com/lokno/button-sensor/internal/gpio"
	"github.com/lokno/button-sensor/internal/mqtt"
	"github.com/lokno/button-sensor/internal/status"
	"github.com/lokno/button-sensor/internal/web"
)

func main() {
	poll := flag.Duration("poll", 10*time.Millisecond, "GPIO polling interval")
	debounce := flag.Duration("debounce", 50*time.Millisecond, "Debounce interval")
	idle := flag.Duration("idle", 0, "Released-for duration before an IDLE event (0 to disable)")
	heartbeat := flag.Duration("heartbeat", 15*time.Minute, "Heartbeat interval (0 to disable)")
	broker := flag.String("broker", "tcp://192.168.1.200:1883", "MQTT broker address")
	chip := flag.String("chip", gpio.DefaultChip, "GPIO chip device name")
	line := flag.Int("pin", gpio.DefaultLine, "GPIO line offset for the button")
	pullup := flag.Bool("pullup", true, "Enable the internal pull-up resistor")
	activeLow := flag.Bool("active-low", true, "Treat electrical low as pressed")
	printState := flag.Bool("print-state", false, "Print current debounced state and exit")
	httpAddr := flag.String("http", ":80", "HTTP status address (empty to disable)")

	flag.Parse()

	if err := run(*poll, *debounce, *idle, *heartbeat, *broker, *chip, *line, *pullup, *activeLow, *printState, *httpAddr); err != nil {
		log.Fatalf("fatal: %v", err)
	}
}

func run(poll, debounce, idle, heartbeat time.Duration, broker, chip string, line int, pullup, activeLow, printState bool, httpAddr string) error {
	// Initialize GPIO
	pin, err := gpio.NewRealPin(chip, line)
	if err != nil {
		return fmt.Errorf("init gpio: %w", err)
	}
	defer pin.Close()

	btn := button.New(pin, debounce, pullup, activeLow, button.Millis())
	if err := btn.Begin(); err != nil {
		return fmt.Errorf("init button: %w", err)
	}

	// Print state mode
	if printState {
		fmt.Printf("button: %s\n", button.StateOf(btn.IsPressed()))
		return nil
	}

	// Initialize MQTT
	publisher, err := mqtt.NewRealPublisher(broker)
	if err != nil {
		return fmt.Errorf("init mqtt: %w", err)
	}
	defer publisher.Close()

	// Initialize status tracker (before STARTUP so snapshot is available)
	startTime := time.Now()
	tracker := status.NewTracker(startTime, status.Config{
		PollMs:      poll.Milliseconds(),
		DebounceMs:  debounce.Milliseconds(),
		IdleMs:      idle.Milliseconds(),
		HeartbeatMs: heartbeat.Milliseconds(),
		Chip:        chip,
		Line:        line,
		Pullup:      pullup,
		ActiveLow:   activeLow,
		Broker:      broker,
		HTTPAddr:    httpAddr,
	})
	if net := readNetworkInfo(); net != nil {
		tracker.SetNetwork(net)
	}

	monitor := button.NewMonitor(btn, startTime)
	tracker.Update(monitor.State(), true, monitor.Counts())

	// Publish startup event with full status snapshot
	snap := tracker.Snapshot()
	startupEvent := mqtt.SystemEvent{
		Timestamp:  snap.Now,
		Event:      "STARTUP",
		Retained:   true,
		RawPayload: status.FormatStatusEvent(snap, "STARTUP", ""),
	}
	if err := publisher.PublishSystem(startupEvent); err != nil {
		log.Printf("failed to publish startup event: %v", err)
	} else {
		log.Printf("published startup event")
	}

	// Start HTTP status server
	if httpAddr != "" {
		srv := web.New(httpAddr, tracker)
		go func() {
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Printf("http server error: %v", err)
			}
		}()
		defer srv.Shutdown(context.Background())
		log.Printf("http status server listening on %s", httpAddr)
	}

	log.Printf("started: poll=%v debounce=%v idle=%v broker=%s heartbeat=%v pin=%s:%d",
		poll, debounce, idle, broker, heartbeat, chip, line)

	ticker := time.NewTicker(poll)
	defer ticker.Stop()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	return runLoop(monitor, publisher, publisher, tracker, idle, heartbeat, time.Now, ticker.C, sigCh)
}

func runLoop(monitor *button.Monitor, publisher mqtt.Publisher, mqttStatus mqtt.ConnectionStatus, tracker *status.Tracker, idle, heartbeat time.Duration, now func() time.Time, tick <-chan time.Time, sig <-chan os.Signal) error {
	for {
		select {
		case s := <-sig:
			log.Printf("received %v, shutting down", s)
			signalName := "UNKNOWN"
			if s == syscall.SIGINT {
				signalName = "SIGINT"
			} else if s == syscall.SIGTERM {
				signalName = "SIGTERM"
			}
			event := mqtt.SystemEvent{
				Timestamp: now(),
				Event:     "SHUTDOWN",
				Reason:    signalName,
				Retained:  true,
			}
			if tracker != nil {
				if mqttStatus != nil {
					tracker.SetMQTTConnected(mqttStatus.IsConnected())
				}
				snap := tracker.Snapshot()
				event.RawPayload = status.FormatStatusEvent(snap, "SHUTDOWN", signalName)
			}
			if err := publisher.PublishSystem(event); err != nil {
				log.Printf("failed to publish shutdown event: %v", err)
			} else {
				log.Printf("published shutdown event")
			}
			return nil

		case <-tick:
			t := now()

			event, err := monitor.Poll(t)
			if err != nil {
				log.Printf("gpio read error: %v", err)
				continue
			}

			if event != nil {
				log.Printf("event: %s (button=%s)", event.Type, event.State)
				if err := publisher.Publish(*event); err != nil {
					log.Printf("publish error: %v", err)
					// Don't crash on publish failure
				}
			}

			if idleEvent := monitor.CheckIdle(t, idle); idleEvent != nil {
				log.Printf("event: %s (released for %v)", idleEvent.Type, idle)
				if err := publisher.Publish(*idleEvent); err != nil {
					log.Printf("publish error: %v", err)
				}
			}

			// Check for heartbeat
			if hbData := monitor.CheckHeartbeat(t, heartbeat); hbData != nil {
				log.Printf("heartbeat: uptime=%v pressed=%d released=%d idle=%d",
					hbData.Uptime, hbData.Counts.Pressed, hbData.Counts.Released, hbData.Counts.Idle)

				hbEvent := mqtt.SystemEvent{
					Timestamp: hbData.Timestamp,
					Event:     "HEARTBEAT",
				}
				if tracker != nil {
					if mqttStatus != nil {
						tracker.SetMQTTConnected(mqttStatus.IsConnected())
					}
					// Refresh network info for heartbeat
					if net := readNetworkInfo(); net != nil {
						tracker.SetNetwork(net)
					}
					tracker.Update(monitor.State(), true, monitor.Counts())
					snap := tracker.Snapshot()
					hbEvent.RawPayload = status.FormatStatusEvent(snap, "HEARTBEAT", "")
				}
				if err := publisher.PublishSystem(hbEvent); err != nil {
					log.Printf("heartbeat publish error: %v", err)
				}
			}

			// Update status tracker for HTTP consumers
			if tracker != nil {
				tracker.Update(monitor.State(), true, monitor.Counts())
				if mqttStatus != nil {
					tracker.SetMQTTConnected(mqttStatus.IsConnected())
				}
			}
		}
	}
}

// pi-helper env var names (written to /run/pi-helper.env).
const (
	envNetworkType       = "NETWORK_TYPE"
	envNetworkIP         = "NETWORK_IP"
	envNetworkStatus     = "NETWORK_STATUS"
	envNetworkGateway    = "NETWORK_GATEWAY"
	envNetworkWifiStatus = "NETWORK_WIFI_STATUS"
	envNetworkWifiSSID   = "NETWORK_WIFI_SSID"
)

func readNetworkInfo() *status.NetworkInfo {
	s := os.Getenv(envNetworkStatus)
	if s == "" {
		return nil
	}
	return &status.NetworkInfo{
		Type:       os.Getenv(envNetworkType),
		IP:         os.Getenv(envNetworkIP),
		Status:     s,
		Gateway:    os.Getenv(envNetworkGateway),
		WifiStatus: os.Getenv(envNetworkWifiStatus),
		SSID:       os.Getenv(envNetworkWifiSSID),
	}
}

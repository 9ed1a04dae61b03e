// Command timerbox runs a two-button stopwatch/countdown appliance:
// it polls the buttons, drives the 16x2 LCD and the status LED, and
// publishes timer transitions to MQTT.
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

	"github.com/sweeney/timerbox/internal/clock"
	"github.com/sweeney/timerbox/internal/gpio"
	"github.com/sweeney/timerbox/internal/input"
	"github.com/sweeney/timerbox/internal/lcd"
	"github.com/sweeney/timerbox/internal/logic"
	"github.com/sweeney/timerbox/internal/mqtt"
	"github.com/sweeney/timerbox/internal/render"
	"github.com/sweeney/timerbox/internal/status"
	"github.com/sweeney/timerbox/internal/web"
)

func main() {
	poll := flag.Duration("poll", 10*time.Millisecond, "Button polling interval")
	broker := flag.String("broker", "tcp://192.168.1.200:1883", `MQTT broker address ("off" to disable)`)
	heartbeat := flag.Duration("heartbeat", 15*time.Minute, "Heartbeat interval (0 to disable)")
	pinA := flag.Int("pin-a", gpio.DefaultPinA, "BCM pin number for the stopwatch button")
	pinB := flag.Int("pin-b", gpio.DefaultPinB, "BCM pin number for the countdown button")
	pinLED := flag.Int("pin-led", gpio.DefaultPinLED, "BCM pin number for the status LED")
	i2cBus := flag.String("i2c-bus", "1", "I2C bus for the LCD backpack")
	i2cAddr := flag.Uint("i2c-addr", lcd.DefaultAddr, "I2C address of the LCD backpack")
	printState := flag.Bool("print-state", false, "Print current button state and exit")
	httpAddr := flag.String("http", ":80", "HTTP status address (empty to disable)")

	flag.Parse()

	if err := run(*poll, *broker, *heartbeat, *pinA, *pinB, *pinLED, *i2cBus, uint16(*i2cAddr), *printState, *httpAddr); err != nil {
		log.Fatalf("fatal: %v", err)
	}
}

func run(poll time.Duration, broker string, heartbeat time.Duration, pinA, pinB, pinLED int, i2cBus string, i2cAddr uint16, printState bool, httpAddr string) error {
	// Initialize GPIO
	hw, err := gpio.NewReal(pinA, pinB, pinLED)
	if err != nil {
		return fmt.Errorf("init gpio: %w", err)
	}
	defer hw.Close()

	// Print state mode
	if printState {
		a, b, err := hw.Read()
		if err != nil {
			return fmt.Errorf("read buttons: %w", err)
		}
		fmt.Printf("A: %s, B: %s\n", pressedString(a), pressedString(b))
		return nil
	}

	// Initialize the LCD
	disp, err := lcd.OpenHD44780(i2cBus, i2cAddr)
	if err != nil {
		return fmt.Errorf("open lcd: %w", err)
	}
	defer disp.Close()
	if err := disp.Init(); err != nil {
		return fmt.Errorf("init lcd: %w", err)
	}
	if err := disp.Backlight(true); err != nil {
		return fmt.Errorf("lcd backlight: %w", err)
	}

	// Initialize MQTT
	var publisher mqtt.Publisher
	var connStatus mqtt.ConnectionStatus
	if broker == "off" {
		disabled := mqtt.NewDisabled()
		publisher, connStatus = disabled, disabled
		broker = ""
	} else {
		real := mqtt.NewRealPublisher(broker)
		publisher, connStatus = real, real
	}
	defer publisher.Close()

	// Initialize status tracker (before STARTUP so snapshot is available)
	tracker := status.NewTracker(time.Now(), status.Config{
		PollMs:      poll.Milliseconds(),
		HeartbeatMs: heartbeat.Milliseconds(),
		Broker:      broker,
		HTTPAddr:    httpAddr,
		I2CBus:      i2cBus,
		I2CAddr:     i2cAddr,
		PinA:        pinA,
		PinB:        pinB,
		PinLED:      pinLED,
	})

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

	log.Printf("started: poll=%v broker=%s heartbeat=%v lcd=%s@%#x", poll, broker, heartbeat, i2cBus, i2cAddr)

	ticker := time.NewTicker(poll)
	defer ticker.Stop()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	return runLoop(hw, hw, disp, publisher, connStatus, tracker, heartbeat, clock.NewWall(), time.Now, ticker.C, sigCh)
}

func runLoop(buttons gpio.Buttons, led gpio.LED, disp lcd.Display, publisher mqtt.Publisher, mqttStatus mqtt.ConnectionStatus, tracker *status.Tracker, heartbeat time.Duration, clk clock.Clock, now func() time.Time, tick <-chan time.Time, sig <-chan os.Signal) error {
	machine := logic.NewMachine(now())
	buttonA := input.NewButton(false)
	buttonB := input.NewButton(true) // hold-repeat adjusts the countdown duration
	ticks := logic.NewTickSource(clk.Now())
	blinker := &logic.Blinker{}
	renderer := render.New()

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
			ms := clk.Now()
			t := now()

			a, b, err := buttons.Read()
			if err != nil {
				log.Printf("button read error: %v", err)
				continue
			}

			var events []logic.Event
			if ev, ok := buttonA.Sample(a, ms); ok {
				if e, ok := machine.Apply(logic.ButtonA, ev, t); ok {
					events = append(events, e)
				}
			}
			if ev, ok := buttonB.Sample(b, ms); ok {
				if e, ok := machine.Apply(logic.ButtonB, ev, t); ok {
					events = append(events, e)
				}
			}
			if ticks.Advance(ms) {
				if e, ok := machine.Tick(t); ok {
					events = append(events, e)
				}
			}

			for _, event := range events {
				log.Printf("event: %s (mode=%s)", event.Type, event.State.Mode)
				if err := publisher.Publish(event); err != nil {
					log.Printf("publish error: %v", err)
				}
			}

			// Check for heartbeat
			if hbData := machine.CheckHeartbeat(t, heartbeat); hbData != nil {
				log.Printf("heartbeat: uptime=%v starts=%d/%d finishes=%d resets=%d",
					hbData.Uptime, hbData.Counts.StopwatchStarts, hbData.Counts.CountdownStarts,
					hbData.Counts.CountdownFinishes, hbData.Counts.Resets)

				hbEvent := mqtt.SystemEvent{
					Timestamp: hbData.Timestamp,
					Event:     "HEARTBEAT",
				}
				if tracker != nil {
					if mqttStatus != nil {
						tracker.SetMQTTConnected(mqttStatus.IsConnected())
					}
					tracker.Update(machine.State(), machine.Counts())
					snap := tracker.Snapshot()
					hbEvent.RawPayload = status.FormatStatusEvent(snap, "HEARTBEAT", "")
				}
				if err := publisher.PublishSystem(hbEvent); err != nil {
					log.Printf("heartbeat publish error: %v", err)
				}
			}

			// Render pass: LED blink first, then the display, whose
			// time-up branch may force the LED on.
			st := machine.State()
			level := blinker.Evaluate(st, ms)
			force, err := renderer.Render(st, disp)
			if err != nil {
				log.Printf("lcd write error: %v", err)
			}
			if force {
				level = true
			}
			if err := led.Set(level); err != nil {
				log.Printf("led write error: %v", err)
			}

			// Update status tracker for HTTP consumers
			if tracker != nil {
				tracker.Update(st, machine.Counts())
				if mqttStatus != nil {
					tracker.SetMQTTConnected(mqttStatus.IsConnected())
				}
			}
		}
	}
}

func pressedString(pressed bool) string {
	if pressed {
		return "PRESSED"
	}
	return "RELEASED"
}

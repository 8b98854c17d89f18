package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/ftl/slte-ril/com"
	"github.com/ftl/slte-ril/config"
	"github.com/ftl/slte-ril/ril"
	"github.com/ftl/slte-ril/serial"
	"github.com/ftl/slte-ril/slte"
)

const requestTimeout = 10 * time.Second

var monitorFlags = struct {
	port string
}{}

func newMonitorCmd() *cobra.Command {
	result := &cobra.Command{
		Use:   "monitor",
		Short: "Query the modem state and print all unsolicited responses",
		Args:  cobra.NoArgs,
		RunE:  runMonitor,
	}
	result.Flags().StringVar(&monitorFlags.port, "port", "", "serial port of the modem, detected if empty")
	return result
}

func runMonitor(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	portName, err := modemPortName(cfg)
	if err != nil {
		return err
	}

	c, device, err := openModem(portName, cfg)
	if err != nil {
		return fmt.Errorf("cannot open modem on %s: %w", portName, err)
	}
	defer device.Close()

	adapter, err := slte.New(c, c, cfg.EmergencyNumberFunc(), cfg.Adapter())
	if err != nil {
		return err
	}
	adapter.WithEventCallback(func(e slte.Event) {
		fmt.Fprintf(out, "%s %s: %v\n", e.Outcome, e.Final, e.Value)
	})
	c.Attach(adapter)
	for _, code := range []ril.UnsolicitedCode{
		ril.UnsolRadioStateChanged,
		ril.UnsolCallStateChanged,
		ril.UnsolNewSMS,
		ril.UnsolNITZTimeReceived,
		ril.UnsolSignalStrength,
		ril.UnsolSIMStatusChanged,
	} {
		c.AddUnsolicitedHandler(code, func(code ril.UnsolicitedCode, value any) {
			fmt.Fprintf(out, "%s: %v\n", code, value)
		})
	}

	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer cancel()

	queries := []struct {
		name    string
		command func(ril.ResultFunc)
	}{
		{"card status", adapter.GetIccCardStatus},
		{"signal strength", adapter.GetSignalStrength},
		{"operator", adapter.GetOperator},
		{"available networks", adapter.QueryAvailableNetworks},
	}
	for _, query := range queries {
		value, err := awaitWithTimeout(ctx, query.command)
		if err != nil {
			fmt.Fprintf(out, "%s: %v\n", query.name, err)
			continue
		}
		fmt.Fprintf(out, "%s: %+v\n", query.name, value)
	}

	select {
	case <-ctx.Done():
	case <-closed(c):
		fmt.Fprintln(out, "modem connection closed")
	}
	return nil
}

func awaitWithTimeout(ctx context.Context, command func(ril.ResultFunc)) (any, error) {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()
	return ril.Await(ctx, command)
}

func closed(c *com.COM) <-chan struct{} {
	result := make(chan struct{})
	go func() {
		c.WaitUntilClosed()
		close(result)
	}()
	return result
}

func modemPortName(cfg config.Config) (string, error) {
	if monitorFlags.port != "" {
		return monitorFlags.port, nil
	}
	if cfg.Port != "" {
		return cfg.Port, nil
	}
	return serial.FindModemPortName()
}

func openModem(portName string, cfg config.Config) (*com.COM, io.Closer, error) {
	if cfg.Trace.Filename == "" {
		return serial.Open(portName, cfg.BaudRate)
	}
	tracer := &lumberjack.Logger{
		Filename:   cfg.Trace.Filename,
		MaxSize:    cfg.Trace.MaxSizeMB,
		MaxBackups: cfg.Trace.MaxBackups,
		Compress:   cfg.Trace.Compress,
	}
	c, device, err := serial.OpenWithTrace(portName, cfg.BaudRate, tracer)
	if err != nil {
		tracer.Close()
		return nil, nil, err
	}
	return c, closers{device, tracer}, nil
}

type closers []io.Closer

func (c closers) Close() error {
	var result error
	for _, closer := range c {
		if err := closer.Close(); err != nil && result == nil {
			result = err
		}
	}
	return result
}

/*
Copyright 2024 Tim St. Pierre
Command line for the headline ticker
*/
package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"periph.io/x/host/v3"

	"github.com/tstpierre-tc/lcd2004"
	"github.com/tstpierre-tc/lcd2004/internal/buttons"
	"github.com/tstpierre-tc/lcd2004/internal/headlines"
	"github.com/tstpierre-tc/lcd2004/internal/ticker"
)

type options struct {
	apiKey      string
	baseURL     string
	logLevel    string
	leaguePin   string
	headlinePin string
	lcd         lcd2004.Opts
	ticker      ticker.Config
}

func newOptions() *options {
	o := &options{
		apiKey:      os.Getenv("ESPN_API_KEY"),
		baseURL:     headlines.DefaultBaseURL,
		logLevel:    "info",
		leaguePin:   "GPIO4",
		headlinePin: "GPIO18",
		lcd:         lcd2004.DefaultOpts,
		ticker:      ticker.DefaultConfig,
	}
	o.lcd.RowAddresses = append([]byte(nil), lcd2004.DefaultOpts.RowAddresses...)
	return o
}

// NewRootCmd builds the ticker command.
func NewRootCmd() *cobra.Command {
	o := newOptions()
	root := &cobra.Command{
		Use:          "ticker",
		Short:        "Show ESPN headlines on a 20x4 character LCD",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			lvl, err := log.ParseLevel(o.logLevel)
			if err != nil {
				return err
			}
			log.SetLevel(lvl)
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), o)
		},
	}

	f := root.Flags()
	f.StringVar(&o.apiKey, "api-key", o.apiKey, "ESPN API key (default $ESPN_API_KEY)")
	f.StringVar(&o.baseURL, "base-url", o.baseURL, "ESPN sports API base URL")
	f.StringVar(&o.leaguePin, "league-pin", o.leaguePin, "GPIO of the next league button")
	f.StringVar(&o.headlinePin, "headline-pin", o.headlinePin, "GPIO of the next headline button")
	f.StringVar(&o.lcd.Pins.RS, "pin-rs", o.lcd.Pins.RS, "GPIO of the LCD register select line")
	f.StringVar(&o.lcd.Pins.E, "pin-e", o.lcd.Pins.E, "GPIO of the LCD enable line")
	f.StringVar(&o.lcd.Pins.D4, "pin-d4", o.lcd.Pins.D4, "GPIO of LCD data line 4")
	f.StringVar(&o.lcd.Pins.D5, "pin-d5", o.lcd.Pins.D5, "GPIO of LCD data line 5")
	f.StringVar(&o.lcd.Pins.D6, "pin-d6", o.lcd.Pins.D6, "GPIO of LCD data line 6")
	f.StringVar(&o.lcd.Pins.D7, "pin-d7", o.lcd.Pins.D7, "GPIO of LCD data line 7")
	f.Uint8Var(&o.lcd.Cols, "cols", o.lcd.Cols, "characters per LCD line")
	f.BytesHexVar(&o.lcd.RowAddresses, "row-addresses", o.lcd.RowAddresses, "DDRAM address of each LCD line, hex")
	f.DurationVar(&o.lcd.SettleDelay, "settle-delay", o.lcd.SettleDelay, "wait around each enable pulse")
	f.DurationVar(&o.lcd.PulseWidth, "pulse-width", o.lcd.PulseWidth, "enable pulse width")
	f.DurationVar(&o.ticker.Splash, "splash", o.ticker.Splash, "how long the intro screen is shown")
	f.DurationVar(&o.ticker.Poll, "poll", o.ticker.Poll, "button poll interval")
	f.DurationVar(&o.ticker.Holdoff, "holdoff", o.ticker.Holdoff, "pause after a button press")
	root.PersistentFlags().StringVar(&o.logLevel, "log-level", o.logLevel, "log level (debug, info, warn, error)")
	return root
}

func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return NewRootCmd().ExecuteContext(ctx)
}

func run(ctx context.Context, o *options) error {
	if o.apiKey == "" {
		log.Warn("No ESPN API key set, requests will be rejected")
	}
	o.lcd.Lines = uint8(len(o.lcd.RowAddresses))
	o.ticker.Lines = len(o.lcd.RowAddresses)
	o.ticker.Width = int(o.lcd.Cols)

	if _, err := host.Init(); err != nil {
		return fmt.Errorf("host init: %w", err)
	}
	dev, err := lcd2004.NewGPIO(&o.lcd)
	if err != nil {
		return err
	}
	if err := dev.Init(); err != nil {
		return err
	}
	defer dev.Halt()

	league, err := buttons.Open(o.leaguePin)
	if err != nil {
		return err
	}
	headline, err := buttons.Open(o.headlinePin)
	if err != nil {
		return err
	}

	src := headlines.NewClient(o.apiKey)
	src.BaseURL = o.baseURL

	log.Infof("Ticker running on %s", dev)
	err = ticker.New(dev, src, &o.ticker).Run(ctx, league, headline)
	if ctx.Err() != nil {
		log.Info("Shutting down")
		return nil
	}
	return err
}

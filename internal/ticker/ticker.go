/*
Copyright 2024 Tim St. Pierre
Headline ticker: league and headline selection driven by two buttons
*/
package ticker

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/tstpierre-tc/lcd2004"
	"github.com/tstpierre-tc/lcd2004/internal/headlines"
)

type Display interface {
	WriteFrame(f lcd2004.Frame) error
}

type Source interface {
	Fetch(ctx context.Context, league headlines.League) ([]headlines.Record, error)
}

// Input is a button reporting one true per press.
type Input interface {
	Pressed() bool
}

type Config struct {
	Width int
	Lines int
	// Leagues in the order the league button cycles through them
	Leagues []headlines.League
	// How long the intro screen stays up
	Splash time.Duration
	// Interval between button polls
	Poll time.Duration
	// Pause after a handled press
	Holdoff time.Duration
}

var DefaultConfig = Config{
	Width:   20,
	Lines:   4,
	Leagues: headlines.Leagues,
	Splash:  5 * time.Second,
	Poll:    50 * time.Millisecond,
	Holdoff: time.Second,
}

const (
	msgFetchFailed = "Unable to fetch headlines"
	msgNoHeadlines = "No headlines"
)

type Ticker struct {
	disp     Display
	src      Source
	cfg      Config
	league   int
	records  []headlines.Record
	headline int
}

// New returns a ticker on the first league. Use default config if nil is used.
func New(disp Display, src Source, cfg *Config) *Ticker {
	if cfg == nil {
		cfg = &DefaultConfig
	}
	c := *cfg
	if len(c.Leagues) == 0 {
		c.Leagues = headlines.Leagues
	}
	return &Ticker{disp: disp, src: src, cfg: c}
}

// League returns the league currently shown.
func (t *Ticker) League() headlines.League {
	return t.cfg.Leagues[t.league]
}

func (t *Ticker) Splash() error {
	return t.disp.WriteFrame(lcd2004.Banner(t.cfg.Width, "ESPN", "Headlines Ticker"))
}

// Show fetches the current league and displays its first headline. A
// failed fetch is logged and shown on the display, it is not returned.
func (t *Ticker) Show(ctx context.Context) error {
	l := t.League()
	recs, err := t.src.Fetch(ctx, l)
	if err != nil {
		log.WithError(err).Warnf("Fetching %s headlines", l.Name)
		t.records, t.headline = nil, 0
		return t.message(msgFetchFailed)
	}
	t.records, t.headline = recs, 0
	return t.render()
}

func (t *Ticker) NextLeague(ctx context.Context) error {
	t.league = (t.league + 1) % len(t.cfg.Leagues)
	log.Infof("League %s", t.League().Name)
	return t.Show(ctx)
}

func (t *Ticker) NextHeadline() error {
	if len(t.records) > 0 {
		t.headline = (t.headline + 1) % len(t.records)
	}
	return t.render()
}

func (t *Ticker) render() error {
	if len(t.records) == 0 {
		return t.message(msgNoHeadlines)
	}
	r := t.records[t.headline]
	log.Debugf("Showing %s headline %d: %s", t.League().Name, t.headline, r.Headline)
	return t.disp.WriteFrame(lcd2004.WrapHeadline(t.League().Name, r.Headline, t.cfg.Width, t.cfg.Lines))
}

func (t *Ticker) message(msg string) error {
	return t.disp.WriteFrame(lcd2004.WrapHeadline(t.League().Name, msg, t.cfg.Width, t.cfg.Lines))
}

// Run shows the intro screen and the first league, then polls the buttons
// until ctx is done. Frames are always written whole.
func (t *Ticker) Run(ctx context.Context, league, headline Input) error {
	if err := t.Splash(); err != nil {
		return err
	}
	if err := wait(ctx, t.cfg.Splash); err != nil {
		return err
	}
	if err := t.Show(ctx); err != nil {
		return err
	}

	tk := time.NewTicker(t.cfg.Poll)
	defer tk.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-tk.C:
		}
		var err error
		switch {
		case league.Pressed():
			err = t.NextLeague(ctx)
		case headline.Pressed():
			err = t.NextHeadline()
		default:
			continue
		}
		if err != nil {
			return err
		}
		if err := wait(ctx, t.cfg.Holdoff); err != nil {
			return err
		}
	}
}

func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

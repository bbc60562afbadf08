package render

import (
	"context"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/lguibr/pongai/game"
	"github.com/lguibr/pongai/utils"
)

// Canvas is the part of a tcell.Screen the terminal draws on.
type Canvas interface {
	SetContent(x, y int, primary rune, combining []rune, style tcell.Style)
	Size() (width, height int)
}

var (
	styleDefault = tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite)
	styleHeader  = styleDefault.Foreground(tcell.ColorAqua).Bold(true)
	stylePrompt  = styleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorYellow)
	styleEvent   = styleDefault.Foreground(tcell.ColorGray)
)

// Terminal runs a match locally: keyboard input, a fixed rate simulation
// and drawing all happen on the goroutine that calls Run.
type Terminal struct {
	cfg    utils.Config
	match  *game.Match
	canvas Canvas

	footprints  bool
	predictions bool
	lastEvent   string
	prompt      string

	// keys feeds the confirm prompt while Run is active; done aborts it.
	keys <-chan keyPress
	done <-chan struct{}
	show func()
}

type keyPress struct {
	key tcell.Key
	r   rune
}

// NewTerminal builds a terminal runner drawing on canvas.
func NewTerminal(canvas Canvas, cfg utils.Config) (*Terminal, error) {
	t := &Terminal{
		cfg:         cfg,
		canvas:      canvas,
		footprints:  cfg.Footprints,
		predictions: cfg.Predictions,
	}
	match, err := game.NewMatch(cfg, game.WithNotifier(game.NotifierFunc(t.notify)), game.WithConfirmer(t.confirm))
	if err != nil {
		return nil, err
	}
	t.match = match
	return t, nil
}

// Match exposes the hosted match.
func (t *Terminal) Match() *game.Match { return t.match }

// Run polls screen for input and advances the match until ctx is done or
// the user quits.
func (t *Terminal) Run(ctx context.Context, screen tcell.Screen) error {
	keys := make(chan keyPress, 16)
	t.keys, t.done, t.show = keys, ctx.Done(), screen.Show
	defer func() { t.keys, t.done, t.show = nil, nil, nil }()

	go func() {
		defer close(keys)
		for {
			switch ev := screen.PollEvent().(type) {
			case nil:
				return
			case *tcell.EventResize:
				screen.Sync()
			case *tcell.EventKey:
				select {
				case keys <- keyPress{key: ev.Key(), r: ev.Rune()}:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	ticker := time.NewTicker(t.cfg.TickPeriod())
	defer ticker.Stop()
	last := time.Now()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case kp, ok := <-keys:
			if !ok || !t.HandleKey(kp.key, kp.r) {
				return nil
			}
		case now := <-ticker.C:
			t.Step(now.Sub(last).Seconds())
			last = now
		}
		screen.Clear()
		t.Draw()
		screen.Show()
	}
}

// Step advances the match by dt, clamped to MaxFrameDelta.
func (t *Terminal) Step(dt float64) {
	t.match.Update(utils.Clamp(dt, 0, t.cfg.MaxFrameDelta))
}

func (t *Terminal) notify(e game.Event) {
	t.lastEvent = describeEvent(e)
}

// HandleKey applies one key press. It reports false when the user quits.
func (t *Terminal) HandleKey(key tcell.Key, r rune) bool {
	switch key {
	case tcell.KeyCtrlC:
		return false
	case tcell.KeyEscape:
		t.match.Stop(true)
	case tcell.KeyUp:
		t.match.Apply(1, game.MoveUp())
	case tcell.KeyDown:
		t.match.Apply(1, game.MoveDown())
	case tcell.KeyLeft, tcell.KeyRight:
		t.match.Apply(1, game.Stop())
	case tcell.KeyRune:
		t.handleRune(r)
	}
	return true
}

func (t *Terminal) handleRune(r rune) {
	switch r {
	case '0', '1', '2':
		t.match.Start(int(r - '0'))
	case 'q':
		t.match.Apply(0, game.MoveUp())
	case 'a':
		t.match.Apply(0, game.MoveDown())
	case 'z':
		t.match.Apply(0, game.Stop())
	case 'p':
		t.match.Apply(1, game.MoveUp())
	case 'l':
		t.match.Apply(1, game.MoveDown())
	case 'm':
		t.match.Apply(1, game.Stop())
	case 'f':
		t.footprints = !t.footprints
		t.match.SetFootprints(t.footprints)
	case 'x':
		t.predictions = !t.predictions
		t.match.SetPredictions(t.predictions)
	}
}

// confirm shows prompt and blocks until y or n is pressed. Without a key
// source, e.g. outside Run, or once Run's context is done, it declines.
func (t *Terminal) confirm(prompt string) bool {
	if t.keys == nil {
		return false
	}
	t.prompt = prompt + " (y/n)"
	defer func() { t.prompt = "" }()
	t.Draw()
	if t.show != nil {
		t.show()
	}

	for {
		select {
		case <-t.done:
			return false
		case kp, ok := <-t.keys:
			if !ok || kp.key == tcell.KeyCtrlC || kp.key == tcell.KeyEscape {
				return false
			}
			switch kp.r {
			case 'y', 'Y':
				return true
			case 'n', 'N':
				return false
			}
		}
	}
}

// Draw renders the current state: header line, court, and the prompt.
func (t *Terminal) Draw() {
	width, height := t.canvas.Size()
	if width <= 0 || height < 2 {
		return
	}
	state := t.match.Snapshot()

	t.drawText(0, 0, Header(state), styleHeader)
	if t.lastEvent != "" {
		t.drawText(width-len(t.lastEvent), 0, t.lastEvent, styleEvent)
	}

	for y, row := range Rasterize(state, width, height-1) {
		for x, pixel := range row {
			style := styleDefault.Foreground(tcell.NewRGBColor(int32(pixel.R), int32(pixel.G), int32(pixel.B)))
			t.canvas.SetContent(x, y+1, rune(grayToASCII(rgbToGray(pixel))), nil, style)
		}
	}

	if t.prompt != "" {
		t.drawText((width-len(t.prompt))/2, height/2, t.prompt, stylePrompt)
	}
}

func (t *Terminal) drawText(x, y int, text string, style tcell.Style) {
	for i, r := range text {
		t.canvas.SetContent(x+i, y, r, nil, style)
	}
}

func describeEvent(e game.Event) string {
	switch e.Kind {
	case game.EventGoalScored:
		return fmt.Sprintf("goal player %d (%d)", e.Player+1, e.Score)
	case game.EventMatchWon:
		return fmt.Sprintf("player %d wins", e.Player+1)
	default:
		return string(e.Kind)
	}
}

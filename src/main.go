package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/integrii/flaggy"
	"lifelapse/src/frame"
	"lifelapse/src/universe"
	"lifelapse/src/view"
)

//frameSink is the sink which has to be closed when the run is over
type frameSink interface {
	universe.FrameSink
	Close() error
}

var (
	sinks = map[string]func(eo *EnvOptions, o *universe.Options) (frameSink, error){
		"bmp": func(eo *EnvOptions, o *universe.Options) (frameSink, error) {
			return frame.NewBMPSink(eo.out, eo.frameOptions())
		},
		"gif": func(eo *EnvOptions, o *universe.Options) (frameSink, error) {
			if err := os.MkdirAll(eo.out, 0755); err != nil {
				return nil, err
			}
			return frame.NewGIFSink(filepath.Join(eo.out, "lifelapse.gif"), o.FPS, eo.frameOptions()), nil
		},
	}
)

type EnvOptions struct {
	interactive bool
	out         string
	format      string
	scale       int
	flip        bool
}

func (eo *EnvOptions) frameOptions() frame.Options {
	return frame.Options{Flip: eo.flip, Scale: eo.scale}
}

func main() {
	eo, uo := initOptions()

	if err := uo.Validate(); err != nil {
		flaggy.ShowHelpAndExit(err.Error())
	}

	sink, err := sinks[eo.format](eo, uo)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cannot create the frame sink: %v\n", err)
		os.Exit(1)
	}

	var stateCh chan universe.Status
	if !eo.interactive {
		stateCh = make(chan universe.Status, 10) //the buffered channel to getting the universe status
	}

	u, err := universe.NewUniverse(*uo, sink, stateCh)
	if err != nil {
		flaggy.ShowHelpAndExit(err.Error())
	}

	if eo.interactive {
		v := view.NewConsoleUI()
		u.RegisterViewer(v)
		u.SettleWithRandomData()
		v.Start()
		u.Close()
	} else {
		out := view.NewConsoleOut(uo.FPS)
		u.RegisterViewer(out)
		u.SettleWithRandomData()
		out.Start()
		u.Run()
		for st := range stateCh {
			if st.RunningMode == universe.RunningStateFinished {
				out.Report(st)
				break
			}
		}
		u.Close()
	}

	if err := sink.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Cannot write the frames: %v\n", err)
		os.Exit(1)
	}
	if err := u.Err(); err != nil {
		//a missing frame breaks the sequence, the run is failed
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

func initOptions() (eo *EnvOptions, uo *universe.Options) {

	o := universe.DefaultUniverseOptions
	o.Seed = time.Now().UnixNano()
	uo = &o
	formatNames := make([]string, 0, len(sinks))
	for k := range sinks {
		formatNames = append(formatNames, k)
	}
	sort.Strings(formatNames)
	eo = &EnvOptions{out: "images", format: "bmp", scale: 1}
	flaggy.SetName("lifelapse")
	flaggy.SetDescription("Renders the time-lapse of \"The Life\" game, one image per generation")
	flaggy.DefaultParser.ShowHelpOnUnexpected = true
	flaggy.Int(&uo.Cols, "x", "cols", "Width of a simulation field")
	flaggy.Int(&uo.Rows, "y", "rows", "Height of a simulation field")
	flaggy.Float64(&uo.Density, "d", "density", "Probability of a cell being alive at the first iteration (0.0 to 1.0)")
	flaggy.Int(&uo.FPS, "f", "fps", "Frames per second of the time-lapse")
	flaggy.Int(&uo.Duration, "t", "duration", "Duration of the time-lapse in seconds")
	flaggy.Int64(&uo.Seed, "", "seed", "Random seed, the same seed produces the same frames")
	flaggy.Int(&uo.Workers, "w", "workers", "Goroutines computing one generation")
	flaggy.Duration(&uo.Interval, "i", "interval", "Interval between the steps in format the number with 'ms' suffix, for example 150ms")
	flaggy.String(&eo.out, "o", "out", "Output directory for the frames")
	flaggy.String(&eo.format, "", "format", "Frames format ["+strings.Join(formatNames, "|")+"], gif keeps all the frames in memory until the end of the run")
	flaggy.Int(&eo.scale, "", "scale", "Every cell becomes scale x scale pixels")
	flaggy.Bool(&eo.flip, "", "flip", "Flip the frames vertically")
	flaggy.Bool(&eo.interactive, "n", "interactive", "Start interactive mode")

	flaggy.Parse()

	if _, ok := sinks[eo.format]; !ok {
		flaggy.ShowHelpAndExit("unknown format")
	}
	if eo.scale < 1 {
		flaggy.ShowHelpAndExit("scale must be at least 1")
	}
	if eo.interactive && uo.Interval == 0 {
		uo.Interval = universe.DefSimulationInterval
	}

	return
}

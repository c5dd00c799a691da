package view

import (
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"github.com/logrusorgru/aurora"
	"lifelapse/src/universe"
)

//ConsoleOut prints the run configuration and the progress of the headless run
type ConsoleOut struct {
	u         universe.Universe
	w         io.Writer
	every     int
	last      int
	startTime time.Time
}

//NewConsoleOut creates the viewer which reports the progress every `every` frames
func NewConsoleOut(every int) *ConsoleOut {
	if every < 1 {
		every = 1
	}
	return &ConsoleOut{w: os.Stdout, every: every, last: -1}
}

//Refresh prints the progress line every `every` frames
func (c *ConsoleOut) Refresh() {
	st := c.u.Status()
	if st.RunningMode == universe.RunningStateFinished {
		return
	}
	if st.IterationNum != c.last && st.IterationNum%c.every == 0 {
		c.last = st.IterationNum
		fmt.Fprintf(c.w, "  %s %v/%v, live cells: %v, births: %v, step time: %v\n",
			aurora.Cyan("Frames done:"), st.IterationNum, c.u.Options().Frames(),
			st.LiveCells, st.Births, st.IterationTime.Round(time.Microsecond))
	}
}

//Report prints the result of the finished run
func (c *ConsoleOut) Report(st universe.Status) {
	totalTime := time.Since(c.startTime).Round(time.Millisecond)
	resultData := map[string]interface{}{
		"Frames":     st.IterationNum,
		"Total time": totalTime,
		"Live cells": st.LiveCells,
	}
	if st.Err != nil {
		fmt.Fprintln(c.w, aurora.Red("\nFailed:"))
		resultData["Error"] = st.Err
	} else {
		fmt.Fprintln(c.w, aurora.Green("\nFinished:"))
	}
	c.printHashData(resultData)
}

func (c *ConsoleOut) Register(u universe.Universe) {
	c.u = u
	o := c.u.Options()
	fmt.Fprintln(c.w, "Running configuration:")
	c.printHashData(map[string]interface{}{
		"Dimension": fmt.Sprintf("%v x %v", o.Cols, o.Rows),
		"Density":   o.Density,
		"Frames":    fmt.Sprintf("%v (%v fps x %v s)", o.Frames(), o.FPS, o.Duration),
		"Seed":      o.Seed,
		"Workers":   o.Workers,
	})
}

func (c *ConsoleOut) Start() {
	c.startTime = time.Now()
	fmt.Fprintln(c.w, "\nSimulation started...")
}

func (c *ConsoleOut) printHashData(d map[string]interface{}) {
	propNames := make([]string, 0, len(d))
	for k := range d {
		propNames = append(propNames, k)
	}
	sort.Strings(propNames)
	for _, propName := range propNames {
		fmt.Fprintf(c.w, "  %s: %v\n", aurora.Green(propName), d[propName])
	}
}

package main

import (
	"fmt"
	"io"
	"time"

	"erasec/internal/pipeline"
)

var stageVerbs = map[pipeline.Stage]string{
	pipeline.StageLoad:      "loaded",
	pipeline.StageTranslate: "erased",
	pipeline.StageVerify:    "verified",
	pipeline.StageWrite:     "written",
}

func printStageTimings(out io.Writer, timings pipeline.Timings) error {
	for _, st := range pipeline.Stages {
		if !timings.Has(st) {
			continue
		}
		if _, err := fmt.Fprintf(out, "%s %.1f ms\n", stageVerbs[st], toMillis(timings.Duration(st))); err != nil {
			return err
		}
	}
	return nil
}

func toMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}

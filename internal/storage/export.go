package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/san-kum/studiofx/internal/dynamo"
)

type ExportData struct {
	Effect    string             `json:"effect"`
	Seed      int64              `json:"seed"`
	FrameRate float64            `json:"frame_rate"`
	Width     int                `json:"width"`
	Height    int                `json:"height"`
	Spring    string             `json:"spring,omitempty"`
	Pointer   string             `json:"pointer"`
	Stride    int                `json:"stride"`
	Steps     int                `json:"steps"`
	Times     []float64          `json:"times"`
	States    [][]float64        `json:"states"`
	Controls  [][]float64        `json:"controls"`
	Metrics   map[string]float64 `json:"metrics"`
}

func ExportJSON(w io.Writer, meta *RunMetadata, tr *Trace) error {
	data := ExportData{
		Effect:    meta.Effect,
		Seed:      meta.Seed,
		FrameRate: meta.FrameRate,
		Width:     meta.Width,
		Height:    meta.Height,
		Spring:    meta.Spring,
		Pointer:   meta.Pointer,
		Stride:    meta.Stride,
		Steps:     len(tr.Times),
		Times:     tr.Times,
		States:    tr.States,
		Controls:  tr.Controls,
		Metrics:   meta.Metrics,
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

func ExportCSV(w io.Writer, tr *Trace) error {
	states := make([]dynamo.State, len(tr.States))
	for i, s := range tr.States {
		states[i] = s
	}
	controls := make([]dynamo.Control, len(tr.Controls))
	for i, c := range tr.Controls {
		controls[i] = c
	}
	return writeTrace(w, states, controls, tr.Times)
}

// writeTrace lays a run out as one row per tick: time, the snapshot as x0..,
// then the pointer sample as u0...
func writeTrace(out io.Writer, states []dynamo.State, controls []dynamo.Control, times []float64) error {
	w := csv.NewWriter(out)

	if len(states) == 0 {
		return nil
	}

	header := []string{"time"}
	for i := range states[0] {
		header = append(header, fmt.Sprintf("x%d", i))
	}

	numControls := 0
	if len(controls) > 0 && len(controls[0]) > 0 {
		numControls = len(controls[0])
		for i := 0; i < numControls; i++ {
			header = append(header, fmt.Sprintf("u%d", i))
		}
	}

	if err := w.Write(header); err != nil {
		return err
	}

	for i := range states {
		row := []string{strconv.FormatFloat(times[i], 'f', 6, 64)}

		for _, val := range states[i] {
			row = append(row, strconv.FormatFloat(val, 'f', 6, 64))
		}

		if i < len(controls) && len(controls[i]) > 0 {
			for _, val := range controls[i] {
				row = append(row, strconv.FormatFloat(val, 'f', 6, 64))
			}
		} else if numControls > 0 {
			for j := 0; j < numControls; j++ {
				row = append(row, "0")
			}
		}

		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

// Package telemetry records per-cycle control samples for offline
// analysis. The CSV schema matches the tuning tooling:
// Time_ms,Target_deg,Actual_deg,Error_deg,Control_RPM,Velocity_RPM.
package telemetry

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
)

// Sample is one joint's state at one control cycle.
type Sample struct {
	TimeMS   float64 // milliseconds since the start of the run
	Target   float64 // setpoint angle (deg)
	Actual   float64 // measured angle (deg)
	Error    float64 // Target - Actual (deg)
	Control  float64 // dispatched speed command (RPM)
	Velocity float64 // measured velocity (RPM)
}

// Log is a bounded in-memory recorder. Once full it drops further
// samples rather than growing, so a recording task can run unattended.
type Log struct {
	samples []Sample
	max     int
}

// NewLog creates a recorder holding at most max samples.
func NewLog(max int) *Log {
	return &Log{samples: make([]Sample, 0, max), max: max}
}

// Record appends a sample; full logs drop it. Returns false on drop.
func (l *Log) Record(s Sample) bool {
	if len(l.samples) >= l.max {
		return false
	}
	l.samples = append(l.samples, s)
	return true
}

// Samples returns the recorded samples in order.
func (l *Log) Samples() []Sample { return l.samples }

// Len returns the number of recorded samples.
func (l *Log) Len() int { return len(l.samples) }

// Reset discards all recorded samples.
func (l *Log) Reset() { l.samples = l.samples[:0] }

var csvHeader = []string{"Time_ms", "Target_deg", "Actual_deg", "Error_deg", "Control_RPM", "Velocity_RPM"}

// WriteCSV writes samples with the standard header.
func WriteCSV(w io.Writer, samples []Sample) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, s := range samples {
		rec := []string{
			formatFloat(s.TimeMS),
			formatFloat(s.Target),
			formatFloat(s.Actual),
			formatFloat(s.Error),
			formatFloat(s.Control),
			formatFloat(s.Velocity),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadCSV parses a telemetry file written by WriteCSV (or the firmware's
// logger, which shares the schema).
func ReadCSV(r io.Reader) ([]Sample, error) {
	cr := csv.NewReader(r)
	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	if len(header) != len(csvHeader) {
		return nil, fmt.Errorf("unexpected column count %d", len(header))
	}

	var samples []Sample
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		var vals [6]float64
		for i, field := range rec {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("line %d column %s: %w", line, csvHeader[i], err)
			}
			vals[i] = v
		}
		samples = append(samples, Sample{
			TimeMS:   vals[0],
			Target:   vals[1],
			Actual:   vals[2],
			Error:    vals[3],
			Control:  vals[4],
			Velocity: vals[5],
		})
	}
	return samples, nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

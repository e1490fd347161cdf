package orbitcast

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/soniakeys/meeus/julian"
)

// ExportConfig configures the export of a propagated orbit.
type ExportConfig struct {
	OutputDir string
	JSON      bool // <body>_positions.json record list
	XYZV      bool // interpolated-states trajectory file for plotting tools
	Timestamp bool // stamp filenames with the creation time
}

// IsUseless returns whether this config doesn't actually do anything.
func (c ExportConfig) IsUseless() bool {
	return !c.JSON && !c.XYZV
}

// PositionRecord is one element of the JSON export: a UTC timestamp with explicit
// zone designator and the inertial position triple in km.
type PositionRecord struct {
	Time string    `json:"time"`
	Pos  []float64 `json:"pos"`
}

// RecordFromSample converts a propagated sample to its JSON record.
func RecordFromSample(s Sample) PositionRecord {
	return PositionRecord{
		Time: s.DT.UTC().Format("2006-01-02T15:04:05") + "Z",
		Pos:  s.Position,
	}
}

// StreamPositions consumes the sample channel and writes the configured files for
// the given body. It returns once the channel is closed and the files are flushed.
func StreamPositions(conf ExportConfig, bodyName string, ch <-chan Sample) error {
	if conf.IsUseless() {
		for range ch {
			// Drain so the producer is never blocked.
		}
		return nil
	}
	name := strings.ToLower(bodyName)

	var fXYZV *os.File
	if conf.XYZV {
		var err error
		if fXYZV, err = createTrajectoryFile(conf, name); err != nil {
			return err
		}
		defer fXYZV.Close()
	}

	var records []PositionRecord
	for s := range ch {
		if conf.JSON {
			records = append(records, RecordFromSample(s))
		}
		if conf.XYZV {
			line := fmt.Sprintf("\n%f %f %f %f", julian.TimeToJD(s.DT), s.Position[0], s.Position[1], s.Position[2])
			if _, err := fXYZV.WriteString(line); err != nil {
				return err
			}
		}
	}

	if conf.JSON {
		marsh, err := json.MarshalIndent(records, "", "  ")
		if err != nil {
			return err
		}
		fn := filepath.Join(conf.OutputDir, stampedName(conf, name+"_positions", "json"))
		if err := os.WriteFile(fn, marsh, 0644); err != nil {
			return fmt.Errorf("writing %s: %w", fn, err)
		}
	}
	return nil
}

// WritePositions writes the configured files for a fully propagated sample set.
func WritePositions(conf ExportConfig, bodyName string, samples []Sample) error {
	ch := make(chan Sample)
	go func() {
		for _, s := range samples {
			ch <- s
		}
		close(ch)
	}()
	return StreamPositions(conf, bodyName, ch)
}

// PositionsFilename returns the JSON export filename for a body.
func PositionsFilename(conf ExportConfig, bodyName string) string {
	return filepath.Join(conf.OutputDir, stampedName(conf, strings.ToLower(bodyName)+"_positions", "json"))
}

func stampedName(conf ExportConfig, base, ext string) string {
	if conf.Timestamp {
		t := time.Now()
		return fmt.Sprintf("%s-%d-%02d-%02dT%02d.%02d.%02d.%s", base, t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), ext)
	}
	return base + "." + ext
}

// createTrajectoryFile returns a file which requires a defer close statement!
func createTrajectoryFile(conf ExportConfig, name string) (*os.File, error) {
	fn := filepath.Join(conf.OutputDir, stampedName(conf, "orbit-"+name, "xyzv"))
	f, err := os.Create(fn)
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", fn, err)
	}
	// Header
	f.WriteString(fmt.Sprintf(`# Creation date (UTC): %s
# Records are <jd> <x> <y> <z>
#   Time is a UTC Julian date
#   Position in km`, time.Now().UTC()))
	return f, nil
}

package ptl

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/transitcore/tripbased/tlog"
	"github.com/transitcore/tripbased/transit"
)

// LoadLabelsFromText streams the PTL label text format of spec.md §4.7:
// each non-empty line is "o h1 h2 ..." (forward label for the current stop
// event's departure side) or "i h1 h2 ..." (backward label for its arrival
// side). Every stop event offers exactly one departure-line slot followed
// by one arrival-line slot; an accepted arrival line advances to the next
// stop event, an accepted departure line does not ("arrival advances the
// vertex index; departure shares the current index"). A line whose type
// doesn't match the slot expected at the current position is logged and
// skipped without aborting the stream, matching readLabelFile's tolerant
// behaviour (DataStructures/PTL/Data.h). Ported without that function's
// doubled time-expanded vertex numbering, since this port already keys
// fwdLabels/bwdLabels directly by transit.StopEventId — the vertexIndex
// parity arithmetic there exists only to recover that id from a doubled
// numbering this port never introduces.
func LoadLabelsFromText(data *Data, r io.Reader) bool {
	scanner := bufio.NewScanner(r)
	current := transit.StopEventId(0)
	expectArrival := false
	n := transit.StopEventId(data.NumberOfStopEvents())

	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}

		eventType := line[0]
		if eventType != 'o' && eventType != 'i' {
			tlog.L().Warn("ptl: unrecognized label line", zap.String("line", line))
			continue
		}
		if current >= n {
			tlog.L().Warn("ptl: label line past the last stop event, skipped", zap.String("line", line))
			continue
		}

		switch {
		case eventType == 'o' && !expectArrival:
			data.fwdLabels[current] = parseHubLine(line[1:])
			expectArrival = true
		case eventType == 'i' && expectArrival:
			data.bwdLabels[current] = parseHubLine(line[1:])
			expectArrival = false
			current++
		default:
			tlog.L().Warn("ptl: label event-type mismatch at current position, skipped", zap.String("line", line))
		}
	}

	return scanner.Err() == nil
}

func parseHubLine(rest string) Label {
	fields := strings.Fields(rest)
	hubs := make(Label, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.ParseUint(f, 10, 32)
		if err != nil {
			continue
		}
		hubs = append(hubs, uint32(v))
	}
	return hubs
}

package ptl

import (
	"os"

	"github.com/transitcore/tripbased/transit"
	"github.com/transitcore/tripbased/util"
)

// Store persists only the label arrays (spec.md §6.1's binary artifact
// round-trip), mirroring the original's split between PTL::Data::serialize
// (fwdLabels/bwdLabels) and its separate `data.serialize(fileName + ".te")`
// call — the underlying transit.Data is this module's own artifact with its
// own Store/LoadData pair, so ptl.Data never re-persists it.
func (self *Data) Store(path string) error {
	w := util.NewBufferWriter()
	writeLabels(w, self.fwdLabels)
	writeLabels(w, self.bwdLabels)
	return os.WriteFile(path, w.Bytes(), 0o644)
}

func writeLabels(w util.BufferWriter, labels []Label) {
	util.Write(w, int32(len(labels)))
	for _, l := range labels {
		util.Write(w, int32(len(l)))
		for _, hub := range l {
			util.Write(w, hub)
		}
	}
}

func readLabels(r util.BufferReader) []Label {
	n := int(util.Read[int32](r))
	labels := make([]Label, n)
	for i := 0; i < n; i++ {
		m := int(util.Read[int32](r))
		label := make(Label, m)
		for j := 0; j < m; j++ {
			label[j] = util.Read[uint32](r)
		}
		labels[i] = label
	}
	return labels
}

// LoadData reconstructs a Data over an already-loaded transit.Data (this
// module's transit.LoadData), reading the label arrays persisted by
// Store.
func LoadData(path string, transitData *transit.Data) (*Data, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	r := util.NewBufferReader(raw)

	self := NewData(transitData)
	self.fwdLabels = readLabels(r)
	self.bwdLabels = readLabels(r)
	return self, nil
}

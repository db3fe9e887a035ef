package sumstats

import "fmt"

// Dataset is an ordered collection of variant records sharing one genome
// build. Stages never mutate a Dataset in place; each transformation returns
// a new one, preserving row order.
type Dataset struct {
	Build   string
	Header  []string
	Layout  Layout
	Records []VariantRecord
}

// derive makes an empty Dataset carrying over the schema of ds, for stages
// that keep a subset of its rows.
func (ds Dataset) derive(build string) Dataset {
	return Dataset{
		Build:   build,
		Header:  ds.Header,
		Layout:  ds.Layout,
		Records: make([]VariantRecord, 0, len(ds.Records)),
	}
}

// StageReport counts the rows a pipeline stage read and kept.
type StageReport struct {
	Stage string
	Read  int
	Kept  int
}

func (s StageReport) Dropped() int {
	return s.Read - s.Kept
}

func (s StageReport) String() string {
	return fmt.Sprintf("%s: read %d, kept %d, dropped %d", s.Stage, s.Read, s.Kept, s.Dropped())
}

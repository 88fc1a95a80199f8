package metrics

import (
	"fmt"
	"math"
	"os"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// Bucket is a named closed numeric range. A nil Max means the band is
// open-ended at the top.
type Bucket struct {
	Label string   `yaml:"label"`
	Min   float64  `yaml:"min"`
	Max   *float64 `yaml:"max"`
}

// Table is an ordered list of non-overlapping buckets. Every finite input
// value maps to at most one bucket.
type Table []Bucket

// For returns the label of the bucket containing v, where min <= v <= max.
// Nil or non-finite values map to no bucket and are excluded from that
// dimension's aggregation, never zero-bucketed.
func (t Table) For(v *float64) (string, bool) {
	if v == nil || math.IsNaN(*v) || math.IsInf(*v, 0) {
		return "", false
	}
	for _, b := range t {
		if b.Max == nil {
			if *v >= b.Min {
				return b.Label, true
			}
			continue
		}
		if *v >= b.Min && *v <= *b.Max {
			return b.Label, true
		}
	}
	return "", false
}

// Labels returns the bucket labels in table order.
func (t Table) Labels() []string {
	out := make([]string, len(t))
	for i, b := range t {
		out[i] = b.Label
	}
	return out
}

// Validate checks that the table's bands do not overlap and are ordered.
func (t Table) Validate() error {
	for i := 1; i < len(t); i++ {
		prev, cur := t[i-1], t[i]
		if prev.Max == nil {
			return eris.Errorf("bucket: open-ended band %q must be last", prev.Label)
		}
		if cur.Min <= *prev.Max {
			return eris.Errorf("bucket: band %q overlaps %q", cur.Label, prev.Label)
		}
	}
	return nil
}

// Tables holds the static bucket dimensions injected into the engine.
// They are immutable configuration data, substitutable in tests.
type Tables struct {
	Employee Table `yaml:"employee"`
	ARR      Table `yaml:"arr"`
}

// Validate checks every dimension.
func (t Tables) Validate() error {
	if err := t.Employee.Validate(); err != nil {
		return err
	}
	return t.ARR.Validate()
}

func fval(v float64) *float64 { return &v }

// DefaultTables returns the standard bands: granular small-company employee
// buckets then 1000-sized bands, and twenty 10,000-wide ARR bands plus an
// open-ended top band.
func DefaultTables() Tables {
	employee := Table{
		{Label: "1–10", Min: 1, Max: fval(10)},
		{Label: "11–25", Min: 11, Max: fval(25)},
		{Label: "26–50", Min: 26, Max: fval(50)},
		{Label: "51–100", Min: 51, Max: fval(100)},
		{Label: "101–250", Min: 101, Max: fval(250)},
		{Label: "251–500", Min: 251, Max: fval(500)},
		{Label: "501–1000", Min: 501, Max: fval(1000)},
		{Label: "1001–2000", Min: 1001, Max: fval(2000)},
		{Label: "2001–3000", Min: 2001, Max: fval(3000)},
		{Label: "3001–4000", Min: 3001, Max: fval(4000)},
		{Label: "4001–5000", Min: 4001, Max: fval(5000)},
		{Label: "5001+", Min: 5001},
	}

	arr := make(Table, 0, 21)
	for i := 0; i < 20; i++ {
		lo := float64(i * 10000)
		hi := float64((i+1)*10000 - 1)
		arr = append(arr, Bucket{
			Label: fmt.Sprintf("%d–%d", i*10000, (i+1)*10000-1),
			Min:   lo,
			Max:   &hi,
		})
	}
	arr = append(arr, Bucket{Label: "200000+", Min: 200000})

	return Tables{Employee: employee, ARR: arr}
}

// LoadTables reads bucket table overrides from a YAML file. A dimension
// omitted from the file keeps its default bands.
func LoadTables(path string) (Tables, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Tables{}, eris.Wrap(err, "bucket: read tables file")
	}

	tables := DefaultTables()
	var override Tables
	if err := yaml.Unmarshal(data, &override); err != nil {
		return Tables{}, eris.Wrap(err, "bucket: parse tables file")
	}
	if len(override.Employee) > 0 {
		tables.Employee = override.Employee
	}
	if len(override.ARR) > 0 {
		tables.ARR = override.ARR
	}
	if err := tables.Validate(); err != nil {
		return Tables{}, err
	}
	return tables, nil
}

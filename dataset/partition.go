package dataset

import (
	"fmt"
	"math"

	"github.com/pbanos/entropic/feature"
	"gonum.org/v1/gonum/stat"
)

/*
Partition represents a row subset of the training data (and, once a
categorical feature has been consumed by a split, a column subset too)
together with the aligned target labels.

A partition is never mutated after being built: SubsetWith, Split and
Without return new partitions, so sibling branches never share a
mutable view.
*/
type Partition struct {
	width  int
	rows   [][]interface{}
	labels []string
}

/*
New takes a slice of rows and a slice of target labels and returns a
partition with them, or an error if their lengths differ or rows do not
have the same number of cells.
*/
func New(rows [][]interface{}, labels []string) (*Partition, error) {
	if len(rows) != len(labels) {
		return nil, fmt.Errorf("found %d rows but %d labels", len(rows), len(labels))
	}
	var width int
	if len(rows) > 0 {
		width = len(rows[0])
	}
	for i, r := range rows {
		if len(r) != width {
			return nil, fmt.Errorf("row %d has %d cells, expected %d", i, len(r), width)
		}
	}
	return &Partition{width, rows, labels}, nil
}

// Count returns the number of rows in the partition
func (p *Partition) Count() int {
	return len(p.rows)
}

// Width returns the number of columns in the partition
func (p *Partition) Width() int {
	return p.width
}

// Labels returns the target labels aligned with the partition rows
func (p *Partition) Labels() []string {
	return p.labels
}

// Row returns the cells of the i-th row
func (p *Partition) Row(i int) []interface{} {
	return p.rows[i]
}

// Column returns the cells of the j-th column
func (p *Partition) Column(j int) []interface{} {
	column := make([]interface{}, len(p.rows))
	for i, r := range p.rows {
		column[i] = r[j]
	}
	return column
}

// Entropy returns the entropy in bits of the partition labels
func (p *Partition) Entropy() float64 {
	return Entropy(p.labels)
}

/*
ClassCounts takes the ordered slice of every class and returns the number of
labels in the partition for each of them.
*/
func (p *Partition) ClassCounts(classes []string) []int {
	return ClassCounts(p.labels, classes)
}

// Mode returns the most frequent label in the partition, see Mode.
func (p *Partition) Mode() string {
	return Mode(p.labels)
}

// Distinct returns the number of different labels in the partition
func (p *Partition) Distinct() int {
	return len(countLabels(p.labels))
}

/*
Uniform returns whether every row in the partition holds the same cells,
that is, if no column has any discriminating value left. A partition with
no columns is uniform.
*/
func (p *Partition) Uniform() bool {
	if len(p.rows) == 0 {
		return true
	}
	first := p.rows[0]
	for _, r := range p.rows[1:] {
		for j := range r {
			if !SameCell(first[j], r[j]) {
				return false
			}
		}
	}
	return true
}

/*
SubsetWith takes a column index and a criterion and returns a partition with
the rows whose cell on that column satisfies the criterion.
*/
func (p *Partition) SubsetWith(j int, c feature.Criterion) *Partition {
	in, _ := p.Split(j, c)
	return in
}

/*
Split takes a column index and a criterion and returns two partitions: the rows
whose cell on that column satisfies the criterion and the rest. Both keep
every column.
*/
func (p *Partition) Split(j int, c feature.Criterion) (*Partition, *Partition) {
	in := &Partition{width: p.width}
	out := &Partition{width: p.width}
	for i, r := range p.rows {
		if c.SatisfiedBy(r[j]) {
			in.rows = append(in.rows, r)
			in.labels = append(in.labels, p.labels[i])
		} else {
			out.rows = append(out.rows, r)
			out.labels = append(out.labels, p.labels[i])
		}
	}
	return in, out
}

/*
Without takes a column index and returns a copy of the partition with that
column dropped.
*/
func (p *Partition) Without(j int) *Partition {
	result := &Partition{
		width:  p.width - 1,
		rows:   make([][]interface{}, len(p.rows)),
		labels: p.labels,
	}
	for i, r := range p.rows {
		nr := make([]interface{}, 0, p.width-1)
		nr = append(nr, r[:j]...)
		nr = append(nr, r[j+1:]...)
		result.rows[i] = nr
	}
	return result
}

func (p *Partition) String() string {
	return fmt.Sprintf("{Partition %d rows x %d columns}", len(p.rows), p.width)
}

/*
Entropy takes a slice of labels and returns the Shannon entropy in bits of
their empirical distribution. Only observed labels contribute terms, so an
empty slice and a single-class slice both have entropy 0.
*/
func Entropy(labels []string) float64 {
	if len(labels) == 0 {
		return 0
	}
	counts := countLabels(labels)
	proba := make([]float64, len(counts))
	total := float64(len(labels))
	for i, lc := range counts {
		proba[i] = float64(lc.count) / total
	}
	if len(proba) == 1 {
		return 0
	}
	return stat.Entropy(proba) / math.Ln2
}

/*
ClassCounts takes a slice of labels and the ordered slice of every class and
returns how many labels belong to each class.
*/
func ClassCounts(labels []string, classes []string) []int {
	index := make(map[string]int, len(classes))
	for i, c := range classes {
		index[c] = i
	}
	result := make([]int, len(classes))
	for _, l := range labels {
		if i, ok := index[l]; ok {
			result[i]++
		}
	}
	return result
}

/*
Mode takes a slice of labels and returns the most frequent one. Ties are
broken in favour of the label encountered first. It returns "" for an empty
slice.
*/
func Mode(labels []string) string {
	var mode string
	best := 0
	for _, lc := range countLabels(labels) {
		if lc.count > best {
			mode = lc.label
			best = lc.count
		}
	}
	return mode
}

// SameCell returns whether two cells hold the same value.
func SameCell(a, b interface{}) bool {
	fa, aok := feature.Numeric(a)
	fb, bok := feature.Numeric(b)
	if aok && bok {
		return fa == fb
	}
	if aok != bok {
		return false
	}
	return feature.Level(a) == feature.Level(b)
}

type labelCount struct {
	label string
	count int
}

// countLabels counts labels keeping the order in which they are first found.
func countLabels(labels []string) []labelCount {
	index := make(map[string]int)
	var result []labelCount
	for _, l := range labels {
		i, ok := index[l]
		if !ok {
			i = len(result)
			index[l] = i
			result = append(result, labelCount{label: l})
		}
		result[i].count++
	}
	return result
}

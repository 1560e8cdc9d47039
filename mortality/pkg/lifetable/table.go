// Package lifetable loads per-age death counts from a CSV life table
// and repairs a truncated open-ended terminal bucket.
package lifetable

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
)

// DefaultTerminalAge is the age of the open-ended final bucket in the
// government life tables this tool was written for ("100+").
const DefaultTerminalAge = 100

// Columns maps the table's logical fields to CSV header names.
type Columns struct {
	Age    string `yaml:"age"`
	Deaths string `yaml:"deaths"`
}

// DefaultColumns returns the header names used by the source datasets.
func DefaultColumns() Columns {
	return Columns{Age: "age", Deaths: "dx"}
}

type Entry struct {
	Age    int
	Deaths int
}

// Table maps an age in years to the number of recorded deaths at that
// age. Ages are unique; a duplicate source row overwrites the count.
type Table struct {
	counts map[int]int
}

func New() *Table {
	return &Table{counts: make(map[int]int)}
}

func (t *Table) Set(age, deaths int) {
	t.counts[age] = deaths
}

func (t *Table) Count(age int) (int, bool) {
	c, ok := t.counts[age]
	return c, ok
}

func (t *Table) Len() int {
	return len(t.counts)
}

// Ages returns every age in the table in ascending order.
func (t *Table) Ages() []int {
	ages := make([]int, 0, len(t.counts))
	for age := range t.counts {
		ages = append(ages, age)
	}
	sort.Ints(ages)
	return ages
}

// Entries returns the table's buckets in ascending-age order.
func (t *Table) Entries() []Entry {
	ages := t.Ages()
	entries := make([]Entry, len(ages))
	for i, age := range ages {
		entries[i] = Entry{Age: age, Deaths: t.counts[age]}
	}
	return entries
}

// Total returns the sum of death counts across all buckets.
func (t *Table) Total() int {
	var total int
	for _, c := range t.counts {
		total += c
	}
	return total
}

type LoadConfig struct {
	Columns Columns
	MinAge  int
}

// Load parses a CSV life table from r. The age column's leading
// integer is the bucket age ("26-27" is 26, "100+" is 100); the deaths
// column may carry thousands separators. Rows below MinAge are dropped.
func Load(r io.Reader, cfg LoadConfig) (*Table, error) {
	cols := cfg.Columns
	if cols.Age == "" {
		cols.Age = DefaultColumns().Age
	}
	if cols.Deaths == "" {
		cols.Deaths = DefaultColumns().Deaths
	}

	cr := csv.NewReader(r)
	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}

	ageCol, deathsCol := -1, -1
	for i, name := range header {
		switch strings.TrimLeft(name, "\uFEFF") {
		case cols.Age:
			ageCol = i
		case cols.Deaths:
			deathsCol = i
		}
	}
	if ageCol < 0 {
		return nil, &ParseError{Line: 1, Field: cols.Age}
	}
	if deathsCol < 0 {
		return nil, &ParseError{Line: 1, Field: cols.Deaths}
	}

	t := New()
	line := 1
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, err
		}
		line++

		age, err := leadingInt(rec[ageCol])
		if err != nil {
			return nil, &ParseError{Line: line, Field: cols.Age, Value: rec[ageCol]}
		}
		if age < cfg.MinAge {
			continue
		}

		deaths, err := strconv.Atoi(strings.ReplaceAll(rec[deathsCol], ",", ""))
		if err != nil {
			return nil, &ParseError{Line: line, Field: cols.Deaths, Value: rec[deathsCol]}
		}
		t.Set(age, deaths)
	}
	return t, nil
}

// leadingInt parses the run of decimal digits at the start of s.
func leadingInt(s string) (int, error) {
	s = strings.TrimSpace(s)
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i == 0 {
		return 0, fmt.Errorf("no leading digits in %q", s)
	}
	return strconv.Atoi(s[:i])
}

package lifetable

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func inflatedTable() *Table {
	t := New()
	t.Set(98, 5300)
	t.Set(99, 5000)
	t.Set(100, 12000)
	return t
}

func TestRepairRedistributesInflatedTail(t *testing.T) {
	table := inflatedTable()
	before := table.Total()

	assert.NoError(t, table.Repair(RepairConfig{}, zap.NewExample()))

	// rate = 5000/5300; each synthetic year gets floor(prev*rate),
	// clamped to what is left of the original 12000.
	assert.Equal(t, []Entry{
		{98, 5300},
		{99, 5000},
		{100, 4716},
		{101, 4449},
		{102, 2835},
	}, table.Entries())
	assert.Equal(t, before, table.Total(), "nothing left to discard, total conserved")
}

func TestRepairNoopWithoutInflatedTail(t *testing.T) {
	table := New()
	table.Set(98, 5300)
	table.Set(99, 5000)
	table.Set(100, 4000)

	assert.NoError(t, table.Repair(RepairConfig{}, nil))
	assert.Equal(t, []Entry{{98, 5300}, {99, 5000}, {100, 4000}}, table.Entries())
}

func TestRepairIdempotent(t *testing.T) {
	table := inflatedTable()
	assert.NoError(t, table.Repair(RepairConfig{}, nil))
	repaired := table.Entries()

	assert.NoError(t, table.Repair(RepairConfig{}, nil))
	assert.Equal(t, repaired, table.Entries(), "second repair should be a no-op")
}

func TestRepairInsufficientData(t *testing.T) {
	table := New()
	table.Set(99, 5000)
	table.Set(100, 12000)

	assert.ErrorIs(t, table.Repair(RepairConfig{}, nil), ErrInsufficientData)
}

func TestRepairTerminalAgeMismatch(t *testing.T) {
	table := New()
	table.Set(97, 5300)
	table.Set(98, 5000)
	table.Set(99, 12000)

	var aerr *AssumptionError
	assert.ErrorAs(t, table.Repair(RepairConfig{}, nil), &aerr)
	assert.Contains(t, aerr.Reason, "oldest age")
}

func TestRepairConfigurableTerminalAge(t *testing.T) {
	table := New()
	table.Set(83, 5300)
	table.Set(84, 5000)
	table.Set(85, 12000)

	assert.NoError(t, table.Repair(RepairConfig{TerminalAge: 85}, nil))
	assert.Equal(t, 85, table.Ages()[2])
	count, _ := table.Count(85)
	assert.Equal(t, 4716, count)
}

func TestRepairZeroDecayDivisor(t *testing.T) {
	table := New()
	table.Set(98, 0)
	table.Set(99, 5000)
	table.Set(100, 12000)

	var aerr *AssumptionError
	assert.ErrorAs(t, table.Repair(RepairConfig{}, nil), &aerr)
	assert.Contains(t, aerr.Reason, "decay rate")
}

func TestRepairCapsTenYearsPastTerminal(t *testing.T) {
	table := New()
	table.Set(98, 1000)
	table.Set(99, 1000)
	table.Set(100, 1000000)
	before := table.Total()

	assert.NoError(t, table.Repair(RepairConfig{}, nil))

	ages := table.Ages()
	assert.Equal(t, 110, ages[len(ages)-1], "no synthetic bucket past the cap")
	// rate is 1, so each of 100..110 gets 1000; the rest is discarded.
	assert.Equal(t, 2000+11*1000, table.Total())
	assert.Less(t, table.Total(), before, "redistribution never creates mass")
}

func TestRepairNeverCreatesMass(t *testing.T) {
	tables := []*Table{inflatedTable()}

	steep := New()
	steep.Set(98, 9000)
	steep.Set(99, 300)
	steep.Set(100, 50000)
	tables = append(tables, steep)

	for _, table := range tables {
		before := table.Total()
		assert.NoError(t, table.Repair(RepairConfig{}, nil))
		assert.LessOrEqual(t, table.Total(), before)
	}
}

package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTableRender(t *testing.T) {
	table := NewTable("Date", "Merchant", "Amount")
	table.AddRow("2024-03-05", "Chipotle", "-$12.50")
	table.AddRow("2024-03-15", "Payroll", "$1000.00")

	out := table.Render()

	assert.Contains(t, out, "Date")
	assert.Contains(t, out, "Chipotle")
	assert.Contains(t, out, "$1000.00")
}

func TestTableRender_PadsShortRows(t *testing.T) {
	table := NewTable("A", "B")
	table.AddRow("only")

	assert.NotPanics(t, func() { table.Render() })
}

func TestMoney(t *testing.T) {
	assert.Equal(t, "$1000.00", Money(1000))
	assert.Equal(t, "-$12.50", Money(-12.5))
	assert.Equal(t, "$0.00", Money(0))
}

func TestStripANSI(t *testing.T) {
	styled := "\x1b[31mred\x1b[0m"
	assert.Equal(t, "red", stripANSI(styled))
	assert.Equal(t, "plain", stripANSI("plain"))
}

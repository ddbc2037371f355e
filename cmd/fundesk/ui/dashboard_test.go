package ui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fundesk/internal/api"
	"fundesk/internal/models"
)

func testDashboard() Dashboard {
	client := api.New(api.Config{BaseURL: "http://127.0.0.1:1", Token: "t"})
	return NewDashboard(client, 7)
}

func TestDashboardSwitchesTabsLazily(t *testing.T) {
	d := testDashboard()

	cmd := d.Init()
	require.NotNil(t, cmd, "first page fetches on start")

	model, cmd := d.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'2'}})
	d = model.(Dashboard)
	assert.NotNil(t, cmd, "first visit of a tab fetches")
	assert.Contains(t, d.View(), "Vouchers")

	model, cmd = d.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'2'}})
	d = model.(Dashboard)
	assert.Nil(t, cmd, "revisiting a started tab does not refetch")
}

func TestDashboardRoutesResultsByPageID(t *testing.T) {
	d := testDashboard()

	result := pageResultMsg[models.Voucher]{
		pageID: "vouchers",
		seq:    d.vouchers.fetchSeq,
		page: &api.Page[models.Voucher]{
			Data: []models.Voucher{{ID: 1, Number: "VCH-001"}},
			Meta: api.Meta{Total: 1, CurrentPage: 1, PerPage: 15, LastPage: 1},
		},
	}
	model, _ := d.Update(result)
	d = model.(Dashboard)

	assert.NotNil(t, d.vouchers.page)
	assert.Nil(t, d.funds.page)

	model, _ = d.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'2'}})
	d = model.(Dashboard)
	assert.Contains(t, d.View(), "VCH-001")
}

func TestDashboardDetailOpensAndCloses(t *testing.T) {
	d := testDashboard()

	result := pageResultMsg[models.Fund]{
		pageID: "funds",
		seq:    d.funds.fetchSeq,
		page: &api.Page[models.Fund]{
			Data: []models.Fund{{ID: 1, Name: "Zomerfonds", Description: "A summer fund."}},
			Meta: api.Meta{Total: 1, CurrentPage: 1, PerPage: 15, LastPage: 1},
		},
	}
	model, _ := d.Update(result)
	d = model.(Dashboard)

	model, _ = d.Update(tea.KeyMsg{Type: tea.KeyDown})
	d = model.(Dashboard)
	model, _ = d.Update(tea.KeyMsg{Type: tea.KeyEnter})
	d = model.(Dashboard)
	require.NotNil(t, d.detail)
	assert.Contains(t, d.View(), "A summer fund.")

	model, _ = d.Update(tea.KeyMsg{Type: tea.KeyEsc})
	d = model.(Dashboard)
	assert.Nil(t, d.detail)
}

func TestDashboardQuits(t *testing.T) {
	d := testDashboard()
	_, cmd := d.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

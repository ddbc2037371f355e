package ui

import (
	"context"
	"fmt"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"fundesk/internal/api"
	"fundesk/internal/models"
	"fundesk/internal/query"
)

// dashboard tab indexes.
const (
	tabFunds = iota
	tabVouchers
	tabReservations
	tabBulks
	tabCount
)

var tabNames = [tabCount]string{"funds", "vouchers", "reservations", "bulks"}

// Dashboard is the top-level model: one list page per resource, switched
// with the number keys. Each page keeps its own query state and fetch
// lifecycle; the dashboard only routes messages.
type Dashboard struct {
	funds        ListPage[models.Fund]
	vouchers     ListPage[models.Voucher]
	reservations ListPage[models.Reservation]
	bulks        ListPage[models.TransactionBulk]

	active  int
	started [tabCount]bool
	detail  *Detail
	styles  Styles
	width   int
	height  int
}

// NewDashboard wires the resource pages to the API client for one
// organization.
func NewDashboard(client *api.Client, organizationID int) Dashboard {
	d := Dashboard{
		funds:        NewListPage(fundsPageConfig(client, organizationID)),
		vouchers:     NewListPage(vouchersPageConfig(client, organizationID)),
		reservations: NewListPage(reservationsPageConfig(client, organizationID)),
		bulks:        NewListPage(bulksPageConfig(client, organizationID)),
		styles:       DefaultStyles(),
	}
	d.started[tabFunds] = true
	return d
}

func fundsPageConfig(client *api.Client, organizationID int) ListPageConfig[models.Fund] {
	return ListPageConfig[models.Fund]{
		ID:      "funds",
		Title:   "Funds",
		Columns: []string{"ID", "Name", "State", "Start", "End"},
		Row: func(f models.Fund) []string {
			return []string{strconv.Itoa(f.ID), f.Name, f.StateLocale, f.StartDateLocale, f.EndDateLocale}
		},
		RowID: func(f models.Fund) string { return strconv.Itoa(f.ID) },
		Fetch: func(ctx context.Context, values query.Values) (*api.Page[models.Fund], error) {
			return client.Funds().List(ctx, organizationID, values)
		},
	}
}

func vouchersPageConfig(client *api.Client, organizationID int) ListPageConfig[models.Voucher] {
	return ListPageConfig[models.Voucher]{
		ID:      "vouchers",
		Title:   "Vouchers",
		Columns: []string{"ID", "Number", "State", "Amount", "Email"},
		Row: func(v models.Voucher) []string {
			return []string{strconv.Itoa(v.ID), v.Number, v.StateLocale, v.AmountLocale, v.IdentityEmail}
		},
		RowID:  func(v models.Voucher) string { return v.Number },
		States: []string{"all", "active", "pending", "deactivated", "expired"},
		Fetch: func(ctx context.Context, values query.Values) (*api.Page[models.Voucher], error) {
			return client.Vouchers().List(ctx, organizationID, values)
		},
	}
}

func reservationsPageConfig(client *api.Client, organizationID int) ListPageConfig[models.Reservation] {
	return ListPageConfig[models.Reservation]{
		ID:      "reservations",
		Title:   "Reservations",
		Columns: []string{"ID", "Code", "State", "Amount", "Customer"},
		Row: func(r models.Reservation) []string {
			name := r.FirstName + " " + r.LastName
			return []string{strconv.Itoa(r.ID), r.Code, r.StateLocale, r.AmountLocale, name}
		},
		RowID:  func(r models.Reservation) string { return r.Code },
		States: []string{"all", models.ReservationStatePending, models.ReservationStateAccepted, models.ReservationStateRejected},
		Fetch: func(ctx context.Context, values query.Values) (*api.Page[models.Reservation], error) {
			return client.Reservations().List(ctx, organizationID, values)
		},
	}
}

func bulksPageConfig(client *api.Client, organizationID int) ListPageConfig[models.TransactionBulk] {
	return ListPageConfig[models.TransactionBulk]{
		ID:      "bulks",
		Title:   "Transaction bulks",
		Columns: []string{"ID", "State", "Transactions", "Amount", "Created"},
		Row: func(b models.TransactionBulk) []string {
			return []string{
				strconv.Itoa(b.ID), b.StateLocale,
				strconv.Itoa(b.VoucherTransactionsCount), b.CostLocale, b.CreatedAtLocale,
			}
		},
		RowID:  func(b models.TransactionBulk) string { return strconv.Itoa(b.ID) },
		States: []string{"all", models.BulkStateDraft, models.BulkStatePending, models.BulkStateAccepted, models.BulkStateRejected},
		Fetch: func(ctx context.Context, values query.Values) (*api.Page[models.TransactionBulk], error) {
			return client.TransactionBulks().List(ctx, organizationID, values)
		},
	}
}

// Init starts the first visible page only; the others fetch lazily on
// first switch.
func (d Dashboard) Init() tea.Cmd {
	return d.funds.fetchCmd()
}

func (d *Dashboard) startActive() tea.Cmd {
	if d.started[d.active] {
		return nil
	}
	d.started[d.active] = true
	switch d.active {
	case tabFunds:
		return d.funds.fetchCmd()
	case tabVouchers:
		return d.vouchers.fetchCmd()
	case tabReservations:
		return d.reservations.fetchCmd()
	case tabBulks:
		return d.bulks.fetchCmd()
	}
	return nil
}

// Update routes messages. Fetch results carry a page ID, so every result
// is offered to all pages and each page keeps only its own; key presses
// go to the active page.
func (d Dashboard) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		d.width = msg.Width
		d.height = msg.Height
		d.funds, _ = d.funds.Update(msg)
		d.vouchers, _ = d.vouchers.Update(msg)
		d.reservations, _ = d.reservations.Update(msg)
		d.bulks, _ = d.bulks.Update(msg)
		return d, nil

	case tea.KeyMsg:
		if d.detail != nil {
			switch msg.String() {
			case "esc", "q", "enter":
				d.detail = nil
			}
			return d, nil
		}
		switch msg.String() {
		case "ctrl+c", "q":
			return d, tea.Quit
		case "1", "2", "3", "4":
			d.active = int(msg.String()[0] - '1')
			cmd := d.startActive()
			return d, cmd
		case "enter":
			d.openDetail()
			return d, nil
		}
		return d.updateActive(msg)
	}

	// Everything else, fetch results included, fans out to all pages.
	var cmds []tea.Cmd
	var cmd tea.Cmd
	d.funds, cmd = d.funds.Update(msg)
	cmds = append(cmds, cmd)
	d.vouchers, cmd = d.vouchers.Update(msg)
	cmds = append(cmds, cmd)
	d.reservations, cmd = d.reservations.Update(msg)
	cmds = append(cmds, cmd)
	d.bulks, cmd = d.bulks.Update(msg)
	cmds = append(cmds, cmd)
	return d, tea.Batch(cmds...)
}

func (d Dashboard) updateActive(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch d.active {
	case tabFunds:
		d.funds, cmd = d.funds.Update(msg)
	case tabVouchers:
		d.vouchers, cmd = d.vouchers.Update(msg)
	case tabReservations:
		d.reservations, cmd = d.reservations.Update(msg)
	case tabBulks:
		d.bulks, cmd = d.bulks.Update(msg)
	}
	return d, cmd
}

// openDetail builds a detail card for the highlighted row of the active
// page.
func (d *Dashboard) openDetail() {
	switch d.active {
	case tabFunds:
		if f, ok := d.funds.Selected(); ok {
			detail := NewDetail(f.Name, []KeyValue{
				{Key: "State", Value: f.StateLocale},
				{Key: "Type", Value: f.Type},
				{Key: "Start", Value: f.StartDateLocale},
				{Key: "End", Value: f.EndDateLocale},
			}, fundMarkdown(f))
			detail.SetWidth(d.width)
			d.detail = &detail
		}
	case tabVouchers:
		if v, ok := d.vouchers.Selected(); ok {
			detail := NewDetail("Voucher "+v.Number, []KeyValue{
				{Key: "State", Value: v.StateLocale},
				{Key: "Amount", Value: v.AmountLocale},
				{Key: "Available", Value: v.AmountAvailableLocale},
				{Key: "Email", Value: v.IdentityEmail},
				{Key: "Expires", Value: v.ExpireAtLocale},
			}, "")
			detail.SetWidth(d.width)
			d.detail = &detail
		}
	case tabReservations:
		if r, ok := d.reservations.Selected(); ok {
			product := ""
			if r.Product != nil {
				product = r.Product.Name
			}
			detail := NewDetail("Reservation "+r.Code, []KeyValue{
				{Key: "State", Value: r.StateLocale},
				{Key: "Amount", Value: r.AmountLocale},
				{Key: "Customer", Value: r.FirstName + " " + r.LastName},
				{Key: "Product", Value: product},
				{Key: "Created", Value: r.CreatedAtLocale},
			}, r.UserNote)
			detail.SetWidth(d.width)
			d.detail = &detail
		}
	case tabBulks:
		if b, ok := d.bulks.Selected(); ok {
			bank := ""
			if b.Bank != nil {
				bank = b.Bank.Name
			}
			detail := NewDetail(fmt.Sprintf("Bulk #%d", b.ID), []KeyValue{
				{Key: "State", Value: b.StateLocale},
				{Key: "Bank", Value: bank},
				{Key: "Transactions", Value: strconv.Itoa(b.VoucherTransactionsCount)},
				{Key: "Amount", Value: b.CostLocale},
				{Key: "Created", Value: b.CreatedAtLocale},
			}, "")
			detail.SetWidth(d.width)
			d.detail = &detail
		}
	}
}

// View renders the tab bar and the active page, or the open detail card.
func (d Dashboard) View() string {
	if d.detail != nil {
		return lipgloss.JoinVertical(lipgloss.Left,
			d.detail.View(),
			d.styles.Footer.Render("esc back"),
		)
	}

	var tabs []string
	for i, name := range tabNames {
		style := d.styles.Tab
		if i == d.active {
			style = d.styles.TabOn
		}
		tabs = append(tabs, style.Render(fmt.Sprintf("%d %s", i+1, name)))
	}
	header := d.styles.Header.Render(lipgloss.JoinHorizontal(lipgloss.Top, tabs...))

	var body string
	switch d.active {
	case tabFunds:
		body = d.funds.View()
	case tabVouchers:
		body = d.vouchers.View()
	case tabReservations:
		body = d.reservations.View()
	case tabBulks:
		body = d.bulks.View()
	}

	footer := d.styles.Footer.Render("1-4 switch  / search  tab state  enter detail  r refresh  q quit")
	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}

// fundMarkdown prefers the markdown description when the server sends
// one.
func fundMarkdown(f models.Fund) string {
	if f.DescriptionMD != "" {
		return f.DescriptionMD
	}
	return f.Description
}

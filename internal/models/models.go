// Package models defines the read models returned by the platform API.
//
// These are decoded JSON documents and are treated as opaque by the rest of
// the client: amounts, state labels and other business-derived values arrive
// pre-formatted from the server in the *_locale fields and are never
// recomputed locally.
package models

// Media is a stored image with server-generated preview sizes.
type Media struct {
	Identity string            `json:"identity"`
	Original string            `json:"original"`
	Sizes    map[string]string `json:"sizes"`
	Ext      string            `json:"ext"`
	Type     string            `json:"type"`
}

// File is a stored document descriptor returned by the file endpoints.
type File struct {
	UID      string `json:"uid"`
	Name     string `json:"original_name"`
	Size     int64  `json:"size"`
	Ext      string `json:"ext"`
	Type     string `json:"type"`
	URL      string `json:"url"`
	Preview  *Media `json:"preview,omitempty"`
	SizeDesc string `json:"size_locale,omitempty"`
}

// Organization is the active tenant context for dashboard operations.
type Organization struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	KVK         string `json:"kvk"`
	IBAN        string `json:"iban"`
	BTW         string `json:"btw"`
	Website     string `json:"website"`
	Logo        *Media `json:"logo,omitempty"`

	IsSponsor   bool `json:"is_sponsor"`
	IsProvider  bool `json:"is_provider"`
	IsValidator bool `json:"is_validator"`

	Permissions []string `json:"permissions,omitempty"`
}

// HasPermission reports whether the organization context grants the
// named permission to the current identity.
func (o *Organization) HasPermission(name string) bool {
	for _, p := range o.Permissions {
		if p == name {
			return true
		}
	}
	return false
}

// Fund is a benefit program with a budget, owned by a sponsor organization.
type Fund struct {
	ID             int    `json:"id"`
	Name           string `json:"name"`
	Description    string `json:"description"`
	DescriptionMD  string `json:"description_markdown,omitempty"`
	OrganizationID int    `json:"organization_id"`
	State          string `json:"state"`
	StateLocale    string `json:"state_locale"`
	Type           string `json:"type"`
	Archived       bool   `json:"archived"`
	Logo           *Media `json:"logo,omitempty"`

	StartDate       string `json:"start_date,omitempty"`
	StartDateLocale string `json:"start_date_locale,omitempty"`
	EndDate         string `json:"end_date,omitempty"`
	EndDateLocale   string `json:"end_date_locale,omitempty"`

	Budget *FundBudget `json:"budget,omitempty"`
}

// FundBudget carries server-formatted budget figures for a fund.
type FundBudget struct {
	Total       string `json:"total"`
	TotalLocale string `json:"total_locale"`
	Used        string `json:"used"`
	UsedLocale  string `json:"used_locale"`
	Left        string `json:"left"`
	LeftLocale  string `json:"left_locale"`
}

// Product is an offering redeemable against vouchers.
type Product struct {
	ID             int    `json:"id"`
	Name           string `json:"name"`
	Description    string `json:"description"`
	DescriptionMD  string `json:"description_markdown,omitempty"`
	OrganizationID int    `json:"organization_id"`
	Price          string `json:"price"`
	PriceLocale    string `json:"price_locale"`
	PriceType      string `json:"price_type"`
	Stock          int    `json:"stock_amount"`
	Unlimited      bool   `json:"unlimited_stock"`
	Sold           int    `json:"sold_amount"`
	Reserved       int    `json:"reserved_amount"`
	ExpireAt       string `json:"expire_at,omitempty"`
	ExpireAtLocale string `json:"expire_at_locale,omitempty"`
	Photo          *Media `json:"photo,omitempty"`
}

// FundProvider is a provider's standing on a specific fund
// (pending, accepted, rejected), as seen by the sponsor.
type FundProvider struct {
	ID             int    `json:"id"`
	FundID         int    `json:"fund_id"`
	OrganizationID int    `json:"organization_id"`
	State          string `json:"state"`
	StateLocale    string `json:"state_locale"`
	AllowBudget    bool   `json:"allow_budget"`
	AllowProducts  bool   `json:"allow_products"`
	Excluded       bool   `json:"excluded"`

	Fund         *Fund         `json:"fund,omitempty"`
	Organization *Organization `json:"organization,omitempty"`
}

// Office is a provider location where vouchers can be redeemed.
type Office struct {
	ID             int    `json:"id"`
	OrganizationID int    `json:"organization_id"`
	Address        string `json:"address"`
	Phone          string `json:"phone"`
	BranchID       string `json:"branch_id,omitempty"`
	BranchName     string `json:"branch_name,omitempty"`
	BranchNumber   string `json:"branch_number,omitempty"`
	Lat            string `json:"lat,omitempty"`
	Lon            string `json:"lon,omitempty"`
}

// Voucher is an issued entitlement tied to a fund and an identity.
type Voucher struct {
	ID          int    `json:"id"`
	Number      string `json:"number,omitempty"`
	FundID      int    `json:"fund_id"`
	Type        string `json:"type"` // regular or product
	State       string `json:"state"`
	StateLocale string `json:"state_locale"`
	Expired     bool   `json:"expired"`

	Amount                string `json:"amount,omitempty"`
	AmountLocale          string `json:"amount_locale,omitempty"`
	AmountTotal           string `json:"amount_total,omitempty"`
	AmountTotalLocale     string `json:"amount_total_locale,omitempty"`
	AmountAvailable       string `json:"amount_available,omitempty"`
	AmountAvailableLocale string `json:"amount_available_locale,omitempty"`
	AmountSpent           string `json:"amount_spent,omitempty"`
	AmountSpentLocale     string `json:"amount_spent_locale,omitempty"`

	IdentityEmail  string `json:"identity_email,omitempty"`
	ActivationCode string `json:"activation_code,omitempty"`
	ClientUID      string `json:"client_uid,omitempty"`
	Note           string `json:"note,omitempty"`

	ExpireAt       string `json:"expire_at,omitempty"`
	ExpireAtLocale string `json:"expire_at_locale,omitempty"`

	Fund    *Fund    `json:"fund,omitempty"`
	Product *Product `json:"product,omitempty"`
}

// Reservation is a provider-product booking made against a voucher.
type Reservation struct {
	ID          int    `json:"id"`
	Code        string `json:"code"`
	State       string `json:"state"`
	StateLocale string `json:"state_locale"`
	Archived    bool   `json:"archived"`

	Amount       string `json:"amount"`
	AmountLocale string `json:"amount_locale"`

	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	UserNote  string `json:"user_note,omitempty"`

	CreatedAt       string `json:"created_at"`
	CreatedAtLocale string `json:"created_at_locale"`
	ExpireAt        string `json:"expire_at,omitempty"`
	ExpireAtLocale  string `json:"expire_at_locale,omitempty"`

	Product *Product `json:"product,omitempty"`
	Fund    *Fund    `json:"fund,omitempty"`
	Voucher *Voucher `json:"voucher,omitempty"`
}

// Reservation states as returned by the API.
const (
	ReservationStatePending  = "pending"
	ReservationStateAccepted = "accepted"
	ReservationStateRejected = "rejected"
	ReservationStateCanceled = "canceled"
)

// Transaction is a single payout from a voucher to a provider.
type Transaction struct {
	ID             int    `json:"id"`
	UID            string `json:"uid"`
	State          string `json:"state"`
	StateLocale    string `json:"state_locale"`
	Amount         string `json:"amount"`
	AmountLocale   string `json:"amount_locale"`
	Target         string `json:"target,omitempty"`
	IBANTo         string `json:"iban_to,omitempty"`
	IBANToName     string `json:"iban_to_name,omitempty"`
	VoucherID      int    `json:"voucher_id,omitempty"`
	OrganizationID int    `json:"organization_id,omitempty"`

	CreatedAt       string `json:"created_at"`
	CreatedAtLocale string `json:"created_at_locale"`

	Fund         *Fund         `json:"fund,omitempty"`
	Organization *Organization `json:"organization,omitempty"`
}

// Bank identifies the banking integration a transaction bulk is routed to.
type Bank struct {
	ID   int    `json:"id"`
	Key  string `json:"key"` // bunq or bng
	Name string `json:"name"`
}

// TransactionBulk is a batched set of payouts submitted to a banking
// integration as one settlement unit.
type TransactionBulk struct {
	ID          int    `json:"id"`
	State       string `json:"state"`
	StateLocale string `json:"state_locale"`

	PaymentID string `json:"payment_id,omitempty"`
	AuthURL   string `json:"auth_url,omitempty"`

	VoucherTransactionsCount int    `json:"voucher_transactions_count"`
	VoucherTransactionsCost  string `json:"voucher_transactions_cost,omitempty"`
	CostLocale               string `json:"voucher_transactions_cost_locale,omitempty"`

	CreatedAt       string `json:"created_at"`
	CreatedAtLocale string `json:"created_at_locale"`
	ExecutionDate   string `json:"execution_date,omitempty"`

	Bank *Bank `json:"bank,omitempty"`
}

// Transaction bulk states as returned by the API.
const (
	BulkStateDraft    = "draft"
	BulkStatePending  = "pending"
	BulkStateAccepted = "accepted"
	BulkStateRejected = "rejected"
	BulkStateError    = "error"
)

// Feature is an optional platform capability that can be enabled per
// organization. Listed as a full catalog and sliced client-side.
type Feature struct {
	Key         string   `json:"key"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Enabled     bool     `json:"enabled"`
	Labels      []string `json:"labels,omitempty"`
}

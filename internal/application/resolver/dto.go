package resolver

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Candidate is one ranked match from the component/product catalogs.
// Selecting a candidate fixes the component type and the matching id; the
// other id field stays empty.
type Candidate struct {
	ID            uuid.UUID       `json:"id"`
	SKU           string          `json:"sku"`
	Name          string          `json:"name"`
	ComponentType string          `json:"component_type"`
	UnitCost      decimal.Decimal `json:"unit_cost"`
}

// SearchResult carries ranked candidates plus the sequence number of the
// search. Stale is set when a later search finished first; callers must
// discard stale results instead of rendering them.
type SearchResult struct {
	Query      string      `json:"query"`
	Seq        uint64      `json:"seq"`
	Stale      bool        `json:"stale"`
	Candidates []Candidate `json:"candidates"`
}

// ScanResult holds the decoded text of a scanned label and the fields
// parsed out of it. It is transient and never persisted.
type ScanResult struct {
	Text string `json:"text"`
	SKU  string `json:"sku,omitempty"`
	Qty  string `json:"qty,omitempty"`
	Lot  string `json:"lot,omitempty"`
}

// ScanResolution is the outcome of resolving a decoded scan against the
// catalog. Either Matched is set, or NeedsManualEntry is true and the raw
// scan data is carried for display in the manual entry form.
type ScanResolution struct {
	NeedsManualEntry bool       `json:"needs_manual_entry"`
	Matched          *Candidate `json:"matched,omitempty"`
	Scan             ScanResult `json:"scan"`
}

// ManualEntryRequest carries operator-supplied data for the manual fallback
// when neither search nor scan produced a catalog match
type ManualEntryRequest struct {
	Name         string          `json:"name" binding:"required,min=1,max=200"`
	UnitCost     decimal.Decimal `json:"unit_cost"`
	OriginalText string          `json:"original_text" binding:"max=500"`
}

// ManualEntryResponse identifies the minted manual component plus the notes
// the caller should attach to the resulting BOM line for audit
type ManualEntryResponse struct {
	ComponentID   uuid.UUID       `json:"component_id"`
	SKU           string          `json:"sku"`
	Name          string          `json:"name"`
	ComponentType string          `json:"component_type"`
	UnitCost      decimal.Decimal `json:"unit_cost"`
	IsManual      bool            `json:"is_manual"`
	Notes         string          `json:"notes"`
}

package barcode

import (
	"fmt"
	"strings"
)

// Label holds the fields parsed out of a decoded label string.
type Label struct {
	SKU    string // (01) GTIN-14, zero-padded for shorter symbologies
	Qty    string // (30) variable count
	Lot    string // (10) lot number
	Expiry string // (17) expiry, normalized to YYYYMM
}

// Maximum data lengths of the variable-length AIs we parse.
const (
	maxLotLength = 20
	maxQtyLength = 8
)

// ParseLabel parses a decoded label string, auto-detecting the format:
//   - 15+ characters starting with AI (01): GS1 element string
//   - 14 digits: GTIN-14 as-is
//   - 13 digits or fewer: JAN/EAN, zero-padded to 14
//   - comma-delimited "SKU,QTY,LOT" labels printed by the shop's own printer
func ParseLabel(code string) (*Label, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, fmt.Errorf("empty label")
	}

	if strings.Contains(code, ",") {
		return parseDelimited(code)
	}

	if len(code) >= 15 {
		if strings.HasPrefix(code, "01") {
			return parseGS1(code)
		}
		return nil, fmt.Errorf("label is %d characters but does not start with AI (01)", len(code))
	}

	// GTIN-14, JAN-13 and shorter codes all normalize to 14 digits
	return &Label{SKU: fmt.Sprintf("%014s", code)}, nil
}

// parseDelimited parses the in-house "SKU,QTY,LOT" label format. QTY and LOT
// are optional trailing fields.
func parseDelimited(code string) (*Label, error) {
	parts := strings.Split(code, ",")
	label := &Label{SKU: strings.TrimSpace(parts[0])}
	if label.SKU == "" {
		return nil, fmt.Errorf("delimited label has no SKU field")
	}
	if len(parts) > 1 {
		label.Qty = strings.TrimSpace(parts[1])
	}
	if len(parts) > 2 {
		label.Lot = strings.TrimSpace(parts[2])
	}
	return label, nil
}

// parseGS1 walks a GS1 element string without FNC1 separators. Fixed-length
// AIs (01, 17) are consumed by position; variable-length AIs (10, 30) run
// until the next complete AI or their maximum length.
func parseGS1(code string) (*Label, error) {
	label := &Label{}
	i := 0
	length := len(code)

	for i < length {
		switch {
		case strings.HasPrefix(code[i:], "01"):
			if i+16 > length {
				return nil, fmt.Errorf("truncated AI (01): need 14 digits")
			}
			label.SKU = code[i+2 : i+16]
			i += 16

		case strings.HasPrefix(code[i:], "17"):
			if i+8 > length {
				return nil, fmt.Errorf("truncated AI (17): need 6 digits")
			}
			yymmdd := code[i+2 : i+8]
			// Stored as YYYYMM; day-of-month on labels is unreliable
			label.Expiry = "20" + yymmdd[0:2] + yymmdd[2:4]
			i += 8

		case strings.HasPrefix(code[i:], "10"):
			end := scanVariable(code, i+2, maxLotLength)
			label.Lot = code[i+2 : end]
			i = end

		case strings.HasPrefix(code[i:], "30"):
			end := scanVariable(code, i+2, maxQtyLength)
			label.Qty = code[i+2 : end]
			i = end

		default:
			i++
		}
	}

	if label.SKU == "" {
		return nil, fmt.Errorf("no AI (01) GTIN in label")
	}
	return label, nil
}

// scanVariable finds the end of a variable-length AI value starting at start.
// It stops at maxLen, or where a following fixed-length AI appears in complete
// form; a bare "01" or "17" suffix too short to be an AI stays part of the
// value.
func scanVariable(code string, start, maxLen int) int {
	end := start
	for end < len(code) && end-start < maxLen {
		remaining := code[end:]
		if len(remaining) >= 2 {
			switch remaining[:2] {
			case "01":
				if len(remaining) >= 16 {
					return end
				}
			case "17":
				if len(remaining) >= 8 {
					return end
				}
			}
		}
		end++
	}
	return end
}

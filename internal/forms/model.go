package forms

import (
	"encoding/json"
	"time"
)

// Form owns exactly one layout document, scoped to a company. The layout is
// stored verbatim as authored; it is parsed on every write and on every
// submission, never partially applied.
type Form struct {
	ID        int64
	CompanyID int64
	Name      string
	Layout    json.RawMessage
	CreatedBy int64
	CreatedAt time.Time
	UpdatedBy int64
	UpdatedAt time.Time
}

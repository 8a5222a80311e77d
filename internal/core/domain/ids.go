package domain

import (
	"strings"

	"github.com/google/uuid"
)

// Identifier prefixes make ids self-describing in logs and lineage traces.
const (
	PrefixPrepareBatch  = "PREP"
	PrefixPreparedOrder = "PO"
	PrefixBasket        = "BSK"
	PrefixOrder         = "ORD"
	PrefixSweepRun      = "SWP"
	PrefixNotification  = "NTF"
	PrefixPaidBatch     = "PAY"
	PrefixTransfer      = "TRF"
)

func NewID(prefix string) string {
	return prefix + "-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:20])
}

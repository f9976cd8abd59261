package bridge

import "github.com/fetchai/fetch-ethereum-bridge-v1/storage"

// RefundLedger is the append-only set of swap ids that have already been
// refunded, preventing Refund/RefundInFull from paying out the same swap
// twice. Adapted from the teacher's native/swap ledger idiom of keying a
// presence marker by a fixed-width encoded id rather than a full record.
type RefundLedger struct {
	store storage.KVStore
}

// NewRefundLedger constructs a RefundLedger bound to store.
func NewRefundLedger(store storage.KVStore) *RefundLedger {
	return &RefundLedger{store: store}
}

// HasRefund reports whether swapID has already been refunded.
func (l *RefundLedger) HasRefund(swapID uint64) (bool, error) {
	return l.store.Has(refundKey(swapID))
}

// MarkRefunded records swapID as refunded. Callers must check HasRefund
// first; MarkRefunded does not itself reject a duplicate mark.
func (l *RefundLedger) MarkRefunded(swapID uint64) error {
	return l.store.Set(refundKey(swapID), []byte{1})
}

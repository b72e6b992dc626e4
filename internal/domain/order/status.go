package order

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopline/backend/internal/domain/shared"
)

// Status is a fulfillment stage of an order item. Identities are stable
// integers used as lookup keys; ordering between stages is defined by the
// transition table, not by numeric comparison.
type Status int

const (
	StatusPendingPayment         Status = 1
	StatusPaid                   Status = 2
	StatusPreparing              Status = 3
	StatusShipping               Status = 4
	StatusCompleted              Status = 5
	StatusCancelledBeforePayment Status = 6
	StatusCancelledAfterPayment  Status = 7
	StatusReturnRequested        Status = 8
	StatusExchangeRequested      Status = 9
)

var statusNames = map[Status]string{
	StatusPendingPayment:         "PENDING_PAYMENT",
	StatusPaid:                   "PAID",
	StatusPreparing:              "PREPARING",
	StatusShipping:               "SHIPPING",
	StatusCompleted:              "COMPLETED",
	StatusCancelledBeforePayment: "CANCELLED_BEFORE_PAYMENT",
	StatusCancelledAfterPayment:  "CANCELLED_AFTER_PAYMENT",
	StatusReturnRequested:        "RETURN_REQUESTED",
	StatusExchangeRequested:      "EXCHANGE_REQUESTED",
}

// String returns the string representation of Status
func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("STATUS(%d)", int(s))
}

// IsValid checks if the status is a known Status
func (s Status) IsValid() bool {
	_, ok := statusNames[s]
	return ok
}

// PreDeliveryStatuses are the stages during which an item's option may still
// be replaced.
func PreDeliveryStatuses() []Status {
	return []Status{StatusPendingPayment, StatusPaid, StatusPreparing}
}

// Transition is one legal edge of the fulfillment graph.
type Transition struct {
	Previous Status
	Next     Status
}

// TransitionTable is the adjacency map of legal status transitions. It is
// loaded once from the persisted transition rows; adding a fulfillment stage
// is data, not code.
type TransitionTable struct {
	allowed map[Transition]struct{}
}

// NewTransitionTable builds a table from the given transitions.
func NewTransitionTable(transitions []Transition) *TransitionTable {
	allowed := make(map[Transition]struct{}, len(transitions))
	for _, t := range transitions {
		allowed[t] = struct{}{}
	}
	return &TransitionTable{allowed: allowed}
}

// CanTransition reports whether previous → next is a legal edge.
func (t *TransitionTable) CanTransition(previous, next Status) bool {
	_, ok := t.allowed[Transition{Previous: previous, Next: next}]
	return ok
}

// IsTerminal reports whether the status has no outgoing edges.
func (t *TransitionTable) IsTerminal(s Status) bool {
	for edge := range t.allowed {
		if edge.Previous == s {
			return false
		}
	}
	return true
}

// DefaultTransitions is the seed set of legal edges. Cancelled, returned and
// exchanged stages are terminal.
func DefaultTransitions() []Transition {
	return []Transition{
		{StatusPendingPayment, StatusPaid},
		{StatusPendingPayment, StatusCancelledBeforePayment},
		{StatusPaid, StatusPreparing},
		{StatusPaid, StatusCancelledAfterPayment},
		{StatusPreparing, StatusShipping},
		{StatusShipping, StatusCompleted},
		{StatusCompleted, StatusReturnRequested},
		{StatusCompleted, StatusExchangeRequested},
	}
}

// StatusHistory is one append-only record of an item reaching a status.
// Rows are written once per transition and never mutated.
type StatusHistory struct {
	ID          uuid.UUID
	OrderItemID uuid.UUID
	Status      Status
	CreatedAt   time.Time
}

// NewStatusHistory creates a history record for the given item and status.
func NewStatusHistory(orderItemID uuid.UUID, status Status) StatusHistory {
	return StatusHistory{
		ID:          uuid.New(),
		OrderItemID: orderItemID,
		Status:      status,
		CreatedAt:   time.Now(),
	}
}

// StateMachine is the only mutation path for order-item statuses. It checks
// every transition against the table and produces the history records that
// must be persisted in the same atomic step as the status write.
type StateMachine struct {
	table *TransitionTable
}

// NewStateMachine creates a state machine over the given transition table.
func NewStateMachine(table *TransitionTable) *StateMachine {
	return &StateMachine{table: table}
}

// Table returns the transition table the machine consults.
func (m *StateMachine) Table() *TransitionTable {
	return m.table
}

// Advance moves every item to next and returns one history record per item.
// It fails without mutating anything if any item's current status does not
// permit the transition.
func (m *StateMachine) Advance(items []*OrderItem, next Status) ([]StatusHistory, error) {
	for _, item := range items {
		if !m.table.CanTransition(item.Status, next) {
			return nil, shared.NewValidationError(
				"order_item %s cannot move from %s to %s", item.ID, item.Status, next)
		}
	}

	histories := make([]StatusHistory, 0, len(items))
	now := time.Now()
	for _, item := range items {
		item.Status = next
		item.UpdatedAt = now
		histories = append(histories, NewStatusHistory(item.ID, next))
	}
	return histories, nil
}

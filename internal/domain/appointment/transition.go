package appointment

import (
	"time"

	"github.com/BruksfildServices01/delivery-scheduler/internal/httperr"
	"github.com/BruksfildServices01/delivery-scheduler/internal/models"
)

type Operation string

const (
	OpApprove             Operation = "approve"
	OpReject              Operation = "reject"
	OpCancel              Operation = "cancel"
	OpRequestCancellation Operation = "request_cancellation"
	OpApproveCancellation Operation = "approve_cancellation"
	OpRejectCancellation  Operation = "reject_cancellation"
	OpMarkAsNoShow        Operation = "mark_as_no_show"
	OpMarkAsCompleted     Operation = "mark_as_completed"
	OpRequestReschedule   Operation = "request_reschedule"
	OpApproveReschedule   Operation = "approve_reschedule"
	OpRejectReschedule    Operation = "reject_reschedule"
	OpReschedule          Operation = "reschedule"
	OpComment             Operation = "comment"

	// criação não passa pela tabela de transições
	OpCreate Operation = "create"
)

// Precondition describes which current statuses an operation accepts.
type Precondition struct {
	From []Status
	// Any aceita qualquer status exceto os listados em Except
	Any    bool
	Except []Status
	// o agendamento precisa estar no passado
	RequiresPast bool
}

var Transitions = map[Operation]Precondition{
	OpApprove:             {From: []Status{StatusPendingConfirmation}},
	OpReject:              {From: []Status{StatusPendingConfirmation}},
	OpCancel:              {Any: true, Except: TerminalStatuses},
	OpRequestCancellation: {From: []Status{StatusPendingConfirmation, StatusConfirmed}},
	OpApproveCancellation: {From: []Status{StatusCancellationRequested}},
	OpRejectCancellation:  {From: []Status{StatusCancellationRequested}},
	OpMarkAsNoShow:        {From: []Status{StatusConfirmed}, RequiresPast: true},
	OpMarkAsCompleted:     {From: []Status{StatusConfirmed}, RequiresPast: true},
	OpRequestReschedule:   {From: []Status{StatusPendingConfirmation, StatusConfirmed}},
	OpApproveReschedule:   {From: []Status{StatusRescheduleRequested}},
	OpRejectReschedule:    {From: []Status{StatusRescheduleRequested}},
	OpReschedule:          {From: []Status{StatusPendingConfirmation, StatusConfirmed}},
	OpComment:             {Any: true},
}

func (p Precondition) allows(s Status) bool {
	if p.Any {
		for _, ex := range p.Except {
			if ex == s {
				return false
			}
		}
		return true
	}
	for _, from := range p.From {
		if from == s {
			return true
		}
	}
	return false
}

// CheckPrecondition valida o status atual (e a data, quando exigido)
func CheckPrecondition(op Operation, ap *models.Appointment, now time.Time) error {
	pre, ok := Transitions[op]
	if !ok || !pre.allows(Status(ap.Status)) {
		return httperr.ErrBusiness(httperr.CodeInvalidStateTransition)
	}
	if pre.RequiresPast && !ap.Date.Before(now) {
		return httperr.ErrBusiness(httperr.CodeInvalidStateTransition)
	}
	return nil
}

package appointment

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusPendingConfirmation   Status = "PENDING_CONFIRMATION"
	StatusConfirmed             Status = "CONFIRMED"
	StatusRejected              Status = "REJECTED"
	StatusCancellationRequested Status = "CANCELLATION_REQUESTED"
	StatusCancellationRejected  Status = "CANCELLATION_REJECTED"
	StatusCancelled             Status = "CANCELLED"
	StatusRescheduleRequested   Status = "RESCHEDULE_REQUESTED"
	StatusRescheduleConfirmed   Status = "RESCHEDULE_CONFIRMED"
	StatusRescheduleRejected    Status = "RESCHEDULE_REJECTED"
	StatusRescheduled           Status = "RESCHEDULED"
	StatusCompleted             Status = "COMPLETED"
	StatusSupplierNoShow        Status = "SUPPLIER_NO_SHOW"
)

var AllStatuses = []Status{
	StatusPendingConfirmation,
	StatusConfirmed,
	StatusRejected,
	StatusCancellationRequested,
	StatusCancellationRejected,
	StatusCancelled,
	StatusRescheduleRequested,
	StatusRescheduleConfirmed,
	StatusRescheduleRejected,
	StatusRescheduled,
	StatusCompleted,
	StatusSupplierNoShow,
}

// BookedStatuses ocupam horário no cálculo de disponibilidade
var BookedStatuses = []Status{
	StatusConfirmed,
	StatusPendingConfirmation,
	StatusRescheduleConfirmed,
}

var TerminalStatuses = []Status{
	StatusCancelled,
	StatusCompleted,
	StatusSupplierNoShow,
	StatusRejected,
}

func (s Status) IsTerminal() bool {
	for _, st := range TerminalStatuses {
		if st == s {
			return true
		}
	}
	return false
}

func (s Status) IsValid() bool {
	for _, st := range AllStatuses {
		if st == s {
			return true
		}
	}
	return false
}

// InitialStatus de todo pedido de agendamento
func InitialStatus() Status {
	return StatusPendingConfirmation
}

func StatusStrings(statuses []Status) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}

// ===============================
// Activity Types
// ===============================

type ActivityType string

const (
	ActivityComment             ActivityType = "COMMENT"
	ActivityCreated             ActivityType = "CREATED"
	ActivityUpdated             ActivityType = "UPDATED"
	ActivityCancelled           ActivityType = "CANCELLED"
	ActivityRescheduleRequested ActivityType = "RESCHEDULE_REQUESTED"
	ActivityRescheduleConfirmed ActivityType = "RESCHEDULE_CONFIRMED"
	ActivityRescheduleRejected  ActivityType = "RESCHEDULE_REJECTED"
	ActivityStatusChange        ActivityType = "STATUS_CHANGE"
	ActivityCompleted           ActivityType = "COMPLETED"
	ActivitySupplierNoShow      ActivityType = "SUPPLIER_NO_SHOW"
)

// MetadataNewDate guarda a data proposta de um reagendamento pendente
const (
	MetadataNewDate      = "newDate"
	MetadataPreviousDate = "previousDate"
	MetadataReason       = "reason"
)

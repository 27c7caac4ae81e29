package appointment

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/delivery-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/delivery-scheduler/internal/httperr"
	"github.com/BruksfildServices01/delivery-scheduler/internal/models"
)

// TransitionRequest carries the payload of any lifecycle operation; each
// operation reads only the fields it needs.
type TransitionRequest struct {
	Operation     domain.Operation
	AppointmentID uint
	Actor         domain.Actor

	NewDate time.Time
	Reason  string
	Content string
}

func (e *Engine) Apply(
	ctx context.Context,
	req TransitionRequest,
) (*models.Appointment, error) {

	switch req.Operation {
	case domain.OpApprove:
		return e.Approve(ctx, req.Actor, req.AppointmentID)
	case domain.OpReject:
		return e.Reject(ctx, req.Actor, req.AppointmentID, req.Reason)
	case domain.OpCancel:
		return e.Cancel(ctx, req.Actor, req.AppointmentID, req.Reason)
	case domain.OpRequestCancellation:
		return e.RequestCancellation(ctx, req.Actor, req.AppointmentID, req.Reason)
	case domain.OpApproveCancellation:
		return e.ApproveCancellation(ctx, req.Actor, req.AppointmentID)
	case domain.OpRejectCancellation:
		return e.RejectCancellation(ctx, req.Actor, req.AppointmentID, req.Reason)
	case domain.OpMarkAsNoShow:
		return e.MarkAsNoShow(ctx, req.Actor, req.AppointmentID)
	case domain.OpMarkAsCompleted:
		return e.MarkAsCompleted(ctx, req.Actor, req.AppointmentID)
	case domain.OpRequestReschedule:
		return e.RequestReschedule(ctx, req.Actor, req.AppointmentID, req.NewDate, req.Reason)
	case domain.OpApproveReschedule:
		return e.ApproveReschedule(ctx, req.Actor, req.AppointmentID)
	case domain.OpRejectReschedule:
		return e.RejectReschedule(ctx, req.Actor, req.AppointmentID, req.Reason)
	case domain.OpReschedule:
		return e.Reschedule(ctx, req.Actor, req.AppointmentID, req.NewDate, req.Reason)
	case domain.OpComment:
		return e.AddComment(ctx, req.Actor, req.AppointmentID, req.Content)
	}

	return nil, httperr.ErrBusiness(httperr.CodeInvalidRequest)
}

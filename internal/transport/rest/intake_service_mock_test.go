package rest

import (
	"context"
	"sync"

	"github.com/heartmarshall/serenity-backend/internal/domain"
	"github.com/heartmarshall/serenity-backend/internal/service/intake"
)

var _ intakeService = &intakeServiceMock{}

type intakeServiceMock struct {
	SubmitBookingFunc func(ctx context.Context, input intake.BookingInput) (*domain.Booking, error)
	SubmitInquiryFunc func(ctx context.Context, input intake.InquiryInput) (*domain.Inquiry, error)

	calls struct {
		SubmitBooking []struct {
			Ctx   context.Context
			Input intake.BookingInput
		}
		SubmitInquiry []struct {
			Ctx   context.Context
			Input intake.InquiryInput
		}
	}
	lockSubmitBooking sync.RWMutex
	lockSubmitInquiry sync.RWMutex
}

func (mock *intakeServiceMock) SubmitBooking(ctx context.Context, input intake.BookingInput) (*domain.Booking, error) {
	if mock.SubmitBookingFunc == nil {
		panic("intakeServiceMock.SubmitBookingFunc: method is nil but intakeService.SubmitBooking was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Input intake.BookingInput
	}{Ctx: ctx, Input: input}
	mock.lockSubmitBooking.Lock()
	mock.calls.SubmitBooking = append(mock.calls.SubmitBooking, callInfo)
	mock.lockSubmitBooking.Unlock()
	return mock.SubmitBookingFunc(ctx, input)
}

func (mock *intakeServiceMock) SubmitBookingCalls() []struct {
	Ctx   context.Context
	Input intake.BookingInput
} {
	mock.lockSubmitBooking.RLock()
	calls := mock.calls.SubmitBooking
	mock.lockSubmitBooking.RUnlock()
	return calls
}

func (mock *intakeServiceMock) SubmitInquiry(ctx context.Context, input intake.InquiryInput) (*domain.Inquiry, error) {
	if mock.SubmitInquiryFunc == nil {
		panic("intakeServiceMock.SubmitInquiryFunc: method is nil but intakeService.SubmitInquiry was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Input intake.InquiryInput
	}{Ctx: ctx, Input: input}
	mock.lockSubmitInquiry.Lock()
	mock.calls.SubmitInquiry = append(mock.calls.SubmitInquiry, callInfo)
	mock.lockSubmitInquiry.Unlock()
	return mock.SubmitInquiryFunc(ctx, input)
}

func (mock *intakeServiceMock) SubmitInquiryCalls() []struct {
	Ctx   context.Context
	Input intake.InquiryInput
} {
	mock.lockSubmitInquiry.RLock()
	calls := mock.calls.SubmitInquiry
	mock.lockSubmitInquiry.RUnlock()
	return calls
}

package jobcard

import (
	"time"

	"production/internal/pkg/errs"
)

// OutwardDetails records the vendor round-trip of an outsourced step:
// which vendor the batch was sent to, when it left, and when it came back.
// An outward step cannot complete until the return date is recorded.
type OutwardDetails struct {
	vendorName string
	sentDate   *time.Time
	returnDate *time.Time
}

// NewOutwardDetails creates an empty outward record awaiting dispatch to a vendor.
func NewOutwardDetails() *OutwardDetails {
	return &OutwardDetails{}
}

// RestoreOutwardDetails reconstructs an outward record from persistent storage.
func RestoreOutwardDetails(vendorName string, sentDate, returnDate *time.Time) *OutwardDetails {
	return &OutwardDetails{vendorName: vendorName, sentDate: sentDate, returnDate: returnDate}
}

// VendorName returns the external vendor the batch was sent to.
func (o *OutwardDetails) VendorName() string {
	return o.vendorName
}

// SentDate returns when the batch left for the vendor, nil if not yet sent.
func (o *OutwardDetails) SentDate() *time.Time {
	return o.sentDate
}

// ReturnDate returns when the batch came back, nil if still at the vendor.
func (o *OutwardDetails) ReturnDate() *time.Time {
	return o.returnDate
}

// RecordSent marks the batch as dispatched to the named vendor.
func (o *OutwardDetails) RecordSent(vendorName string, sentDate time.Time) error {
	if vendorName == "" {
		return errs.NewValueIsRequiredError("vendor name")
	}
	o.vendorName = vendorName
	o.sentDate = &sentDate
	return nil
}

// RecordReturn marks the batch as received back from the vendor.
// The batch must have been sent first.
func (o *OutwardDetails) RecordReturn(returnDate time.Time) error {
	if o.sentDate == nil {
		return errs.NewValueIsInvalidError("return recorded before batch was sent to vendor")
	}
	o.returnDate = &returnDate
	return nil
}

// IsReturned reports whether the batch has come back from the vendor.
func (o *OutwardDetails) IsReturned() bool {
	return o.returnDate != nil
}

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	BookingsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "hairdayy_bookings_created_total",
		Help: "Appointments successfully booked.",
	})

	BookingConflicts = promauto.NewCounter(prometheus.CounterOpts{
		Name: "hairdayy_booking_conflicts_total",
		Help: "Booking attempts rejected by the overlap guard.",
	})

	ReferralPayoutsAccrued = promauto.NewCounter(prometheus.CounterOpts{
		Name: "hairdayy_referral_payouts_accrued_total",
		Help: "Pending referral payout rows created.",
	})

	RemindersSent = promauto.NewCounter(prometheus.CounterOpts{
		Name: "hairdayy_reminders_sent_total",
		Help: "Appointment reminders delivered by the sweep.",
	})
)

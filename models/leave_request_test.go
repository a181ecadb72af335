package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// ครบทั้ง 9 คู่ของ (hod, principal) — rejected ชนะเสมอ, approved ต้องครบคู่
func TestComputeFinalStatusAllPairs(t *testing.T) {
	cases := []struct {
		hod, principal, want string
	}{
		{StatusPending, StatusPending, StatusPending},
		{StatusPending, StatusApproved, StatusPending},
		{StatusPending, StatusRejected, StatusRejected},
		{StatusApproved, StatusPending, StatusPending},
		{StatusApproved, StatusApproved, StatusApproved},
		{StatusApproved, StatusRejected, StatusRejected},
		{StatusRejected, StatusPending, StatusRejected},
		{StatusRejected, StatusApproved, StatusRejected},
		{StatusRejected, StatusRejected, StatusRejected},
	}
	for _, tc := range cases {
		got := ComputeFinalStatus(tc.hod, tc.principal)
		assert.Equalf(t, tc.want, got, "hod=%s principal=%s", tc.hod, tc.principal)
	}
}

func TestComputeFinalStatusOrderIndependent(t *testing.T) {
	for _, a := range []string{StatusPending, StatusApproved, StatusRejected} {
		for _, b := range []string{StatusPending, StatusApproved, StatusRejected} {
			assert.Equal(t, ComputeFinalStatus(a, b), ComputeFinalStatus(b, a))
		}
	}
}

func TestCoversDate(t *testing.T) {
	long := LeaveRequest{Kind: KindLeave, DateFrom: "2025-04-01", DateTo: "2025-04-05"}
	assert.True(t, long.CoversDate("2025-04-01"))
	assert.True(t, long.CoversDate("2025-04-03"))
	assert.True(t, long.CoversDate("2025-04-05")) // รวมวันปลายช่วงด้วย
	assert.False(t, long.CoversDate("2025-03-31"))
	assert.False(t, long.CoversDate("2025-04-06"))

	short := LeaveRequest{Kind: KindShortLeave, LeaveDate: "2025-04-03"}
	assert.True(t, short.CoversDate("2025-04-03"))
	assert.False(t, short.CoversDate("2025-04-04"))

	unknown := LeaveRequest{Kind: "other", LeaveDate: "2025-04-03"}
	assert.False(t, unknown.CoversDate("2025-04-03"))
}

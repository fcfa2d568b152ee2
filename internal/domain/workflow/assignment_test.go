package workflow

import (
	"testing"

	"roofing_crm/internal/domain/entities"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckAssignmentUpdate(t *testing.T) {
	d := entities.Deal{RepID: "rep-1", RepName: "Jo", Commission: &entities.DealCommission{Percent: *dec("5")}}
	repActor := entities.Actor{ID: "rep-1", Role: entities.RoleRep}

	tests := []struct {
		name    string
		update  DealUpdate
		wantErr bool
	}{
		{name: "percent raised", update: DealUpdate{CommissionPercent: dec("50")}, wantErr: true},
		{name: "rep reassigned", update: DealUpdate{RepID: ptr("rep-2")}, wantErr: true},
		{name: "rep renamed", update: DealUpdate{RepName: ptr("Someone")}, wantErr: true},
		{name: "stored values resent", update: DealUpdate{RepID: ptr("rep-1"), CommissionPercent: dec("5.0")}},
		{name: "unrelated field", update: DealUpdate{Notes: ptr("x")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckAssignmentUpdate(d, tt.update, repActor)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrRoleNotPermitted)
			} else {
				assert.NoError(t, err)
			}
			assert.NoError(t, CheckAssignmentUpdate(d, tt.update, entities.Actor{ID: "u-admin", Role: entities.RoleAdmin}))
		})
	}
}

func TestAuditAssignment(t *testing.T) {
	admin := entities.Actor{ID: "u-admin", Role: entities.RoleAdmin}

	entries := AuditAssignment(entities.Deal{}, DealUpdate{CommissionPercent: dec("7.5")}, admin, testNow)
	require.Len(t, entries, 1)
	assert.Equal(t, AuditAssignmentChanged, entries[0].Action)
	assert.Equal(t, "commission_percent: 0 -> 7.5", entries[0].Detail)
	assert.Equal(t, testNow, entries[0].At)

	assert.Empty(t, AuditAssignment(entities.Deal{RepID: "rep-1"}, DealUpdate{RepID: ptr("rep-1")}, admin, testNow))
}
